package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/auth"
)

// TokenVerifier is the subset of auth.Verifier the middleware needs.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// NewAuthenticator returns a middleware that resolves the bearer token into a
// user id on the request context. Requests without an Authorization header
// pass through anonymously; services reject them where a user is required.
// A header that is present but malformed or fails verification gets 401.
func NewAuthenticator(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthenticated", "authorization header must be a bearer token")
				return
			}
			userID, err := v.Verify(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
				return
			}

			if h, ok := r.Context().Value(userHolderKey{}).(*userHolder); ok {
				h.userID = userID
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

type userHolderKey struct{}

type userHolder struct{ userID string }

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey{}, h)
}
