package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/config"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newVerifier(t *testing.T, cfg config.AuthConfig) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier(cfg)
	require.NoError(t, err)
	return v.WithClock(func() time.Time { return now })
}

func sign(t *testing.T, secret string, claims jwt.Claims, method jwt.SigningMethod) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := auth.NewVerifier(config.AuthConfig{Secret: "  "})
	assert.Error(t, err)
}

func TestVerifier_IssueThenVerify(t *testing.T) {
	v := newVerifier(t, config.AuthConfig{Secret: "s3cret", Issuer: "idp", Audience: "trip-planner"})

	tok, err := v.Issue("U1", time.Hour)
	require.NoError(t, err)

	sub, err := v.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "U1", sub)
}

func TestVerifier_Rejects(t *testing.T) {
	cfg := config.AuthConfig{Secret: "s3cret", Issuer: "idp", Audience: "trip-planner"}
	valid := jwt.RegisteredClaims{
		Subject:   "U1",
		Issuer:    "idp",
		Audience:  jwt.ClaimStrings{"trip-planner"},
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"empty", func(*testing.T) string { return "" }},
		{"garbage", func(*testing.T) string { return "not.a.jwt" }},
		{"wrong secret", func(t *testing.T) string {
			return sign(t, "other", valid, jwt.SigningMethodHS256)
		}},
		{"wrong algorithm", func(t *testing.T) string {
			return sign(t, "s3cret", valid, jwt.SigningMethodHS512)
		}},
		{"expired", func(t *testing.T) string {
			c := valid
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
			return sign(t, "s3cret", c, jwt.SigningMethodHS256)
		}},
		{"no expiry", func(t *testing.T) string {
			c := valid
			c.ExpiresAt = nil
			return sign(t, "s3cret", c, jwt.SigningMethodHS256)
		}},
		{"wrong issuer", func(t *testing.T) string {
			c := valid
			c.Issuer = "elsewhere"
			return sign(t, "s3cret", c, jwt.SigningMethodHS256)
		}},
		{"wrong audience", func(t *testing.T) string {
			c := valid
			c.Audience = jwt.ClaimStrings{"billing"}
			return sign(t, "s3cret", c, jwt.SigningMethodHS256)
		}},
		{"no subject", func(t *testing.T) string {
			c := valid
			c.Subject = ""
			return sign(t, "s3cret", c, jwt.SigningMethodHS256)
		}},
	}

	v := newVerifier(t, cfg)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token(t))
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

func TestVerifier_IssuerOptional(t *testing.T) {
	v := newVerifier(t, config.AuthConfig{Secret: "s3cret"})
	tok := sign(t, "s3cret", jwt.RegisteredClaims{
		Subject:   "U9",
		Issuer:    "anything",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}, jwt.SigningMethodHS256)

	sub, err := v.Verify(tok)

	require.NoError(t, err)
	assert.Equal(t, "U9", sub)
}

func TestUserIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", auth.UserIDFrom(ctx))

	ctx = auth.WithUserID(ctx, "U1")
	assert.Equal(t, "U1", auth.UserIDFrom(ctx))
}
