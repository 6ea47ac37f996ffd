// Package handler implements the HTTP handlers for the Trip Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, checklist.go, coordinates.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, userID string, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Trip, error)
	Update(ctx context.Context, userID string, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// ChecklistServicer defines the checklist operations the handlers depend on.
type ChecklistServicer interface {
	List(ctx context.Context, userID string, tripID uuid.UUID) ([]domain.ChecklistItem, error)
	Add(ctx context.Context, userID string, tripID uuid.UUID, text string) ([]domain.ChecklistItem, error)
	Toggle(ctx context.Context, userID string, tripID uuid.UUID, itemID string) ([]domain.ChecklistItem, error)
	Rename(ctx context.Context, userID string, tripID uuid.UUID, itemID, text string) ([]domain.ChecklistItem, error)
	Remove(ctx context.Context, userID string, tripID uuid.UUID, itemID string) ([]domain.ChecklistItem, error)
}

// CoordinateResolver looks up map coordinates for a place name.
// Resolve may hit the network; QuickResolve never does.
type CoordinateResolver interface {
	Resolve(ctx context.Context, place string) (domain.Coordinates, bool)
	QuickResolve(place string) (domain.Coordinates, bool)
}

// Server holds the dependencies of every endpoint.
// Mount it in main.go via Server.Routes().
type Server struct {
	trips      TripServicer
	checklists ChecklistServicer
	coords     CoordinateResolver
	openAPI    []byte
	log        *slog.Logger
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithOpenAPI serves doc at GET /openapi.yaml.
func WithOpenAPI(doc []byte) Option {
	return func(s *Server) { s.openAPI = doc }
}

// WithLogger sets the logger used for unexpected errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, checklists ChecklistServicer, coords CoordinateResolver, opts ...Option) *Server {
	s := &Server{trips: trips, checklists: checklists, coords: coords, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware (request id, logging, auth) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	if s.coords != nil {
		r.Get("/geocode", s.Geocode)
	}

	if s.trips != nil {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Patch("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				if s.coords != nil {
					r.Get("/coordinates", s.GetTripCoordinates)
				}
				if s.checklists != nil {
					r.Route("/checklist", func(r chi.Router) {
						r.Get("/", s.ListChecklist)
						r.Post("/", s.AddChecklistItem)
						r.Put("/{itemId}", s.RenameChecklistItem)
						r.Delete("/{itemId}", s.DeleteChecklistItem)
						r.Post("/{itemId}/toggle", s.ToggleChecklistItem)
					})
				}
			})
		})
	}
	return r
}
