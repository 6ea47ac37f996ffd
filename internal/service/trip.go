// Package service contains the business logic for the Trip Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
//
// Every operation takes the caller's user id explicitly; services never read
// an ambient "current user".
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
	log  *slog.Logger
	now  func() time.Time
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{repo: r, log: log, now: time.Now}
}

// WithClock replaces the service clock, for tests.
func (s *TripService) WithClock(now func() time.Time) *TripService {
	s.now = now
	return s
}

// Create validates the trip, stamps it with the owner and creation time, and
// persists it. The returned trip carries the generated id.
// Returns domain.ErrUnauthenticated if userID is empty.
func (s *TripService) Create(ctx context.Context, userID string, trip domain.Trip) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", domain.ErrUnauthenticated)
	}
	trip = normalizeTrip(trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	now := s.now().UTC()
	trip.ID = uuid.Nil
	trip.OwnerID = userID
	trip.CreatedAt = now
	trip.UpdatedAt = now
	if trip.Checklist == nil {
		trip.Checklist = []domain.ChecklistItem{}
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.log.InfoContext(ctx, "trip created", "trip_id", created.ID, "user_id", userID)
	return created, nil
}

// Get returns one of the user's trips.
// Returns domain.ErrNotFound when the trip is missing or owned by someone else.
func (s *TripService) Get(ctx context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrUnauthenticated)
	}
	trip, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// ListForUser returns the user's trips, newest first.
// A failed query is returned as an error, never as an empty list; a user with
// no trips gets a non-nil empty slice.
func (s *TripService) ListForUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	if userID == "" {
		return nil, fmt.Errorf("service.TripService.ListForUser: %w", domain.ErrUnauthenticated)
	}
	trips, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "list trips", "user_id", userID, "error", err)
		return nil, fmt.Errorf("service.TripService.ListForUser: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update merges the patch into the user's trip and refreshes its update time.
// The merged trip must still pass validation.
func (s *TripService) Update(ctx context.Context, userID string, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrUnauthenticated)
	}
	patch = normalizePatch(patch)
	if patch.IsEmpty() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: no fields to update", domain.ErrValidation)
	}

	current, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if err := validateTrip(patch.Apply(current)); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	updated, err := s.repo.Update(ctx, userID, id, patch, s.now().UTC())
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes one of the user's trips.
func (s *TripService) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrUnauthenticated)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	s.log.InfoContext(ctx, "trip deleted", "trip_id", id, "user_id", userID)
	return nil
}

// normalizeTrip trims free-text fields and truncates dates to calendar days.
func normalizeTrip(t domain.Trip) domain.Trip {
	t.Title = strings.TrimSpace(t.Title)
	t.Location = strings.TrimSpace(t.Location)
	t.StartDate = calendarDay(t.StartDate)
	t.EndDate = calendarDay(t.EndDate)
	return t
}

func normalizePatch(p domain.TripPatch) domain.TripPatch {
	if p.Title != nil {
		v := strings.TrimSpace(*p.Title)
		p.Title = &v
	}
	if p.Location != nil {
		v := strings.TrimSpace(*p.Location)
		p.Location = &v
	}
	if p.StartDate != nil {
		v := calendarDay(*p.StartDate)
		p.StartDate = &v
	}
	if p.EndDate != nil {
		v := calendarDay(*p.EndDate)
		p.EndDate = &v
	}
	return p
}

func calendarDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// validateTrip enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Both dates are required; EndDate must not be before StartDate.
func validateTrip(t domain.Trip) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if t.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", domain.ErrValidation)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}
