package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/checklist"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ChecklistService applies one checklist edit per call to a trip's embedded
// list. Each call loads the trip, runs the edit through a checklist.Session
// and returns the list as confirmed by the store. Concurrent edits of the
// same trip are last-writer-wins at list granularity.
type ChecklistService struct {
	trips repo.TripRepo
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// NewChecklistService constructs a ChecklistService backed by the trip repo.
func NewChecklistService(trips repo.TripRepo, log *slog.Logger) *ChecklistService {
	if log == nil {
		log = slog.Default()
	}
	return &ChecklistService{trips: trips, log: log, now: time.Now}
}

// WithIDs replaces the clock and item-id generator, for tests.
func (s *ChecklistService) WithIDs(now func() time.Time, newID func() string) *ChecklistService {
	s.now = now
	s.newID = newID
	return s
}

// List returns the trip's checklist in display order.
func (s *ChecklistService) List(ctx context.Context, userID string, tripID uuid.UUID) ([]domain.ChecklistItem, error) {
	trip, err := s.load(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.List: %w", err)
	}
	return nonNil(trip.Checklist), nil
}

// Add appends a new incomplete item.
// Returns domain.ErrValidation if text is blank.
func (s *ChecklistService) Add(ctx context.Context, userID string, tripID uuid.UUID, text string) ([]domain.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("service.ChecklistService.Add: %w: text is required", domain.ErrValidation)
	}
	sess, confirmed, err := s.open(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Add: %w", err)
	}
	if err := sess.Add(ctx, text); err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Add: %w", err)
	}
	return *confirmed, nil
}

// Toggle flips the completed flag of one item.
func (s *ChecklistService) Toggle(ctx context.Context, userID string, tripID uuid.UUID, itemID string) ([]domain.ChecklistItem, error) {
	sess, confirmed, err := s.open(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Toggle: %w", err)
	}
	if _, err := findItem(sess, itemID); err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Toggle: %w", err)
	}
	if err := sess.Toggle(ctx, itemID); err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Toggle: %w", err)
	}
	return *confirmed, nil
}

// Rename replaces the text of one item.
// Returns domain.ErrValidation if text is blank.
func (s *ChecklistService) Rename(ctx context.Context, userID string, tripID uuid.UUID, itemID, text string) ([]domain.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("service.ChecklistService.Rename: %w: text is required", domain.ErrValidation)
	}
	sess, confirmed, err := s.open(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Rename: %w", err)
	}
	item, err := findItem(sess, itemID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Rename: %w", err)
	}

	sess.StartEdit(item)
	sess.SetEditText(text)
	if err := sess.SaveEdit(ctx); err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Rename: %w", err)
	}
	return *confirmed, nil
}

// Remove deletes one item, keeping the order of the rest.
func (s *ChecklistService) Remove(ctx context.Context, userID string, tripID uuid.UUID, itemID string) ([]domain.ChecklistItem, error) {
	sess, confirmed, err := s.open(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Remove: %w", err)
	}
	if _, err := findItem(sess, itemID); err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Remove: %w", err)
	}
	if err := sess.Delete(ctx, itemID); err != nil {
		return nil, fmt.Errorf("service.ChecklistService.Remove: %w", err)
	}
	return *confirmed, nil
}

func (s *ChecklistService) load(ctx context.Context, userID string, tripID uuid.UUID) (domain.Trip, error) {
	if userID == "" {
		return domain.Trip{}, domain.ErrUnauthenticated
	}
	return s.trips.GetByID(ctx, userID, tripID)
}

// open starts a session over the stored list. confirmed is updated by the
// session's OnUpdate hook, i.e. only after the store accepted a new list.
func (s *ChecklistService) open(ctx context.Context, userID string, tripID uuid.UUID) (*checklist.Session, *[]domain.ChecklistItem, error) {
	trip, err := s.load(ctx, userID, tripID)
	if err != nil {
		return nil, nil, err
	}

	confirmed := nonNil(trip.Checklist)
	sess := checklist.NewSession(trip.Checklist, checklist.Config{
		Save: func(ctx context.Context, items []domain.ChecklistItem) error {
			return s.trips.ReplaceChecklist(ctx, userID, tripID, items, s.now().UTC())
		},
		OnUpdate: func(items []domain.ChecklistItem) { confirmed = items },
		Logger:   s.log.With("trip_id", tripID),
		Now:      s.now,
		NewID:    s.newID,
	})
	return sess, &confirmed, nil
}

func findItem(sess *checklist.Session, itemID string) (domain.ChecklistItem, error) {
	items := sess.Items()
	i := domain.FindChecklistItem(items, itemID)
	if i < 0 {
		return domain.ChecklistItem{}, fmt.Errorf("checklist item %q: %w", itemID, domain.ErrNotFound)
	}
	return items[i], nil
}

func nonNil(items []domain.ChecklistItem) []domain.ChecklistItem {
	if items == nil {
		return []domain.ChecklistItem{}
	}
	return items
}
