package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// memTripRepo is a tiny in-memory repo.TripRepo used by the scenario tests.
// Ordering mirrors the Postgres repo: newest CreatedAt first.
type memTripRepo struct {
	mu    sync.Mutex
	trips map[uuid.UUID]domain.Trip
	tick  time.Duration
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{trips: map[uuid.UUID]domain.Trip{}}
}

func (m *memTripRepo) Create(_ context.Context, t domain.Trip) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.New()
	// Equal service clocks would make ordering ambiguous; nudge each insert.
	m.tick += time.Millisecond
	t.CreatedAt = t.CreatedAt.Add(m.tick)
	m.trips[t.ID] = t
	return t, nil
}

func (m *memTripRepo) GetByID(_ context.Context, owner string, id uuid.UUID) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.OwnerID != owner {
		return domain.Trip{}, domain.ErrNotFound
	}
	return t, nil
}

func (m *memTripRepo) ListByOwner(_ context.Context, owner string) ([]domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Trip
	for _, t := range m.trips {
		if t.OwnerID == owner {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTripRepo) Update(_ context.Context, owner string, id uuid.UUID, p domain.TripPatch, at time.Time) (domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.OwnerID != owner {
		return domain.Trip{}, domain.ErrNotFound
	}
	t = p.Apply(t)
	t.UpdatedAt = at
	m.trips[id] = t
	return t, nil
}

func (m *memTripRepo) ReplaceChecklist(_ context.Context, owner string, id uuid.UUID, items []domain.ChecklistItem, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.OwnerID != owner {
		return domain.ErrNotFound
	}
	t.Checklist = append([]domain.ChecklistItem(nil), items...)
	t.UpdatedAt = at
	m.trips[id] = t
	return nil
}

func (m *memTripRepo) Delete(_ context.Context, owner string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.OwnerID != owner {
		return domain.ErrNotFound
	}
	delete(m.trips, id)
	return nil
}
