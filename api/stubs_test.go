package api_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// The route walk never calls these; they only need to be non-nil.

type nilTrips struct{}

func (nilTrips) Create(context.Context, string, domain.Trip) (domain.Trip, error) {
	return domain.Trip{}, nil
}
func (nilTrips) Get(context.Context, string, uuid.UUID) (domain.Trip, error) {
	return domain.Trip{}, nil
}
func (nilTrips) ListForUser(context.Context, string) ([]domain.Trip, error) { return nil, nil }
func (nilTrips) Update(context.Context, string, uuid.UUID, domain.TripPatch) (domain.Trip, error) {
	return domain.Trip{}, nil
}
func (nilTrips) Delete(context.Context, string, uuid.UUID) error { return nil }

type nilChecklists struct{}

func (nilChecklists) List(context.Context, string, uuid.UUID) ([]domain.ChecklistItem, error) {
	return nil, nil
}
func (nilChecklists) Add(context.Context, string, uuid.UUID, string) ([]domain.ChecklistItem, error) {
	return nil, nil
}
func (nilChecklists) Toggle(context.Context, string, uuid.UUID, string) ([]domain.ChecklistItem, error) {
	return nil, nil
}
func (nilChecklists) Rename(context.Context, string, uuid.UUID, string, string) ([]domain.ChecklistItem, error) {
	return nil, nil
}
func (nilChecklists) Remove(context.Context, string, uuid.UUID, string) ([]domain.ChecklistItem, error) {
	return nil, nil
}

type nilResolver struct{}

func (nilResolver) Resolve(context.Context, string) (domain.Coordinates, bool) {
	return domain.Coordinates{}, false
}
func (nilResolver) QuickResolve(string) (domain.Coordinates, bool) { return domain.Coordinates{}, false }
