package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func TestTripPatch_IsEmpty(t *testing.T) {
	assert.True(t, domain.TripPatch{}.IsEmpty())

	notes := ""
	assert.False(t, domain.TripPatch{Notes: &notes}.IsEmpty(), "an explicit empty value is still a change")
}

func TestTripPatch_Apply(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	trip := domain.Trip{Title: "Italy", Location: "Rome", StartDate: start, EndDate: start.AddDate(0, 0, 9), Notes: "old"}

	title := "Roman Holiday"
	end := start.AddDate(0, 0, 14)
	got := domain.TripPatch{Title: &title, EndDate: &end}.Apply(trip)

	assert.Equal(t, "Roman Holiday", got.Title)
	assert.Equal(t, end, got.EndDate)
	assert.Equal(t, "Rome", got.Location, "absent fields are kept")
	assert.Equal(t, start, got.StartDate)
	assert.Equal(t, "old", got.Notes)
	assert.Equal(t, "Italy", trip.Title, "the input trip is not modified")
}

func TestFindChecklistItem(t *testing.T) {
	items := []domain.ChecklistItem{{ID: "a"}, {ID: "b"}}

	assert.Equal(t, 1, domain.FindChecklistItem(items, "b"))
	assert.Equal(t, -1, domain.FindChecklistItem(items, "z"))
	assert.Equal(t, -1, domain.FindChecklistItem(nil, "a"))
}
