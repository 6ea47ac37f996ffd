// Package domain contains the core data types for the Trip Planner application.
// Apart from uuid this package has no external dependencies and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a single planned trip owned by one user.
// StartDate and EndDate are calendar dates; their time component is always midnight UTC.
type Trip struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     string          `json:"ownerId"`
	Title       string          `json:"title"`
	Location    string          `json:"location"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Description string          `json:"description"`
	Notes       string          `json:"notes,omitempty"`
	Checklist   []ChecklistItem `json:"checklist"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TripPatch carries a partial update. Nil fields are left untouched.
type TripPatch struct {
	Title       *string
	Location    *string
	StartDate   *time.Time
	EndDate     *time.Time
	Description *string
	Notes       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TripPatch) IsEmpty() bool {
	return p.Title == nil && p.Location == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Description == nil && p.Notes == nil
}

// Apply returns a copy of t with every present patch field merged in.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return t
}
