package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Title       string             `json:"title"`
	Location    string             `json:"location"`
	StartDate   openapi_types.Date `json:"startDate"`
	EndDate     openapi_types.Date `json:"endDate"`
	Description string             `json:"description"`
	Notes       *string            `json:"notes,omitempty"`
}

// UpdateTripRequest is the body of PATCH /trips/{id}. Absent fields are kept.
type UpdateTripRequest struct {
	Title       *string             `json:"title,omitempty"`
	Location    *string             `json:"location,omitempty"`
	StartDate   *openapi_types.Date `json:"startDate,omitempty"`
	EndDate     *openapi_types.Date `json:"endDate,omitempty"`
	Description *string             `json:"description,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
}

// Trip is the JSON representation of a trip.
type Trip struct {
	ID          uuid.UUID              `json:"id"`
	OwnerID     string                 `json:"ownerId"`
	Title       string                 `json:"title"`
	Location    string                 `json:"location"`
	StartDate   openapi_types.Date     `json:"startDate"`
	EndDate     openapi_types.Date     `json:"endDate"`
	Description string                 `json:"description"`
	Notes       string                 `json:"notes,omitempty"`
	Checklist   []domain.ChecklistItem `json:"checklist"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data []Trip `json:"data"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.trips.Create(r.Context(), auth.UserIDFrom(r.Context()), requestToTrip(body))
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips. The caller's trips are returned newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.ListForUser(r.Context(), auth.UserIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{Data: data})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.Get(r.Context(), auth.UserIDFrom(r.Context()), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PATCH /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var body UpdateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.trips.Update(r.Context(), auth.UserIDFrom(r.Context()), id, requestToPatch(body))
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	if err := s.trips.Delete(r.Context(), auth.UserIDFrom(r.Context()), id); err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- request helpers --------------------------------------------------------

// tripID parses the {id} path parameter. A malformed id cannot name an
// existing trip, so it is reported as not found.
func tripID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "trip not found")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst, writing the error
// response itself when decoding fails.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
	case errors.Is(err, io.EOF):
		requestError(w, "request body is required")
	default:
		requestError(w, fmt.Sprintf("invalid request body: %v", err))
	}
	return false
}

// --- mapping helpers --------------------------------------------------------

func requestToTrip(body CreateTripRequest) domain.Trip {
	t := domain.Trip{
		Title:       body.Title,
		Location:    body.Location,
		StartDate:   body.StartDate.Time,
		EndDate:     body.EndDate.Time,
		Description: body.Description,
	}
	if body.Notes != nil {
		t.Notes = *body.Notes
	}
	return t
}

func requestToPatch(body UpdateTripRequest) domain.TripPatch {
	p := domain.TripPatch{
		Title:       body.Title,
		Location:    body.Location,
		Description: body.Description,
		Notes:       body.Notes,
	}
	if body.StartDate != nil {
		p.StartDate = &body.StartDate.Time
	}
	if body.EndDate != nil {
		p.EndDate = &body.EndDate.Time
	}
	return p
}

// tripToResponse converts a domain.Trip into its JSON representation.
func tripToResponse(t domain.Trip) Trip {
	checklist := t.Checklist
	if checklist == nil {
		checklist = []domain.ChecklistItem{}
	}
	return Trip{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Location:    t.Location,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Description: t.Description,
		Notes:       t.Notes,
		Checklist:   checklist,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
