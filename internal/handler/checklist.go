package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ChecklistItemRequest is the body of POST /trips/{id}/checklist and
// PUT /trips/{id}/checklist/{itemId}.
type ChecklistItemRequest struct {
	Text string `json:"text"`
}

// Checklist is the body of every checklist response: the list as stored
// after the operation.
type Checklist struct {
	Items []domain.ChecklistItem `json:"items"`
}

// ListChecklist handles GET /trips/{id}/checklist.
func (s *Server) ListChecklist(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	items, err := s.checklists.List(r.Context(), auth.UserIDFrom(r.Context()), id)
	s.writeChecklist(w, r, http.StatusOK, items, err)
}

// AddChecklistItem handles POST /trips/{id}/checklist.
func (s *Server) AddChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var body ChecklistItemRequest
	if !decodeBody(w, r, &body) {
		return
	}
	items, err := s.checklists.Add(r.Context(), auth.UserIDFrom(r.Context()), id, body.Text)
	s.writeChecklist(w, r, http.StatusCreated, items, err)
}

// ToggleChecklistItem handles POST /trips/{id}/checklist/{itemId}/toggle.
func (s *Server) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	items, err := s.checklists.Toggle(r.Context(), auth.UserIDFrom(r.Context()), id, chi.URLParam(r, "itemId"))
	s.writeChecklist(w, r, http.StatusOK, items, err)
}

// RenameChecklistItem handles PUT /trips/{id}/checklist/{itemId}.
func (s *Server) RenameChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	var body ChecklistItemRequest
	if !decodeBody(w, r, &body) {
		return
	}
	items, err := s.checklists.Rename(r.Context(), auth.UserIDFrom(r.Context()), id, chi.URLParam(r, "itemId"), body.Text)
	s.writeChecklist(w, r, http.StatusOK, items, err)
}

// DeleteChecklistItem handles DELETE /trips/{id}/checklist/{itemId}.
func (s *Server) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	items, err := s.checklists.Remove(r.Context(), auth.UserIDFrom(r.Context()), id, chi.URLParam(r, "itemId"))
	s.writeChecklist(w, r, http.StatusOK, items, err)
}

func (s *Server) writeChecklist(w http.ResponseWriter, r *http.Request, status int, items []domain.ChecklistItem, err error) {
	if err != nil {
		s.writeServiceError(w, r, err, "trip or checklist item not found")
		return
	}
	if items == nil {
		items = []domain.ChecklistItem{}
	}
	writeJSON(w, status, Checklist{Items: items})
}
