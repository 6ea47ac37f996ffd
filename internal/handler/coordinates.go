package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/auth"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Where a coordinate answer came from.
const (
	SourceGeocoder = "geocoder"
	SourceQuick    = "quick"
)

// Coordinates is the body of the coordinate lookup endpoints.
type Coordinates struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
	Source      string  `json:"source"`
}

// GetTripCoordinates handles GET /trips/{id}/coordinates: the map position
// of the trip's location.
func (s *Server) GetTripCoordinates(w http.ResponseWriter, r *http.Request) {
	id, ok := tripID(w, r)
	if !ok {
		return
	}
	trip, err := s.trips.Get(r.Context(), auth.UserIDFrom(r.Context()), id)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}
	s.writeCoordinates(w, r, trip.Location)
}

// Geocode handles GET /geocode?q=. Lookups reach a third-party geocoder and
// fill the shared cache, so only signed-in users may make them.
func (s *Server) Geocode(w http.ResponseWriter, r *http.Request) {
	if auth.UserIDFrom(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		requestError(w, "query parameter q is required")
		return
	}
	s.writeCoordinates(w, r, q)
}

// writeCoordinates resolves place through the geocoder and falls back to the
// built-in table of well-known places.
func (s *Server) writeCoordinates(w http.ResponseWriter, r *http.Request, place string) {
	if c, ok := s.coords.Resolve(r.Context(), place); ok {
		writeJSON(w, http.StatusOK, coordinatesToResponse(c, SourceGeocoder))
		return
	}
	if c, ok := s.coords.QuickResolve(place); ok {
		writeJSON(w, http.StatusOK, coordinatesToResponse(c, SourceQuick))
		return
	}
	writeError(w, http.StatusNotFound, "not_found", "no coordinates found for location")
}

func coordinatesToResponse(c domain.Coordinates, source string) Coordinates {
	return Coordinates{
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		DisplayName: c.DisplayName,
		Source:      source,
	}
}
