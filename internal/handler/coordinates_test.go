package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/handler"
)

// mockResolver is a test double for handler.CoordinateResolver.
type mockResolver struct {
	resolve func(ctx context.Context, place string) (domain.Coordinates, bool)
	quick   func(place string) (domain.Coordinates, bool)
}

func (m *mockResolver) Resolve(ctx context.Context, place string) (domain.Coordinates, bool) {
	return m.resolve(ctx, place)
}
func (m *mockResolver) QuickResolve(place string) (domain.Coordinates, bool) {
	return m.quick(place)
}

var _ handler.CoordinateResolver = (*mockResolver)(nil)

var rome = domain.Coordinates{Latitude: 41.9028, Longitude: 12.4964, DisplayName: "Rome, Italy"}

func notFound(context.Context, string) (domain.Coordinates, bool) { return domain.Coordinates{}, false }
func quickMiss(string) (domain.Coordinates, bool) { return domain.Coordinates{}, false }

func decodeCoordinates(t *testing.T, rec *httptest.ResponseRecorder) handler.Coordinates {
	t.Helper()
	var body handler.Coordinates
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestGeocode_FromGeocoder(t *testing.T) {
	var gotPlace string
	res := &mockResolver{
		resolve: func(_ context.Context, place string) (domain.Coordinates, bool) {
			gotPlace = place
			return rome, true
		},
		quick: func(string) (domain.Coordinates, bool) {
			t.Fatal("quick table must not be consulted after a geocoder hit")
			return domain.Coordinates{}, false
		},
	}
	rec := httptest.NewRecorder()

	handler.NewServer(nil, nil, res).Routes().ServeHTTP(rec,
		asUser(httptest.NewRequest(http.MethodGet, "/geocode?q="+url.QueryEscape("Rome"), nil), "U1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rome", gotPlace)
	got := decodeCoordinates(t, rec)
	assert.Equal(t, handler.SourceGeocoder, got.Source)
	assert.InDelta(t, 41.9028, got.Latitude, 1e-9)
}

func TestGeocode_FallsBackToQuickTable(t *testing.T) {
	res := &mockResolver{
		resolve: notFound,
		quick:   func(string) (domain.Coordinates, bool) { return rome, true },
	}
	rec := httptest.NewRecorder()

	handler.NewServer(nil, nil, res).Routes().ServeHTTP(rec,
		asUser(httptest.NewRequest(http.MethodGet, "/geocode?q="+url.QueryEscape("Рим"), nil), "U1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handler.SourceQuick, decodeCoordinates(t, rec).Source)
}

func TestGeocode_404(t *testing.T) {
	res := &mockResolver{resolve: notFound, quick: quickMiss}
	rec := httptest.NewRecorder()

	handler.NewServer(nil, nil, res).Routes().ServeHTTP(rec,
		asUser(httptest.NewRequest(http.MethodGet, "/geocode?q=Atlantis", nil), "U1"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestGeocode_422_MissingQuery(t *testing.T) {
	res := &mockResolver{} // resolver must not be reached
	rec := httptest.NewRecorder()

	handler.NewServer(nil, nil, res).Routes().ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodGet, "/geocode?q=%20", nil), "U1"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// TestGeocode_401_Anonymous verifies anonymous callers cannot drive geocoder
// traffic or fill the cache.
func TestGeocode_401_Anonymous(t *testing.T) {
	res := &mockResolver{} // resolver must not be reached
	rec := httptest.NewRecorder()

	handler.NewServer(nil, nil, res).Routes().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/geocode?q=Berlin", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", decodeError(t, rec).Code)
}

func TestGetTripCoordinates_ResolvesTripLocation(t *testing.T) {
	fixture := tripFixture()
	trips := &mockTripServicer{
		get: func(_ context.Context, userID string, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, "U1", userID)
			return fixture, nil
		},
	}
	var gotPlace string
	res := &mockResolver{
		resolve: func(_ context.Context, place string) (domain.Coordinates, bool) {
			gotPlace = place
			return rome, true
		},
		quick: quickMiss,
	}
	rec := httptest.NewRecorder()

	handler.NewServer(trips, nil, res).Routes().ServeHTTP(rec,
		asUser(httptest.NewRequest(http.MethodGet, "/trips/"+fixture.ID.String()+"/coordinates", nil), "U1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixture.Location, gotPlace)
	assert.Equal(t, "Rome, Italy", decodeCoordinates(t, rec).DisplayName)
}

func TestGetTripCoordinates_404_TripMissing(t *testing.T) {
	trips := &mockTripServicer{
		get: func(context.Context, string, uuid.UUID) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}
	res := &mockResolver{} // resolver must not be reached
	rec := httptest.NewRecorder()

	handler.NewServer(trips, nil, res).Routes().ServeHTTP(rec,
		asUser(httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/coordinates", nil), "U1"))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
