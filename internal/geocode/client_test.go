package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/geocode"
)

func TestClient_Search_Found(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"52.5170365","lon":"13.3888599","display_name":"Berlin, Deutschland"}]`))
	}))
	defer srv.Close()

	c := geocode.NewClient(srv.URL, "trip-planner-test", srv.Client())
	got, found, err := c.Search(context.Background(), "Berlin")

	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 52.5170365, got.Latitude, 1e-9)
	assert.InDelta(t, 13.3888599, got.Longitude, 1e-9)
	assert.Equal(t, "Berlin, Deutschland", got.DisplayName)
	assert.Contains(t, gotQuery, "q=Berlin")
	assert.Contains(t, gotQuery, "limit=1")
	assert.Contains(t, gotQuery, "format=json")
	assert.Equal(t, "trip-planner-test", gotUA)
}

func TestClient_Search_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, found, err := geocode.NewClient(srv.URL, "", srv.Client()).Search(context.Background(), "Atlantis")

	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_Search_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusServiceUnavailable, "busy"},
		{"not json", http.StatusOK, "<html>"},
		{"bad latitude", http.StatusOK, `[{"lat":"north","lon":"1","display_name":"x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, found, err := geocode.NewClient(srv.URL, "", srv.Client()).Search(context.Background(), "x")

			assert.Error(t, err)
			assert.False(t, found)
		})
	}
}
