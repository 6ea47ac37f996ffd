// Package geocode resolves free-text place names to coordinates.
// Service layers a time-boxed cache over a Nominatim-compatible HTTP search
// endpoint; QuickResolve answers from a static table of well-known places.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// DefaultBaseURL is the public OpenStreetMap Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// searchResult is one element of the Nominatim /search JSON array.
// Coordinates arrive as numeric strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("geocoder status %d: %s", e.Code, e.Body)
}

// Client calls a Nominatim-compatible /search endpoint.
// It issues exactly one request per Search; there is no retry.
type Client struct {
	baseURL   string
	userAgent string
	session   *http.Client
}

// NewClient constructs a Client. A nil httpClient means http.DefaultClient.
func NewClient(baseURL, userAgent string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		session:   httpClient,
	}
}

// Search returns the top match for query.
// found is false when the geocoder answered with an empty array.
func (c *Client) Search(ctx context.Context, query string) (_ domain.Coordinates, found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Coordinates{}, false, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(decoded) == 0 {
		return domain.Coordinates{}, false, nil
	}

	coords, err := decoded[0].coordinates()
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("parse result for %q: %w", query, err)
	}
	return coords, true, nil
}

func (r searchResult) coordinates() (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("lon: %w", err)
	}
	return domain.Coordinates{Latitude: lat, Longitude: lon, DisplayName: r.DisplayName}, nil
}
