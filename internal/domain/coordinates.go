package domain

// Coordinates is an immutable geographic point with a human-readable name,
// produced by the coordinate lookup service.
type Coordinates struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"displayName"`
}
