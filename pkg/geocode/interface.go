package geocode

import "context"

// Provider resolves coordinates to human readable place names for the route
// screens. Results are display data only and never persisted.
type Provider interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}
