package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleProvider is the paid fallback for deployments where the Nominatim
// rate limit is too tight.
type GoogleProvider struct {
	client *maps.Client
}

func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

func (g *GoogleProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", fmt.Errorf("failed to reverse geocode: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no place name for %f,%f", lat, lng)
	}
	return results[0].FormattedAddress, nil
}
