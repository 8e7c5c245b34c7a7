package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// NominatimProvider reverse geocodes against the OpenStreetMap Nominatim
// API. Nominatim requires a descriptive User-Agent and allows at most one
// request per second, so callers should cache results.
type NominatimProvider struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewNominatimProvider(userAgent string) *NominatimProvider {
	return &NominatimProvider{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://nominatim.openstreetmap.org",
		userAgent:  userAgent,
	}
}

func (n *NominatimProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lng))
	params.Set("zoom", "16")

	apiURL := fmt.Sprintf("%s/reverse?%s", n.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Nominatim API error: %s", string(body))
	}

	var nominatimResp struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			Road    string `json:"road"`
			Suburb  string `json:"suburb"`
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
		} `json:"address"`
	}

	if err := json.Unmarshal(body, &nominatimResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// Prefer the most local named component over the full display string.
	addr := nominatimResp.Address
	for _, candidate := range []string{addr.Suburb, addr.Road, addr.City, addr.Town, addr.Village} {
		if candidate != "" {
			return candidate, nil
		}
	}
	if nominatimResp.DisplayName != "" {
		return nominatimResp.DisplayName, nil
	}
	return "", fmt.Errorf("no place name for %f,%f", lat, lng)
}
