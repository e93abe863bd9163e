// Package geocode resolves raw coordinates to a display address.
// Resolution is best-effort: callers must treat a nil address or an
// error as "no location", never as a reason to fail the operation.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/TimeSaving-dev/pointeuse-backend-go/internal/config"
)

// Resolver turns coordinates into an address string, or nil when the
// position cannot be resolved.
type Resolver interface {
	Resolve(ctx context.Context, lat, lon float64) (*string, error)
}

type nominatimResolver struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatimResolver creates a Resolver backed by a Nominatim-style
// reverse-geocoding endpoint.
func NewNominatimResolver(cfg config.GeocodeConfig) Resolver {
	return &nominatimResolver{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Resolve implements Resolver.
func (r *nominatimResolver) Resolve(ctx context.Context, lat, lon float64) (*string, error) {
	endpoint := fmt.Sprintf("%s/reverse?%s", r.baseURL, url.Values{
		"lat":    {fmt.Sprintf("%f", lat)},
		"lon":    {fmt.Sprintf("%f", lon)},
		"format": {"jsonv2"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	if body.DisplayName == "" {
		return nil, nil
	}

	return &body.DisplayName, nil
}
