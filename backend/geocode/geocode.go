// Package geocode turns coordinates into street addresses and recovers a
// rough location from the caller's IP when device coordinates are missing.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client queries the Google geocoding API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type geocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status string `json:"status"`
}

// ReverseGeocode returns the formatted address of the first result for the
// given coordinates. A ZERO_RESULTS answer yields an empty string, nil.
func (c *Client) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%v,%v", latitude, longitude))
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode: %s", resp.Status)
	}

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("bad geocode response: %w", err)
	}
	switch out.Status {
	case "OK":
		if len(out.Results) == 0 {
			return "", nil
		}
		return out.Results[0].FormattedAddress, nil
	case "ZERO_RESULTS":
		return "", nil
	default:
		return "", fmt.Errorf("reverse geocode: status %s", out.Status)
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}
