package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultIPLookupURL = "https://ipapi.co/json"

// IPLocator resolves an approximate position from the caller's IP address.
// Used as a fallback when no device coordinates are supplied.
type IPLocator struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewIPLocator() *IPLocator {
	return &IPLocator{
		BaseURL:    DefaultIPLookupURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Locate returns latitude and longitude for the current public IP.
func (l *IPLocator) Locate(ctx context.Context) (latitude, longitude float64, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL, nil)
	if err != nil {
		return 0, 0, err
	}
	client := l.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("ip lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("ip lookup: %s", resp.Status)
	}

	var out struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, fmt.Errorf("bad ip lookup response: %w", err)
	}
	return out.Latitude, out.Longitude, nil
}
