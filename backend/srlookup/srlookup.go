// Package srlookup proxies NYC 311 service request status lookups.
package srlookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultBaseURL = "http://www1.nyc.gov/apps/311api/srlookup"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Lookup fetches the 311 status payload for a service request number. The
// body is passed through untouched so upstream schema changes never break
// callers.
func (c *Client) Lookup(ctx context.Context, reqNumber string) (json.RawMessage, error) {
	u := c.BaseURL + "/" + url.PathEscape(reqNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("311 lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("311 lookup: %s", resp.Status)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("311 lookup: non-JSON response")
	}
	return json.RawMessage(body), nil
}
