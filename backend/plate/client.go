package plate

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openalpr.com/v2/recognize_bytes"

// Fixed regional recognition profile.
const (
	country = "us"
	region  = "ny"
	topN    = 10
)

// Result is one plate candidate from the recognition service.
type Result struct {
	Plate           string  `json:"plate"`
	Confidence      float64 `json:"confidence"`
	MatchesTemplate int     `json:"matches_template"`
	Region          string  `json:"region"`
}

// Response is the recognition service's answer, candidates ranked best first.
type Response struct {
	Version        float32  `json:"version"`
	DataType       string   `json:"data_type"`
	EpochTime      float64  `json:"epoch_time"`
	ProcessingTime float64  `json:"processing_time_ms"`
	Results        []Result `json:"results"`
}

// Top returns the highest-ranked candidate.
func (r *Response) Top() (string, bool) {
	if r == nil || len(r.Results) == 0 {
		return "", false
	}
	return r.Results[0].Plate, true
}

type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		SecretKey:  secretKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Recognize submits image bytes to the recognition service and returns the
// full candidate list. The image must already be upright; the service reads
// raw pixels.
func (c *Client) Recognize(ctx context.Context, image []byte) (*Response, error) {
	params := url.Values{}
	params.Set("secret_key", c.SecretKey)
	params.Set("recognize_vehicle", "0")
	params.Set("country", country)
	params.Set("state", region)
	params.Set("return_image", "0")
	params.Set("topn", fmt.Sprint(topN))

	payload := base64.StdEncoding.EncodeToString(image)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"?"+params.Encode(), strings.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition service: %s: %s", resp.Status, errorMessage(body))
	}

	out := &Response{}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("bad recognition response: %w", err)
	}
	return out, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// errorMessage pulls a readable message out of the service's error payload
// when one is present.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
