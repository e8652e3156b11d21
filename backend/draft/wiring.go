package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reported/backend/geocode"
	"reported/backend/media"
	"reported/backend/plate"
	"reported/backend/server/api"
)

// mediaExtractor adapts the metadata extraction routines.
type mediaExtractor struct{}

func (mediaExtractor) Extract(data []byte) (media.Metadata, error) {
	return media.Extract(data)
}

// frameGrabber adapts the video poster frame extraction.
type frameGrabber struct{}

func (frameGrabber) FirstFrame(ctx context.Context, video []byte) ([]byte, error) {
	return media.FirstFrame(ctx, video)
}

// topCandidate adapts the recognition client, keeping only the best guess.
type topCandidate struct {
	client *plate.Client
}

func (r topCandidate) Recognize(ctx context.Context, image []byte) (string, error) {
	resp, err := r.client.Recognize(ctx, image)
	if err != nil {
		return "", err
	}
	top, ok := resp.Top()
	if !ok {
		return "", fmt.Errorf("no plate candidates")
	}
	return top, nil
}

// httpSubmitter posts the snapshot to the /submit endpoint.
type httpSubmitter struct {
	baseURL string
	client  *http.Client
}

func (s httpSubmitter) Submit(ctx context.Context, args *api.SubmitArgs) (*api.Submission, error) {
	body, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/submit", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var e api.ErrorResponse
		if json.Unmarshal(payload, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("submit rejected: %s", e.Error)
		}
		return nil, fmt.Errorf("submit rejected: %s", resp.Status)
	}

	var out api.SubmitResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("bad submit response: %w", err)
	}
	return &out.Submission, nil
}

// Wire builds a fully connected form session: extraction, recognition,
// geocoding, geolocation, and submission against a running API server.
func Wire(serverURL, openALPRKey, mapsAPIKey string) *Draft {
	d := New()
	d.Extractor = mediaExtractor{}
	d.Frames = frameGrabber{}
	d.Recognizer = topCandidate{client: plate.NewClient(openALPRKey)}
	d.Addresses = geocode.NewClient(mapsAPIKey)
	d.Locations = geocode.NewIPLocator()
	d.Submitter = httpSubmitter{
		baseURL: serverURL,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
	return d
}
