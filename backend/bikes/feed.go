// Package bikes builds the e-bike availability dashboard: live station feed,
// per-station distance and bearing from the rider, and borough lookup.
package bikes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	geojson "github.com/paulmach/go.geojson"
)

const (
	DefaultStationsURL = "https://bikeangels-api.citibikenyc.com/map/v1/nyc/stations"
	DefaultBoroughsURL = "https://services5.arcgis.com/GfwWNkhOj9bNBqoJ/arcgis/rest/services/nybb/FeatureServer/0/query?where=1=1&outFields=*&outSR=4326&f=geojson"
)

// EBike is a single dockable bike with its charge level (0 to 4).
type EBike struct {
	BikeNumber string `json:"bike_number"`
	Charge     int    `json:"charge"`
}

// Station is one dock in the feed, annotated with rider-relative data.
type Station struct {
	Name            string  `json:"name"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	EBikesAvailable int     `json:"ebikes_available"`
	EBikes          []EBike `json:"ebikes,omitempty"`
	Borough         string  `json:"borough"`

	// Populated only when rider coordinates are known. Pointers so that a
	// genuine zero, a station at the rider's own dock, still serializes.
	DistanceMeters   *float64 `json:"dist_meters,omitempty"`
	CompassDirection string   `json:"compass_bearing,omitempty"`
	Blocks           *int     `json:"blocks,omitempty"`
}

// FeedClient fetches the live station feed, which is published as a GeoJSON
// feature collection with station properties on each feature.
type FeedClient struct {
	StationsURL string
	HTTPClient  *http.Client
}

func NewFeedClient() *FeedClient {
	return &FeedClient{
		StationsURL: DefaultStationsURL,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch returns every station in the feed. Stations carry raw feed data only;
// rider-relative fields are filled in by Annotate.
func (c *FeedClient) Fetch(ctx context.Context) ([]Station, error) {
	fc, err := c.fetchCollection(ctx, c.StationsURL)
	if err != nil {
		return nil, fmt.Errorf("station feed: %w", err)
	}

	stations := make([]Station, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPoint() {
			continue
		}
		s := Station{
			Longitude: f.Geometry.Point[0],
			Latitude:  f.Geometry.Point[1],
		}
		if name, err := f.PropertyString("name"); err == nil {
			s.Name = name
		}
		if n, err := f.PropertyInt("ebikes_available"); err == nil {
			s.EBikesAvailable = n
		}
		s.EBikes = ebikesProperty(f.Properties["ebikes"])
		stations = append(stations, s)
	}
	return stations, nil
}

// FetchBoroughs downloads the borough boundary collection used to build a
// BoroughIndex.
func (c *FeedClient) FetchBoroughs(ctx context.Context, boroughsURL string) (*geojson.FeatureCollection, error) {
	fc, err := c.fetchCollection(ctx, boroughsURL)
	if err != nil {
		return nil, fmt.Errorf("borough boundaries: %w", err)
	}
	return fc, nil
}

func (c *FeedClient) fetchCollection(ctx context.Context, url string) (*geojson.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return geojson.UnmarshalFeatureCollection(body)
}

// ebikesProperty decodes the loosely typed "ebikes" feature property.
func ebikesProperty(v interface{}) []EBike {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]EBike, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var b EBike
		if num, ok := m["bike_number"].(string); ok {
			b.BikeNumber = num
		}
		if charge, ok := m["charge"].(float64); ok {
			b.Charge = int(charge)
		}
		out = append(out, b)
	}
	return out
}
