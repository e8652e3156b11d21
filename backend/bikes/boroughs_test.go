package bikes

import (
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/require"
)

// Coarse rectangles standing in for real borough boundaries.
func testBoroughs(t *testing.T) *BoroughIndex {
	t.Helper()
	raw := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"properties": {"BoroName": "Manhattan"},
				"geometry": {
					"type": "Polygon",
					"coordinates": [[
						[-74.03, 40.70], [-73.92, 40.70],
						[-73.92, 40.88], [-74.03, 40.88],
						[-74.03, 40.70]
					]]
				}
			},
			{
				"type": "Feature",
				"properties": {"BoroName": "Brooklyn"},
				"geometry": {
					"type": "MultiPolygon",
					"coordinates": [[[
						[-74.05, 40.57], [-73.85, 40.57],
						[-73.85, 40.70], [-74.05, 40.70],
						[-74.05, 40.57]
					]]]
				}
			}
		]
	}`)
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	require.NoError(t, err)
	return NewBoroughIndex(fc)
}

func TestBoroughLookup(t *testing.T) {
	idx := testBoroughs(t)

	tests := []struct {
		name     string
		lat, lng float64
		want     string
	}{
		{"union square", 40.7359, -73.9911, "Manhattan"},
		{"barclays center", 40.6826, -73.9754, "Brooklyn"},
		{"philadelphia", 39.9526, -75.1652, UnknownBorough},
	}
	for _, tc := range tests {
		if got := idx.Lookup(tc.lat, tc.lng); got != tc.want {
			t.Errorf("%s: Lookup = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNilIndexLookup(t *testing.T) {
	var idx *BoroughIndex
	if got := idx.Lookup(40.7, -74.0); got != UnknownBorough {
		t.Errorf("nil index Lookup = %q", got)
	}
}
