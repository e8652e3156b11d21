package bikes

import (
	"github.com/golang/geo/s2"
	geojson "github.com/paulmach/go.geojson"
)

// UnknownBorough is returned for points outside every borough polygon.
const UnknownBorough = "(unknown borough)"

// BoroughIndex answers point-in-borough queries over the NYC borough
// boundary collection. Boundaries are MultiPolygons (each borough has
// islands); only outer rings are indexed, holes in the source data are
// negligible at station scale.
type BoroughIndex struct {
	regions []boroughRegion
}

type boroughRegion struct {
	name  string
	loops []*s2.Loop
}

// NewBoroughIndex builds an index from the borough boundary feature
// collection. Features without a BoroName property are skipped.
func NewBoroughIndex(fc *geojson.FeatureCollection) *BoroughIndex {
	idx := &BoroughIndex{}
	for _, f := range fc.Features {
		name, err := f.PropertyString("BoroName")
		if err != nil || f.Geometry == nil {
			continue
		}
		region := boroughRegion{name: name}
		switch {
		case f.Geometry.IsPolygon():
			if loop := loopFromRings(f.Geometry.Polygon); loop != nil {
				region.loops = append(region.loops, loop)
			}
		case f.Geometry.IsMultiPolygon():
			for _, poly := range f.Geometry.MultiPolygon {
				if loop := loopFromRings(poly); loop != nil {
					region.loops = append(region.loops, loop)
				}
			}
		}
		if len(region.loops) > 0 {
			idx.regions = append(idx.regions, region)
		}
	}
	return idx
}

// Lookup returns the borough containing the point, or UnknownBorough.
func (idx *BoroughIndex) Lookup(latitude, longitude float64) string {
	if idx == nil {
		return UnknownBorough
	}
	p := s2.PointFromLatLng(s2.LatLngFromDegrees(latitude, longitude))
	for _, region := range idx.regions {
		for _, loop := range region.loops {
			if loop.ContainsPoint(p) {
				return region.name
			}
		}
	}
	return UnknownBorough
}

// loopFromRings builds a normalized loop from a polygon's outer ring.
// GeoJSON rings repeat the first vertex at the end; s2 loops must not.
func loopFromRings(rings [][][]float64) *s2.Loop {
	if len(rings) == 0 {
		return nil
	}
	outer := rings[0]
	if len(outer) > 1 {
		first, last := outer[0], outer[len(outer)-1]
		if first[0] == last[0] && first[1] == last[1] {
			outer = outer[:len(outer)-1]
		}
	}
	if len(outer) < 3 {
		return nil
	}
	points := make([]s2.Point, 0, len(outer))
	for _, coord := range outer {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(coord[1], coord[0])))
	}
	loop := s2.LoopFromPoints(points)
	loop.Normalize()
	return loop
}
