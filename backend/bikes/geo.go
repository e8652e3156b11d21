package bikes

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

// earthRadiusMeters matches the s2 reference sphere.
const earthRadiusMeters = 6371010.0

// metersPerBlock is the rough length of a Manhattan street block.
const metersPerBlock = 80.0

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// DistanceMeters is the great-circle distance between two coordinates.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * earthRadiusMeters
}

// RhumbBearing is the constant compass bearing in degrees (0 north, clockwise)
// to steer from the first point to the second.
func RhumbBearing(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	// Shorter way around.
	if dLng > math.Pi {
		dLng -= 2 * math.Pi
	} else if dLng < -math.Pi {
		dLng += 2 * math.Pi
	}

	dPsi := math.Log(math.Tan(phi2/2+math.Pi/4) / math.Tan(phi1/2+math.Pi/4))
	theta := math.Atan2(dLng, dPsi) * 180 / math.Pi
	return math.Mod(theta+360, 360)
}

// CompassDirection maps a bearing in degrees to a 16-wind compass point.
func CompassDirection(bearing float64) string {
	idx := int(math.Mod(bearing+11.25, 360) / 22.5)
	return compassPoints[idx%len(compassPoints)]
}

// BlocksEstimate converts a distance to an approximate count of city blocks,
// rounding up so "about N blocks" never undersells the walk.
func BlocksEstimate(meters float64) int {
	return int(math.Ceil(meters / metersPerBlock))
}

// Annotate fills the rider-relative fields of each station and returns only
// stations with at least one e-bike, nearest first. Stations keep feed order
// when rider coordinates are unknown.
func Annotate(stations []Station, riderLat, riderLng float64, boroughs *BoroughIndex) []Station {
	haveRider := riderLat != 0 || riderLng != 0

	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		if s.EBikesAvailable <= 0 {
			continue
		}
		if boroughs != nil {
			s.Borough = boroughs.Lookup(s.Latitude, s.Longitude)
		}
		if haveRider {
			meters := DistanceMeters(riderLat, riderLng, s.Latitude, s.Longitude)
			blocks := BlocksEstimate(meters)
			s.DistanceMeters = &meters
			s.CompassDirection = CompassDirection(RhumbBearing(riderLat, riderLng, s.Latitude, s.Longitude))
			s.Blocks = &blocks
		}
		out = append(out, s)
	}

	if haveRider {
		sort.SliceStable(out, func(i, j int) bool {
			return *out[i].DistanceMeters < *out[j].DistanceMeters
		})
	}
	return out
}

// TotalEBikes sums availability over a station list.
func TotalEBikes(stations []Station) int {
	total := 0
	for _, s := range stations {
		total += s.EBikesAvailable
	}
	return total
}
