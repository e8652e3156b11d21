package media

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// EXIF capture timestamps are local wall-clock strings with no zone. The
// vendor separator is ':' but some encoders use '-' or '/'.
var exifTimeLayouts = []string{
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

func extractImage(data []byte) (Metadata, error) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrNoMetadata, err)
	}

	md := Metadata{}
	if lat, lon, err := gpsCoords(x); err == nil {
		md.Latitude = lat
		md.Longitude = lon
		md.HasLocation = true
	}
	if t, err := captureTime(x); err == nil {
		md.Taken = t
		md.HasTime = true
	}
	if !md.HasLocation && !md.HasTime {
		return Metadata{}, ErrNoMetadata
	}
	return md, nil
}

// ConvertDMS converts a degrees/minutes/seconds triple plus a hemisphere
// reference letter into signed decimal degrees: N and E are positive, S and W
// negative.
func ConvertDMS(deg, min, sec float64, ref string) float64 {
	dd := deg + min/60 + sec/3600
	if ref == "S" || ref == "W" {
		return -dd
	}
	return dd
}

func gpsCoords(x *exif.Exif) (float64, float64, error) {
	latTag, err := x.Get(exif.GPSLatitude)
	if err != nil {
		return 0, 0, err
	}
	lonTag, err := x.Get(exif.GPSLongitude)
	if err != nil {
		return 0, 0, err
	}

	latDeg, latMin, latSec, err := dmsTriple(latTag)
	if err != nil {
		return 0, 0, err
	}
	lonDeg, lonMin, lonSec, err := dmsTriple(lonTag)
	if err != nil {
		return 0, 0, err
	}

	lat := ConvertDMS(latDeg, latMin, latSec, refLetter(x, exif.GPSLatitudeRef, "N"))
	lon := ConvertDMS(lonDeg, lonMin, lonSec, refLetter(x, exif.GPSLongitudeRef, "E"))
	return lat, lon, nil
}

func dmsTriple(tag *tiff.Tag) (deg, min, sec float64, err error) {
	vals := [3]float64{}
	for i := range vals {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return 0, 0, 0, err
		}
		if den == 0 {
			return 0, 0, 0, fmt.Errorf("zero denominator in GPS rational")
		}
		vals[i] = float64(num) / float64(den)
	}
	return vals[0], vals[1], vals[2], nil
}

func refLetter(x *exif.Exif, field exif.FieldName, fallback string) string {
	tag, err := x.Get(field)
	if err != nil {
		return fallback
	}
	s, err := tag.StringVal()
	if err != nil || s == "" {
		return fallback
	}
	return s
}

func captureTime(x *exif.Exif) (time.Time, error) {
	var lastErr error
	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime} {
		tag, err := x.Get(field)
		if err != nil {
			lastErr = err
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			lastErr = err
			continue
		}
		t, err := ParseExifTime(s)
		if err != nil {
			lastErr = err
			continue
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("no capture time: %v", lastErr)
}

// ParseExifTime parses a vendor-formatted capture timestamp as a naive local
// time. The caller decides any offset adjustment.
func ParseExifTime(s string) (time.Time, error) {
	for _, layout := range exifTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported capture time format %q", s)
}
