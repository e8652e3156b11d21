package media

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"time"

	mp4 "github.com/abema/go-mp4"
)

// The udta ©xyz atom carries an ISO 6709 string such as "+40.7128-074.0060/".
var locationBoxType = mp4.BoxType{0xA9, 'x', 'y', 'z'}

var signedDecimalRe = regexp.MustCompile(`[+-][0-9]+(?:\.[0-9]+)?`)

// mvhd creation_time counts seconds from the QuickTime epoch.
var mp4Epoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

func extractVideo(data []byte) (Metadata, error) {
	md := Metadata{}
	_, err := mp4.ReadBoxStructure(bytes.NewReader(data), func(h *mp4.ReadHandle) (interface{}, error) {
		switch h.BoxInfo.Type {
		case mp4.BoxTypeMoov(), mp4.BoxTypeUdta():
			return h.Expand()
		case mp4.BoxTypeMvhd():
			box, _, err := h.ReadPayload()
			if err != nil {
				return nil, nil
			}
			mvhd, ok := box.(*mp4.Mvhd)
			if !ok {
				return nil, nil
			}
			secs := uint64(mvhd.CreationTimeV0)
			if mvhd.Version == 1 {
				secs = mvhd.CreationTimeV1
			}
			if secs > 0 {
				md.Taken = mp4Epoch.Add(time.Duration(secs) * time.Second)
				md.HasTime = true
			}
		case locationBoxType:
			var buf bytes.Buffer
			if _, err := h.ReadData(&buf); err != nil {
				return nil, nil
			}
			if lat, lon, ok := parseISO6709(buf.String()); ok {
				md.Latitude = lat
				md.Longitude = lon
				md.HasLocation = true
			}
		}
		return nil, nil
	})
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrNoMetadata, err)
	}
	if !md.HasLocation && !md.HasTime {
		return Metadata{}, ErrNoMetadata
	}
	return md, nil
}

// parseISO6709 pulls the first two signed decimals out of a ©xyz payload.
// The payload has a 4-byte length/language prefix which the regexp skips over.
func parseISO6709(s string) (lat, lon float64, ok bool) {
	matches := signedDecimalRe.FindAllString(s, -1)
	if len(matches) < 2 {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(matches[0], 64)
	lon, errLon := strconv.ParseFloat(matches[1], 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
