package media

import (
	"errors"
	"time"
)

// Metadata is the best-effort location and capture time pulled out of an
// attachment. Either half may be absent; callers fall back to the device
// location and the current time.
type Metadata struct {
	Latitude    float64
	Longitude   float64
	HasLocation bool

	Taken   time.Time
	HasTime bool
}

var (
	// ErrNoMetadata marks a recoverable extraction failure: the attachment is
	// a valid image/video but carries no usable embedded metadata.
	ErrNoMetadata = errors.New("no embedded metadata")

	// ErrUnrecognized marks an attachment that is neither a recognized image
	// nor a recognized video.
	ErrUnrecognized = errors.New("not an image/video")
)

// Extract reads embedded location and capture-time metadata from an
// attachment, choosing the strategy by its file signature: EXIF tags for
// images, container atoms for MP4 video.
func Extract(data []byte) (Metadata, error) {
	switch Classify(data) {
	case Image:
		return extractImage(data)
	case Video:
		return extractVideo(data)
	default:
		return Metadata{}, ErrUnrecognized
	}
}
