package media

import (
	"github.com/h2non/filetype"
)

// Kind is the inferred media kind of an attachment.
type Kind int

const (
	Unrecognized Kind = iota
	Image
	Video
)

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return "unrecognized"
	}
}

// Classify inspects the signature prefix of the buffer and reports the media
// kind. Unknown signatures map to Unrecognized; Classify never fails.
func Classify(data []byte) Kind {
	switch {
	case filetype.IsImage(data):
		return Image
	case filetype.IsVideo(data):
		return Video
	default:
		return Unrecognized
	}
}

// Ext returns the canonical file extension for the buffer's signature, or ""
// when the signature is unknown.
func Ext(data []byte) string {
	t, err := filetype.Match(data)
	if err != nil || t == filetype.Unknown {
		return ""
	}
	return t.Extension
}
