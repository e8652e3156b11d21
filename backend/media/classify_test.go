package media

import (
	"testing"
)

var (
	jpegSig = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}
	pngSig  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	mp4Sig  = []byte{
		0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p',
		'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
		'i', 's', 'o', 'm', 'i', 's', 'o', '2',
	}
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want Kind
	}{
		{name: "JPEG", data: jpegSig, want: Image},
		{name: "PNG", data: pngSig, want: Image},
		{name: "MP4", data: mp4Sig, want: Video},
		{name: "Garbage", data: []byte("definitely not a media file"), want: Unrecognized},
		{name: "Empty", data: nil, want: Unrecognized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Same bytes must always classify the same way.
			for i := 0; i < 2; i++ {
				if got := Classify(tc.data); got != tc.want {
					t.Errorf("Classify() call %d = %v, want %v", i+1, got, tc.want)
				}
			}
		})
	}
}

func TestExt(t *testing.T) {
	if got := Ext(jpegSig); got != "jpg" {
		t.Errorf("Ext(jpeg) = %q, want %q", got, "jpg")
	}
	if got := Ext(mp4Sig); got != "mp4" {
		t.Errorf("Ext(mp4) = %q, want %q", got, "mp4")
	}
	if got := Ext([]byte("nope")); got != "" {
		t.Errorf("Ext(garbage) = %q, want empty", got)
	}
}
