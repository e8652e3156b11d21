package media

import (
	"math"
	"testing"
	"time"
)

func TestConvertDMS(t *testing.T) {
	const epsilon = 1e-4

	testCases := []struct {
		name string
		deg  float64
		min  float64
		sec  float64
		ref  string
		want float64
	}{
		{name: "North positive", deg: 40, min: 42, sec: 46, ref: "N", want: 40.7128},
		{name: "South negative", deg: 40, min: 42, sec: 46, ref: "S", want: -40.7128},
		{name: "East positive", deg: 74, min: 0, sec: 21.6, ref: "E", want: 74.006},
		{name: "West negative", deg: 74, min: 0, sec: 21.6, ref: "W", want: -74.006},
		{name: "Minutes only", deg: 0, min: 30, sec: 0, ref: "N", want: 0.5},
		{name: "Unknown ref stays positive", deg: 10, min: 0, sec: 0, ref: "", want: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ConvertDMS(tc.deg, tc.min, tc.sec, tc.ref)
			if math.Abs(got-tc.want) > epsilon {
				t.Errorf("ConvertDMS(%v, %v, %v, %q) = %v, want %v", tc.deg, tc.min, tc.sec, tc.ref, got, tc.want)
			}
		})
	}
}

func TestParseExifTime(t *testing.T) {
	want := time.Date(2018, time.May, 26, 23, 17, 22, 0, time.Local)

	testCases := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "Vendor colons", in: "2018:05:26 23:17:22"},
		{name: "Dashes", in: "2018-05-26 23:17:22"},
		{name: "Slashes", in: "2018/05/26 23:17:22"},
		{name: "Garbage", in: "yesterday-ish", wantErr: true},
		{name: "Empty", in: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseExifTime(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseExifTime(%q) expected error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExifTime(%q) failed: %v", tc.in, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseExifTime(%q) = %v, want %v", tc.in, got, want)
			}
		})
	}
}
