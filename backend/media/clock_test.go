package media

import (
	"testing"
	"time"
)

func TestLocalClockRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	widget := FormatLocalClock(now)
	back, err := ParseLocalClock(widget)
	if err != nil {
		t.Fatalf("ParseLocalClock(%q) failed: %v", widget, err)
	}
	if !back.Equal(now) {
		t.Errorf("round trip = %v, want %v", back, now)
	}
}

func TestWireRoundTrip(t *testing.T) {
	// "Now" -> widget string -> ISO wire value -> redisplayed widget string.
	now := time.Now().Truncate(time.Second)
	widget := FormatLocalClock(now)

	instant, err := ParseLocalClock(widget)
	if err != nil {
		t.Fatalf("ParseLocalClock(%q) failed: %v", widget, err)
	}
	wire := FormatISO(instant)

	redisplayed, err := ParseISO(wire)
	if err != nil {
		t.Fatalf("ParseISO(%q) failed: %v", wire, err)
	}
	if got := FormatLocalClock(redisplayed); got != widget {
		t.Errorf("redisplayed widget value = %q, want %q", got, widget)
	}
}

func TestParseISOAcceptsWidgetLayout(t *testing.T) {
	got, err := ParseISO("2018-05-26T23:17:22")
	if err != nil {
		t.Fatalf("ParseISO(widget layout) failed: %v", err)
	}
	want := time.Date(2018, time.May, 26, 23, 17, 22, 0, time.Local).UTC()
	if !got.Equal(want) {
		t.Errorf("ParseISO = %v, want %v", got, want)
	}
}
