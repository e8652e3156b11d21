package media

import (
	"time"
)

// CreateDateLayout matches the datetime-local form widget: seconds kept, no
// zone designator.
const CreateDateLayout = "2006-01-02T15:04:05"

// FormatLocalClock renders an instant as the local wall-clock string the form
// widget displays. The value is transmitted as true UTC on submission; this
// only adjusts the presentation.
func FormatLocalClock(t time.Time) string {
	return t.In(time.Local).Format(CreateDateLayout)
}

// ParseLocalClock reads a widget value back into a UTC instant.
func ParseLocalClock(s string) (time.Time, error) {
	t, err := time.ParseInLocation(CreateDateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatISO serializes an instant for the wire.
func FormatISO(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// ParseISO accepts the wire format, falling back to the widget layout for
// clients that submit the raw field value.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return ParseLocalClock(s)
}
