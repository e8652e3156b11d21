package plate

import "testing"

func TestInferCabColor(t *testing.T) {
	tests := []struct {
		plate string
		want  CabColor
	}{
		{"6Y12", CabYellow},
		{"1A23", CabYellow},
		{"AB123C", CabGreen},
		{"T123456C", CabBlack},
		{"ABC1234", CabUnknown},
		{"", CabUnknown},
	}
	for _, tc := range tests {
		if got := InferCabColor(tc.plate); got != tc.want {
			t.Errorf("InferCabColor(%q) = %q, want %q", tc.plate, got, tc.want)
		}
	}
}

// Earlier rules win when a plate could match more than one pattern.
func TestInferCabColorOrder(t *testing.T) {
	if got := InferCabColor("6Y12"); got != CabYellow {
		t.Errorf("expected yellow for medallion format, got %q", got)
	}
}
