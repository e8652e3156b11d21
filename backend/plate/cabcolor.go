package plate

import "regexp"

// CabColor is the medallion class inferred from a recognized plate string.
type CabColor string

const (
	CabYellow  CabColor = "Yellow"
	CabGreen   CabColor = "Green"
	CabBlack   CabColor = "Black"
	CabUnknown CabColor = ""
)

type colorRule struct {
	pattern *regexp.Regexp
	color   CabColor
}

// Rules are checked in order; the first match wins. Yellow medallions are
// a digit, a letter, then two digits. Green (street hail livery) plates end
// in C. Everything else that looks like a TLC plate is treated as black car.
var colorRules = []colorRule{
	{regexp.MustCompile(`^[0-9][A-Z][0-9]{2}$`), CabYellow},
	{regexp.MustCompile(`^[A-Z]{2}[0-9]{3}C$`), CabGreen},
	{regexp.MustCompile(`^T[0-9]{6}C$`), CabBlack},
}

// InferCabColor classifies a plate string into a medallion color. Plates that
// match no rule return CabUnknown.
func InferCabColor(plate string) CabColor {
	for _, r := range colorRules {
		if r.pattern.MatchString(plate) {
			return r.color
		}
	}
	return CabUnknown
}
