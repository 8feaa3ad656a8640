package planner

import (
	"strconv"
	"strings"
)

// ParseCost turns a display cost string ("IDR 50,000", "Rp 50.000", "Free")
// into a number, best-effort. Periods and commas are always treated as
// thousands separators; decimal-point currencies are not distinguishable
// with this heuristic. Never fails: anything unparseable degrades to 0.
func ParseCost(s string) float64 {
	s = strings.ReplaceAll(s, ".", "")
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '-' {
			b.WriteRune(r)
		}
	}
	digits := strings.ReplaceAll(b.String(), ",", "")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return float64(n)
}
