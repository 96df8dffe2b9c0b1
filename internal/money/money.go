// Package money formats VND amounts for display. VND has no minor unit, so
// amounts are plain integers everywhere in this codebase; formatting is
// digit grouping only and never touches floating point.
package money

import "strconv"

// VND formats an integer amount in the Vietnamese convention: digits
// grouped by dots with a trailing đồng glyph, e.g. 250000 -> "250.000₫".
func VND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Group digits in threes from the right.
	n := len(digits)
	groups := (n + 2) / 3
	out := make([]byte, 0, n+groups-1)
	for i, c := range []byte(digits) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}

	s := string(out) + "₫"
	if neg {
		s = "-" + s
	}
	return s
}
