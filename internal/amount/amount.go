// Package amount normalizes free-text currency cells to numeric values.
package amount

import (
	"strconv"
	"strings"
)

// currency markers that appear in Bank of Bhutan statements and ledger cells.
var markers = []string{"Nu.", "BTN", ","}

// Parse converts a currency cell like "Nu. 1,234.50" to its numeric value.
// Missing, empty and unparsable input all yield 0.0 — a malformed cell must
// never abort an extraction, it just contributes nothing.
func Parse(s string) float64 {
	for _, m := range markers {
		s = strings.ReplaceAll(s, m, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}
