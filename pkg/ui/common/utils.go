package common

import (
	"fmt"

	"github.com/muesli/reflow/truncate"
)

// TruncateString is a convenient wrapper around truncate.TruncateString.
func TruncateString(s string, max int) string { //nolint:revive
	if max < 0 {
		max = 0 //nolint:revive
	}
	return truncate.StringWithTail(s, uint(max), "…") //nolint:gosec
}

// ScrollPercent returns a formatted scroll percentage.
func ScrollPercent(p float64) string {
	return fmt.Sprintf("%3.f%%", p*100)
}
