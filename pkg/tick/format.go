package tick

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Formatter renders a split value as a tick label.
type Formatter func(v float64) string

// Number returns the default numeric formatter: shortest exact decimal form,
// switching to exponent notation outside [1e-6, 1e12).
func Number() Formatter {
	return func(v float64) string {
		a := math.Abs(v)
		if a != 0 && (a < 1e-6 || a >= 1e12) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

// SI returns a formatter using metric suffixes (k, M, G, ...) with the given
// unit, e.g. SI("B") renders 2.5e6 as "2.5 MB". Useful for byte and count
// axes where full digits would blow the label band.
func SI(unit string) Formatter {
	return func(v float64) string {
		return strings.ReplaceAll(humanize.SIWithDigits(v, 2, unit), " ", "")
	}
}
