// Package format holds the display formatters shared by every view: the
// 1024-tiered XP magnitude label, integer percentages, thousands grouping,
// and timestamps.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"profilehub/internal/domain/payload"
)

// Tier boundaries for the magnitude label. This is a display-only unit
// metaphor borrowed from byte scaling, not real byte semantics.
const (
	kilo = 1024
	mega = 1024 * 1024
)

// Magnitude renders an XP amount in its display unit: below 1024 as a bare
// integer with an "XP" suffix, below 1024^2 as two-decimal "KB", and
// everything above as two-decimal "MB" with no upper tier.
func Magnitude(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	switch {
	case math.Abs(n) < kilo:
		return fmt.Sprintf("%d XP", int64(n))
	case math.Abs(n) < mega:
		return fmt.Sprintf("%.2f KB", n/kilo)
	default:
		return fmt.Sprintf("%.2f MB", n/mega)
	}
}

// Percent renders value/total as a whole percentage. A zero total renders as
// "0%" rather than dividing by zero.
func Percent(value, total float64) string {
	return fmt.Sprintf("%d%%", PercentInt(value, total))
}

// PercentInt is Percent without the suffix, for callers that need the number.
func PercentInt(value, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(value / total * 100))
}

// Thousands renders n as a grouped integer, e.g. 1234567 -> "1,234,567".
func Thousands(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		n = 0
	}
	return humanize.Comma(int64(n))
}

// Timestamp renders an upstream timestamp string for display. Absent or
// unparseable input renders empty.
func Timestamp(iso string) string {
	ts := payload.ParseTime(iso)
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.DateTime)
}
