package report

import (
	"fmt"
	"strconv"
)

const nameWidth = 15

// FormatCount abbreviates large counts the way the channel expects:
// 1,500,000 becomes "1.5M", 12,000 becomes "12K", 999 stays "999".
// Negative counts abbreviate their magnitude and keep the sign.
func FormatCount(n int) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

// SignedCount is FormatCount with an explicit plus on positive values,
// used for net transfer figures.
func SignedCount(n int) string {
	if n > 0 {
		return "+" + FormatCount(n)
	}
	return FormatCount(n)
}

// FormatPrice renders a price held in tenths as the in-game currency,
// e.g. 55 -> "£5.5".
func FormatPrice(tenths int) string {
	return fmt.Sprintf("£%.1f", float64(tenths)/10)
}

// PadName truncates or pads a player name to the fixed column width
func PadName(name string) string {
	runes := []rune(name)
	if len(runes) > nameWidth {
		runes = runes[:nameWidth]
	}
	return fmt.Sprintf("%-*s", nameWidth, string(runes))
}
