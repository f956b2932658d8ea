package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string.
// Strings that are not plain digit runs are returned unchanged.
func FormatNumberString(s string) string {
	if len(s) <= 3 {
		return s
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return s
		}
	}
	var sb strings.Builder
	sb.Grow(len(s) + len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// TruncateDigits shortens a long decimal string to its first and last edge
// digits around an ellipsis, keeping the digit count visible.
//
// Parameters:
//   - s: The decimal string.
//   - limit: Strings of at most this many characters are returned unchanged.
//   - edges: The number of digits kept on each side.
//
// Returns:
//   - string: The possibly shortened string.
func TruncateDigits(s string, limit, edges int) string {
	if len(s) <= limit || 2*edges >= len(s) {
		return s
	}
	return fmt.Sprintf("%s…%s (%d digits)", s[:edges], s[len(s)-edges:], len(s))
}

// FormatRate formats a per-second rate with a metric suffix, e.g. "1.25M/s".
func FormatRate(perSecond float64) string {
	switch {
	case perSecond >= 1e9:
		return fmt.Sprintf("%.2fG/s", perSecond/1e9)
	case perSecond >= 1e6:
		return fmt.Sprintf("%.2fM/s", perSecond/1e6)
	case perSecond >= 1e3:
		return fmt.Sprintf("%.2fk/s", perSecond/1e3)
	}
	return fmt.Sprintf("%.0f/s", perSecond)
}

// FormatBytes formats a byte count using binary units.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
