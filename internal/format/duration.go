package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// FormatUptime formats a run duration as H:MM:SS, or D-HH:MM:SS past a day.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days, rem := total/86400, total%86400
	h, m, s := rem/3600, rem%3600/60, rem%60
	if days > 0 {
		return fmt.Sprintf("%d-%02d:%02d:%02d", days, h, m, s)
	}
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// BatchETA estimates the time left in a batch from the fraction of
// candidates verified so far and the time spent. It returns 0 until some
// progress has been made.
func BatchETA(fraction float64, elapsed time.Duration) time.Duration {
	if fraction <= 0 || elapsed <= 0 {
		return 0
	}
	if fraction >= 1 {
		return 0
	}
	total := time.Duration(float64(elapsed) / fraction)
	return total - elapsed
}

// FormatETA formats an estimate for display, rounding to whole seconds.
// A zero estimate prints as "--".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "--"
	}
	if eta < time.Second {
		return "<1s"
	}
	return eta.Round(time.Second).String()
}
