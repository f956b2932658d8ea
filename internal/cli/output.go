// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayBanner], [DisplaySettings], [DisplayInterrupted].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatTrying], [FormatPassed].

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/format"
	"github.com/agbru/collatzcheck/internal/ui"
)

// Separator frames the banner and the settings summary.
const Separator = "---"

// Settings is the scan geometry shown before the first batch.
type Settings struct {
	Threads   uint64
	PerThread uint64
	Start     bignum.Int
	Backend   string
}

// DisplayBanner writes the program title.
func DisplayBanner(out io.Writer) {
	fmt.Fprintf(out, "%sCollatz Conjecture Checker%s\n\n%s\n\n", ui.ColorBold(), ui.ColorReset(), Separator)
}

// DisplaySettings writes the scan geometry. The batch size is
// Threads × PerThread, which the caller has validated to fit in 64 bits.
func DisplaySettings(out io.Writer, s Settings) {
	fmt.Fprintf(out, "\n%s\n\nUsing %d threads.\n", Separator, s.Threads)
	fmt.Fprintf(out, "Using %d iterations per thread.\n", s.PerThread)
	fmt.Fprintf(out, "The batch size is %d.\n", s.Threads*s.PerThread)
	fmt.Fprintf(out, "Starting at %s.\n\n%s\n\n", s.Start, Separator)
}

// FormatTrying returns the text printed when a batch is launched.
// end is the exclusive bound of the batch.
func FormatTrying(start, end bignum.Int) string {
	return fmt.Sprintf("Trying %s%s%s - %s%s%s...",
		ui.ColorPrimary(), start, ui.ColorReset(),
		ui.ColorPrimary(), end, ui.ColorReset())
}

// FormatPassed returns the text printed when a batch has joined. The
// duration is truncated to whole milliseconds.
func FormatPassed(elapsed time.Duration) string {
	return fmt.Sprintf(" %sPassed%s (%dms).", ui.ColorGreen(), ui.ColorReset(), elapsed.Milliseconds())
}

// DisplayInterrupted writes the notice shown when the operator stops the
// scan. frontier is the first candidate of the batch that did not complete.
func DisplayInterrupted(out io.Writer, frontier string, batches uint64, uptime time.Duration) {
	fmt.Fprintf(out, "\n%sInterrupted%s after %d batches (%s). Resume with --start %s.\n",
		ui.ColorYellow(), ui.ColorReset(), batches, format.FormatUptime(uptime), frontier)
}
