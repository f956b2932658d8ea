package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/agbru/collatzcheck/internal/format"
	"github.com/agbru/collatzcheck/internal/orchestration"
	"github.com/agbru/collatzcheck/internal/sysmon"
	"github.com/agbru/collatzcheck/internal/ui"
)

// CLIReporter implements orchestration.BatchReporter for line output.
//
// Every batch produces the line "Trying A - B... Passed (Nms)." where B is
// the exclusive end of the batch. Without a spinner the first half is
// written when the batch starts and the second when it joins. With a
// spinner the in-flight line shows the percentage verified, and the full
// line is written once the batch joins.
type CLIReporter struct {
	out     io.Writer
	verbose bool
	spin    bool

	mu      sync.Mutex
	spinner Spinner
	stop    chan struct{}
	done    chan struct{}
	started time.Time
}

// Verify interface compliance.
var _ orchestration.BatchReporter = (*CLIReporter)(nil)

// CLIReporterOptions configures a CLIReporter.
type CLIReporterOptions struct {
	// Verbose adds a statistics line after every batch.
	Verbose bool
	// Spinner shows an animated progress indicator while a batch runs.
	Spinner bool
}

// NewCLIReporter creates a reporter writing to out.
func NewCLIReporter(out io.Writer, opts CLIReporterOptions) *CLIReporter {
	return &CLIReporter{out: out, verbose: opts.Verbose, spin: opts.Spinner}
}

// SpinnerWanted reports whether a spinner is appropriate for out: it must
// be a terminal.
func SpinnerWanted(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && ui.IsTerminal(f)
}

// BatchStarted writes or animates the "Trying" half of the batch line.
func (r *CLIReporter) BatchStarted(plan orchestration.BatchPlan) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.started = time.Now()
	trying := FormatTrying(plan.Start, plan.End())
	if !r.spin {
		fmt.Fprint(r.out, trying)
		return
	}

	r.spinner = newSpinner(r.out)
	r.spinner.UpdateSuffix(" " + trying)
	r.spinner.Start()
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.animate(r.spinner, trying, plan.Progress, r.started, r.stop, r.done)
}

// animate refreshes the spinner suffix with the batch progress until stop
// is closed.
func (r *CLIReporter) animate(s Spinner, trying string, progress *orchestration.BatchProgress, started time.Time, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.UpdateSuffix(" " + FormatProgressSuffix(trying, progress.Fraction(), time.Since(started)))
		}
	}
}

// FormatProgressSuffix returns the spinner text for an in-flight batch.
func FormatProgressSuffix(trying string, fraction float64, elapsed time.Duration) string {
	return fmt.Sprintf("%s %s %5.1f%% ETA %s",
		trying, progressBar(fraction, ProgressBarWidth), fraction*100,
		format.FormatETA(format.BatchETA(fraction, elapsed)))
}

// BatchCompleted writes the "Passed" half of the batch line, preceded by
// the "Trying" half when a spinner was shown.
func (r *CLIReporter) BatchCompleted(report orchestration.BatchReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.spinner != nil {
		close(r.stop)
		<-r.done
		r.spinner.Stop()
		r.spinner = nil
		fmt.Fprint(r.out, FormatTrying(report.Start, report.End))
	}
	fmt.Fprintln(r.out, FormatPassed(report.Elapsed))

	if r.verbose {
		fmt.Fprintln(r.out, FormatBatchStats(report))
	}
}

// FormatBatchStats returns the verbose statistics line of a batch.
func FormatBatchStats(report orchestration.BatchReport) string {
	line := fmt.Sprintf("  %s%s verified, %s, %d threads",
		ui.ColorSecondary(), format.FormatNumberString(fmt.Sprint(report.Verified)),
		format.FormatRate(report.Rate()), report.Threads)
	if report.CPUTime > 0 {
		util := sysmon.Utilization(report.CPUTime.Seconds(), report.Elapsed.Seconds(), report.Threads)
		line += fmt.Sprintf(", cpu %s (%.0f%% of threads)", format.FormatExecutionDuration(report.CPUTime), util*100)
	}
	if report.MaxStepsAt != nil {
		line += fmt.Sprintf(", longest trajectory %d steps at %s", report.MaxSteps, report.MaxStepsAt)
	}
	return line + ui.ColorReset()
}
