//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks

package orchestration

import (
	"time"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/logging"
)

// BatchReport describes a completed batch. It is the shared domain type
// between the engine and the presentation layers.
type BatchReport struct {
	// Index is the zero-based position of the batch in the run.
	Index uint64
	// Start is the first candidate of the batch.
	Start bignum.Int
	// End is the exclusive upper bound, which is also the new frontier.
	End bignum.Int
	// Size is the number of candidates in the batch.
	Size uint64
	// Threads is the number of workers that ran concurrently.
	Threads int
	// Elapsed is the wall-clock time between launch and join.
	Elapsed time.Duration
	// CPUTime is the process CPU time consumed during the batch, or zero
	// where the platform does not report it.
	CPUTime time.Duration
	// Verified is the number of candidates that reached 1.
	Verified uint64
	// MaxSteps and MaxStepsAt describe the longest trajectory of the batch.
	// MaxStepsAt is nil unless the step-count diagnostic is enabled.
	MaxSteps   uint64
	MaxStepsAt bignum.Int
}

// ElapsedMilliseconds returns Elapsed truncated to whole milliseconds.
func (r BatchReport) ElapsedMilliseconds() int64 { return r.Elapsed.Milliseconds() }

// Rate returns the number of candidates verified per second.
func (r BatchReport) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Verified) / r.Elapsed.Seconds()
}

// BatchReporter receives batch lifecycle events from the Loop. Both methods
// are called from the loop goroutine, never concurrently.
//
// Implementations handle the visual representation (text lines, spinners,
// dashboards, metrics) while the orchestration layer focuses on running the
// batches.
type BatchReporter interface {
	// BatchStarted is called after the batch is planned and before its
	// workers are launched.
	BatchStarted(plan BatchPlan)
	// BatchCompleted is called after every worker has joined and the
	// frontier has advanced.
	BatchCompleted(report BatchReport)
}

// NullReporter is a no-op implementation of BatchReporter.
type NullReporter struct{}

// BatchStarted does nothing.
func (NullReporter) BatchStarted(BatchPlan) {}

// BatchCompleted does nothing.
func (NullReporter) BatchCompleted(BatchReport) {}

// MultiReporter fans events out to several reporters in order.
type MultiReporter []BatchReporter

// BatchStarted forwards the event to every reporter.
func (m MultiReporter) BatchStarted(plan BatchPlan) {
	for _, r := range m {
		r.BatchStarted(plan)
	}
}

// BatchCompleted forwards the event to every reporter.
func (m MultiReporter) BatchCompleted(report BatchReport) {
	for _, r := range m {
		r.BatchCompleted(report)
	}
}

// LogReporter writes one structured log entry per batch event.
type LogReporter struct {
	Logger logging.Logger
}

// BatchStarted logs the planned range at debug level.
func (l LogReporter) BatchStarted(plan BatchPlan) {
	l.Logger.Debug("batch started",
		logging.Uint64("batch", plan.Index),
		logging.String("start", plan.Start.String()),
		logging.Uint64("size", plan.Size),
		logging.Int("workers", len(plan.Ranges)),
	)
}

// BatchCompleted logs the outcome of the batch at info level.
func (l LogReporter) BatchCompleted(r BatchReport) {
	fields := []logging.Field{
		logging.Uint64("batch", r.Index),
		logging.String("start", r.Start.String()),
		logging.String("end", r.End.String()),
		logging.Int64("elapsed_ms", r.ElapsedMilliseconds()),
		logging.Uint64("verified", r.Verified),
		logging.Float64("rate", r.Rate()),
	}
	if r.MaxStepsAt != nil {
		fields = append(fields,
			logging.Uint64("max_steps", r.MaxSteps),
			logging.String("max_steps_at", r.MaxStepsAt.String()),
		)
	}
	l.Logger.Info("batch passed", fields...)
}
