package orchestration

import (
	"context"
	"sync/atomic"

	"github.com/agbru/collatzcheck/internal/bignum"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
)

// LoopState is the position of the Loop in its batch cycle.
type LoopState int32

const (
	// StateIdle: between batches, about to plan the next one.
	StateIdle LoopState = iota
	// StateBatchInFlight: workers of the current batch are running.
	StateBatchInFlight
	// StateAdvancing: all workers joined; frontier update and report.
	StateAdvancing
)

// String returns the name of the state.
func (s LoopState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBatchInFlight:
		return "batch-in-flight"
	case StateAdvancing:
		return "advancing"
	}
	return "unknown"
}

// Loop drives the Scheduler one batch after another from a start candidate.
type Loop struct {
	scheduler  *Scheduler
	reporter   BatchReporter
	maxBatches uint64
	state      atomic.Int32
}

// NewLoop creates a batch loop. maxBatches == 0 runs until the context is
// cancelled; a reporter of nil discards every event.
func NewLoop(s *Scheduler, reporter BatchReporter, maxBatches uint64) *Loop {
	if reporter == nil {
		reporter = NullReporter{}
	}
	return &Loop{scheduler: s, reporter: reporter, maxBatches: maxBatches}
}

// State returns the current state. It is safe to call from any goroutine.
func (l *Loop) State() LoopState { return LoopState(l.state.Load()) }

// Run scans from start, advancing the frontier by one batch size after each
// completed batch and reporting it. start is not modified.
//
// Cancellation of ctx is observed only between batches, since an in-flight
// batch cannot be interrupted. Run returns the final frontier together with
// nil once maxBatches batches have completed, or with the wrapped context
// error when ctx is cancelled. With maxBatches == 0 and a context that is
// never cancelled, Run does not return.
func (l *Loop) Run(ctx context.Context, start bignum.Int) (*Frontier, error) {
	frontier := NewFrontier(start)
	size := l.scheduler.BatchSize()

	for {
		l.state.Store(int32(StateIdle))
		if err := ctx.Err(); err != nil {
			return frontier, apperrors.WrapError(err, "scan stopped at %s", frontier)
		}
		if l.maxBatches > 0 && frontier.Batches() >= l.maxBatches {
			return frontier, nil
		}

		plan := l.scheduler.Plan(frontier.Batches(), frontier.Next())
		l.reporter.BatchStarted(plan)

		l.state.Store(int32(StateBatchInFlight))
		res := l.scheduler.Run(ctx, plan)

		l.state.Store(int32(StateAdvancing))
		frontier.Advance(size)
		l.reporter.BatchCompleted(newBatchReport(res))
	}
}

func newBatchReport(res BatchResult) BatchReport {
	steps, at := res.MaxSteps()
	return BatchReport{
		Index:      res.Plan.Index,
		Start:      res.Plan.Start,
		End:        res.Plan.End(),
		Size:       res.Plan.Size,
		Threads:    len(res.Plan.Ranges),
		Elapsed:    res.Elapsed,
		CPUTime:    res.CPUTime,
		Verified:   res.Verified(),
		MaxSteps:   steps,
		MaxStepsAt: at,
	}
}
