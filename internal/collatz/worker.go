package collatz

import (
	"runtime"

	"github.com/agbru/collatzcheck/internal/bignum"
)

// ProgressInterval is the number of candidates a worker verifies between two
// progress callbacks.
const ProgressInterval = 1 << 12

// WorkerOptions tunes a single worker run. The zero value verifies the range
// with no diagnostics and no progress reporting.
type WorkerOptions struct {
	// CountSteps enables the stopping-time diagnostic: each candidate is
	// checked with StoppingTime and the longest trajectory is recorded.
	CountSteps bool
	// Progress, if set, receives the number of candidates verified since the
	// previous call. It is invoked from the worker goroutine and must be
	// safe for concurrent use across workers.
	Progress func(delta uint64)
	// LockOSThread pins the worker goroutine to its own OS thread. The
	// thread is not returned to the scheduler and dies with the goroutine.
	LockOSThread bool
}

// WorkerResult summarizes one worker run.
type WorkerResult struct {
	// Verified is the number of candidates that reached 1.
	Verified uint64
	// MaxSteps is the longest stopping time seen, when CountSteps is set.
	MaxSteps uint64
	// MaxStepsAt is the first candidate reaching MaxSteps, or nil when
	// CountSteps is not set.
	MaxStepsAt bignum.Int
}

// RunRange verifies the r.Count consecutive candidates starting at r.Start in
// ascending order and returns once all of them have reached 1. r.Start is
// not modified; the worker advances a private cursor.
func RunRange(r Range, opts WorkerOptions) WorkerResult {
	if opts.LockOSThread {
		// No matching UnlockOSThread: the thread exits with the goroutine.
		runtime.LockOSThread()
	}

	var res WorkerResult
	cursor := r.Start.Clone()
	var pending uint64

	for i := uint64(0); i < r.Count; i++ {
		if opts.CountSteps {
			if steps := StoppingTime(cursor); res.MaxStepsAt == nil || steps > res.MaxSteps {
				res.MaxSteps = steps
				res.MaxStepsAt = cursor.Clone()
			}
		} else {
			Verify(cursor)
		}
		res.Verified++
		cursor.AddUint64(1)

		if opts.Progress != nil {
			pending++
			if pending == ProgressInterval {
				opts.Progress(pending)
				pending = 0
			}
		}
	}

	if opts.Progress != nil && pending > 0 {
		opts.Progress(pending)
	}
	return res
}
