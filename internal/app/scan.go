package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/cli"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
	"github.com/agbru/collatzcheck/internal/logging"
	"github.com/agbru/collatzcheck/internal/orchestration"
)

// frontierTracker remembers the last completed frontier so that an
// interrupt can report it without waiting for the in-flight batch.
type frontierTracker struct {
	mu       sync.Mutex
	frontier string
	batches  uint64
}

func newFrontierTracker(start bignum.Int) *frontierTracker {
	return &frontierTracker{frontier: start.String()}
}

func (t *frontierTracker) BatchStarted(orchestration.BatchPlan) {}

func (t *frontierTracker) BatchCompleted(r orchestration.BatchReport) {
	t.mu.Lock()
	t.frontier = r.End.String()
	t.batches = r.Index + 1
	t.mu.Unlock()
}

func (t *frontierTracker) snapshot() (string, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frontier, t.batches
}

type loopResult struct {
	frontier *orchestration.Frontier
	err      error
}

// runScan runs the loop with line output. On interrupt it returns at once;
// the goroutines of a batch in flight die with the process.
func (a *Application) runScan(ctx context.Context, out io.Writer, s *orchestration.Scheduler, reporters orchestration.MultiReporter, start bignum.Int, logger logging.Logger) int {
	tracker := newFrontierTracker(start)
	printer := cli.NewCLIReporter(out, cli.CLIReporterOptions{
		Verbose: a.Config.Verbose,
		Spinner: !a.Config.Quiet && cli.SpinnerWanted(out),
	})
	all := append(orchestration.MultiReporter{printer, tracker}, reporters...)
	loop := orchestration.NewLoop(s, all, a.Config.MaxBatches)

	began := time.Now()
	done := make(chan loopResult, 1)
	go func() {
		f, err := loop.Run(ctx, start)
		done <- loopResult{frontier: f, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return a.interrupted(out, tracker, began, logger)
		}
		logger.Info("scan complete",
			logging.String("frontier", res.frontier.String()),
			logging.Uint64("batches", res.frontier.Batches()),
		)
		return apperrors.ExitSuccess
	case <-ctx.Done():
		return a.interrupted(out, tracker, began, logger)
	}
}

func (a *Application) interrupted(out io.Writer, t *frontierTracker, began time.Time, logger logging.Logger) int {
	frontier, batches := t.snapshot()
	logger.Info("scan interrupted",
		logging.String("frontier", frontier),
		logging.Uint64("batches", batches),
	)
	if !a.Config.Quiet {
		cli.DisplayInterrupted(out, frontier, batches, time.Since(began))
	}
	return apperrors.ExitErrorCanceled
}
