package orchestration

import (
	"context"
	"math/bits"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/collatz"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
	"github.com/agbru/collatzcheck/internal/sysmon"
)

const tracerName = "github.com/agbru/collatzcheck/internal/orchestration"

// Options configures how the Scheduler runs its workers.
type Options struct {
	// CountSteps enables the stopping-time diagnostic in every worker.
	CountSteps bool
	// LockOSThread gives every worker its own OS thread for the batch.
	LockOSThread bool
}

// BatchResult is the outcome of one Scheduler run.
type BatchResult struct {
	// Plan is the batch that was run, including its progress counter.
	Plan BatchPlan
	// Elapsed is the wall-clock time from launch to join.
	Elapsed time.Duration
	// CPUTime is the process CPU time consumed during the batch.
	CPUTime time.Duration
	// Workers holds one result per sub-range, in sub-range order.
	Workers []collatz.WorkerResult
}

// Verified returns the total number of candidates verified by all workers.
func (r BatchResult) Verified() uint64 {
	var total uint64
	for _, w := range r.Workers {
		total += w.Verified
	}
	return total
}

// MaxSteps returns the longest trajectory across workers. On ties the
// lowest candidate wins, since workers are ordered by ascending start.
// at is nil when the step-count diagnostic was off.
func (r BatchResult) MaxSteps() (steps uint64, at bignum.Int) {
	for _, w := range r.Workers {
		if w.MaxStepsAt == nil {
			continue
		}
		if at == nil || w.MaxSteps > steps {
			steps, at = w.MaxSteps, w.MaxStepsAt
		}
	}
	return steps, at
}

// Scheduler runs batches of threads × perThread candidates, one goroutine
// per sub-range, fresh for every batch.
type Scheduler struct {
	threads   uint64
	perThread uint64
	opts      Options
	logger    zerolog.Logger
	tracer    trace.Tracer
	cpuClock  func() time.Duration
	runRange  func(collatz.Range, collatz.WorkerOptions) collatz.WorkerResult
}

// NewScheduler creates a scheduler. Both counts must be at least 1 and
// their product must fit in 64 bits.
//
// Parameters:
//   - threads: The number of concurrent workers per batch.
//   - perThread: The number of candidates each worker verifies per batch.
//   - opts: Worker options applied to every batch.
//
// Returns:
//   - *Scheduler: The configured scheduler.
//   - error: A ValidationError of class ErrInvalidCount for invalid counts.
func NewScheduler(threads, perThread uint64, opts Options) (*Scheduler, error) {
	if threads == 0 {
		return nil, apperrors.InvalidCount("threads", "must be at least 1")
	}
	if perThread == 0 {
		return nil, apperrors.InvalidCount("per-thread", "must be at least 1")
	}
	if hi, _ := bits.Mul64(threads, perThread); hi != 0 {
		return nil, apperrors.InvalidCount("per-thread", "batch size %d × %d overflows 64 bits", threads, perThread)
	}
	return &Scheduler{
		threads:   threads,
		perThread: perThread,
		opts:      opts,
		logger:    zerolog.Nop(),
		tracer:    otel.Tracer(tracerName),
		cpuClock:  sysmon.ProcessCPUTime,
		runRange:  collatz.RunRange,
	}, nil
}

// SetLogger configures the logger for scheduler debug events.
func (s *Scheduler) SetLogger(l zerolog.Logger) {
	s.logger = l
}

// Threads returns the number of workers per batch.
func (s *Scheduler) Threads() uint64 { return s.threads }

// PerThread returns the number of candidates per worker per batch.
func (s *Scheduler) PerThread() uint64 { return s.perThread }

// BatchSize returns threads × perThread.
func (s *Scheduler) BatchSize() uint64 { return s.threads * s.perThread }

// Plan partitions the batch starting at frontier and attaches a fresh
// progress counter.
func (s *Scheduler) Plan(index uint64, frontier bignum.Int) BatchPlan {
	plan := Partition(frontier, s.threads, s.perThread)
	plan.Index = index
	plan.Progress = NewBatchProgress(plan.Size)
	return plan
}

// RunBatch plans and runs a single batch starting at frontier.
func (s *Scheduler) RunBatch(ctx context.Context, frontier bignum.Int) BatchResult {
	return s.Run(ctx, s.Plan(0, frontier))
}

// Run launches one worker per sub-range of plan, waits for all of them and
// returns the elapsed wall-clock time. Every worker is started before the
// join. There is no cancellation: ctx only parents the tracing span, and a
// worker that never returns blocks Run forever.
func (s *Scheduler) Run(ctx context.Context, plan BatchPlan) BatchResult {
	_, span := s.tracer.Start(ctx, "collatz.batch", trace.WithAttributes(
		attribute.Int64("collatz.batch.index", int64(plan.Index)),
		attribute.Int("collatz.batch.threads", len(plan.Ranges)),
		attribute.Int64("collatz.batch.size", int64(plan.Size)),
		attribute.Int("collatz.batch.start_bits", plan.Start.BitLen()),
	))
	defer span.End()

	if plan.Progress == nil {
		plan.Progress = NewBatchProgress(plan.Size)
	}
	wopts := collatz.WorkerOptions{
		CountSteps:   s.opts.CountSteps,
		LockOSThread: s.opts.LockOSThread,
		Progress:     plan.Progress.Add,
	}

	results := make([]collatz.WorkerResult, len(plan.Ranges))
	var g errgroup.Group

	cpuStart := s.cpuClock()
	start := time.Now()
	for i, r := range plan.Ranges {
		g.Go(func() error {
			results[i] = s.runRange(r, wopts)
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)
	cpu := s.cpuClock() - cpuStart

	s.logger.Debug().
		Uint64("batch", plan.Index).
		Int("workers", len(plan.Ranges)).
		Dur("elapsed", elapsed).
		Dur("cpu", cpu).
		Msg("batch joined")

	return BatchResult{Plan: plan, Elapsed: elapsed, CPUTime: cpu, Workers: results}
}
