package orchestration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/collatzcheck/internal/bignum"
)

// recordingReporter captures every event together with the loop state
// observed at that time.
type recordingReporter struct {
	mu        sync.Mutex
	loop      *Loop
	plans     []BatchPlan
	reports   []BatchReport
	states    []LoopState
	onStarted func(BatchPlan)
}

func (r *recordingReporter) BatchStarted(plan BatchPlan) {
	r.mu.Lock()
	r.plans = append(r.plans, plan)
	if r.loop != nil {
		r.states = append(r.states, r.loop.State())
	}
	r.mu.Unlock()
	if r.onStarted != nil {
		r.onStarted(plan)
	}
}

func (r *recordingReporter) BatchCompleted(report BatchReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	if r.loop != nil {
		r.states = append(r.states, r.loop.State())
	}
}

func newTestLoop(t *testing.T, threads, perThread, maxBatches uint64) (*Loop, *recordingReporter) {
	t.Helper()
	s, err := NewScheduler(threads, perThread, Options{})
	if err != nil {
		t.Fatal(err)
	}
	rec := &recordingReporter{}
	l := NewLoop(s, rec, maxBatches)
	rec.loop = l
	return l, rec
}

func TestLoop_Scenario(t *testing.T) {
	t.Parallel()
	l, rec := newTestLoop(t, 2, 3, 1)

	frontier, err := l.Run(context.Background(), bignum.Default().FromUint64(1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frontier.String() != "7" || frontier.Batches() != 1 {
		t.Errorf("frontier = %s after %d batches, want 7 after 1", frontier, frontier.Batches())
	}
	if len(rec.reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(rec.reports))
	}
	r := rec.reports[0]
	if r.Start.String() != "1" || r.End.String() != "7" {
		t.Errorf("reported %s - %s, want 1 - 7", r.Start, r.End)
	}
	if r.Size != 6 || r.Verified != 6 || r.Threads != 2 {
		t.Errorf("report = %+v", r)
	}
	if r.MaxStepsAt != nil {
		t.Error("MaxStepsAt should be nil without the diagnostic")
	}
	if r.ElapsedMilliseconds() != r.Elapsed.Milliseconds() {
		t.Error("ElapsedMilliseconds should truncate Elapsed")
	}
}

func TestLoop_StateMachine(t *testing.T) {
	t.Parallel()
	l, rec := newTestLoop(t, 1, 4, 3)

	if l.State() != StateIdle {
		t.Errorf("initial state = %s, want idle", l.State())
	}
	if _, err := l.Run(context.Background(), bignum.Default().FromUint64(5)); err != nil {
		t.Fatal(err)
	}

	want := []LoopState{StateIdle, StateAdvancing, StateIdle, StateAdvancing, StateIdle, StateAdvancing}
	if len(rec.states) != len(want) {
		t.Fatalf("observed %d states, want %d", len(rec.states), len(want))
	}
	for i := range want {
		if rec.states[i] != want[i] {
			t.Errorf("state %d = %s, want %s", i, rec.states[i], want[i])
		}
	}
	if l.State() != StateIdle {
		t.Errorf("final state = %s, want idle", l.State())
	}
}

func TestLoopState_String(t *testing.T) {
	t.Parallel()
	for state, want := range map[LoopState]string{
		StateIdle:          "idle",
		StateBatchInFlight: "batch-in-flight",
		StateAdvancing:     "advancing",
		LoopState(42):      "unknown",
	} {
		if state.String() != want {
			t.Errorf("LoopState(%d).String() = %q, want %q", state, state.String(), want)
		}
	}
}

func TestLoop_ReportsAreContiguous(t *testing.T) {
	t.Parallel()
	l, rec := newTestLoop(t, 3, 5, 4)
	if _, err := l.Run(context.Background(), bignum.Default().FromUint64(10)); err != nil {
		t.Fatal(err)
	}

	for i, r := range rec.reports {
		if r.Index != uint64(i) || rec.plans[i].Index != uint64(i) {
			t.Errorf("batch %d carries index %d / %d", i, r.Index, rec.plans[i].Index)
		}
		if i > 0 && rec.reports[i-1].End.String() != r.Start.String() {
			t.Errorf("batch %d starts at %s, previous ended at %s", i, r.Start, rec.reports[i-1].End)
		}
	}
	if last := rec.reports[len(rec.reports)-1].End.String(); last != "70" {
		t.Errorf("last batch ends at %s, want 70", last)
	}
}

func TestLoop_CancelBetweenBatches(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	l, rec := newTestLoop(t, 2, 2, 0)
	rec.onStarted = func(plan BatchPlan) {
		if plan.Index == 2 {
			cancel()
		}
	}

	done := make(chan error, 1)
	var frontier *Frontier
	go func() {
		var err error
		frontier, err = l.Run(ctx, bignum.Default().FromUint64(1))
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run error = %v, want context.Canceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("DEADLOCK: loop ignored cancellation")
	}

	// The batch in flight when ctx was cancelled still completes.
	if frontier.Batches() != 3 || frontier.String() != "13" {
		t.Errorf("frontier = %s after %d batches, want 13 after 3", frontier, frontier.Batches())
	}
}

func TestLoop_NilReporter(t *testing.T) {
	t.Parallel()
	s, err := NewScheduler(1, 1, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoop(s, nil, 2).Run(context.Background(), bignum.Default().FromUint64(1)); err != nil {
		t.Fatal(err)
	}
}

// TestLoop_FrontierMonotonic_PropertyBased checks that after k completed
// batches of size B the frontier is exactly start + k*B.
func TestLoop_FrontierMonotonic_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("frontier = start + k*B", prop.ForAll(
		func(start, threads, perThread, k uint64) bool {
			s, err := NewScheduler(threads, perThread, Options{})
			if err != nil {
				return false
			}
			origin := bignum.Default().FromUint64(start)
			frontier, err := NewLoop(s, NullReporter{}, k).Run(context.Background(), origin)
			if err != nil {
				return false
			}
			return frontier.Batches() == k &&
				frontier.Next().CmpUint64(start+k*threads*perThread) == 0 &&
				origin.CmpUint64(start) == 0
		},
		gen.UInt64Range(1, 1<<32),
		gen.UInt64Range(1, 4),
		gen.UInt64Range(1, 8),
		gen.UInt64Range(1, 6),
	))

	properties.TestingRun(t)
}
