package tui

import (
	"context"
	"testing"
	"time"

	"github.com/agbru/collatzcheck/internal/orchestration"
)

func TestProgramRef_SendWithoutProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}
	// Must not panic or block when no program is attached.
	ref.Send(TickMsg(time.Now()))
}

func TestReporter_ImplementsBatchReporter(t *testing.T) {
	t.Parallel()
	var r orchestration.BatchReporter = NewReporter()
	plan := testPlan(0, 1, 2, 3)
	r.BatchStarted(plan)
	r.BatchCompleted(testReport(plan, time.Millisecond))
}

func TestReporter_UsableAsLoopReporter(t *testing.T) {
	t.Parallel()
	s, err := orchestration.NewScheduler(2, 3, orchestration.Options{})
	if err != nil {
		t.Fatal(err)
	}
	r := NewReporter()
	loop := orchestration.NewLoop(s, orchestration.MultiReporter{r}, 2)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f, err := loop.Run(context.Background(), testPlan(0, 1, 1, 1).Start)
		if err != nil {
			t.Errorf("Run: %v", err)
			return
		}
		if f.String() != "13" {
			t.Errorf("frontier = %s, want 13", f)
		}
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("loop reporting to a detached bridge did not finish")
	}
}
