package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/collatzcheck/internal/bignum"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(context.Background(), Session{
		Start:   bignum.Default().FromUint64(1),
		Backend: "big",
		Version: "v1.0.0",
	})
	t.Cleanup(m.cancel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func runesKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_ViewBeforeSize(t *testing.T) {
	t.Parallel()
	m := NewModel(context.Background(), Session{Start: bignum.Default().FromUint64(1)})
	defer m.cancel()
	if m.View() != "Initializing..." {
		t.Errorf("View() = %q", m.View())
	}
}

func TestModel_BatchEvents(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	plan := testPlan(0, 1, 2, 3)
	m, _ = update(t, m, BatchStartedMsg{Plan: plan})
	m, _ = update(t, m, BatchCompletedMsg{Report: testReport(plan, 3*time.Millisecond)})

	out := m.Outcome()
	if out.Frontier != "7" || out.Batches != 1 {
		t.Errorf("outcome = %+v, want frontier 7 after 1 batch", out)
	}

	view := m.View()
	for _, want := range []string{"Collatz Conjecture Checker v1.0.0", "backend: big", "1 - 7", "Passed (3ms)", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_PauseHoldsEvents(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m, _ = update(t, m, runesKey('p'))
	if m.footer.Status() != "PAUSED" {
		t.Fatalf("status = %s, want PAUSED", m.footer.Status())
	}

	plan := testPlan(0, 1, 2, 3)
	m, _ = update(t, m, BatchStartedMsg{Plan: plan})
	m, _ = update(t, m, BatchCompletedMsg{Report: testReport(plan, time.Millisecond)})
	if m.Outcome().Batches != 0 {
		t.Error("display should not advance while paused")
	}

	m, _ = update(t, m, runesKey('p'))
	if m.Outcome().Batches != 1 || m.logs.Len() != 1 {
		t.Errorf("held events not applied on resume: batches=%d log=%d", m.Outcome().Batches, m.logs.Len())
	}
}

func TestModel_LongPauseStaysBounded(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m, _ = update(t, m, runesKey('p'))

	const batches = maxLogEntries + 100
	for i := range uint64(batches) {
		plan := testPlan(i, 1+i*6, 2, 3)
		r := testReport(plan, time.Millisecond)
		if i == 3 {
			r.MaxSteps, r.MaxStepsAt = 111, bignum.Default().FromUint64(27)
		}
		m, _ = update(t, m, BatchStartedMsg{Plan: plan})
		m, _ = update(t, m, BatchCompletedMsg{Report: r})
	}
	next := testPlan(batches, 1+batches*6, 2, 3)
	m, _ = update(t, m, BatchStartedMsg{Plan: next})

	if n := len(m.held.reports); n != maxLogEntries {
		t.Fatalf("held %d reports, want at most %d", n, maxLogEntries)
	}
	if m.held.folded.count != 100 {
		t.Errorf("folded %d reports, want 100", m.held.folded.count)
	}

	m, _ = update(t, m, runesKey('p'))
	out := m.Outcome()
	if out.Batches != batches || out.Frontier != next.Start.String() {
		t.Errorf("outcome = %+v, want %d batches ending at %s", out, batches, next.Start)
	}
	if m.metrics.verified != batches*6 {
		t.Errorf("verified = %d, want %d", m.metrics.verified, batches*6)
	}
	if m.metrics.longest != 111 || m.metrics.longestAt != "27" {
		t.Errorf("longest = %d at %s, want 111 at 27 from a folded batch", m.metrics.longest, m.metrics.longestAt)
	}
	if m.metrics.inFlight == nil {
		t.Error("the batch started during the pause should be in flight after resume")
	}
	if m.logs.Len() > maxLogEntries {
		t.Errorf("log kept %d entries, want at most %d", m.logs.Len(), maxLogEntries)
	}
	if !m.held.empty() {
		t.Error("resume should clear the held events")
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		code int
	}{
		{"q", runesKey('q'), apperrors.ExitSuccess},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, apperrors.ExitErrorCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t)
			m, cmd := update(t, m, tt.msg)
			if !isQuit(cmd) {
				t.Fatal("quit key should return tea.Quit")
			}
			if m.ctx.Err() == nil {
				t.Error("quitting should cancel the loop context")
			}
			if m.Outcome().ExitCode != tt.code {
				t.Errorf("exit code = %d, want %d", m.Outcome().ExitCode, tt.code)
			}
		})
	}
}

func TestModel_QuitAfterDone(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m, _ = update(t, m, LoopDoneMsg{Frontier: bignum.Default().FromUint64(7), Batches: 1})
	if m.footer.Status() != "DONE" {
		t.Errorf("status = %s, want DONE", m.footer.Status())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.Outcome().ExitCode != apperrors.ExitSuccess {
		t.Errorf("ctrl+c after completion should exit 0, got %d", m.Outcome().ExitCode)
	}
}

func TestModel_LoopCancelledIsNotDone(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m, _ = update(t, m, LoopDoneMsg{Err: apperrors.WrapError(context.Canceled, "scan stopped")})
	if m.done {
		t.Error("a cancelled loop should not mark the scan as done")
	}
}

func TestModel_ParentCancelled(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m, cmd := update(t, m, contextCancelledMsg{})
	if !isQuit(cmd) {
		t.Fatal("parent cancellation should quit")
	}
	if m.Outcome().ExitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", m.Outcome().ExitCode, apperrors.ExitErrorCanceled)
	}
}

func TestModel_TickSchedulesSampling(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m.done = true
	if _, cmd := update(t, m, TickMsg(time.Now())); cmd != nil {
		t.Error("tick after completion should stop")
	}
}

func TestWatchContextCmd(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := watchContextCmd(ctx)().(contextCancelledMsg); !ok {
		t.Error("watchContextCmd should report cancellation")
	}
}
