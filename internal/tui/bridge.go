package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/collatzcheck/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the loop goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
// Messages sent before the program is set are dropped.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Reporter implements orchestration.BatchReporter by forwarding batch
// events to the dashboard as bubbletea messages.
type Reporter struct {
	ref *programRef
}

// Verify interface compliance.
var _ orchestration.BatchReporter = (*Reporter)(nil)

// NewReporter creates a bridge reporter. It is attached to a program by Run.
func NewReporter() *Reporter {
	return &Reporter{ref: &programRef{}}
}

// BatchStarted sends a BatchStartedMsg.
func (r *Reporter) BatchStarted(plan orchestration.BatchPlan) {
	r.ref.Send(BatchStartedMsg{Plan: plan})
}

// BatchCompleted sends a BatchCompletedMsg.
func (r *Reporter) BatchCompleted(report orchestration.BatchReport) {
	r.ref.Send(BatchCompletedMsg{Report: report})
}
