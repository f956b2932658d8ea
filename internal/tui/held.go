package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/orchestration"
)

// heldEvents buffers batch events while the display is paused. At most
// maxLogEntries reports are kept whole; older ones are folded into totals.
type heldEvents struct {
	// started is the newest batch that has not completed yet.
	started *orchestration.BatchPlan
	reports []orchestration.BatchReport
	folded  foldedReports
}

// foldedReports sums the reports dropped from a pause buffer.
type foldedReports struct {
	count     uint64
	verified  uint64
	longest   uint64
	longestAt bignum.Int
}

func (f *foldedReports) add(r orchestration.BatchReport) {
	f.count++
	f.verified += r.Verified
	if r.MaxStepsAt != nil && (f.longestAt == nil || r.MaxSteps > f.longest) {
		f.longest = r.MaxSteps
		f.longestAt = r.MaxStepsAt
	}
}

// hold records a BatchStartedMsg or BatchCompletedMsg.
func (h *heldEvents) hold(msg tea.Msg) {
	switch msg := msg.(type) {
	case BatchStartedMsg:
		plan := msg.Plan
		h.started = &plan
	case BatchCompletedMsg:
		if h.started != nil && h.started.Index == msg.Report.Index {
			h.started = nil
		}
		if len(h.reports) == maxLogEntries {
			h.folded.add(h.reports[0])
			copy(h.reports, h.reports[1:])
			h.reports = h.reports[:len(h.reports)-1]
		}
		h.reports = append(h.reports, msg.Report)
	}
}

// empty reports whether nothing is held.
func (h *heldEvents) empty() bool {
	return h.started == nil && len(h.reports) == 0
}
