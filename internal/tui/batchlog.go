package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/collatzcheck/internal/format"
	"github.com/agbru/collatzcheck/internal/orchestration"
)

// maxLogEntries bounds the batch history kept in memory.
const maxLogEntries = 500

// rangeDigits is how many digits of each bound are shown before eliding.
const rangeDigits = 24

type logEntry struct {
	index   uint64
	start   string
	end     string
	passed  bool
	elapsed time.Duration
}

// BatchLogModel lists the most recent batches, newest at the bottom.
type BatchLogModel struct {
	entries []logEntry
	// offset counts lines scrolled up from the newest entry.
	offset int
	keymap KeyMap
	width  int
	height int
}

// NewBatchLogModel creates an empty batch log.
func NewBatchLogModel() BatchLogModel {
	return BatchLogModel{keymap: DefaultKeyMap()}
}

// SetSize updates dimensions.
func (l *BatchLogModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Len returns the number of entries kept.
func (l BatchLogModel) Len() int { return len(l.entries) }

// AddStarted appends a pending entry for plan.
func (l *BatchLogModel) AddStarted(plan orchestration.BatchPlan) {
	l.entries = append(l.entries, logEntry{
		index: plan.Index,
		start: plan.Start.String(),
		end:   plan.End().String(),
	})
	l.trim()
}

// MarkPassed completes the entry of report, appending one if the start
// event was never seen.
func (l *BatchLogModel) MarkPassed(report orchestration.BatchReport) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].index == report.Index {
			l.entries[i].passed = true
			l.entries[i].elapsed = report.Elapsed
			return
		}
	}
	l.entries = append(l.entries, logEntry{
		index:   report.Index,
		start:   report.Start.String(),
		end:     report.End.String(),
		passed:  true,
		elapsed: report.Elapsed,
	})
	l.trim()
}

func (l *BatchLogModel) trim() {
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

// Update handles scrolling keys.
func (l *BatchLogModel) Update(msg tea.KeyMsg) {
	page := max(l.visibleLines(), 1)
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.offset++
	case key.Matches(msg, l.keymap.Down):
		l.offset--
	case key.Matches(msg, l.keymap.PageUp):
		l.offset += page
	case key.Matches(msg, l.keymap.PageDown):
		l.offset -= page
	}
	l.clampOffset()
}

func (l *BatchLogModel) clampOffset() {
	maxOffset := len(l.entries) - l.visibleLines()
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// visibleLines is the panel height minus its border and title.
func (l BatchLogModel) visibleLines() int {
	return max(l.height-3, 0)
}

// Lines returns the rendered entries currently in view, oldest first.
func (l BatchLogModel) Lines() []string {
	n := l.visibleLines()
	end := len(l.entries) - l.offset
	if end > len(l.entries) {
		end = len(l.entries)
	}
	begin := max(end-n, 0)

	lines := make([]string, 0, end-begin)
	for _, e := range l.entries[begin:end] {
		lines = append(lines, renderEntry(e))
	}
	return lines
}

func renderEntry(e logEntry) string {
	idx := logIndexStyle.Render(fmt.Sprintf("#%-5d", e.index+1))
	rng := logRangeStyle.Render(fmt.Sprintf("%s - %s",
		format.TruncateDigits(e.start, rangeDigits, 8),
		format.TruncateDigits(e.end, rangeDigits, 8)))
	if !e.passed {
		return idx + " " + rng + " " + logPendingStyle.Render("running...")
	}
	status := logPassedStyle.Render(fmt.Sprintf("Passed (%dms)", e.elapsed.Milliseconds()))
	return idx + " " + rng + " " + status
}

// View renders the panel.
func (l BatchLogModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" Batches"))
	for _, line := range l.Lines() {
		b.WriteString("\n ")
		b.WriteString(line)
	}
	return panelStyle.
		Width(max(l.width-2, 0)).
		Height(max(l.height-2, 0)).
		Render(b.String())
}
