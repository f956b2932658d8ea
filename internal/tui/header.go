package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/collatzcheck/internal/format"
)

// HeaderModel renders the top bar: title, version, backend, elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	backend   string
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, backend string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		backend:   backend,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the header was created, frozen by SetDone.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Collatz Conjecture Checker"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := versionStyle.Render(" | ")
	backend := versionStyle.Render("backend: " + h.backend)
	elapsed := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatUptime(h.Elapsed())))

	row := title + pipe + backend + pipe + elapsed

	innerWidth := h.width - 2
	if gap := innerWidth - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}

	return headerStyle.Width(h.width).Render(row)
}
