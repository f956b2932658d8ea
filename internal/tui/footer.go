package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders key help and the run status.
type FooterModel struct {
	bindings []key.Binding
	paused   bool
	done     bool
	width    int
}

// NewFooterModel creates a footer listing the short help of km.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{bindings: km.ShortHelp()}
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the scan as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// Status returns the label of the current run status.
func (f FooterModel) Status() string {
	switch {
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the footer.
func (f FooterModel) View() string {
	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	help := " " + strings.Join(parts, footerDescStyle.Render("  "))

	var status string
	switch f.Status() {
	case "DONE":
		status = statusDoneStyle.Render(f.Status())
	case "PAUSED":
		status = statusPausedStyle.Render(f.Status())
	default:
		status = statusRunningStyle.Render(f.Status())
	}

	gap := max(f.width-lipgloss.Width(help)-lipgloss.Width(status)-1, 1)
	return help + strings.Repeat(" ", gap) + status
}
