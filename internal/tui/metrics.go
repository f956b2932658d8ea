package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/collatzcheck/internal/bignum"
	"github.com/agbru/collatzcheck/internal/format"
	"github.com/agbru/collatzcheck/internal/metrics"
	"github.com/agbru/collatzcheck/internal/orchestration"
)

// historyWidth is the default number of samples kept per sparkline.
const historyWidth = 40

// MetricsModel displays scan progress and runtime metrics.
type MetricsModel struct {
	frontier string
	batches  uint64
	verified uint64
	// rate is an exponential moving average of candidates per second.
	rate       float64
	longest    uint64
	longestAt  string
	inFlight   *orchestration.BatchProgress
	flightFrom time.Time

	// rates holds the candidates per second of each recent batch.
	rates *series
	cpu   *series
	mem   metrics.MemorySnapshot
	load  float64

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel showing start as the frontier.
func NewMetricsModel(start string) MetricsModel {
	return MetricsModel{
		frontier: start,
		rates:    newSeries(historyWidth),
		cpu:      newSeries(historyWidth),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if w > 30 {
		m.rates.setWidth(w - 30)
		m.cpu.setWidth(w - 30)
	}
}

// BatchStarted tracks the progress counter of the in-flight batch.
func (m *MetricsModel) BatchStarted(plan orchestration.BatchPlan) {
	m.inFlight = plan.Progress
	m.flightFrom = time.Now()
}

// BatchCompleted folds a finished batch into the totals.
func (m *MetricsModel) BatchCompleted(r orchestration.BatchReport) {
	m.inFlight = nil
	m.frontier = r.End.String()
	m.batches = r.Index + 1
	m.verified += r.Verified
	rate := r.Rate()
	m.rates.add(rate)
	if rate > 0 {
		if m.rate > 0 {
			m.rate = 0.7*m.rate + 0.3*rate
		} else {
			m.rate = rate
		}
	}
	m.noteLongest(r.MaxSteps, r.MaxStepsAt)
}

// FoldHidden adds batches that were never shown one by one to the totals.
// Their own rates are not part of the average or the rate history.
func (m *MetricsModel) FoldHidden(f foldedReports) {
	m.verified += f.verified
	m.noteLongest(f.longest, f.longestAt)
}

// noteLongest keeps the first candidate with the most steps.
func (m *MetricsModel) noteLongest(steps uint64, at bignum.Int) {
	if at != nil && (m.longestAt == "" || steps > m.longest) {
		m.longest = steps
		m.longestAt = at.String()
	}
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(s metrics.MemorySnapshot) {
	m.mem = s
}

// UpdateSysStats records a CPU sample and the load average.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.add(msg.CPUPercent)
	m.load = msg.Load1
}

// Frontier returns the next candidate to be checked.
func (m MetricsModel) Frontier() string { return m.frontier }

// Batches returns the number of completed batches.
func (m MetricsModel) Batches() uint64 { return m.batches }

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 0)

	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render(" Scan"))
	rows.WriteString("\n")
	rows.WriteString(formatMetricRow("Frontier:", format.TruncateDigits(m.frontier, 40, 12)))

	progress := "idle"
	if m.inFlight != nil {
		f := m.inFlight.Fraction()
		eta := format.BatchETA(f, time.Since(m.flightFrom))
		progress = fmt.Sprintf("%.1f%% (ETA %s)", f*100, format.FormatETA(eta))
	}

	left := []string{
		formatMetricCol("Batches:", format.FormatNumberString(fmt.Sprintf("%d", m.batches)), colWidth),
		formatMetricCol("Rate:", format.FormatRate(m.rate), colWidth),
		formatMetricCol("Batch:", progress, colWidth),
	}
	right := []string{
		formatMetricCol("Verified:", format.FormatNumberString(fmt.Sprintf("%d", m.verified)), colWidth),
		formatMetricCol("Heap:", format.FormatBytes(m.mem.HeapAlloc), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.mem.Goroutines), colWidth),
	}
	for i := range left {
		rows.WriteString("\n")
		rows.WriteString(left[i])
		rows.WriteString(right[i])
	}

	if m.longestAt != "" {
		rows.WriteString("\n")
		rows.WriteString(formatMetricRow("Longest:",
			fmt.Sprintf("%d steps at %s", m.longest, format.TruncateDigits(m.longestAt, 30, 10))))
	}

	rows.WriteString("\n")
	rows.WriteString(formatMetricRow("Batch rate:",
		sparklineStyle.Render(m.rates.render(0))+
			metricValueStyle.Render(" "+format.FormatRate(m.rates.last()))))

	rows.WriteString("\n")
	rows.WriteString(formatMetricRow("CPU:",
		sparklineStyle.Render(m.cpu.render(cpuCeiling))+
			metricValueStyle.Render(fmt.Sprintf(" %.0f%%", m.cpu.last()))+
			metricLabelStyle.Render(fmt.Sprintf("  load %.2f", m.load))))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricRow(label, value string) string {
	return fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := formatMetricRow(label, value)
	// Pad to fixed column width using lipgloss-aware width
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
