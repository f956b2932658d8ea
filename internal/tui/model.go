package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/collatzcheck/internal/bignum"
	apperrors "github.com/agbru/collatzcheck/internal/errors"
	"github.com/agbru/collatzcheck/internal/metrics"
	"github.com/agbru/collatzcheck/internal/orchestration"
	"github.com/agbru/collatzcheck/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 6
	LogsPanelWidthPercent = 55
)

// tickInterval is the refresh period of samples and in-flight progress.
const tickInterval = 500 * time.Millisecond

// Session describes the scan a dashboard drives.
type Session struct {
	// Loop runs the batches. Its reporter must include Reporter.
	Loop *orchestration.Loop
	// Reporter is the bridge the Loop reports through.
	Reporter *Reporter
	// Start is the first candidate of the scan.
	Start bignum.Int
	// Backend and Version are shown in the header.
	Backend string
	Version string
}

// Outcome is what remains of a dashboard session once it exits.
type Outcome struct {
	ExitCode int
	Frontier string
	Batches  uint64
	Elapsed  time.Duration
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// logsWidth returns the width allocated to the batch log panel.
func (l LayoutManager) logsWidth() int {
	return l.width * LogsPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the metrics panel.
func (l LayoutManager) rightWidth() int {
	return l.width - l.logsWidth()
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header  HeaderModel
	logs    BatchLogModel
	metrics MetricsModel
	footer  FooterModel

	keymap KeyMap
	LayoutManager

	parentCtx context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	session   Session
	memory    *metrics.MemoryCollector

	paused   bool
	held     heldEvents
	done     bool
	exitCode int
}

// NewModel creates a dashboard model for s.
func NewModel(parentCtx context.Context, s Session) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	km := DefaultKeyMap()
	return Model{
		header:    NewHeaderModel(s.Version, s.Backend),
		logs:      NewBatchLogModel(),
		metrics:   NewMetricsModel(s.Start.String()),
		footer:    NewFooterModel(km),
		keymap:    km,
		parentCtx: parentCtx,
		ctx:       ctx,
		cancel:    cancel,
		session:   s,
		memory:    metrics.NewMemoryCollector(),
		exitCode:  apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		runLoopCmd(m.ctx, m.session.Loop, m.session.Start),
		watchContextCmd(m.parentCtx),
	)
}

// contextCancelledMsg reports that the parent context was cancelled.
type contextCancelledMsg struct{}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case BatchStartedMsg, BatchCompletedMsg:
		if m.paused {
			m.held.hold(msg)
			return m, nil
		}
		m.apply(msg)
		return m, nil

	case LoopDoneMsg:
		if msg.Err != nil && apperrors.IsContextError(msg.Err) {
			return m, nil
		}
		m.flush()
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg.Snapshot)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case contextCancelledMsg:
		m.exitCode = apperrors.ExitErrorCanceled
		m.header.SetDone()
		return m, tea.Quit
	}

	return m, nil
}

// apply updates the panels with a batch event.
func (m *Model) apply(msg tea.Msg) {
	switch msg := msg.(type) {
	case BatchStartedMsg:
		m.logs.AddStarted(msg.Plan)
		m.metrics.BatchStarted(msg.Plan)
	case BatchCompletedMsg:
		m.logs.MarkPassed(msg.Report)
		m.metrics.BatchCompleted(msg.Report)
	}
}

// flush applies the events held back by a pause.
func (m *Model) flush() {
	if m.held.empty() {
		return
	}
	m.metrics.FoldHidden(m.held.folded)
	for _, r := range m.held.reports {
		m.apply(BatchCompletedMsg{Report: r})
	}
	if m.held.started != nil {
		m.apply(BatchStartedMsg{Plan: *m.held.started})
	}
	m.held = heldEvents{}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		m.flush()
		if msg.String() == "ctrl+c" && !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.header.SetDone()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		if !m.paused {
			m.flush()
		}
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// Outcome summarizes the session as last displayed.
func (m Model) Outcome() Outcome {
	return Outcome{
		ExitCode: m.exitCode,
		Frontier: m.metrics.Frontier(),
		Batches:  m.metrics.Batches(),
		Elapsed:  m.header.Elapsed(),
	}
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.logs.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(m.logsWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.bodyHeight())
}

// Run is the public entry point for the dashboard mode.
// It attaches the session's reporter to a new bubbletea program, runs the
// loop in the background and blocks until the user quits or ctx is
// cancelled. The loop is cancelled on return; a batch still in flight is
// abandoned.
func Run(ctx context.Context, s Session) Outcome {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so the loop can Send.
	s.Reporter.ref.SetProgram(p)
	defer s.Reporter.ref.SetProgram(nil)

	finalModel, err := p.Run()
	m, ok := finalModel.(Model)
	if !ok {
		return Outcome{ExitCode: apperrors.ExitErrorGeneric, Frontier: s.Start.String()}
	}
	out := m.Outcome()
	if err != nil && out.ExitCode == apperrors.ExitSuccess {
		out.ExitCode = apperrors.ExitErrorGeneric
	}
	return out
}

// runLoopCmd runs the batch loop until it stops and reports where it ended.
func runLoopCmd(ctx context.Context, loop *orchestration.Loop, start bignum.Int) tea.Cmd {
	return func() tea.Msg {
		f, err := loop.Run(ctx, start)
		return LoopDoneMsg{Frontier: f.Next(), Batches: f.Batches(), Err: err}
	}
}

// watchContextCmd waits for ctx to be cancelled.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return contextCancelledMsg{}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg{Snapshot: mc.Snapshot()}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
			Load1:      s.Load1,
		}
	}
}
