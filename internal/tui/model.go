// Package tui implements the terminal workshop board.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/cli"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model holds the main TUI state.
type Model struct {
	fetchedAt  time.Time
	layout     *board.Layout
	theme      themes.Theme
	config     Config
	keymap     KeyMap
	status     string
	help       help.Model
	spinner    spinner.Model
	totalCount int
	width      int
	height     int
	col        int
	row        int
	statusKind statusKind
	loading    bool
	truncated  bool
	ready      bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	h := help.New()
	h.Width = cfg.Width

	return Model{
		config:  cfg,
		keymap:  DefaultKeyMap(),
		theme:   cfg.Theme,
		spinner: sp,
		help:    h,
		width:   cfg.Width,
		height:  cfg.Height,
		loading: true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchBoard(), m.scheduleRefresh())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case boardLoadedMsg:
		m.applyBoard(msg.board)
		return m, nil

	case moveResultMsg:
		m.handleMoveResult(msg)
		return m, nil

	case refreshTickMsg:
		cmds := []tea.Cmd{m.scheduleRefresh()}
		if !m.loading && !m.hasPending() {
			m.loading = true
			cmds = append(cmds, m.fetchBoard(), m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	return m.renderBoard()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen

	case key.Matches(msg, m.keymap.Refresh):
		if m.loading {
			return m, nil
		}
		if m.hasPending() {
			m.setStatus(statusInfo, "Waiting for Cin7 before refreshing")
			return m, nil
		}
		m.loading = true
		m.setStatus(statusInfo, "Refreshing board")
		return m, tea.Batch(m.fetchBoard(), m.spinner.Tick)
	}

	if m.layout == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.MoveLeft), key.Matches(msg, m.keymap.MoveRight):
		if m.loading {
			m.setStatus(statusInfo, "Refreshing board; try the move again once it loads")
			return m, nil
		}
		if key.Matches(msg, m.keymap.MoveLeft) {
			return m, m.moveSelected(-1)
		}
		return m, m.moveSelected(1)
	case key.Matches(msg, m.keymap.Up):
		m.row--
	case key.Matches(msg, m.keymap.Down):
		m.row++
	case key.Matches(msg, m.keymap.Left):
		m.col--
	case key.Matches(msg, m.keymap.Right):
		m.col++
	case key.Matches(msg, m.keymap.Home):
		m.row = 0
	case key.Matches(msg, m.keymap.End):
		m.row = len(m.layout.Column(m.stage())) - 1
	}
	m.clampCursor()
	return m, nil
}

// applyBoard swaps in a new snapshot, keeping the cursor on the same job
// when it is still on the board.
func (m *Model) applyBoard(b board.Board) {
	if b.Truncated && b.TotalCount == 0 && m.layout != nil {
		m.loading = false
		m.setStatus(statusError, "Could not reach Cin7; showing the last board. Press r to retry")
		return
	}

	selectedID, hadSelection := int64(0), false
	if order, ok := m.selected(); ok && order.HasID {
		selectedID, hadSelection = order.ID, true
	}

	m.layout = board.NewLayout(b)
	m.fetchedAt = b.FetchedAt
	m.totalCount = b.TotalCount
	m.truncated = b.Truncated
	m.loading = false
	m.ready = true

	if hadSelection {
		if stage, index, ok := m.layout.Find(selectedID); ok {
			m.col = stageIndex(stage)
			m.row = index
		}
	}
	m.clampCursor()

	if b.Truncated {
		m.setStatus(statusError, "Cin7 stopped responding part way through; showing a partial board")
	}
}

// moveSelected moves the selected job one stage left or right. The move is
// shown immediately and confirmed or reverted once Cin7 answers.
func (m *Model) moveSelected(delta int) tea.Cmd {
	order, ok := m.selected()
	if !ok {
		return nil
	}

	stages := model.Stages()
	target := m.col + delta
	if target < 0 || target >= len(stages) {
		return nil
	}

	ref := cli.Plain(order.Reference)
	if !order.HasID {
		m.setStatus(statusError, fmt.Sprintf("%s has no Cin7 id and cannot be moved", ref))
		return nil
	}

	toStage := stages[target]
	p, err := m.layout.Move(order.ID, toStage, len(m.layout.Column(toStage)))
	if err != nil {
		m.setStatus(statusError, err.Error())
		return nil
	}

	m.col = target
	m.row = p.ToIndex
	m.setStatus(statusInfo, fmt.Sprintf("Moving %s to %s", ref, toStage.Short()))
	return m.submitMove(p)
}

func (m *Model) handleMoveResult(msg moveResultMsg) {
	if m.layout == nil {
		return
	}

	ref := fmt.Sprintf("#%d", msg.pending.OrderID)
	if stage, index, ok := m.layout.Find(msg.pending.OrderID); ok {
		ref = cli.Plain(m.layout.Column(stage)[index].Reference)
	}

	if msg.result.Success {
		m.layout.Commit(msg.pending)
		m.setStatus(statusSuccess, fmt.Sprintf("Moved %s to %s", ref, msg.pending.To.Short()))
		return
	}

	if err := m.layout.Revert(msg.pending); err != nil {
		slog.Warn("Could not revert failed move", "order_id", msg.pending.OrderID, "error", err)
	}
	m.setStatus(statusError, fmt.Sprintf("Could not move %s: %s", ref, msg.result.Error))
	m.clampCursor()
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m Model) hasPending() bool {
	return m.layout != nil && m.layout.HasPending()
}

func (m Model) stage() model.Stage {
	return model.Stages()[m.col]
}

func (m Model) selected() (model.Order, bool) {
	if m.layout == nil {
		return model.Order{}, false
	}
	col := m.layout.Column(m.stage())
	if m.row < 0 || m.row >= len(col) {
		return model.Order{}, false
	}
	return col[m.row], true
}

func (m *Model) clampCursor() {
	stages := model.Stages()
	if m.col < 0 {
		m.col = 0
	}
	if m.col >= len(stages) {
		m.col = len(stages) - 1
	}
	if m.layout == nil {
		m.row = 0
		return
	}
	n := len(m.layout.Column(m.stage()))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func stageIndex(stage model.Stage) int {
	for i, s := range model.Stages() {
		if s == stage {
			return i
		}
	}
	return 0
}
