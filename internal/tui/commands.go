package tui

import (
	"context"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	tea "github.com/charmbracelet/bubbletea"
)

// fetchBoard loads the board in the background.
func (m Model) fetchBoard() tea.Cmd {
	svc := m.config.Service
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return boardLoadedMsg{board: svc.FetchBoard(ctx)}
	}
}

// submitMove sends an optimistic move to Cin7.
func (m Model) submitMove(p board.Pending) tea.Cmd {
	svc := m.config.Service
	timeout := m.config.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return moveResultMsg{pending: p, result: svc.MoveJob(ctx, p.OrderID, p.To)}
	}
}

// scheduleRefresh ticks once after the refresh interval.
func (m Model) scheduleRefresh() tea.Cmd {
	if m.config.RefreshInterval <= 0 {
		return nil
	}
	return tea.Tick(m.config.RefreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg{at: t}
	})
}
