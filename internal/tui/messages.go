package tui

import (
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
)

// boardLoadedMsg carries a freshly fetched board.
type boardLoadedMsg struct {
	board board.Board
}

// moveResultMsg carries Cin7's verdict on an optimistic move.
type moveResultMsg struct {
	result  board.TransitionResult
	pending board.Pending
}

// refreshTickMsg fires when the board is due for a reload.
type refreshTickMsg struct {
	at time.Time
}

// statusKind selects how the status line is styled.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)
