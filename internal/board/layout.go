package board

import (
	"fmt"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
)

// Pending records where an optimistically moved order came from.
type Pending struct {
	From      model.Stage
	To        model.Stage
	OrderID   int64
	FromIndex int
	ToIndex   int
}

// Layout is the column model a presentation layer renders. Moves are applied
// immediately and later either committed or reverted to the exact original
// column and position.
type Layout struct {
	columns map[model.Stage][]model.Order
	pending map[int64]Pending
}

// NewLayout builds a layout from b.
func NewLayout(b Board) *Layout {
	l := &Layout{
		columns: make(map[model.Stage][]model.Order, len(model.Stages())),
		pending: make(map[int64]Pending),
	}
	for _, stage := range model.Stages() {
		jobs := b.JobsByStage[stage]
		col := make([]model.Order, len(jobs))
		copy(col, jobs)
		l.columns[stage] = col
	}
	return l
}

// Column returns the orders in stage, in display order.
func (l *Layout) Column(stage model.Stage) []model.Order {
	return l.columns[stage]
}

// Find locates orderID.
func (l *Layout) Find(orderID int64) (model.Stage, int, bool) {
	for _, stage := range model.Stages() {
		for i, order := range l.columns[stage] {
			if order.HasID && order.ID == orderID {
				return stage, i, true
			}
		}
	}
	return "", 0, false
}

// IsPending reports whether orderID has a move awaiting its verdict.
func (l *Layout) IsPending(orderID int64) bool {
	_, ok := l.pending[orderID]
	return ok
}

// HasPending reports whether any move is awaiting its verdict.
func (l *Layout) HasPending() bool {
	return len(l.pending) > 0
}

// Move places orderID at toIndex in toStage. toIndex is clamped to the
// column bounds. Orders without an id cannot be moved.
func (l *Layout) Move(orderID int64, toStage model.Stage, toIndex int) (Pending, error) {
	if !toStage.IsKnown() {
		return Pending{}, fmt.Errorf("%w: %s", common.ErrInvalidStage, toStage)
	}
	if l.IsPending(orderID) {
		return Pending{}, fmt.Errorf("%w: %d", common.ErrMoveInProgress, orderID)
	}

	from, fromIndex, ok := l.Find(orderID)
	if !ok {
		return Pending{}, fmt.Errorf("%w: %d", common.ErrOrderNotFound, orderID)
	}

	order := l.columns[from][fromIndex]
	l.columns[from] = remove(l.columns[from], fromIndex)

	order.Stage = toStage
	toIndex = clamp(toIndex, len(l.columns[toStage]))
	l.columns[toStage] = insert(l.columns[toStage], toIndex, order)

	p := Pending{
		OrderID:   orderID,
		From:      from,
		FromIndex: fromIndex,
		To:        toStage,
		ToIndex:   toIndex,
	}
	l.pending[orderID] = p
	return p, nil
}

// Commit accepts a move.
func (l *Layout) Commit(p Pending) {
	delete(l.pending, p.OrderID)
}

// Revert puts the order back at its original column and position.
func (l *Layout) Revert(p Pending) error {
	delete(l.pending, p.OrderID)

	stage, index, ok := l.Find(p.OrderID)
	if !ok {
		return fmt.Errorf("%w: %d", common.ErrOrderNotFound, p.OrderID)
	}

	order := l.columns[stage][index]
	l.columns[stage] = remove(l.columns[stage], index)

	order.Stage = p.From
	l.columns[p.From] = insert(l.columns[p.From], clamp(p.FromIndex, len(l.columns[p.From])), order)
	return nil
}

func remove(col []model.Order, i int) []model.Order {
	out := make([]model.Order, 0, len(col)-1)
	out = append(out, col[:i]...)
	return append(out, col[i+1:]...)
}

func insert(col []model.Order, i int, order model.Order) []model.Order {
	out := make([]model.Order, 0, len(col)+1)
	out = append(out, col[:i]...)
	out = append(out, order)
	return append(out, col[i:]...)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
