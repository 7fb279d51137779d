package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/stretchr/testify/assert"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestDueLabel(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		order model.Order
	}{
		{
			name:  "overdue",
			order: model.Order{Status: model.StatusOverdue, DaysOverdue: 3, EstimatedDeliveryDate: datePtr(2024, 6, 7)},
			want:  "3d overdue",
		},
		{
			name:  "due soon",
			order: model.Order{Status: model.StatusDueSoon, EstimatedDeliveryDate: datePtr(2024, 6, 14)},
			want:  "due 14 Jun",
		},
		{
			name:  "on track",
			order: model.Order{Status: model.StatusOnTrack, EstimatedDeliveryDate: datePtr(2024, 7, 30)},
			want:  "due 30 Jul",
		},
		{
			name:  "no date",
			order: model.Order{Status: model.StatusNoDate},
			want:  "no ETD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueLabel(tt.order))
		})
	}
}

func TestRenderBoard(t *testing.T) {
	b := board.Board{
		FetchedAt: time.Date(2024, 6, 10, 9, 5, 0, 0, time.UTC),
		JobsByStage: map[model.Stage][]model.Order{
			model.StageNew: {{
				ID: 51, HasID: true, Reference: "SO-51", ProjectName: "Smith &amp; Sons",
				FirstName: "Mere", QuantityTotal: 6, Status: model.StatusOverdue, DaysOverdue: 2,
			}},
		},
		TotalCount: 1,
		Truncated:  true,
	}

	out := RenderBoard(b)
	assert.Contains(t, out, "Kickplate Workshop Board")
	assert.Contains(t, out, "10 Jun 2024 09:05")
	assert.Contains(t, out, "New (1)")
	assert.Contains(t, out, "Processing (0)")
	assert.Contains(t, out, "To Collect (0)")
	assert.Contains(t, out, "Smith & Sons")
	assert.Contains(t, out, "2d overdue")
	assert.Contains(t, out, "#51")
	assert.Contains(t, out, "incomplete")

	assert.Less(t, strings.Index(out, "New ("), strings.Index(out, "Processing ("))
	assert.Less(t, strings.Index(out, "Job Complete ("), strings.Index(out, "To Collect ("))
}

func TestRenderSummary(t *testing.T) {
	b := board.Board{
		JobsByStage: map[model.Stage][]model.Order{
			model.StageNew:        {{Status: model.StatusOverdue}, {Status: model.StatusNoDate}},
			model.StageProcessing: {{Status: model.StatusOverdue}, {Status: model.StatusDueSoon}},
			model.StageToCollect:  {{Status: model.StatusOnTrack}},
		},
	}

	out := RenderSummary(b)
	assert.Contains(t, out, "Summary")
	assert.Regexp(t, `Overdue\s+2`, out)
	assert.Regexp(t, `Due soon\s+1`, out)
	assert.Regexp(t, `No ETD\s+1`, out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "kick…", Truncate("kickplate", 5))
	assert.Equal(t, "k", Truncate("kickplate", 1))
}

func TestPageProgress(t *testing.T) {
	out := &syncBuffer{}
	p := NewPageProgress(out)

	p.OnPage(1, 250)
	p.OnPage(2, 40)
	p.Finish()

	assert.Equal(t, 2, p.Pages())
	assert.Equal(t, 290, p.Records())
}

func TestInterruptHandler(t *testing.T) {
	t.Run("parent cancellation is not an interrupt", func(t *testing.T) {
		h := NewInterruptHandler(&syncBuffer{})
		parent, cancelParent := context.WithCancel(context.Background())
		ctx, stop := h.HandleInterrupts(parent)
		defer stop()

		cancelParent()
		<-ctx.Done()
		assert.False(t, h.WasInterrupted())
	})

	t.Run("interrupt message is written once", func(t *testing.T) {
		out := &syncBuffer{}
		h := NewInterruptHandler(out)

		h.interrupt()
		h.interrupt()

		assert.True(t, h.WasInterrupted())
		assert.Equal(t, 1, strings.Count(out.String(), "Interrupted"))
	})
}
