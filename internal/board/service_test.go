package board

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/classify"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, api *fakeAPI, now time.Time) *Service {
	t.Helper()
	loc, err := classify.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)
	classifier := classify.New(loc, classify.DefaultDueSoonDays, classify.WithClock(func() time.Time { return now }))
	return NewService(api, normalize.New(normalize.Options{}), classifier, Config{})
}

func TestService_FetchBoard(t *testing.T) {
	// 2024-06-10 09:00 in Auckland.
	now := time.Date(2024, 6, 9, 21, 0, 0, 0, time.UTC)

	api := newFakeAPI()
	api.pages[1] = json.RawMessage(`[
		{"Id": 1, "Reference": "SO-1", "Stage": "Kickplate - New", "EstimatedDeliveryDate": "2024-06-05T00:00:00Z"},
		{"Id": 2, "Reference": "SO-2", "Stage": "Kickplate - New", "EstimatedDeliveryDate": "2024-06-14T00:00:00Z"},
		{"Id": 3, "Reference": "SO-3", "Stage": "Kickplate - Processing", "EstimatedDeliveryDate": "2024-07-30T00:00:00Z"},
		{"Id": 4, "Reference": "SO-4", "Stage": "Kickplate - To Collect"},
		{"Id": 5, "Reference": "SO-5", "Stage": "Kickplate - Quality Check"},
		{"Id": 6, "Reference": "SO-6", "Stage": "Kickplate - New", "IsVoid": true},
		{"Id": 7, "Reference": "SO-7", "Stage": "Design"}
	]`)

	board := newTestService(t, api, now).FetchBoard(context.Background())

	require.Len(t, board.JobsByStage, 4)
	assert.Equal(t, 2, board.Count(model.StageNew))
	assert.Equal(t, 1, board.Count(model.StageProcessing))
	assert.Equal(t, 0, board.Count(model.StageJobComplete))
	assert.NotNil(t, board.JobsByStage[model.StageJobComplete])
	assert.Equal(t, 1, board.Count(model.StageToCollect))
	assert.Equal(t, 5, board.TotalCount, "void and foreign stages are excluded, unknown kickplate stages counted")
	assert.False(t, board.Truncated)
	assert.True(t, board.FetchedAt.Equal(now))
	assert.Equal(t, "Pacific/Auckland", board.FetchedAt.Location().String())

	newJobs := board.JobsByStage[model.StageNew]
	assert.Equal(t, int64(1), newJobs[0].ID)
	assert.True(t, newJobs[0].IsOverdue())
	assert.Equal(t, 5, newJobs[0].DaysOverdue)
	assert.True(t, newJobs[1].IsDueSoon())
	assert.True(t, board.JobsByStage[model.StageProcessing][0].IsOnTrack())
	assert.Equal(t, model.StatusNoDate, board.JobsByStage[model.StageToCollect][0].Status)
}

func TestService_FetchBoardFailure(t *testing.T) {
	api := newFakeAPI()
	api.failOn[1] = errors.New("connection error: refused")

	board := newTestService(t, api, time.Now()).FetchBoard(context.Background())

	assert.True(t, board.Truncated)
	assert.Equal(t, 0, board.TotalCount)
	require.Len(t, board.JobsByStage, 4)
	for _, stage := range model.Stages() {
		assert.Empty(t, board.JobsByStage[stage])
	}
}

func TestService_MoveJob(t *testing.T) {
	api := newFakeAPI()
	svc := newTestService(t, api, time.Now())

	result := svc.MoveJob(context.Background(), 9, model.StageProcessing)
	assert.True(t, result.Success)
	require.Len(t, api.puts, 1)

	result = svc.MoveJob(context.Background(), 9, model.Stage("Kickplate - Quality Check"))
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid stage: Kickplate - Quality Check", result.Error)
	assert.Len(t, api.puts, 1)
}
