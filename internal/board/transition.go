package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/cin7"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
)

// TransitionResult is the verdict of a stage change.
type TransitionResult struct {
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// stageUpdate is the body Cin7 expects for a stage change.
type stageUpdate struct {
	Stage string `json:"stage"`
	ID    int64  `json:"id"`
}

// Coordinator validates and submits stage changes. It holds no state of its
// own; callers that move orders optimistically own the rollback.
type Coordinator struct {
	api    service.OrderAPI
	logger *slog.Logger
}

// NewCoordinator creates a Coordinator over api.
func NewCoordinator(api service.OrderAPI) *Coordinator {
	return &Coordinator{
		api:    api,
		logger: slog.Default().With("component", "transition"),
	}
}

// Transition moves orderID to target. Unknown targets are refused without
// contacting Cin7.
func (c *Coordinator) Transition(ctx context.Context, orderID int64, target model.Stage) TransitionResult {
	if !target.IsKnown() {
		return TransitionResult{Error: fmt.Sprintf("Invalid stage: %s", target)}
	}

	res := c.api.Put(ctx, cin7.SalesOrdersPath, stageUpdate{ID: orderID, Stage: string(target)})
	if !res.Success {
		c.logger.Error("Failed to update order stage",
			"order_id", orderID,
			"stage", string(target),
			"error", res.Error)
		return TransitionResult{Error: res.Error}
	}

	c.logger.Info("Updated order stage", "order_id", orderID, "stage", string(target))
	return TransitionResult{Success: true}
}
