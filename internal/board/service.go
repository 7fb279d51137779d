package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/classify"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/normalize"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
)

// Board is a snapshot of the workshop.
type Board struct {
	FetchedAt time.Time
	// JobsByStage holds an entry, possibly empty, for every known stage.
	JobsByStage map[model.Stage][]model.Order
	// TotalCount counts every normalized order, including those in
	// kickplate stages that have no column.
	TotalCount int
	// Truncated is set when a page failed and the board is partial.
	Truncated bool
}

// Count returns the number of jobs in stage.
func (b Board) Count(stage model.Stage) int {
	return len(b.JobsByStage[stage])
}

// Config holds the board service options.
type Config struct {
	Aggregator     AggregatorConfig
	ExcludedStages []string
}

// Service implements the two board operations: fetching the board and
// moving a job between stages.
type Service struct {
	aggregator  *Aggregator
	normalizer  *normalize.Normalizer
	classifier  *classify.Classifier
	coordinator *Coordinator
	logger      *slog.Logger
	excluded    []string
}

// NewService wires a board service over api.
func NewService(api service.OrderAPI, normalizer *normalize.Normalizer, classifier *classify.Classifier, cfg Config) *Service {
	excluded := cfg.ExcludedStages
	if excluded == nil {
		excluded = model.ExcludedStages
	}
	return &Service{
		aggregator:  NewAggregator(api, cfg.Aggregator),
		normalizer:  normalizer,
		classifier:  classifier,
		coordinator: NewCoordinator(api),
		logger:      slog.Default().With("component", "board"),
		excluded:    excluded,
	}
}

// FetchBoard runs one fetch cycle and groups the classified orders by stage.
// It never fails: a broken fetch yields a partial or empty board.
func (s *Service) FetchBoard(ctx context.Context) Board {
	result := s.aggregator.FetchAll(ctx, s.excluded)

	orders := make([]model.Order, 0, len(result.Records))
	for _, rec := range result.Records {
		if order, ok := s.normalizer.Order(rec); ok {
			orders = append(orders, order)
		}
	}
	orders = s.classifier.Classify(orders)

	board := Board{
		JobsByStage: make(map[model.Stage][]model.Order, len(model.Stages())),
		FetchedAt:   s.classifier.Now(),
		TotalCount:  len(orders),
		Truncated:   result.Truncated,
	}
	for _, stage := range model.Stages() {
		board.JobsByStage[stage] = []model.Order{}
	}

	dropped := 0
	for _, order := range orders {
		if !order.Stage.IsKnown() {
			dropped++
			continue
		}
		board.JobsByStage[order.Stage] = append(board.JobsByStage[order.Stage], order)
	}
	if dropped > 0 {
		s.logger.Debug("Orders in kickplate stages without a column were left off the board", "count", dropped)
	}

	s.logger.Info("Fetched board",
		"records", len(result.Records),
		"orders", len(orders),
		"pages", result.Pages,
		"truncated", result.Truncated)

	return board
}

// MoveJob submits a stage change for orderID.
func (s *Service) MoveJob(ctx context.Context, orderID int64, stage model.Stage) TransitionResult {
	return s.coordinator.Transition(ctx, orderID, stage)
}
