// Package board assembles the workshop board from Cin7 sales orders and
// submits stage transitions back to Cin7.
package board

import (
	"context"
	"log/slog"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/cin7"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/normalize"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/service"
)

// Paging defaults for a fetch cycle.
const (
	DefaultPageSize = 250
	DefaultMaxPages = 100
	DefaultOrder    = "EstimatedDeliveryDate ASC, CreatedDate ASC"
)

// PageObserver is told about every page as it arrives.
type PageObserver func(page, records int)

// AggregatorConfig holds paging options.
type AggregatorConfig struct {
	OnPage   PageObserver
	PageSize int
	MaxPages int
}

// Aggregator walks the sales order list page by page.
type Aggregator struct {
	api      service.OrderAPI
	logger   *slog.Logger
	onPage   PageObserver
	pageSize int
	maxPages int
}

// FetchResult is the outcome of one fetch cycle.
// Truncated is set when a page failed and the cycle ended early;
// Records still holds everything gathered before the failure.
type FetchResult struct {
	Err       error
	Records   []model.RawRecord
	Pages     int
	Truncated bool
}

// NewAggregator creates an Aggregator over api.
func NewAggregator(api service.OrderAPI, cfg AggregatorConfig) *Aggregator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	return &Aggregator{
		api:      api,
		logger:   slog.Default().With("component", "aggregator"),
		onPage:   cfg.OnPage,
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
	}
}

// FetchAll collects every sales order not in excludedStages.
// A failed page ends the cycle but never fails it.
func (a *Aggregator) FetchAll(ctx context.Context, excludedStages []string) FetchResult {
	query := cin7.ListQuery{
		Fields: normalize.Fields,
		Order:  DefaultOrder,
		Where:  cin7.ExcludeStages(excludedStages),
		Rows:   a.pageSize,
	}

	var result FetchResult
	for page := 1; page <= a.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			result.Err = err
			result.Truncated = true
			break
		}

		query.Page = page
		raw, err := a.api.Get(ctx, cin7.SalesOrdersPath, query.Values())
		if err != nil {
			a.logger.Error("Failed to fetch sales order page, keeping partial results",
				"page", page,
				"records_so_far", len(result.Records),
				"error", err)
			result.Err = err
			result.Truncated = true
			break
		}

		decoded := cin7.DecodePage(raw)
		result.Pages = page
		result.Records = append(result.Records, decoded.Records...)
		if a.onPage != nil {
			a.onPage(page, len(decoded.Records))
		}
		a.logger.Debug("Fetched sales order page",
			"page", page,
			"shape", decoded.Kind.String(),
			"records", len(decoded.Records))

		if len(decoded.Records) < a.pageSize {
			break
		}
		if page == a.maxPages {
			a.logger.Warn("Page ceiling reached, remaining orders not fetched", "max_pages", a.maxPages)
		}
	}

	return result
}
