package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
)

// PageProgress shows a spinner while sales order pages arrive.
type PageProgress struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
	pages  int
	total  int
}

// NewPageProgress creates a spinner writing to w.
func NewPageProgress(w io.Writer) *PageProgress {
	if w == nil {
		w = os.Stderr
	}
	p := &PageProgress{writer: w}
	p.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Fetching sales orders...[reset]"),
		progressbar.OptionClearOnFinish(),
	)
	return p
}

// OnPage records a fetched page. It matches board.PageObserver.
func (p *PageProgress) OnPage(page, records int) {
	p.pages = page
	p.total += records
	p.bar.Describe(fmt.Sprintf("[cyan]Fetching sales orders (page %d)...[reset]", page))
	if err := p.bar.Add(records); err != nil {
		slog.Warn("Failed to update progress spinner", "error", err)
	}
}

// Finish clears the spinner.
func (p *PageProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress spinner", "error", err)
	}
}

// Pages returns how many pages were seen.
func (p *PageProgress) Pages() int {
	return p.pages
}

// Records returns how many records were seen.
func (p *PageProgress) Records() int {
	return p.total
}
