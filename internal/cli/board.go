package cli

import (
	"fmt"
	"html"
	"strings"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/board"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
)

// TimestampLayout matches the API timestamp.
const TimestampLayout = "02 Jan 2006 15:04"

// DueLabel describes an order's due status in a few words.
func DueLabel(o model.Order) string {
	switch o.Status {
	case model.StatusOverdue:
		return fmt.Sprintf("%dd overdue", o.DaysOverdue)
	case model.StatusDueSoon, model.StatusOnTrack:
		return "due " + o.EstimatedDeliveryDate.Format("02 Jan")
	default:
		return "no ETD"
	}
}

// Plain undoes the HTML escaping applied to display fields.
func Plain(s string) string {
	return html.UnescapeString(s)
}

// RenderOrderLine renders one job as a single line.
func RenderOrderLine(o model.Order) string {
	name := Plain(o.ProjectName)
	if name == "" {
		name = "-"
	}
	who := Plain(o.FirstName)
	if who == "" {
		who = "-"
	}

	cells := []string{
		TableCellStyle.Render(fmt.Sprintf("%-12s", Truncate(Plain(o.Reference), 12))),
		TableCellStyle.Render(fmt.Sprintf("%-24s", Truncate(name, 24))),
		TableCellStyle.Render(fmt.Sprintf("%-12s", Truncate(who, 12))),
		TableCellStyle.Render(fmt.Sprintf("qty %-4d", o.QuantityTotal)),
		StatusStyle(o.Status).Render(DueLabel(o)),
	}
	if o.HasID {
		cells = append(cells, SubtleStyle.Render(fmt.Sprintf("  #%d", o.ID)))
	}
	return strings.Join(cells, "")
}

// RenderBoard renders every stage with its jobs, in board order.
func RenderBoard(b board.Board) string {
	var sb strings.Builder

	sb.WriteString(FormatTitle("Kickplate Workshop Board"))
	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render(fmt.Sprintf("%s %s · %d jobs",
		ClockIcon, b.FetchedAt.Format(TimestampLayout), b.TotalCount)))
	sb.WriteString("\n\n")

	if b.Truncated {
		sb.WriteString(FormatWarning("Cin7 stopped responding part way through; the board may be incomplete."))
		sb.WriteString("\n\n")
	}

	for _, stage := range model.Stages() {
		jobs := b.JobsByStage[stage]
		sb.WriteString(StageStyle.Render(fmt.Sprintf("%s (%d)", stage.Short(), len(jobs))))
		sb.WriteString("\n")
		if len(jobs) == 0 {
			sb.WriteString(SubtleStyle.Render("  no jobs"))
			sb.WriteString("\n")
		}
		for _, job := range jobs {
			sb.WriteString("  ")
			sb.WriteString(RenderOrderLine(job))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderSummary boxes the due-date counts across the whole board.
func RenderSummary(b board.Board) string {
	var overdue, dueSoon, noDate int
	for _, jobs := range b.JobsByStage {
		for _, job := range jobs {
			switch job.Status {
			case model.StatusOverdue:
				overdue++
			case model.StatusDueSoon:
				dueSoon++
			case model.StatusNoDate:
				noDate++
			}
		}
	}

	lines := []string{
		StatusStyle(model.StatusOverdue).Render(fmt.Sprintf("%-10s", "Overdue")) + BoldStyle.Render(fmt.Sprint(overdue)),
		StatusStyle(model.StatusDueSoon).Render(fmt.Sprintf("%-10s", "Due soon")) + BoldStyle.Render(fmt.Sprint(dueSoon)),
		StatusStyle(model.StatusNoDate).Render(fmt.Sprintf("%-10s", "No ETD")) + BoldStyle.Render(fmt.Sprint(noDate)),
	}
	return RenderBox("Summary", strings.Join(lines, "\n"))
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
