package tui

import (
	"fmt"
	"strings"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/cli"
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const (
	minColumnWidth = 22
	cardHeight     = 3
	chromeHeight   = 10
)

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Kickplate Workshop Board"),
		"",
		m.spinner.View()+" "+m.theme.Muted.Render("Fetching jobs from Cin7..."),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderBoard renders the header, the four stage columns and the footer.
func (m Model) renderBoard() string {
	sections := []string{m.renderHeader(), m.renderColumns(), m.renderStatus()}
	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	sub := fmt.Sprintf("Updated %s · %d jobs", m.fetchedAt.Format(cli.TimestampLayout), m.totalCount)
	if m.loading {
		sub += " " + m.spinner.View()
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Kickplate Workshop Board"),
		m.theme.Subtitle.Render(sub),
	)
}

func (m Model) columnWidth() int {
	w := m.width/len(model.Stages()) - 4
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}

func (m Model) visibleCards() int {
	n := (m.height - chromeHeight) / cardHeight
	if n < 1 {
		return 1
	}
	return n
}

func (m Model) renderColumns() string {
	stages := model.Stages()
	cols := make([]string, 0, len(stages))
	for i, stage := range stages {
		cols = append(cols, m.renderColumn(i, stage))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderColumn(index int, stage model.Stage) string {
	width := m.columnWidth()
	active := index == m.col
	jobs := m.layout.Column(stage)

	lines := []string{m.theme.ColumnHeader.Render(fmt.Sprintf("%s (%d)", stage.Short(), len(jobs)))}
	if len(jobs) == 0 {
		lines = append(lines, m.theme.Muted.Render("no jobs"))
	}

	start, end := 0, len(jobs)
	limit := m.visibleCards()
	if end > limit {
		if active && m.row >= limit {
			start = m.row - limit + 1
		}
		end = start + limit
	}
	if start > 0 {
		lines = append(lines, m.theme.Muted.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderCard(jobs[i], width, active && i == m.row))
	}
	if end < len(jobs) {
		lines = append(lines, m.theme.Muted.Render(fmt.Sprintf("↓ %d more", len(jobs)-end)))
	}

	style := m.theme.Column
	if active {
		style = m.theme.ActiveColumn
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCard(o model.Order, width int, selected bool) string {
	ref := cli.Truncate(cli.Plain(o.Reference), width-2)
	project := cli.Plain(o.ProjectName)
	if project == "" {
		project = cli.Plain(o.FirstName)
	}
	project = cli.Truncate(project, width-2)

	due := m.dueStyle(o.Status).Render(cli.DueLabel(o))
	if o.QuantityTotal > 0 {
		due += m.theme.Muted.Render(fmt.Sprintf(" · qty %d", o.QuantityTotal))
	}

	style := m.theme.Card
	switch {
	case selected:
		style = m.theme.SelectedCard
	case o.HasID && m.layout.IsPending(o.ID):
		style = m.theme.PendingCard
	}

	return style.Width(width - 1).Render(lipgloss.JoinVertical(lipgloss.Left, ref, project, due))
}

func (m Model) dueStyle(status model.DueStatus) lipgloss.Style {
	switch status {
	case model.StatusOverdue:
		return m.theme.Overdue
	case model.StatusDueSoon:
		return m.theme.DueSoon
	case model.StatusOnTrack:
		return m.theme.OnTrack
	default:
		return m.theme.NoDate
	}
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	switch m.statusKind {
	case statusError:
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	case statusSuccess:
		return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status)
	default:
		return m.theme.StatusInfo.Render(m.status)
	}
}
