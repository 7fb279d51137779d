// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// AccentColor highlights headings.
	AccentColor = lipgloss.Color("#2F80ED")
	// SuccessColor indicates successful operations and on-track jobs.
	SuccessColor = lipgloss.Color("#27AE60")
	// WarningColor indicates warnings and jobs due soon.
	WarningColor = lipgloss.Color("#F2994A")
	// ErrorColor indicates errors and overdue jobs.
	ErrorColor = lipgloss.Color("#EB5757")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#56CCF2")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#828282")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			MarginBottom(1)

	// StageStyle heads a stage column.
	StageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(SubtleColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	BoardIcon   = "📋"
	ClockIcon   = "⏰"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the board icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(BoardIcon + " " + title)
}

// StatusStyle picks the style that matches a due status.
func StatusStyle(status model.DueStatus) lipgloss.Style {
	switch status {
	case model.StatusOverdue:
		return ErrorStyle
	case model.StatusDueSoon:
		return WarningStyle
	case model.StatusOnTrack:
		return SuccessStyle
	default:
		return SubtleStyle
	}
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
