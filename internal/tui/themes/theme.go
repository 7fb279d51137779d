// Package themes holds the color schemes of the terminal board.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Muted         lipgloss.Style
	Column        lipgloss.Style
	ActiveColumn  lipgloss.Style
	ColumnHeader  lipgloss.Style
	Card          lipgloss.Style
	SelectedCard  lipgloss.Style
	PendingCard   lipgloss.Style
	Overdue       lipgloss.Style
	DueSoon       lipgloss.Style
	OnTrack       lipgloss.Style
	NoDate        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	Primary       lipgloss.Color
	Border        lipgloss.Color
}

func build(primary, border, fg, muted, selectedBg, errorC, warnC, successC, infoC lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Border:  border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ActiveColumn: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		ColumnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),

		Card: lipgloss.NewStyle().
			Foreground(fg).
			PaddingLeft(1),
		SelectedCard: lipgloss.NewStyle().
			Background(selectedBg).
			Foreground(fg).
			Bold(true).
			PaddingLeft(1),
		PendingCard: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true).
			PaddingLeft(1),

		Overdue: lipgloss.NewStyle().
			Foreground(errorC).
			Bold(true),
		DueSoon: lipgloss.NewStyle().
			Foreground(warnC),
		OnTrack: lipgloss.NewStyle().
			Foreground(successC),
		NoDate: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		StatusError: lipgloss.NewStyle().
			Foreground(errorC).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(successC).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(infoC),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#2F80ED"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#FAFAFA"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#1F3A5F"),
	lipgloss.Color("#EF4444"),
	lipgloss.Color("#F59E0B"),
	lipgloss.Color("#10B981"),
	lipgloss.Color("#3B82F6"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#CBA6F7"),
	lipgloss.Color("#45475A"),
	lipgloss.Color("#CDD6F4"),
	lipgloss.Color("#6C7086"),
	lipgloss.Color("#45475A"),
	lipgloss.Color("#F38BA8"),
	lipgloss.Color("#F9E2AF"),
	lipgloss.Color("#A6E3A1"),
	lipgloss.Color("#89DCEB"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
