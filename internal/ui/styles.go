package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/charm/internal/session"
)

var (
	// Colors (dark palette; used by the non-interactive commands)
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan for workouts

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)
)

// Palette is the set of colors one theme uses.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Warning   lipgloss.Color
	Text      lipgloss.Color
	Accent    lipgloss.Color
}

var (
	DarkPalette = Palette{
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Success:   ColorSuccess,
		Error:     ColorError,
		Warning:   ColorWarning,
		Text:      ColorText,
		Accent:    ColorCyan,
	}

	LightPalette = Palette{
		Primary:   lipgloss.Color("162"),
		Secondary: lipgloss.Color("244"),
		Success:   lipgloss.Color("28"),
		Error:     lipgloss.Color("124"),
		Warning:   lipgloss.Color("130"),
		Text:      lipgloss.Color("235"),
		Accent:    lipgloss.Color("25"),
	}
)

// Styles are the lipgloss styles for one palette.
type Styles struct {
	Palette Palette

	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Primary lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Text    lipgloss.Style
	Header  lipgloss.Style

	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Slot         lipgloss.Style
	Workout      lipgloss.Style
	Placeholder  lipgloss.Style
	Day          lipgloss.Style
}

// NewStyles builds the styles for p.
func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,
		Title:   lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Subtle:  lipgloss.NewStyle().Foreground(p.Secondary),
		Primary: lipgloss.NewStyle().Foreground(p.Primary),
		Success: lipgloss.NewStyle().Foreground(p.Success),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Warning: lipgloss.NewStyle().Foreground(p.Warning),
		Text:    lipgloss.NewStyle().Foreground(p.Text),
		Header:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Padding(0, 1),

		Label:        lipgloss.NewStyle().Foreground(p.Secondary).Width(20),
		FocusedLabel: lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Width(20),
		Slot:         lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Workout:      lipgloss.NewStyle().Foreground(p.Accent).Italic(true),
		Placeholder:  lipgloss.NewStyle().Foreground(p.Secondary).Italic(true),
		Day: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Secondary).
			Padding(0, 1),
	}
}

// StylesFor returns the styles for a session theme.
func StylesFor(t session.Theme) Styles {
	if t == session.ThemeLight {
		return NewStyles(LightPalette)
	}
	return NewStyles(DarkPalette)
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}
