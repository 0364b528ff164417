package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/josephgoksu/charm/internal/session"
)

func TestStyles(t *testing.T) {
	// Force color profile for testing
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestStylesFor(t *testing.T) {
	assert.Equal(t, DarkPalette, StylesFor(session.ThemeDark).Palette)
	assert.Equal(t, LightPalette, StylesFor(session.ThemeLight).Palette)
	assert.NotEqual(t, DarkPalette.Primary, LightPalette.Primary)
}

func TestIcon(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	out := Icon("X", StyleError)
	assert.Contains(t, out, "X")
	assert.NotEqual(t, "X", out)
}
