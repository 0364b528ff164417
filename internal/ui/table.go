package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/charm/internal/profile"
)

// Table renders data in a compact fixed-width table.
type Table struct {
	Headers  []string
	Rows     [][]string
	MaxWidth int // Max width per column (0 = auto)
}

// ColumnWidths calculates column widths based on content.
func (t *Table) ColumnWidths() []int {
	widths := make([]int, len(t.Headers))

	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	if t.MaxWidth > 0 {
		for i := range widths {
			if widths[i] > t.MaxWidth {
				widths[i] = t.MaxWidth
			}
		}
	}

	return widths
}

// Render outputs the table to a string.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	widths := t.ColumnWidths()
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	cellStyle := lipgloss.NewStyle().Foreground(ColorText)
	dimStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var headerCells []string
	for i, h := range t.Headers {
		headerCells = append(headerCells, headerStyle.Render(padRight(h, widths[i])))
	}
	sb.WriteString(" " + strings.Join(headerCells, "  ") + "\n")

	var sepParts []string
	for _, w := range widths {
		sepParts = append(sepParts, dimStyle.Render(strings.Repeat("─", w)))
	}
	sb.WriteString(" " + strings.Join(sepParts, "──") + "\n")

	for _, row := range t.Rows {
		var cells []string
		for i := range t.Headers {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if r := []rune(val); widths[i] >= 2 && len(r) > widths[i] {
				val = string(r[:widths[i]-1]) + "…"
			}
			cells = append(cells, cellStyle.Render(padRight(val, widths[i])))
		}
		sb.WriteString(" " + strings.Join(cells, "  ") + "\n")
	}

	return sb.String()
}

// padRight pads a string to the specified display width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// RenderReport renders a profile check: one row per field, then metrics and status.
func RenderReport(r profile.Report) string {
	notes := map[profile.Field]string{}
	for _, f := range r.Validation.MissingFields {
		notes[f] = "required number"
	}
	for _, a := range r.Advisories {
		if notes[a.Field] == "" {
			notes[a.Field] = a.Message
		}
	}

	table := &Table{Headers: []string{"Field", "Value", "Note"}, MaxWidth: 60}
	for _, f := range profile.Fields {
		table.Rows = append(table.Rows, []string{f.Label(), r.Profile.OptionLabel(f), notes[f]})
	}

	var sb strings.Builder
	sb.WriteString(table.Render())
	sb.WriteString("\n " + r.Metrics.String() + "\n")
	if r.Validation.OK {
		sb.WriteString(" " + StyleSuccess.Render("Ready to submit") + "\n")
	} else {
		sb.WriteString(" " + StyleError.Render(r.Validation.Err().Error()) + "\n")
	}
	return sb.String()
}
