package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/josephgoksu/charm/internal/presenter"
)

// minPlanWidth keeps day blocks readable on narrow terminals.
const minPlanWidth = 40

// RenderPlanView renders a presented plan as bordered day blocks.
func RenderPlanView(r presenter.RenderedPlan, st Styles, width int) string {
	if r.Empty() {
		return st.Placeholder.Render(r.Placeholder)
	}
	if width < minPlanWidth {
		width = minPlanWidth
	}
	// border (2) + padding (2)
	inner := width - 4

	blocks := []string{st.Header.Render(presenter.Title)}
	for _, d := range r.Days {
		var b strings.Builder
		b.WriteString(st.Title.Render(d.Label))
		for _, m := range d.Meals {
			b.WriteString("\n")
			if !m.Present {
				b.WriteString(st.Placeholder.Render(m.Placeholder))
				continue
			}
			b.WriteString(st.Slot.Render(string(m.Slot)) + ": " + st.Text.Render(WrapText(m.Summary(), inner)))
			b.WriteString("\n" + st.Subtle.Render(WrapText("Ingredients: "+m.Ingredients, inner)))
			b.WriteString("\n" + st.Subtle.Render(WrapText("Preparation: "+m.Preparation, inner)))
		}

		b.WriteString("\n")
		workout := "Workout: " + d.Workout
		if d.WorkoutAssigned {
			b.WriteString(st.Workout.Render(workout))
		} else {
			b.WriteString(st.Placeholder.Render(workout))
		}

		blocks = append(blocks, st.Day.Width(width-2).Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
