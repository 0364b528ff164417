package presenter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/josephgoksu/charm/internal/config"
)

// Summary is the one-line nutrition summary for a present meal.
func (m RenderedMeal) Summary() string {
	return fmt.Sprintf("%s - %s kcal - P:%sg - C:%sg - F:%sg", m.RecipeName, m.Calories, m.ProteinG, m.CarbsG, m.FatG)
}

// Text renders plain text.
func (r RenderedPlan) Text() string {
	if r.Empty() {
		return r.Placeholder + "\n"
	}

	var sb strings.Builder
	sb.WriteString(Title + "\n")
	for _, d := range r.Days {
		sb.WriteString("\n" + d.Label + "\n")
		for _, m := range d.Meals {
			if !m.Present {
				sb.WriteString("  " + m.Placeholder + "\n")
				continue
			}
			sb.WriteString("  " + string(m.Slot) + ": " + m.Summary() + "\n")
			sb.WriteString("    Ingredients: " + m.Ingredients + "\n")
			sb.WriteString("    Preparation: " + m.Preparation + "\n")
		}
		sb.WriteString("  Workout: " + d.Workout + "\n")
	}
	return sb.String()
}

// Markdown renders a Markdown document.
func (r RenderedPlan) Markdown() string {
	if r.Empty() {
		return "_" + r.Placeholder + "_\n"
	}

	var sb strings.Builder
	sb.WriteString("# " + Title + "\n")
	for _, d := range r.Days {
		sb.WriteString("\n## " + d.Label + "\n\n")
		for _, m := range d.Meals {
			if !m.Present {
				sb.WriteString("- _" + m.Placeholder + "_\n")
				continue
			}
			sb.WriteString("- **" + string(m.Slot) + "**: " + m.Summary() + "\n")
			sb.WriteString("  - Ingredients: " + m.Ingredients + "\n")
			sb.WriteString("  - Preparation: " + m.Preparation + "\n")
		}
		sb.WriteString("\n_Workout: " + d.Workout + "_\n")
	}
	return sb.String()
}

// Write renders r to w in one of the config output formats.
func Write(w io.Writer, r RenderedPlan, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatMarkdown:
		_, err := io.WriteString(w, r.Markdown())
		return err
	case config.FormatText, "":
		_, err := io.WriteString(w, r.Text())
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
