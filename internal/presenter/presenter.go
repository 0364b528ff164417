// Package presenter projects a weekly plan into an ordered, placeholder-complete
// rendering. It never modifies the plan and never fails on missing data.
package presenter

import (
	"fmt"

	"github.com/josephgoksu/charm/internal/plan"
)

const (
	Title                = "Weekly Diet Plan"
	NoPlanPlaceholder    = "No plan generated yet."
	NoWorkoutPlaceholder = "No workout assigned"
)

// NoMealPlaceholder is shown for a meal slot the service did not fill.
func NoMealPlaceholder(slot plan.MealSlot) string {
	return "No data for " + string(slot)
}

// DayLabel is the 1-based label for day index i.
func DayLabel(i int) string {
	return fmt.Sprintf("Day %d", i+1)
}

// RenderedMeal is one meal slot. When Present is false only Placeholder is set.
type RenderedMeal struct {
	Slot        plan.MealSlot `json:"slot" yaml:"slot"`
	Present     bool          `json:"present" yaml:"present"`
	Placeholder string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	RecipeName  string `json:"recipe_name,omitempty" yaml:"recipe_name,omitempty"`
	Calories    string `json:"calories,omitempty" yaml:"calories,omitempty"`
	ProteinG    string `json:"protein_g,omitempty" yaml:"protein_g,omitempty"`
	CarbsG      string `json:"carbs_g,omitempty" yaml:"carbs_g,omitempty"`
	FatG        string `json:"fat_g,omitempty" yaml:"fat_g,omitempty"`
	Ingredients string `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Preparation string `json:"preparation,omitempty" yaml:"preparation,omitempty"`

	Instructions        string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	IronMg              string `json:"iron_mg,omitempty" yaml:"iron_mg,omitempty"`
	SuitableForDiabetes string `json:"suitable_for_diabetes,omitempty" yaml:"suitable_for_diabetes,omitempty"`
}

// RenderedDay is one day block: three meals in slot order and one workout line.
type RenderedDay struct {
	Index           int            `json:"index" yaml:"index"`
	Label           string         `json:"label" yaml:"label"`
	Meals           []RenderedMeal `json:"meals" yaml:"meals"`
	Workout         string         `json:"workout" yaml:"workout"`
	WorkoutAssigned bool           `json:"workout_assigned" yaml:"workout_assigned"`
}

// RenderedPlan is either a single placeholder or a list of day blocks.
type RenderedPlan struct {
	Placeholder string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Days        []RenderedDay `json:"days,omitempty" yaml:"days,omitempty"`
}

// Empty reports whether this is the "no plan yet" rendering.
func (r RenderedPlan) Empty() bool { return len(r.Days) == 0 }

// Render projects p. A nil plan or one without days yields the placeholder.
func Render(p *plan.WeeklyPlan) RenderedPlan {
	if p.Empty() {
		return RenderedPlan{Placeholder: NoPlanPlaceholder}
	}

	n := len(p.Days)
	if n > plan.DaysPerWeek {
		n = plan.DaysPerWeek
	}

	out := RenderedPlan{Days: make([]RenderedDay, n)}
	for i := 0; i < n; i++ {
		out.Days[i] = renderDay(i, p.Days[i], p)
	}
	return out
}

// RenderRaw decodes a raw response body and renders it. Bodies without plan.days
// render as the placeholder.
func RenderRaw(body []byte) RenderedPlan {
	p, err := plan.Decode(body)
	if err != nil {
		return Render(nil)
	}
	return Render(p)
}

func renderDay(i int, day plan.DayPlan, p *plan.WeeklyPlan) RenderedDay {
	rd := RenderedDay{
		Index: i,
		Label: DayLabel(i),
		Meals: make([]RenderedMeal, 0, len(plan.MealSlots)),
	}
	for _, slot := range plan.MealSlots {
		rd.Meals = append(rd.Meals, renderMeal(slot, day))
	}

	if w, ok := p.WorkoutFor(i); ok {
		rd.Workout, rd.WorkoutAssigned = w, true
	} else {
		rd.Workout = NoWorkoutPlaceholder
	}
	return rd
}

func renderMeal(slot plan.MealSlot, day plan.DayPlan) RenderedMeal {
	m, ok := day.Meal(slot)
	if !ok {
		return RenderedMeal{Slot: slot, Placeholder: NoMealPlaceholder(slot)}
	}
	return RenderedMeal{
		Slot:                slot,
		Present:             true,
		RecipeName:          m.RecipeName.String(),
		Calories:            m.Calories.String(),
		ProteinG:            m.ProteinG.String(),
		CarbsG:              m.CarbsG.String(),
		FatG:                m.FatG.String(),
		Ingredients:         m.Ingredients.String(),
		Preparation:         m.Preparation.String(),
		Instructions:        m.Instructions.String(),
		IronMg:              m.IronMg.String(),
		SuitableForDiabetes: m.SuitableForDiabetes.String(),
	}
}
