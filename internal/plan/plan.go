// Package plan models the weekly diet and workout plan returned by the plan service.
package plan

import "strings"

// DaysPerWeek is the number of days a complete plan covers.
const DaysPerWeek = 7

// MealSlot is a meal within one day.
type MealSlot string

const (
	Breakfast MealSlot = "Breakfast"
	Lunch     MealSlot = "Lunch"
	Dinner    MealSlot = "Dinner"
)

// MealSlots is the fixed display order.
var MealSlots = []MealSlot{Breakfast, Lunch, Dinner}

// MealEntry is one recipe with its nutrition. Values are verbatim from the service.
type MealEntry struct {
	RecipeName  Scalar `json:"recipe_name" yaml:"recipe_name"`
	Calories    Scalar `json:"calories" yaml:"calories"`
	ProteinG    Scalar `json:"protein_g" yaml:"protein_g"`
	CarbsG      Scalar `json:"carbs_g" yaml:"carbs_g"`
	FatG        Scalar `json:"fat_g" yaml:"fat_g"`
	Ingredients Scalar `json:"ingredients" yaml:"ingredients"`
	Preparation Scalar `json:"preparation" yaml:"preparation"`

	Instructions        Scalar `json:"instructions,omitzero" yaml:"instructions,omitempty"`
	IronMg              Scalar `json:"iron_mg,omitzero" yaml:"iron_mg,omitempty"`
	SuitableForDiabetes Scalar `json:"suitable_for_diabetes,omitzero" yaml:"suitable_for_diabetes,omitempty"`
}

// DayPlan maps each present meal slot to its entry. Absent slots are simply missing.
type DayPlan map[MealSlot]MealEntry

// Meal returns the entry for slot and whether the service sent one.
func (d DayPlan) Meal(slot MealSlot) (MealEntry, bool) {
	m, ok := d[slot]
	return m, ok
}

// WeeklyPlan is a decoded plan response. It is never modified after decoding.
type WeeklyPlan struct {
	Days []DayPlan `json:"days" yaml:"days"`
	// Workout is aligned by index to Days and may be shorter or hold empty entries.
	Workout []string `json:"workout" yaml:"workout"`
}

// WorkoutFor returns the workout for day index i, or false when none is assigned.
func (p *WeeklyPlan) WorkoutFor(i int) (string, bool) {
	if p == nil || i < 0 || i >= len(p.Workout) {
		return "", false
	}
	w := p.Workout[i]
	if strings.TrimSpace(w) == "" {
		return "", false
	}
	return w, true
}

// Empty reports whether there is nothing to render.
func (p *WeeklyPlan) Empty() bool {
	return p == nil || len(p.Days) == 0
}
