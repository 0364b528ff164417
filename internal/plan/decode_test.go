package plan

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

const meal = `{"recipe_name":"Poha","calories":350.0,"protein_g":8,"carbs_g":60.5,"fat_g":7,"ingredients":"rice flakes, peas","preparation":"Saute and steam","iron_mg":2.1,"suitable_for_diabetes":true}`

func weekBody(days int, workout string) string {
	ds := make([]string, days)
	for i := range ds {
		ds[i] = fmt.Sprintf(`{"Breakfast":%s,"Lunch":%s,"Dinner":%s}`, meal, meal, meal)
	}
	return fmt.Sprintf(`{"plan":{"days":[%s]},"workout":%s}`, strings.Join(ds, ","), workout)
}

func TestDecode_FullWeek(t *testing.T) {
	p, err := Decode([]byte(weekBody(7, `["a","b","c","d","e","f","g"]`)))
	require.NoError(t, err)

	require.Len(t, p.Days, 7)
	assert.Len(t, p.Workout, 7)
	for _, d := range p.Days {
		for _, slot := range MealSlots {
			m, ok := d.Meal(slot)
			require.True(t, ok)
			assert.Equal(t, "Poha", m.RecipeName.String())
		}
	}
}

func TestDecode_KeepsNumbersVerbatim(t *testing.T) {
	p, err := Decode([]byte(weekBody(7, `[]`)))
	require.NoError(t, err)

	m, _ := p.Days[0].Meal(Breakfast)
	assert.Equal(t, "350.0", m.Calories.String())
	assert.Equal(t, "60.5", m.CarbsG.String())
	assert.Equal(t, "2.1", m.IronMg.String())
	assert.Equal(t, "true", m.SuitableForDiabetes.String())
	assert.True(t, m.Instructions.IsZero())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>502</html>`},
		{"null", `null`},
		{"array", `[]`},
		{"no plan", `{"workout":[]}`},
		{"plan without days", `{"plan":{}}`},
		{"days null", `{"plan":{"days":null}}`},
		{"days not a list", `{"plan":{"days":"soon"}}`},
		{"days empty", `{"plan":{"days":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode([]byte(tt.body))
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrMalformedPlan)
		})
	}
}

func TestDecode_LenientInsideEnvelope(t *testing.T) {
	body := fmt.Sprintf(`{"plan":{"days":[{"Breakfast":%s,"Dinner":%s},null,{"Lunch":"soup","Dinner":null}]},"workout":["Run",5,null]}`, meal, meal)

	p, err := Decode([]byte(body))
	require.NoError(t, err)
	require.Len(t, p.Days, 3)

	_, ok := p.Days[0].Meal(Lunch)
	assert.False(t, ok, "missing Lunch key")
	_, ok = p.Days[0].Meal(Dinner)
	assert.True(t, ok)

	assert.Empty(t, p.Days[1], "null day")
	assert.Empty(t, p.Days[2], "string meal and null meal are absent")

	assert.Equal(t, []string{"Run", "", ""}, p.Workout)
}

func TestDecode_CapsAtOneWeek(t *testing.T) {
	p, err := Decode([]byte(weekBody(9, `null`)))
	require.NoError(t, err)
	assert.Len(t, p.Days, DaysPerWeek)
	assert.Nil(t, p.Workout)
}

func TestWorkoutFor(t *testing.T) {
	p := &WeeklyPlan{Workout: []string{"Run", "  ", "Swim"}}

	w, ok := p.WorkoutFor(0)
	assert.True(t, ok)
	assert.Equal(t, "Run", w)

	_, ok = p.WorkoutFor(1)
	assert.False(t, ok)
	_, ok = p.WorkoutFor(5)
	assert.False(t, ok)

	var nilPlan *WeeklyPlan
	_, ok = nilPlan.WorkoutFor(0)
	assert.False(t, ok)
	assert.True(t, nilPlan.Empty())
}

func TestScalar_Encoding(t *testing.T) {
	entry := MealEntry{RecipeName: Text("Dal"), Calories: Literal("410.0")}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recipe_name":"Dal"`)
	assert.Contains(t, string(data), `"calories":410.0`)
	assert.Contains(t, string(data), `"protein_g":null`)
	assert.NotContains(t, string(data), "iron_mg")

	out, err := yaml.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "calories: 410.0")
	assert.NotContains(t, string(out), "iron_mg")
}
