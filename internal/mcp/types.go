// Package mcp provides the tool types, handlers and Markdown formatting behind
// the charm MCP server.
package mcp

import (
	"github.com/josephgoksu/charm/internal/profile"
)

// Tool names.
const (
	ToolComputeBMI   = "compute_bmi"
	ToolGeneratePlan = "generate_plan"
	ToolCheckProfile = "check_profile"
)

// ProfileParams is the input of every tool. Numbers are passed as text, exactly
// as a user would type them into the form. Empty fields keep the form defaults.
type ProfileParams struct {
	Age           string `json:"age,omitempty"`
	HeightCM      string `json:"height_cm,omitempty"`
	WeightKG      string `json:"weight_kg,omitempty"`
	ActivityLevel string `json:"activity_level,omitempty"` // 1.2, 1.375, 1.55, 1.725 or 1.9
	Goal          string `json:"goal,omitempty"`           // loss, gain, muscle
	Deficiency    string `json:"deficiency,omitempty"`     // none, iron, vitd, protein
	Chronic       string `json:"chronic,omitempty"`        // none, diabetes, hypertension
	CuisinePref   string `json:"cuisine_pref,omitempty"`
	FoodType      string `json:"food_type,omitempty"` // none, vegetarian, vegan, non-vegetarian
}

func (p ProfileParams) values() map[profile.Field]string {
	return map[profile.Field]string{
		profile.FieldAge:           p.Age,
		profile.FieldHeightCM:      p.HeightCM,
		profile.FieldWeightKG:      p.WeightKG,
		profile.FieldActivityLevel: p.ActivityLevel,
		profile.FieldGoal:          p.Goal,
		profile.FieldDeficiency:    p.Deficiency,
		profile.FieldChronic:       p.Chronic,
		profile.FieldCuisinePref:   p.CuisinePref,
		profile.FieldFoodType:      p.FoodType,
	}
}

// FieldError reports an input value the profile rejected.
type FieldError struct {
	Field profile.Field
	Err   error
}

func (e *FieldError) Error() string { return e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// Profile applies the non-empty params to the form defaults, in form order.
func (p ProfileParams) Profile() (profile.UserProfile, error) {
	up := profile.New()
	values := p.values()
	for _, f := range profile.Fields {
		raw := values[f]
		if raw == "" {
			continue
		}
		next, err := up.Update(f, raw)
		if err != nil {
			return up, &FieldError{Field: f, Err: err}
		}
		up = next
	}
	return up, nil
}

// ToolResult is what a handler hands back to the server. Error, when set, is
// already formatted for the client.
type ToolResult struct {
	Content string
	Error   string
}
