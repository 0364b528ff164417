package planclient

import (
	"fmt"

	"github.com/josephgoksu/charm/internal/profile"
)

// RequestPayload is the exact body sent to the plan service.
type RequestPayload struct {
	Age           int     `json:"age"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	ActivityLevel float64 `json:"activity_level"`
	Goal          string  `json:"goal"`
	Deficiency    string  `json:"deficiency"`
	Chronic       string  `json:"chronic"`
	CuisinePref   string  `json:"cuisine_pref"`
	FoodType      string  `json:"food_type"`
	// CalorieTarget is always nil so the field serializes as null.
	CalorieTarget *float64 `json:"calorie_target"`
}

// CoercionError reports a numeric field that could not be converted.
type CoercionError struct {
	Field profile.Field
	Raw   string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: %q is not a number", e.Field.Label(), e.Raw)
}

// BuildRequest converts a profile to a request payload. Age is truncated to an integer.
// Any numeric field that does not coerce fails the whole build.
func BuildRequest(p profile.UserProfile) (RequestPayload, error) {
	age, ok := profile.ParseInteger(p.Age)
	if !ok {
		return RequestPayload{}, &CoercionError{Field: profile.FieldAge, Raw: p.Age}
	}
	height, err := coerceFloat(profile.FieldHeightCM, p.HeightCM)
	if err != nil {
		return RequestPayload{}, err
	}
	weight, err := coerceFloat(profile.FieldWeightKG, p.WeightKG)
	if err != nil {
		return RequestPayload{}, err
	}
	activity, err := coerceFloat(profile.FieldActivityLevel, p.ActivityLevel)
	if err != nil {
		return RequestPayload{}, err
	}

	return RequestPayload{
		Age:           age,
		HeightCM:      height,
		WeightKG:      weight,
		ActivityLevel: activity,
		Goal:          string(p.Goal),
		Deficiency:    string(p.Deficiency),
		Chronic:       string(p.Chronic),
		CuisinePref:   p.CuisinePref,
		FoodType:      string(p.FoodType),
	}, nil
}

func coerceFloat(field profile.Field, raw string) (float64, error) {
	v, ok := profile.ParseNumber(raw)
	if !ok {
		return 0, &CoercionError{Field: field, Raw: raw}
	}
	return v, nil
}
