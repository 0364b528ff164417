package profile

import (
	"math"
	"strconv"
	"strings"
)

// BMICategory is the WHO weight band for a BMI value.
type BMICategory string

const (
	CategoryUnderweight BMICategory = "Underweight"
	CategoryNormal      BMICategory = "Normal"
	CategoryOverweight  BMICategory = "Overweight"
	CategoryObese       BMICategory = "Obese"
)

// DerivedMetrics are computed from height and weight. The zero value means undefined.
type DerivedMetrics struct {
	BMI      float64     `json:"bmi"`
	Category BMICategory `json:"bmi_category"`
	Defined  bool        `json:"defined"`
}

// ComputeMetrics returns BMI rounded to one decimal and its category.
// It returns the zero value when height or weight is missing, non-numeric or non-positive.
func ComputeMetrics(p UserProfile) DerivedMetrics {
	height, ok := ParseNumber(p.HeightCM)
	if !ok || height <= 0 {
		return DerivedMetrics{}
	}
	weight, ok := ParseNumber(p.WeightKG)
	if !ok || weight <= 0 {
		return DerivedMetrics{}
	}

	meters := height / 100
	bmi := math.Round(weight/(meters*meters)*10) / 10
	if math.IsInf(bmi, 0) || math.IsNaN(bmi) {
		return DerivedMetrics{}
	}

	return DerivedMetrics{
		BMI:      bmi,
		Category: CategoryFor(bmi),
		Defined:  true,
	}
}

// CategoryFor classifies an already rounded BMI.
func CategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// String formats the metrics for a single status line.
func (m DerivedMetrics) String() string {
	if !m.Defined {
		return "BMI: -"
	}
	return "BMI: " + strconv.FormatFloat(m.BMI, 'f', 1, 64) + " (" + string(m.Category) + ")"
}

// ParseNumber coerces raw input to a finite float. Surrounding whitespace is ignored.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseInteger coerces raw input to an int, truncating any fractional part.
func ParseInteger(raw string) (int, bool) {
	v, ok := ParseNumber(raw)
	if !ok || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}
