package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func profileWith(height, weight string) UserProfile {
	p := New()
	p.HeightCM = height
	p.WeightKG = weight
	return p
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		height   string
		weight   string
		bmi      float64
		category BMICategory
	}{
		{"normal", "170", "70", 24.2, CategoryNormal},
		{"boundary is normal", "170", "53.5", 18.5, CategoryNormal},
		{"underweight", "170", "50", 17.3, CategoryUnderweight},
		{"overweight", "170", "80", 27.7, CategoryOverweight},
		{"obese", "170", "100", 34.6, CategoryObese},
		{"whitespace tolerated", " 180 ", "81", 25, CategoryOverweight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(profileWith(tt.height, tt.weight))
			assert.True(t, m.Defined)
			assert.Equal(t, tt.bmi, m.BMI)
			assert.Equal(t, tt.category, m.Category)
		})
	}
}

func TestComputeMetrics_Undefined(t *testing.T) {
	tests := []struct {
		name   string
		height string
		weight string
	}{
		{"missing height", "", "70"},
		{"missing weight", "170", ""},
		{"non-numeric", "tall", "70"},
		{"zero height", "0", "70"},
		{"negative weight", "170", "-5"},
		{"nan", "NaN", "70"},
		{"inf", "170", "Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, DerivedMetrics{}, ComputeMetrics(profileWith(tt.height, tt.weight)))
		})
	}
}

func TestComputeMetrics_Idempotent(t *testing.T) {
	p := profileWith("172.5", "68.3")
	first := ComputeMetrics(p)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, ComputeMetrics(p))
	}
}

func TestDerivedMetrics_String(t *testing.T) {
	assert.Equal(t, "BMI: 24.2 (Normal)", ComputeMetrics(profileWith("170", "70")).String())
	assert.Equal(t, "BMI: -", DerivedMetrics{}.String())
}

func TestParseInteger_Truncates(t *testing.T) {
	v, ok := ParseInteger("23.9")
	assert.True(t, ok)
	assert.Equal(t, 23, v)

	_, ok = ParseInteger("twenty")
	assert.False(t, ok)
}
