package mcp

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/charm/internal/plan"
	"github.com/josephgoksu/charm/internal/planclient"
	"github.com/josephgoksu/charm/internal/profile"
)

type stubSubmitter struct {
	calls   atomic.Int32
	last    planclient.RequestPayload
	weekly  *plan.WeeklyPlan
	failure error
}

func (s *stubSubmitter) Submit(_ context.Context, payload planclient.RequestPayload) (*plan.WeeklyPlan, error) {
	s.calls.Add(1)
	s.last = payload
	return s.weekly, s.failure
}

func oneDayPlan() *plan.WeeklyPlan {
	return &plan.WeeklyPlan{
		Days: []plan.DayPlan{{
			plan.Breakfast: {RecipeName: plan.Text("Oats"), Calories: plan.Literal("350")},
		}},
		Workout: []string{"Walk 30 min"},
	}
}

func TestProfileParams_Profile(t *testing.T) {
	p, err := ProfileParams{Age: "30", HeightCM: "170", WeightKG: "70", FoodType: "Non Vegetarian"}.Profile()
	require.NoError(t, err)
	assert.Equal(t, "30", p.Age)
	assert.Equal(t, profile.FoodTypeNonVegetarian, p.FoodType)
	assert.Equal(t, profile.DefaultActivityLevel, p.ActivityLevel)
	assert.Equal(t, profile.GoalLoss, p.Goal)
}

func TestProfileParams_InvalidEnum(t *testing.T) {
	_, err := ProfileParams{Goal: "bulk"}.Profile()
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, profile.FieldGoal, fe.Field)
	assert.ErrorIs(t, err, profile.ErrInvalidValue)
}

func TestHandleComputeBMI(t *testing.T) {
	res := HandleComputeBMI(ProfileParams{HeightCM: "170", WeightKG: "70"})
	assert.Empty(t, res.Error)
	assert.Equal(t, "BMI: 24.2 (Normal)", res.Content)

	res = HandleComputeBMI(ProfileParams{HeightCM: "170"})
	assert.Contains(t, res.Error, "Validation Error")

	res = HandleComputeBMI(ProfileParams{Chronic: "asthma"})
	assert.Contains(t, res.Error, "`chronic`")
}

func TestHandleCheckProfile(t *testing.T) {
	res := HandleCheckProfile(ProfileParams{Age: "5", HeightCM: "170", WeightKG: "70"})
	assert.Empty(t, res.Error)
	assert.Contains(t, res.Content, "**BMI**: 24.2")
	assert.Contains(t, res.Content, "**Ready to submit**: yes")
	assert.Contains(t, res.Content, "### Advisories")

	res = HandleCheckProfile(ProfileParams{})
	assert.Contains(t, res.Content, "not available")
	assert.Contains(t, res.Content, "**Ready to submit**: no")
}

func TestHandleGeneratePlan_Success(t *testing.T) {
	sub := &stubSubmitter{weekly: oneDayPlan()}

	res := HandleGeneratePlan(context.Background(), sub, ProfileParams{Age: "30.9", HeightCM: "170", WeightKG: "70"})
	require.Empty(t, res.Error)
	assert.Contains(t, res.Content, "# Weekly Diet Plan")
	assert.Contains(t, res.Content, "Oats - 350 kcal")
	assert.Contains(t, res.Content, "No data for Lunch")
	assert.Contains(t, res.Content, "Walk 30 min")
	assert.Equal(t, int32(1), sub.calls.Load())
	assert.Equal(t, 30, sub.last.Age)
}

func TestHandleGeneratePlan_IncompleteMakesNoCall(t *testing.T) {
	sub := &stubSubmitter{weekly: oneDayPlan()}

	res := HandleGeneratePlan(context.Background(), sub, ProfileParams{HeightCM: "170"})
	assert.Contains(t, res.Error, "Validation Error")
	assert.Contains(t, res.Error, "Age")
	assert.Zero(t, sub.calls.Load())
}

func TestHandleGeneratePlan_ServiceError(t *testing.T) {
	sub := &stubSubmitter{failure: &planclient.SubmitError{
		Kind:    planclient.KindRejected,
		Status:  422,
		Details: []planclient.FieldError{{Loc: []string{"body", "age"}, Msg: "field required"}},
	}}

	res := HandleGeneratePlan(context.Background(), sub, ProfileParams{Age: "30", HeightCM: "170", WeightKG: "70"})
	assert.Contains(t, res.Error, "## Error")
	assert.Contains(t, res.Error, "body.age: field required")
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "## Error\n\n**Details**: boom", FormatError("boom"))
	assert.Equal(t, "## Validation Error\n\n**Field**: `age`\n**Details**: bad", FormatValidationError("age", "bad"))
}
