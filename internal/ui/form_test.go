package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/charm/internal/plan"
	"github.com/josephgoksu/charm/internal/planclient"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
)

type stubSubmitter struct {
	calls int
	plan  *plan.WeeklyPlan
	err   error
}

func (s *stubSubmitter) Submit(ctx context.Context, payload planclient.RequestPayload) (*plan.WeeklyPlan, error) {
	s.calls++
	return s.plan, s.err
}

func onePlan() *plan.WeeklyPlan {
	return &plan.WeeklyPlan{
		Days: []plan.DayPlan{{
			plan.Breakfast: {RecipeName: plan.Text("Upma"), Calories: plan.Literal("300")},
		}},
		Workout: []string{"Yoga"},
	}
}

func typeText(m tea.Model, s string) tea.Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func press(m tea.Model, k tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

// collect runs cmd and any batched commands, returning the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func fillBiometrics(t *testing.T, m tea.Model) tea.Model {
	t.Helper()
	m = typeText(m, "30")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "170")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "70")
	return m
}

func TestFormModel_EditsFlowIntoSession(t *testing.T) {
	sess := session.New(&stubSubmitter{})
	m := fillBiometrics(t, NewFormModel(context.Background(), sess))

	p := sess.Profile()
	assert.Equal(t, "30", p.Age)
	assert.Equal(t, "170", p.HeightCM)
	assert.Equal(t, "70", p.WeightKG)
	assert.Contains(t, m.View(), "BMI: 24.2 (Normal)")
}

func TestFormModel_SelectCyclesOptions(t *testing.T) {
	sess := session.New(&stubSubmitter{})
	var m tea.Model = NewFormModel(context.Background(), sess)

	// age -> height -> weight -> activity level -> goal
	for i := 0; i < 4; i++ {
		m, _ = press(m, tea.KeyTab)
	}
	m, _ = press(m, tea.KeyRight)
	assert.Equal(t, profile.GoalGain, sess.Profile().Goal)
	assert.Contains(t, m.View(), "Weight Gain")

	m, _ = press(m, tea.KeyLeft)
	m, _ = press(m, tea.KeyLeft)
	assert.Equal(t, profile.GoalMuscle, sess.Profile().Goal, "wraps around")
	_ = m
}

func TestFormModel_IncompleteSubmitShowsInlineMessage(t *testing.T) {
	sub := &stubSubmitter{plan: onePlan()}
	sess := session.New(sub)
	m, cmd := press(NewFormModel(context.Background(), sess), tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, 0, sub.calls)
	assert.Contains(t, m.View(), "please enter a number for: Age, Height (cm), Weight (kg)")
	assert.Contains(t, m.View(), "No plan generated yet.")
}

func TestFormModel_SubmitRendersPlan(t *testing.T) {
	sub := &stubSubmitter{plan: onePlan()}
	sess := session.New(sub)
	m := fillBiometrics(t, NewFormModel(context.Background(), sess))

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, session.StateSubmitting, sess.State())
	assert.Contains(t, m.View(), "Generating plan...")

	// A second enter while submitting is rejected
	m, again := press(m, tea.KeyEnter)
	assert.Nil(t, again)
	assert.Contains(t, m.View(), "A plan is already being generated.")

	for _, msg := range collect(cmd) {
		if res, ok := msg.(MsgPlanResult); ok {
			m, _ = m.Update(res)
		}
	}

	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, session.StateIdle, sess.State())
	view := m.View()
	assert.Contains(t, view, "Day 1")
	assert.Contains(t, view, "Upma")
	assert.Contains(t, view, "No data for Lunch")
	assert.Contains(t, view, "Workout: Yoga")
}

func TestFormModel_SubmitFailureShowsFriendlyError(t *testing.T) {
	sub := &stubSubmitter{err: &planclient.SubmitError{
		Kind:    planclient.KindRejected,
		Status:  422,
		Details: []planclient.FieldError{{Loc: []string{"body", "age"}, Msg: "field required"}},
	}}
	sess := session.New(sub)
	m := fillBiometrics(t, NewFormModel(context.Background(), sess))

	m, cmd := press(m, tea.KeyEnter)
	for _, msg := range collect(cmd) {
		if res, ok := msg.(MsgPlanResult); ok {
			m, _ = m.Update(res)
		}
	}

	assert.Contains(t, m.View(), "The plan service rejected the request: body.age: field required")
	assert.Nil(t, sess.Plan())
}

func TestFormModel_ToggleTheme(t *testing.T) {
	sess := session.New(&stubSubmitter{})
	m, _ := press(NewFormModel(context.Background(), sess), tea.KeyCtrlT)

	assert.Contains(t, m.View(), "[dark]")
	assert.Equal(t, DarkPalette, m.(FormModel).styles.Palette)
}

func TestFormModel_EscQuits(t *testing.T) {
	m, cmd := press(NewFormModel(context.Background(), session.New(&stubSubmitter{})), tea.KeyEsc)

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Empty(t, m.View())
}
