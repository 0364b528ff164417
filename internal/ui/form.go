package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/josephgoksu/charm/internal/plan"
	"github.com/josephgoksu/charm/internal/presenter"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
)

// Layout constants
const (
	DefaultViewportHeight = 15
	MinViewportHeight     = 5
	InputWidth            = 30
	FormChromeHeight      = 20 // header + fields + status + footer
)

// MsgPlanResult carries the outcome of one submission back to Update.
type MsgPlanResult struct {
	Ticket session.Ticket
	Plan   *plan.WeeklyPlan
	Err    error
}

type formField struct {
	field    profile.Field
	input    textinput.Model
	options  []profile.Option
	selected int
}

func (f formField) isSelect() bool { return len(f.options) > 0 }

// FormModel is the interactive profile form. All state lives in the session; the
// model only holds widgets and the cancel func of the request in flight.
type FormModel struct {
	ctx     context.Context
	session *session.Session
	styles  Styles

	fields []formField
	focus  int // len(fields) is the submit button

	Spinner  spinner.Model
	Viewport viewport.Model
	width    int

	cancel context.CancelFunc
	status string
	quit   bool
}

// NewFormModel builds the form from the session's current profile.
func NewFormModel(ctx context.Context, sess *session.Session) FormModel {
	p := sess.Profile()

	fields := make([]formField, 0, len(profile.Fields))
	for _, f := range profile.Fields {
		ff := formField{field: f, options: profile.Options(f)}
		if ff.isSelect() {
			for i, o := range ff.options {
				if o.Value == p.Value(f) {
					ff.selected = i
				}
			}
		} else {
			ti := textinput.New()
			ti.Prompt = ""
			ti.CharLimit = 64
			ti.Width = InputWidth
			ti.SetValue(p.Value(f))
			ff.input = ti
		}
		fields = append(fields, ff)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StylePrimary

	m := FormModel{
		ctx:      ctx,
		session:  sess,
		styles:   StylesFor(sess.Snapshot().Theme),
		fields:   fields,
		Spinner:  s,
		Viewport: viewport.New(DefaultWidth, DefaultViewportHeight),
		width:    DefaultWidth,
	}
	m.focusField(0)
	m.refreshPlan()
	return m
}

// RunForm runs the form until the user quits.
func RunForm(ctx context.Context, sess *session.Session) error {
	p := tea.NewProgram(NewFormModel(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running form: %w", err)
	}
	if fm, ok := final.(FormModel); ok && fm.cancel != nil {
		fm.cancel()
	}
	return nil
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) focusField(i int) tea.Cmd {
	n := len(m.fields) + 1
	m.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for idx := range m.fields {
		if m.fields[idx].isSelect() {
			continue
		}
		if idx == m.focus {
			cmd = m.fields[idx].input.Focus()
		} else {
			m.fields[idx].input.Blur()
		}
	}
	return cmd
}

func (m *FormModel) refreshPlan() {
	rendered := presenter.Render(m.session.Plan())
	m.Viewport.SetContent(RenderPlanView(rendered, m.styles, m.Viewport.Width))
}

func (m *FormModel) cycle(delta int) {
	if m.focus >= len(m.fields) {
		return
	}
	f := &m.fields[m.focus]
	if !f.isSelect() {
		return
	}
	n := len(f.options)
	f.selected = ((f.selected+delta)%n + n) % n
	if err := m.session.UpdateField(f.field, f.options[f.selected].Value); err != nil {
		m.status = err.Error()
	}
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	ticket, err := m.session.Begin()
	if err != nil {
		m.status = FriendlyError(err)
		return m, nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.status = ""
	m.refreshPlan()
	return m, tea.Batch(m.Spinner.Tick, runSubmit(ctx, m.session, ticket))
}

func runSubmit(ctx context.Context, sess *session.Session, ticket session.Ticket) tea.Cmd {
	return func() tea.Msg {
		p, err := sess.Execute(ctx, ticket)
		return MsgPlanResult{Ticket: ticket, Plan: p, Err: err}
	}
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.Viewport.Width = msg.Width - 2
		m.Viewport.Height = msg.Height - FormChromeHeight
		if m.Viewport.Height < MinViewportHeight {
			m.Viewport.Height = MinViewportHeight
		}
		m.refreshPlan()
		return m, nil

	case MsgPlanResult:
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.status = FriendlyError(msg.Err)
		m.refreshPlan()
		m.Viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if m.session.State() != session.StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
				m.cancel = nil
			}
			m.quit = true
			return m, tea.Quit
		case "ctrl+t":
			m.styles = StylesFor(m.session.ToggleTheme())
			m.refreshPlan()
			return m, nil
		case "tab", "down":
			cmd := m.focusField(m.focus + 1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.focusField(m.focus - 1)
			return m, cmd
		case "left":
			if m.onSelect() {
				m.cycle(-1)
				return m, nil
			}
		case "right", " ":
			if msg.String() == " " && m.focus == len(m.fields) {
				return m.submit()
			}
			if m.onSelect() {
				m.cycle(1)
				return m, nil
			}
		case "enter", "ctrl+s":
			return m.submit()
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.Viewport, cmd = m.Viewport.Update(msg)
			return m, cmd
		}
	}

	return m.updateInput(msg)
}

func (m FormModel) onSelect() bool {
	return m.focus < len(m.fields) && m.fields[m.focus].isSelect()
}

// updateInput forwards msg to the focused text input and records any edit.
func (m FormModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus >= len(m.fields) || m.fields[m.focus].isSelect() {
		return m, nil
	}

	f := &m.fields[m.focus]
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if after := f.input.Value(); after != before {
		if err := m.session.UpdateField(f.field, after); err != nil {
			m.status = err.Error()
		} else if m.status != "" && m.session.Snapshot().Validation.OK {
			m.status = ""
		}
	}
	return m, cmd
}

func (m FormModel) View() string {
	if m.quit {
		return ""
	}

	view := m.session.Snapshot()
	st := m.styles
	var s strings.Builder

	s.WriteString(st.Header.Render("CHARM") + " " + st.Subtle.Render("Care, Health & AI-based Regimen Manager"))
	s.WriteString(" " + st.Subtle.Render("["+view.Theme.String()+"]") + "\n\n")

	missing := map[profile.Field]bool{}
	for _, f := range view.Validation.MissingFields {
		missing[f] = true
	}

	for i, f := range m.fields {
		label := st.Label.Render(f.field.Label())
		if i == m.focus {
			label = st.FocusedLabel.Render(f.field.Label())
		}

		var value string
		if f.isSelect() {
			value = view.Profile.OptionLabel(f.field)
			if i == m.focus {
				value = st.Primary.Render("< " + value + " >")
			} else {
				value = st.Text.Render("  " + value)
			}
		} else {
			value = f.input.View()
		}

		line := label + " " + value
		if missing[f.field] && view.Profile.Value(f.field) != "" {
			line += " " + st.Warning.Render("not a number")
		}
		s.WriteString(line + "\n")
	}

	s.WriteString("\n" + st.Text.Render(view.Metrics.String()) + "\n")
	for _, a := range profile.Advisories(view.Profile) {
		s.WriteString(st.Warning.Render("! "+a.Message) + "\n")
	}

	s.WriteString("\n")
	switch {
	case view.State == session.StateSubmitting:
		s.WriteString(m.Spinner.View() + " " + st.Subtle.Render("Generating plan..."))
	case m.focus == len(m.fields):
		s.WriteString(st.Primary.Bold(true).Render("[ Generate Plan ]"))
	default:
		s.WriteString(st.Subtle.Render("[ Generate Plan ]"))
	}
	s.WriteString("\n")

	if m.status != "" {
		s.WriteString(st.Error.Render(m.status) + "\n")
	}

	s.WriteString("\n" + m.Viewport.View() + "\n")
	s.WriteString(st.Subtle.Render("tab/shift+tab move • ←/→ change option • enter generate • pgup/pgdn scroll • ctrl+t theme • esc quit"))
	return s.String()
}
