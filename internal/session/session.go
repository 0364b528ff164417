// Package session owns the form session: the profile being edited, the current
// plan and the submission lifecycle.
//
// Lifecycle: Idle -> Submitting -> Idle. Submitting is entered only from Idle, and the
// previous plan is discarded on entry. The outcome of the last attempt is kept until
// the next one begins.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/josephgoksu/charm/internal/plan"
	"github.com/josephgoksu/charm/internal/planclient"
	"github.com/josephgoksu/charm/internal/profile"
)

// ErrSubmissionInFlight is returned by Begin while a submission is outstanding.
var ErrSubmissionInFlight = errors.New("a plan request is already in progress")

// ErrStaleTicket is returned by Execute for a ticket that is not in flight or was
// already executed.
var ErrStaleTicket = errors.New("plan request ticket is not in flight")

// State is the submission lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Outcome is the result of the most recent attempt.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	}
	return "none"
}

// Theme is the display theme. It lives only as long as the session.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Submitter sends a request payload and returns the decoded plan.
// *planclient.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, payload planclient.RequestPayload) (*plan.WeeklyPlan, error)
}

// Ticket identifies one submission. Its payload is the snapshot taken at Begin.
type Ticket struct {
	ID        uint64
	Payload   planclient.RequestPayload
	StartedAt time.Time
}

// EventKind identifies a lifecycle transition.
type EventKind int

const (
	EventSubmitted EventKind = iota
	EventSucceeded
	EventFailed
)

// Event is delivered to observers after each transition, outside the session lock.
type Event struct {
	Kind     EventKind
	Ticket   Ticket
	Duration time.Duration
	Plan     *plan.WeeklyPlan
	Err      error
}

// Observer receives lifecycle events.
type Observer func(Event)

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each submission. Zero leaves it to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithObserver registers an observer for lifecycle events.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithProfile starts the session from p instead of the form defaults.
func WithProfile(p profile.UserProfile) Option {
	return func(s *Session) { s.setProfileLocked(p) }
}

// WithTheme sets the initial theme.
func WithTheme(t Theme) Option {
	return func(s *Session) { s.theme = t }
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	profile profile.UserProfile
	metrics profile.DerivedMetrics
	plan    *plan.WeeklyPlan
	state   State
	outcome Outcome
	lastErr error
	theme   Theme

	seq       uint64
	inflight  uint64
	executing bool

	submitter Submitter
	timeout   time.Duration
	observers []Observer
	now       func() time.Time
}

// New creates an idle session with the form defaults.
func New(submitter Submitter, opts ...Option) *Session {
	s := &Session{
		submitter: submitter,
		now:       time.Now,
	}
	s.setProfileLocked(profile.New())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) setProfileLocked(p profile.UserProfile) {
	s.profile = p
	s.metrics = profile.ComputeMetrics(p)
}

// UpdateField sets one profile field and recomputes metrics. An in-flight submission
// is unaffected; the change applies to the next one.
func (s *Session) UpdateField(field profile.Field, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.profile.Update(field, raw)
	if err != nil {
		return err
	}
	s.setProfileLocked(p)
	return nil
}

// SetProfile replaces the whole profile.
func (s *Session) SetProfile(p profile.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setProfileLocked(p)
}

// Profile returns a copy of the current profile.
func (s *Session) Profile() profile.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Metrics returns the metrics for the current profile.
func (s *Session) Metrics() profile.DerivedMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// Plan returns the current plan, or nil.
func (s *Session) Plan() *plan.WeeklyPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last attempt, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Session) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	return s.theme
}

// View is a consistent copy of the session for rendering.
type View struct {
	Profile    profile.UserProfile
	Metrics    profile.DerivedMetrics
	Validation profile.ValidationResult
	Plan       *plan.WeeklyPlan
	State      State
	Outcome    Outcome
	Err        error
	Theme      Theme
}

// Snapshot returns a View taken under a single lock.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Profile:    s.profile,
		Metrics:    s.metrics,
		Validation: profile.ValidateForSubmission(s.profile),
		Plan:       s.plan,
		State:      s.state,
		Outcome:    s.outcome,
		Err:        s.lastErr,
		Theme:      s.theme,
	}
}

// Begin moves Idle to Submitting and returns the ticket for the request.
// It fails with ErrSubmissionInFlight while Submitting, and with
// *profile.IncompleteError or *planclient.CoercionError when the profile cannot be
// sent; those leave the state and the current plan untouched.
func (s *Session) Begin() (Ticket, error) {
	s.mu.Lock()

	if s.state == StateSubmitting {
		s.mu.Unlock()
		return Ticket{}, ErrSubmissionInFlight
	}
	if err := profile.ValidateForSubmission(s.profile).Err(); err != nil {
		s.lastErr = err
		s.mu.Unlock()
		return Ticket{}, err
	}
	payload, err := planclient.BuildRequest(s.profile)
	if err != nil {
		s.lastErr = err
		s.mu.Unlock()
		return Ticket{}, err
	}

	s.seq++
	ticket := Ticket{ID: s.seq, Payload: payload, StartedAt: s.now()}
	s.inflight = ticket.ID
	s.executing = false
	s.state = StateSubmitting
	s.plan = nil
	s.outcome = OutcomeNone
	s.lastErr = nil
	s.mu.Unlock()

	s.notify(Event{Kind: EventSubmitted, Ticket: ticket})
	return ticket, nil
}

// Finish records the result for ticket and returns to Idle. Results for a ticket
// that is not the one in flight are ignored and Finish returns false.
func (s *Session) Finish(ticket Ticket, weekly *plan.WeeklyPlan, err error) bool {
	s.mu.Lock()
	if s.state != StateSubmitting || ticket.ID != s.inflight {
		s.mu.Unlock()
		return false
	}

	ev := Event{Ticket: ticket, Duration: s.now().Sub(ticket.StartedAt)}
	s.state = StateIdle
	s.inflight = 0
	s.executing = false
	if err != nil {
		s.outcome = OutcomeFailed
		s.lastErr = err
		s.plan = nil
		ev.Kind, ev.Err = EventFailed, err
	} else {
		s.outcome = OutcomeSuccess
		s.lastErr = nil
		s.plan = weekly
		ev.Kind, ev.Plan = EventSucceeded, weekly
	}
	s.mu.Unlock()

	s.notify(ev)
	return true
}

// Execute performs the network call for a ticket from Begin and records the result.
// Each in-flight ticket is executed at most once; any other ticket fails with
// ErrStaleTicket and makes no call.
func (s *Session) Execute(ctx context.Context, ticket Ticket) (*plan.WeeklyPlan, error) {
	s.mu.Lock()
	if s.state != StateSubmitting || ticket.ID != s.inflight || s.executing {
		s.mu.Unlock()
		return nil, ErrStaleTicket
	}
	s.executing = true
	s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	weekly, err := s.submitter.Submit(ctx, ticket.Payload)
	if err != nil && !isSubmitError(err) {
		err = classifyContext(ctx, err)
	}
	if err == nil && weekly.Empty() {
		err = &planclient.SubmitError{Kind: planclient.KindMalformed, Err: plan.ErrMalformedPlan}
	}
	s.Finish(ticket, weekly, err)
	if err != nil {
		return nil, err
	}
	return weekly, nil
}

// Submit runs Begin and Execute.
func (s *Session) Submit(ctx context.Context) (*plan.WeeklyPlan, error) {
	ticket, err := s.Begin()
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, ticket)
}

func (s *Session) notify(ev Event) {
	for _, o := range s.observers {
		o(ev)
	}
}

func isSubmitError(err error) bool {
	var se *planclient.SubmitError
	return errors.As(err, &se)
}

// classifyContext gives errors from other Submitter implementations the same
// timeout and cancellation kinds the HTTP client reports.
func classifyContext(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &planclient.SubmitError{Kind: planclient.KindTimeout, Err: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &planclient.SubmitError{Kind: planclient.KindCancelled, Err: err}
	}
	return err
}
