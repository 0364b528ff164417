package telemetry

import (
	"errors"

	"github.com/josephgoksu/charm/internal/planclient"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
)

// Event names.
const (
	EventPlanSubmitted = "plan_submitted"
	EventPlanGenerated = "plan_generated"
	EventPlanFailed    = "plan_failed"
	EventCommandError  = "command_error"
)

// forbiddenProperty reports whether key names a profile field. Such keys are
// stripped before sending.
func forbiddenProperty(key string) bool {
	_, err := profile.ParseField(key)
	return err == nil || key == "calorie_target" || key == "bmi"
}

// SessionObserver reports submission lifecycle events from a session. surface
// names the front end (form, generate, mcp).
func SessionObserver(c Client, surface string) session.Observer {
	return func(ev session.Event) {
		props := Properties{"surface": surface}
		switch ev.Kind {
		case session.EventSubmitted:
			c.Track(EventPlanSubmitted, props)
		case session.EventSucceeded:
			props["duration_ms"] = ev.Duration.Milliseconds()
			if ev.Plan != nil {
				props["day_count"] = len(ev.Plan.Days)
			}
			c.Track(EventPlanGenerated, props)
		case session.EventFailed:
			props["duration_ms"] = ev.Duration.Milliseconds()
			props["error_kind"] = ErrorKind(ev.Err)
			var se *planclient.SubmitError
			if errors.As(ev.Err, &se) && se.Status != 0 {
				props["status"] = se.Status
			}
			c.Track(EventPlanFailed, props)
		}
	}
}

// ErrorKind names the class of err for reporting.
func ErrorKind(err error) string {
	var se *planclient.SubmitError
	var ie *profile.IncompleteError
	var ce *planclient.CoercionError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &se):
		return se.Kind.String()
	case errors.As(err, &ie):
		return "incomplete"
	case errors.As(err, &ce):
		return "coercion"
	case errors.Is(err, session.ErrSubmissionInFlight):
		return "in_flight"
	}
	return "other"
}
