package ui

import (
	"errors"

	"github.com/josephgoksu/charm/internal/planclient"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
)

// FriendlyError converts pipeline errors to the message shown to the user.
func FriendlyError(err error) string {
	if err == nil {
		return ""
	}

	var incomplete *profile.IncompleteError
	var coercion *planclient.CoercionError
	var submit *planclient.SubmitError
	switch {
	case errors.As(err, &incomplete), errors.As(err, &coercion):
		return err.Error()
	case errors.Is(err, session.ErrSubmissionInFlight):
		return "A plan is already being generated."
	case errors.As(err, &submit):
		switch submit.Kind {
		case planclient.KindTimeout:
			return "The plan service did not respond in time. Please try again."
		case planclient.KindCancelled:
			return "Request cancelled."
		case planclient.KindRejected:
			return "The plan service rejected the request: " + submit.Detail()
		case planclient.KindMalformed:
			return "The plan service sent an unexpected response, so there is no plan to show."
		default:
			msg := "Plan service unreachable. Check your connection and try again."
			if submit.Err != nil {
				msg += " (" + submit.Err.Error() + ")"
			}
			return msg
		}
	}
	return err.Error()
}
