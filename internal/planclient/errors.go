package planclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
)

// ErrorKind classifies a failed submission.
type ErrorKind int

const (
	// KindTransport means the call never completed.
	KindTransport ErrorKind = iota
	// KindTimeout means no response arrived before the deadline.
	KindTimeout
	// KindCancelled means the caller abandoned the request.
	KindCancelled
	// KindRejected means the service answered with a non-success status.
	KindRejected
	// KindMalformed means a success status with a body lacking plan.days.
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindCancelled:
		return "cancelled"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed"
	}
	return "unknown"
}

// FieldError is one entry of a rejection's detail list.
type FieldError struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

func (f FieldError) String() string {
	if len(f.Loc) == 0 {
		return f.Msg
	}
	return strings.Join(f.Loc, ".") + ": " + f.Msg
}

// SubmitError is returned by Client.Submit for every failure.
type SubmitError struct {
	Kind       ErrorKind
	Status     int
	StatusText string
	// Details holds structured field errors from a rejection, in service order.
	Details []FieldError
	// DetailText is a plain string detail, used when the service sent one.
	DetailText string
	Err        error
}

// Detail is the human-readable rejection detail: every field error joined by "; ",
// else the plain detail string, else the status text.
func (e *SubmitError) Detail() string {
	if len(e.Details) > 0 {
		parts := make([]string, len(e.Details))
		for i, d := range e.Details {
			parts[i] = d.String()
		}
		return strings.Join(parts, "; ")
	}
	if e.DetailText != "" {
		return e.DetailText
	}
	return e.StatusText
}

func (e *SubmitError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return "plan service did not respond in time"
	case KindCancelled:
		return "plan request cancelled"
	case KindRejected:
		return fmt.Sprintf("plan service rejected the request (%d): %s", e.Status, e.Detail())
	case KindMalformed:
		return fmt.Sprintf("plan service returned an unreadable plan: %v", e.Err)
	default:
		return fmt.Sprintf("plan service unreachable: %v", e.Err)
	}
}

func (e *SubmitError) Unwrap() error { return e.Err }

// IsKind reports whether err is a *SubmitError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *SubmitError
	return errors.As(err, &se) && se.Kind == kind
}

// classifyTransport maps an error from sending or reading to a SubmitError.
func classifyTransport(ctx context.Context, err error) *SubmitError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &SubmitError{Kind: KindTimeout, Err: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &SubmitError{Kind: KindCancelled, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &SubmitError{Kind: KindTimeout, Err: err}
	}
	return &SubmitError{Kind: KindTransport, Err: err}
}

// rejection builds a KindRejected error from a non-success response.
func rejection(resp *http.Response, body []byte) *SubmitError {
	se := &SubmitError{
		Kind:       KindRejected,
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
	}
	se.Details, se.DetailText = parseDetail(body)
	return se
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = "HTTP " + strconv.Itoa(resp.StatusCode)
	}
	return text
}

// parseDetail reads an optional "detail" that is either a list of {loc, msg}
// objects or a plain string. Unparseable bodies yield no detail.
func parseDetail(body []byte) ([]FieldError, string) {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, ""
	}
	raw := bytes.TrimSpace(envelope.Detail)
	if len(raw) == 0 {
		return nil, ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return nil, text
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, ""
	}
	var out []FieldError
	for _, e := range entries {
		var entry struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(e, &entry); err != nil {
			if json.Unmarshal(e, &text) == nil && text != "" {
				out = append(out, FieldError{Msg: text})
			}
			continue
		}
		fe := FieldError{Msg: entry.Msg}
		for _, part := range entry.Loc {
			fe.Loc = append(fe.Loc, locPart(part))
		}
		out = append(out, fe)
	}
	return out, ""
}

func locPart(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
