package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrMalformedPlan is returned when a response body lacks the plan.days shape.
var ErrMalformedPlan = errors.New("malformed plan response")

type wireResponse struct {
	Plan    *wirePlan       `json:"plan"`
	Workout json.RawMessage `json:"workout"`
}

type wirePlan struct {
	Days json.RawMessage `json:"days"`
}

// Decode parses a plan service response body.
// The envelope must be an object with a non-empty plan.days list; anything else is
// ErrMalformedPlan. Inside the envelope decoding is lenient: a day or meal that fails
// to decode is treated as absent, and non-string workout entries become empty.
func Decode(body []byte) (*WeeklyPlan, error) {
	var resp wireResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	if resp.Plan == nil {
		return nil, fmt.Errorf("%w: missing plan", ErrMalformedPlan)
	}
	if isNull(resp.Plan.Days) {
		return nil, fmt.Errorf("%w: missing plan.days", ErrMalformedPlan)
	}

	var rawDays []json.RawMessage
	if err := json.Unmarshal(resp.Plan.Days, &rawDays); err != nil {
		return nil, fmt.Errorf("%w: plan.days is not a list", ErrMalformedPlan)
	}
	if len(rawDays) == 0 {
		return nil, fmt.Errorf("%w: plan.days is empty", ErrMalformedPlan)
	}
	if len(rawDays) > DaysPerWeek {
		slog.Warn("plan has more days than a week, extra days dropped", "days", len(rawDays))
		rawDays = rawDays[:DaysPerWeek]
	} else if len(rawDays) < DaysPerWeek {
		slog.Warn("plan is shorter than a week", "days", len(rawDays))
	}

	out := &WeeklyPlan{Days: make([]DayPlan, len(rawDays))}
	for i, raw := range rawDays {
		out.Days[i] = decodeDay(i, raw)
	}
	out.Workout = decodeWorkout(resp.Workout)
	return out, nil
}

func decodeDay(index int, raw json.RawMessage) DayPlan {
	day := DayPlan{}
	var slots map[string]json.RawMessage
	if err := json.Unmarshal(raw, &slots); err != nil || slots == nil {
		slog.Warn("plan day is not an object", "day", index+1)
		return day
	}

	for _, slot := range MealSlots {
		rawMeal, ok := slots[string(slot)]
		if !ok || isNull(rawMeal) {
			continue
		}
		var meal MealEntry
		if err := json.Unmarshal(rawMeal, &meal); err != nil {
			slog.Warn("plan meal could not be decoded", "day", index+1, "slot", slot, "error", err)
			continue
		}
		day[slot] = meal
	}
	return day
}

func decodeWorkout(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Warn("plan workout is not a list")
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		if err := json.Unmarshal(e, &out[i]); err != nil {
			out[i] = ""
		}
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
