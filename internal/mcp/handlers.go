package mcp

import (
	"context"
	"errors"
	"log/slog"

	"github.com/josephgoksu/charm/internal/presenter"
	"github.com/josephgoksu/charm/internal/profile"
	"github.com/josephgoksu/charm/internal/session"
)

func invalidInput(err error) *ToolResult {
	var fe *FieldError
	if errors.As(err, &fe) {
		return &ToolResult{Error: FormatValidationError(string(fe.Field), fe.Error())}
	}
	return &ToolResult{Error: FormatError(err.Error())}
}

// HandleComputeBMI computes derived metrics only. It never calls the plan service.
func HandleComputeBMI(params ProfileParams) *ToolResult {
	p, err := params.Profile()
	if err != nil {
		return invalidInput(err)
	}
	m := profile.ComputeMetrics(p)
	if !m.Defined {
		return &ToolResult{Error: FormatValidationError("height_cm, weight_kg", "both are required and must be positive numbers")}
	}
	return &ToolResult{Content: m.String()}
}

// HandleCheckProfile reports metrics, readiness and advisories without submitting.
func HandleCheckProfile(params ProfileParams) *ToolResult {
	p, err := params.Profile()
	if err != nil {
		return invalidInput(err)
	}
	return &ToolResult{Content: FormatReport(profile.Check(p))}
}

// HandleGeneratePlan runs one submission through a fresh session and renders the
// plan. opts are applied after the profile is set.
func HandleGeneratePlan(ctx context.Context, sub session.Submitter, params ProfileParams, opts ...session.Option) *ToolResult {
	p, err := params.Profile()
	if err != nil {
		return invalidInput(err)
	}

	sess := session.New(sub, append([]session.Option{session.WithProfile(p)}, opts...)...)
	weekly, err := sess.Submit(ctx)
	if err != nil {
		var incomplete *profile.IncompleteError
		if errors.As(err, &incomplete) {
			return &ToolResult{Error: FormatValidationError("profile", err.Error())}
		}
		slog.Warn("generate_plan failed", "error", err)
		return &ToolResult{Error: FormatError(err.Error())}
	}
	return &ToolResult{Content: FormatPlan(presenter.Render(weekly))}
}
