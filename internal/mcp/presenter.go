package mcp

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/charm/internal/presenter"
	"github.com/josephgoksu/charm/internal/profile"
)

// FormatError returns a Markdown error block.
func FormatError(message string) string {
	return fmt.Sprintf("## Error\n\n**Details**: %s", message)
}

// FormatValidationError returns a Markdown error for one rejected input field.
func FormatValidationError(field, message string) string {
	return fmt.Sprintf("## Validation Error\n\n**Field**: `%s`\n**Details**: %s", field, message)
}

// FormatReport renders metrics, submission readiness and advisories.
func FormatReport(r profile.Report) string {
	var sb strings.Builder

	sb.WriteString("## Profile\n\n")
	if r.Metrics.Defined {
		fmt.Fprintf(&sb, "- **BMI**: %.1f\n", r.Metrics.BMI)
		fmt.Fprintf(&sb, "- **Category**: %s\n", r.Metrics.Category)
	} else {
		sb.WriteString("- **BMI**: not available (height and weight are needed)\n")
	}

	if r.Validation.OK {
		sb.WriteString("- **Ready to submit**: yes\n")
	} else {
		fmt.Fprintf(&sb, "- **Ready to submit**: no, %s\n", r.Validation.Err())
	}

	if len(r.Advisories) > 0 {
		sb.WriteString("\n### Advisories\n\n")
		for _, a := range r.Advisories {
			fmt.Fprintf(&sb, "- %s\n", a.Message)
		}
	}
	return sb.String()
}

// FormatPlan renders a weekly plan as Markdown.
func FormatPlan(r presenter.RenderedPlan) string {
	return r.Markdown()
}
