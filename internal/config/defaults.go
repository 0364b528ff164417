// Package config provides centralized configuration constants for charm.
// All default values should be defined here to ensure a single source of truth.
package config

// Plan service constants
const (
	// DefaultServiceURL is the hosted plan-generation service
	DefaultServiceURL = "https://charm-care-health-ai-based-regimen.onrender.com"

	// GeneratePlanPath is the endpoint that accepts a profile and returns a weekly plan
	GeneratePlanPath = "/generate_plan"

	// DefaultTimeoutSeconds bounds one submission, including a cold start of the hosted service
	DefaultTimeoutSeconds = 60
)

// Output format constants
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"

	// DefaultFormat is used when neither flag nor config selects one
	DefaultFormat = FormatText
)

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// IsOutputFormat reports whether f is one of OutputFormats.
func IsOutputFormat(f string) bool {
	for _, known := range OutputFormats {
		if f == known {
			return true
		}
	}
	return false
}
