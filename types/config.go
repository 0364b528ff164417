/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Service   ServiceConfig   `mapstructure:"service" validate:"required"`
	Output    OutputConfig    `mapstructure:"output" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServiceConfig holds the plan-generation service settings
type ServiceConfig struct {
	BaseURL string `mapstructure:"baseURL" validate:"required,url"`
	// TimeoutSeconds bounds a single plan submission end to end
	TimeoutSeconds int `mapstructure:"timeoutSeconds" validate:"required,min=1,max=600"`
}

// OutputConfig controls how generated plans are printed
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"required,oneof=text json yaml markdown"`
	// Width of the styled plan view; 0 means use the terminal width
	Width int `mapstructure:"width" validate:"omitempty,min=40,max=300"`
}

// TelemetryConfig holds anonymous usage telemetry settings
type TelemetryConfig struct {
	Disabled bool   `mapstructure:"disabled"`
	APIKey   string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}
