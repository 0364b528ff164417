package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServiceConfig holds the settings the plan client needs.
type ServiceConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultServiceConfig returns the default plan service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		BaseURL: DefaultServiceURL,
		Timeout: DefaultTimeoutSeconds * time.Second,
	}
}

// LoadServiceConfig loads the plan service configuration from Viper with defaults.
func LoadServiceConfig() ServiceConfig {
	defaults := DefaultServiceConfig()

	seconds := getIntWithDefault("service.timeoutSeconds", DefaultTimeoutSeconds)
	if seconds <= 0 {
		seconds = DefaultTimeoutSeconds
	}

	return ServiceConfig{
		BaseURL: strings.TrimRight(getStringWithDefault("service.baseURL", defaults.BaseURL), "/"),
		Timeout: time.Duration(seconds) * time.Second,
	}
}

// LoadOutputFormat returns output.format, falling back to DefaultFormat for unknown values.
func LoadOutputFormat() string {
	f := strings.ToLower(getStringWithDefault("output.format", DefaultFormat))
	if !IsOutputFormat(f) {
		return DefaultFormat
	}
	return f
}

// Helper functions for Viper with defaults

func getIntWithDefault(key string, defaultVal int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return defaultVal
}

func getStringWithDefault(key string, defaultVal string) string {
	if viper.IsSet(key) && viper.GetString(key) != "" {
		return viper.GetString(key)
	}
	return defaultVal
}
