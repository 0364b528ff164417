// Package telemetry sends opt-in anonymous usage events for charm. Events carry
// outcome kinds, durations and counts. Profile values are never sent.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/josephgoksu/charm/internal/config"
)

// ConfigFileName is the name of the consent file in the global config directory.
const ConfigFileName = "telemetry.json"

// Config is the stored consent state.
type Config struct {
	Enabled      bool   `json:"enabled"`
	ConsentAsked bool   `json:"consent_asked"`
	AnonymousID  string `json:"anonymous_id"` // random, generated once
}

var (
	configDirOverride   string
	configDirOverrideMu sync.RWMutex
)

// SetConfigDir overrides the directory holding telemetry.json. Empty restores
// the default (~/.charm).
func SetConfigDir(dir string) {
	configDirOverrideMu.Lock()
	defer configDirOverrideMu.Unlock()
	configDirOverride = dir
}

func getConfigDir() (string, error) {
	configDirOverrideMu.RLock()
	override := configDirOverride
	configDirOverrideMu.RUnlock()

	if override != "" {
		return override, nil
	}
	dir, err := config.GetGlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return dir, nil
}

// GetConfigPath returns the full path to telemetry.json.
func GetConfigPath() (string, error) {
	dir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the consent state. A missing file yields a disabled config with a
// fresh anonymous ID.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if cfg.AnonymousID == "" {
		cfg.AnonymousID = uuid.NewString()
	}
	return cfg, nil
}

// Save writes the consent state with owner-only permissions.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Enable opts in.
func (c *Config) Enable() {
	c.Enabled = true
	c.ConsentAsked = true
}

// Disable opts out.
func (c *Config) Disable() {
	c.Enabled = false
	c.ConsentAsked = true
}

// NeedsConsent reports whether the user has never made a choice.
func (c *Config) NeedsConsent() bool { return !c.ConsentAsked }

// IsEnabled reports whether events may be sent.
func (c *Config) IsEnabled() bool { return c.Enabled }
