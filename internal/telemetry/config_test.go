package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephgoksu/charm/internal/config"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDir(dir)
	t.Cleanup(func() { SetConfigDir("") })
	return dir
}

func TestLoad_NewConfig(t *testing.T) {
	useTempConfigDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.True(t, cfg.NeedsConsent())
	_, err = uuid.Parse(cfg.AnonymousID)
	assert.NoError(t, err)
}

func TestSave_CreatesFileWithOwnerOnlyPermissions(t *testing.T) {
	dir := filepath.Join(useTempConfigDir(t), "nested")
	SetConfigDir(dir)

	cfg := &Config{AnonymousID: "test-uuid"}
	cfg.Enable()
	require.NoError(t, cfg.Save())

	info, err := os.Stat(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_GeneratesUUIDWhenMissing(t *testing.T) {
	dir := useTempConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"enabled":true,"consent_asked":true}`), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled())
	assert.NotEmpty(t, cfg.AnonymousID)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := useTempConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{"), 0600))

	_, err := Load()
	assert.ErrorContains(t, err, "parse config file")
}

func TestConfig_EnableDisable(t *testing.T) {
	cfg := &Config{}
	assert.True(t, cfg.NeedsConsent())

	cfg.Enable()
	assert.True(t, cfg.IsEnabled())
	assert.False(t, cfg.NeedsConsent())

	cfg.Disable()
	assert.False(t, cfg.IsEnabled())
	assert.False(t, cfg.NeedsConsent())
}

func TestGetConfigPath_DefaultsToGlobalConfigDir(t *testing.T) {
	SetConfigDir("")
	orig := config.GetGlobalConfigDir
	t.Cleanup(func() { config.GetGlobalConfigDir = orig })
	config.GetGlobalConfigDir = func() (string, error) { return "/home/u/.charm", nil }

	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.charm/telemetry.json", path)
}
