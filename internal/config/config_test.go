package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "herb-harvest.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 60, cfg.AI.TimeoutSecs)
	assert.Equal(t, 1, cfg.AI.MaxAttempts)
	assert.InDelta(t, 2.0, cfg.AI.RequestsPerSecond, 0.001)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)
	assert.Equal(t, 40, cfg.I18n.BatchSize)
	assert.Equal(t, 1000, cfg.Locate.DelayMs)
	assert.InDelta(t, 34.0522, cfg.Locate.RefLat, 0.00001)
	assert.InDelta(t, -118.2437, cfg.Locate.RefLon, 0.00001)
	assert.Equal(t, 1250, cfg.Farmer.RewardsBalance)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/herbs
ai:
  provider: anthropic
  max_attempts: 3
log:
  level: debug
  format: console
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, 3, cfg.AI.MaxAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Defaults still apply for unset values
	assert.Equal(t, 60, cfg.AI.TimeoutSecs)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
ai:
  provider: anthropic
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("HERB_AI_PROVIDER", "gemini")
	t.Setenv("HERB_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [unclosed"), 0644))

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestLoadExplicitPath(t *testing.T) {
	chdirTemp(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "herbs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: memory\ni18n:\n  default_language: hi\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "hi", cfg.I18n.DefaultLanguage)
	assert.Equal(t, 60, cfg.AI.TimeoutSecs)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = "sqlite"
	cfg.AI.Provider = "gemini"
	cfg.AI.TimeoutSecs = 60
	cfg.Server.Port = 8080
	return cfg
}

func TestValidate_StoreOnly(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("store"))
}

func TestValidate_AIRequiresKey(t *testing.T) {
	cfg := validDefaults()

	err := cfg.Validate("ai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.key is required")

	cfg.Gemini.Key = "g-key"
	assert.NoError(t, cfg.Validate("ai"))
}

func TestValidate_AnthropicProvider(t *testing.T) {
	cfg := validDefaults()
	cfg.AI.Provider = "anthropic"

	err := cfg.Validate("ai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")
}

func TestValidate_UnknownProviderAndDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.AI.Provider = "openai"
	cfg.Store.Driver = "mysql"

	err := cfg.Validate("ai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ai.provider must be")
	assert.Contains(t, err.Error(), "store.driver must be")
}

func TestValidate_PostgresNeedsURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "postgres"

	err := cfg.Validate("store")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidate_ServePort(t *testing.T) {
	cfg := validDefaults()
	cfg.Gemini.Key = "g-key"
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}
