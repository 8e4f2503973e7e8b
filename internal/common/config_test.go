package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "http://localhost:8000", config.Backend.BaseURL)
	assert.Equal(t, 5, config.Backend.RateLimit)
	assert.Equal(t, 30*time.Second, config.Backend.GetTimeout())
	assert.Equal(t, 8000, config.Server.Port)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/assist.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", config.Backend.BaseURL)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assist.toml")
	content := `
environment = "production"

[backend]
base_url = "https://api.intellivest.example"
timeout = "10s"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, "https://api.intellivest.example", config.Backend.BaseURL)
	assert.Equal(t, 10*time.Second, config.Backend.GetTimeout())
	assert.Equal(t, "debug", config.Logging.Level)

	// Unset sections keep their defaults
	assert.Equal(t, 5, config.Backend.RateLimit)
	assert.Equal(t, 8000, config.Server.Port)
}

func TestLoadConfig_LaterFilesWin(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(first, []byte("[backend]\nbase_url = \"http://first\"\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("[backend]\nbase_url = \"http://second\"\n"), 0o644))

	config, err := LoadConfig(first, second)
	require.NoError(t, err)
	assert.Equal(t, "http://second", config.Backend.BaseURL)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ASSIST_ENV", "prod")
	t.Setenv("ASSIST_BACKEND_URL", "http://stub:9000")
	t.Setenv("ASSIST_PORT", "9000")
	t.Setenv("ASSIST_LOG_LEVEL", "warn")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, "http://stub:9000", config.Backend.BaseURL)
	assert.Equal(t, 9000, config.Server.Port)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestBackendConfig_GetTimeout_InvalidFallsBack(t *testing.T) {
	c := BackendConfig{Timeout: "soon"}
	assert.Equal(t, 30*time.Second, c.GetTimeout())
}
