package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settingskit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GITLAB_PRIVATE_TOKEN", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "xml", cfg.OutputFormat)
	assert.Equal(t, ".settingskit.state.json", cfg.StateFile)
	assert.Equal(t, "jetbrains/teamcity-server:latest", cfg.PreviewImage)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce)
	assert.Empty(t, cfg.Secrets.GitLabToken)
}

func TestLoad_ConfigFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".settingskit.yaml"), []byte("output_format: yaml\n"), 0644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.OutputFormat)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, `
output_format: JSON
state_file: run.state.json
preview_image: teamcity:2024.12
log_level: debug
watch_debounce: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "run.state.json", cfg.StateFile)
	assert.Equal(t, "teamcity:2024.12", cfg.PreviewImage)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, time.Second, cfg.WatchDebounce)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "output_format: yaml\n")
	t.Setenv("SETTINGSKIT_OUTPUT_FORMAT", "json")
	t.Setenv("SETTINGSKIT_LOG_LEVEL", "warn")
	t.Setenv("GITLAB_PRIVATE_TOKEN", "glpat-secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.Equal(t, "glpat-secret", cfg.Secrets.GitLabToken)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		errorContains string
	}{
		{
			name:          "Unsupported format",
			content:       "output_format: toml\n",
			errorContains: "'output_format' must be one of: xml yaml json",
		},
		{
			name:          "Unknown log level",
			content:       "log_level: verbose\n",
			errorContains: "'log_level' must be one of: debug info warn error",
		},
		{
			name:          "Empty state file",
			content:       "state_file: \"\"\n",
			errorContains: "'state_file' must not be empty",
		},
		{
			name:          "Malformed file",
			content:       "output_format: [xml\n",
			errorContains: "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for level, want := range tests {
		assert.Equal(t, want, (&Config{LogLevel: level}).SlogLevel(), "level %q", level)
	}
}
