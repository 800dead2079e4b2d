package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"database_url": "postgres://localhost/cvtailor",
		"model": "gemini-2.5-flash",
		"debounce_ms": 250,
		"use_browser": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/cvtailor", cfg.DatabaseURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 250, cfg.DebounceMS)
	assert.True(t, cfg.UseBrowser)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config is valid", Config{}, ""},
		{"valid port", Config{Port: 8080}, ""},
		{"negative port", Config{Port: -1}, "'port'"},
		{"port too large", Config{Port: 70000}, "'port'"},
		{"negative debounce", Config{DebounceMS: -5}, "'debounce_ms'"},
		{"negative cache TTL", Config{CacheTTLHours: -1}, "'cache_ttl_hours'"},
		{"missing chrome binary", Config{ChromePath: "/nonexistent/chrome"}, "chrome binary not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9090, Model: "gemini-2.5-flash"}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9090, merged.Port, "explicit value wins")
	assert.Equal(t, "gemini-2.5-flash", merged.Model, "explicit value wins")
	assert.Equal(t, 500, merged.DebounceMS, "default fills the gap")
	assert.Equal(t, 24, merged.CacheTTLHours, "default fills the gap")
}

func TestMergeWithDefaults_AllUnset(t *testing.T) {
	cfg := Config{}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "gemini-2.5-pro", merged.Model)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env/db")

	cfg := Config{APIKey: "file-key"}
	cfg.FromEnv()

	assert.Equal(t, "file-key", cfg.APIKey, "file value wins over environment")
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL, "environment fills unset field")
}

func TestDurations(t *testing.T) {
	cfg := Config{DebounceMS: 500, CacheTTLHours: 24}

	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL())
}
