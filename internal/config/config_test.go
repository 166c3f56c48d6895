package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
		validate  func(*testing.T, *Config)
	}{
		{
			name:    "full config",
			content: `{"url": "https://vendor.example.com", "api_key": "key", "port": 9090, "use_browser": true, "fetch_timeout": 60}`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://vendor.example.com", cfg.URL)
				assert.Equal(t, "key", cfg.APIKey)
				assert.Equal(t, 9090, cfg.Port)
				assert.True(t, cfg.UseBrowser)
				assert.Equal(t, 60, cfg.FetchTimeout)
			},
		},
		{
			name:    "empty object",
			content: `{}`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.URL)
				assert.Zero(t, cfg.Port)
			},
		},
		{
			name:      "malformed JSON",
			content:   `{not json`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			cfg, err := LoadConfig(path)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{name: "valid", config: Config{Port: 8080, FetchTimeout: 30}},
		{name: "zero values valid", config: Config{}},
		{name: "port out of range", config: Config{Port: 70000}, wantError: true},
		{name: "negative timeout", config: Config{FetchTimeout: -1}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{URL: "https://set.example.com"}
	defaults := Config{
		URL:          "https://default.example.com",
		APIKey:       "default-key",
		Port:         8080,
		FetchTimeout: 30,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "https://set.example.com", merged.URL)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, 30, merged.FetchTimeout)
}
