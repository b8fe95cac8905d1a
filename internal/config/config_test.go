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
	path := writeConfigFile(t, `{
		"port": 8080,
		"api_key": "test-key",
		"model": "gemini-2.5-flash",
		"workers": 8
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfigFile(t, `{not json`)
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Port: 8080, Workers: 4}
	assert.NoError(t, cfg.Validate())

	cfg = Config{Port: -1}
	assert.Error(t, cfg.Validate())

	cfg = Config{Port: 70000}
	assert.Error(t, cfg.Validate())

	cfg = Config{Workers: -2}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "from-file"}
	merged := cfg.MergeWithDefaults(Config{
		APIKey:      "from-env",
		DatabaseURL: "postgres://localhost/skills",
		Port:        8080,
		Workers:     4,
	})

	assert.Equal(t, "from-file", merged.APIKey, "existing values win")
	assert.Equal(t, "postgres://localhost/skills", merged.DatabaseURL)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, 4, merged.Workers)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "9090")

	cfg := FromEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
}
