package runner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, cfg.RuffPath)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.Options())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := "ruff_path: /usr/local/bin/ruff\ntimeout: 30s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/ruff", cfg.RuffPath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Len(t, cfg.Options(), 2)
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not yaml"), 0644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "ruff_path: /from/file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))

	t.Setenv("RUFFHOOK_RUFF", "/from/env")
	t.Setenv("RUFFHOOK_TIMEOUT", "45s")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.RuffPath)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoadConfig_BadTimeoutEnv(t *testing.T) {
	t.Setenv("RUFFHOOK_TIMEOUT", "soon")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestConfig_Options_NegativeTimeoutDisables(t *testing.T) {
	cfg := &Config{Timeout: -1}

	r := New(cfg.Options()...)
	assert.Zero(t, r.timeout)
}
