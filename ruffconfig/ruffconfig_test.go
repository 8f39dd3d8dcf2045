package ruffconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover_RuffToml(t *testing.T) {
	dir := t.TempDir()
	content := "line-length = 100\nselect = [\"E\", \"F\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ruff.toml"), []byte(content), 0644))

	cfg, err := Discover(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, filepath.Join(dir, "ruff.toml"), cfg.Source)
	assert.Equal(t, 100, cfg.LineLength)
	assert.Equal(t, []string{"E", "F"}, cfg.Select)
}

func TestDiscover_PyprojectToolRuff(t *testing.T) {
	dir := t.TempDir()
	content := `[project]
name = "demo"

[tool.ruff]
line-length = 88

[tool.ruff.lint]
select = ["E", "F", "I"]
ignore = ["E501"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte(content), 0644))

	cfg, err := Discover(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 88, cfg.LineLength)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"E", "F", "I"}, cfg.Lint.Select)
	assert.Equal(t, []string{"E501"}, cfg.Lint.Ignore)
}

func TestDiscover_PyprojectWithoutRuffTable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "pyproject.toml"),
		[]byte("[project]\nname = \"demo\"\n"), 0644))

	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestDiscover_WalksUpToParent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, ".ruff.toml"), []byte("line-length = 79\n"), 0644))

	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 79, cfg.LineLength)
}

func TestDiscover_RuffTomlBeatsPyproject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "ruff.toml"), []byte("line-length = 120\n"), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "pyproject.toml"),
		[]byte("[tool.ruff]\nline-length = 88\n"), 0644))

	cfg, err := Discover(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 120, cfg.LineLength)
}

func TestDiscover_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "ruff.toml"), []byte("line-length = = 80"), 0644))

	_, err := Discover(dir)
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	var cfg *Config
	assert.Contains(t, cfg.Summary(), "no ruff configuration")

	cfg = &Config{Source: "/p/ruff.toml"}
	assert.Contains(t, cfg.Summary(), "/p/ruff.toml")
}
