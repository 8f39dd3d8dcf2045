package claudeconfig

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initQuiet(t *testing.T, dir string, force bool) {
	t.Helper()
	require.NoError(t, Init(dir, force, WithOutput(io.Discard)))
}

func artifactPath(dir, name string) string {
	return filepath.Join(dir, ClaudeDirName, name)
}

func readArtifact(t *testing.T, dir, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(artifactPath(dir, name))
	require.NoError(t, err)
	return data
}

func parseJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestInit_FreshDirectory(t *testing.T) {
	dir := t.TempDir()

	initQuiet(t, dir, false)

	settings := parseJSON(t, readArtifact(t, dir, SettingsFileName))
	assert.Contains(t, settings, "hooks")

	local := parseJSON(t, readArtifact(t, dir, LocalSettingsFileName))
	assert.Contains(t, local, "permissions")

	md := string(readArtifact(t, dir, ClaudeMDFileName))
	assert.Contains(t, md, StartMarker)
	assert.Contains(t, md, EndMarker)
}

func TestInit_Idempotent(t *testing.T) {
	dir := t.TempDir()

	initQuiet(t, dir, false)
	firstSettings := parseJSON(t, readArtifact(t, dir, SettingsFileName))
	firstLocal := parseJSON(t, readArtifact(t, dir, LocalSettingsFileName))
	firstMD := readArtifact(t, dir, ClaudeMDFileName)

	initQuiet(t, dir, false)
	assert.Equal(t, firstSettings, parseJSON(t, readArtifact(t, dir, SettingsFileName)))
	assert.Equal(t, firstLocal, parseJSON(t, readArtifact(t, dir, LocalSettingsFileName)))
	assert.Equal(t, string(firstMD), string(readArtifact(t, dir, ClaudeMDFileName)),
		"CLAUDE.md must be byte-identical after a re-run")

	// And a third run to make sure the merged form is itself stable.
	secondMD := readArtifact(t, dir, ClaudeMDFileName)
	initQuiet(t, dir, false)
	assert.Equal(t, string(secondMD), string(readArtifact(t, dir, ClaudeMDFileName)))
}

func TestInit_MergePreservesExistingSettings(t *testing.T) {
	dir := t.TempDir()
	claudeDir := filepath.Join(dir, ClaudeDirName)
	require.NoError(t, os.MkdirAll(claudeDir, 0755))

	existing := `{
  "myCustomField": "keep me",
  "hooks": {
    "PostToolUse": [
      {"matcher": "Bash", "hooks": [{"type": "command", "command": "other-tool"}]}
    ]
  }
}`
	require.NoError(t, os.WriteFile(
		artifactPath(dir, SettingsFileName), []byte(existing), 0644))

	initQuiet(t, dir, false)

	doc := parseJSON(t, readArtifact(t, dir, SettingsFileName))
	assert.Equal(t, "keep me", doc["myCustomField"])

	entries := doc["hooks"].(map[string]any)["PostToolUse"].([]any)
	require.Len(t, entries, 2)
	assert.Equal(t, "Bash", entries[0].(map[string]any)["matcher"])
	assert.Equal(t, "Edit", entries[1].(map[string]any)["matcher"])
}

func TestInit_MergePreservesExistingPermissions(t *testing.T) {
	dir := t.TempDir()
	claudeDir := filepath.Join(dir, ClaudeDirName)
	require.NoError(t, os.MkdirAll(claudeDir, 0755))

	existing := `{"permissions": {"allow": ["Bash(git:*)"], "deny": ["WebFetch"]}}`
	require.NoError(t, os.WriteFile(
		artifactPath(dir, LocalSettingsFileName), []byte(existing), 0644))

	initQuiet(t, dir, false)

	doc := parseJSON(t, readArtifact(t, dir, LocalSettingsFileName))
	perms := doc["permissions"].(map[string]any)
	allow := perms["allow"].([]any)
	assert.Equal(t, []any{"Bash(git:*)", PermissionRule}, allow)
	assert.Equal(t, []any{"WebFetch"}, perms["deny"].([]any))
}

func TestInit_MergeUpdatesClaudeMDSection(t *testing.T) {
	dir := t.TempDir()
	claudeDir := filepath.Join(dir, ClaudeDirName)
	require.NoError(t, os.MkdirAll(claudeDir, 0755))

	existing := "# Team Notes\n\ncustom before\n\n" +
		StartMarker + "\n\nold stale section\n\n" + EndMarker + "\n\ncustom after\n"
	require.NoError(t, os.WriteFile(
		artifactPath(dir, ClaudeMDFileName), []byte(existing), 0644))

	initQuiet(t, dir, false)

	md := string(readArtifact(t, dir, ClaudeMDFileName))
	assert.True(t, strings.HasPrefix(md, "# Team Notes\n\ncustom before\n\n"))
	assert.True(t, strings.HasSuffix(md, "\n\ncustom after\n"))
	assert.NotContains(t, md, "old stale section")
	assert.Equal(t, 1, strings.Count(md, StartMarker))
	assert.Equal(t, 1, strings.Count(md, EndMarker))
}

func TestInit_CorruptSettingsRecovered(t *testing.T) {
	dir := t.TempDir()
	claudeDir := filepath.Join(dir, ClaudeDirName)
	require.NoError(t, os.MkdirAll(claudeDir, 0755))

	corrupt := []byte("{ definitely not json !!!")
	require.NoError(t, os.WriteFile(
		artifactPath(dir, SettingsFileName), corrupt, 0644))

	initQuiet(t, dir, false)

	// The backup holds the original bytes.
	backup, err := os.ReadFile(artifactPath(dir, SettingsFileName) + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, corrupt, backup)

	// The artifact itself now parses and matches the template shape.
	doc := parseJSON(t, readArtifact(t, dir, SettingsFileName))
	assert.Contains(t, doc, "hooks")
}

func TestInit_ForceBacksUpAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	initQuiet(t, dir, false)

	custom := []byte(`{"hooks": {}, "customized": true}`)
	require.NoError(t, os.WriteFile(
		artifactPath(dir, SettingsFileName), custom, 0644))

	initQuiet(t, dir, true)

	backup, err := os.ReadFile(artifactPath(dir, SettingsFileName) + BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, custom, backup)

	doc := parseJSON(t, readArtifact(t, dir, SettingsFileName))
	assert.NotContains(t, doc, "customized", "force restores the pristine template")

	// All three artifacts got backups.
	assert.FileExists(t, artifactPath(dir, LocalSettingsFileName)+BackupSuffix)
	assert.FileExists(t, artifactPath(dir, ClaudeMDFileName)+BackupSuffix)
}

func TestInit_ProgressOutput(t *testing.T) {
	dir := t.TempDir()
	var buf strings.Builder

	require.NoError(t, Init(dir, false, WithOutput(&buf)))

	out := buf.String()
	assert.Contains(t, out, "Initializing")
	assert.Contains(t, out, SettingsFileName)
	assert.Contains(t, out, "initialized successfully")
}
