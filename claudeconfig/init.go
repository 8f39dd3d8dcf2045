package claudeconfig

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

//go:embed templates/*.template
var templateFS embed.FS

// Managed artifact names under the .claude directory.
const (
	ClaudeDirName         = ".claude"
	SettingsFileName      = "settings.json"
	LocalSettingsFileName = "settings.local.json"
	ClaudeMDFileName      = "CLAUDE.md"
)

// BackupSuffix is appended to an artifact's path when it is backed up
// before a destructive write.
const BackupSuffix = ".backup"

// InitOption configures Init.
type InitOption func(*initializer)

// WithOutput redirects operator-facing progress output. Default os.Stdout.
func WithOutput(w io.Writer) InitOption {
	return func(in *initializer) {
		if w != nil {
			in.out = w
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) InitOption {
	return func(in *initializer) {
		if l != nil {
			in.logger = l
		}
	}
}

type initializer struct {
	out    io.Writer
	logger *slog.Logger
}

// Init creates or merges the three .claude/ artifacts under targetDir.
//
// Present artifacts are merged in place; with force they are backed up
// and overwritten with the bundled templates instead. A present JSON
// artifact that no longer parses is backed up and replaced even without
// force, so a corrupted file never blocks initialization.
//
// Writes happen artifact by artifact, not transactionally: a failure
// partway leaves earlier artifacts initialized. Re-running Init is the
// recovery path.
func Init(targetDir string, force bool, opts ...InitOption) error {
	in := &initializer{out: os.Stdout, logger: slog.Default()}
	for _, opt := range opts {
		opt(in)
	}

	fmt.Fprintf(in.out, "🚀 Initializing %s...\n\n", CommandName)

	claudeDir := filepath.Join(targetDir, ClaudeDirName)
	if err := os.MkdirAll(claudeDir, 0755); err != nil {
		return fmt.Errorf("create %s directory: %w", ClaudeDirName, err)
	}
	fmt.Fprintf(in.out, "✅ Directory: %s\n", claudeDir)

	if err := in.initSettings(claudeDir, force); err != nil {
		return err
	}
	if err := in.initLocalSettings(claudeDir, force); err != nil {
		return err
	}
	if err := in.initClaudeMD(claudeDir, force); err != nil {
		return err
	}

	fmt.Fprintf(in.out, "\n✅ Ruff hook initialized successfully!\n")
	fmt.Fprintf(in.out, "\nNext steps:\n")
	fmt.Fprintf(in.out, "  1. Review %s to ensure the hook is configured\n",
		filepath.Join(claudeDir, SettingsFileName))
	fmt.Fprintf(in.out, "  2. Open this project in Claude Code\n")
	fmt.Fprintf(in.out, "  3. Edit a Python file - the hook will run automatically\n")
	fmt.Fprintf(in.out, "\nTo update: %s init --force\n", CommandName)

	return nil
}

// initSettings manages settings.json: hook registration.
func (in *initializer) initSettings(claudeDir string, force bool) error {
	path := filepath.Join(claudeDir, SettingsFileName)
	tmpl, err := readTemplate(SettingsFileName)
	if err != nil {
		return err
	}

	if !fileExists(path) || force {
		return in.writeFresh(path, tmpl, force)
	}

	fmt.Fprintf(in.out, "📝 Merging with existing: %s\n", path)
	settings, err := LoadSettingsFile(path)
	if err != nil {
		return in.recoverCorrupt(path, tmpl, err)
	}

	MergeHook(settings, RuffHook("Edit"))
	if err := SaveSettingsFile(path, settings); err != nil {
		return err
	}
	fmt.Fprintf(in.out, "   ✅ Ruff hook added to existing settings\n")
	return nil
}

// initLocalSettings manages settings.local.json: the permission rule.
func (in *initializer) initLocalSettings(claudeDir string, force bool) error {
	path := filepath.Join(claudeDir, LocalSettingsFileName)
	tmpl, err := readTemplate(LocalSettingsFileName)
	if err != nil {
		return err
	}

	if !fileExists(path) || force {
		return in.writeFresh(path, tmpl, force)
	}

	fmt.Fprintf(in.out, "📝 Merging with existing: %s\n", path)
	settings, err := LoadSettingsFile(path)
	if err != nil {
		return in.recoverCorrupt(path, tmpl, err)
	}

	MergePermission(settings, PermissionRule)
	if err := SaveSettingsFile(path, settings); err != nil {
		return err
	}
	fmt.Fprintf(in.out, "   ✅ Ruff permission added to existing settings\n")
	return nil
}

// initClaudeMD manages CLAUDE.md: the marker-delimited section.
func (in *initializer) initClaudeMD(claudeDir string, force bool) error {
	path := filepath.Join(claudeDir, ClaudeMDFileName)
	tmpl, err := readTemplate(ClaudeMDFileName)
	if err != nil {
		return err
	}

	if !fileExists(path) || force {
		return in.writeFresh(path, tmpl, force)
	}

	fmt.Fprintf(in.out, "📝 Updating existing: %s\n", path)
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	merged, replaced := MergeSection(string(existing), string(tmpl))
	if err := os.WriteFile(path, []byte(merged), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if replaced {
		fmt.Fprintf(in.out, "   ✅ Ruff section updated\n")
	} else {
		fmt.Fprintf(in.out, "   ✅ Ruff section added\n")
	}
	return nil
}

// writeFresh writes the template verbatim, backing up any existing file
// first. The backup must land on disk before the overwrite proceeds.
func (in *initializer) writeFresh(path string, tmpl []byte, force bool) error {
	if force && fileExists(path) {
		backup, err := backupFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(in.out, "   💾 Backed up to: %s\n", backup)
	}

	if err := os.WriteFile(path, tmpl, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(in.out, "✅ Created: %s\n", path)
	return nil
}

// recoverCorrupt handles a present JSON artifact that failed to load
// under the merge path. Corruption degrades to backup-and-overwrite;
// anything else (an I/O fault) is surfaced to the caller.
func (in *initializer) recoverCorrupt(path string, tmpl []byte, loadErr error) error {
	if !errors.Is(loadErr, ErrMalformed) {
		return loadErr
	}

	fmt.Fprintf(in.out, "   ⚠️  Error reading %s: %v\n", filepath.Base(path), loadErr)
	fmt.Fprintf(in.out, "   Creating backup and using template...\n")
	in.logger.Warn("recovering corrupt settings file", "path", path, "error", loadErr)

	backup, err := backupFile(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, tmpl, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(in.out, "   💾 Backed up to: %s\n", backup)
	return nil
}

// backupFile copies path's current content to a sibling .backup path.
// The copy is complete before this returns, so callers may overwrite the
// original only after a nil error.
func backupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s for backup: %w", path, err)
	}

	backup := path + BackupSuffix
	if err := os.WriteFile(backup, data, 0644); err != nil {
		return "", fmt.Errorf("write backup %s: %w", backup, err)
	}
	return backup, nil
}

func readTemplate(name string) ([]byte, error) {
	data, err := templateFS.ReadFile("templates/" + name + ".template")
	if err != nil {
		return nil, fmt.Errorf("read bundled template %s: %w", name, err)
	}
	return data, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
