// Package watcher re-runs the ruff pipeline whenever a Python file under
// a watched directory changes.
//
// This is the interactive counterpart to the hook: instead of waiting for
// Claude Code to report an edit, `ruff-claude-hook watch` observes the
// filesystem directly. Events are handled one at a time on a single loop;
// pipelines never run concurrently.
package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/ruffhook/contract"
	"github.com/randalmurphal/ruffhook/runner"
)

// DefaultDebounce suppresses duplicate events for the same path.
// Editors typically emit several writes per save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher drives the runner from filesystem events.
type Watcher struct {
	runner   *runner.Runner
	logger   *slog.Logger
	debounce time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the verdict/diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDebounce sets the per-path event suppression window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a Watcher around the given runner.
func New(r *runner.Runner, opts ...Option) *Watcher {
	w := &Watcher{
		runner:   r,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch observes root and its subdirectories until ctx is cancelled.
// Each write or create of a .py file runs the pipeline once.
func (w *Watcher) Watch(ctx context.Context, root string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, root); err != nil {
		return err
	}
	w.logger.Info("watching for Python file changes", "root", root)

	lastRun := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			// New directories need their own watch.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !skipDir(filepath.Base(event.Name)) {
						if err := w.addTree(fsw, event.Name); err != nil {
							w.logger.Warn("watch new directory", "path", event.Name, "error", err)
						}
					}
					continue
				}
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".py") {
				continue
			}
			if last, ok := lastRun[event.Name]; ok && time.Since(last) < w.debounce {
				continue
			}
			lastRun[event.Name] = time.Now()

			w.checkFile(ctx, event.Name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			// Usually recoverable; keep watching.
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// checkFile runs the pipeline for one file by synthesizing the same
// event shape Claude Code would deliver.
func (w *Watcher) checkFile(ctx context.Context, path string) {
	event, err := json.Marshal(contract.ToolEvent{
		ToolName:   contract.ToolEdit,
		Parameters: &contract.FileParams{FilePath: path},
	})
	if err != nil {
		w.logger.Error("marshal synthetic event", "error", err)
		return
	}

	res := w.runner.Run(ctx, event)
	if res.Output == nil {
		return
	}
	if res.ExitCode == 0 {
		w.logger.Info(res.Output.SystemMessage)
	} else {
		w.logger.Warn(res.Output.SystemMessage)
	}
}

// addTree registers root and every non-skipped subdirectory.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && skipDir(name) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// skipDir filters directories that never hold project sources.
func skipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "__pycache__", "node_modules", "venv", ".venv", "build", "dist":
		return true
	}
	return false
}
