package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/randalmurphal/ruffhook/contract"
)

// DefaultTimeout bounds the whole pipeline. A hung ruff otherwise hangs
// the hook, and with it the Claude Code session waiting on it.
const DefaultTimeout = 2 * time.Minute

// pySuffix is the source-file suffix the hook reacts to.
const pySuffix = ".py"

// Result is the outcome of one hook invocation.
//
// Output is nil on the no-op paths: nothing is printed and the process
// exits 0. On every other path Output carries the message for Claude Code
// and ExitCode distinguishes clean (0) from lint failure or fault (1).
type Result struct {
	Output   *contract.Output
	ExitCode int
}

// Runner runs the ruff pipeline for PostToolUse events.
type Runner struct {
	ruffPath string
	timeout  time.Duration
	executor Executor
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithRuffPath sets the ruff binary to invoke. Default "ruff",
// resolved through PATH.
func WithRuffPath(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.ruffPath = path
		}
	}
}

// WithTimeout bounds the whole pipeline. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) { r.timeout = d }
}

// WithExecutor substitutes the command executor. Used by tests.
func WithExecutor(e Executor) Option {
	return func(r *Runner) {
		if e != nil {
			r.executor = e
		}
	}
}

// WithLogger sets the diagnostic logger. The hook's stdout must stay a
// single JSON line, so all logging goes through slog (stderr).
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Runner with the production executor and default timeout.
func New(opts ...Option) *Runner {
	r := &Runner{
		ruffPath: "ruff",
		timeout:  DefaultTimeout,
		executor: NewExecExecutor(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run decodes one PostToolUse event and, when it describes an edit to an
// existing Python file, executes the three-phase ruff pipeline against it.
//
// All early exits (bad JSON, wrong tool, missing or non-Python path) are
// silent no-ops by contract: the returned Result has a nil Output and
// exit code 0.
func (r *Runner) Run(ctx context.Context, event []byte) *Result {
	noop := &Result{}

	var ev contract.ToolEvent
	if err := json.Unmarshal(event, &ev); err != nil {
		r.logger.Debug("skipping non-JSON event", "error", err)
		return noop
	}

	if ev.ToolName != contract.ToolEdit {
		return noop
	}

	path := ev.FilePath()
	if path == "" || !strings.HasSuffix(path, pySuffix) {
		return noop
	}
	if _, err := os.Stat(path); err != nil {
		r.logger.Debug("skipping missing file", "path", path, "error", err)
		return noop
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	filename := filepath.Base(path)

	// Phases 1 and 2 are best effort: their exit codes are ignored, but an
	// invocation fault (ruff missing, context expired) aborts immediately.
	if _, err := r.executor.Run(ctx, r.ruffPath, "check", "--fix", path); err != nil {
		return r.faultResult(ctx, err)
	}
	if _, err := r.executor.Run(ctx, r.ruffPath, "format", path); err != nil {
		return r.faultResult(ctx, err)
	}

	check, err := r.executor.Run(ctx, r.ruffPath, "check", path)
	if err != nil {
		return r.faultResult(ctx, err)
	}

	if check.ExitCode == 0 {
		msg := fmt.Sprintf("✅ Ruff checks passed: %s", filename)
		return &Result{Output: contract.NewOutput(msg)}
	}

	details := strings.TrimSpace(check.Stdout)
	msg := fmt.Sprintf(
		"❌ Ruff errors in %s:\n\n%s\n\n⚠️  Claude: You MUST fix these errors before continuing",
		filename, details,
	)
	return &Result{Output: contract.NewOutput(msg), ExitCode: 1}
}

// faultResult reports an invocation fault (as opposed to a lint failure).
func (r *Runner) faultResult(ctx context.Context, err error) *Result {
	var msg string
	if ctx.Err() != nil {
		msg = fmt.Sprintf("Error running ruff: timed out after %s", r.timeout)
	} else {
		msg = fmt.Sprintf("Error running ruff: %v", err)
	}
	r.logger.Warn("ruff invocation failed", "error", err)
	return &Result{Output: contract.NewOutput(msg), ExitCode: 1}
}
