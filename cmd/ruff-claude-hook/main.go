// Command ruff-claude-hook lints and formats Python files edited by
// Claude Code.
//
// Run with no arguments it behaves as a PostToolUse hook: it reads one
// event from stdin and writes at most one JSON line to stdout. The
// subcommands manage installation:
//
//	ruff-claude-hook init [--force]   initialize .claude/ in the project
//	ruff-claude-hook check            verify the installation
//	ruff-claude-hook watch [dir]      run the pipeline on file changes
//	ruff-claude-hook schema           print the hook wire contract schema
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/randalmurphal/ruffhook/claudeconfig"
	"github.com/randalmurphal/ruffhook/contract"
	"github.com/randalmurphal/ruffhook/ruffconfig"
	"github.com/randalmurphal/ruffhook/runner"
	"github.com/randalmurphal/ruffhook/watcher"
)

// version is overridden at release time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runHook()
	}

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("init", flag.ExitOnError)
		force := fs.Bool("force", false, "force overwrite existing files (creates backups)")
		fs.Parse(args[1:])
		if err := claudeconfig.Init(".", *force); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
			return 1
		}
		return 0

	case "check":
		return runCheck()

	case "watch":
		fs := flag.NewFlagSet("watch", flag.ExitOnError)
		fs.Parse(args[1:])
		dir := "."
		if fs.NArg() > 0 {
			dir = fs.Arg(0)
		}
		return runWatch(dir)

	case "schema":
		data, err := contract.MarshalSchemas()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0

	case "version", "--version", "-v":
		fmt.Printf("%s %s\n", claudeconfig.CommandName, version)
		return 0

	case "help", "--help", "-h":
		usage(os.Stdout)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		usage(os.Stderr)
		return 1
	}
}

// runHook reads one PostToolUse event from stdin and reports the verdict.
// Irrelevant events print nothing and exit 0.
func runHook() int {
	event, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
		return 1
	}

	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return 1
	}

	res := r.Run(context.Background(), event)
	if res.Output != nil {
		if err := res.Output.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			return 1
		}
	}
	return res.ExitCode
}

// runCheck verifies the installation: ruff on PATH, this binary on PATH,
// and whether the project configures ruff.
func runCheck() int {
	fmt.Printf("🔍 Checking %s installation...\n\n", claudeconfig.CommandName)

	ruffPath, err := exec.LookPath("ruff")
	if err != nil {
		fmt.Println("❌ ruff not found")
		fmt.Println("   Install with: uv tool install ruff")
		return 1
	}
	fmt.Printf("✅ ruff found: %s\n", ruffPath)
	if out, err := exec.Command(ruffPath, "--version").Output(); err == nil {
		fmt.Printf("   Version: %s\n", strings.TrimSpace(string(out)))
	}

	hookPath, err := exec.LookPath(claudeconfig.CommandName)
	if err != nil {
		fmt.Printf("⚠️  %s command not found in PATH\n", claudeconfig.CommandName)
		return 1
	}
	fmt.Printf("✅ %s found: %s\n", claudeconfig.CommandName, hookPath)
	fmt.Printf("   Version: %s\n", version)

	cfg, err := ruffconfig.Discover(".")
	if err != nil {
		fmt.Printf("⚠️  %v\n", err)
	} else {
		fmt.Printf("ℹ️  %s\n", cfg.Summary())
	}

	fmt.Println("\n✅ Installation looks good!")
	fmt.Println("\nNext steps:")
	fmt.Println("  1. cd <your-project>")
	fmt.Printf("  2. %s init\n", claudeconfig.CommandName)
	fmt.Println("  3. Open project in Claude Code")
	return 0
}

// runWatch runs the pipeline on every .py change under dir until
// interrupted.
func runWatch(dir string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	r, err := newRunner()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(r, watcher.WithLogger(logger))
	if err := w.Watch(ctx, dir); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		return 1
	}
	return 0
}

// newRunner builds a runner from the optional .ruffhook.yaml in the
// working directory.
func newRunner() (*runner.Runner, error) {
	cfg, err := runner.LoadConfig(".")
	if err != nil {
		return nil, err
	}
	return runner.New(cfg.Options()...), nil
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `%s %s - automatic ruff linting and formatting for Claude Code

Usage:
  %s                 run as a PostToolUse hook (reads event from stdin)
  %s init [--force]  initialize the hook in the current project
  %s check           verify the installation
  %s watch [dir]     lint and format Python files as they change
  %s schema          print the hook wire contract as JSON schema
  %s version         show version
`, claudeconfig.CommandName, version,
		claudeconfig.CommandName, claudeconfig.CommandName, claudeconfig.CommandName,
		claudeconfig.CommandName, claudeconfig.CommandName, claudeconfig.CommandName)
}
