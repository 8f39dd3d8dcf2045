// Package ruffconfig locates a project's ruff configuration.
//
// ruff resolves its configuration from ruff.toml, .ruff.toml, or the
// [tool.ruff] table of pyproject.toml, searching upward from the file
// being checked. Discover mirrors that search so the doctor command can
// report whether, and from where, a project configures ruff.
package ruffconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the subset of ruff settings this tool reports on.
type Config struct {
	// Source is the file the configuration was read from.
	Source string `toml:"-"`

	LineLength int      `toml:"line-length"`
	Select     []string `toml:"select"`
	Ignore     []string `toml:"ignore"`

	// Lint mirrors the [lint] sub-table used by newer ruff versions.
	Lint *LintConfig `toml:"lint"`
}

// LintConfig is the [lint] (or [tool.ruff.lint]) sub-table.
type LintConfig struct {
	Select []string `toml:"select"`
	Ignore []string `toml:"ignore"`
}

// pyproject models just enough of pyproject.toml to find [tool.ruff].
type pyproject struct {
	Tool struct {
		Ruff *Config `toml:"ruff"`
	} `toml:"tool"`
}

// Candidate file names, in ruff's own precedence order.
var candidates = []string{"ruff.toml", ".ruff.toml", "pyproject.toml"}

// Discover searches dir and its ancestors for ruff configuration.
// Returns (nil, nil) when no directory on the path carries any.
func Discover(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	for {
		cfg, err := discoverIn(abs)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return cfg, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return nil, nil
		}
		abs = parent
	}
}

// discoverIn checks a single directory for the candidate files.
func discoverIn(dir string) (*Config, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if name == "pyproject.toml" {
			cfg, err := loadPyproject(path)
			if err != nil {
				return nil, err
			}
			if cfg == nil {
				// pyproject.toml without [tool.ruff] does not stop the
				// upward search.
				continue
			}
			return cfg, nil
		}

		return loadRuffToml(path)
	}
	return nil, nil
}

func loadRuffToml(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Source = path
	return &cfg, nil
}

func loadPyproject(path string) (*Config, error) {
	var doc pyproject
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Tool.Ruff == nil {
		return nil, nil
	}
	doc.Tool.Ruff.Source = path
	return doc.Tool.Ruff, nil
}

// Summary renders a one-line description of where ruff is configured.
func (c *Config) Summary() string {
	if c == nil {
		return "no ruff configuration found (ruff defaults apply)"
	}
	return fmt.Sprintf("ruff configured via %s", c.Source)
}
