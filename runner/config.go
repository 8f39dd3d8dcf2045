package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-project runner configuration file,
// looked up in the hook's working directory.
const ConfigFileName = ".ruffhook.yaml"

// Config holds optional overrides for the runner.
// Zero values use the defaults noted on each field.
type Config struct {
	// RuffPath is the ruff binary to invoke.
	// Default: "ruff" (resolved through PATH).
	RuffPath string `yaml:"ruff_path"`

	// Timeout bounds the whole pipeline.
	// 0 uses DefaultTimeout; negative disables the bound.
	Timeout time.Duration `yaml:"timeout"`
}

// LoadConfig reads ConfigFileName from dir. A missing file yields the
// default config; a malformed file is an error, since a half-applied
// override is worse than a loud failure.
//
// Environment variables override file values:
//
//	RUFFHOOK_RUFF     - ruff binary path
//	RUFFHOOK_TIMEOUT  - pipeline timeout (Go duration syntax)
func LoadConfig(dir string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", ConfigFileName, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}

	if v := os.Getenv("RUFFHOOK_RUFF"); v != "" {
		cfg.RuffPath = v
	}
	if v := os.Getenv("RUFFHOOK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse RUFFHOOK_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}

	return cfg, nil
}

// Options translates the config into runner options.
func (c *Config) Options() []Option {
	var opts []Option
	if c.RuffPath != "" {
		opts = append(opts, WithRuffPath(c.RuffPath))
	}
	switch {
	case c.Timeout > 0:
		opts = append(opts, WithTimeout(c.Timeout))
	case c.Timeout < 0:
		opts = append(opts, WithTimeout(0))
	}
	return opts
}
