// Package claudeconfig creates and merges the .claude/ configuration
// artifacts that register ruff-claude-hook in a project.
//
// Three artifacts are managed:
//
//   - settings.json        - hook registration under hooks.PostToolUse
//   - settings.local.json  - permission rule under permissions.allow
//   - CLAUDE.md            - instructions inside a marker-delimited section
//
// Each follows the same policy: absent files are created from the bundled
// template, present files are merged without touching operator-owned
// content, and force mode backs up and overwrites. Re-running Init against
// an already-initialized project changes nothing.
package claudeconfig
