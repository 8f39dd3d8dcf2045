// Package runner executes the ruff pipeline against a file edited by
// Claude Code.
//
// The pipeline is three sequential ruff invocations:
//
//  1. ruff check --fix  - auto-fixes what it can (best effort)
//  2. ruff format       - reformats the file (best effort)
//  3. ruff check        - final validation, decides the verdict
//
// Phases 1 and 2 may fail without aborting the pipeline; only phase 3's
// exit code determines success. Each phase must observe the previous
// phase's changes on disk, so the order is a hard dependency.
//
// Irrelevant or malformed events are silent no-ops: Claude Code sends the
// hook every PostToolUse event, most of which are not Python edits.
package runner
