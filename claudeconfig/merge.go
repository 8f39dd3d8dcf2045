package claudeconfig

import (
	"encoding/json"
	"strings"
)

const (
	// CommandName is the binary name registered in hook entries. It doubles
	// as the dedup identity: an entry mentioning it is considered ours.
	CommandName = "ruff-claude-hook"

	// PermissionRule is the allow-list entry granting Claude Code
	// permission to run the hook.
	PermissionRule = "Bash(ruff-claude-hook:*)"

	// eventPostToolUse is the hooks key the entry is registered under.
	eventPostToolUse = "PostToolUse"
)

// RuffHook returns the hook entry to register for the given tool matcher.
func RuffHook(matcher string) Hook {
	return Hook{
		Matcher: matcher,
		Hooks: []HookEntry{
			{Type: "command", Command: CommandName},
		},
	}
}

// MergeHook appends hook to the PostToolUse list unless an entry for the
// same matcher already mentions CommandName. Reports whether the entry
// was added.
//
// Identity is substring-of-serialized-form rather than structural
// equality, kept for compatibility with previously initialized projects.
// Entries for other matchers are never deduplicated against, so a project
// can register the hook for both "Edit" and "Write".
func MergeHook(s *Settings, hook Hook) bool {
	if s.Hooks == nil {
		s.Hooks = make(map[string][]Hook)
	}

	for _, existing := range s.Hooks[eventPostToolUse] {
		if existing.Matcher != hook.Matcher {
			continue
		}
		data, err := json.Marshal(existing)
		if err == nil && strings.Contains(string(data), CommandName) {
			return false
		}
	}

	s.Hooks[eventPostToolUse] = append(s.Hooks[eventPostToolUse], hook)
	return true
}

// MergePermission appends rule to permissions.allow unless an identical
// rule is already present. Reports whether the rule was added.
// Unlike hook dedup, identity here is exact string equality.
func MergePermission(s *Settings, rule string) bool {
	if s.Permissions == nil {
		s.Permissions = &Permissions{}
	}

	for _, existing := range s.Permissions.Allow {
		if existing == rule {
			return false
		}
	}

	s.Permissions.Allow = append(s.Permissions.Allow, rule)
	return true
}
