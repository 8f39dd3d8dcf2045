// Package contract defines the wire types exchanged with Claude Code's
// hook interface.
//
// Claude Code delivers a PostToolUse event as a JSON object on stdin and
// reads the hook's verdict as a single JSON line on stdout. The event's
// file path has moved between field names across Claude Code releases;
// ToolEvent accepts both the current "parameters" shape and the legacy
// "tool_input" shape.
//
// Example:
//
//	var ev contract.ToolEvent
//	if err := json.Unmarshal(stdin, &ev); err != nil {
//	    return // not a tool event, skip
//	}
//	path := ev.FilePath()
package contract
