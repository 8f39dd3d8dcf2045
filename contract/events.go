package contract

import (
	"encoding/json"
	"io"
)

// ToolName values this hook reacts to.
const (
	ToolEdit = "Edit"
)

// HookEventPostToolUse is the hook event name reported back to Claude Code.
const HookEventPostToolUse = "PostToolUse"

// FileParams carries the file path argument of a file-editing tool call.
type FileParams struct {
	FilePath string `json:"file_path,omitempty"`
}

// ToolEvent is the PostToolUse event delivered on stdin.
//
// Current Claude Code releases put the tool arguments under "parameters";
// older releases used "tool_input". Both are decoded, with "parameters"
// taking precedence.
type ToolEvent struct {
	ToolName   string      `json:"tool_name"`
	Parameters *FileParams `json:"parameters,omitempty"`
	ToolInput  *FileParams `json:"tool_input,omitempty"`
}

// FilePath returns the edited file's path from whichever field carries it.
// Returns empty string when neither shape is populated.
func (e *ToolEvent) FilePath() string {
	if e.Parameters != nil && e.Parameters.FilePath != "" {
		return e.Parameters.FilePath
	}
	if e.ToolInput != nil {
		return e.ToolInput.FilePath
	}
	return ""
}

// HookSpecificOutput is the PostToolUse-specific half of the hook output.
type HookSpecificOutput struct {
	HookEventName     string `json:"hookEventName"`
	AdditionalContext string `json:"additionalContext"`
}

// Output is the hook verdict written as one JSON line on stdout.
//
// Continue is always true: lint failures are reported to the agent, not
// used to halt it. Success vs failure is carried by the process exit
// status instead.
type Output struct {
	Continue           bool               `json:"continue"`
	SystemMessage      string             `json:"systemMessage"`
	HookSpecificOutput HookSpecificOutput `json:"hookSpecificOutput"`
}

// NewOutput builds an Output carrying the given message in both the
// systemMessage and additionalContext fields.
func NewOutput(message string) *Output {
	return &Output{
		Continue:      true,
		SystemMessage: message,
		HookSpecificOutput: HookSpecificOutput{
			HookEventName:     HookEventPostToolUse,
			AdditionalContext: message,
		},
	}
}

// Encode writes the output as a single newline-terminated JSON line.
func (o *Output) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(o)
}
