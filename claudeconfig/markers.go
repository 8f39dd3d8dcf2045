package claudeconfig

import "strings"

// Marker strings delimiting the managed section inside CLAUDE.md.
// These are literal and stable: changing them would orphan the sections
// written into already-initialized projects.
const (
	StartMarker = "<!-- ruff-claude-hook-start -->"
	EndMarker   = "<!-- ruff-claude-hook-end -->"
)

// SectionContent extracts the managed content between the markers of a
// template, trimmed. A template without both markers is returned whole.
func SectionContent(template string) string {
	start := strings.Index(template, StartMarker)
	end := strings.Index(template, EndMarker)
	if start < 0 || end < 0 || end < start {
		return strings.TrimSpace(template)
	}
	inner := template[start+len(StartMarker) : end]
	return strings.TrimSpace(inner)
}

// MergeSection installs the template's managed content into an existing
// document. Reports whether an existing section was replaced (as opposed
// to a new one appended).
//
// The document is sliced on marker indexes rather than pattern-replaced:
// everything before the start marker and from the end marker onward is
// carried over byte-for-byte, which is what makes repeated merges
// idempotent. A document missing either marker gets a separator and a
// complete marker pair appended after its existing content.
func MergeSection(existing, template string) (string, bool) {
	content := SectionContent(template)

	start := strings.Index(existing, StartMarker)
	end := strings.Index(existing, EndMarker)

	if start >= 0 && end >= 0 && end >= start {
		before := existing[:start+len(StartMarker)]
		after := existing[end:]
		return before + "\n\n" + content + "\n\n" + after, true
	}

	return existing + "\n\n---\n\n" +
		StartMarker + "\n\n" + content + "\n\n" + EndMarker + "\n", false
}
