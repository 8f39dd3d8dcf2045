package claudeconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrMalformed marks a settings file whose content is not valid JSON.
// Init recovers from it by backing the file up and starting fresh.
var ErrMalformed = errors.New("malformed settings JSON")

// Settings represents a Claude Code settings.json document.
//
// Only the fields this tool merges into are modeled; every other
// top-level field round-trips untouched through Extra so a merge never
// drops operator configuration it does not understand.
type Settings struct {
	Hooks       map[string][]Hook
	Permissions *Permissions
	Extra       map[string]json.RawMessage
}

// Hook is one entry in a hooks event list.
type Hook struct {
	Matcher string      `json:"matcher"`
	Hooks   []HookEntry `json:"hooks"`
}

// HookEntry is a single hook action.
type HookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// Permissions represents the permissions block of settings.local.json.
// Unknown fields round-trip through Extra, as in Settings.
type Permissions struct {
	Allow []string
	Extra map[string]json.RawMessage
}

// UnmarshalJSON splits recognized fields from pass-through ones.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Extra = make(map[string]json.RawMessage)
	for key, value := range raw {
		switch key {
		case "hooks":
			if err := json.Unmarshal(value, &s.Hooks); err != nil {
				return fmt.Errorf("parse hooks: %w", err)
			}
		case "permissions":
			s.Permissions = &Permissions{}
			if err := json.Unmarshal(value, s.Permissions); err != nil {
				return fmt.Errorf("parse permissions: %w", err)
			}
		default:
			s.Extra[key] = value
		}
	}
	return nil
}

// MarshalJSON folds the pass-through fields back in alongside the
// recognized ones.
func (s *Settings) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(s.Extra)+2)
	for key, value := range s.Extra {
		raw[key] = value
	}

	if len(s.Hooks) > 0 {
		data, err := json.Marshal(s.Hooks)
		if err != nil {
			return nil, fmt.Errorf("marshal hooks: %w", err)
		}
		raw["hooks"] = data
	}
	if s.Permissions != nil {
		data, err := json.Marshal(s.Permissions)
		if err != nil {
			return nil, fmt.Errorf("marshal permissions: %w", err)
		}
		raw["permissions"] = data
	}

	return json.Marshal(raw)
}

func (p *Permissions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Extra = make(map[string]json.RawMessage)
	for key, value := range raw {
		if key == "allow" {
			if err := json.Unmarshal(value, &p.Allow); err != nil {
				return fmt.Errorf("parse allow list: %w", err)
			}
			continue
		}
		p.Extra[key] = value
	}
	return nil
}

func (p *Permissions) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(p.Extra)+1)
	for key, value := range p.Extra {
		raw[key] = value
	}

	if p.Allow != nil {
		data, err := json.Marshal(p.Allow)
		if err != nil {
			return nil, fmt.Errorf("marshal allow list: %w", err)
		}
		raw["allow"] = data
	}

	return json.Marshal(raw)
}

// LoadSettingsFile loads a settings document from path. A parse failure
// is reported as ErrMalformed so callers can distinguish corruption from
// I/O faults.
func LoadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &settings, nil
}

// SaveSettingsFile writes the settings document to path, indented.
func SaveSettingsFile(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
