package contract

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// EventSchema returns the JSON schema of the ToolEvent wire shape.
func EventSchema() *jsonschema.Schema {
	return reflectSchema(&ToolEvent{})
}

// OutputSchema returns the JSON schema of the Output wire shape.
func OutputSchema() *jsonschema.Schema {
	return reflectSchema(&Output{})
}

// MarshalSchemas renders both wire schemas as an indented JSON document,
// keyed by direction. Used by the "schema" CLI command.
func MarshalSchemas() ([]byte, error) {
	doc := map[string]*jsonschema.Schema{
		"event":  EventSchema(),
		"output": OutputSchema(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal contract schemas: %w", err)
	}
	return data, nil
}

func reflectSchema(v any) *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	return r.Reflect(v)
}
