// Package serialize moves plain-data nodes and documentation records in and
// out of JSON and YAML. The engine itself performs no I/O; callers hand these
// helpers a writer or reader.
package serialize

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeJSON writes v as indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("serialize: encode json: %w", err)
	}
	return nil
}

// DecodeJSON reads one JSON document into a plain-data node.
func DecodeJSON(r io.Reader) (map[string]any, error) {
	var out map[string]any
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("serialize: decode json: %w", err)
	}
	return out, nil
}

// EncodeYAML writes v as a YAML document.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("serialize: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("serialize: flush yaml: %w", err)
	}
	return nil
}

// DecodeYAML reads one YAML document into a plain-data node.
func DecodeYAML(r io.Reader) (map[string]any, error) {
	var out map[string]any
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("serialize: decode yaml: %w", err)
	}
	return out, nil
}
