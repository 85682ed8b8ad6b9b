package cmd

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// render writes v as indented JSON or YAML. YAML goes through the JSON form
// first so both formats share the snake_case keys of the json tags.
func render(w io.Writer, format string, v any) error {
	if format == "yaml" {
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
