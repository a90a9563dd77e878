package commands

import (
	"encoding/json"
	"fmt"

	yaml "gopkg.in/yaml.v2"
)

// emit prints v in the configured output format. The table callback
// renders the human-readable form lazily, so structured formats never
// pay for it.
func emit(v interface{}, table func() string) error {
	switch cfg.Output {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		// Round-trip through JSON so custom JSON marshalers (record
		// metadata) shape the YAML too.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		var plain interface{}
		if err := json.Unmarshal(data, &plain); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		out, err := yaml.Marshal(plain)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		fmt.Print(string(out))
	default:
		fmt.Print(table())
	}
	return nil
}
