package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseSchema decodes a schema written in YAML (or JSON, which YAML accepts)
// and checks it.
//
// Example:
//
//	name: vocabulary
//	fields:
//	  - name: word
//	  - name: definition
//	    aliases: [meaning]
//	  - name: examples
//	    kind: string-list
//	    optional: true
//	sentinel:
//	  word: Error
//	  definition: Failed to load vocabulary data.
func ParseSchema(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	if err := schema.Check(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// LoadSchema reads and parses a schema file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return schema, nil
}
