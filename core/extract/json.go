package extract

import (
	"strings"

	"github.com/leofalp/recall/core/parse"
)

// nestingDepth bounds how many times a JSON string holding JSON is decoded
// again.
const nestingDepth = 3

// runDirect parses the whole text as JSON. Every candidate must yield a valid
// record. It steps aside when a string value carries a record array of its
// own, leaving the wrapper to the nested strategy.
func runDirect(text string, schema *Schema) ([]Record, bool) {
	records, ok := parseDirect(text, schema)
	if !ok || carriesPayload(text, schema) {
		return nil, false
	}
	return records, true
}

func parseDirect(text string, schema *Schema) ([]Record, bool) {
	value, err := parse.DecodeNested(strings.TrimSpace(text), nestingDepth)
	if err != nil {
		return nil, false
	}

	items := recordItems(parse.UnwrapSchemaValues(value), schema)
	if len(items) == 0 {
		return nil, false
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		record, ok := buildFromObject(schema, obj, false)
		if !ok {
			return nil, false
		}
		records = append(records, record)
	}
	return records, true
}

// runArrayFilter accepts any JSON array and keeps the objects that carry the
// primary key, filling missing string fields with their defaults.
func runArrayFilter(text string, schema *Schema) ([]Record, bool) {
	value, err := parse.DecodeNested(strings.TrimSpace(text), nestingDepth)
	if err != nil {
		return nil, false
	}

	items, ok := parse.UnwrapSchemaValues(value).([]any)
	if !ok {
		return nil, false
	}

	var records []Record
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := lookup(obj, schema.Primary()); !ok {
			continue
		}
		if record, ok := buildFromObject(schema, obj, true); ok {
			records = append(records, record)
		}
	}
	return records, len(records) > 0
}

// recordItems returns the record candidates of a decoded value: the elements
// of an array, a single object carrying the primary key, or the first array
// of objects found under an envelope object's keys in sorted order.
func recordItems(value any, schema *Schema) []any {
	switch v := value.(type) {
	case []any:
		return v
	case map[string]any:
		if _, ok := lookup(v, schema.Primary()); ok {
			return []any{v}
		}
		for _, key := range sortedKeys(v) {
			if items := arrayOfObjects(v[key]); items != nil {
				return items
			}
		}
	}
	return nil
}

func arrayOfObjects(value any) []any {
	if s, ok := value.(string); ok {
		decoded, err := parse.DecodeNested(strings.TrimSpace(s), nestingDepth)
		if err != nil {
			return nil
		}
		value = parse.UnwrapSchemaValues(decoded)
	}

	items, ok := value.([]any)
	if !ok {
		return nil
	}
	for _, item := range items {
		if _, ok := item.(map[string]any); ok {
			return items
		}
	}
	return nil
}

// buildLenient builds records from candidates, dropping the invalid ones.
func buildLenient(schema *Schema, items []any) []Record {
	var records []Record
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if record, ok := buildFromObject(schema, obj, false); ok {
			records = append(records, record)
		}
	}
	return records
}
