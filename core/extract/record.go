package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one extracted record. Values are held in schema order and are
// never modified after extraction: string fields hold a string, string-list
// fields a []string and integer fields an int.
type Record struct {
	names    []string
	values   map[string]any
	sentinel bool
}

func newRecord(schema *Schema, values map[string]any) Record {
	names := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		names[i] = f.Name
	}
	return Record{names: names, values: values}
}

// Fields returns the canonical field names in schema order.
func (r Record) Fields() []string {
	return append([]string(nil), r.names...)
}

// Has reports whether the record carries a value for name.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// String returns the value of a string field, or "" when absent.
func (r Record) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

// List returns a copy of a string-list field, or nil when absent.
func (r Record) List(name string) []string {
	list, ok := r.values[name].([]string)
	if !ok {
		return nil
	}
	return append([]string{}, list...)
}

// Int returns the value of an integer field, or 0 when absent.
func (r Record) Int(name string) int {
	n, _ := r.values[name].(int)
	return n
}

// IsSentinel reports whether the record is the failure placeholder rather
// than data drawn from the input.
func (r Record) IsSentinel() bool {
	return r.sentinel
}

// MarshalJSON encodes the record as an object whose keys follow schema order.
// Absent optional fields are omitted.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, name := range r.names {
		value, ok := r.values[name]
		if !ok {
			continue
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %q: %w", name, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sentinelRecord builds the failure record of schema. Without a configured
// Sentinel the primary string field carries a generic failure message.
func sentinelRecord(schema *Schema) Record {
	values := make(map[string]any)
	for _, f := range schema.Fields {
		raw, ok := schema.Sentinel[f.Name]
		if !ok {
			continue
		}
		if v, ok := sentinelValue(f, raw); ok {
			values[f.Name] = v
		}
	}

	if len(schema.Sentinel) == 0 && len(schema.Fields) > 0 && schema.Primary().kind() == KindString {
		values[schema.Primary().Name] = fmt.Sprintf("Failed to load %s data. Please try again.", schema.Name)
	}

	record := newRecord(schema, values)
	record.sentinel = true
	return record
}

func sentinelValue(f Field, raw any) (any, bool) {
	switch f.kind() {
	case KindStringList:
		switch v := raw.(type) {
		case []string:
			return append([]string{}, v...), true
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				out = append(out, fmt.Sprint(item))
			}
			return out, true
		case nil:
			return []string{}, true
		}
	case KindInteger:
		switch v := raw.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			return int(v), true
		}
	default:
		if s, ok := raw.(string); ok {
			return s, true
		}
	}
	return nil, false
}
