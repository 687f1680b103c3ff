package extract

import (
	"sort"
	"strings"
)

// buildFromObject builds a record from a decoded JSON object. With defaults
// set, string fields that are missing or clean to "" take the field Default.
func buildFromObject(schema *Schema, obj map[string]any, defaults bool) (Record, bool) {
	values := make(map[string]any, len(schema.Fields))
	for _, f := range schema.Fields {
		raw, ok := lookup(obj, f)
		if ok {
			if v, ok := coerceJSON(f, raw); ok {
				values[f.Name] = v
			}
		}
		if defaults && f.kind() == KindString && f.Default != "" {
			if s, _ := values[f.Name].(string); s == "" {
				values[f.Name] = f.Default
			}
		}
	}
	return finish(schema, values)
}

// buildFromText builds a record from raw text values keyed by field index.
func buildFromText(schema *Schema, raw map[int]string) (Record, bool) {
	values := make(map[string]any, len(schema.Fields))
	for i, f := range schema.Fields {
		text, ok := raw[i]
		if !ok {
			continue
		}
		if v, ok := coerceText(f, text); ok {
			values[f.Name] = v
		}
	}
	return finish(schema, values)
}

// finish drops empty optional values and applies the field rules and the
// schema's Validate hook.
func finish(schema *Schema, values map[string]any) (Record, bool) {
	for _, f := range schema.Fields {
		v, ok := values[f.Name]
		if !ok {
			if !f.Optional {
				return Record{}, false
			}
			continue
		}

		empty := false
		switch t := v.(type) {
		case string:
			empty = t == ""
		case []string:
			empty = len(t) == 0
			if !empty && len(t) < f.MinItems {
				return Record{}, false
			}
		}
		if empty {
			if !f.Optional {
				return Record{}, false
			}
			delete(values, f.Name)
		}
	}

	for _, f := range schema.Fields {
		if f.IndexOf == "" {
			continue
		}
		n, ok := values[f.Name].(int)
		if !ok {
			continue
		}
		list, _ := values[f.IndexOf].([]string)
		if n < 0 || n >= len(list) {
			return Record{}, false
		}
	}

	record := newRecord(schema, values)
	if schema.Validate != nil && schema.Validate(record) != nil {
		return Record{}, false
	}
	return record, true
}

// lookup finds the value of f in obj: canonical name first, then aliases,
// then a case-insensitive match over the object's keys in sorted order.
func lookup(obj map[string]any, f Field) (any, bool) {
	keys := f.keys()
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v, true
		}
	}
	for _, objKey := range sortedKeys(obj) {
		for _, k := range keys {
			if strings.EqualFold(objKey, k) {
				return obj[objKey], true
			}
		}
	}
	return nil, false
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
