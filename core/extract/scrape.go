package extract

import (
	"regexp"
	"strings"
)

// runLooseScrape collects every "field:" occurrence (case-insensitive,
// optionally quoted) regardless of structure. A value runs from its key to
// the next key occurrence or the end of the text. Values are grouped per
// field and paired positionally: the i-th record takes the i-th value of each
// field, up to the shortest list among required fields.
func runLooseScrape(text string, schema *Schema) ([]Record, bool) {
	var keys []string
	for _, f := range schema.Fields {
		keys = append(keys, f.keys()...)
	}
	pattern := regexp.MustCompile(`(?i)\\?["']?\b(` + keyAlternation(keys) + `)\b\\?["']?\s*:`)

	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, false
	}

	values := make([][]string, len(schema.Fields))
	for i, m := range matches {
		idx, ok := schema.fieldForKey(text[m[2]:m[3]])
		if !ok {
			continue
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		values[idx] = append(values[idx], text[m[1]:end])
	}

	count := -1
	for i, f := range schema.Fields {
		if f.Optional {
			continue
		}
		if count < 0 || len(values[i]) < count {
			count = len(values[i])
		}
	}
	if count <= 0 {
		return nil, false
	}

	var records []Record
	for n := 0; n < count; n++ {
		raw := make(map[int]string, len(schema.Fields))
		for i := range schema.Fields {
			if n < len(values[i]) {
				raw[i] = strings.TrimSpace(values[i][n])
			}
		}
		if record, ok := buildFromText(schema, raw); ok {
			records = append(records, record)
		}
	}
	return records, len(records) > 0
}
