package extract

import (
	"regexp"
	"strings"
)

// runEscapedPattern matches object-like fragments such as
//
//	{ \"topic\": \"Cells\", \"explanation\": \"Basic unit\" }
//
// where quotes may be backslash-escaped and spacing is irregular. Fields must
// appear in schema order; optional fields may be left out.
func runEscapedPattern(text string, schema *Schema) ([]Record, bool) {
	pattern := escapedObjectPattern(schema)

	var records []Record
	for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
		raw := make(map[int]string, len(schema.Fields))
		for i := range schema.Fields {
			start, end := m[2*(i+1)], m[2*(i+1)+1]
			if start < 0 {
				continue
			}
			raw[i] = text[start:end]
		}
		if record, ok := buildFromText(schema, raw); ok {
			records = append(records, record)
		}
	}
	return records, len(records) > 0
}

// escapedObjectPattern builds the fragment pattern of schema. Each field
// contributes exactly one capturing group, in schema order.
func escapedObjectPattern(schema *Schema) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?i)\{\s*`)
	for i, f := range schema.Fields {
		member := `\\?"?(?:` + keyAlternation(f.keys()) + `)\\?"?\s*:\s*` + valuePattern(f.kind())
		switch {
		case i == 0:
			b.WriteString(member)
		case f.Optional:
			b.WriteString(`(?:\s*,?\s*` + member + `)?`)
		default:
			b.WriteString(`\s*,?\s*` + member)
		}
	}
	b.WriteString(`\s*,?\s*\}`)
	return regexp.MustCompile(b.String())
}

func valuePattern(kind Kind) string {
	switch kind {
	case KindStringList:
		return `\[([^\]]*)\]`
	case KindInteger:
		return `\\?"?(-?\d+)\\?"?`
	default:
		return `\\?"([^"\\]*)\\?"`
	}
}
