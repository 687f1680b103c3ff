package extract

import (
	"regexp"
	"strings"

	"github.com/leofalp/recall/core/parse"
)

// structuredStages recover a record array from a string value. A value that
// yields records through one of them is a payload, not prose.
var structuredStages = []func(string, *Schema) ([]Record, bool){
	parseDirect,
	runEmbedded,
	runRepaired,
}

// nestedStages is the sub-cascade run on each string value that carries a
// payload of its own.
var nestedStages = []func(string, *Schema) ([]Record, bool){
	parseDirect,
	runEmbedded,
	runRepaired,
	runEscapedPattern,
}

// runNested handles valid JSON whose string values hold the real payload, for
// example a wrapper card whose explanation is the generated array. Every
// string value that mentions all required keys, quoted and followed by a
// colon, is run through the structured strategies; records are concatenated
// in document order.
func runNested(text string, schema *Schema) ([]Record, bool) {
	var records []Record
	for _, leaf := range payloadLeaves(text, schema) {
		for _, stage := range nestedStages {
			if found, ok := stage(leaf, schema); ok {
				records = append(records, found...)
				break
			}
		}
	}
	return records, len(records) > 0
}

// carriesPayload reports whether a string value of text holds a record array
// that the structured stages recover. Record fields that merely quote an
// object, like a card explaining the format, do not count.
func carriesPayload(text string, schema *Schema) bool {
	for _, leaf := range payloadLeaves(text, schema) {
		for _, stage := range structuredStages {
			if _, ok := stage(leaf, schema); ok {
				return true
			}
		}
	}
	return false
}

// payloadLeaves returns the string values of the JSON text that mention every
// required key, in document order.
func payloadLeaves(text string, schema *Schema) []string {
	trimmed := strings.TrimSpace(text)
	value, err := parse.Decode(trimmed)
	if err != nil {
		return nil
	}

	var leaves []string
	if s, ok := value.(string); ok {
		// A JSON-encoded array or object is the direct strategy's job.
		inner := strings.TrimSpace(s)
		if strings.HasPrefix(inner, "[") || strings.HasPrefix(inner, "{") || strings.HasPrefix(inner, `"`) {
			return nil
		}
		leaves = []string{s}
	} else {
		leaves, err = parse.StringLeaves(trimmed)
		if err != nil {
			return nil
		}
	}

	required := schema.requiredFields()
	patterns := make([]*regexp.Regexp, len(required))
	for i, f := range required {
		patterns[i] = quotedKeyPattern(f)
	}

	var matched []string
	for _, leaf := range leaves {
		if mentionsAll(leaf, patterns) {
			matched = append(matched, leaf)
		}
	}
	return matched
}

func mentionsAll(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if !p.MatchString(text) {
			return false
		}
	}
	return true
}
