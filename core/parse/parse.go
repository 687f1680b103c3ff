package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Decode strictly decodes content into the generic JSON value set used across
// the extractor: nil, bool, float64, string, []any and map[string]any.
// Trailing non-whitespace content is rejected.
func Decode(content string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return value, nil
}

// DecodeNested decodes content like [Decode] and then, while the result is a
// string that itself looks like a JSON array or object, decodes that string
// again, up to depth extra levels. It handles payloads that were JSON-encoded
// twice (an array serialized into a string field, then serialized again).
//
// Example:
//
//	v, _ := DecodeNested(`"[{\"topic\":\"Cells\"}]"`, 3)
//	// v is []any{map[string]any{"topic": "Cells"}}
func DecodeNested(content string, depth int) (any, error) {
	value, err := Decode(content)
	if err != nil {
		return nil, err
	}

	for i := 0; i < depth; i++ {
		text, ok := value.(string)
		if !ok {
			break
		}
		trimmed := strings.TrimSpace(text)
		if !looksLikeJSONContainer(trimmed) {
			break
		}
		inner, err := Decode(trimmed)
		if err != nil {
			break
		}
		value = inner
	}

	return value, nil
}

// Repair runs content through jsonrepair (closing truncated strings and
// brackets, converting single quotes, dropping trailing commas, ...) and
// decodes the repaired document.
func Repair(content string) (any, error) {
	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return nil, fmt.Errorf("failed to repair JSON: %w", err)
	}

	value, err := Decode(repaired)
	if err != nil {
		return nil, fmt.Errorf("failed to decode repaired JSON: %w (repaired: %s)", err, repaired)
	}
	return value, nil
}

// StringLeaves returns every JSON string token of content in document order,
// object keys included. It fails when content is not a single valid JSON
// document.
func StringLeaves(content string) ([]string, error) {
	decoder := json.NewDecoder(strings.NewReader(content))

	var leaves []string
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to tokenize JSON: %w", err)
		}
		if text, ok := token.(string); ok {
			leaves = append(leaves, text)
		}
	}

	if len(leaves) == 0 && strings.TrimSpace(content) == "" {
		return nil, errors.New("empty JSON document")
	}
	return leaves, nil
}

// DecodeAs unmarshals content into T. When strict unmarshaling fails the
// content is repaired with jsonrepair and retried; as a last resort,
// {"type": ..., "value": ...} wrappers are unwrapped before a final attempt.
func DecodeAs[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	err = json.Unmarshal([]byte(repairedJSON), &result)
	if err == nil {
		return result, nil
	}

	if unwrapped, unwrapErr := unwrapSchemaJSON(repairedJSON); unwrapErr == nil {
		if err = json.Unmarshal([]byte(unwrapped), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
}

// UnwrapSchemaValues recursively replaces values wrapped in a schema-like
// {"type": ..., "value": ...} object with the bare value. Generative models
// sometimes confuse a JSON schema with the data it describes.
//
// Example input:
//
//	{"topic": {"type": "string", "value": "Cells"}}
//
// Example output:
//
//	{"topic": "Cells"}
func UnwrapSchemaValues(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return UnwrapSchemaValues(value)
			}
		}

		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = UnwrapSchemaValues(val)
		}
		return result

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = UnwrapSchemaValues(val)
		}
		return result

	default:
		return data
	}
}

func unwrapSchemaJSON(jsonStr string) (string, error) {
	data, err := Decode(jsonStr)
	if err != nil {
		return "", err
	}

	encoded, err := json.Marshal(UnwrapSchemaValues(data))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func looksLikeJSONContainer(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '[' && last == ']') || (first == '{' && last == '}') || first == '"'
}
