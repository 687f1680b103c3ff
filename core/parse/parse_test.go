package parse

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    any
		wantErr bool
	}{
		{
			name:  "array of objects",
			input: `[{"topic":"Cells"}]`,
			want:  []any{map[string]any{"topic": "Cells"}},
		},
		{
			name:  "number",
			input: `42`,
			want:  float64(42),
		},
		{
			name:  "surrounding whitespace",
			input: "  \n\"text\"\t",
			want:  "text",
		},
		{
			name:    "prose",
			input:   `here are your cards`,
			wantErr: true,
		},
		{
			name:    "trailing content",
			input:   `[1, 2] and more`,
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   ``,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeNested(t *testing.T) {
	tests := []struct {
		name  string
		input string
		depth int
		want  any
	}{
		{
			name:  "plain array is untouched",
			input: `[{"topic":"Cells"}]`,
			depth: 3,
			want:  []any{map[string]any{"topic": "Cells"}},
		},
		{
			name:  "array encoded once as a string",
			input: `"[{\"topic\":\"Cells\"}]"`,
			depth: 3,
			want:  []any{map[string]any{"topic": "Cells"}},
		},
		{
			name:  "array encoded twice",
			input: `"\"[{\\\"topic\\\":\\\"Cells\\\"}]\""`,
			depth: 3,
			want:  []any{map[string]any{"topic": "Cells"}},
		},
		{
			name:  "depth zero keeps the string",
			input: `"[1]"`,
			depth: 0,
			want:  "[1]",
		},
		{
			name:  "string that is not JSON stays a string",
			input: `"[not json"`,
			depth: 3,
			want:  "[not json",
		},
		{
			name:  "plain string",
			input: `"Cells"`,
			depth: 3,
			want:  "Cells",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeNested(tt.input, tt.depth)
			if err != nil {
				t.Fatalf("DecodeNested() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeNested() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRepair(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  any
	}{
		{
			name:  "single quotes",
			input: `[{'topic': 'Cells', 'explanation': 'Basic unit of life'}]`,
			want:  []any{map[string]any{"topic": "Cells", "explanation": "Basic unit of life"}},
		},
		{
			name:  "trailing comma",
			input: `[{"topic": "Cells", "explanation": "Basic unit of life"},]`,
			want:  []any{map[string]any{"topic": "Cells", "explanation": "Basic unit of life"}},
		},
		{
			name:  "missing closing brackets",
			input: `[{"topic": "Cells", "explanation": "Basic unit of life"}`,
			want:  []any{map[string]any{"topic": "Cells", "explanation": "Basic unit of life"}},
		},
		{
			name:  "unquoted keys",
			input: `{topic: "Cells"}`,
			want:  map[string]any{"topic": "Cells"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Repair(tt.input)
			if err != nil {
				t.Fatalf("Repair() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Repair() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestStringLeaves(t *testing.T) {
	input := `[{"topic":"Cells","explanation":"Basic unit of life","n":1},{"topic":"DNA","tags":["a","b"]}]`

	got, err := StringLeaves(input)
	if err != nil {
		t.Fatalf("StringLeaves() unexpected error: %v", err)
	}

	want := []string{"topic", "Cells", "explanation", "Basic unit of life", "n", "topic", "DNA", "tags", "a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StringLeaves() = %q, want %q", got, want)
	}
}

func TestStringLeaves_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "not json at all", `Here: [{"topic":"x"}]`} {
		if _, err := StringLeaves(input); err == nil {
			t.Errorf("StringLeaves(%q) expected error, got nil", input)
		}
	}
}

func TestDecodeAs(t *testing.T) {
	type envelope struct {
		Title string `json:"title"`
		Total int    `json:"total_questions"`
	}

	tests := []struct {
		name    string
		input   string
		want    envelope
		wantErr bool
	}{
		{
			name:  "valid JSON",
			input: `{"title":"Biology","total_questions":6}`,
			want:  envelope{Title: "Biology", Total: 6},
		},
		{
			name:  "single quotes (should be repaired)",
			input: `{'title': 'Biology', 'total_questions': 6}`,
			want:  envelope{Title: "Biology", Total: 6},
		},
		{
			name:  "trailing comma (should be repaired)",
			input: `{"title": "Biology", "total_questions": 6,}`,
			want:  envelope{Title: "Biology", Total: 6},
		},
		{
			name:  "schema wrapped values",
			input: `{"title": {"type": "string", "value": "Biology"}, "total_questions": {"type": "integer", "value": 6}}`,
			want:  envelope{Title: "Biology", Total: 6},
		},
		{
			name:    "array into struct",
			input:   `[1, 2, 3]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAs[envelope](tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeAs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("DecodeAs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnwrapSchemaValues(t *testing.T) {
	input := map[string]any{
		"topic": map[string]any{"type": "string", "value": "Cells"},
		"cards": []any{
			map[string]any{"type": "object", "value": map[string]any{"explanation": "Basic unit"}},
		},
		"kind": map[string]any{"type": "string", "value": "x", "extra": true},
	}

	want := map[string]any{
		"topic": "Cells",
		"cards": []any{map[string]any{"explanation": "Basic unit"}},
		"kind":  map[string]any{"type": "string", "value": "x", "extra": true},
	}

	if got := UnwrapSchemaValues(input); !reflect.DeepEqual(got, want) {
		t.Errorf("UnwrapSchemaValues() = %#v, want %#v", got, want)
	}
}
