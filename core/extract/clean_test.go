package extract

import (
	"reflect"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "Basic unit of life", "Basic unit of life"},
		{"structural punctuation", `{"topic": ["Cells"]}`, "topic: Cells"},
		{"apostrophes", "It's the cell's job", "Its the cells job"},
		{"newline runs", "Cell\n\n\nBiology", "Cell Biology"},
		{"whitespace runs", "  a \t\t b   c  ", "a b c"},
		{"unicode spaces", "Basic\u00a0\u00a0unit\v\vof\u2028life\u3000\ufeff", "Basic unit of life"},
		{"empty", "", ""},
		{"only punctuation", `{}[]""''`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Basic unit of life",
		`{ \"topic\": \"x\" }`,
		"  spaced\n\nout  ",
		"Mitosis, ",
		"[[[nested]]]",
		"a\u00a0 \u2028b",
		"",
	}
	for _, input := range inputs {
		once := Clean(input)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestCleanScraped(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{" Mitosis, ", "Mitosis"},
		{` \"Cells\"}, {`, "Cells"},
		{`line one\nline two;`, "line one line two"},
		{"Gamete formation", "Gamete formation"},
	}
	for _, tt := range tests {
		if got := cleanScraped(tt.input); got != tt.want {
			t.Errorf("cleanScraped(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`"Berlin", "Paris"`, []string{"Berlin", "Paris"}},
		{`\"Mars\", \"Jupiter\"`, []string{"Mars", "Jupiter"}},
		{` [Water, Air, Fire], `, []string{"Water", "Air", "Fire"}},
		{`"", "x"`, []string{"x"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := splitList(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"1", 1, true},
		{` \"2\"}`, 2, true},
		{"C", 2, true},
		{"a", 0, true},
		{"option 3 is right", 3, true},
		{"-1", -1, true},
		{"1.5", 0, false},
		{"option 1.5 maybe", 0, false},
		{"option 2.", 2, true},
		{"none", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseIndex(tt.input)
		if ok != tt.wantOK {
			t.Errorf("parseIndex(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if ok && got.(int) != tt.want {
			t.Errorf("parseIndex(%q) = %v, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCoerceJSON(t *testing.T) {
	str := Field{Name: "s"}
	list := Field{Name: "l", Kind: KindStringList}
	num := Field{Name: "n", Kind: KindInteger}

	tests := []struct {
		name   string
		field  Field
		input  any
		want   any
		wantOK bool
	}{
		{"string", str, " Cells ", "Cells", true},
		{"number as string", str, float64(12.5), "12.5", true},
		{"bool as string", str, true, "true", true},
		{"object as string", str, map[string]any{}, nil, false},
		{"array list", list, []any{"a", " ", float64(3)}, []string{"a", "3"}, true},
		{"string list", list, "a, b", []string{"a", "b"}, true},
		{"number list", list, float64(1), nil, false},
		{"integral float", num, float64(2), 2, true},
		{"fractional float", num, float64(2.5), nil, false},
		{"numeric string", num, "3", 3, true},
		{"null", num, nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceJSON(tt.field, tt.input)
			if ok != tt.wantOK {
				t.Fatalf("coerceJSON() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("coerceJSON() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
