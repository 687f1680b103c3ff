package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the value type of a record field.
type Kind string

const (
	KindString     Kind = "string"
	KindStringList Kind = "string-list"
	KindInteger    Kind = "integer"
)

// Field describes one named field of a record.
type Field struct {
	// Name is the canonical JSON key. It is also the key used when the record
	// is marshaled.
	Name string `yaml:"name" json:"name"`

	// Kind defaults to KindString when empty.
	Kind Kind `yaml:"kind,omitempty" json:"kind,omitempty"`

	// Aliases are alternative key spellings accepted on input.
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`

	// Optional fields may be absent from a valid record.
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`

	// Default replaces a missing or empty string value in the array-filter
	// strategy only.
	Default string `yaml:"default,omitempty" json:"default,omitempty"`

	// MinItems is the minimum length of a string-list value.
	MinItems int `yaml:"min_items,omitempty" json:"min_items,omitempty"`

	// IndexOf names a string-list field; an integer field with IndexOf set
	// must be a valid index into that list.
	IndexOf string `yaml:"index_of,omitempty" json:"index_of,omitempty"`
}

func (f Field) kind() Kind {
	if f.Kind == "" {
		return KindString
	}
	return f.Kind
}

// keys returns the canonical name followed by the aliases.
func (f Field) keys() []string {
	return append([]string{f.Name}, f.Aliases...)
}

// Schema describes the records an [Extractor] looks for. Fields[0] is the
// primary key field: the key whose presence marks a JSON object or a text
// region as a record candidate.
type Schema struct {
	Name   string  `yaml:"name" json:"name"`
	Fields []Field `yaml:"fields" json:"fields"`

	// Sentinel holds the field values of the record returned when every
	// strategy fails. Values are strings, integers or string lists.
	Sentinel map[string]any `yaml:"sentinel,omitempty" json:"sentinel,omitempty"`

	// Validate is an optional cross-field check run after the per-field
	// rules. A non-nil error drops the candidate.
	Validate func(Record) error `yaml:"-" json:"-"`
}

// Primary returns the primary key field.
func (s *Schema) Primary() Field {
	return s.Fields[0]
}

// Field returns the field with the given canonical name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Check reports structural problems in the schema: missing fields, duplicate
// keys, unknown kinds, an optional primary field or a dangling IndexOf.
func (s *Schema) Check() error {
	if s == nil {
		return errors.New("schema is nil")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %q has no fields", s.Name)
	}
	if s.Fields[0].Optional {
		return fmt.Errorf("schema %q: primary field %q cannot be optional", s.Name, s.Fields[0].Name)
	}

	seen := make(map[string]string)
	for _, f := range s.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("schema %q: field with empty name", s.Name)
		}
		switch f.kind() {
		case KindString, KindStringList, KindInteger:
		default:
			return fmt.Errorf("schema %q: field %q has unknown kind %q", s.Name, f.Name, f.Kind)
		}
		for _, key := range f.keys() {
			lower := strings.ToLower(key)
			if owner, dup := seen[lower]; dup {
				return fmt.Errorf("schema %q: key %q of field %q already used by field %q", s.Name, key, f.Name, owner)
			}
			seen[lower] = f.Name
		}
	}

	for _, f := range s.Fields {
		if f.IndexOf == "" {
			continue
		}
		if f.kind() != KindInteger {
			return fmt.Errorf("schema %q: index_of is only valid on integer fields, got %q on %q", s.Name, f.Kind, f.Name)
		}
		target, ok := s.Field(f.IndexOf)
		if !ok || target.kind() != KindStringList {
			return fmt.Errorf("schema %q: field %q indexes unknown list field %q", s.Name, f.Name, f.IndexOf)
		}
	}
	return nil
}

// requiredFields returns the non-optional fields in schema order.
func (s *Schema) requiredFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if !f.Optional {
			out = append(out, f)
		}
	}
	return out
}

// fieldForKey resolves an input key (canonical name or alias, case-insensitive)
// to its field index.
func (s *Schema) fieldForKey(key string) (int, bool) {
	for i, f := range s.Fields {
		for _, k := range f.keys() {
			if strings.EqualFold(k, key) {
				return i, true
			}
		}
	}
	return 0, false
}

// FlashcardSchema returns the topic/explanation flashcard schema.
func FlashcardSchema() *Schema {
	return &Schema{
		Name: "flashcard",
		Fields: []Field{
			{Name: "topic", Kind: KindString, Default: "No Topic"},
			{Name: "explanation", Kind: KindString, Default: "No explanation"},
		},
		Sentinel: map[string]any{
			"topic":       "Error",
			"explanation": "Failed to load flashcard data. Please try again.",
		},
	}
}

// QuizSchema returns the multiple-choice quiz question schema. A question needs
// at least two options and a correct_answer that indexes one of them.
func QuizSchema() *Schema {
	return &Schema{
		Name: "quiz",
		Fields: []Field{
			{Name: "question", Kind: KindString},
			{Name: "options", Kind: KindStringList, Aliases: []string{"choices", "answers"}, MinItems: 2},
			{
				Name:    "correct_answer",
				Kind:    KindInteger,
				Aliases: []string{"correctAnswerIndex", "correct_answer_index", "correctAnswer"},
				IndexOf: "options",
			},
		},
		Sentinel: map[string]any{
			"question":       "Failed to load quiz data. Please try again.",
			"options":        []string{},
			"correct_answer": -1,
		},
	}
}
