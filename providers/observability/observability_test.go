package observability

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestAttributeConstructors(t *testing.T) {
	tests := []struct {
		name    string
		attr    Attribute
		wantKey string
		want    interface{}
	}{
		{"string", String(AttrExtractSchema, "flashcard"), AttrExtractSchema, "flashcard"},
		{"int", Int(AttrExtractRecordCount, 3), AttrExtractRecordCount, 3},
		{"int64", Int64("bytes", 9223372036854775807), "bytes", int64(9223372036854775807)},
		{"float64", Float64("ratio", 0.5), "ratio", 0.5},
		{"bool", Bool(AttrExtractClean, true), AttrExtractClean, true},
		{"duration", Duration(AttrDuration, 2*time.Second), AttrDuration, 2 * time.Second},
		{"error", Error(errors.New("boom")), AttrError, "boom"},
		{"nil error", Error(nil), AttrError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("Expected key %q, got %q", tt.wantKey, tt.attr.Key)
			}
			if tt.attr.Value != tt.want {
				t.Errorf("Expected value %v, got %v", tt.want, tt.attr.Value)
			}
		})
	}
}

func TestStringSlice(t *testing.T) {
	input := []string{"nested", "direct"}
	attr := StringSlice("strategies", input)

	if attr.Key != "strategies" {
		t.Errorf("Expected key 'strategies', got %q", attr.Key)
	}
	value, ok := attr.Value.([]string)
	if !ok {
		t.Fatalf("Expected Value to be []string, got %T", attr.Value)
	}
	if !reflect.DeepEqual(value, input) {
		t.Errorf("Expected value %v, got %v", input, value)
	}
}

func TestStatusCode_Values(t *testing.T) {
	if StatusUnset != 0 || StatusOK != 1 || StatusError != 2 {
		t.Errorf("unexpected status code values: %d %d %d", StatusUnset, StatusOK, StatusError)
	}
}
