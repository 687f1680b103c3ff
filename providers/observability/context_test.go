package observability

import (
	"context"
	"testing"
)

type testContextKey string

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("Expected nil span from empty context, got %v", span)
	}
}

func TestContextWithSpan_RoundTrip(t *testing.T) {
	span := &mockSpan{name: "extract.run"}
	ctx := ContextWithSpan(context.Background(), span)

	if got := SpanFromContext(ctx); got != span {
		t.Errorf("Expected the stored span, got %v", got)
	}
}

func TestContextWithSpan_Overwrite(t *testing.T) {
	span1 := &mockSpan{name: "span-1"}
	span2 := &mockSpan{name: "span-2"}

	ctx := ContextWithSpan(context.Background(), span1)
	ctx = ContextWithSpan(ctx, span2)

	if got := SpanFromContext(ctx); got != span2 {
		t.Errorf("Expected span2, got %v", got)
	}
}

func TestSpanFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), spanContextKey, "not a span")
	if span := SpanFromContext(ctx); span != nil {
		t.Errorf("Expected nil when value is not a Span, got %v", span)
	}
}

func TestSpanFromContext_SurvivesWrapping(t *testing.T) {
	span := &mockSpan{name: "parent"}
	ctx := ContextWithSpan(context.Background(), span)
	ctx = context.WithValue(ctx, testContextKey("key"), "value")

	if got := SpanFromContext(ctx); got != span {
		t.Errorf("Expected span to survive context wrapping")
	}
}

func TestContextWithObserver_RoundTrip(t *testing.T) {
	observer := &mockProvider{label: "round-trip"}
	ctx := ContextWithObserver(context.Background(), observer)

	retrieved := ObserverFromContext(ctx)
	if retrieved != observer {
		t.Fatalf("ObserverFromContext returned %v, want the stored observer", retrieved)
	}
}

func TestObserverFromContext_Missing(t *testing.T) {
	if observer := ObserverFromContext(context.Background()); observer != nil {
		t.Errorf("Expected nil from context without observer, got %v", observer)
	}
}

func TestObserverFromContext_NilContext(t *testing.T) {
	//nolint:staticcheck // nil context on purpose
	if observer := ObserverFromContext(nil); observer != nil {
		t.Errorf("Expected nil from nil context, got %v", observer)
	}
}

type mockSpan struct {
	name string
}

func (m *mockSpan) End()                                          {}
func (m *mockSpan) SetAttributes(attrs ...Attribute)              {}
func (m *mockSpan) SetStatus(code StatusCode, description string) {}
func (m *mockSpan) RecordError(err error)                         {}
func (m *mockSpan) AddEvent(name string, attrs ...Attribute)      {}

type mockProvider struct {
	label string
}

func (m *mockProvider) StartSpan(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, nil
}
func (m *mockProvider) Counter(_ string) Counter                          { return nil }
func (m *mockProvider) Histogram(_ string) Histogram                      { return nil }
func (m *mockProvider) Trace(_ context.Context, _ string, _ ...Attribute) {}
func (m *mockProvider) Debug(_ context.Context, _ string, _ ...Attribute) {}
func (m *mockProvider) Info(_ context.Context, _ string, _ ...Attribute)  {}
func (m *mockProvider) Warn(_ context.Context, _ string, _ ...Attribute)  {}
func (m *mockProvider) Error(_ context.Context, _ string, _ ...Attribute) {}
