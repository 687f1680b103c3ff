package extract

import (
	"context"
	"fmt"

	"github.com/leofalp/recall/internal/utils"
	"github.com/leofalp/recall/providers/observability"
)

// previewLength bounds the input excerpt logged when extraction fails.
const previewLength = 200

// Result is the outcome of one extraction.
type Result struct {
	// Records are the extracted records in document order. On total failure
	// it holds exactly one sentinel record.
	Records []Record `json:"records"`

	// Strategy names the strategy that produced Records, or StrategySentinel.
	Strategy string `json:"strategy"`

	// Clean is true when the input parsed directly as well-formed JSON.
	Clean bool `json:"clean"`
}

// Failed reports whether the result is the sentinel placeholder.
func (r Result) Failed() bool {
	return r.Strategy == StrategySentinel
}

// Extractor runs a strategy cascade for one schema. It holds no mutable state
// and is safe for concurrent use.
type Extractor struct {
	schema     *Schema
	schemaErr  error
	strategies []Strategy
	observer   observability.Provider
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithObserver sets the observability provider. Without one the extractor
// falls back to the provider carried by the context, if any.
func WithObserver(observer observability.Provider) Option {
	return func(e *Extractor) {
		e.observer = observer
	}
}

// WithStrategies replaces the default cascade.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = append([]Strategy(nil), strategies...)
	}
}

// New returns an Extractor for schema using DefaultStrategies. A schema that
// fails [Schema.Check] is replaced by a single-field placeholder: the
// extractor then returns the sentinel for every input and [Extractor.Err]
// reports the problem.
func New(schema *Schema, opts ...Option) *Extractor {
	e := &Extractor{
		schema:     schema,
		strategies: DefaultStrategies(),
	}
	if err := schema.Check(); err != nil {
		e.schema = placeholderSchema(schema)
		e.schemaErr = err
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Schema returns the schema the extractor looks for.
func (e *Extractor) Schema() *Schema {
	return e.schema
}

// Err returns the schema problem found by New, if any.
func (e *Extractor) Err() error {
	return e.schemaErr
}

func placeholderSchema(schema *Schema) *Schema {
	name := "record"
	if schema != nil && schema.Name != "" {
		name = schema.Name
	}
	return &Schema{Name: name, Fields: []Field{{Name: "error"}}}
}

// Extract runs the cascade over raw and returns the records of the first
// strategy that succeeds, or the schema's sentinel record. It never fails.
func (e *Extractor) Extract(ctx context.Context, raw string) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	observer := e.observer
	if observer == nil {
		observer = observability.ObserverFromContext(ctx)
	}

	var span observability.Span
	if observer != nil {
		ctx, span = observer.StartSpan(ctx, observability.SpanExtract,
			observability.String(observability.AttrExtractSchema, e.schema.Name),
			observability.Int(observability.AttrExtractInputLength, len(raw)),
		)
		defer span.End()
	}

	strategies := e.strategies
	if e.schemaErr != nil {
		strategies = nil
		if span != nil {
			span.RecordError(e.schemaErr)
		}
	}

	attempted := make([]string, 0, len(strategies))
	for _, strategy := range strategies {
		records, ok, panicked := runStrategy(strategy, raw, e.schema)
		if ok {
			result := Result{
				Records:  records,
				Strategy: strategy.Name,
				Clean:    strategy.Name == StrategyDirect,
			}
			if observer != nil {
				e.recordSuccess(ctx, observer, span, result, attempted)
			}
			return result
		}
		attempted = append(attempted, strategy.Name)

		if span != nil {
			event := observability.EventExtractStrategyFailed
			if panicked != nil {
				event = observability.EventExtractStrategyPanicked
			}
			attrs := []observability.Attribute{observability.String(observability.AttrExtractStrategy, strategy.Name)}
			if panicked != nil {
				attrs = append(attrs, observability.Error(panicked))
			}
			span.AddEvent(event, attrs...)
		}
	}

	result := Result{
		Records:  []Record{sentinelRecord(e.schema)},
		Strategy: StrategySentinel,
	}
	if observer != nil {
		observer.Counter(observability.MetricExtractStrategyHits).Add(ctx, 1,
			observability.String(observability.AttrExtractStrategy, StrategySentinel),
		)
		observer.Warn(ctx, "No strategy recovered any record",
			observability.String(observability.AttrExtractSchema, e.schema.Name),
			observability.String(observability.AttrExtractInputPreview, utils.TruncateString(raw, previewLength)),
		)
		span.SetAttributes(
			observability.String(observability.AttrExtractStrategy, StrategySentinel),
			observability.Int(observability.AttrExtractRecordCount, 0),
			observability.StringSlice(observability.AttrExtractAttempted, attempted),
		)
		span.SetStatus(observability.StatusError, "extraction failed")
	}
	return result
}

func (e *Extractor) recordSuccess(ctx context.Context, observer observability.Provider, span observability.Span, result Result, attempted []string) {
	strategyAttr := observability.String(observability.AttrExtractStrategy, result.Strategy)

	observer.Counter(observability.MetricExtractStrategyHits).Add(ctx, 1, strategyAttr)
	observer.Histogram(observability.MetricExtractRecords).Record(ctx, float64(len(result.Records)), strategyAttr)
	observer.Debug(ctx, "Records extracted",
		observability.String(observability.AttrExtractSchema, e.schema.Name),
		strategyAttr,
		observability.Int(observability.AttrExtractRecordCount, len(result.Records)),
	)

	span.SetAttributes(
		strategyAttr,
		observability.Int(observability.AttrExtractRecordCount, len(result.Records)),
		observability.Bool(observability.AttrExtractClean, result.Clean),
		observability.StringSlice(observability.AttrExtractAttempted, attempted),
	)
	span.SetStatus(observability.StatusOK, "")
}

// runStrategy runs one strategy, turning a panic into a failure. A success
// without records counts as a failure.
func runStrategy(strategy Strategy, raw string, schema *Schema) (records []Record, ok bool, panicked error) {
	defer func() {
		if r := recover(); r != nil {
			records, ok, panicked = nil, false, fmt.Errorf("strategy %s panicked: %v", strategy.Name, r)
		}
	}()

	if strategy.Run == nil {
		return nil, false, nil
	}
	records, ok = strategy.Run(raw, schema)
	return records, ok && len(records) > 0, nil
}

// Extract runs the default cascade for schema without diagnostics.
func Extract(raw string, schema *Schema) Result {
	return New(schema).Extract(context.Background(), raw)
}
