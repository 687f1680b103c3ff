// Package parse provides the tolerant JSON decoding used to recover records
// from generative-model output. Because models frequently wrap JSON in prose,
// encode it twice, truncate it, or emit schema-style envelopes, this package
// offers the individual recovery steps (strict decode, nested decode,
// jsonrepair, schema unwrapping, string tokenization) so callers can compose
// them into their own cascade.
//
// Decoded values use the generic JSON value set of encoding/json: nil, bool,
// float64, string, []any and map[string]any. Callers inspect them with a type
// switch.
package parse
