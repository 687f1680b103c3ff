// Package extract recovers structured records (flashcards, quiz questions, or
// any shape described by a [Schema]) from noisy text produced by a generative
// model.
//
// The payload is nominally a JSON array of objects, but in practice it may be
// double-encoded, truncated, wrapped in prose, written with escaped quotes or
// not be JSON at all. [Extractor.Extract] runs an ordered cascade of
// [Strategy] values, from strict to lenient, and returns the records of the
// first strategy that yields at least one valid record:
//
//	nested, direct, embedded, repaired, escaped-pattern, loose-scrape, array-filter
//
// When every strategy fails the result holds a single sentinel record built
// from [Schema.Sentinel], so callers always have something to render. The
// extractor never returns an error and never panics: a panic inside a strategy
// is recovered and counted as that strategy's failure.
//
// Example:
//
//	res := extract.Extract(`Here you go: [{"topic":"Cells","explanation":"Basic unit of life"}]`, extract.FlashcardSchema())
//	// res.Strategy == "embedded"
//	cards := extract.Flashcards(res.Records)
//	// cards[0].Topic == "Cells"
package extract
