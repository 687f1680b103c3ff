package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- Extraction Attributes ---

const (
	// AttrExtractSchema is the name of the record schema (e.g. "flashcard", "quiz")
	AttrExtractSchema = "extract.schema"

	// AttrExtractInputLength is the length in bytes of the raw payload
	AttrExtractInputLength = "extract.input.length"

	// AttrExtractStrategy is the name of a cascade strategy
	AttrExtractStrategy = "extract.strategy"

	// AttrExtractRecordCount is the number of records produced
	AttrExtractRecordCount = "extract.record_count"

	// AttrExtractClean is true when the payload parsed directly
	AttrExtractClean = "extract.clean"

	// AttrExtractAttempted lists the strategies that failed before the outcome
	AttrExtractAttempted = "extract.attempted"

	// AttrExtractInputPreview is a truncated copy of the raw payload
	AttrExtractInputPreview = "extract.input.preview"
)

// --- Study API Attributes ---

const (
	// AttrStudyAPIEndpoint is the backend path being called (e.g. "/generateQuiz")
	AttrStudyAPIEndpoint = "studyapi.endpoint"

	// AttrStudyAPIRequestID is the X-Request-ID sent with the call
	AttrStudyAPIRequestID = "studyapi.request.id"

	// AttrStudyAPIAttempt is the 1-based attempt number within a retry loop
	AttrStudyAPIAttempt = "studyapi.attempt"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"

	// AttrHTTPRequestDuration is the round-trip time of the request
	AttrHTTPRequestDuration = "http.request.duration"
)

// --- Deck Store Attributes ---

const (
	// AttrDeckKind is the deck kind ("flashcards" or "quiz")
	AttrDeckKind = "deck.kind"

	// AttrDeckID is the deck identifier
	AttrDeckID = "deck.id"

	// AttrDeckSize is the number of cards or questions in the deck
	AttrDeckSize = "deck.size"

	// AttrDeckTotal is the total number of stored decks of a kind
	AttrDeckTotal = "deck.total"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanExtract is the span name for one run of the extraction cascade
	SpanExtract = "extract.run"

	// SpanStudyAPICall is the span name for one backend call
	SpanStudyAPICall = "studyapi.call"
)

// --- Event Names ---

const (
	// EventExtractStrategyFailed marks a strategy that produced no records
	EventExtractStrategyFailed = "extract.strategy.failed"

	// EventExtractStrategyPanicked marks a strategy that panicked and was recovered
	EventExtractStrategyPanicked = "extract.strategy.panicked"

	// EventHTTPRequestPrepared marks an HTTP request ready to be sent
	EventHTTPRequestPrepared = "http.request.prepared"

	// EventHTTPRequestError marks a transport-level HTTP failure
	EventHTTPRequestError = "http.request.error"

	// EventHTTPResponseReceived marks a received HTTP response
	EventHTTPResponseReceived = "http.response.received"

	// EventDeckSave marks a deck written to a store
	EventDeckSave = "deck.save"

	// EventDeckDelete marks a deck removed from a store
	EventDeckDelete = "deck.delete"
)

// --- Metric Names ---

const (
	// MetricExtractStrategyHits counts extraction runs per winning strategy
	MetricExtractStrategyHits = "recall.extract.strategy.hits"

	// MetricExtractRecords records the number of records per extraction run
	MetricExtractRecords = "recall.extract.records"

	// MetricStudyAPIRequestCount counts backend calls
	MetricStudyAPIRequestCount = "recall.studyapi.request.count"

	// MetricStudyAPIRequestDuration records backend call duration in seconds
	MetricStudyAPIRequestDuration = "recall.studyapi.request.duration"
)
