// Package slog implements observability.Provider with the standard library
// log/slog package. It is the provider used by the recall CLI.
//
// Loggers come in three formats (see [Format]): the colored single-line
// [CompactHandler] for terminals, and the log/slog text and JSON handlers.
// Level and format default to RECALL_LOG_LEVEL and RECALL_LOG_FORMAT.
package slog
