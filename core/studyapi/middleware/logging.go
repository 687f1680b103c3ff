package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/leofalp/recall/core/studyapi"
	"github.com/leofalp/recall/internal/utils"
)

// LogLevel controls how much detail the logging middleware emits per call.
type LogLevel int

const (
	// LogLevelMinimal logs only the endpoint, status and duration.
	LogLevelMinimal LogLevel = iota

	// LogLevelStandard adds the HTTP method, request id, query and response
	// size. This is the recommended default.
	LogLevelStandard

	// LogLevelVerbose adds the response body, truncated to 500 characters.
	//
	// WARNING: DO NOT use LogLevelVerbose in production. Response bodies hold
	// user study material.
	LogLevelVerbose
)

// truncateLen is the maximum body length included in verbose log output.
const truncateLen = 500

// NewLoggingMiddleware creates a middleware that emits structured slog entries
// before and after every backend call. A nil logger falls back to
// slog.Default().
func NewLoggingMiddleware(logger *slog.Logger, level LogLevel) studyapi.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next studyapi.SendFunc) studyapi.SendFunc {
		return func(ctx context.Context, call studyapi.Call) (*studyapi.Reply, error) {
			logger.InfoContext(ctx, "study api call", buildCallAttrs(call, level)...)

			start := time.Now()
			reply, err := next(ctx, call)
			elapsed := time.Since(start)

			if err != nil {
				logger.ErrorContext(ctx, "study api call failed",
					slog.String("endpoint", call.Endpoint),
					slog.String("request_id", call.RequestID),
					slog.Duration("duration", elapsed),
					slog.String("error", err.Error()),
				)
				return nil, err
			}

			logger.InfoContext(ctx, "study api call completed", buildReplyAttrs(call, reply, elapsed, level)...)
			return reply, nil
		}
	}
}

// buildCallAttrs returns slog attributes for an outgoing call.
func buildCallAttrs(call studyapi.Call, level LogLevel) []any {
	attrs := []any{
		slog.String("endpoint", call.Endpoint),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.String("method", call.Method),
			slog.String("request_id", call.RequestID),
		)
		if len(call.Query) > 0 {
			attrs = append(attrs, slog.String("query", call.Query.Encode()))
		}
		if call.File != nil {
			attrs = append(attrs, slog.Int("upload_size", len(call.File.Data)))
		}
	}

	return attrs
}

// buildReplyAttrs returns slog attributes for a completed call.
func buildReplyAttrs(call studyapi.Call, reply *studyapi.Reply, elapsed time.Duration, level LogLevel) []any {
	attrs := []any{
		slog.String("endpoint", call.Endpoint),
		slog.Int("status", reply.StatusCode),
		slog.Duration("duration", elapsed),
	}

	if level >= LogLevelStandard {
		attrs = append(attrs,
			slog.String("request_id", call.RequestID),
			slog.Int("response_size", len(reply.Body)),
		)
	}

	if level >= LogLevelVerbose {
		attrs = append(attrs, slog.String("response_body", utils.TruncateString(string(reply.Body), truncateLen)))
	}

	return attrs
}
