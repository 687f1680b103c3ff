package slog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leofalp/recall/providers/observability"
)

type span struct {
	ctx       context.Context
	logger    *slog.Logger
	name      string
	startTime time.Time

	mu    sync.Mutex
	attrs []observability.Attribute
	ended bool
}

func newSpan(ctx context.Context, logger *slog.Logger, name string, attrs []observability.Attribute) *span {
	return &span{
		ctx:       ctx,
		logger:    logger,
		name:      name,
		startTime: time.Now(),
		attrs:     append([]observability.Attribute(nil), attrs...),
	}
}

// End logs the span with its accumulated attributes and duration at info
// level. Only the first call logs.
func (s *span) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	attrs := append([]observability.Attribute(nil), s.attrs...)
	s.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", "span.end"),
		slog.Duration("duration", time.Since(s.startTime)),
	}
	s.logger.LogAttrs(s.ctx, slog.LevelInfo, "Span ended", append(logAttrs, toSlogAttrs(attrs)...)...)
}

func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *span) SetStatus(code observability.StatusCode, description string) {
	var status string
	switch code {
	case observability.StatusOK:
		status = "ok"
	case observability.StatusError:
		status = "error"
	default:
		status = "unset"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, status))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

func (s *span) RecordError(err error) {
	if err == nil {
		return
	}

	s.mu.Lock()
	s.attrs = append(s.attrs, observability.Error(err))
	s.mu.Unlock()

	s.logger.LogAttrs(s.ctx, slog.LevelError, "Span error",
		slog.String("span", s.name),
		slog.String("event", "error"),
		slog.String("error", err.Error()),
	)
}

func (s *span) AddEvent(name string, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", name),
	}
	s.logger.LogAttrs(s.ctx, slog.LevelDebug, "Span event", append(logAttrs, toSlogAttrs(attrs)...)...)
}
