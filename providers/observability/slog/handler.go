package slog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

// CompactHandler renders records in [FormatCompact]. Handlers derived with
// WithAttrs or WithGroup share the writer lock of their parent.
type CompactHandler struct {
	out    io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	colors bool
	attrs  map[string]any
	prefix string
}

// NewCompactHandler returns a CompactHandler writing to w. Colors are enabled
// when w is a terminal.
func NewCompactHandler(w io.Writer, level slog.Leveler) *CompactHandler {
	colors := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		colors = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &CompactHandler{
		out:    w,
		mu:     &sync.Mutex{},
		level:  level,
		colors: colors,
		attrs:  map[string]any{},
	}
}

var _ slog.Handler = (*CompactHandler)(nil)

func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.level != nil {
		threshold = h.level.Level()
	}
	return level >= threshold
}

func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)

	if !r.Time.IsZero() {
		buf = append(buf, r.Time.Format("15:04:05.000")...)
		buf = append(buf, ' ')
	}

	label := fmt.Sprintf("%-5s", levelLabel(r.Level))
	if h.colors {
		buf = append(buf, levelColor(r.Level)...)
		buf = append(buf, label...)
		buf = append(buf, colorReset...)
	} else {
		buf = append(buf, label...)
	}
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	fields := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for k, v := range h.attrs {
		fields[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(fields, h.prefix, a)
		return true
	})

	if len(fields) > 0 {
		// encoding/json sorts map keys, so the output is stable.
		encoded, err := json.Marshal(fields)
		if err != nil {
			encoded = []byte(`{"!error":"unencodable attributes"}`)
		}
		buf = append(buf, ' ')
		buf = append(buf, encoded...)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	for _, a := range attrs {
		flatten(clone.attrs, clone.prefix, a)
	}
	return clone
}

func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.prefix += name + "."
	return clone
}

func (h *CompactHandler) clone() *CompactHandler {
	attrs := make(map[string]any, len(h.attrs))
	for k, v := range h.attrs {
		attrs[k] = v
	}
	return &CompactHandler{
		out:    h.out,
		mu:     h.mu,
		level:  h.level,
		colors: h.colors,
		attrs:  attrs,
		prefix: h.prefix,
	}
}

// flatten stores a under prefix+key, expanding groups into dotted keys.
func flatten(fields map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			flatten(fields, inner, member)
		}
		return
	}

	fields[prefix+a.Key] = attrValue(a.Value)
}

func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return x.Error()
		case fmt.Stringer:
			return x.String()
		}
	}
	return v.Any()
}

func levelLabel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}
