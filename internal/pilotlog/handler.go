// Package pilotlog provides the structured JSON slog.Handler that
// cmd/server installs as its default logger. It is adapted from the teacher project's
// GoogleCloudHandler (cloud.go), generalized to a plain JSON-lines sink
// instead of a Cloud-Logging-specific transport, keeping the same
// "severity" field convention.
package pilotlog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Handler is a slog.Handler that writes one JSON object per line.
type Handler struct {
	writer     io.Writer
	level      slog.Level
	groupPath  string
	extraAttrs map[string]interface{}
}

// NewHandler creates a Handler writing to w, logging at or above level.
func NewHandler(w io.Writer, level slog.Level) *Handler {
	return &Handler{writer: w, level: level}
}

// Enabled reports whether level is at or above the handler's minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes r as a single JSON line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := map[string]interface{}{}
	r.Attrs(func(attr slog.Attr) bool {
		attrs[h.qualify(attr.Key)] = attr.Value.Any()
		return true
	})
	for k, v := range h.extraAttrs {
		attrs[k] = v
	}

	logEntry := map[string]interface{}{
		"severity": convertToSeverity(r.Level),
		"message":  r.Message,
		"time":     time.Now().Format(time.RFC3339Nano),
	}
	for k, v := range attrs {
		logEntry[k] = v
	}

	encoder := json.NewEncoder(h.writer)
	return encoder.Encode(logEntry)
}

func (h *Handler) qualify(key string) string {
	if h.groupPath == "" {
		return key
	}
	return h.groupPath + "." + key
}

// WithAttrs returns a new handler that merges attrs into every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.extraAttrs = make(map[string]interface{}, len(h.extraAttrs)+len(attrs))
	for k, v := range h.extraAttrs {
		newHandler.extraAttrs[k] = v
	}
	for _, attr := range attrs {
		newHandler.extraAttrs[h.qualify(attr.Key)] = attr.Value.Any()
	}
	return &newHandler
}

// WithGroup returns a new handler that namespaces subsequent attribute
// keys under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newHandler := *h
	if newHandler.groupPath == "" {
		newHandler.groupPath = name
	} else {
		newHandler.groupPath = strings.Join([]string{newHandler.groupPath, name}, ".")
	}
	return &newHandler
}

// convertToSeverity maps slog levels to the severity strings consumers
// (structured log collectors) conventionally expect.
func convertToSeverity(level slog.Level) string {
	switch level {
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	case slog.LevelDebug:
		return "DEBUG"
	default:
		return "DEFAULT"
	}
}
