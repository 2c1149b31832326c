package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var levelBadges = map[slog.Level]struct {
	text  string
	color *color.Color
}{
	slog.LevelDebug: {"[DEBUG]", color.New(color.FgHiBlack)},
	slog.LevelInfo:  {"[INFO] ", color.New(color.FgCyan)},
	slog.LevelWarn:  {"[WARN] ", color.New(color.FgYellow)},
	slog.LevelError: {"[ERROR]", color.New(color.FgRed)},
}

// Attribute keys highlighted in output. Anything else is dimmed.
var keyColors = map[string]*color.Color{
	"error":           color.New(color.FgRed),
	"err":             color.New(color.FgRed),
	"total":           color.New(color.FgGreen),
	"count":           color.New(color.FgGreen),
	"issues":          color.New(color.FgGreen),
	"pull_requests":   color.New(color.FgGreen),
	"tracking_issues": color.New(color.FgGreen),
	"kind":            color.New(color.FgYellow),
	"section":         color.New(color.FgYellow),
	"url":             color.New(color.FgBlue),
	"target":          color.New(color.FgBlue),
}

var dim = color.New(color.FgHiBlack)

// PrettyHandler writes one colored line per record:
//
//	[LEVEL] message key=value ... (file:line)
//
// Attributes bound with With come before the record's own.
type PrettyHandler struct {
	opts *slog.HandlerOptions
	mu   *sync.Mutex
	w    io.Writer
	// bound holds attributes from WithAttrs, already formatted.
	bound  []string
	prefix string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: opts, mu: &sync.Mutex{}, w: w}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelWarn
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	buf.WriteString(badge(r.Level))
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	attrs := append([]string(nil), h.bound...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, formatAttr(h.prefix, a))
		return true
	})
	if len(attrs) > 0 {
		buf.WriteString(" ")
		buf.WriteString(strings.Join(attrs, " "))
	}

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			buf.WriteString(" ")
			buf.WriteString(dim.Sprintf("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}
	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.bound = append([]string(nil), h.bound...)
	for _, a := range attrs {
		clone.bound = append(clone.bound, formatAttr(h.prefix, a))
	}
	return &clone
}

// WithGroup prefixes the keys of attributes added afterwards with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func badge(level slog.Level) string {
	if b, ok := levelBadges[level]; ok {
		return b.color.Sprint(b.text)
	}
	return "[" + level.String() + "]"
}

func formatAttr(prefix string, a slog.Attr) string {
	key := prefix + a.Key
	pair := key + "=" + a.Value.Resolve().String()
	if c, ok := keyColors[a.Key]; ok {
		return c.Sprint(pair)
	}
	return dim.Sprint(pair)
}
