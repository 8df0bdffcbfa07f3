package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers.
//
// The styles are bound to a renderer created for the handler's output, so
// color sequences are only emitted when that output is a terminal.
type palette struct {
	key, str, num, yes, no, dur, ts lipgloss.Style
	trace, debug, info, warn, err   lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		ts:    fg("4"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3"),
		err:   fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) string {
	s := Level(l).String()

	switch {
	case l >= slog.LevelError:
		return p.err.Render(s)
	case l >= slog.LevelWarn:
		return p.warn.Render(s)
	case l >= slog.LevelInfo:
		return p.info.Render(s)
	case l >= slog.LevelDebug:
		return p.debug.Render(s)
	default:
		return p.trace.Render(s)
	}
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	colors     palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	groups     []string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:       *opts,
		formatTime: formatTime,
		colors:     newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			buf.WriteString(h.colors.ts.Render(ts))
		}
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.colors.level(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteByte(' ')
			buf.WriteString(h.colors.key.Render(fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(buf, "", a)
	}

	prefix := groupPrefix(h.groups)

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := groupPrefix(h.groups)
	scoped := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	scoped = append(scoped, h.attrs...)

	for _, a := range attrs {
		a.Key = prefix + a.Key
		scoped = append(scoped, a)
	}

	c := *h
	c.attrs = scoped

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			h.writeAttr(buf, sub, g)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.colors.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.value(a.Value))
}

func (h *prettyTextHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.colors.str.Render(v.String())

	case slog.KindInt64:
		return h.colors.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.colors.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.colors.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.colors.yes.Render("true")
		}

		return h.colors.no.Render("false")

	case slog.KindDuration:
		return h.colors.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.colors.ts.Render(v.Time().Format(time.RFC3339))

	default:
		if level, ok := v.Any().(slog.Level); ok {
			return h.colors.level(level)
		}

		return h.colors.str.Render(v.String())
	}
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	colors     palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:       *opts,
		formatTime: formatTime,
		colors:     newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	first := true

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			h.writeField(buf, slog.TimeKey, slog.StringValue(ts), &first)
		}
	}

	h.writeField(buf, slog.LevelKey, slog.AnyValue(r.Level), &first)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(
				buf,
				slog.SourceKey,
				slog.StringValue(fmt.Sprintf("%s:%d", src.File, src.Line)),
				&first,
			)
		}
	}

	h.writeField(buf, slog.MessageKey, slog.StringValue(r.Message), &first)

	for _, a := range h.attrs {
		h.writeField(buf, a.Key, a.Value, &first)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeField(buf, a.Key, a.Value, &first)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(string) slog.Handler {
	c := *h

	return &c
}

func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	key string,
	value slog.Value,
	first *bool,
) {
	value = value.Resolve()

	if value.Kind() == slog.KindGroup {
		for _, a := range value.Group() {
			h.writeField(buf, key+"."+a.Key, a.Value, first)
		}

		return
	}

	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	buf.WriteString("  ")
	buf.WriteString(h.colors.key.Render(key))
	buf.WriteString(": ")

	switch value.Kind() {
	case slog.KindString:
		buf.WriteString(h.colors.str.Render(value.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		buf.WriteString(h.colors.num.Render(value.String()))

	case slog.KindBool:
		if value.Bool() {
			buf.WriteString(h.colors.yes.Render("true"))
		} else {
			buf.WriteString(h.colors.no.Render("false"))
		}

	default:
		if level, ok := value.Any().(slog.Level); ok {
			buf.WriteString(h.colors.level(level))
		} else if value.Any() == nil {
			buf.WriteString(h.colors.key.Render("null"))
		} else {
			buf.WriteString(h.colors.str.Render(value.String()))
		}
	}
}

func groupPrefix(groups []string) string {
	var prefix string
	for _, g := range groups {
		prefix += g + "."
	}

	return prefix
}
