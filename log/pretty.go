package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the handler's writer, so color is only emitted when that
// writer is a terminal.
type palette struct {
	key, text, number, truth, falsity, duration, stamp lipgloss.Style
	levels                                             map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:      color("8"),
		text:     color("6"),
		number:   color("3"),
		truth:    color("2"),
		falsity:  color("1"),
		duration: color("5"),
		stamp:    color("4"),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): color("8"),
			slog.LevelDebug:        color("4"),
			slog.LevelInfo:         color("2"),
			slog.LevelWarn:         color("3").Bold(true),
			slog.LevelError:        color("1").Bold(true),
		},
	}
}

func (p *palette) level(l slog.Level) string {
	name := strings.ToUpper(Level(l).String())

	style, ok := p.levels[l]
	if !ok {
		switch {
		case l >= slog.LevelError:
			style = p.levels[slog.LevelError]
		case l >= slog.LevelWarn:
			style = p.levels[slog.LevelWarn]
		default:
			style = p.levels[slog.LevelDebug]
		}
	}

	return style.Render(name)
}

func (p *palette) value(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return p.text.Render(v.String())
	case slog.KindInt64:
		return p.number.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.number.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.number.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.truth.Render("true")
		}

		return p.falsity.Render("false")
	case slog.KindDuration:
		return p.duration.Render(v.Duration().String())
	case slog.KindTime:
		return p.stamp.Render(v.Time().Format(time.RFC3339))
	case slog.KindAny:
		if l, ok := v.Any().(slog.Level); ok {
			return p.level(l)
		}

		if err, ok := v.Any().(error); ok {
			return p.falsity.Render(err.Error())
		}
	}

	return p.text.Render(v.String())
}

// prettyBase holds the state shared by both pretty handlers.
type prettyBase struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	pal    *palette
	attrs  []slog.Attr
	prefix string
}

func makePrettyBase(w io.Writer, opts *slog.HandlerOptions) prettyBase {
	return prettyBase{opts: *opts, mu: &sync.Mutex{}, w: w, pal: newPalette(w)}
}

func (b prettyBase) enabled(level slog.Level) bool {
	threshold := slog.LevelInfo
	if b.opts.Level != nil {
		threshold = b.opts.Level.Level()
	}

	return level >= threshold
}

// withAttrs returns a copy of b carrying attrs, qualified by the current
// group prefix.
func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	merged := make([]slog.Attr, 0, len(b.attrs)+len(attrs))
	merged = append(merged, b.attrs...)

	for _, a := range attrs {
		a.Key = b.prefix + a.Key
		merged = append(merged, a)
	}

	b.attrs = merged

	return b
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name != "" {
		b.prefix += name + "."
	}

	return b
}

// fields flattens the record into ordered key/value attributes after
// applying ReplaceAttr. Group-valued attributes are expanded with dotted
// keys.
func (b prettyBase) fields(r slog.Record) []slog.Attr {
	out := make([]slog.Attr, 0, r.NumAttrs()+len(b.attrs)+4)

	add := func(a slog.Attr) {
		if b.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			a = b.opts.ReplaceAttr(nil, a)
		}

		if !a.Equal(slog.Attr{}) {
			out = append(out, a)
		}
	}

	if !r.Time.IsZero() {
		add(slog.Time(slog.TimeKey, r.Time))
	}

	add(slog.Any(slog.LevelKey, r.Level))

	if b.opts.AddSource {
		if src := r.Source(); src != nil {
			add(slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	add(slog.String(slog.MessageKey, r.Message))

	var flatten func(prefix string, a slog.Attr)

	flatten = func(prefix string, a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Value.Kind() == slog.KindGroup {
			for _, g := range a.Value.Group() {
				flatten(prefix+a.Key+".", g)
			}

			return
		}

		a.Key = prefix + a.Key
		add(a)
	}

	for _, a := range b.attrs {
		flatten("", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		flatten(b.prefix, a)

		return true
	})

	return out
}

func (b prettyBase) emit(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// render formats a field value. The level field was already replaced by its
// uppercase name, so it is recognized by key.
func (b prettyBase) render(a slog.Attr) string {
	if a.Key == slog.LevelKey && a.Value.Kind() == slog.KindString {
		return b.pal.level(slog.Level(ParseLevel(a.Value.String())))
	}

	return b.pal.value(a.Value)
}

// prettyTextHandler writes one line per record: key=value pairs with
// unquoted, colorized values.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyTextHandler {
	return &prettyTextHandler{makePrettyBase(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	for i, a := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.render(a))
	}

	return h.emit(&buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes an indented object per record with unquoted,
// colorized values.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyJSONHandler {
	return &prettyJSONHandler{makePrettyBase(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString("{")

	for i, a := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteString(": ")
		buf.WriteString(h.render(a))
	}

	buf.WriteString("\n}")

	return h.emit(&buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
