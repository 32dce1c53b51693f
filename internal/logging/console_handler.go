package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimeLayout = "15:04:05"

// consoleHandler writes one header line per record, then the remaining
// fields as key=value pairs on a single indented line, then any hint and
// impact on lines of their own.
//
//	12:04:05 WARN  media/fr: audio file not found [media_audio_missing]
//	    key=3f2a path=media/audio/fr/3f2a.mp3
//	    hint: generate pronunciation audio for this record
//	    impact: card will have no sound
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// consoleRecord is a record split into the parts the console layout places
// separately.
type consoleRecord struct {
	component string
	language  string
	eventType string
	hint      string
	impact    string
	fields    []kv
}

func (h *consoleHandler) split(record slog.Record) consoleRecord {
	all := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&all, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&all, h.groups, attr)
		return true
	})

	var out consoleRecord
	claim := func(dst *string, v slog.Value) {
		if *dst == "" {
			*dst = plainValue(v)
		}
	}
	for _, item := range all {
		switch item.key {
		case "":
		case FieldComponent:
			claim(&out.component, item.value)
		case FieldLanguage:
			claim(&out.language, item.value)
		case FieldEventType:
			claim(&out.eventType, item.value)
		case FieldErrorHint:
			claim(&out.hint, item.value)
		case FieldImpact:
			claim(&out.impact, item.value)
		default:
			out.fields = append(out.fields, item)
		}
	}
	return out
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if record.Level < h.level.Level() {
		return nil
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	parts := h.split(record)

	var buf bytes.Buffer
	buf.WriteString(ts.Format(consoleTimeLayout))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))

	scope := parts.component
	if parts.language != "" {
		if scope != "" {
			scope += "/"
		}
		scope += parts.language
	}
	if scope != "" {
		buf.WriteByte(' ')
		buf.WriteString(scope)
		buf.WriteByte(':')
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		buf.WriteByte(' ')
		buf.WriteString(msg)
	}
	if parts.eventType != "" {
		buf.WriteString(" [")
		buf.WriteString(parts.eventType)
		buf.WriteByte(']')
	}
	if h.addSource {
		if src := recordSource(record); src != nil {
			buf.WriteString(" (")
			buf.WriteString(filepath.Base(src.File))
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(src.Line))
			buf.WriteByte(')')
		}
	}
	buf.WriteByte('\n')

	if len(parts.fields) > 0 {
		buf.WriteString("    ")
		for i, item := range parts.fields {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(item.key)
			buf.WriteByte('=')
			buf.WriteString(quotedValue(item.value))
		}
		buf.WriteByte('\n')
	}
	if parts.hint != "" {
		buf.WriteString("    hint: ")
		buf.WriteString(parts.hint)
		buf.WriteByte('\n')
	}
	if parts.impact != "" {
		buf.WriteString("    impact: ")
		buf.WriteString(parts.impact)
		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *consoleHandler) clone() *consoleHandler {
	return &consoleHandler{
		mu:        h.mu,
		writer:    h.writer,
		level:     h.level,
		addSource: h.addSource,
		attrs:     append([]slog.Attr(nil), h.attrs...),
		groups:    append([]string(nil), h.groups...),
	}
}

type kv struct {
	key   string
	value slog.Value
}

func flattenAttrs(dst *[]kv, prefix []string, attrs []slog.Attr) {
	for _, attr := range attrs {
		flattenAttr(dst, prefix, attr)
	}
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string(nil), prefix...), attr.Key)
		}
		flattenAttrs(dst, next, attr.Value.Group())
		return
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(prefix, ".") + "." + key
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

// plainValue renders v without quoting.
func plainValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(consoleTimeLayout)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
	}
	return v.String()
}

// quotedValue renders v for a key=value list, quoting text that would
// otherwise be ambiguous.
func quotedValue(v slog.Value) string {
	s := plainValue(v)
	if s == "" || strings.ContainsAny(s, " =\"\t\n\r") {
		return strconv.Quote(s)
	}
	return s
}

// recordSource mirrors slog.Record.Source (Go 1.25+) for older toolchains.
func recordSource(r slog.Record) *slog.Source {
	if r.PC == 0 {
		return nil
	}
	fs := runtime.CallersFrames([]uintptr{r.PC})
	f, _ := fs.Next()
	return &slog.Source{Function: f.Function, File: f.File, Line: f.Line}
}
