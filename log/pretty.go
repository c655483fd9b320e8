package log

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the colorized text handler.
var (
	styleKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleString = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleNumber = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleTrue   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFalse  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	styleLevel = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// colorHandler renders records as colorized key=value text. Writes
// are serialized; handler state is immutable.
type colorHandler struct {
	cfg   config
	attrs []slog.Attr
	mu    *sync.Mutex
}

func newColorHandler(cfg config) *colorHandler {
	return &colorHandler{cfg: cfg, mu: &sync.Mutex{}}
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.cfg.level)
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.cfg.timeLayout != "" {
		h.writePair(
			buf, slog.TimeKey, styleString,
			r.Time.Format(h.cfg.timeLayout),
		)
	}

	level := Level(r.Level)
	h.writePair(buf, slog.LevelKey, styleLevel[level], level.String())

	if h.cfg.caller {
		if src := r.Source(); src != nil {
			h.writePair(
				buf, slog.SourceKey, styleString,
				fmt.Sprintf("%s:%d", src.File, src.Line),
			)
		}
	}

	h.writePair(buf, slog.MessageKey, styleString, r.Message)

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.cfg.output.Write(buf.Bytes())

	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &colorHandler{cfg: h.cfg, attrs: merged, mu: h.mu}
}

func (h *colorHandler) WithGroup(string) slog.Handler {
	// Groups are flattened; this handler targets human eyes, not
	// machine parsing.
	return h
}

func (h *colorHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	v := a.Value.Resolve()

	switch v.Kind() {
	case slog.KindGroup:
		for _, member := range v.Group() {
			member.Key = a.Key + "." + member.Key
			h.writeAttr(buf, member)
		}

	case slog.KindInt64:
		h.writePair(buf, a.Key, styleNumber, strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		h.writePair(buf, a.Key, styleNumber, strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		h.writePair(
			buf, a.Key, styleNumber,
			strconv.FormatFloat(v.Float64(), 'g', -1, 64),
		)

	case slog.KindBool:
		if v.Bool() {
			h.writePair(buf, a.Key, styleTrue, "true")
		} else {
			h.writePair(buf, a.Key, styleFalse, "false")
		}

	default:
		h.writePair(buf, a.Key, styleString, v.String())
	}
}

func (h *colorHandler) writePair(
	buf *bytes.Buffer,
	key string,
	style lipgloss.Style,
	value string,
) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(styleKey.Render(key))
	buf.WriteByte('=')
	buf.WriteString(style.Render(value))
}
