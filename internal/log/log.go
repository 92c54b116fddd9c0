// Package log provides logging output.
//
// Records are rendered as single colored lines so a fuzzing run scrolls
// like the measurement log it is. Color is only used when the writer is a
// terminal; a plain copy of every line can be teed to stdout.log.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/term"
)

var (
	// DefaultLogger returns a new formatted logger writing to os.Stderr. Components built without a
	// logger fall back to it; it does not follow loggers installed with SetDefault.
	DefaultLogger = func() *Logger { return NewFormattedLogger(os.Stderr) }

	// New builds a logger from a handler.
	New = slog.New

	// SetDefault overrides the default logger.
	SetDefault = slog.SetDefault

	// LogLevel is a variable holding the log level. It can be changed at runtime.
	LogLevel = &slog.LevelVar{}
)

// NewFormattedLogger returns a logger that uses a Handler to format and write logs to a Writer.
func NewFormattedLogger(out io.Writer) *Logger {
	handler := NewHandler(out)
	return slog.New(handler)
}

// ANSI escapes for the level tags.
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorCyan   = "\x1b[36m"
)

// Handler implements slog.Handler to produce single-line formatted output.
type Handler struct {
	mut *sync.Mutex // Synchronizes writer.
	out io.Writer

	// tee receives an uncolored copy of each record, typically stdout.log.
	tee io.Writer

	color bool
	opts  *slog.HandlerOptions
	attrs []Attr
}

// Options for log handlers.
var Options = &slog.HandlerOptions{
	Level: LogLevel,
}

// NewHandler creates and initializes a Handler with a writer.
func NewHandler(out io.Writer) *Handler {
	h := Handler{
		out:   out,
		mut:   new(sync.Mutex),
		opts:  Options,
		color: writerIsTerminal(out),
	}

	return &h
}

// WithTee returns a handler that also writes an uncolored copy of each record
// to w. Used to keep stdout.log alongside the terminal output.
func (h *Handler) WithTee(w io.Writer) *Handler {
	dup := *h
	dup.tee = w

	return &dup
}

func writerIsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// Enabled returns true if the level is greater than or equal to the current logging level.
func (h *Handler) Enabled(_ context.Context, level Level) bool {
	return level >= h.opts.Level.Level()
}

func levelTag(level Level) (tag, color string) {
	switch {
	case level >= slog.LevelError:
		return "[-]", colorRed
	case level >= slog.LevelWarn:
		return "[!]", colorYellow
	case level >= slog.LevelInfo:
		return "[+]", colorGreen
	default:
		return "[d]", colorCyan
	}
}

// Handle formats and writes a log record to the handler's writer as a single
// line: a colored level tag, the message, then key=value attributes.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	plain := bytes.NewBuffer(make([]byte, 0, 256))

	tag, color := levelTag(rec.Level)

	fmt.Fprintf(plain, "%s %s", tag, rec.Message)

	for _, a := range h.attrs {
		appendAttr(plain, a)
	}

	rec.Attrs(func(attr Attr) bool {
		appendAttr(plain, attr)
		return true
	})

	plain.WriteByte('\n')

	line := plain.Bytes()

	colored := line
	if h.color {
		buf := bytes.NewBuffer(make([]byte, 0, len(line)+16))
		buf.WriteString(color)
		buf.WriteString(tag)
		buf.WriteString(colorReset)
		buf.Write(line[len(tag):])
		colored = buf.Bytes()
	}

	h.mut.Lock()
	defer h.mut.Unlock()

	if h.tee != nil {
		_, _ = h.tee.Write(line)
	}

	_, err := h.out.Write(colored)

	return err
}

// WithGroup flattens groups: the fuzzer's records are shallow by design.
func (h *Handler) WithGroup(string) slog.Handler {
	return h
}

// WithAttrs returns a new handler that combines the handler's attributes and those in the argument.
func (h *Handler) WithAttrs(attrs []Attr) slog.Handler {
	as := make([]Attr, 0, len(h.attrs)+len(attrs))
	as = append(as, h.attrs...)
	as = append(as, attrs...)

	dup := *h
	dup.attrs = as

	return &dup
}

func appendAttr(out *bytes.Buffer, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()

	if attr.Equal(Attr{}) {
		return
	}

	fmt.Fprintf(out, " %s=%v", attr.Key, attr.Value.Any())
}

type Loggable interface {
	WithLogger(*Logger)
}

type (
	Attr   = slog.Attr
	Level  = slog.Level
	Logger = slog.Logger
	Value  = slog.Value
)

var (
	String      = slog.String
	StringValue = slog.StringValue
	Group       = slog.Group
	GroupValue  = slog.GroupValue
	Any         = slog.Any
	AnyValue    = slog.AnyValue
	Int         = slog.Int
	Int64       = slog.Int64
	Uint64      = slog.Uint64
	Float64     = slog.Float64
	Bool        = slog.Bool
	Duration    = slog.Duration
)

const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)
