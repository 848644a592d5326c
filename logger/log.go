package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	nocolor   = "0"
	red       = "31"
	green     = "38;5;48"
	yellow    = "33"
	gray      = "38;5;251"
	lightgray = "38;5;243"
	cyan      = "1;36"
)

const DateFormat = "2006-01-02 15:04:05"

// Logger is the shared logging interface; commands construct one ConsoleLogger
// and pass it down.
type Logger interface {
	Debug(format string, v ...any)
	Error(format string, v ...any)
	Fatal(format string, v ...any)
	Notice(format string, v ...any)
	Warn(format string, v ...any)
	Info(format string, v ...any)

	WithFields(fields ...Field) Logger
	SetLevel(level Level)
	Level() Level
}

type ExitFunc func(int)

type Printer interface {
	Print(level Level, msg string, fields Fields)
}

type ConsoleLogger struct {
	printer Printer
	level   Level
	exitFn  ExitFunc
	fields  Fields
}

func NewConsoleLogger(printer Printer, exitFn ExitFunc) Logger {
	return &ConsoleLogger{
		level:   NOTICE,
		printer: printer,
		exitFn:  exitFn,
	}
}

// WithFields returns a copy of the logger with the provided fields.
func (l *ConsoleLogger) WithFields(fields ...Field) Logger {
	clone := *l
	clone.fields = append(clone.fields, fields...)
	return &clone
}

// SetLevel sets the level in the logger.
func (l *ConsoleLogger) SetLevel(level Level) {
	l.level = level
}

func (l *ConsoleLogger) Debug(format string, v ...any) {
	if l.level == DEBUG {
		l.printer.Print(DEBUG, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Error(format string, v ...any) {
	l.printer.Print(ERROR, fmt.Sprintf(format, v...), l.fields)
}

func (l *ConsoleLogger) Fatal(format string, v ...any) {
	l.printer.Print(FATAL, fmt.Sprintf(format, v...), l.fields)
	l.exitFn(1)
}

func (l *ConsoleLogger) Notice(format string, v ...any) {
	if l.level <= NOTICE {
		l.printer.Print(NOTICE, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Info(format string, v ...any) {
	if l.level <= INFO {
		l.printer.Print(INFO, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Warn(format string, v ...any) {
	if l.level <= WARN {
		l.printer.Print(WARN, fmt.Sprintf(format, v...), l.fields)
	}
}

func (l *ConsoleLogger) Level() Level {
	return l.level
}

type TextPrinter struct {
	Colors bool
	Writer io.Writer

	mu sync.Mutex
}

func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{
		Writer: w,
		Colors: ColorsAvailable(),
	}
}

// ColorsAvailable reports whether terminal colors should be used by default.
func ColorsAvailable() bool {
	// Color support on legacy windows consoles is patchy; leave it off.
	if runtime.GOOS == "windows" {
		return false
	}

	// Colors can only be shown if STDERR is a terminal
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func (p *TextPrinter) Print(level Level, msg string, fields Fields) {
	now := time.Now().Format(DateFormat)

	var fieldSuffix strings.Builder
	for _, field := range fields {
		fieldSuffix.WriteString(" " + field.Key() + "=" + field.String())
	}

	var line string
	if p.Colors {
		levelColor := green
		messageColor := nocolor

		switch level {
		case DEBUG:
			levelColor = gray
			messageColor = gray
		case NOTICE:
			levelColor = cyan
		case WARN:
			levelColor = yellow
		case ERROR:
			levelColor = red
		case FATAL:
			levelColor = red
			messageColor = red
		}

		line = fmt.Sprintf("\x1b[%sm%s %-6s\x1b[0m \x1b[%sm%s\x1b[0m\x1b[%sm%s\x1b[0m\n",
			levelColor, now, level, messageColor, msg, lightgray, fieldSuffix.String())
	} else {
		line = fmt.Sprintf("%s %-6s %s%s\n", now, level, msg, fieldSuffix.String())
	}

	// Make sure we're only outputting a line one at a time
	p.mu.Lock()
	fmt.Fprint(p.Writer, line)
	p.mu.Unlock()
}

type JSONPrinter struct {
	Writer io.Writer

	mu sync.Mutex
}

func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{Writer: w}
}

func (p *JSONPrinter) Print(level Level, msg string, fields Fields) {
	entry := map[string]string{
		"ts":    time.Now().Format(DateFormat),
		"level": level.String(),
		"msg":   msg,
	}
	for _, field := range fields {
		entry[field.Key()] = field.String()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	enc := json.NewEncoder(p.Writer)
	enc.Encode(entry) //nolint:errcheck // logging is best effort
}

// Discard silently swallows all logs; handy as a default in tests.
var Discard = NewConsoleLogger(discardPrinter{}, func(int) {})

type discardPrinter struct{}

func (discardPrinter) Print(Level, string, Fields) {}
