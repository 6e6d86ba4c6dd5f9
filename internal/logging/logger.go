// Package logging provides leveled, structured logging backed by zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field                 { return Field{Key: key, Value: value} }
func Int(key string, value int) Field                { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field        { return Field{Key: key, Value: value} }
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }
func Err(err error) Field                            { return Field{Key: "error", Value: err} }

// Logger writes leveled log lines tagged with a component name.
type Logger struct {
	base zerolog.Logger
	zl   zerolog.Logger
}

// ParseLevel converts ERROR/WARN/INFO/DEBUG/TRACE (any case) to a level.
// Unknown values map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "ERROR":
		return zerolog.ErrorLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "TRACE":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a logger writing JSON lines to w.
func NewLogger(w io.Writer, component string, level zerolog.Level) *Logger {
	base := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{base: base, zl: base.With().Str("component", component).Logger()}
}

// NewDefaultLogger creates a stderr logger whose level comes from LOG_LEVEL.
func NewDefaultLogger(component string) *Logger {
	return NewLogger(os.Stderr, component, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewConsoleLogger creates a human-readable logger for terminals.
func NewConsoleLogger(w io.Writer, component string, level zerolog.Level) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return NewLogger(cw, component, level)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop(), zl: zerolog.Nop()}
}

// With returns a child logger tagged with a different component.
func (l *Logger) With(component string) *Logger {
	return &Logger{base: l.base, zl: l.base.With().Str("component", component).Logger()}
}

func (l *Logger) Error(msg string, err error, fields ...Field) {
	applyFields(l.zl.Error().Err(err), fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...Field) {
	applyFields(l.zl.Warn(), fields).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...Field) {
	applyFields(l.zl.Info(), fields).Msg(msg)
}

func (l *Logger) Debug(msg string, fields ...Field) {
	applyFields(l.zl.Debug(), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

func applyFields(event *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			event = event.Str(f.Key, v)
		case int:
			event = event.Int(f.Key, v)
		case int64:
			event = event.Int64(f.Key, v)
		case float64:
			event = event.Float64(f.Key, v)
		case bool:
			event = event.Bool(f.Key, v)
		case time.Duration:
			event = event.Dur(f.Key, v)
		case error:
			event = event.AnErr(f.Key, v)
		default:
			event = event.Interface(f.Key, v)
		}
	}
	return event
}
