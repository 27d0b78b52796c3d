// Package logger wraps zerolog behind a small key-value API so kernel code
// never touches the event builder directly.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. The init default writes console output at
// info level; Setup replaces it from configuration.
var Log *Logger

type Logger struct {
	z zerolog.Logger
}

func init() {
	Log = &Logger{z: newRoot(writer("console"))}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Setup reconfigures the global logger. level is one of debug/info/warn/
// error (case-insensitive, anything else means info); format is "json" for
// machine-readable output, anything else gets the console writer.
func Setup(level, format string) {
	zerolog.SetGlobalLevel(parseLevel(level))
	Log = &Logger{z: newRoot(writer(format))}
}

// Component returns a child logger that stamps every event with a component
// name, e.g. "sin" or "metrics".
func (l *Logger) Component(name string) *Logger {
	return &Logger{z: l.z.With().Str("component", name).Logger()}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func writer(format string) io.Writer {
	if strings.ToLower(format) == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

func newRoot(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Info logs at info level. args are alternating key-value pairs.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.emit(l.z.Info(), msg, args)
}

// Debug logs at debug level. args are alternating key-value pairs.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.emit(l.z.Debug(), msg, args)
}

// Warn logs at warn level. args are alternating key-value pairs.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.emit(l.z.Warn(), msg, args)
}

// Error logs at error level. args are alternating key-value pairs.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.emit(l.z.Error(), msg, args)
}

// emit attaches the key-value pairs to the event and fires it. Non-string
// keys are stringified; a trailing orphan value is dropped.
func (l *Logger) emit(e *zerolog.Event, msg string, args []interface{}) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		e.Interface(key, args[i+1])
	}
	e.Msg(msg)
}
