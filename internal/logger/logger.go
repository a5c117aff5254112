package logger

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init initializes the default zerolog logger writing structured JSON to
// os.Stderr. It ensures that the logger is initialized only once.
func Init() {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339
		defaultLogger = zerolog.New(os.Stderr).With().
			Timestamp().
			Logger()
	})
}

// SetLevel parses level (e.g. "debug", "info", "warn", "error") and applies
// it globally. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Get returns the initialized default logger. It calls Init() to ensure the
// logger is ready before returning it.
func Get() *zerolog.Logger {
	Init()
	return &defaultLogger
}

// Info logs an informational message with alternating key/value fields.
func Info(msg string, args ...any) {
	withFields(Get().Info(), args).Msg(msg)
}

// Warn logs a warning message with alternating key/value fields.
func Warn(msg string, args ...any) {
	withFields(Get().Warn(), args).Msg(msg)
}

// Error logs an error message with alternating key/value fields.
func Error(msg string, err error, args ...any) {
	withFields(Get().Error().Err(err), args).Msg(msg)
}

// Debug logs a debug message with alternating key/value fields.
func Debug(msg string, args ...any) {
	withFields(Get().Debug(), args).Msg(msg)
}

func withFields(evt *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		evt = evt.Interface(key, args[i+1])
	}
	return evt
}
