// Package logging provides a thread-safe, levelled logger backed by zerolog.
package logging

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Level represents a logging verbosity level.
type Level int

const (
	// LevelDebug emits all messages.
	LevelDebug Level = iota
	// LevelInfo emits INFO and ERROR messages.
	LevelInfo
	// LevelError emits only ERROR messages.
	LevelError
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger is a structured, levelled logger.
//
// Thread-safety: zerolog.Logger itself is safe for concurrent use (the
// underlying io.Writer is expected to serialise its own writes). The mutex
// here only guards the minimum level so SetLevel may be called concurrently
// with logging methods.
type Logger struct {
	base zerolog.Logger
	mu   sync.RWMutex
	lvl  Level
}

// New creates a Logger that writes console-formatted events to stderr at the
// given minimum level.
func New(level Level) *Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return &Logger{
		base: zerolog.New(w).With().Timestamp().Logger(),
		lvl:  level,
	}
}

// SetLevel changes the minimum log level at runtime. Safe for concurrent use.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.lvl = level
	l.mu.Unlock()
}

func (l *Logger) level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lvl
}

// With returns a child Logger whose events carry the given field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{base: l.base.With().Str(key, value).Logger(), lvl: l.level()}
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string) {
	if l.level() <= LevelInfo {
		l.base.Info().Msg(msg)
	}
}

// Infof logs a formatted message at INFO level.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level() <= LevelInfo {
		l.base.Info().Msgf(format, args...)
	}
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string) {
	if l.level() <= LevelError {
		l.base.Error().Msg(msg)
	}
}

// Errorf logs a formatted message at ERROR level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l.level() <= LevelError {
		l.base.Error().Msgf(format, args...)
	}
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string) {
	if l.level() <= LevelDebug {
		l.base.Debug().Msg(msg)
	}
}

// Debugf logs a formatted message at DEBUG level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level() <= LevelDebug {
		l.base.Debug().Msgf(format, args...)
	}
}
