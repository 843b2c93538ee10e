package internals

import (
	"io"
	"log"
	"os"
)

// Level is a logging verbosity threshold, ordered low to high, matching
// logging.getLogger's DEBUG/INFO/WARNING/ERROR levels.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"WARNING": LevelWarn,
	"ERROR": LevelError,
}

// ParseLevel parses a level name, defaulting to LevelInfo on an unknown or
// empty string.
func ParseLevel(s string) Level {
	if lvl, ok := levelNames[s]; ok {
		return lvl
	}
	return LevelInfo
}

// Logger is a named, leveled logger wrapping the standard log.Logger, in
// place of logging.getLogger(name)'s per-module handler. Every logical
// subsystem can get its own Logger sharing one threshold and one set of
// destinations, logging at the same level but tagged separately in output.
// The CLI creates a single "filesweep" logger.
type Logger struct {
	name  string
	level Level
	std   *log.Logger
}

// NewLogger builds a Logger named name, writing lines at or above level to
// w (os.Stderr if w is nil).
func NewLogger(name string, level Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{name: name, level: level, std: log.New(w, "", log.LstdFlags)}
}

// WithFile returns a Logger that also writes to the given file handle, in
// addition to this Logger's destination, matching init_logger's
// StreamHandler+FileHandler pair.
func (l *Logger) WithFile(f *os.File) *Logger {
	if f == nil {
		return l
	}
	return &Logger{name: l.name, level: l.level, std: log.New(io.MultiWriter(l.std.Writer(), f), "", log.LstdFlags)}
}

func (l *Logger) emit(level Level, tag, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.std.Printf("%-5s [%s] "+format, append([]interface{}{tag, l.name}, args...)...)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.emit(LevelDebug, "DEBUG", format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.emit(LevelInfo, "INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.emit(LevelWarn, "WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.emit(LevelError, "ERROR", format, args...) }

// StdLogger exposes the underlying *log.Logger for components (like the
// decision engine) that take a plain *log.Logger rather than this type.
func (l *Logger) StdLogger() *log.Logger { return l.std }
