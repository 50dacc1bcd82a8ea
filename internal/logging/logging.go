package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// LogLevel orders message severities. Comparisons rely on the declared
// order: a message is emitted when its level is at or above the
// configured one.
type LogLevel int

const (
	// LevelDebug includes per-file organize and cache decisions.
	LevelDebug LogLevel = iota
	// LevelInfo is the default operational level.
	LevelInfo
	// LevelWarn covers recoverable problems (unreadable paths,
	// watcher registration failures).
	LevelWarn
	// LevelError covers failures that lose a request or a subsystem.
	LevelError
)

var (
	currentLevel LogLevel
	levelOnce    sync.Once
)

// levelFromEnv derives the log level from the environment. DEBUG takes
// precedence over LOG_LEVEL so a one-off `DEBUG=1` run needs no other
// changes; unrecognized values land on Info.
func levelFromEnv(debug, level string) LogLevel {
	switch strings.ToLower(debug) {
	case "1", "true", "yes", "on":
		return LevelDebug
	}

	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// GetLevel returns the configured log level, reading the environment on
// first use. The level is fixed for the life of the process.
func GetLevel() LogLevel {
	levelOnce.Do(func() {
		currentLevel = levelFromEnv(os.Getenv("DEBUG"), os.Getenv("LOG_LEVEL"))
	})
	return currentLevel
}

// IsDebugEnabled reports whether debug messages are being emitted.
// Callers use it to skip building expensive debug-only arguments.
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// Debug logs per-item pipeline detail. Silent unless DEBUG is truthy or
// LOG_LEVEL=debug.
func Debug(format string, args ...interface{}) {
	logAt(LevelDebug, "[DEBUG] ", format, args...)
}

// Info logs operational messages.
func Info(format string, args ...interface{}) {
	logAt(LevelInfo, "[INFO] ", format, args...)
}

// Warn logs recoverable problems.
func Warn(format string, args ...interface{}) {
	logAt(LevelWarn, "[WARN] ", format, args...)
}

// Error logs failures.
func Error(format string, args ...interface{}) {
	logAt(LevelError, "[ERROR] ", format, args...)
}

func logAt(level LogLevel, prefix, format string, args ...interface{}) {
	if GetLevel() <= level {
		log.Printf(prefix+format, args...)
	}
}

// Fatal logs at the highest severity and terminates the process. Not
// suppressible by level; reserved for startup failures.
func Fatal(format string, args ...interface{}) {
	log.Fatalf("[FATAL] "+format, args...)
}

// Printf writes an unleveled, unprefixed line. The startup banner uses
// it so the banner survives any level setting.
func Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// Println writes an unleveled line.
func Println(args ...interface{}) {
	log.Println(args...)
}

// String returns the level name as accepted by LOG_LEVEL.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}
