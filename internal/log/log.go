// Package log provides structured logging for signup.
// It writes level/category tagged lines with key=value fields to a debug log
// file, keeps the most recent entries in memory for the in-app log overlay,
// and is only active when enabled via --debug or SIGNUP_DEBUG.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/signup/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatForm    Category = "form"    // Form state changes and field validation
	CatGate    Category = "gate"    // Whole-form validity recomputation
	CatSubmit  Category = "submit"  // Registration submission
	CatConfig  Category = "config"  // Configuration loading/reloading
	CatWatcher Category = "watcher" // Config file watcher events
	CatUI      Category = "ui"      // UI component updates
	CatCache   Category = "cache"   // cache operations
	CatStub    Category = "stub"    // Local stub registration server
)

// DefaultBufferSize is the number of entries kept for the log overlay.
const DefaultBufferSize = 500

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	buffer   []string
	capacity int
	broker   *pubsub.Broker[string]
}

var (
	loggerMu      sync.RWMutex
	defaultLogger *Logger
)

// Init opens path for appending and installs it as the global logger.
// Returns a cleanup function that closes the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is user-controlled debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(newLogger(f, f))
	return func() { _ = f.Close() }, nil
}

// InitWithTeaLog initializes the global logger through tea.LogToFile so the
// standard library logger used by Bubble Tea shares the same file.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	install(newLogger(f, f))
	return func() { _ = f.Close() }, nil
}

// InitWriter installs a logger writing to w. Used by tests and by commands
// that log to stderr.
func InitWriter(w io.Writer) {
	install(newLogger(nil, w))
}

func newLogger(f *os.File, w io.Writer) *Logger {
	return &Logger{
		file:     f,
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		capacity: DefaultBufferSize,
		broker:   pubsub.NewBroker[string](),
	}
}

func install(l *Logger) {
	loggerMu.Lock()
	old := defaultLogger
	defaultLogger = l
	loggerMu.Unlock()
	if old != nil && old.broker != nil {
		old.broker.Close()
	}
}

func current() *Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	if !l.enabled || level < l.minLevel {
		l.mu.Unlock()
		return
	}

	entry := format(time.Now(), level, cat, msg, fields...)

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry+"\n")
	}

	l.buffer = append(l.buffer, entry)
	if over := len(l.buffer) - l.capacity; over > 0 {
		l.buffer = l.buffer[over:]
	}
	l.mu.Unlock()

	l.broker.Publish(pubsub.CreatedEvent, entry)
}

// format renders one entry:
// 2025-12-06T10:45:00 [ERROR] [submit] message key=value key2=value2
func format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

// Entries returns a copy of the buffered entries, oldest first.
func Entries() []string {
	l := current()
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.buffer))
	copy(out, l.buffer)
	return out
}

// ClearBuffer drops all buffered entries. The log file is untouched.
func ClearBuffer() {
	if l := current(); l != nil {
		l.mu.Lock()
		l.buffer = nil
		l.mu.Unlock()
	}
}

// ParseLevel extracts the level from a formatted entry.
// Entries without a recognizable level are treated as debug.
func ParseLevel(entry string) Level {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return LevelError
	case strings.Contains(entry, "[WARN]"):
		return LevelWarn
	case strings.Contains(entry, "[INFO]"):
		return LevelInfo
	default:
		return LevelDebug
	}
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener creates a new log event listener.
// Returns nil when logging has not been initialized.
func NewListener(ctx context.Context) *LogListener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, l.broker)
}
