package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
	"github.com/fadedpez/blackjack/internal/types"
)

// Level represents a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var charmLevels = map[Level]charm.Level{
	DEBUG: charm.DebugLevel,
	INFO:  charm.InfoLevel,
	WARN:  charm.WarnLevel,
	ERROR: charm.ErrorLevel,
}

// ParseLevel converts a config value such as "debug" into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "info", "":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Logger is a leveled logger backed by charmbracelet/log
type Logger struct {
	base  *charm.Logger
	level Level
}

// NewLogger creates a logger writing to stderr
func NewLogger(level Level) *Logger {
	return New(os.Stderr, level)
}

// New creates a logger writing to w
func New(w io.Writer, level Level) *Logger {
	base := charm.NewWithOptions(w, charm.Options{
		ReportTimestamp: true,
		ReportCaller:    true,
		CallerOffset:    1,
		TimeFormat:      time.DateTime,
		Level:           charmLevels[level],
	})

	styles := charm.DefaultStyles()
	styles.Levels[charm.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Padding(0, 1, 0, 1).
		Foreground(lipgloss.Color("#006400")).Bold(true)
	styles.Levels[charm.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Padding(0, 1, 0, 1).
		Foreground(lipgloss.Color("#FFD700")).Bold(true)
	styles.Levels[charm.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color("#C80000")).
		Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	base.SetStyles(styles)

	return &Logger{base: base, level: level}
}

// Level returns the minimum level that is emitted
func (l *Logger) Level() Level {
	return l.level
}

// With returns a logger that adds key/value pairs to every entry
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{base: l.base.With(keyvals...), level: l.level}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.base.Debugf(format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.base.Infof(format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.base.Warnf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.base.Errorf(format, v...)
}

// Fatal logs an error message and exits the process
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.base.Fatalf(format, v...)
}

// LogError logs a GameError with appropriate context
func (l *Logger) LogError(err error) {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		context := []string{
			fmt.Sprintf("Code: %s", gameErr.Code),
			fmt.Sprintf("Message: %s", gameErr.Message),
		}
		if gameErr.Err != nil {
			context = append(context, fmt.Sprintf("Cause: %v", gameErr.Err))
		}

		l.Error("Game error occurred:\n\t%s", strings.Join(context, "\n\t"))
	} else {
		l.Error("Unexpected error: %v", err)
	}
}

// Discard returns a logger that drops everything; used by tests
func Discard() *Logger {
	return New(io.Discard, ERROR)
}

// Default logger instance
var Default = NewLogger(INFO)
