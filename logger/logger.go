// Package logger provides the leveled diagnostics printed by remscan.
//
// Messages go to a writer (normally stderr) as "[HH:MM:SS] [LEVEL] message"
// lines, so they never mix with the reminders printed on stdout. Level
// names are colored when the writer is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

var levelColors = map[Level]color.Attribute{
	LevelTrace: color.FgHiBlack,
	LevelDebug: color.FgCyan,
	LevelInfo:  color.FgBlue,
	LevelWarn:  color.FgYellow,
	LevelError: color.FgRed,
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a level name (trace, debug, info, warn, error) to a
// Level. Case and surrounding whitespace are ignored.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("invalid log level %q (want trace, debug, info, warn or error)", s)
}

// Logger writes leveled messages to a writer. It is safe for concurrent
// use. A nil *Logger, or one with a nil writer, discards everything.
type Logger struct {
	writer      io.Writer
	level       Level
	colorOutput bool
	mutex       sync.Mutex
	now         func() time.Time
}

// New creates a Logger writing messages at level or above to w.
// Level names are colored when w is a terminal and NO_COLOR is unset.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		writer:      w,
		level:       level,
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l *Logger) Tracef(format string, args ...any) { l.logf(LevelTrace, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && l.writer != nil && level >= l.level
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	msg := fmt.Sprintf(format, args...)
	name := level.String()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	ts := l.now().Format("15:04:05")
	if l.colorOutput {
		c := color.New(levelColors[level])
		c.EnableColor()
		name = c.Sprint(name)
	}
	fmt.Fprintf(l.writer, "[%s] [%s] %s\n", ts, name, strings.TrimRight(msg, "\n"))
}
