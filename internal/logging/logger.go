// Package logging provides the console or file logger handed to sessions.
//
// A SessionLogger is configured once at construction; its sink, name,
// level and color mode never change afterwards.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is the severity of a log line.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name, case-insensitively, to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return Debug, nil
	case "", "INFO":
		return Info, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "ERROR":
		return Error, nil
	}
	return Info, fmt.Errorf("unknown log level %q", s)
}

// ColorMode decides whether level and action markers are colored.
type ColorMode int

const (
	// ColorAuto colors output only when the sink is a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// DefaultName is the logger name used when Config.Name is empty.
const DefaultName = "sockhttp"

const timeLayout = "2006-01-02 15:04:05,000"

// Config describes a SessionLogger.
type Config struct {
	// Name appears in every line.
	Name string
	// File, when set, is opened in append mode and takes precedence over Writer.
	File string
	// Writer is the sink when File is empty. Nil means os.Stdout.
	Writer io.Writer
	// Level is the minimum level written.
	Level Level
	Color ColorMode
}

// SessionLogger writes lines of the form
//
//	2024-01-02 15:04:05,000 - sockhttp - INFO: message
//
// It is safe for concurrent use.
type SessionLogger struct {
	name   string
	min    Level
	out    io.Writer
	closer io.Closer

	levelColors map[Level]*color.Color
	action      *color.Color

	mu  sync.Mutex
	now func() time.Time
}

// New builds a SessionLogger from cfg.
func New(cfg Config) (*SessionLogger, error) {
	l := &SessionLogger{
		name: cfg.Name,
		min:  cfg.Level,
		out:  cfg.Writer,
		now:  time.Now,
	}
	if l.name == "" {
		l.name = DefaultName
	}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.out = f
		l.closer = f
	}
	if l.out == nil {
		l.out = os.Stdout
	}

	useColor := cfg.Color == ColorAlways || (cfg.Color == ColorAuto && isTerminal(l.out) && os.Getenv("NO_COLOR") == "")
	l.levelColors = map[Level]*color.Color{
		Debug: color.New(color.FgHiBlack),
		Info:  color.New(color.FgGreen),
		Warn:  color.New(color.FgYellow, color.Bold),
		Error: color.New(color.FgRed, color.Bold),
	}
	l.action = color.New(color.FgCyan, color.Bold)
	for _, c := range append(colorsOf(l.levelColors), l.action) {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return l, nil
}

// Stdout returns a logger writing to standard output with default settings.
func Stdout() *SessionLogger {
	l, _ := New(Config{})
	return l
}

func colorsOf(m map[Level]*color.Color) []*color.Color {
	out := make([]*color.Color, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

// Info logs message at Info level, preceded by a marker line naming
// action when action is non-empty.
func (l *SessionLogger) Info(message, action string) {
	if action != "" {
		l.Logf(Info, "Performing %s action: ", l.action.Sprint(action))
	}
	l.Logf(Info, "%s", message)
}

// Logf writes one formatted line if level is at or above the minimum.
func (l *SessionLogger) Logf(level Level, format string, args ...interface{}) {
	if level < l.min {
		return
	}
	c, ok := l.levelColors[level]
	if !ok {
		c = l.levelColors[Info]
	}
	line := fmt.Sprintf("%s - %s - %s: %s\n",
		l.now().Format(timeLayout), l.name, c.Sprint(level.String()), fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, line)
}

// Close releases the log file, if the logger opened one.
func (l *SessionLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
