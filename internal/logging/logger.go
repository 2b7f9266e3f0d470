// Package logging provides named, leveled loggers shared by the whole process.
// Every logger writes the same line format to stdout and to a size-rotated
// daily file under the configured log directory.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is the severity of a log line.
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
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

const (
	timeLayout = "2006-01-02 15:04:05"

	// rotation: 1 MB per file, 5 archives kept
	maxFileSizeMB = 1
	maxBackups    = 5
)

var (
	mu       sync.Mutex
	registry = make(map[string]*Logger)
	logDir   = "logs"
	minLevel = LevelInfo

	// file is opened on first use and shared by every named logger.
	file *lumberjack.Logger

	stdout io.Writer = os.Stdout
	now              = time.Now
)

// Logger writes leveled lines tagged with its name.
type Logger struct {
	name    string
	level   Level
	outputs []io.Writer
	std     *log.Logger
}

// Configure sets the log directory and minimum level for loggers created
// afterwards. Loggers that already exist keep their configuration.
func Configure(dir, level string) {
	mu.Lock()
	defer mu.Unlock()

	if dir != "" {
		logDir = dir
	}
	minLevel = ParseLevel(level)
}

// ParseLevel maps DEBUG, INFO, WARN/WARNING and ERROR (case-insensitive)
// to a Level. Anything else is INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Get returns the logger registered under name, creating it on first use.
// Repeated calls return the same logger and never attach extra outputs.
func Get(name string) *Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := registry[name]; ok {
		return l
	}

	outputs := []io.Writer{stdout}
	if f := sharedFile(); f != nil {
		outputs = append(outputs, f)
	}

	l := &Logger{
		name:    name,
		level:   minLevel,
		outputs: outputs,
		std:     log.New(io.MultiWriter(outputs...), "", 0),
	}
	registry[name] = l
	return l
}

// sharedFile lazily opens the rotating file named after the current UTC
// date. Callers must hold mu.
func sharedFile() *lumberjack.Logger {
	if file != nil {
		return file
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "logging: cannot create log directory %s: %v\n", logDir, err)
		return nil
	}
	file = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, fmt.Sprintf("etl_%s.log", now().UTC().Format("20060102"))),
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxBackups,
	}
	return file
}

// Name returns the name the logger was registered under.
func (l *Logger) Name() string { return l.name }

// Handlers reports how many destinations the logger writes to.
func (l *Logger) Handlers() int { return len(l.outputs) }

// Writer exposes the combined destinations, e.g. for HTTP access logs.
func (l *Logger) Writer() io.Writer { return l.std.Writer() }

// Enabled reports whether lines at lvl are written.
func (l *Logger) Enabled(lvl Level) bool { return lvl >= l.level }

func (l *Logger) logf(lvl Level, format string, v ...any) {
	if !l.Enabled(lvl) {
		return
	}
	msg := fmt.Sprintf(format, v...)
	l.std.Printf("%s | %s | %s | %s", now().Format(timeLayout), l.name, lvl, msg)
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LevelError, format, v...) }
