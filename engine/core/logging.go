package core

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/natefinch/lumberjack"
)

type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// ParseLogLevel maps a level name to a LogLevel. Unknown names fall back to info.
func ParseLogLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}

func (l LogLevel) charm() log.Level {
	switch l {
	case DebugLevel:
		return log.DebugLevel
	case WarnLevel:
		return log.WarnLevel
	case ErrorLevel:
		return log.ErrorLevel
	case FatalLevel:
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// LogOptions configures the engine logger. An empty File logs to stderr only.
type LogOptions struct {
	Level      LogLevel
	File       string
	MaxSizeMB  int
	MaxBackups int
}

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

var (
	rotatorMu sync.Mutex
	rotator   *lumberjack.Logger
)

func newLogger(w io.Writer) *logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "Prism 🔷",
		// the helpers below add one frame
		CallerOffset: 1,
	})
	l.SetLevel(log.InfoLevel)
	return &logger{l}
}

func getLogger() *logger {
	if singleton == nil {
		once.Do(func() {
			singleton = newLogger(os.Stderr)
		})
	}
	return singleton
}

// LogConfigure replaces the engine logger. Safe to call before any other
// logging happens; later calls swap the writer and level in place and close
// the previous log file.
func LogConfigure(opts LogOptions) {
	var w io.Writer = os.Stderr
	var next *lumberjack.Logger
	if opts.File != "" {
		next = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}
		w = io.MultiWriter(os.Stderr, next)
	}
	l := getLogger()
	l.SetOutput(w)
	l.SetLevel(opts.Level.charm())

	rotatorMu.Lock()
	prev := rotator
	rotator = next
	rotatorMu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}

// LogLevelCurrent returns the minimum level of the engine logger.
func LogLevelCurrent() LogLevel {
	switch getLogger().GetLevel() {
	case log.DebugLevel:
		return DebugLevel
	case log.WarnLevel:
		return WarnLevel
	case log.ErrorLevel:
		return ErrorLevel
	case log.FatalLevel:
		return FatalLevel
	default:
		return InfoLevel
	}
}

// LogSetLevel changes the minimum level of the engine logger.
func LogSetLevel(level LogLevel) {
	getLogger().SetLevel(level.charm())
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
