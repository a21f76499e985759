package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"airhockey/internal/config"
)

// Log writes through the process-wide logrus logger configured by Init.
var Log = &Logger{entry: logrus.NewEntry(logrus.StandardLogger())}

type Logger struct {
	entry *logrus.Entry
}

var (
	mu      sync.Mutex
	rotator *lumberjack.Logger
)

// Init configures JSON logging at the configured level. With a file set,
// output goes to a size-rotated file; otherwise it goes to stderr.
func Init(cfg config.Log) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stderr
	mu.Lock()
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
	if cfg.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		out = rotator
	}
	mu.Unlock()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(out)
	logrus.SetLevel(level)
	return nil
}

// SetLevel changes the level of a running process, for config reloads.
func SetLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if level != logrus.GetLevel() {
		logrus.SetLevel(level)
		Log.Info(LevelChangedMsg, level)
	}
	return nil
}

// Reload applies the parts of a re-read configuration that can change
// while the process runs. An unusable level keeps the current one.
func Reload(cfg config.Log) {
	Log.Info(ConfigReloadedMsg)
	if err := SetLevel(cfg.Level); err != nil {
		Log.WithError(err).Warn(BadLevelMsg)
	}
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// WithFields returns a logger that adds fields to every entry.
func (l *Logger) WithFields(fields logrus.Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

// WithError returns a logger that records err on every entry.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

func (l *Logger) Trace(format string, args ...any) {
	l.entry.Tracef(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *Logger) Fatal(format string, args ...any) {
	l.entry.Fatalf(format, args...)
}
