// Package logger is the process-wide leveled logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	module     = "swipe"
	timeFormat = "2006/01/02 15:04:05"
)

var logger *logging.Logger

func init() {
	InitLogger(logging.INFO)
}

// InitLogger installs a stderr backend at the given level.
func InitLogger(level logging.Level) {
	InitLoggerTo(os.Stderr, level)
}

// InitLoggerTo installs a backend writing to w. Tests use it to capture output.
func InitLoggerTo(w io.Writer, level logging.Level) {
	newLogger := logging.MustGetLogger(module)

	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:`+timeFormat+`} %{level:.4s} - %{message}`,
	))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, module)

	newLogger.SetBackend(leveled)
	logger = newLogger
}

// ParseLevel maps a LOG_LEVEL value to a logging level, defaulting to INFO.
func ParseLevel(s string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warn":
		return logging.WARNING
	case "":
		return logging.INFO
	}
	level, err := logging.LogLevel(strings.ToUpper(s))
	if err != nil {
		return logging.INFO
	}
	return level
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Fatalf logs at CRITICAL and exits.
func Fatalf(format string, args ...any) {
	logger.Criticalf(format, args...)
	os.Exit(1)
}

// Writer adapts the logger to an io.Writer at INFO level, one entry per write.
// gin's access log and gorm's logger write through it.
type Writer struct{}

func (Writer) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		logger.Info(msg)
	}
	return len(p), nil
}

// Printf satisfies gorm's logger.Writer.
func (Writer) Printf(format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...))
}
