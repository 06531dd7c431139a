// Package log is the leveled logger used across the solver.
//
// Nothing is written until a logger is installed with Default, New or
// SetLogger, so library users stay silent unless they opt in. Binaries call
// Default (or New) once at start.
package log

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/neuronlabs/uni-logger"
)

const (
	// LDEBUG is the logger DEBUG level.
	LDEBUG = unilogger.DEBUG
	// LINFO is the logger INFO level.
	LINFO = unilogger.INFO
	// LWARNING is the logger WARNING level.
	LWARNING = unilogger.WARNING
	// LERROR is the logger ERROR level.
	LERROR = unilogger.ERROR
	// LCRITICAL is the logger CRITICAL level.
	LCRITICAL = unilogger.CRITICAL
	// LUNKNOWN is the unspecified logger level.
	LUNKNOWN = unilogger.UNKNOWN
)

// ErrUnknownLevel is returned for level names ParseLevel does not know.
var ErrUnknownLevel = errors.New("unknown log level")

var (
	logger       unilogger.LeveledLogger
	currentLevel = LINFO
)

// Default creates and sets a unilogger.BasicLogger writing to os.Stderr.
func Default() {
	basic := unilogger.NewBasicLogger(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	basic.SetOutputDepth(4)
	SetLogger(basic)
}

// New creates and sets a basic logger writing to out.
func New(out io.Writer, prefix string, flags int) {
	basic := unilogger.NewBasicLogger(out, prefix, flags)
	basic.SetOutputDepth(4)
	SetLogger(basic)
}

// SetLogger installs l as the package logger, keeping the current level.
func SetLogger(l unilogger.LeveledLogger) {
	logger = l
	if setter, ok := l.(unilogger.LevelSetter); ok {
		setter.SetLevel(currentLevel)
	}
}

// Logger returns the installed logger, or nil.
func Logger() unilogger.LeveledLogger {
	return logger
}

// Level returns the current level.
func Level() unilogger.Level {
	return currentLevel
}

// SetLevel sets the level of the installed logger.
func SetLevel(level unilogger.Level) error {
	if level == LUNKNOWN {
		return fmt.Errorf("%w: can't set unknown logger level", ErrUnknownLevel)
	}
	currentLevel = level
	if logger == nil {
		return nil
	}
	setter, ok := logger.(unilogger.LevelSetter)
	if !ok {
		return errors.New("logger doesn't implement LevelSetter interface")
	}
	setter.SetLevel(level)
	return nil
}

// ParseLevel resolves a level name: debug, info, warning (warn), error, critical (fatal).
func ParseLevel(s string) (unilogger.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LDEBUG, nil
	case "info":
		return LINFO, nil
	case "warning", "warn":
		return LWARNING, nil
	case "error":
		return LERROR, nil
	case "critical", "fatal":
		return LCRITICAL, nil
	default:
		return LUNKNOWN, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// Debugf writes the formatted LDEBUG level log.
func Debugf(format string, args ...interface{}) {
	if logger != nil {
		logger.Debugf(format, args...)
	}
}

// Debug writes the LDEBUG level log.
func Debug(args ...interface{}) {
	if logger != nil {
		logger.Debug(args...)
	}
}

// Infof writes the formatted LINFO level log.
func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

// Info writes the LINFO level log.
func Info(args ...interface{}) {
	if logger != nil {
		logger.Info(args...)
	}
}

// Warningf writes the formatted LWARNING level log.
func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(format, args...)
	}
}

// Warning writes the LWARNING level log.
func Warning(args ...interface{}) {
	if logger != nil {
		logger.Warning(args...)
	}
}

// Errorf writes the formatted LERROR level log.
func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}

// Error writes the LERROR level log.
func Error(args ...interface{}) {
	if logger != nil {
		logger.Error(args...)
	}
}

// Fatalf writes the formatted LCRITICAL level log and exits.
func Fatalf(format string, args ...interface{}) {
	if logger != nil {
		logger.Fatalf(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Fatal writes the LCRITICAL level log and exits.
func Fatal(args ...interface{}) {
	if logger != nil {
		logger.Fatal(args...)
		return
	}
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}
