// Package log provides a small package-level logging facade for booktidy,
// backed by logrus. Diagnostics go to stderr; user-facing output is handled
// by the cli package, not here.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetDebug toggles debug-level logging
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output, primarily for tests
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Info logs a formatted informational message
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a formatted debug message
func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warn logs a formatted warning message
func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
