// Package logger configures the structured diagnostic logger.
// Diagnostics go to stderr; reports are written separately to stdout.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures a logger.
type Options struct {
	Level string // "debug", "info", "warn", "error" (default "warn")
	JSON  bool   // JSON lines instead of key=value text
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(ParseLevel(opts.Level))

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			DisableQuote:     true,
		})
	}
	return l
}

// ParseLevel maps a level name to a logrus level, defaulting to warn.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
