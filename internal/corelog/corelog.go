// Package corelog wraps logrus with the field conventions the machfmt CLI
// uses. It is CLI-only: the core parser/format/transform packages never log,
// so embedding machparse in a server doesn't impose a logging framework on
// the host.
package corelog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus.Logger configured for CLI use: text output on
// stderr, level driven by the MACHFMT_LOG_LEVEL env var (defaulting to
// "info").
func New() *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}

	level, err := logrus.ParseLevel(os.Getenv("MACHFMT_LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.Level = level

	return log
}

// WithSource annotates an entry with the SQL source location a command
// operated on — a file path, or "-" for stdin.
func WithSource(log *logrus.Logger, source string) *logrus.Entry {
	return log.WithField("source", source)
}
