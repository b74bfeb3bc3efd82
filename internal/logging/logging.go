// Package logging configures the diagnostic logger. Diagnostics go to stderr
// so command results on stdout stay clean for scripting.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

const DefaultLevel = "warn"

// New returns a text logger writing to out. An unknown level falls back to
// DefaultLevel with a warning.
func New(out io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == "" {
		level = DefaultLevel
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.WarnLevel)
		log.Warnf("invalid log level %s, defaulting to %s", level, DefaultLevel)
		return log
	}

	log.SetLevel(parsed)
	return log
}
