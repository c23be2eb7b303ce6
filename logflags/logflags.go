package logflags

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	enabled           = false
	level             = logrus.InfoLevel
	out     io.Writer = os.Stderr
)

func makeLogger(fields logrus.Fields) *logrus.Entry {
	logger := logrus.New()
	logger.Out = out
	logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	logger.Level = level
	if !enabled {
		logger.Level = logrus.PanicLevel
	}
	return logger.WithFields(fields)
}

// CacheLogger returns a logger for the sharded cache.
func CacheLogger() *logrus.Entry {
	return makeLogger(logrus.Fields{"layer": "cache"})
}

// WritebackLogger returns a logger for the write policies.
func WritebackLogger() *logrus.Entry {
	return makeLogger(logrus.Fields{"layer": "writepolicy"})
}

// CmdLogger returns a logger for the command line tool.
func CmdLogger() *logrus.Entry {
	return makeLogger(logrus.Fields{"layer": "cmd"})
}

// Enabled reports whether logging was turned on by Setup.
func Enabled() bool {
	return enabled
}

// Setup turns logging on or off and sets the level used by every logger
// created afterwards. An empty levelName keeps the info level.
func Setup(logFlag bool, levelName string) error {
	enabled = logFlag
	level = logrus.InfoLevel
	if levelName == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	level = lvl
	return nil
}

// SetOutput redirects every logger created afterwards to w.
func SetOutput(w io.Writer) {
	out = w
}
