// Package debuglog configures the file-backed debug logger. The TUI owns
// stdout, so log lines go to a file, and nowhere at all unless a path is
// configured.
package debuglog

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a JSON-formatted logger appending to path. With an empty path
// the logger discards everything, so callers can log unconditionally.
func New(path, level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)

	if path == "" {
		log.SetOutput(io.Discard)
		return log, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("debuglog.New: open %s: %w", path, err)
	}
	log.SetOutput(f)
	return log, nil
}
