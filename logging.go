package starter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured JSON logger used throughout the package.
// A nil *Logger is valid and discards everything.
type Logger = logiface.Logger[*stumpy.Event]

// ParseLevel maps a level name to a logiface level.
func ParseLevel(name string) (logiface.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return logiface.LevelDebug, nil
	case "info", "":
		return logiface.LevelInformational, nil
	case "warning", "warn":
		return logiface.LevelWarning, nil
	case "error":
		return logiface.LevelError, nil
	case "disabled", "off", "none":
		return logiface.LevelDisabled, nil
	}
	return logiface.LevelDisabled, fmt.Errorf("unknown log level %q", name)
}

// NewLogger returns a JSON logger writing to w at the named level.
// A nil w writes to os.Stderr.
func NewLogger(w io.Writer, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(lvl),
	), nil
}
