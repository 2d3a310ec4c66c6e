package synthscope

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

func ResolveLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// NewLogger writes text logs to path, or discards them when path is empty;
// the terminal host owns stdout and stderr while it runs. Close the returned
// closer when done.
func NewLogger(level, path string) (*slog.Logger, io.Closer, error) {
	logLevel, err := ResolveLogLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var out io.WriteCloser = nopCloser{io.Discard}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to open log file")
		}
		out = f
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler), out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
