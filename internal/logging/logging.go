package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
	slogmulti "github.com/samber/slog-multi"
)

// Options configures the process logger.
type Options struct {
	Level  slog.Level
	Format string // "text" or "json"
	// File, when set, receives a JSON copy of every record through a rolling writer.
	File string
}

// Setup builds the process logger, installs it as slog.Default and returns it
// together with a closer for the file sink (a no-op when no file is configured).
func Setup(opts Options) (*slog.Logger, io.Closer) {
	return setup(os.Stdout, opts)
}

func setup(stdout io.Writer, opts Options) (*slog.Logger, io.Closer) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handlers []slog.Handler
	if opts.Format == "json" {
		handlers = append(handlers, slog.NewJSONHandler(stdout, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(stdout, handlerOpts))
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		handlers = append(handlers, slog.NewJSONHandler(lj, handlerOpts))
		closer = lj
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = slogmulti.Fanout(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
