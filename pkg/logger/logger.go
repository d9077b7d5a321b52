package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the process-wide structured logger. It starts as slog's default so
// packages can log before Init runs (tests, early startup).
var Log = slog.Default()

// Init switches Log to the JSON handler used in production and tags every
// entry with the service name.
func Init(serviceName string, level slog.Level) {
	InitWithWriter(os.Stdout, serviceName, level)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(w io.Writer, serviceName string, level slog.Level) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}).WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}
