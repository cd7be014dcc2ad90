package logging

import (
	"log/slog"
	"os"
)

// New builds the service logger: JSON in production, readable text
// everywhere else. Every line carries the service name so the intake API is
// distinguishable when logs are aggregated.
func New(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case "prod", "production":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	}

	return slog.New(handler).With("service", "autoquote")
}
