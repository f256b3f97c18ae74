package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/jwebster45206/txr-engine/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds the slog logger based on environment.
// Logs go to stderr so they never mix with game text on stdout; when
// LogFile is set they are also written to a rotating file.
func Setup(cfg *config.Config) *slog.Logger {
	return slog.New(handler(cfg, os.Stderr))
}

func handler(cfg *config.Config, console io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	w := console
	if cfg.LogFile != "" {
		w = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	if cfg.Environment == "production" {
		// JSON format for production
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Install builds the logger and sets it as the slog default.
func Install(cfg *config.Config) *slog.Logger {
	logger := Setup(cfg)
	slog.SetDefault(logger)
	return logger
}

// WithRunID adds a script run ID to the logger context
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With("run_id", runID)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
