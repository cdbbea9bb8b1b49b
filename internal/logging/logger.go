package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"afterhourshvac/internal/config"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger from the logging settings.
// Defaults to JSON at info level on stdout.
func New(cfg config.LoggingConfig, app config.AppConfig) zerolog.Logger {
	return NewWithWriter(os.Stdout, cfg, app)
}

func NewWithWriter(w io.Writer, cfg config.LoggingConfig, app config.AppConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	output := w
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", app.Name).
		Str("env", app.Environment).
		Str("version", app.Version).
		Logger()
}
