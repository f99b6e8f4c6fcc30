package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/limaJavier/stratmps/internal/config"
)

// New builds a logger writing to out, tagged with component. An unknown level falls back to info.
func New(out io.Writer, cfg config.LoggingConfig, component string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	writer := out
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Str("component", component).Logger()
}
