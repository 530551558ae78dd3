package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the process logger. Console format by default; set
// LOG_FORMAT=json for machine-readable output.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if os.Getenv("LOG_FORMAT") == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	return logger.Level(lvl).With().Timestamp().Str("service", "ficha-generator").Logger()
}
