package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New is the JSON service logger. LOG_LEVEL picks the level; anything
// unparseable falls back to info.
func New() zerolog.Logger {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return JSON(os.Stdout, level)
}

func JSON(out io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Str("service", "golfstats").
		Logger().
		Level(level)
}

// Console is a human-readable logger on stderr for command line use, so
// stdout stays free for command output.
func Console(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger().
		Level(level)
}
