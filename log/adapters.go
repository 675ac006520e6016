package log

import (
	"strings"

	"github.com/rs/zerolog"
)

// PebbleLogger satisfies pebble.Logger.
type PebbleLogger struct {
	zerolog.Logger
}

func (l PebbleLogger) Infof(format string, args ...interface{}) {
	l.Info().Msgf(trim(format), args...)
}

func (l PebbleLogger) Errorf(format string, args ...interface{}) {
	l.Error().Msgf(trim(format), args...)
}

// Fatalf does not return, matching pebble's expectation.
func (l PebbleLogger) Fatalf(format string, args ...interface{}) {
	l.Fatal().Msgf(trim(format), args...)
}

// BadgerLogger satisfies badger.Logger.
type BadgerLogger struct {
	zerolog.Logger
}

func (l BadgerLogger) Errorf(format string, args ...interface{}) {
	l.Error().Msgf(trim(format), args...)
}

func (l BadgerLogger) Warningf(format string, args ...interface{}) {
	l.Warn().Msgf(trim(format), args...)
}

func (l BadgerLogger) Infof(format string, args ...interface{}) {
	l.Info().Msgf(trim(format), args...)
}

func (l BadgerLogger) Debugf(format string, args ...interface{}) {
	l.Debug().Msgf(trim(format), args...)
}

// engines terminate most format strings with a newline
func trim(format string) string {
	return strings.TrimRight(format, "\n")
}
