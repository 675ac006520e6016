package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type LoggerType uint8

const (
	ConsoleLogger LoggerType = iota
	JSONLogger
)

// Every logger is a no-op until Init is called.
var (
	Root    = zerolog.Nop()
	Storage = zerolog.Nop()
	Engine  = zerolog.Nop()
)

// Options for Init
type Options struct {
	// default Info
	LogLevel zerolog.Level
	Type     LoggerType
	// Out defaults to os.Stdout
	Out io.Writer
}

func ParseLogLevel(loglevel string) (zerolog.Level, error) {
	return zerolog.ParseLevel(loglevel)
}

// Init builds Root and the component loggers derived from it.
func Init(opts Options) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	switch opts.Type {
	case ConsoleLogger:
		Root = zerolog.New(newConsoleWriter(out)).Level(opts.LogLevel).
			With().Timestamp().Logger()
	default:
		Root = zerolog.New(out).Level(opts.LogLevel).
			With().Timestamp().Logger()
	}
	Storage = Root.With().Str("component", "storage").Logger()
	Engine = Root.With().Str("component", "engine").Logger()
}

func newConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}

	cw.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	cw.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("message: \"%s\" |", i)
	}
	cw.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("\"%s\": ", i)
	}
	cw.FormatFieldValue = func(i interface{}) string {
		return fmt.Sprintf("\"%s\" |", i)
	}
	return cw
}
