package pebbledb

import (
	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"
)

// specific pebbledb options
type Config struct {
	Dir           string
	PebbleConfigs *pebble.Options
	// defaults to pebble.Sync
	WriteOptions *pebble.WriteOptions
	Logger       zerolog.Logger
}

func DefaultOptions(dir string) *Config {
	return &Config{Dir: dir, WriteOptions: pebble.Sync, Logger: zerolog.Nop()}
}
