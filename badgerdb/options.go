package badgerdb

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// specific badgerdb options
type Config struct {
	Dir           string
	InMemory      bool
	BadgerConfigs *badger.Options
	Logger        zerolog.Logger
}

func DefaultOptions(Dir string) *Config {
	return &Config{Dir: Dir, Logger: zerolog.Nop()}
}

func (c Config) options() badger.Options {
	if c.BadgerConfigs != nil {
		return *c.BadgerConfigs
	}
	if c.InMemory {
		return badger.DefaultOptions("").WithInMemory(true)
	}
	return badger.DefaultOptions(c.Dir)
}
