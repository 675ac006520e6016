package configs

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

var (
	ErrUnknownEngine = errors.New("unknown storage engine")
	ErrEmptyDir      = errors.New("storage directory is empty")
)

// Engine names a supported storage engine.
type Engine string

const (
	Pebble  Engine = "pebble"
	Badger  Engine = "badger"
	LevelDB Engine = "leveldb"
)

// Engines lists every supported engine, default first.
var Engines = []Engine{Pebble, Badger, LevelDB}

// ParseEngine accepts the engine names and their package-style aliases.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "pebble", "pebbledb":
		return Pebble, nil
	case "badger", "badgerdb":
		return Badger, nil
	case "leveldb", "goleveldb":
		return LevelDB, nil
	}
	return "", errors.Wrapf(ErrUnknownEngine, "%q", name)
}

type StoreConfig struct {
	Engine         Engine
	BadgerConfigs  *badger.Options
	PebbleConfigs  *pebble.Options
	LevelDBConfigs *opt.Options
	Default        *DefaultOptions
	// nil uses log.Storage
	Logger *zerolog.Logger
}

type DefaultOptions struct {
	Dir string // some databases may require to specify the storage directory seperatly
	// InMemory keeps the store in memory where the engine supports it (badger, leveldb).
	InMemory bool
}

// DefaultConfig returns a pebble configuration rooted at dir.
func DefaultConfig(dir string) StoreConfig {
	return StoreConfig{Engine: Pebble, Default: &DefaultOptions{Dir: dir}}
}

func (c StoreConfig) Dir() string {
	if c.Default == nil {
		return ""
	}
	return c.Default.Dir
}

func (c StoreConfig) InMemory() bool {
	return c.Default != nil && c.Default.InMemory && c.Engine != Pebble
}

func (c StoreConfig) Validate() error {
	switch c.Engine {
	case Pebble, Badger, LevelDB:
	default:
		return errors.Wrapf(ErrUnknownEngine, "%q", c.Engine)
	}
	if c.Dir() == "" && !c.InMemory() {
		return errors.Wrapf(ErrEmptyDir, "engine %s", c.Engine)
	}
	return nil
}
