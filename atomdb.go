// Package atomkv is a thin access layer over a persistent sorted key-value
// engine: point reads and writes, and ordered traversal in either direction
// from an arbitrary seek key.
//
// Usage:
//
//	db, err := atomkv.Open(configs.DefaultConfig(dir))
//	err = db.Put(key, value)
//	value, found, err := db.Get(key)
//	err = db.Query([]byte("hoge"), false).Each(func(k, v []byte) bool {
//		return true
//	})
//	err = db.Close()
package atomkv

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/rawbytedev/atomkv/badgerdb"
	"github.com/rawbytedev/atomkv/configs"
	"github.com/rawbytedev/atomkv/engine"
	"github.com/rawbytedev/atomkv/leveldb"
	"github.com/rawbytedev/atomkv/log"
	"github.com/rawbytedev/atomkv/pebbledb"
	"github.com/rs/zerolog"
)

// DB owns one opened engine. The engine provides its own thread safety;
// mu only guards the closed state against Close.
type DB struct {
	engine  engine.Engine
	logger  zerolog.Logger
	mu      sync.RWMutex
	closed  bool
	queries atomic.Int64
}

// Open creates the store described by cfg if it does not exist and opens it.
func Open(cfg configs.StoreConfig) (*DB, error) {
	logger, engineLogger := log.Storage, log.Engine
	if cfg.Logger != nil {
		logger = *cfg.Logger
		engineLogger = cfg.Logger.With().Str("component", "engine").Logger()
	}
	logger = logger.With().Str("engine", string(cfg.Engine)).Logger()
	engineLogger = engineLogger.With().Str("engine", string(cfg.Engine)).Logger()

	e, err := openEngine(cfg, engineLogger)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.Dir()).Msg("open failed")
		return nil, &OpenError{Engine: string(cfg.Engine), Path: cfg.Dir(), Err: err}
	}
	logger.Info().Str("dir", cfg.Dir()).Bool("in_memory", cfg.InMemory()).Msg("store opened")
	return New(e, logger), nil
}

// openEngine hands logger to the engines that accept one.
func openEngine(cfg configs.StoreConfig, logger zerolog.Logger) (engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Engine {
	case configs.Badger:
		return badgerdb.NewBadgerDB(badgerdb.Config{
			Dir:           cfg.Dir(),
			InMemory:      cfg.InMemory(),
			BadgerConfigs: cfg.BadgerConfigs,
			Logger:        logger,
		})
	case configs.LevelDB:
		return leveldb.NewLevelDB(leveldb.Config{
			Dir:      cfg.Dir(),
			InMemory: cfg.InMemory(),
			Options:  cfg.LevelDBConfigs,
		})
	default:
		return pebbledb.NewPebbleDB(pebbledb.Config{
			Dir:           cfg.Dir(),
			PebbleConfigs: cfg.PebbleConfigs,
			Logger:        logger,
		})
	}
}

// New wraps an engine that is already open. The DB takes ownership of it.
func New(e engine.Engine, logger zerolog.Logger) *DB {
	return &DB{engine: e, logger: logger}
}

// Put writes value under key, replacing any previous value.
func (db *DB) Put(key, value []byte) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return &WriteError{Key: bytes.Clone(key), Err: engine.ErrClosed}
	}
	if err := db.engine.Put(key, value); err != nil {
		return &WriteError{Key: bytes.Clone(key), Err: err}
	}
	return nil
}

// Get returns a copy of the value stored under key. A missing key is
// reported with found == false and a nil error.
func (db *DB) Get(key []byte) (value []byte, found bool, err error) {
	value, found, err = db.GetAppend(nil, key)
	if found && value == nil {
		value = []byte{}
	}
	return value, found, err
}

// GetAppend appends the value stored under key to dst and returns the
// extended slice. dst is never cleared: calling it twice with the same
// buffer yields both values back to back, so reset it (dst[:0]) between
// calls to reuse the allocation for a single value.
func (db *DB) GetAppend(dst, key []byte) ([]byte, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return dst, false, &ReadError{Key: bytes.Clone(key), Err: engine.ErrClosed}
	}
	found, err := db.engine.Get(key, func(value []byte) {
		dst = append(dst, value...)
	})
	if err != nil {
		return dst, false, &ReadError{Key: bytes.Clone(key), Err: err}
	}
	return dst, found, nil
}

// Query returns a cursor already positioned at seek: the first key >= seek
// when scanning forward, the last key <= seek when scanning in reverse.
// It never fails; engine failures are reported by the traversal.
func (db *DB) Query(seek []byte, reverse bool) *QueryIter {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return &QueryIter{reverse: reverse, err: &IterationError{Err: engine.ErrClosed}}
	}
	cur, err := db.engine.NewCursor()
	if err != nil {
		db.logger.Error().Err(err).Msg("cursor creation failed")
		return &QueryIter{reverse: reverse, err: &IterationError{Err: err}}
	}
	db.queries.Add(1)
	return newQueryIter(cur, seek, reverse, func() { db.queries.Add(-1) })
}

// Close releases the engine. It refuses while queries created from this DB
// are still open and is a no-op once the DB is closed.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil
	}
	if n := db.queries.Load(); n > 0 {
		return errors.Wrapf(ErrCursorsOpen, "%d open", n)
	}
	db.closed = true
	if err := db.engine.Close(); err != nil {
		db.logger.Error().Err(err).Msg("close failed")
		return err
	}
	db.logger.Info().Msg("store closed")
	return nil
}
