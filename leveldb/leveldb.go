// Package leveldb adapts goleveldb to the engine contract.
package leveldb

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/rawbytedev/atomkv/engine"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

type LevelDB struct {
	db *goleveldb.DB
	wo *opt.WriteOptions
}

type levelCursor struct {
	it iterator.Iterator
}

// NewLevelDB opens or creates a goleveldb store. With InMemory set the
// store lives in a memory-backed storage and Dir is ignored.
func NewLevelDB(cfg Config) (*LevelDB, error) {
	var (
		db  *goleveldb.DB
		err error
	)
	if cfg.InMemory {
		db, err = goleveldb.Open(storage.NewMemStorage(), cfg.Options)
	} else {
		db, err = goleveldb.OpenFile(cfg.Dir, cfg.Options)
	}
	if err != nil {
		return nil, err
	}
	wo := cfg.WriteOptions
	if wo == nil {
		wo = &opt.WriteOptions{Sync: true}
	}
	return &LevelDB{db: db, wo: wo}, nil
}

func (l *LevelDB) Put(key, value []byte) error {
	if l.db == nil {
		return engine.ErrClosed
	}
	return l.db.Put(key, value, l.wo)
}

func (l *LevelDB) Get(key []byte, fn func(value []byte)) (bool, error) {
	if l.db == nil {
		return false, engine.ErrClosed
	}
	val, err := l.db.Get(key, nil)
	if errors.Is(err, goleveldb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	fn(val)
	return true, nil
}

func (l *LevelDB) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// NewCursor iterates over an implicit snapshot taken here.
func (l *LevelDB) NewCursor() (engine.Cursor, error) {
	if l.db == nil {
		return nil, engine.ErrClosed
	}
	return &levelCursor{it: l.db.NewIterator(nil, nil)}, nil
}

func (c *levelCursor) SeekGE(key []byte) bool {
	return c.it.Seek(key)
}

func (c *levelCursor) SeekLE(key []byte) bool {
	if !c.it.Seek(key) {
		return c.it.Last()
	}
	if bytes.Equal(c.it.Key(), key) {
		return true
	}
	return c.it.Prev()
}

func (c *levelCursor) Next() bool    { return c.it.Next() }
func (c *levelCursor) Prev() bool    { return c.it.Prev() }
func (c *levelCursor) Valid() bool   { return c.it.Valid() }
func (c *levelCursor) Key() []byte   { return c.it.Key() }
func (c *levelCursor) Value() []byte { return c.it.Value() }
func (c *levelCursor) Error() error  { return c.it.Error() }

// Close releases the iterator; goleveldb allows repeated Release calls.
func (c *levelCursor) Close() error {
	c.it.Release()
	return nil
}
