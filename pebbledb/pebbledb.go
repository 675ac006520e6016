package pebbledb

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/rawbytedev/atomkv/engine"
	"github.com/rawbytedev/atomkv/log"
)

type PebbleDB struct {
	db *pebble.DB
	wo *pebble.WriteOptions
}

type pebbleCursor struct {
	Iterator *pebble.Iterator
	value    []byte
	err      []error
}

// NewPebbleDB opens or creates a pebble store at cfg.Dir.
func NewPebbleDB(cfg Config) (*PebbleDB, error) {
	opts := &pebble.Options{}
	if cfg.PebbleConfigs != nil {
		// the caller's options are left untouched
		o := *cfg.PebbleConfigs
		opts = &o
	}
	if opts.Logger == nil {
		opts.Logger = log.PebbleLogger{Logger: cfg.Logger}
	}
	db, err := pebble.Open(cfg.Dir, opts)
	if err != nil {
		return nil, err
	}
	wo := cfg.WriteOptions
	if wo == nil {
		wo = pebble.Sync
	}
	return &PebbleDB{db: db, wo: wo}, nil
}

// Put inserts or updates a key-value pair in the database.
func (p *PebbleDB) Put(key []byte, data []byte) error {
	if p.db == nil {
		return engine.ErrClosed
	}
	return p.db.Set(key, data, p.wo)
}

// Get hands the stored value to fn while pebble still pins it.
func (p *PebbleDB) Get(key []byte, fn func(value []byte)) (bool, error) {
	if p.db == nil {
		return false, engine.ErrClosed
	}
	val, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer closer.Close()
	fn(val)
	return true, nil
}

// Close closes the database and releases all resources.
func (p *PebbleDB) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

// -- Cursor operations

// NewCursor returns an unbounded iterator; pebble pins a snapshot of the
// memtables and sstables at creation.
func (p *PebbleDB) NewCursor() (engine.Cursor, error) {
	if p.db == nil {
		return nil, engine.ErrClosed
	}
	it, err := p.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	return &pebbleCursor{Iterator: it}, nil
}

func (it *pebbleCursor) SeekGE(key []byte) bool {
	return it.load(it.Iterator.SeekGE(key))
}

// SeekLE positions at the last key strictly before key+0x00, which is the
// last key <= key in byte order.
func (it *pebbleCursor) SeekLE(key []byte) bool {
	succ := make([]byte, len(key)+1)
	copy(succ, key)
	return it.load(it.Iterator.SeekLT(succ))
}

func (it *pebbleCursor) Next() bool {
	return it.load(it.Iterator.Next())
}

func (it *pebbleCursor) Prev() bool {
	return it.load(it.Iterator.Prev())
}

// load fetches the value eagerly so a value error invalidates the position
// instead of surfacing halfway through a visit.
func (it *pebbleCursor) load(valid bool) bool {
	it.value = nil
	if !valid {
		return false
	}
	data, err := it.Iterator.ValueAndErr()
	if err != nil {
		it.err = append(it.err, err)
		return false
	}
	it.value = data
	return true
}

func (it *pebbleCursor) Valid() bool {
	return it.Iterator != nil && len(it.err) == 0 && it.Iterator.Valid()
}

func (it *pebbleCursor) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return it.Iterator.Key()
}

func (it *pebbleCursor) Value() []byte {
	if !it.Valid() {
		return nil
	}
	return it.value
}

func (it *pebbleCursor) Error() error {
	if it.Iterator != nil {
		if err := it.Iterator.Error(); err != nil {
			return err
		}
	}
	if len(it.err) == 0 {
		return nil
	}
	return it.err[len(it.err)-1] // returns the most recent error
}

func (it *pebbleCursor) Close() error {
	if it.Iterator == nil {
		return nil
	}
	err := it.Iterator.Close()
	it.Iterator = nil
	return err
}
