package badgerdb

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v4"
	"github.com/rawbytedev/atomkv/engine"
	"github.com/rawbytedev/atomkv/log"
)

type BadgerDB struct {
	db *badger.DB
}

// badgerCursor owns one read-only transaction. Badger iterators only move
// in the direction they were opened with, so a direction change re-opens
// the iterator inside the same transaction and re-seeks.
type badgerCursor struct {
	txn     *badger.Txn
	it      *badger.Iterator
	reverse bool
	value   []byte
	err     []error
}

// NewBadgerDB initializes and returns a BadgerDB instance at the specified path.
func NewBadgerDB(cfg Config) (*BadgerDB, error) {
	opts := cfg.options().WithLogger(log.BadgerLogger{Logger: cfg.Logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerDB{db: db}, nil
}

// Put inserts or updates a key-value pair in the database.
func (b *BadgerDB) Put(key, value []byte) error {
	if b.db == nil {
		return engine.ErrClosed
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Get hands the value to fn inside the read transaction.
func (b *BadgerDB) Get(key []byte, fn func(value []byte)) (bool, error) {
	if b.db == nil {
		return false, engine.ErrClosed
	}
	found := false
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			fn(val)
			return nil
		})
	})
	// badger refuses empty keys on reads; nothing can be stored there
	if errors.Is(err, badger.ErrEmptyKey) {
		return false, nil
	}
	return found, err
}

// Close closes the BadgerDB instance and releases all resources.
func (b *BadgerDB) Close() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// -- Cursor operations

func (b *BadgerDB) NewCursor() (engine.Cursor, error) {
	if b.db == nil {
		return nil, engine.ErrClosed
	}
	return &badgerCursor{txn: b.db.NewTransaction(false)}, nil
}

func (c *badgerCursor) open(reverse bool) {
	if c.it != nil {
		c.it.Close()
	}
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	c.it = c.txn.NewIterator(opts)
	c.reverse = reverse
}

func (c *badgerCursor) SeekGE(key []byte) bool {
	c.open(false)
	if len(key) == 0 {
		c.it.Rewind()
	} else {
		c.it.Seek(key)
	}
	return c.load()
}

// SeekLE relies on badger's reverse Seek, which lands on the largest key <= key.
func (c *badgerCursor) SeekLE(key []byte) bool {
	c.open(true)
	if len(key) == 0 {
		// nothing sorts before the empty key; a reverse Seek("") would rewind to the end
		c.it.Close()
		c.it = nil
		c.value = nil
		return false
	}
	c.it.Seek(key)
	return c.load()
}

func (c *badgerCursor) Next() bool {
	return c.step(false)
}

func (c *badgerCursor) Prev() bool {
	return c.step(true)
}

func (c *badgerCursor) step(reverse bool) bool {
	if !c.Valid() {
		return false
	}
	if c.reverse == reverse {
		c.it.Next()
		return c.load()
	}
	cur := c.it.Item().KeyCopy(nil)
	c.open(reverse)
	c.it.Seek(cur)
	if c.it.Valid() && bytes.Equal(c.it.Item().Key(), cur) {
		c.it.Next()
	}
	return c.load()
}

// load copies the current value into the cursor's reusable buffer.
func (c *badgerCursor) load() bool {
	if c.it == nil || !c.it.Valid() {
		c.value = c.value[:0]
		return false
	}
	val, err := c.it.Item().ValueCopy(c.value[:0])
	if err != nil {
		c.err = append(c.err, err)
		return false
	}
	c.value = val
	return true
}

func (c *badgerCursor) Valid() bool {
	return c.it != nil && len(c.err) == 0 && c.it.Valid()
}

func (c *badgerCursor) Key() []byte {
	if !c.Valid() {
		return nil
	}
	return c.it.Item().Key()
}

func (c *badgerCursor) Value() []byte {
	if !c.Valid() {
		return nil
	}
	return c.value
}

func (c *badgerCursor) Error() error {
	if len(c.err) == 0 {
		return nil
	}
	return c.err[len(c.err)-1] // returns the most recent error
}

// Close releases the iterator before discarding its transaction.
func (c *badgerCursor) Close() error {
	if c.it != nil {
		c.it.Close()
		c.it = nil
	}
	if c.txn != nil {
		c.txn.Discard()
		c.txn = nil
	}
	return nil
}
