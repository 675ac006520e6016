package engine

import "github.com/cockroachdb/errors"

// ErrClosed is returned by any operation on a closed engine.
var ErrClosed = errors.New("engine: closed")

// Engine defines what atomkv needs from a persistent sorted key-value store.
type Engine interface {
	// Get calls fn with the value stored under key. value is only valid
	// while fn runs. Absence is reported as found == false with a nil error.
	Get(key []byte, fn func(value []byte)) (found bool, err error)
	// Put writes value under key, replacing any previous value. It returns
	// once the engine acknowledged the write.
	Put(key []byte, value []byte) error
	// NewCursor returns an unpositioned cursor over a point-in-time view
	// of the key space.
	NewCursor() (Cursor, error)
	// Close releases the engine and all resources it holds.
	Close() error
}

// Cursor is a bidirectional position over the engine's sorted keys.
//
// Key and Value return slices owned by the cursor; the contents may change
// on the next positioning call.
type Cursor interface {
	SeekGE(key []byte) bool // first key >= key
	SeekLE(key []byte) bool // last key <= key
	Valid() bool
	Key() []byte
	Value() []byte
	Next() bool
	Prev() bool
	Error() error // accumulated error, nil when the cursor simply ran out
	Close() error
}
