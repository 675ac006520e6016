package atomkv

import "github.com/rawbytedev/atomkv/engine"

// Engine is the storage engine contract a DB delegates to.
type Engine = engine.Engine

// Cursor is the engine-level bidirectional cursor a QueryIter drives.
type Cursor = engine.Cursor

// Visitor receives each pair of a traversal and reports whether to continue.
// key and value are only valid during the call; copy anything kept.
type Visitor func(key, value []byte) bool

// Entry is an owned copy of one key-value pair.
type Entry struct {
	Key   []byte
	Value []byte
}
