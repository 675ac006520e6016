package atomkv

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrCursorConsumed = errors.New("atomkv: query already traversed")
	ErrCursorsOpen    = errors.New("atomkv: queries still open")
)

// OpenError reports that the backing store could not be opened or created.
type OpenError struct {
	Engine string
	Path   string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("atomkv: open %s store at %q: %v", e.Engine, e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// WriteError reports an engine failure during Put.
type WriteError struct {
	Key []byte
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("atomkv: put %x: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError reports an engine failure during Get. A missing key is never a ReadError.
type ReadError struct {
	Key []byte
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("atomkv: get %x: %v", e.Key, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IterationError reports an engine failure while building or driving a QueryIter.
type IterationError struct {
	Err error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("atomkv: iterate: %v", e.Err)
}

func (e *IterationError) Unwrap() error { return e.Err }
