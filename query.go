package atomkv

import (
	"bytes"
	"iter"

	"github.com/rawbytedev/atomkv/engine"
)

// QueryIter is a single-use directional traversal seeded at a seek key.
//
// It borrows the engine of the DB that created it; the DB refuses to close
// until the QueryIter has been traversed or closed.
type QueryIter struct {
	cur     engine.Cursor
	reverse bool
	done    bool
	err     error
	release func()
}

func newQueryIter(cur engine.Cursor, seek []byte, reverse bool, release func()) *QueryIter {
	if reverse {
		cur.SeekLE(seek)
	} else {
		cur.SeekGE(seek)
	}
	return &QueryIter{cur: cur, reverse: reverse, release: release}
}

// Reverse reports whether the traversal runs in descending key order.
func (q *QueryIter) Reverse() bool {
	return q.reverse
}

// Each calls visit for every pair from the seek position onward, ascending
// or descending, until visit returns false or the keys run out. The pair for
// which visit returns false has still been delivered.
//
// key and value are only valid during a single call to visit.
// Each can be called once; the cursor is released when it returns.
func (q *QueryIter) Each(visit Visitor) error {
	if q.done {
		return ErrCursorConsumed
	}
	q.done = true
	if q.err != nil {
		return q.err
	}
	defer q.Close()

	for q.cur.Valid() {
		if !visit(q.cur.Key(), q.cur.Value()) {
			break
		}
		if q.reverse {
			q.cur.Prev()
		} else {
			q.cur.Next()
		}
	}
	if err := q.cur.Error(); err != nil {
		q.err = &IterationError{Err: err}
	}
	return q.err
}

// All adapts Each to a range-over-func sequence. The error of the traversal
// is available from Err once the loop ends.
//
//	for k, v := range q.All() {
//		...
//	}
//	if err := q.Err(); err != nil {
//		...
//	}
func (q *QueryIter) All() iter.Seq2[[]byte, []byte] {
	return func(yield func([]byte, []byte) bool) {
		if err := q.Each(Visitor(yield)); err != nil && q.err == nil {
			q.err = err
		}
	}
}

// Err returns the error of the last traversal, if any.
func (q *QueryIter) Err() error {
	return q.err
}

// Collect copies up to limit pairs out of the traversal; limit <= 0 means all.
func (q *QueryIter) Collect(limit int) ([]Entry, error) {
	var out []Entry
	err := q.Each(func(key, value []byte) bool {
		out = append(out, Entry{Key: bytes.Clone(key), Value: bytes.Clone(value)})
		return limit <= 0 || len(out) < limit
	})
	return out, err
}

// Close releases the cursor without traversing. It is safe to call more
// than once and after Each.
func (q *QueryIter) Close() error {
	q.done = true
	if q.cur == nil {
		return nil
	}
	err := q.cur.Close()
	q.cur = nil
	if q.release != nil {
		q.release()
		q.release = nil
	}
	return err
}
