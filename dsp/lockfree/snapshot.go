package lockfree

import "sync/atomic"

type version[T any] struct {
	value T
	seq   uint64
}

// Snapshot hands immutable values from one writer goroutine to one reader
// goroutine. Publish allocates on the writer side; Load never allocates
// and never blocks.
type Snapshot[T any] struct {
	cur atomic.Pointer[version[T]]

	next uint64 // writer-owned
	seen uint64 // reader-owned
}

// NewSnapshot returns a snapshot holding initial. The initial value is not
// reported as new by Load.
func NewSnapshot[T any](initial T) *Snapshot[T] {
	s := &Snapshot[T]{}
	s.cur.Store(&version[T]{value: initial})
	return s
}

// Publish makes v the current value. Only one goroutine may publish.
func (s *Snapshot[T]) Publish(v T) {
	s.next++
	s.cur.Store(&version[T]{value: v, seq: s.next})
}

// Load returns the current value and whether it was published after the
// previous Load. Only one goroutine may call Load.
func (s *Snapshot[T]) Load() (T, bool) {
	ver := s.cur.Load()
	if ver == nil {
		var zero T
		return zero, false
	}

	fresh := ver.seq != s.seen
	s.seen = ver.seq
	return ver.value, fresh
}

// Peek returns the current value without affecting Load's freshness
// tracking. It is safe from any goroutine.
func (s *Snapshot[T]) Peek() T {
	ver := s.cur.Load()
	if ver == nil {
		var zero T
		return zero
	}
	return ver.value
}

// Version returns the number of values published so far.
func (s *Snapshot[T]) Version() uint64 {
	ver := s.cur.Load()
	if ver == nil {
		return 0
	}
	return ver.seq
}
