package lockfree

import (
	"errors"
	"math/bits"
	"sync/atomic"
)

// ErrCapacity is returned by NewQueue for a non-positive or oversized
// capacity.
var ErrCapacity = errors.New("lockfree: queue capacity must be in [1, 1<<30]")

const maxQueueCapacity = 1 << 30

type cacheLinePad [64]byte

// Queue is a bounded single-producer/single-consumer FIFO. Exactly one
// goroutine may call the producer methods (Push, PushSlice) and exactly one
// may call the consumer methods (Pop, PopSlice, Drain). Len and Cap are safe
// from anywhere.
type Queue[T any] struct {
	buf  []T
	mask uint64

	_    cacheLinePad
	head atomic.Uint64 // next slot to read, written by the consumer
	_    cacheLinePad
	tail atomic.Uint64 // next slot to write, written by the producer
	_    cacheLinePad
}

// NewQueue allocates a queue holding at least capacity elements. The
// capacity is rounded up to a power of two.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 || capacity > maxQueueCapacity {
		return nil, ErrCapacity
	}

	size := 1
	if capacity > 1 {
		size = 1 << bits.Len(uint(capacity-1))
	}

	return &Queue[T]{
		buf:  make([]T, size),
		mask: uint64(size - 1),
	}, nil
}

// Cap returns the number of slots.
func (q *Queue[T]) Cap() int {
	return len(q.buf)
}

// Len returns the number of queued elements. Concurrent callers see a
// value that was correct at some instant during the call.
func (q *Queue[T]) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// Push appends v. It returns false without blocking when the queue is full.
func (q *Queue[T]) Push(v T) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		return false
	}

	q.buf[tail&q.mask] = v
	q.tail.Store(tail + 1)
	return true
}

// PushSlice appends as many elements of src as fit and returns how many
// were queued.
func (q *Queue[T]) PushSlice(src []T) int {
	tail := q.tail.Load()
	free := uint64(len(q.buf)) - (tail - q.head.Load())

	n := uint64(len(src))
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	start := tail & q.mask
	first := min(n, uint64(len(q.buf))-start)
	copy(q.buf[start:start+first], src[:first])
	copy(q.buf[:n-first], src[first:n])

	q.tail.Store(tail + n)
	return int(n)
}

// Pop removes the oldest element. ok is false when the queue is empty.
func (q *Queue[T]) Pop() (v T, ok bool) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return v, false
	}

	idx := head & q.mask
	v = q.buf[idx]

	var zero T
	q.buf[idx] = zero
	q.head.Store(head + 1)
	return v, true
}

// PopSlice moves up to len(dst) of the oldest elements into dst and
// returns how many were moved.
func (q *Queue[T]) PopSlice(dst []T) int {
	head := q.head.Load()
	avail := q.tail.Load() - head

	n := uint64(len(dst))
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}

	start := head & q.mask
	first := min(n, uint64(len(q.buf))-start)
	copy(dst[:first], q.buf[start:start+first])
	copy(dst[first:n], q.buf[:n-first])

	q.head.Store(head + n)
	return int(n)
}

// Drain discards every queued element and returns how many were dropped.
// It is a consumer method.
func (q *Queue[T]) Drain() int {
	head := q.head.Load()
	tail := q.tail.Load()

	var zero T
	for i := head; i != tail; i++ {
		q.buf[i&q.mask] = zero
	}

	q.head.Store(tail)
	return int(tail - head)
}
