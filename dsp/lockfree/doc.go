// Package lockfree provides the wait-free handoff primitives used between a
// real-time audio goroutine and control or visualization goroutines.
//
// [Queue] is a bounded single-producer/single-consumer ring. [Snapshot]
// publishes immutable values from one writer through an atomic pointer.
// Neither takes a lock, and neither allocates on the side that runs the
// audio callback.
package lockfree
