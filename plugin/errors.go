package plugin

import "errors"

var (
	// ErrUnknownParam is returned for a parameter id outside the processor's table.
	ErrUnknownParam = errors.New("plugin: unknown parameter")
	// ErrQueueFull is returned when the parameter event queue has no free slot.
	// The value is not recorded and may be retried.
	ErrQueueFull = errors.New("plugin: parameter queue full")
	// ErrNotActive is returned by queries that need a sample rate before
	// Activate has been called.
	ErrNotActive = errors.New("plugin: processor not active")
	// ErrInvalidConfig is returned by Activate and the constructors for
	// out-of-range settings.
	ErrInvalidConfig = errors.New("plugin: invalid configuration")
)
