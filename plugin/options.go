package plugin

import (
	"fmt"

	"github.com/cwbudde/matrixfx/dsp/effects/modulation"
	"github.com/cwbudde/matrixfx/dsp/interp"
)

const (
	DefaultEventQueueSize = 256
	maxEventQueueSize     = 1 << 16
)

type config struct {
	eventQueueSize int
	tap            bool
	tapSize        int
	baseDelay      float64
	interpolation  interp.Mode
}

func defaultConfig() config {
	return config{
		eventQueueSize: DefaultEventQueueSize,
		baseDelay:      modulation.DefaultBaseDelaySeconds,
		interpolation:  interp.Linear,
	}
}

// Option configures a processor at construction.
type Option func(*config)

// WithEventQueueSize sets how many parameter changes may be pending
// between two Process calls. It is rounded up to a power of two.
func WithEventQueueSize(n int) Option {
	return func(c *config) { c.eventQueueSize = n }
}

// WithTap enables the first-channel output tap. A size of zero sizes the
// tap at Activate to four blocks of maxFrames.
func WithTap(size int) Option {
	return func(c *config) {
		c.tap = true
		c.tapSize = max(size, 0)
	}
}

// WithBaseDelay sets the flanger's base delay in seconds. The filter
// ignores it.
func WithBaseDelay(seconds float64) Option {
	return func(c *config) { c.baseDelay = seconds }
}

// WithInterpolation selects the flanger's fractional-delay kernel. The
// filter ignores it.
func WithInterpolation(mode interp.Mode) Option {
	return func(c *config) { c.interpolation = mode }
}

func newConfig(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.eventQueueSize < 1 || cfg.eventQueueSize > maxEventQueueSize {
		return cfg, fmt.Errorf("%w: event queue size must be in [1, %d]: %d",
			ErrInvalidConfig, maxEventQueueSize, cfg.eventQueueSize)
	}

	return cfg, nil
}
