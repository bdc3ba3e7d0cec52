// Package delay provides a circular delay line with fractional reads.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/matrixfx/dsp/interp"
)

// Interpolation kernels accepted by [WithMode].
const (
	Linear  = interp.Linear
	Hermite = interp.Hermite
)

// Guard is the number of samples a line keeps beyond its usable fractional
// delay so that every interpolation kernel stays inside the buffer.
const Guard = 3

// Option configures a [Line].
type Option func(*Line)

// WithMode selects the fractional interpolation kernel. Unknown modes are
// ignored.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		if mode == interp.Linear || mode == interp.Hermite {
			d.mode = mode
		}
	}
}

// Line is a circular delay line. Read(k) returns the sample written k
// writes ago, so reads for the current sample must happen before Write.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// New returns a delay line of fixed size. The default kernel is linear.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	d := &Line{buffer: make([]float64, size), mode: interp.Linear}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// SizeFor returns the buffer size needed for fractional reads up to
// maxDelay samples.
func SizeFor(maxDelay float64) int {
	if !(maxDelay > 0) {
		return Guard + 1
	}
	return int(math.Ceil(maxDelay)) + Guard
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Cap returns the allocated capacity; Resize up to Cap does not allocate.
func (d *Line) Cap() int {
	return cap(d.buffer)
}

// Mode returns the fractional interpolation kernel.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// MaxDelay returns the longest fractional delay, in samples, that
// ReadFractional honors.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - Guard)
}

// Resize changes the buffer length and clears it. It reuses the existing
// allocation when size fits in Cap, so only growth allocates.
func (d *Line) Resize(size int) error {
	if size <= 0 {
		return fmt.Errorf("delay size must be > 0: %d", size)
	}

	if size <= cap(d.buffer) {
		d.buffer = d.buffer[:size]
	} else {
		d.buffer = make([]float64, size)
	}
	d.Reset()
	return nil
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := (d.writePos - delay%size + size) % size
	return d.buffer[readPos]
}

// ReadFractional reads delay samples back using the configured kernel.
// The delay is clamped to [1, MaxDelay].
func (d *Line) ReadFractional(delay float64) float64 {
	if d.mode == interp.Hermite {
		return d.ReadHermite(delay)
	}
	return d.ReadLinear(delay)
}

// ReadLinear reads with 2-point linear interpolation.
func (d *Line) ReadLinear(delay float64) float64 {
	if len(d.buffer) <= Guard {
		return 0
	}

	p, t := d.split(delay)
	return interp.Linear2(t, d.Read(p), d.Read(p+1))
}

// ReadHermite reads with 4-point cubic Hermite interpolation.
func (d *Line) ReadHermite(delay float64) float64 {
	if len(d.buffer) <= Guard {
		return 0
	}

	p, t := d.split(delay)

	// Read(0) would return the oldest sample, not a newer neighbor.
	xm1 := d.Read(max(1, p-1))
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)
	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

func (d *Line) split(delay float64) (int, float64) {
	maxDelay := d.MaxDelay()
	if !(delay >= 1) {
		delay = 1
	}
	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	return p, delay - float64(p)
}
