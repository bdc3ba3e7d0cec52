package plugin

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/matrixfx/dsp/core"
	"github.com/cwbudde/matrixfx/dsp/lockfree"
)

const maxChannels = 64

type paramEvent struct {
	id    ParamID
	value float64
}

// host holds the parameter and tap plumbing shared by both processors.
type host struct {
	cfg   config
	table []ParamInfo

	// Control side.
	values []atomic.Uint64
	proc   core.ProcessorConfig
	active atomic.Bool

	events *lockfree.Queue[paramEvent]

	tap        *lockfree.Queue[float32]
	tapDropped atomic.Uint64

	// Audio side.
	latest []float64
	dirty  []bool
}

func newHost(table []ParamInfo, opts []Option) (*host, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	events, err := lockfree.NewQueue[paramEvent](cfg.eventQueueSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	h := &host{
		cfg:    cfg,
		table:  table,
		values: make([]atomic.Uint64, len(table)),
		events: events,
		latest: make([]float64, len(table)),
		dirty:  make([]bool, len(table)),
	}
	for i, p := range table {
		h.values[i].Store(math.Float64bits(p.Default))
	}

	return h, nil
}

func (h *host) info(id ParamID) (ParamInfo, bool) {
	if int(id) >= len(h.table) {
		return ParamInfo{}, false
	}
	return h.table[id], true
}

func (h *host) load(id ParamID) float64 {
	return math.Float64frombits(h.values[id].Load())
}

func (h *host) store(id ParamID, v float64) {
	h.values[id].Store(math.Float64bits(v))
}

func (h *host) param(id ParamID) (float64, error) {
	if _, ok := h.info(id); !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownParam, id)
	}
	return h.load(id), nil
}

func (h *host) params() []ParamInfo {
	return append([]ParamInfo(nil), h.table...)
}

// clamp validates id and returns v forced into the parameter's range.
func (h *host) clamp(id ParamID, v float64) (float64, error) {
	info, ok := h.info(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownParam, id)
	}
	return info.Clamp(v), nil
}

// enqueue records v and, while active, queues it for the audio side.
func (h *host) enqueue(id ParamID, v float64) error {
	if h.active.Load() && !h.events.Push(paramEvent{id: id, value: v}) {
		return ErrQueueFull
	}
	h.store(id, v)
	return nil
}

// activate validates the processing setup and prepares the queues. Events
// left over from an earlier activation are discarded; their values are
// already part of the control-side state the engines are rebuilt from.
func (h *host) activate(sampleRate float64, maxFrames, channels int) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidConfig, sampleRate)
	}
	if maxFrames <= 0 {
		return fmt.Errorf("%w: max frames must be > 0: %d", ErrInvalidConfig, maxFrames)
	}
	if channels <= 0 || channels > maxChannels {
		return fmt.Errorf("%w: channels must be in [1, %d]: %d", ErrInvalidConfig, maxChannels, channels)
	}

	if h.cfg.tap {
		size := h.cfg.tapSize
		if size == 0 {
			size = 4 * maxFrames
		}
		if h.tap == nil || h.tap.Cap() < size {
			tap, err := lockfree.NewQueue[float32](size)
			if err != nil {
				return fmt.Errorf("%w: tap: %w", ErrInvalidConfig, err)
			}
			h.tap = tap
		}
	}

	h.active.Store(false)
	h.events.Drain()
	for i := range h.dirty {
		h.dirty[i] = false
	}

	h.proc = core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(maxFrames),
		core.WithChannels(channels),
	)

	return nil
}

// drain moves every queued event into latest/dirty. Audio side only.
func (h *host) drain() {
	for {
		ev, ok := h.events.Pop()
		if !ok {
			return
		}
		h.latest[ev.id] = ev.value
		h.dirty[ev.id] = true
	}
}

// take returns the last drained value for id if one is pending.
func (h *host) take(id ParamID) (float64, bool) {
	if !h.dirty[id] {
		return 0, false
	}
	h.dirty[id] = false
	return h.latest[id], true
}

func (h *host) pushTap(samples []float32) {
	if h.tap == nil || len(samples) == 0 {
		return
	}
	if n := h.tap.PushSlice(samples); n < len(samples) {
		h.tapDropped.Add(uint64(len(samples) - n))
	}
}

// passChannel copies input ch to output ch, or silences the output when
// there is no matching input.
func passChannel(outputs, inputs [][]float32, ch, frames int) {
	dst := outputs[ch]
	if ch < len(inputs) {
		n := core.Frames(dst, inputs[ch], frames)
		core.CopyInto(dst[:n], inputs[ch][:n])
		return
	}

	n := len(dst)
	if frames >= 0 && frames < n {
		n = frames
	}
	core.Zero(dst[:n])
}

func passThrough(outputs, inputs [][]float32, frames int) {
	for ch := range outputs {
		passChannel(outputs, inputs, ch, frames)
	}
}

// blockEngine is the audio-side contract both engines satisfy.
type blockEngine interface {
	ProcessBlock(dst, src []float32)
	Reset()
}

// run processes each channel that has an engine, passes the rest through,
// and feeds the first output to the tap. bypass turns every channel into a
// copy.
func run[E blockEngine](h *host, engines []E, bypass bool, outputs, inputs [][]float32, frames int) {
	for ch, dst := range outputs {
		if bypass || ch >= len(inputs) || ch >= len(engines) {
			passChannel(outputs, inputs, ch, frames)
			continue
		}
		n := core.Frames(dst, inputs[ch], frames)
		engines[ch].ProcessBlock(dst[:n], inputs[ch][:n])
	}

	if len(outputs) > 0 && len(inputs) > 0 {
		n := core.Frames(outputs[0], inputs[0], frames)
		h.pushTap(outputs[0][:n])
	}
}

func resetAll[E blockEngine](engines []E) {
	for _, e := range engines {
		e.Reset()
	}
}
