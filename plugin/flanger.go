package plugin

import (
	"github.com/cwbudde/matrixfx/dsp/effects/modulation"
	"github.com/cwbudde/matrixfx/dsp/lockfree"
)

// FlangerProcessor runs one flanger per channel. Every parameter change
// travels through the event queue and is applied at the next Process call.
type FlangerProcessor struct {
	h *host

	// Audio side.
	engines []*modulation.Flanger
	enabled bool
}

// NewFlangerProcessor returns an inactive flanger processor with every
// parameter at its default.
func NewFlangerProcessor(opts ...Option) (*FlangerProcessor, error) {
	h, err := newHost(flangerParams, opts)
	if err != nil {
		return nil, err
	}

	return &FlangerProcessor{h: h, enabled: true}, nil
}

// Activate allocates one delay line per channel for sampleRate and clears
// all engine state. It must not run concurrently with Process.
func (p *FlangerProcessor) Activate(sampleRate float64, maxFrames, channels int) error {
	if err := p.h.activate(sampleRate, maxFrames, channels); err != nil {
		return err
	}

	engines := make([]*modulation.Flanger, channels)
	for ch := range engines {
		engines[ch] = modulation.NewFlanger(
			p.h.load(FlangerRate),
			p.h.load(FlangerDepth),
			p.h.load(FlangerFeedback),
			p.h.load(FlangerMix),
			sampleRate,
			modulation.WithBaseDelay(p.h.cfg.baseDelay),
			modulation.WithInterpolation(p.h.cfg.interpolation),
		)
	}

	p.engines = engines
	p.enabled = isOn(p.h.load(FlangerEnabled))
	p.h.active.Store(true)

	return nil
}

// Deactivate stops processing. Process passes audio through until the next
// Activate.
func (p *FlangerProcessor) Deactivate() {
	p.h.active.Store(false)
}

// Active reports whether the processor is activated.
func (p *FlangerProcessor) Active() bool { return p.h.active.Load() }

// SetParam queues a parameter change from the control goroutine. The value
// is clamped into the parameter's range. ErrQueueFull means nothing was
// recorded.
func (p *FlangerProcessor) SetParam(id ParamID, value float64) error {
	v, err := p.h.clamp(id, value)
	if err != nil {
		return err
	}
	return p.h.enqueue(id, v)
}

// Param returns the last value accepted by SetParam, or the default.
func (p *FlangerProcessor) Param(id ParamID) (float64, error) {
	return p.h.param(id)
}

// Params returns the parameter table.
func (p *FlangerProcessor) Params() []ParamInfo { return p.h.params() }

// Enabled reports the control-side enabled switch.
func (p *FlangerProcessor) Enabled() bool { return isOn(p.h.load(FlangerEnabled)) }

// Process runs frames samples of every input channel through its flanger.
// Channels beyond the activated count are copied; outputs without an input
// are silenced. Inactive or disabled processors copy.
func (p *FlangerProcessor) Process(outputs, inputs [][]float32, frames int) {
	if !p.h.active.Load() {
		passThrough(outputs, inputs, frames)
		return
	}

	p.h.drain()
	p.applyPending()

	run(p.h, p.engines, !p.enabled, outputs, inputs, frames)
}

func (p *FlangerProcessor) applyPending() {
	if v, ok := p.h.take(FlangerRate); ok {
		for _, e := range p.engines {
			e.SetRate(v)
		}
	}
	if v, ok := p.h.take(FlangerDepth); ok {
		for _, e := range p.engines {
			e.SetDepth(v)
		}
	}
	if v, ok := p.h.take(FlangerFeedback); ok {
		for _, e := range p.engines {
			e.SetFeedback(v)
		}
	}
	if v, ok := p.h.take(FlangerMix); ok {
		for _, e := range p.engines {
			e.SetMix(v)
		}
	}
	if v, ok := p.h.take(FlangerEnabled); ok {
		p.enabled = isOn(v)
	}
}

// Reset clears every channel's delay line and LFO phase. Call it from the
// audio goroutine or while not processing.
func (p *FlangerProcessor) Reset() { resetAll(p.engines) }

// Tap returns the first-channel output queue, or nil without [WithTap] or
// before Activate.
func (p *FlangerProcessor) Tap() *lockfree.Queue[float32] { return p.h.tap }

// TapDropped returns how many tapped samples were discarded because the
// tap was full.
func (p *FlangerProcessor) TapDropped() uint64 { return p.h.tapDropped.Load() }

// SampleRate returns the activated sample rate, or 0.
func (p *FlangerProcessor) SampleRate() float64 { return p.h.proc.SampleRate }

// Channels returns the activated channel count, or 0.
func (p *FlangerProcessor) Channels() int { return p.h.proc.Channels }

// MaxFrames returns the activated block size, or 0.
func (p *FlangerProcessor) MaxFrames() int { return p.h.proc.BlockSize }
