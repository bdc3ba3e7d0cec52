package plugin

import (
	"github.com/cwbudde/matrixfx/dsp/filter/multimode"
	"github.com/cwbudde/matrixfx/dsp/lockfree"
)

// FilterProcessor runs one multi-mode biquad per channel.
//
// Cutoff, resonance, gain and type changes are turned into a coefficient
// design on the control side and published as a snapshot; the audio side
// installs the newest design at the start of the next Process call. The
// enabled switch travels through the event queue.
type FilterProcessor struct {
	h *host

	designs *lockfree.Snapshot[multimode.Design]

	// Audio side.
	engines []*multimode.Filter
	enabled bool
}

// NewFilterProcessor returns an inactive filter processor with every
// parameter at its default.
func NewFilterProcessor(opts ...Option) (*FilterProcessor, error) {
	h, err := newHost(filterParams, opts)
	if err != nil {
		return nil, err
	}

	return &FilterProcessor{
		h:       h,
		designs: lockfree.NewSnapshot(multimode.Design{}),
		enabled: true,
	}, nil
}

// Activate prepares one engine per channel at sampleRate. Engine state is
// cleared. It must not run concurrently with Process.
func (p *FilterProcessor) Activate(sampleRate float64, maxFrames, channels int) error {
	if err := p.h.activate(sampleRate, maxFrames, channels); err != nil {
		return err
	}

	d := p.buildDesign()
	engines := make([]*multimode.Filter, channels)
	for ch := range engines {
		engines[ch] = new(multimode.Filter)
		engines[ch].Apply(d)
	}

	p.engines = engines
	p.enabled = isOn(p.h.load(FilterEnabled))
	p.designs.Publish(d)
	p.h.active.Store(true)

	return nil
}

// Deactivate stops processing. Process passes audio through until the next
// Activate.
func (p *FilterProcessor) Deactivate() {
	p.h.active.Store(false)
}

// Active reports whether Activate has succeeded and Deactivate was not
// called since.
func (p *FilterProcessor) Active() bool { return p.h.active.Load() }

// SetParam sets a parameter from the control goroutine. The value is
// clamped into the parameter's range. It never blocks.
func (p *FilterProcessor) SetParam(id ParamID, value float64) error {
	v, err := p.h.clamp(id, value)
	if err != nil {
		return err
	}

	if id == FilterEnabled {
		return p.h.enqueue(id, v)
	}

	p.h.store(id, v)
	if p.h.active.Load() {
		p.designs.Publish(p.buildDesign())
	}

	return nil
}

// Param returns the last value accepted by SetParam, or the default.
func (p *FilterProcessor) Param(id ParamID) (float64, error) {
	return p.h.param(id)
}

// Params returns the parameter table.
func (p *FilterProcessor) Params() []ParamInfo { return p.h.params() }

// Enabled reports the control-side enabled switch.
func (p *FilterProcessor) Enabled() bool { return isOn(p.h.load(FilterEnabled)) }

// Design returns the last published design. Before the first Activate it
// is the zero Design.
func (p *FilterProcessor) Design() multimode.Design { return p.designs.Peek() }

// FrequencyResponse evaluates the last published design at freqHz. It is
// safe on the control goroutine while audio is running.
func (p *FilterProcessor) FrequencyResponse(freqHz float64) (magnitudeDB, phaseDeg float64, err error) {
	if !p.h.active.Load() {
		return 0, 0, ErrNotActive
	}

	magnitudeDB, phaseDeg = p.designs.Peek().FrequencyResponse(freqHz)
	return magnitudeDB, phaseDeg, nil
}

// Process filters frames samples of every input channel into the matching
// output channel. Channels beyond the activated count are copied; outputs
// without an input are silenced. Inactive or disabled processors copy.
func (p *FilterProcessor) Process(outputs, inputs [][]float32, frames int) {
	if !p.h.active.Load() {
		passThrough(outputs, inputs, frames)
		return
	}

	p.h.drain()
	if v, ok := p.h.take(FilterEnabled); ok {
		p.enabled = isOn(v)
	}

	if d, fresh := p.designs.Load(); fresh {
		for _, e := range p.engines {
			e.Apply(d)
		}
	}

	run(p.h, p.engines, !p.enabled, outputs, inputs, frames)
}

// Reset clears every channel's filter state. Call it from the audio
// goroutine or while not processing.
func (p *FilterProcessor) Reset() { resetAll(p.engines) }

// Tap returns the first-channel output queue, or nil without [WithTap] or
// before Activate.
func (p *FilterProcessor) Tap() *lockfree.Queue[float32] { return p.h.tap }

// TapDropped returns how many tapped samples were discarded because the
// tap was full.
func (p *FilterProcessor) TapDropped() uint64 { return p.h.tapDropped.Load() }

// SampleRate returns the activated sample rate, or 0.
func (p *FilterProcessor) SampleRate() float64 { return p.h.proc.SampleRate }

// Channels returns the activated channel count, or 0.
func (p *FilterProcessor) Channels() int { return p.h.proc.Channels }

// MaxFrames returns the activated block size, or 0.
func (p *FilterProcessor) MaxFrames() int { return p.h.proc.BlockSize }

func (p *FilterProcessor) buildDesign() multimode.Design {
	params := multimode.Params{
		Type:      multimode.Type(int(p.h.load(FilterType))),
		Cutoff:    p.h.load(FilterCutoff),
		Resonance: p.h.load(FilterResonance),
		GainDB:    p.h.load(FilterGain),
	}
	return multimode.NewDesign(params, p.h.proc.SampleRate)
}
