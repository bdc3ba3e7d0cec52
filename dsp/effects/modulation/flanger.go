package modulation

import (
	"math"

	"github.com/cwbudde/matrixfx/dsp/core"
	"github.com/cwbudde/matrixfx/dsp/delay"
	"github.com/cwbudde/matrixfx/dsp/interp"
)

const (
	// MinRateHz and MaxRateHz bound the LFO rate.
	MinRateHz = 0.01
	MaxRateHz = 20.0

	// MaxDepth and MaxMix are the upper bounds of the percent parameters.
	MaxDepth = 100.0
	MaxMix   = 100.0

	// MaxFeedback is the feedback ceiling in percent.
	MaxFeedback = 95.0

	// DefaultBaseDelaySeconds is the unmodulated delay.
	DefaultBaseDelaySeconds = 0.005

	minFlangerDelaySeconds = 0.0001 // 0.1 ms
	maxFlangerDelaySeconds = 0.0100 // 10 ms

	twoPi = 2 * math.Pi
)

// FlangerOption mutates flanger construction parameters.
type FlangerOption func(*flangerConfig)

type flangerConfig struct {
	baseDelay float64
	mode      interp.Mode
}

func defaultFlangerConfig() flangerConfig {
	return flangerConfig{
		baseDelay: DefaultBaseDelaySeconds,
		mode:      delay.Linear,
	}
}

// WithBaseDelay sets the unmodulated delay in seconds, clamped to
// [0.1 ms, 10 ms]. The modulated delay swings around it by up to
// ±depth percent.
func WithBaseDelay(seconds float64) FlangerOption {
	return func(cfg *flangerConfig) {
		cfg.baseDelay = core.Clamp(seconds, minFlangerDelaySeconds, maxFlangerDelaySeconds)
	}
}

// WithInterpolation selects the fractional-delay kernel (delay.Linear or
// delay.Hermite). Unknown kernels are ignored.
func WithInterpolation(mode interp.Mode) FlangerOption {
	return func(cfg *flangerConfig) {
		if mode == delay.Linear || mode == delay.Hermite {
			cfg.mode = mode
		}
	}
}

// Flanger is a sine-LFO modulated delay with feedback and wet/dry mix.
// One audio goroutine owns it; it is not safe for concurrent use.
type Flanger struct {
	sampleRate float64
	rateHz     float64
	depth      float64 // percent
	feedbackPc float64 // percent
	feedback   float64 // fraction in [0, 0.95]
	mix        float64 // percent
	baseDelay  float64 // seconds
	mode       interp.Mode

	baseSamples float64
	depthFrac   float64
	wet         float64
	phaseInc    float64
	lfoPhase    float64

	line        *delay.Line
	initialized bool
}

// NewFlanger creates a flanger. rate is in Hz, depth and mix in percent
// [0, 100], feedback in percent [0, 95]. Out-of-range values are clamped.
// A non-positive sample rate yields an uninitialized flanger that copies
// its input.
func NewFlanger(rateHz, depth, feedback, mix, sampleRate float64, opts ...FlangerOption) *Flanger {
	cfg := defaultFlangerConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(&cfg)
	}

	f := &Flanger{
		baseDelay: cfg.baseDelay,
		mode:      cfg.mode,
	}
	f.Init(rateHz, depth, feedback, mix, sampleRate)

	return f
}

// Init sets every parameter, sizes and clears the delay line, and resets
// the LFO. It may allocate and must not be called from the audio callback.
func (f *Flanger) Init(rateHz, depth, feedback, mix, sampleRate float64) {
	if f.baseDelay == 0 {
		f.baseDelay = DefaultBaseDelaySeconds
	}

	f.SetDepth(depth)
	f.SetFeedback(feedback)
	f.SetMix(mix)
	f.rateHz = core.Clamp(rateHz, MinRateHz, MaxRateHz)

	f.sampleRate = 0
	f.initialized = false
	f.SetSampleRate(sampleRate)
	f.Reset()
}

// SetSampleRate updates the sample rate. A change resizes and clears the
// delay line; it allocates only when the line must grow. A non-positive
// rate leaves the flanger uninitialized.
func (f *Flanger) SetSampleRate(sampleRate float64) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		f.initialized = false
		return
	}

	if f.initialized && sampleRate == f.sampleRate {
		return
	}

	f.sampleRate = sampleRate
	f.baseSamples = f.baseDelay * sampleRate

	size := delay.SizeFor(2 * f.baseSamples)

	switch {
	case f.line == nil:
		// size is always positive.
		f.line, _ = delay.New(size, delay.WithMode(f.mode))
	case size != f.line.Len():
		_ = f.line.Resize(size)
	}

	f.updatePhaseInc()
	f.initialized = true
}

// SetRate sets the LFO rate in Hz, clamped to [MinRateHz, MaxRateHz].
func (f *Flanger) SetRate(rateHz float64) {
	f.rateHz = core.Clamp(rateHz, MinRateHz, MaxRateHz)
	f.updatePhaseInc()
}

// SetDepth sets the modulation depth in percent of the base delay.
func (f *Flanger) SetDepth(depth float64) {
	f.depth = core.Clamp(depth, 0, MaxDepth)
	f.depthFrac = f.depth / 100
}

// SetFeedback sets the feedback amount in percent, clamped to [0, 95].
func (f *Flanger) SetFeedback(feedback float64) {
	f.feedbackPc = core.Clamp(feedback, 0, MaxFeedback)
	f.feedback = f.feedbackPc / 100
}

// SetMix sets the wet amount in percent.
func (f *Flanger) SetMix(mix float64) {
	f.mix = core.Clamp(mix, 0, MaxMix)
	f.wet = f.mix / 100
}

// Reset clears the delay line and the LFO phase. Parameters persist.
func (f *Flanger) Reset() {
	if f.line != nil {
		f.line.Reset()
	}

	f.lfoPhase = 0
}

// ProcessSample processes one sample.
func (f *Flanger) ProcessSample(sample float32) float32 {
	if !f.initialized {
		return sample
	}

	in := float64(sample)

	delaySamples := f.CurrentDelay()
	delayed := f.line.ReadFractional(delaySamples)

	out := (1-f.wet)*in + f.wet*(delayed+f.feedback*delayed)

	f.line.Write(core.FlushDenormals(in + f.feedback*delayed))

	f.lfoPhase += f.phaseInc
	if f.lfoPhase >= twoPi {
		f.lfoPhase = math.Mod(f.lfoPhase, twoPi)
	}

	return float32(out)
}

// ProcessBlock processes min(len(dst), len(src)) samples. dst and src may
// be the same slice. Uninitialized flangers copy src to dst.
func (f *Flanger) ProcessBlock(dst, src []float32) {
	if !f.initialized {
		core.CopyInto(dst, src)
		return
	}

	n := core.Frames(dst, src, -1)
	for i := 0; i < n; i++ {
		dst[i] = f.ProcessSample(src[i])
	}
}

// CurrentDelay returns the delay in samples the next sample will be read
// at, floored at one sample.
func (f *Flanger) CurrentDelay() float64 {
	d := f.baseSamples * (1 + f.depthFrac*math.Sin(f.lfoPhase))
	if d < 1 {
		d = 1
	}

	return d
}

// SampleRate returns sample rate in Hz.
func (f *Flanger) SampleRate() float64 { return f.sampleRate }

// Rate returns LFO speed in Hz.
func (f *Flanger) Rate() float64 { return f.rateHz }

// Depth returns modulation depth in percent.
func (f *Flanger) Depth() float64 { return f.depth }

// Feedback returns the feedback amount in percent.
func (f *Flanger) Feedback() float64 { return f.feedbackPc }

// Mix returns wet amount in percent.
func (f *Flanger) Mix() float64 { return f.mix }

// BaseDelay returns base delay in seconds.
func (f *Flanger) BaseDelay() float64 { return f.baseDelay }

// Interpolation returns the fractional-delay kernel.
func (f *Flanger) Interpolation() interp.Mode { return f.mode }

// LFOPhase returns the LFO phase in [0, 2π).
func (f *Flanger) LFOPhase() float64 { return f.lfoPhase }

// Initialized reports whether the flanger is processing.
func (f *Flanger) Initialized() bool { return f.initialized }

// BufferLen returns the delay-line length in samples, 0 before the first
// valid sample rate.
func (f *Flanger) BufferLen() int {
	if f.line == nil {
		return 0
	}

	return f.line.Len()
}

func (f *Flanger) updatePhaseInc() {
	if f.sampleRate <= 0 {
		f.phaseInc = 0
		return
	}

	f.phaseInc = twoPi * f.rateHz / f.sampleRate
}
