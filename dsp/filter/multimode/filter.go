package multimode

import (
	"math/cmplx"

	"github.com/cwbudde/matrixfx/dsp/core"
	"github.com/cwbudde/matrixfx/dsp/filter/biquad"
	"github.com/cwbudde/matrixfx/dsp/filter/design"
)

// Design is a clamped parameter set together with the coefficients it
// produces at one sample rate. It is a plain value and can be built on any
// goroutine.
type Design struct {
	Params       Params
	SampleRate   float64
	Coefficients biquad.Coefficients
	Valid        bool // false unless SampleRate is positive and finite
}

// NewDesign clamps p for sampleRate and computes its coefficients.
// A non-positive or infinite sample rate yields an invalid design with
// pass-through coefficients.
func NewDesign(p Params, sampleRate float64) Design {
	p = p.Clamp(sampleRate)
	if !validSampleRate(sampleRate) {
		return Design{
			Params:       p,
			SampleRate:   sampleRate,
			Coefficients: biquad.Passthrough(),
		}
	}

	return Design{
		Params:       p,
		SampleRate:   sampleRate,
		Coefficients: design.Design(p.Type, p.Cutoff, p.Resonance, p.GainDB, sampleRate),
		Valid:        true,
	}
}

// FrequencyResponse evaluates the design at freqHz, returning the magnitude
// in dB and the phase in degrees. Invalid designs report 0 dB and 0 degrees.
func (d Design) FrequencyResponse(freqHz float64) (magnitudeDB, phaseDeg float64) {
	if !d.Valid {
		return 0, 0
	}

	h := d.Coefficients.Response(freqHz, d.SampleRate)
	return core.GainToDB(cmplx.Abs(h)), core.RadToDeg(cmplx.Phase(h))
}

// Filter is a multi-mode biquad engine. It is not safe for concurrent use;
// one audio goroutine owns it.
type Filter struct {
	requested   Params
	params      Params
	sampleRate  float64
	coeffs      biquad.Coefficients
	state       biquad.State
	initialized bool
}

// New returns a filter initialized with the given parameters.
func New(typ Type, cutoff, resonance, gainDB, sampleRate float64) *Filter {
	f := &Filter{}
	f.Init(typ, cutoff, resonance, gainDB, sampleRate)
	return f
}

// Init stores the parameters, clears the state and computes coefficients.
// The filter is initialized iff sampleRate is positive and finite.
func (f *Filter) Init(typ Type, cutoff, resonance, gainDB, sampleRate float64) {
	p := Params{
		Type:      typ,
		Cutoff:    cutoff,
		Resonance: resonance,
		GainDB:    gainDB,
	}

	f.state.Reset()
	f.Apply(NewDesign(p, sampleRate))
	f.requested = p
}

// SetParameters updates all response parameters at once and recomputes
// the coefficients. The state is kept.
func (f *Filter) SetParameters(typ Type, cutoff, resonance, gainDB float64) {
	f.SetParams(Params{
		Type:      typ,
		Cutoff:    cutoff,
		Resonance: resonance,
		GainDB:    gainDB,
	})
}

// SetParams is [Filter.SetParameters] taking a [Params] value.
func (f *Filter) SetParams(p Params) {
	f.Apply(NewDesign(p, f.sampleRate))
	f.requested = p
}

// SetSampleRate recomputes the coefficients for a new sample rate. The last
// requested cutoff is clamped again against the new Nyquist limit. A
// non-positive rate makes the filter a pass-through.
func (f *Filter) SetSampleRate(sampleRate float64) {
	requested := f.requested
	f.Apply(NewDesign(requested, sampleRate))
	f.requested = requested
}

// Apply installs a precomputed design. It does not allocate and keeps the
// filter state, so it is safe to call at the top of an audio callback.
func (f *Filter) Apply(d Design) {
	f.requested = d.Params
	f.params = d.Params
	f.sampleRate = d.SampleRate
	f.coeffs = d.Coefficients
	f.initialized = d.Valid
}

// ProcessSample filters one sample. Uninitialized filters return x.
func (f *Filter) ProcessSample(x float32) float32 {
	if !f.initialized {
		return x
	}
	return float32(f.state.Step(&f.coeffs, float64(x)))
}

// ProcessBlock filters min(len(dst), len(src)) samples from src into dst.
// dst and src may be the same slice.
func (f *Filter) ProcessBlock(dst, src []float32) {
	if !f.initialized {
		core.CopyInto(dst, src)
		return
	}
	biquad.ProcessBlock(&f.coeffs, &f.state, dst, src)
}

// Reset clears the delay registers. Parameters and coefficients persist.
func (f *Filter) Reset() {
	f.state.Reset()
}

// FrequencyResponse evaluates H(e^jw) of the current coefficients at
// freqHz. The filter state is not touched.
func (f *Filter) FrequencyResponse(freqHz float64) (magnitudeDB, phaseDeg float64) {
	return f.Design().FrequencyResponse(freqHz)
}

// Design returns the currently installed design.
func (f *Filter) Design() Design {
	return Design{
		Params:       f.params,
		SampleRate:   f.sampleRate,
		Coefficients: f.coeffs,
		Valid:        f.initialized,
	}
}

// Params returns the clamped parameters in effect.
func (f *Filter) Params() Params { return f.params }

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Coefficients returns the normalized coefficients in effect.
func (f *Filter) Coefficients() biquad.Coefficients { return f.coeffs }

// State returns a copy of the Direct Form I registers.
func (f *Filter) State() biquad.State { return f.state }

// Initialized reports whether the filter is actively filtering.
func (f *Filter) Initialized() bool { return f.initialized }

// Stable reports whether every pole lies inside the unit circle.
func (f *Filter) Stable() bool { return f.coeffs.Stable() }
