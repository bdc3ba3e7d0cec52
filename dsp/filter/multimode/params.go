package multimode

import (
	"math"

	"github.com/cwbudde/matrixfx/dsp/core"
	"github.com/cwbudde/matrixfx/dsp/filter/design"
)

// Type selects the filter response.
type Type = design.Kind

const (
	Lowpass   = design.KindLowpass
	Highpass  = design.KindHighpass
	Bandpass  = design.KindBandpass
	Notch     = design.KindNotch
	Peaking   = design.KindPeak
	LowShelf  = design.KindLowShelf
	HighShelf = design.KindHighShelf
)

const (
	// MinResonance is the smallest Q accepted; lower values are raised to it.
	MinResonance = 0.01
	// MaxResonance is the largest Q accepted.
	MaxResonance = 100.0
	// MinCutoffHz is the lowest cutoff accepted.
	MinCutoffHz = 1.0
	// MaxCutoffRatio bounds the cutoff below Nyquist as a fraction of the
	// sample rate.
	MaxCutoffRatio = 0.499
	// MaxGainDB bounds the shelf/peak gain magnitude.
	MaxGainDB = 60.0

	defaultCutoffHz  = 1000.0
	defaultResonance = 1.0
)

// Params is the user-facing parameter set of a [Filter].
type Params struct {
	Type      Type
	Cutoff    float64 // Hz
	Resonance float64 // Q
	GainDB    float64 // peaking and shelving only
}

// DefaultParams returns a 1 kHz lowpass with Q = 1 and 0 dB gain.
func DefaultParams() Params {
	return Params{
		Type:      Lowpass,
		Cutoff:    defaultCutoffHz,
		Resonance: defaultResonance,
	}
}

// Clamp returns p with every field forced into its legal range for the
// given sample rate. The cutoff always lands strictly inside (0, sr/2);
// below 2 Hz of Nyquist headroom the lower bound shrinks with the rate.
// Without a valid sample rate only the lower cutoff bound is applied.
func (p Params) Clamp(sampleRate float64) Params {
	if !p.Type.Valid() {
		p.Type = Lowpass
	}

	minCutoff, maxCutoff := MinCutoffHz, math.Inf(1)
	if validSampleRate(sampleRate) {
		maxCutoff = MaxCutoffRatio * sampleRate
		minCutoff = min(MinCutoffHz, maxCutoff/2)
	}
	p.Cutoff = core.Clamp(p.Cutoff, minCutoff, maxCutoff)

	p.Resonance = core.Clamp(p.Resonance, MinResonance, MaxResonance)

	if math.IsNaN(p.GainDB) {
		p.GainDB = 0
	}
	p.GainDB = core.Clamp(p.GainDB, -MaxGainDB, MaxGainDB)

	return p
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsInf(sampleRate, 0)
}
