package design

import (
	"math"

	"github.com/cwbudde/matrixfx/dsp/core"
	"github.com/cwbudde/matrixfx/dsp/filter/biquad"
)

// defaultQ replaces a non-positive or non-finite quality factor.
const defaultQ = 1 / math.Sqrt2

// rbj holds the bilinear-transform terms every cookbook formula shares.
type rbj struct {
	cos, sin, alpha float64
	amp             float64 // 10^(gain/40)
}

// prewarp derives the shared terms. ok is false when freq is outside
// (0, sampleRate/2) or sampleRate is not positive and finite.
func prewarp(freq, q, gainDB, sampleRate float64) (r rbj, ok bool) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return rbj{}, false
	}
	if !(freq > 0) || freq >= sampleRate/2 || math.IsInf(freq, 0) {
		return rbj{}, false
	}
	if !(q > 0) || math.IsInf(q, 0) {
		q = defaultQ
	}

	w0 := core.FreqToOmega(freq, sampleRate)
	r.cos, r.sin = math.Cos(w0), math.Sin(w0)
	r.alpha = r.sin / (2 * q)
	r.amp = math.Pow(10, gainDB/40)

	return r, true
}

// normalize divides every tap by a0. A degenerate a0 yields the zero
// Coefficients, which silence the section.
func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	inv := 1 / a0
	return biquad.Coefficients{B0: b0 * inv, B1: b1 * inv, B2: b2 * inv, A1: a1 * inv, A2: a2 * inv}
}

// Lowpass designs a second-order lowpass at freq (Hz).
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, 0, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b1 := 1 - r.cos
	return normalize(b1/2, b1, b1/2, 1+r.alpha, -2*r.cos, 1-r.alpha)
}

// Highpass designs a second-order highpass at freq (Hz).
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, 0, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	b1 := 1 + r.cos
	return normalize(b1/2, -b1, b1/2, 1+r.alpha, -2*r.cos, 1-r.alpha)
}

// Bandpass designs a constant-skirt-gain bandpass; its peak gain is Q.
func Bandpass(freq, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, 0, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	return normalize(r.sin/2, 0, -r.sin/2, 1+r.alpha, -2*r.cos, 1-r.alpha)
}

// Notch designs a band-reject section centred at freq (Hz).
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, 0, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	return normalize(1, -2*r.cos, 1, 1+r.alpha, -2*r.cos, 1-r.alpha)
}

// Peak designs a peaking equalizer. The magnitude at freq is gainDB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, gainDB, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	up, down := r.alpha*r.amp, r.alpha/r.amp
	return normalize(1+up, -2*r.cos, 1-up, 1+down, -2*r.cos, 1-down)
}

// LowShelf designs a low shelf with gainDB below freq. q sets the slope.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, gainDB, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	a := r.amp
	beta := 2 * math.Sqrt(a) * r.alpha
	sum, diff := (a+1)*r.cos, (a-1)*r.cos

	return normalize(
		a*((a+1)-diff+beta),
		2*a*((a-1)-sum),
		a*((a+1)-diff-beta),
		(a+1)+diff+beta,
		-2*((a-1)+sum),
		(a+1)+diff-beta,
	)
}

// HighShelf designs a high shelf with gainDB above freq. q sets the slope.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	r, ok := prewarp(freq, q, gainDB, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	a := r.amp
	beta := 2 * math.Sqrt(a) * r.alpha
	sum, diff := (a+1)*r.cos, (a-1)*r.cos

	return normalize(
		a*((a+1)+diff+beta),
		-2*a*((a-1)+sum),
		a*((a+1)+diff-beta),
		(a+1)-diff+beta,
		2*((a-1)-sum),
		(a+1)-diff-beta,
	)
}
