package biquad

import (
	"math"
	"math/cmplx"
)

// omega maps freqHz to the normalized angular frequency in radians/sample.
func omega(freqHz, sampleRate float64) float64 {
	return 2 * math.Pi * freqHz / sampleRate
}

// Response evaluates H(z) on the unit circle at freqHz:
//
//	H = (b0 + b1 z^-1 + b2 z^-2) / (1 + a1 z^-1 + a2 z^-2),  z = e^{jω}
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zi := cmplx.Rect(1, -omega(freqHz, sampleRate))

	num := complex(c.B0, 0) + zi*(complex(c.B1, 0)+zi*complex(c.B2, 0))
	den := 1 + zi*(complex(c.A1, 0)+zi*complex(c.A2, 0))
	return num / den
}

// MagnitudeSquared returns |H(f)|² without complex arithmetic. Numerator
// and denominator are expanded in cos ω and cos 2ω.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := omega(freqHz, sampleRate)
	c1, c2 := math.Cos(w), math.Cos(2*w)

	num := c.B0*c.B0 + c.B1*c.B1 + c.B2*c.B2 +
		2*(c.B0*c.B1+c.B1*c.B2)*c1 + 2*c.B0*c.B2*c2
	den := 1 + c.A1*c.A1 + c.A2*c.A2 +
		2*(c.A1+c.A1*c.A2)*c1 + 2*c.A2*c2
	return num / den
}

// MagnitudeDB returns |H(f)| in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in radians, in [-π, π].
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// PhaseDegrees is Phase in degrees.
func (c *Coefficients) PhaseDegrees(freqHz, sampleRate float64) float64 {
	return c.Phase(freqHz, sampleRate) * 180 / math.Pi
}
