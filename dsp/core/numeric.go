package core

import "math"

const defaultEpsilon = 1e-12

// Float is the set of sample and parameter types handled by this module.
type Float interface {
	~float32 | ~float64
}

// Clamp limits value to the inclusive range [min, max].
// NaN values are mapped to min so that a corrupt parameter never reaches
// coefficient design. Inverted bounds are swapped, so callers deriving a
// bound from runtime values must order the pair themselves.
func Clamp[T Float](value, min, max T) T {
	if min > max {
		min, max = max, min
	}

	if value != value {
		return min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// FreqToOmega converts a frequency in Hz to normalized angular frequency
// in radians per sample (2*pi*f/fs). A non-positive sample rate yields 0.
func FreqToOmega(freqHz, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return 2 * math.Pi * freqHz / sampleRate
}

// DBToGain converts dB to linear amplitude (20*log10 convention).
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// GainToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func GainToDB(gain float64) float64 {
	if gain < 0 {
		return math.NaN()
	}

	if gain == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(gain)
}

// PowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func PowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
