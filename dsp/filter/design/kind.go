package design

import (
	"fmt"
	"strings"

	"github.com/cwbudde/matrixfx/dsp/filter/biquad"
)

// Kind selects one of the RBJ second-order responses. The numeric values
// are stable and used as the stepped "type" parameter by hosts.
type Kind int

const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
	KindNotch
	KindPeak
	KindLowShelf
	KindHighShelf

	numKinds
)

var kindNames = [numKinds]string{
	KindLowpass:   "lowpass",
	KindHighpass:  "highpass",
	KindBandpass:  "bandpass",
	KindNotch:     "notch",
	KindPeak:      "peak",
	KindLowShelf:  "lowshelf",
	KindHighShelf: "highshelf",
}

// Func computes normalized coefficients for one response kind. Kinds that
// have no gain term ignore gainDB.
type Func func(freq, q, gainDB, sampleRate float64) biquad.Coefficients

var designers = [numKinds]Func{
	KindLowpass: func(freq, q, _, sampleRate float64) biquad.Coefficients {
		return Lowpass(freq, q, sampleRate)
	},
	KindHighpass: func(freq, q, _, sampleRate float64) biquad.Coefficients {
		return Highpass(freq, q, sampleRate)
	},
	KindBandpass: func(freq, q, _, sampleRate float64) biquad.Coefficients {
		return Bandpass(freq, q, sampleRate)
	},
	KindNotch: func(freq, q, _, sampleRate float64) biquad.Coefficients {
		return Notch(freq, q, sampleRate)
	},
	KindPeak: func(freq, q, gainDB, sampleRate float64) biquad.Coefficients {
		return Peak(freq, gainDB, q, sampleRate)
	},
	KindLowShelf: func(freq, q, gainDB, sampleRate float64) biquad.Coefficients {
		return LowShelf(freq, gainDB, q, sampleRate)
	},
	KindHighShelf: func(freq, q, gainDB, sampleRate float64) biquad.Coefficients {
		return HighShelf(freq, gainDB, q, sampleRate)
	},
}

// Kinds returns every valid kind in numeric order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k names a known response.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// HasGain reports whether gainDB affects the response of k.
func (k Kind) HasGain() bool {
	return k == KindPeak || k == KindLowShelf || k == KindHighShelf
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind from its name (case-insensitive).
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("design: unknown filter kind %q", name)
}

// ForType returns the designer for k. ok is false for unknown kinds.
func ForType(k Kind) (fn Func, ok bool) {
	if !k.Valid() {
		return nil, false
	}
	return designers[k], true
}

// Design evaluates the designer for k. Unknown kinds yield pass-through
// coefficients.
func Design(k Kind, freq, q, gainDB, sampleRate float64) biquad.Coefficients {
	fn, ok := ForType(k)
	if !ok {
		return biquad.Passthrough()
	}
	return fn(freq, q, gainDB, sampleRate)
}
