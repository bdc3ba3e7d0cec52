package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
	archregistry "github.com/cwbudde/matrixfx/dsp/filter/biquad/internal/arch/registry"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows the Direct Form I difference equation:
//
//	y = B0*x + B1*x1 + B2*x2 - A1*y1 - A2*y2
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Passthrough returns unity-gain coefficients (B0 = 1, all else 0).
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// State is the Direct Form I memory of one section: the two previous
// inputs and the two previous outputs.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

var (
	processBlockImpl     archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// Step filters one sample and shifts the delay registers.
func (s *State) Step(c *Coefficients, x float64) float64 {
	y := c.B0*x + c.B1*s.X1 + c.B2*s.X2 - c.A1*s.Y1 - c.A2*s.Y2

	s.X2 = s.X1
	s.X1 = x
	s.Y2 = s.Y1
	s.Y1 = y

	return y
}

// Reset clears all four delay registers.
func (s *State) Reset() {
	*s = State{}
}

// ProcessBlock filters src into dst with coefficients c, advancing s.
// It processes min(len(dst), len(src)) samples. dst and src may be the
// same slice; any other overlap is not supported. Zero-alloc.
func ProcessBlock(c *Coefficients, s *State, dst, src []float32) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: c.B0,
		B1: c.B1,
		B2: c.B2,
		A1: c.A1,
		A2: c.A2,
	}
	st := archregistry.State{X1: s.X1, X2: s.X2, Y1: s.Y1, Y2: s.Y2}

	st = processBlockImpl(coeffs, st, dst[:n], src[:n])

	s.X1, s.X2, s.Y1, s.Y2 = st.X1, st.X2, st.Y1, st.Y2
}

// KernelName reports which registered block kernel is in use.
func KernelName() string {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		return ""
	}
	return entry.Name
}

func initProcessBlockKernel() {
	entry := archregistry.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}

// ImpulseResponse computes n samples of the impulse response h[n] from a
// zeroed state. The coefficients are not modified.
func (c *Coefficients) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	var s State
	ir := make([]float64, n)
	ir[0] = s.Step(c, 1)
	for i := 1; i < n; i++ {
		ir[i] = s.Step(c, 0)
	}
	return ir
}

// DCGain returns H(z) at z = 1, the steady-state gain for a constant input.
func (c *Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return 0
	}
	return (c.B0 + c.B1 + c.B2) / den
}
