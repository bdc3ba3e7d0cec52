// Package generic registers the portable Direct Form I block kernel.
package generic

import (
	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/cwbudde/matrixfx/dsp/filter/biquad/internal/arch/registry"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:         "generic",
		SIMDLevel:    cpu.SIMDNone,
		Priority:     0,
		ProcessBlock: processBlock,
	})
}

func processBlock(c registry.Coefficients, s registry.State, dst, src []float32) registry.State {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	x1, x2, y1, y2 := s.X1, s.X2, s.Y1, s.Y2

	_ = dst[len(src)-1] // bounds check hint
	for i, in := range src {
		x := float64(in)
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		dst[i] = float32(y)
	}

	return registry.State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}
