package modulation

import (
	"testing"

	"github.com/cwbudde/matrixfx/dsp/delay"
)

func BenchmarkFlangerProcessBlock(b *testing.B) {
	for _, bc := range []struct {
		name string
		opt  FlangerOption
	}{
		{"Linear", WithInterpolation(delay.Linear)},
		{"Hermite", WithInterpolation(delay.Hermite)},
	} {
		b.Run(bc.name, func(b *testing.B) {
			f := NewFlanger(0.5, 50, 30, 50, 48000, bc.opt)
			buf := make([]float32, 512)
			for i := range buf {
				buf[i] = float32(i%64)/64 - 0.5
			}

			b.SetBytes(int64(len(buf) * 4))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				f.ProcessBlock(buf, buf)
			}
		})
	}
}
