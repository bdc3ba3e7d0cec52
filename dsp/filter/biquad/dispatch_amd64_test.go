//go:build amd64 && !purego

package biquad

import (
	"sync"
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
	archregistry "github.com/cwbudde/matrixfx/dsp/filter/biquad/internal/arch/registry"
)

func resetProcessBlockDispatchForTest() {
	processBlockImpl = nil
	processBlockInitOnce = sync.Once{}
}

func TestProcessBlockDispatch_AMD64Modes(t *testing.T) {
	tests := []struct {
		name     string
		features cpu.Features
		wantImpl string
	}{
		{
			name: "generic-forced",
			features: cpu.Features{
				ForceGeneric: true,
				Architecture: "amd64",
			},
			wantImpl: "generic",
		},
		{
			name: "sse2-only",
			features: cpu.Features{
				HasSSE2:      true,
				HasAVX2:      false,
				Architecture: "amd64",
			},
			wantImpl: "generic",
		},
		{
			name: "avx2",
			features: cpu.Features{
				HasSSE2:      true,
				HasAVX2:      true,
				Architecture: "amd64",
			},
			wantImpl: "avx2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu.SetForcedFeatures(tt.features)

			defer cpu.ResetDetection()

			resetProcessBlockDispatchForTest()
			defer resetProcessBlockDispatchForTest()

			entry := archregistry.Global.Lookup(cpu.DetectFeatures())
			if entry == nil {
				t.Fatal("Lookup returned nil")
			}

			if entry.Name != tt.wantImpl {
				t.Fatalf("expected %q, got %q", tt.wantImpl, entry.Name)
			}

			coeff := testLowpass()
			input := []float32{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1, 0.4, 0.6}

			var ref State
			want := make([]float32, len(input))
			for i, x := range input {
				want[i] = float32(ref.Step(&coeff, float64(x)))
			}

			var st State
			got := append([]float32(nil), input...)
			ProcessBlock(&coeff, &st, got, got)

			for i := range got {
				if !almostEqual(float64(got[i]), float64(want[i]), 1e-6) {
					t.Fatalf("sample %d mismatch: got %.9g, want %.9g", i, got[i], want[i])
				}
			}

			if !stateClose(st, ref, 1e-9) {
				t.Fatalf("state mismatch: got %+v, want %+v", st, ref)
			}
		})
	}
}

func BenchmarkProcessBlock_Dispatch_AMD64(b *testing.B) {
	modes := []struct {
		name     string
		features cpu.Features
	}{
		{
			name: "Generic",
			features: cpu.Features{
				ForceGeneric: true,
				Architecture: "amd64",
			},
		},
		{
			name: "AVX2",
			features: cpu.Features{
				HasSSE2:      true,
				HasAVX2:      true,
				Architecture: "amd64",
			},
		},
	}

	for _, mode := range modes {
		b.Run(mode.name, func(b *testing.B) {
			cpu.SetForcedFeatures(mode.features)

			defer cpu.ResetDetection()

			resetProcessBlockDispatchForTest()
			defer resetProcessBlockDispatchForTest()

			c := testLowpass()
			var st State

			buf := make([]float32, 4096)
			for i := range buf {
				buf[i] = float32(i) * 0.001
			}

			b.SetBytes(4096 * 4)
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				ProcessBlock(&c, &st, buf, buf)
			}
		})
	}
}
