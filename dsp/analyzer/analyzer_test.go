package analyzer

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/matrixfx/dsp/lockfree"
	"github.com/cwbudde/matrixfx/dsp/window"
	"github.com/cwbudde/matrixfx/internal/testutil"
)

const (
	testRate = 48000.0
	testSize = 256
	testBin  = 16
)

func binSine(frames int) []float32 {
	freq := float64(testBin) * testRate / testSize
	return testutil.DeterministicSine[float32](freq, testRate, 1, frames*testSize)
}

func mustNew(t *testing.T, opts ...Option) *Analyzer {
	t.Helper()

	a, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want error
	}{
		{"size too small", WithSize(8), ErrSize},
		{"size not power of two", WithSize(1000), ErrSize},
		{"size too large", WithSize(1 << 17), ErrSize},
		{"negative smoothing", WithSmoothing(-0.1), ErrSmoothing},
		{"full smoothing", WithSmoothing(1), ErrSmoothing},
		{"nan smoothing", WithSmoothing(math.NaN()), ErrSmoothing},
		{"decay one", WithPeakDecay(1), ErrPeakDecay},
		{"negative decay", WithPeakDecay(-1), ErrPeakDecay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	a := mustNew(t)

	if a.Size() != DefaultSize || a.Bins() != DefaultSize/2 {
		t.Fatalf("Size()=%d Bins()=%d", a.Size(), a.Bins())
	}
	if a.Window() != window.TypeHamming {
		t.Fatalf("Window()=%v, want hamming", a.Window())
	}
	if a.Frames() != 0 {
		t.Fatalf("Frames()=%d", a.Frames())
	}
	if got := a.BinFrequency(16, testRate); math.Abs(got-750) > 1e-9 {
		t.Fatalf("BinFrequency=%v, want 750", got)
	}
}

func TestRectangularSineAtBinCentre(t *testing.T) {
	a := mustNew(t, WithSize(testSize), WithWindow(window.TypeRectangular), WithSmoothing(0))

	if n := a.Write(binSine(1)); n != 1 {
		t.Fatalf("Write analysed %d frames, want 1", n)
	}

	mags := a.Spectrum()
	if math.Abs(mags[testBin]-0.5) > 1e-5 {
		t.Fatalf("bin %d magnitude=%v, want 0.5", testBin, mags[testBin])
	}
	for k, v := range mags {
		if k != testBin && v > 1e-5 {
			t.Fatalf("bin %d leaked %v", k, v)
		}
	}
	if a.PeakBin() != testBin {
		t.Fatalf("PeakBin()=%d, want %d", a.PeakBin(), testBin)
	}
}

func TestNeighbourSmoothing(t *testing.T) {
	a := mustNew(t, WithSize(testSize), WithWindow(window.TypeRectangular), WithSmoothing(0.3))
	a.Write(binSine(1))

	mags := a.Spectrum()
	want := []float64{0.35, 0.105, 0.0315}
	for i, w := range want {
		if got := mags[testBin+i]; math.Abs(got-w) > 1e-5 {
			t.Fatalf("bin %d=%v, want %v", testBin+i, got, w)
		}
	}
	if mags[testBin-1] > 1e-5 {
		t.Fatalf("bin below the tone=%v, want ~0", mags[testBin-1])
	}
}

func TestHammingDefaultPeaksAtTone(t *testing.T) {
	a := mustNew(t, WithSize(testSize))
	a.Write(binSine(1))

	if a.PeakBin() != testBin {
		t.Fatalf("PeakBin()=%d, want %d", a.PeakBin(), testBin)
	}
}

func TestHammingCoherentGain(t *testing.T) {
	a := mustNew(t, WithSize(testSize), WithSmoothing(0))
	a.Write(binSine(1))

	cg, err := window.CoherentGain(window.Generate(window.TypeHamming, testSize))
	if err != nil {
		t.Fatal(err)
	}

	if got := a.Spectrum()[testBin]; math.Abs(got-0.5*cg) > 0.01 {
		t.Fatalf("magnitude=%v, want ~%v", got, 0.5*cg)
	}
}

func TestWindowOptions(t *testing.T) {
	rect := mustNew(t, WithSize(testSize), WithWindow(window.TypeRectangular))
	if rect.CoherentGain() != 1 || rect.ENBW() != 1 {
		t.Fatalf("rectangular gain=%v enbw=%v, want 1 1", rect.CoherentGain(), rect.ENBW())
	}

	hann := mustNew(t, WithSize(testSize), WithWindow(window.TypeHann), WithWindowOptions(window.WithPeriodic()))
	if math.Abs(hann.CoherentGain()-0.5) > 1e-9 || math.Abs(hann.ENBW()-1.5) > 1e-9 {
		t.Fatalf("periodic hann gain=%v enbw=%v, want 0.5 1.5", hann.CoherentGain(), hann.ENBW())
	}

	narrow := mustNew(t, WithSize(testSize), WithWindow(window.TypeKaiser), WithWindowOptions(window.WithAlpha(2)))
	wide := mustNew(t, WithSize(testSize), WithSmoothing(0),
		WithWindow(window.TypeKaiser), WithWindowOptions(window.WithAlpha(12)))
	if !(wide.ENBW() > narrow.ENBW()) {
		t.Fatalf("kaiser beta 12 ENBW=%v not above beta 2 ENBW=%v", wide.ENBW(), narrow.ENBW())
	}

	wide.Write(binSine(1))
	if wide.PeakBin() != testBin {
		t.Fatalf("PeakBin()=%d, want %d", wide.PeakBin(), testBin)
	}
	if got, want := wide.Spectrum()[testBin], 0.5*wide.CoherentGain(); math.Abs(got-want) > 0.01 {
		t.Fatalf("magnitude=%v, want ~%v", got, want)
	}
}

func TestWindowOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"tukey above one", []Option{WithWindow(window.TypeTukey), WithWindowOptions(window.WithAlpha(1.5))}},
		{"kaiser negative", []Option{WithWindow(window.TypeKaiser), WithWindowOptions(window.WithAlpha(-1))}},
		{"unknown window", []Option{WithWindow(window.Type(99))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts...); !errors.Is(err, ErrWindow) {
				t.Fatalf("err=%v, want ErrWindow", err)
			}
		})
	}
}

func TestPeakHoldDecay(t *testing.T) {
	a := mustNew(t, WithSize(testSize), WithWindow(window.TypeRectangular), WithSmoothing(0))

	a.Write(binSine(1))
	held := a.Peaks()[testBin]
	if math.Abs(held-0.5) > 1e-5 {
		t.Fatalf("held peak=%v, want 0.5", held)
	}

	a.Write(make([]float32, testSize))
	if a.Spectrum()[testBin] != 0 {
		t.Fatalf("silent frame magnitude=%v", a.Spectrum()[testBin])
	}
	if got := a.Peaks()[testBin]; math.Abs(got-held*DefaultPeakDecay) > 1e-12 {
		t.Fatalf("decayed peak=%v, want %v", got, held*DefaultPeakDecay)
	}

	a.Write(make([]float32, testSize))
	if got := a.Peaks()[testBin]; math.Abs(got-held*DefaultPeakDecay*DefaultPeakDecay) > 1e-12 {
		t.Fatalf("second decay=%v", got)
	}

	a.Write(binSine(1))
	if got := a.Peaks()[testBin]; math.Abs(got-0.5) > 1e-5 {
		t.Fatalf("peak after new tone=%v, want 0.5", got)
	}
}

func TestWritePartialFrames(t *testing.T) {
	a := mustNew(t, WithSize(testSize))
	sig := binSine(3)

	if n := a.Write(sig[:100]); n != 0 {
		t.Fatalf("partial write analysed %d", n)
	}
	if n := a.Write(sig[100:testSize]); n != 1 {
		t.Fatalf("completing write analysed %d, want 1", n)
	}
	if n := a.Write(sig[testSize:]); n != 2 {
		t.Fatalf("two-frame write analysed %d, want 2", n)
	}
	if a.Frames() != 3 {
		t.Fatalf("Frames()=%d, want 3", a.Frames())
	}
}

func TestDrainFromTap(t *testing.T) {
	a := mustNew(t, WithSize(testSize))

	tap, err := lockfree.NewQueue[float32](4 * testSize)
	if err != nil {
		t.Fatal(err)
	}

	sig := binSine(3)
	if n := tap.PushSlice(sig[:testSize*5/2]); n != testSize*5/2 {
		t.Fatalf("PushSlice=%d", n)
	}

	if n := a.Drain(tap); n != 2 {
		t.Fatalf("Drain analysed %d, want 2", n)
	}
	if tap.Len() != 0 {
		t.Fatalf("tap Len()=%d after Drain", tap.Len())
	}

	tap.PushSlice(sig[testSize*5/2:])
	if n := a.Drain(tap); n != 1 {
		t.Fatalf("second Drain analysed %d, want 1", n)
	}
	if a.Drain(nil) != 0 {
		t.Fatal("Drain(nil) should be a no-op")
	}
	if a.PeakBin() != testBin {
		t.Fatalf("PeakBin()=%d", a.PeakBin())
	}
}

func TestSpectrumDB(t *testing.T) {
	a := mustNew(t, WithSize(testSize), WithWindow(window.TypeRectangular), WithSmoothing(0))

	db := a.SpectrumDB(nil)
	if len(db) != a.Bins() {
		t.Fatalf("len=%d", len(db))
	}
	for _, v := range db {
		if v != FloorDB {
			t.Fatalf("silent spectrum=%v dB, want floor", v)
		}
	}

	a.Write(binSine(1))
	db = a.SpectrumDB(db)
	if math.Abs(db[testBin]-(-6.0206)) > 1e-3 {
		t.Fatalf("tone=%v dB, want -6.02", db[testBin])
	}

	peaks := a.PeaksDB(nil)
	if math.Abs(peaks[testBin]-db[testBin]) > 1e-9 {
		t.Fatalf("peak=%v dB, spectrum=%v dB", peaks[testBin], db[testBin])
	}
	testutil.RequireFinite(t, db)
}

func TestReset(t *testing.T) {
	a := mustNew(t, WithSize(testSize))
	a.Write(binSine(1))
	a.Write(binSine(1)[:10])

	a.Reset()

	if a.Frames() != 0 {
		t.Fatalf("Frames()=%d after Reset", a.Frames())
	}
	for k := range a.Bins() {
		if a.Spectrum()[k] != 0 || a.Peaks()[k] != 0 {
			t.Fatalf("bin %d not cleared", k)
		}
	}

	// The partial frame was dropped, so one full frame is needed again.
	if n := a.Write(binSine(1)[:testSize-1]); n != 0 {
		t.Fatalf("Write analysed %d after Reset", n)
	}
}

func BenchmarkWrite(b *testing.B) {
	a, err := New()
	if err != nil {
		b.Fatal(err)
	}
	sig := testutil.DeterministicNoise[float32](1, 0.5, DefaultSize)

	b.ReportAllocs()
	b.SetBytes(int64(len(sig) * 4))
	for i := 0; i < b.N; i++ {
		a.Write(sig)
	}
}
