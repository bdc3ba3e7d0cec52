package analyzer

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/matrixfx/dsp/core"
	"github.com/cwbudde/matrixfx/dsp/lockfree"
	"github.com/cwbudde/matrixfx/dsp/window"
)

const (
	DefaultSize      = 1024
	DefaultSmoothing = 0.3
	DefaultPeakDecay = 0.95

	MinSize = 16
	MaxSize = 1 << 16

	// FloorDB is reported for bins with zero magnitude.
	FloorDB = -130.0
)

var (
	ErrSize      = errors.New("analyzer: size must be a power of two in [16, 65536]")
	ErrSmoothing = errors.New("analyzer: smoothing must be in [0, 1)")
	ErrPeakDecay = errors.New("analyzer: peak decay must be in [0, 1)")
	ErrWindow    = errors.New("analyzer: invalid window")
)

type config struct {
	size      int
	window    window.Type
	winOpts   []window.Option
	smoothing float64
	peakDecay float64
}

// Option configures an Analyzer.
type Option func(*config)

// WithSize sets the frame length. It must be a power of two.
func WithSize(n int) Option {
	return func(c *config) { c.size = n }
}

// WithWindow selects the analysis window. The default is Hamming.
func WithWindow(t window.Type) Option {
	return func(c *config) { c.window = t }
}

// WithWindowOptions passes shape options to the window, such as the Kaiser
// beta, the Tukey taper or the periodic form.
func WithWindowOptions(opts ...window.Option) Option {
	return func(c *config) { c.winOpts = append(c.winOpts, opts...) }
}

// WithSmoothing sets the share of the lower neighbour mixed into each bin.
// Zero disables smoothing.
func WithSmoothing(amount float64) Option {
	return func(c *config) { c.smoothing = amount }
}

// WithPeakDecay sets the per-frame multiplier applied to held peaks.
func WithPeakDecay(decay float64) Option {
	return func(c *config) { c.peakDecay = decay }
}

// Analyzer accumulates samples into frames and keeps the latest spectrum
// and its peak-hold trace. It is not safe for concurrent use.
type Analyzer struct {
	cfg config

	plan   *algofft.Plan[complex128]
	win    []float64
	gain   float64
	enbw   float64
	frame  []float64
	filled int

	fftIn  []complex128
	fftOut []complex128
	re, im []float64

	spectrum []float64
	peaks    []float64
	frames   uint64

	pull []float32
}

// New returns an Analyzer with Hamming window, 1024-sample frames, 0.3
// neighbour smoothing, and 0.95 peak decay unless overridden.
func New(opts ...Option) (*Analyzer, error) {
	cfg := config{
		size:      DefaultSize,
		window:    window.TypeHamming,
		smoothing: DefaultSmoothing,
		peakDecay: DefaultPeakDecay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.size < MinSize || cfg.size > MaxSize || cfg.size&(cfg.size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, cfg.size)
	}
	if !(cfg.smoothing >= 0 && cfg.smoothing < 1) {
		return nil, fmt.Errorf("%w: %v", ErrSmoothing, cfg.smoothing)
	}
	if !(cfg.peakDecay >= 0 && cfg.peakDecay < 1) {
		return nil, fmt.Errorf("%w: %v", ErrPeakDecay, cfg.peakDecay)
	}

	if err := window.Check(cfg.window, cfg.winOpts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}
	win := window.Generate(cfg.window, cfg.size, cfg.winOpts...)
	gain, err := window.CoherentGain(win)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}
	enbw, err := window.EquivalentNoiseBandwidth(win)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindow, err)
	}

	plan, err := algofft.NewPlan64(cfg.size)
	if err != nil {
		return nil, fmt.Errorf("analyzer: fft plan: %w", err)
	}

	bins := cfg.size / 2

	return &Analyzer{
		cfg:      cfg,
		plan:     plan,
		win:      win,
		gain:     gain,
		enbw:     enbw,
		frame:    make([]float64, cfg.size),
		fftIn:    make([]complex128, cfg.size),
		fftOut:   make([]complex128, cfg.size),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		spectrum: make([]float64, bins),
		peaks:    make([]float64, bins),
		pull:     make([]float32, cfg.size),
	}, nil
}

// Size returns the frame length.
func (a *Analyzer) Size() int { return a.cfg.size }

// Bins returns the number of spectrum bins, Size()/2.
func (a *Analyzer) Bins() int { return len(a.spectrum) }

// Window returns the analysis window type.
func (a *Analyzer) Window() window.Type { return a.cfg.window }

// CoherentGain returns the window's mean, the factor by which a bin-centred
// tone is scaled.
func (a *Analyzer) CoherentGain() float64 { return a.gain }

// ENBW returns the window's equivalent noise bandwidth in bins.
func (a *Analyzer) ENBW() float64 { return a.enbw }

// Frames returns how many frames have been analysed since creation or Reset.
func (a *Analyzer) Frames() uint64 { return a.frames }

// BinFrequency returns the centre frequency of bin k in Hz.
func (a *Analyzer) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(a.cfg.size)
}

// Write appends samples and analyses every frame they complete. It returns
// the number of frames analysed.
func (a *Analyzer) Write(samples []float32) int {
	done := 0
	for len(samples) > 0 {
		n := min(len(samples), a.cfg.size-a.filled)
		dst := a.frame[a.filled : a.filled+n]
		for i, v := range samples[:n] {
			dst[i] = float64(v)
		}

		a.filled += n
		samples = samples[n:]

		if a.filled == a.cfg.size {
			if err := a.analyze(); err == nil {
				done++
			}
			a.filled = 0
		}
	}

	return done
}

// Drain feeds the samples queued in tap at the time of the call to Write
// and returns the number of frames analysed. It must run on the tap's
// consumer goroutine.
func (a *Analyzer) Drain(tap *lockfree.Queue[float32]) int {
	if tap == nil {
		return 0
	}

	done := 0
	for remaining := tap.Len(); remaining > 0; {
		n := tap.PopSlice(a.pull[:min(remaining, len(a.pull))])
		if n == 0 {
			break
		}
		remaining -= n
		done += a.Write(a.pull[:n])
	}

	return done
}

// Spectrum returns the latest magnitudes. The slice is owned by the
// Analyzer and is overwritten by the next frame.
func (a *Analyzer) Spectrum() []float64 { return a.spectrum }

// Peaks returns the peak-hold trace. The slice is owned by the Analyzer.
func (a *Analyzer) Peaks() []float64 { return a.peaks }

// SpectrumDB writes the latest magnitudes in dBFS into dst, growing it if
// needed, and returns it.
func (a *Analyzer) SpectrumDB(dst []float64) []float64 {
	return toDB(dst, a.spectrum)
}

// PeaksDB writes the peak-hold trace in dBFS into dst.
func (a *Analyzer) PeaksDB(dst []float64) []float64 {
	return toDB(dst, a.peaks)
}

// PeakBin returns the index of the largest spectrum bin.
func (a *Analyzer) PeakBin() int {
	best := 0
	for k, v := range a.spectrum {
		if v > a.spectrum[best] {
			best = k
		}
	}
	return best
}

// Reset discards the partial frame, the spectrum and the held peaks.
func (a *Analyzer) Reset() {
	a.filled = 0
	a.frames = 0
	core.Zero(a.frame)
	core.Zero(a.spectrum)
	core.Zero(a.peaks)
}

func (a *Analyzer) analyze() error {
	if err := window.ApplyCoefficientsInPlace(a.frame, a.win); err != nil {
		return err
	}

	for i, v := range a.frame {
		a.fftIn[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.fftOut, a.fftIn); err != nil {
		return err
	}

	for k := range a.re {
		a.re[k] = real(a.fftOut[k])
		a.im[k] = imag(a.fftOut[k])
	}

	vecmath.Magnitude(a.spectrum, a.re, a.im)
	vecmath.ScaleBlock(a.spectrum, a.spectrum, 1/float64(a.cfg.size))

	if s := a.cfg.smoothing; s > 0 {
		for k := 1; k < len(a.spectrum); k++ {
			a.spectrum[k] = (1-s)*a.spectrum[k] + s*a.spectrum[k-1]
		}
	}

	for k, v := range a.spectrum {
		if v > a.peaks[k] {
			a.peaks[k] = v
		} else {
			a.peaks[k] *= a.cfg.peakDecay
		}
	}

	a.frames++
	return nil
}

func toDB(dst, src []float64) []float64 {
	dst = core.EnsureLen(dst, len(src))
	for k, v := range src {
		if v <= 0 {
			dst[k] = FloorDB
			continue
		}
		dst[k] = max(core.GainToDB(v), FloorDB)
	}
	return dst
}
