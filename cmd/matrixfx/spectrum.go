package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/matrixfx/dsp/analyzer"
	"github.com/cwbudde/matrixfx/dsp/window"
	"github.com/cwbudde/matrixfx/plugin"
)

// streamToAnalyzer plays the file through p on one goroutine while a
// second goroutine drains p's tap into an. The audio side waits for tap
// space instead of dropping, since nothing here is real time.
func streamToAnalyzer(ctx context.Context, p tappedProcessor, in *pcmAudio, blockSize int, an *analyzer.Analyzer) error {
	r, err := newRenderer(p, in, blockSize)
	if err != nil {
		return err
	}

	tap := p.Tap()
	if tap == nil {
		return fmt.Errorf("processor has no tap")
	}

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)

		for off := 0; off < in.Frames(); {
			for tap.Cap()-tap.Len() < blockSize {
				if err := ctx.Err(); err != nil {
					return err
				}
				runtime.Gosched()
			}
			off += r.block(p, off)
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-done:
				an.Drain(tap)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if an.Drain(tap) == 0 {
				runtime.Gosched()
			}
		}
	})

	return g.Wait()
}

type spectrumPeak struct {
	bin    int
	freqHz float64
	level  float64
	held   float64
}

// topPeaks returns the n highest local maxima of the held-peak trace.
func topPeaks(an *analyzer.Analyzer, sampleRate float64, n int) []spectrumPeak {
	held := an.PeaksDB(nil)
	level := an.SpectrumDB(nil)

	var peaks []spectrumPeak
	for k := 1; k < len(held)-1; k++ {
		if held[k] <= analyzer.FloorDB || held[k] < held[k-1] || held[k] < held[k+1] {
			continue
		}
		peaks = append(peaks, spectrumPeak{
			bin:    k,
			freqHz: an.BinFrequency(k, sampleRate),
			level:  level[k],
			held:   held[k],
		})
	}

	slices.SortFunc(peaks, func(a, b spectrumPeak) int {
		switch {
		case a.held > b.held:
			return -1
		case a.held < b.held:
			return 1
		default:
			return a.bin - b.bin
		}
	})

	if len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}

func printPeaks(w io.Writer, peaks []spectrumPeak) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Bin\tFreq [Hz]\tLast [dB]\tHeld [dB]\t\n"); err != nil {
		return err
	}
	for _, p := range peaks {
		if _, err := fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\t\n", p.bin, p.freqHz, p.level, p.held); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func spectrumCommand(a *app) *cobra.Command {
	var (
		size       int
		windowName string
		alpha      float64
		periodic   bool
		top        int
		effect     string
		blockSize  int
	)

	cmd := &cobra.Command{
		Use:   "spectrum [flags] in.wav",
		Short: "Run a WAV file through the tap and spectrum analyzer and print peak bins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			winType, err := window.ParseType(windowName)
			if err != nil {
				return err
			}

			var winOpts []window.Option
			if cmd.Flags().Changed("window-alpha") {
				winOpts = append(winOpts, window.WithAlpha(alpha))
			}
			if periodic {
				winOpts = append(winOpts, window.WithPeriodic())
			}

			an, err := analyzer.New(
				analyzer.WithSize(size),
				analyzer.WithWindow(winType),
				analyzer.WithWindowOptions(winOpts...),
			)
			if err != nil {
				return err
			}

			tapSize := 4 * max(size, blockSize)

			var p tappedProcessor
			switch effect {
			case "none", "filter":
				fp, err := plugin.NewFilterProcessor(plugin.WithTap(tapSize))
				if err != nil {
					return err
				}
				if effect == "none" {
					if err := fp.SetParam(plugin.FilterEnabled, 0); err != nil {
						return err
					}
				}
				p = fp
			case "flanger":
				fl, err := plugin.NewFlangerProcessor(plugin.WithTap(tapSize))
				if err != nil {
					return err
				}
				p = fl
			default:
				return fmt.Errorf("--effect must be none, filter or flanger: %q", effect)
			}

			in, err := readWAV(args[0])
			if err != nil {
				return err
			}

			if err := streamToAnalyzer(cmd.Context(), p, in, blockSize, an); err != nil {
				return err
			}
			a.log.Info("analysed",
				"input", args[0],
				"frames", an.Frames(),
				"fft_size", an.Size(),
				"window", an.Window().String(),
				"coherent_gain", an.CoherentGain(),
				"enbw_bins", an.ENBW(),
				"tap_dropped", p.TapDropped())

			return printPeaks(a.stdout, topPeaks(an, float64(in.SampleRate), top))
		},
	}

	cmd.Flags().IntVar(&size, "size", analyzer.DefaultSize, "FFT frame size (power of two)")
	cmd.Flags().StringVarP(&windowName, "window", "w", window.TypeHamming.String(), "Analysis window")
	cmd.Flags().Float64Var(&alpha, "window-alpha", 1, "Kaiser beta or Tukey taper ratio in [0, 1]")
	cmd.Flags().BoolVar(&periodic, "periodic", false, "Use the periodic window form instead of the symmetric one")
	cmd.Flags().IntVarP(&top, "top", "n", 5, "Number of peaks to print")
	cmd.Flags().StringVarP(&effect, "effect", "e", "none", "Processor in front of the tap: none, filter, flanger")
	cmd.Flags().IntVar(&blockSize, "block", defaultBlockSize, "Processing block size in frames")

	return cmd
}
