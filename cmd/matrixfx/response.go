package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/matrixfx/dsp/filter/multimode"
)

var errFrequencyGrid = errors.New("invalid frequency grid")

// logGrid returns n log-spaced frequencies from lo to hi inclusive.
func logGrid(lo, hi float64, n int) ([]float64, error) {
	if n < 1 || !(lo > 0) || !(hi >= lo) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: %d points over [%v, %v] Hz", errFrequencyGrid, n, lo, hi)
	}
	if n == 1 {
		return []float64{lo}, nil
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi

	return out, nil
}

func printResponse(w io.Writer, d multimode.Design, freqs []float64) error {
	p := d.Params
	if _, err := fmt.Fprintf(w, "%s  cutoff %.1f Hz  Q %.3f  gain %.2f dB  @ %.0f Hz\n",
		p.Type, p.Cutoff, p.Resonance, p.GainDB, d.SampleRate); err != nil {
		return err
	}

	c := d.Coefficients
	if _, err := fmt.Fprintf(w, "b0 %.8f  b1 %.8f  b2 %.8f  a1 %.8f  a2 %.8f\n", c.B0, c.B1, c.B2, c.A1, c.A2); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "stable %t  max pole radius %.6f\n\n", c.Stable(), c.MaxPoleRadius()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Freq [Hz]\tMagnitude [dB]\tPhase [deg]\t\n"); err != nil {
		return err
	}
	for _, f := range freqs {
		mag, phase := d.FrequencyResponse(f)
		if _, err := fmt.Fprintf(tw, "%.1f\t%.2f\t%.1f\t\n", f, mag, phase); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func responseCommand(a *app) *cobra.Command {
	var (
		flags      filterFlags
		sampleRate float64
		points     int
		minHz      float64
		maxHz      float64
	)

	cmd := &cobra.Command{
		Use:   "response [flags]",
		Short: "Print the magnitude and phase response of a filter design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := flags.kind()
			if err != nil {
				return err
			}
			if !(sampleRate > 0) {
				return fmt.Errorf("--rate must be > 0: %v", sampleRate)
			}

			hi := maxHz
			if limit := multimode.MaxCutoffRatio * sampleRate; hi <= 0 || hi > limit {
				hi = limit
			}
			freqs, err := logGrid(minHz, hi, points)
			if err != nil {
				return err
			}

			d := multimode.NewDesign(multimode.Params{
				Type:      k,
				Cutoff:    flags.cutoff,
				Resonance: flags.resonance,
				GainDB:    flags.gainDB,
			}, sampleRate)
			a.log.Debug("design", "params", fmt.Sprintf("%+v", d.Params), "valid", d.Valid)

			return printResponse(a.stdout, d, freqs)
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&sampleRate, "rate", 48000, "Sample rate in Hz")
	cmd.Flags().IntVarP(&points, "points", "n", 24, "Number of log-spaced frequencies")
	cmd.Flags().Float64Var(&minHz, "min", 20, "Lowest frequency in Hz")
	cmd.Flags().Float64Var(&maxHz, "max", 20000, "Highest frequency in Hz, capped just below Nyquist")

	return cmd
}
