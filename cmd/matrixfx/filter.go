package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/matrixfx/dsp/filter/design"
	"github.com/cwbudde/matrixfx/plugin"
)

type filterFlags struct {
	typeName  string
	cutoff    float64
	resonance float64
	gainDB    float64
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typeName, "type", "t", design.KindLowpass.String(),
		"Filter type: "+strings.Join(kindNames(), ", "))
	cmd.Flags().Float64VarP(&f.cutoff, "cutoff", "c", 1000, "Cutoff or centre frequency in Hz")
	cmd.Flags().Float64Var(&f.resonance, "q", 1, "Resonance (Q)")
	cmd.Flags().Float64VarP(&f.gainDB, "gain", "g", 0, "Gain in dB for peak and shelf types")
}

func (f *filterFlags) kind() (design.Kind, error) {
	k, err := design.ParseKind(f.typeName)
	if err != nil {
		return 0, fmt.Errorf("--type: %w", err)
	}
	return k, nil
}

func (f *filterFlags) params() ([]paramValue, error) {
	k, err := f.kind()
	if err != nil {
		return nil, err
	}

	return []paramValue{
		{plugin.FilterType, float64(k)},
		{plugin.FilterCutoff, f.cutoff},
		{plugin.FilterResonance, f.resonance},
		{plugin.FilterGain, f.gainDB},
	}, nil
}

func kindNames() []string {
	kinds := design.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

func filterCommand(a *app) *cobra.Command {
	var (
		flags     filterFlags
		blockSize int
	)

	cmd := &cobra.Command{
		Use:   "filter [flags] in.wav out.wav",
		Short: "Render a WAV file through the multi-mode biquad filter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := flags.params()
			if err != nil {
				return err
			}

			p, err := plugin.NewFilterProcessor()
			if err != nil {
				return err
			}
			if err := setParams(p, values); err != nil {
				return err
			}

			a.log.Debug("filter settings",
				"type", flags.typeName,
				"cutoff_hz", flags.cutoff,
				"q", flags.resonance,
				"gain_db", flags.gainDB)

			return renderFile(cmd.Context(), a, p, args[0], args[1], blockSize)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&blockSize, "block", defaultBlockSize, "Processing block size in frames")

	return cmd
}
