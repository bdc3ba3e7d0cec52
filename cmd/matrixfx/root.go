package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

type app struct {
	stdout  io.Writer
	level   *slog.LevelVar
	log     *slog.Logger
	verbose bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		level:  new(slog.LevelVar),
	}
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: a.level})).
		With("module", "matrixfx")

	root := &cobra.Command{
		Use:           "matrixfx",
		Short:         "Biquad filter and flanger renderer",
		Long:          `Render WAV files through the multi-mode biquad filter or the flanger, and inspect filter designs and spectra.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.verbose {
				a.level.Set(slog.LevelDebug)
			} else {
				a.level.Set(slog.LevelInfo)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		filterCommand(a),
		flangerCommand(a),
		responseCommand(a),
		spectrumCommand(a),
	)

	return root
}
