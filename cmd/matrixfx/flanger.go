package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/matrixfx/dsp/interp"
	"github.com/cwbudde/matrixfx/plugin"
)

func flangerCommand(a *app) *cobra.Command {
	var (
		rate, depth, feedback, mix float64
		baseDelayMs                float64
		interpName                 string
		blockSize                  int
	)

	cmd := &cobra.Command{
		Use:   "flanger [flags] in.wav out.wav",
		Short: "Render a WAV file through the flanger",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := interp.ParseMode(strings.ToLower(strings.TrimSpace(interpName)))
			if err != nil {
				return err
			}

			p, err := plugin.NewFlangerProcessor(
				plugin.WithBaseDelay(baseDelayMs/1000),
				plugin.WithInterpolation(mode),
			)
			if err != nil {
				return err
			}

			err = setParams(p, []paramValue{
				{plugin.FlangerRate, rate},
				{plugin.FlangerDepth, depth},
				{plugin.FlangerFeedback, feedback},
				{plugin.FlangerMix, mix},
			})
			if err != nil {
				return err
			}

			a.log.Debug("flanger settings",
				"rate_hz", rate,
				"depth_pct", depth,
				"feedback_pct", feedback,
				"mix_pct", mix,
				"base_delay_ms", baseDelayMs,
				"interpolation", mode.String())

			return renderFile(cmd.Context(), a, p, args[0], args[1], blockSize)
		},
	}

	cmd.Flags().Float64VarP(&rate, "rate", "r", 0.5, "LFO rate in Hz")
	cmd.Flags().Float64VarP(&depth, "depth", "d", 50, "Modulation depth in percent of the base delay")
	cmd.Flags().Float64VarP(&feedback, "feedback", "f", 30, "Feedback in percent (max 95)")
	cmd.Flags().Float64VarP(&mix, "mix", "m", 50, "Wet mix in percent")
	cmd.Flags().Float64Var(&baseDelayMs, "base-delay", 5, "Base delay in milliseconds")
	cmd.Flags().StringVar(&interpName, "interp", interp.Linear.String(), "Fractional delay interpolation: linear, hermite")
	cmd.Flags().IntVar(&blockSize, "block", defaultBlockSize, "Processing block size in frames")

	return cmd
}
