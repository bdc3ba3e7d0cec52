// Command matrixfx renders WAV files through the multi-mode filter and the
// flanger, prints filter responses, and runs files through the spectrum
// analyzer.
//
// Usage:
//
//	matrixfx filter  [flags] in.wav out.wav
//	matrixfx flanger [flags] in.wav out.wav
//	matrixfx response [flags]
//	matrixfx spectrum [flags] in.wav
//
// Examples:
//
//	matrixfx filter --type peak --cutoff 2500 --gain 6 --q 2 in.wav out.wav
//	matrixfx flanger --rate 0.25 --feedback 70 in.wav out.wav
//	matrixfx response --type lowshelf --gain -6 --points 12
//	matrixfx spectrum --size 2048 --window blackman-harris in.wav
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
