package analyzer_test

import (
	"fmt"

	"github.com/cwbudde/matrixfx/dsp/analyzer"
	"github.com/cwbudde/matrixfx/dsp/window"
	"github.com/cwbudde/matrixfx/internal/testutil"
)

func ExampleAnalyzer_Write() {
	a, err := analyzer.New(analyzer.WithSize(512), analyzer.WithWindow(window.TypeRectangular))
	if err != nil {
		panic(err)
	}

	// 32 cycles per frame lands exactly on bin 32.
	tone := testutil.DeterministicSine[float32](3000, 48000, 1, 512)
	a.Write(tone)

	k := a.PeakBin()
	fmt.Printf("peak bin %d at %.0f Hz\n", k, a.BinFrequency(k, 48000))
	// Output:
	// peak bin 32 at 3000 Hz
}
