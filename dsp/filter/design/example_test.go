package design_test

import (
	"fmt"

	"github.com/cwbudde/matrixfx/dsp/filter/design"
)

func ExampleLowpass() {
	c := design.Lowpass(1000, 0.707, 44100)

	for _, freq := range []float64{500, 1000, 10000} {
		fmt.Printf("%6.0f Hz: %+.2f dB\n", freq, c.MagnitudeDB(freq, 44100))
	}
	// Output:
	//    500 Hz: -0.26 dB
	//   1000 Hz: -3.01 dB
	//  10000 Hz: -43.32 dB
}

func ExampleDesign() {
	for _, k := range []design.Kind{design.KindPeak, design.KindLowShelf} {
		c := design.Design(k, 1000, 1, 6, 48000)
		fmt.Printf("%-8s 1 kHz: %+.2f dB\n", k, c.MagnitudeDB(1000, 48000))
	}
	// Output:
	// peak     1 kHz: +6.00 dB
	// lowshelf 1 kHz: +3.00 dB
}
