package biquad_test

import (
	"fmt"

	"github.com/cwbudde/matrixfx/dsp/filter/biquad"
)

func ExampleState_Step() {
	c := biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}

	var s biquad.State
	for i := range 6 {
		var x float64
		if i == 0 {
			x = 1
		}

		y := s.Step(&c, x)
		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
	// y[4] = -0.004400
	// y[5] = -0.002800
}

func ExampleProcessBlock() {
	c := biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}

	var s biquad.State
	buf := []float32{1, 0, 0, 0}
	biquad.ProcessBlock(&c, &s, buf, buf)

	fmt.Printf("block: %.3f %.3f %.3f %.3f\n", buf[0], buf[1], buf[2], buf[3])
	fmt.Printf("1 kHz: %+.2f dB\n", c.MagnitudeDB(1000, 48000))
	// Output:
	// block: 0.250 0.550 0.350 0.048
	// 1 kHz: +1.47 dB
}

func ExampleCoefficients_MagnitudeDB() {
	c := biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}

	sr := 48000.0
	for _, freq := range []float64{100, 1000, 10000, 20000} {
		db := c.MagnitudeDB(freq, sr)
		fmt.Printf("%6.0f Hz: %+.2f dB\n", freq, db)
	}
	// Output:
	//    100 Hz: +1.51 dB
	//   1000 Hz: +1.47 dB
	//  10000 Hz: -3.39 dB
	//  20000 Hz: -25.07 dB
}

func ExampleCoefficients_PoleZeroPair() {
	c := biquad.Coefficients{B0: 1, B1: -0.6, B2: 0.25, A1: -1.4, A2: 0.53}

	pair := c.PoleZeroPair()
	fmt.Printf("poles: %.2f%+.2fi, %.2f%+.2fi\n",
		real(pair.Poles[0]), imag(pair.Poles[0]),
		real(pair.Poles[1]), imag(pair.Poles[1]))
	fmt.Printf("zeros: %.2f%+.2fi, %.2f%+.2fi\n",
		real(pair.Zeros[0]), imag(pair.Zeros[0]),
		real(pair.Zeros[1]), imag(pair.Zeros[1]))
	fmt.Println("stable:", c.Stable())
	// Output:
	// poles: 0.70+0.20i, 0.70-0.20i
	// zeros: 0.30+0.40i, 0.30-0.40i
	// stable: true
}
