package core_test

import (
	"fmt"

	"github.com/cwbudde/matrixfx/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(48000),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=48000 blockSize=256 channels=2
}

func ExampleEnsureLen() {
	buf := make([]float32, 2, 4)
	buf[0], buf[1] = 1, 2
	buf = core.EnsureLen(buf, 4)

	copied := core.CopyInto(buf[2:], []float32{3, 4})
	fmt.Println(copied, buf)

	core.Zero(buf[:2])
	fmt.Println(buf)

	// Output:
	// 2 [1 2 3 4]
	// [0 0 3 4]
}

func ExampleGainToDB() {
	fmt.Printf("%.1f dB\n", core.GainToDB(core.DBToGain(-12)))

	// Output:
	// -12.0 dB
}
