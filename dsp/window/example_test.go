package window

import "fmt"

func ExampleGenerate() {
	sym := Generate(TypeHamming, 4)
	per := Generate(TypeHamming, 4, WithPeriodic())
	fmt.Printf("symmetric %.2f\n", sym)
	fmt.Printf("periodic  %.2f\n", per)
	// Output:
	// symmetric [0.08 0.77 0.77 0.08]
	// periodic  [0.08 0.54 1.00 0.54]
}

func ExampleParseType() {
	t, err := ParseType("blackman-harris")
	if err != nil {
		panic(err)
	}
	fmt.Println(t == TypeBlackmanHarris4Term, t)
	// Output:
	// true blackman-harris
}

func ExampleCheck() {
	fmt.Println(Check(TypeTukey, WithAlpha(0.5)))
	fmt.Println(Check(TypeTukey, WithAlpha(1.5)))
	// Output:
	// <nil>
	// window: tukey alpha must be in [0,1]: 1.5
}

func ExampleEquivalentNoiseBandwidth() {
	enbw, _ := EquivalentNoiseBandwidth(Generate(TypeHann, 4096, WithPeriodic()))
	fmt.Printf("hann %.2f bins\n", enbw)
	// Output:
	// hann 1.50 bins
}
