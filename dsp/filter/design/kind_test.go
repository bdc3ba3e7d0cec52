package design

import (
	"testing"

	"github.com/cwbudde/matrixfx/dsp/filter/biquad"
)

func TestKindString(t *testing.T) {
	for _, k := range Kinds() {
		if k.String() == "" {
			t.Fatalf("empty name for %d", int(k))
		}
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if parsed != k {
			t.Fatalf("ParseKind(%q)=%v, want %v", k.String(), parsed, k)
		}
	}

	if got := Kind(42).String(); got != "Kind(42)" {
		t.Fatalf("unknown kind String()=%q", got)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("  HighShelf ")
	if err != nil || k != KindHighShelf {
		t.Fatalf("ParseKind: got %v, %v", k, err)
	}
	if _, err := ParseKind("comb"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestKindValues(t *testing.T) {
	// Host parameter tables rely on these values.
	want := map[Kind]int{
		KindLowpass:   0,
		KindHighpass:  1,
		KindBandpass:  2,
		KindNotch:     3,
		KindPeak:      4,
		KindLowShelf:  5,
		KindHighShelf: 6,
	}
	for k, v := range want {
		if int(k) != v {
			t.Fatalf("%v=%d, want %d", k, int(k), v)
		}
	}
	if len(Kinds()) != 7 {
		t.Fatalf("len(Kinds())=%d, want 7", len(Kinds()))
	}
}

func TestForType_MatchesDirectCalls(t *testing.T) {
	const (
		f  = 1500.0
		q  = 0.9
		g  = -4.5
		sr = 44100.0
	)

	direct := map[Kind]biquad.Coefficients{
		KindLowpass:   Lowpass(f, q, sr),
		KindHighpass:  Highpass(f, q, sr),
		KindBandpass:  Bandpass(f, q, sr),
		KindNotch:     Notch(f, q, sr),
		KindPeak:      Peak(f, g, q, sr),
		KindLowShelf:  LowShelf(f, g, q, sr),
		KindHighShelf: HighShelf(f, g, q, sr),
	}

	for k, want := range direct {
		fn, ok := ForType(k)
		if !ok {
			t.Fatalf("ForType(%v) not found", k)
		}
		if got := fn(f, q, g, sr); got != want {
			t.Fatalf("%v: got %#v, want %#v", k, got, want)
		}
	}
}

func TestForType_Unknown(t *testing.T) {
	if _, ok := ForType(-1); ok {
		t.Fatal("ForType(-1) should fail")
	}
	if _, ok := ForType(numKinds); ok {
		t.Fatal("ForType(numKinds) should fail")
	}
	if got := Design(99, 1000, 1, 0, 48000); got != biquad.Passthrough() {
		t.Fatalf("Design(unknown)=%#v, want passthrough", got)
	}
}

func TestHasGain(t *testing.T) {
	for _, k := range Kinds() {
		want := k == KindPeak || k == KindLowShelf || k == KindHighShelf
		if k.HasGain() != want {
			t.Fatalf("%v.HasGain()=%v", k, k.HasGain())
		}
	}
}
