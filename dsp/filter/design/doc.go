// Package design provides RBJ-cookbook biquad coefficient designers.
//
// Each response has its own pure function ([Lowpass], [Highpass],
// [Bandpass], [Notch], [Peak], [LowShelf], [HighShelf]) taking the center
// or corner frequency in Hz, the quality factor and, where relevant, a gain
// in dB. All results are normalized so that a0 = 1 and plug directly into
// dsp/filter/biquad.
//
// [Kind] tags the responses and [ForType] / [Design] dispatch on it.
//
// Out-of-range frequencies (<= 0 or >= Nyquist) and invalid sample rates
// return zero coefficients; callers are expected to clamp first.
package design
