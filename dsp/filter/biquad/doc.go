// Package biquad provides biquad (second-order IIR) runtime primitives.
//
// [Coefficients] hold one normalized second-order section (a0 = 1). [State]
// holds the Direct Form I delay registers (two past inputs, two past
// outputs) and [State.Step] advances them by one sample. [ProcessBlock]
// runs the same recurrence over a float32 block using the fastest kernel
// registered for the running CPU.
//
// The package also answers analysis queries that do not touch any state:
// complex frequency response, magnitude, phase, poles, zeros and stability.
//
// Coefficient design (RBJ cookbook formulas) lives in dsp/filter/design.
package biquad
