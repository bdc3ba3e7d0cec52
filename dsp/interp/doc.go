// Package interp provides the fractional-delay interpolation kernels used by
// dsp/delay.
//
//   - [Linear2]:  2-point linear interpolation (cheap, slight high-frequency loss)
//   - [Hermite4]: 4-point cubic Hermite (Catmull-Rom)
//
// [Mode] selects between them at construction time.
package interp
