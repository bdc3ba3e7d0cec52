// Package analyzer turns a stream of mono samples into a display-ready
// magnitude spectrum.
//
// Each complete frame is windowed, transformed, and reduced to N/2
// magnitudes normalised by N. A light running smoothing across neighbouring
// bins is applied, and a peak-hold trace follows the spectrum upwards
// immediately and decays geometrically otherwise.
//
// The analyzer is intended for a control or UI goroutine. The audio thread
// feeds it through a [lockfree.Queue] tap and never calls into it directly.
package analyzer
