// Package multimode implements a single-section, multi-mode biquad filter
// engine for real-time use.
//
// A [Filter] owns its parameters, the normalized coefficients derived from
// them and a Direct Form I state. Every parameter change recomputes the
// coefficients immediately; the state is only cleared by [Filter.Reset] or
// [Filter.Init]. Out-of-range parameters are clamped, and a non-positive
// sample rate leaves the filter uninitialized, in which case processing is a
// pass-through.
//
// Processing never allocates. For control-thread updates, compute a
// [Design] off the audio thread with [NewDesign] and install it on the audio
// thread with [Filter.Apply].
package multimode
