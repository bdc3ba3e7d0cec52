// Package plugin wraps the filter and flanger engines in a host-neutral
// processing context.
//
// A processor has two sides. The control side (SetParam, Param, Params,
// FrequencyResponse, Activate) runs on a UI or host-main goroutine. The
// audio side (Process, Reset) runs on the real-time goroutine and never
// locks or allocates. Parameter changes cross over through a fixed-size
// [lockfree.Queue] drained at the top of every Process call, where the
// last value queued for each parameter wins. The filter additionally
// computes coefficients on the control side and hands them over through a
// [lockfree.Snapshot].
//
// Each active channel owns its own engine instance, so channels never share
// filter or delay-line state.
//
// The processed first channel can be tapped into a second queue for a
// spectrum display; see [WithTap] and [dsp/analyzer].
package plugin
