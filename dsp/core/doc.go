// Package core holds the small numeric helpers shared by the filter and
// flanger engines: angular-frequency conversion, dB/gain conversion,
// clamping and allocation-free buffer helpers.
package core
