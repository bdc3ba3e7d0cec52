// Package modulation provides LFO-modulated delay effects.
//
// [Flanger] is a short modulated delay with feedback applied on write and a
// dry/wet blend. Parameters follow host-facing units: rate in Hz, depth and
// mix in percent, feedback in percent up to 95.
package modulation
