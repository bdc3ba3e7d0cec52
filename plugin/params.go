package plugin

import (
	"math"

	"github.com/cwbudde/matrixfx/dsp/core"
)

// ParamID identifies a parameter within one processor's table.
type ParamID uint32

// Filter parameter ids.
const (
	FilterCutoff ParamID = iota
	FilterResonance
	FilterGain
	FilterType
	FilterEnabled
)

// Flanger parameter ids.
const (
	FlangerRate ParamID = iota
	FlangerDepth
	FlangerFeedback
	FlangerMix
	FlangerEnabled
)

// ParamInfo describes one automatable parameter.
type ParamInfo struct {
	ID      ParamID
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Stepped bool
}

// Clamp forces v into [Min, Max], rounding stepped parameters to the
// nearest integer. Non-finite values fall back to Default.
func (p ParamInfo) Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return p.Default
	}
	if p.Stepped {
		v = math.Round(v)
	}
	return core.Clamp(v, p.Min, p.Max)
}

var filterParams = []ParamInfo{
	{ID: FilterCutoff, Name: "Cutoff", Unit: "Hz", Min: 0, Max: 20000, Default: 1000},
	{ID: FilterResonance, Name: "Resonance", Unit: "Q", Min: 0.1, Max: 10, Default: 1},
	{ID: FilterGain, Name: "Gain", Unit: "dB", Min: -60, Max: 60, Default: 0},
	{ID: FilterType, Name: "Type", Min: 0, Max: 6, Default: 0, Stepped: true},
	{ID: FilterEnabled, Name: "Enabled", Min: 0, Max: 1, Default: 1, Stepped: true},
}

var flangerParams = []ParamInfo{
	{ID: FlangerRate, Name: "Rate", Unit: "Hz", Min: 0.1, Max: 10, Default: 0.5},
	{ID: FlangerDepth, Name: "Depth", Unit: "%", Min: 0, Max: 100, Default: 50},
	{ID: FlangerFeedback, Name: "Feedback", Unit: "%", Min: 0, Max: 95, Default: 30},
	{ID: FlangerMix, Name: "Mix", Unit: "%", Min: 0, Max: 100, Default: 50},
	{ID: FlangerEnabled, Name: "Enabled", Min: 0, Max: 1, Default: 1, Stepped: true},
}

// FilterParams returns the filter parameter table.
func FilterParams() []ParamInfo {
	return append([]ParamInfo(nil), filterParams...)
}

// FlangerParams returns the flanger parameter table.
func FlangerParams() []ParamInfo {
	return append([]ParamInfo(nil), flangerParams...)
}

func isOn(v float64) bool { return v >= 0.5 }
