package param

import (
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
)

// Trim slider bounds in dB
const (
	SliderMin = -12.0
	SliderMax = 12.0
)

// Slider creates a linear ±12 dB trim with 0 dB at the center
func Slider(id uint32, name string) *Builder {
	return New(id, name).
		Range(SliderMin, SliderMax).
		Default(0).
		Unit("dB").
		Formatter(FixedFormatter, DecibelParser)
}

// Meter creates a read-only VU-style meter over r. The plain domain is dB
// and the default sits at r.Mid.
func Meter(id uint32, name string, r analysis.MeterRange) *Builder {
	return New(id, name).
		Range(r.Min, r.Max).
		Mapping(VuPPM(r)).
		Default(r.Mid).
		Unit("dB").
		Formatter(FixedFormatter, DecibelParser).
		ReadOnly()
}

// Knob creates a continuous control shown as 0-100%. The default is given
// in the normalized domain.
func Knob(id uint32, name string, def float64) *Builder {
	return New(id, name).
		Range(0, 100).
		DefaultNormalized(def).
		Unit("%").
		Formatter(PercentFormatter, PercentParser)
}

// Switch creates an on/off toggle, off by default
func Switch(id uint32, name string) *Builder {
	return New(id, name).
		Toggle().
		Formatter(OnOffFormatter, OnOffParser)
}

// BypassSwitch creates the processor bypass toggle
func BypassSwitch(id uint32, name string) *Builder {
	return Switch(id, name).Bypass()
}
