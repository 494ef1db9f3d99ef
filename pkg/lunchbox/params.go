package lunchbox

import (
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
	"github.com/justyntemme/lunchbox/pkg/dsp/dynamics"
	"github.com/justyntemme/lunchbox/pkg/dsp/filter"
	"github.com/justyntemme/lunchbox/pkg/framework/param"
	"github.com/justyntemme/lunchbox/pkg/framework/state"
)

// Parameter IDs
const (
	ParamBypass uint32 = iota
	ParamInput
	ParamOutput
	ParamDrive
	ParamLowcut
	ParamAir
	ParamHigh
	ParamFocus
	ParamBody
	ParamLow
	ParamIntensity
	ParamSharpness
	ParamDepth
	ParamListen
	ParamComp
	ParamSpeed
	ParamAttack
	ParamGate
	ParamInflate
	ParamSafe
	ParamInVuPPM
	ParamOutVuPPM
	ParamDeEssVuPPM
	ParamCompVuPPM

	numParams
)

// Normalized defaults
const (
	DefaultInput     = 0.5
	DefaultOutput    = 0.5
	DefaultDrive     = 0.2
	DefaultAir       = 0.0
	DefaultHigh      = 0.5
	DefaultFocus     = 0.5
	DefaultBody      = 0.5
	DefaultLow       = 0.5
	DefaultIntensity = 0.5
	DefaultSharpness = 0.5
	DefaultDepth     = 0.5
	DefaultComp      = 0.2
	DefaultSpeed     = 0.6
	DefaultGate      = 0.0
	DefaultInflate   = 0.2
)

// registerParameters adds the full parameter surface to r.
func registerParameters(r *param.Registry) error {
	return r.Add(
		param.BypassSwitch(ParamBypass, "Bypass").Build(),
		param.Slider(ParamInput, "Input").ShortName("In").Build(),
		param.Slider(ParamOutput, "Output").ShortName("Out").Build(),
		param.Knob(ParamDrive, "Drive", DefaultDrive).Build(),
		param.Switch(ParamLowcut, "Lowcut").Build(),
		param.Knob(ParamAir, "Air", DefaultAir).Build(),
		param.Knob(ParamHigh, "High", DefaultHigh).Build(),
		param.Knob(ParamFocus, "Focus", DefaultFocus).Build(),
		param.Knob(ParamBody, "Body", DefaultBody).Build(),
		param.Knob(ParamLow, "Low", DefaultLow).Build(),
		param.Knob(ParamIntensity, "Intensity", DefaultIntensity).Build(),
		param.Knob(ParamSharpness, "Sharpness", DefaultSharpness).Build(),
		param.Knob(ParamDepth, "Depth", DefaultDepth).Build(),
		param.Switch(ParamListen, "Listen").Build(),
		param.Knob(ParamComp, "Comp", DefaultComp).Build(),
		param.Knob(ParamSpeed, "Speed", DefaultSpeed).Build(),
		param.Switch(ParamAttack, "Attack").Build(),
		param.Knob(ParamGate, "Gate", DefaultGate).Build(),
		param.Knob(ParamInflate, "Inflate", DefaultInflate).Build(),
		param.Switch(ParamSafe, "Safe").Build(),
		param.Meter(ParamInVuPPM, "InVuPPM", analysis.LevelRange).Build(),
		param.Meter(ParamOutVuPPM, "OutVuPPM", analysis.LevelRange).Build(),
		param.Meter(ParamDeEssVuPPM, "DeEssVuPPM", analysis.ReductionRange).Build(),
		param.Meter(ParamCompVuPPM, "CompVuPPM", analysis.ReductionRange).Build(),
	)
}

// StateLayout is the persisted field order: fifteen floats then five
// switches.
var StateLayout = state.Layout{
	{Name: "input", ID: ParamInput, Kind: state.Float32},
	{Name: "output", ID: ParamOutput, Kind: state.Float32},
	{Name: "drive", ID: ParamDrive, Kind: state.Float32},
	{Name: "air", ID: ParamAir, Kind: state.Float32},
	{Name: "high", ID: ParamHigh, Kind: state.Float32},
	{Name: "focus", ID: ParamFocus, Kind: state.Float32},
	{Name: "body", ID: ParamBody, Kind: state.Float32},
	{Name: "low", ID: ParamLow, Kind: state.Float32},
	{Name: "intensity", ID: ParamIntensity, Kind: state.Float32},
	{Name: "sharpness", ID: ParamSharpness, Kind: state.Float32},
	{Name: "depth", ID: ParamDepth, Kind: state.Float32},
	{Name: "comp", ID: ParamComp, Kind: state.Float32},
	{Name: "speed", ID: ParamSpeed, Kind: state.Float32},
	{Name: "gate", ID: ParamGate, Kind: state.Float32},
	{Name: "inflate", ID: ParamInflate, Kind: state.Float32},
	{Name: "lowcut", ID: ParamLowcut, Kind: state.Bool},
	{Name: "listen", ID: ParamListen, Kind: state.Bool},
	{Name: "attack", ID: ParamAttack, Kind: state.Bool},
	{Name: "safe", ID: ParamSafe, Kind: state.Bool},
	{Name: "bypass", ID: ParamBypass, Kind: state.Bool},
}

// Settings is the per-block parameter snapshot. Continuous values keep the
// single precision they are persisted with.
type Settings struct {
	Input, Output          float32
	Drive                  float32
	Air, High, Focus       float32
	Body, Low              float32
	Intensity, Sharpness   float32
	Depth                  float32
	Comp, Speed            float32
	Gate, Inflate          float32
	Lowcut, Listen, Attack bool
	Safe, Bypass           bool
}

// DefaultSettings returns the power-on snapshot
func DefaultSettings() Settings {
	return Settings{
		Input:     DefaultInput,
		Output:    DefaultOutput,
		Drive:     DefaultDrive,
		Air:       DefaultAir,
		High:      DefaultHigh,
		Focus:     DefaultFocus,
		Body:      DefaultBody,
		Low:       DefaultLow,
		Intensity: DefaultIntensity,
		Sharpness: DefaultSharpness,
		Depth:     DefaultDepth,
		Comp:      DefaultComp,
		Speed:     DefaultSpeed,
		Gate:      DefaultGate,
		Inflate:   DefaultInflate,
	}
}

// snapshot reads every control from t
func snapshot(t *param.Table) Settings {
	f := func(id uint32) float32 { return float32(t.Get(id).GetValue()) }
	b := func(id uint32) bool { return t.Get(id).IsOn() }

	return Settings{
		Input:     f(ParamInput),
		Output:    f(ParamOutput),
		Drive:     f(ParamDrive),
		Air:       f(ParamAir),
		High:      f(ParamHigh),
		Focus:     f(ParamFocus),
		Body:      f(ParamBody),
		Low:       f(ParamLow),
		Intensity: f(ParamIntensity),
		Sharpness: f(ParamSharpness),
		Depth:     f(ParamDepth),
		Comp:      f(ParamComp),
		Speed:     f(ParamSpeed),
		Gate:      f(ParamGate),
		Inflate:   f(ParamInflate),
		Lowcut:    b(ParamLowcut),
		Listen:    b(ParamListen),
		Attack:    b(ParamAttack),
		Safe:      b(ParamSafe),
		Bypass:    b(ParamBypass),
	}
}

// ToneControls returns the tone stage settings
func (s Settings) ToneControls() filter.ToneControls {
	return filter.ToneControls{
		Low:    float64(s.Low),
		Body:   float64(s.Body),
		High:   float64(s.High),
		Air:    float64(s.Air),
		Focus:  float64(s.Focus),
		Lowcut: s.Lowcut,
	}
}

// DeEssControls returns the de-esser settings
func (s Settings) DeEssControls() dynamics.DeEssControls {
	return dynamics.DeEssControls{
		Intensity: float64(s.Intensity),
		Sharpness: float64(s.Sharpness),
		Depth:     float64(s.Depth),
		Listen:    s.Listen,
	}
}

// CompControls returns the compressor settings
func (s Settings) CompControls() dynamics.CompControls {
	return dynamics.CompControls{
		Comp:   float64(s.Comp),
		Speed:  float64(s.Speed),
		Attack: s.Attack,
	}
}
