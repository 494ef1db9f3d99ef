// Package lunchbox is the channel-strip processor: trim, console drive,
// tone, de-essing, compression, optional gating, inflation and output
// dither, run over stereo blocks.
package lunchbox

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/justyntemme/lunchbox/pkg/dsp"
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
	"github.com/justyntemme/lunchbox/pkg/dsp/distortion"
	"github.com/justyntemme/lunchbox/pkg/dsp/dynamics"
	"github.com/justyntemme/lunchbox/pkg/dsp/filter"
	"github.com/justyntemme/lunchbox/pkg/dsp/gain"
	"github.com/justyntemme/lunchbox/pkg/framework/debug"
	fwdsp "github.com/justyntemme/lunchbox/pkg/framework/dsp"
	"github.com/justyntemme/lunchbox/pkg/framework/param"
	"github.com/justyntemme/lunchbox/pkg/framework/plugin"
	"github.com/justyntemme/lunchbox/pkg/framework/process"
)

const (
	PluginName    = "Lunchbox"
	PluginVersion = "1.0.0"
	PluginVendor  = "Lunchbox Audio"
)

// Stage names in processing order
const (
	StageInput      = "input"
	StageExciter    = "channel9"
	StageTone       = "eq"
	StageDeEsser    = "deess"
	StageCompressor = "meowmu"
	StageGate       = "gate"
	StageInflator   = "inflator"
	StageOutput     = "output"
)

// Info describes the processor
var Info = plugin.Info{
	ID:            "com.lunchbox.strip",
	Name:          PluginName,
	Version:       PluginVersion,
	Vendor:        PluginVendor,
	Category:      "Fx",
	ProcessorUID:  plugin.UID{0x9B16F1C8, 0x51FB52B3, 0xBD5826BA, 0x9E94BA87},
	ControllerUID: plugin.UID{0xEE704E30, 0xAD1E5A10, 0xA5754B21, 0xFE1E9419},
}

// Meters are the normalized meter values of one block
type Meters struct {
	In    float64
	Out   float64
	DeEss float64
	Comp  float64
}

// IdleMeters is the meter reading at block start and after activation
var IdleMeters = Meters{In: 0, Out: 0, DeEss: 1, Comp: 1}

type options struct {
	gate   bool
	logger *debug.Logger
	seed   *uint64
}

// Option configures a Processor
type Option func(*options)

// WithGate inserts the noise gate between the compressor and the inflator
func WithGate(enabled bool) Option {
	return func(o *options) { o.gate = enabled }
}

// WithLogger sets the lifecycle logger
func WithLogger(l *debug.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSeed makes the dither generators reseed deterministically at setup
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = &seed }
}

// Processor runs the strip over stereo blocks. Control methods are not safe
// for concurrent use with Process; parameter values are.
type Processor struct {
	*plugin.BaseProcessor

	table *param.Table
	seed  *uint64
	gate  bool

	fpd      gain.Dither
	input    *gain.Input
	exciter  *distortion.Exciter
	tone     *filter.Tone
	deesser  *dynamics.DeEsser
	comp     *dynamics.Compressor
	gateSt   *dynamics.Gate
	inflator *distortion.Inflator
	output   *gain.Output
	chain    *fwdsp.StereoChain

	meters Meters
}

// New creates a processor with every parameter at its default
func New(opts ...Option) (*Processor, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &Processor{
		BaseProcessor: plugin.NewBaseProcessor(Info, nil, o.logger),
		seed:          o.seed,
		gate:          o.gate,
		meters:        IdleMeters,
	}

	if err := registerParameters(p.Parameters()); err != nil {
		return nil, fmt.Errorf("lunchbox: %w", err)
	}
	if err := p.AttachState(StateLayout); err != nil {
		return nil, fmt.Errorf("lunchbox: %w", err)
	}
	p.table = p.Parameters().Table()

	rate := float64(dsp.ReferenceRate)
	p.input = gain.NewInput(&p.fpd)
	p.exciter = distortion.NewExciter(rate)
	p.tone = filter.NewTone(rate)
	p.deesser = dynamics.NewDeEsser(rate)
	p.comp = dynamics.NewCompressor(rate)
	p.gateSt = dynamics.NewGate(DefaultGate)
	p.inflator = distortion.NewInflator(DefaultInflate)
	p.output = gain.NewOutput(&p.fpd)

	c, err := fwdsp.NewStereoBuilder(PluginName).
		WithStage(StageInput, p.input).
		WithStage(StageExciter, p.exciter).
		WithStage(StageTone, p.tone).
		WithStage(StageDeEsser, p.deesser).
		WithStage(StageCompressor, p.comp).
		WithStage(StageGate, p.gateSt).
		WithStage(StageInflator, p.inflator).
		WithStage(StageOutput, p.output).
		Build()
	if err != nil {
		return nil, fmt.Errorf("lunchbox: %w", err)
	}
	if err := c.SetStageBypass(StageGate, !o.gate); err != nil {
		return nil, fmt.Errorf("lunchbox: %w", err)
	}
	p.chain = c

	p.OnSetup(p.setup)
	p.OnSetActive(p.setActive)
	return p, nil
}

// GateEnabled reports whether the gate stage runs
func (p *Processor) GateEnabled() bool {
	return p.gate
}

// Chain exposes the stage chain, mainly for response measurements
func (p *Processor) Chain() *fwdsp.StereoChain {
	return p.chain
}

// Tone returns the tone stage
func (p *Processor) Tone() *filter.Tone {
	return p.tone
}

// Meters returns the meters of the last processed block
func (p *Processor) Meters() Meters {
	return p.meters
}

// Settings returns the current parameter snapshot
func (p *Processor) Settings() Settings {
	return snapshot(p.table)
}

// SetParameter stores a normalized value from the control side
func (p *Processor) SetParameter(id uint32, value float64) error {
	return p.Parameters().Set(id, value)
}

func (p *Processor) setup(s plugin.Setup) error {
	p.exciter.SetSampleRate(s.SampleRate)
	p.tone.SetSampleRate(s.SampleRate)
	p.deesser.SetSampleRate(s.SampleRate)
	p.comp.SetSampleRate(s.SampleRate)

	var r *rand.Rand
	if p.seed != nil {
		r = rand.New(rand.NewPCG(*p.seed, *p.seed^0x9e3779b97f4a7c15))
	} else {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	p.fpd[0].Reseed(r)
	p.fpd[1].Reseed(r)
	return nil
}

func (p *Processor) setActive(active bool) error {
	if active {
		p.chain.Reset()
	}
	p.meters = IdleMeters
	return nil
}

// SaveState writes the persisted layout
func (p *Processor) SaveState(w io.Writer) error {
	if err := p.State().Save(w); err != nil {
		p.Logger().Error("save state: %v", err)
		return err
	}
	return nil
}

// LoadState reads the persisted layout. A failed load changes nothing.
func (p *Processor) LoadState(r io.Reader) error {
	if err := p.State().Load(r); err != nil {
		p.Logger().Error("load state: %v", err)
		return err
	}
	return nil
}

// Process32 runs one single precision block
func (p *Processor) Process32(b *process.Block[float32]) Meters {
	return run(p, b, true)
}

// Process64 runs one double precision block
func (p *Processor) Process64(b *process.Block[float64]) Meters {
	return run(p, b, false)
}

// run is the block flow shared by both precisions. It never allocates.
func run[T dsp.Sample](p *Processor, b *process.Block[T], single bool) Meters {
	if b.InputChanges != nil {
		b.InputChanges.ApplyTo(p.table)
	}

	if b.NumInputChannels() == 0 || b.NumOutputChannels() == 0 {
		return p.meters
	}
	if !b.IsStereo() {
		return p.meters
	}
	if b.HandleSilence() {
		return p.meters
	}

	s := snapshot(p.table)
	p.meters = IdleMeters

	left, right := b.Output[0], b.Output[1]
	b.PassThrough()

	if s.Bypass {
		p.meters.In = analysis.VuPPM(analysis.PeakOf(left, right), analysis.LevelRange)
		p.meters.Out = p.meters.In
		p.publish(b.OutputChanges)
		return p.meters
	}

	p.configure(s, single)
	fwdsp.Process(p.chain, left, right)

	p.meters.In = p.input.Meter()
	p.meters.Out = p.output.Meter()
	p.meters.DeEss = p.deesser.Meter()
	p.meters.Comp = p.comp.Meter()
	p.publish(b.OutputChanges)
	return p.meters
}

// configure applies the snapshot to every stage and starts their meters
func (p *Processor) configure(s Settings, single bool) {
	p.input.SetTrim(float64(s.Input))
	p.input.Begin()

	p.exciter.SetDrive(float64(s.Drive))

	p.tone.SetControls(s.ToneControls())

	p.deesser.SetControls(s.DeEssControls())
	p.deesser.Begin()

	p.comp.SetControls(s.CompControls())
	p.comp.Begin()

	p.gateSt.SetThreshold(float64(s.Gate))

	p.inflator.SetAmount(float64(s.Inflate))
	p.inflator.SetSafe(s.Safe)

	p.output.SetTrim(float64(s.Output))
	p.output.SetSinglePrecision(single)
	p.output.Begin()
}

// publish stores the meters in their read-only parameters and queues them
// for the host at offset 0
func (p *Processor) publish(out *param.Changes) {
	values := [...]struct {
		id uint32
		v  float64
	}{
		{ParamInVuPPM, p.meters.In},
		{ParamOutVuPPM, p.meters.Out},
		{ParamDeEssVuPPM, p.meters.DeEss},
		{ParamCompVuPPM, p.meters.Comp},
	}
	for _, m := range values {
		p.table.Get(m.id).SetValue(m.v)
		if out != nil {
			out.Add(m.id, 0, m.v)
		}
	}
}
