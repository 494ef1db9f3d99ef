// Package dynamics provides the level-dependent stages of the chain: a
// slew-sensing de-esser, a program-dependent compressor and a zero-cross
// gate.
package dynamics

import (
	"math"

	"github.com/justyntemme/lunchbox/pkg/dsp"
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
)

// DeEsser limits
const (
	DeEssTaps      = 41
	maxSharpness   = 40.0
	minSharpness   = 2.0
	deEssIIRAmount = 0.5
	deEssSlewScale = 1.3
	deEssDepthPad  = 0.0001
	deEssIntensity = 8192.0
)

// sibilance is the alternating smoothing state of one side
type sibilance struct {
	iir   float64
	ratio float64
}

// step advances the smoother and moves the ratio toward sense
func (s *sibilance) step(x, sense, speed, depth float64) {
	s.iir = s.iir*(1-deEssIIRAmount) + x*deEssIIRAmount
	s.ratio = s.ratio*(1-speed) + sense*speed
	if s.ratio > depth {
		s.ratio = depth
	}
}

func (s *sibilance) soften(x float64) float64 {
	if s.ratio > 1 {
		return s.iir + (x-s.iir)/s.ratio
	}
	return x
}

// deEssChannel holds the slew history and both sides of one channel
type deEssChannel struct {
	s [DeEssTaps]float64
	m [DeEssTaps]float64
	a sibilance
	b sibilance
}

func (c *deEssChannel) reset() {
	*c = deEssChannel{}
	c.a.ratio = 1
	c.b.ratio = 1
}

// DeEsser detects sibilance from products of successive slews and
// softens it toward a smoothed copy of the signal.
type DeEsser struct {
	overall   float64
	intensity float64
	sharpness float64
	taps      int
	speed     float64
	depth     float64
	listen    bool

	ch    [dsp.Stereo]deEssChannel
	flip  bool
	meter analysis.ReductionTracker
}

// DeEssControls are the normalized de-esser settings applied per block
type DeEssControls struct {
	Intensity float64
	Sharpness float64
	Depth     float64
	Listen    bool
}

// NewDeEsser creates a de-esser for sampleRate
func NewDeEsser(sampleRate float64) *DeEsser {
	d := &DeEsser{}
	d.SetSampleRate(sampleRate)
	d.SetControls(DeEssControls{Intensity: 0.5, Sharpness: 0.5, Depth: 0.5})
	d.Reset()
	return d
}

// SetSampleRate sets the rate the intensity is scaled against
func (d *DeEsser) SetSampleRate(sampleRate float64) {
	d.overall = sampleRate / dsp.ReferenceRate
}

// SetControls derives the per-block detector constants.
func (d *DeEsser) SetControls(c DeEssControls) {
	d.intensity = math.Pow(c.Intensity, 5) * (deEssIntensity / d.overall)
	d.sharpness = min(max(c.Sharpness*maxSharpness, minSharpness), maxSharpness)
	d.taps = int(d.sharpness)
	d.speed = 0.1 / d.sharpness
	d.depth = 1 / ((1 - c.Depth) + deEssDepthPad)
	d.listen = c.Listen
}

// Begin starts a new metering block
func (d *DeEsser) Begin() {
	d.meter.Begin()
}

// sense measures the sibilance of the newest sample on one channel
func (d *DeEsser) sense(c *deEssChannel, x float64) float64 {
	s, m := &c.s, &c.m
	taps := d.taps

	s[0] = x
	for k := taps; k > 0; k-- {
		s[k] = s[k-1]
	}

	m[1] = (s[1] - s[2]) * ((s[1] - s[2]) / deEssSlewScale)
	for k := taps - 1; k > 1; k-- {
		m[k] = (s[k] - s[k+1]) * ((s[k-1] - s[k]) / deEssSlewScale)
	}

	sh2 := d.sharpness * d.sharpness
	sense := math.Abs(m[1]-m[2]) * sh2
	for k := taps - 1; k > 0; k-- {
		if mult := math.Abs(m[k]-m[k+1]) * sh2; mult < 1 {
			sense *= mult
		}
	}

	sense = 1 + d.intensity*d.intensity*sense
	if sense > d.intensity {
		sense = d.intensity
	}
	return sense
}

func (d *DeEsser) tick(c *deEssChannel, x float64) float64 {
	sense := d.sense(c, x)

	side := &c.b
	if d.flip {
		side = &c.a
	}
	side.step(x, sense, d.speed, d.depth)
	return side.soften(x)
}

// Tick processes one stereo frame.
func (d *DeEsser) Tick(l, r float64) (float64, float64) {
	dryL, dryR := l, r

	l = d.tick(&d.ch[0], l)
	r = d.tick(&d.ch[1], r)
	d.flip = !d.flip

	d.meter.Observe(l, dryL)
	d.meter.Observe(r, dryR)

	if d.listen {
		return dryL - l, dryR - r
	}
	return l, r
}

// Reset clears the slew history and returns both ratios to unity
func (d *DeEsser) Reset() {
	d.ch[0].reset()
	d.ch[1].reset()
	d.flip = false
	d.meter.Begin()
}

// Reduction returns the smallest wet/dry ratio since Begin
func (d *DeEsser) Reduction() float64 {
	return d.meter.Ratio()
}

// Meter returns the block reduction as a normalized meter value
func (d *DeEsser) Meter() float64 {
	return d.meter.Meter()
}
