package dynamics

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/justyntemme/lunchbox/pkg/dsp"
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
)

// Compressor constants
const (
	compHeadroomDB   = 12.0
	compReleaseScale = 32768.0
	compSpeedOffset  = 1.15
	compInitialSpeed = 10000.0
	compFastAttack   = 2.0
	compSlowAttack   = 5.0
)

// muSide is one side of the alternating gain computer
type muSide struct {
	speed float64
	coef  float64
}

func (m *muSide) step(sq, threshold, release, fastest float64, fastAttack bool) {
	if math.Abs(sq) > threshold {
		vary := threshold / math.Abs(sq)
		attack := math.Sqrt(math.Abs(m.speed))
		if fastAttack {
			attack *= compFastAttack
		} else {
			attack *= compSlowAttack
		}
		m.coef *= attack - 1
		if vary < threshold {
			m.coef += threshold
		} else {
			m.coef += vary
		}
		m.coef /= attack
	} else {
		s2 := m.speed * m.speed
		m.coef = (m.coef*(s2-1) + 1) / s2
	}

	m.speed = (m.speed*(m.speed-1) + math.Abs(sq*release) + fastest) / m.speed
}

func (m *muSide) gain() float64 {
	return (m.coef + m.coef*m.coef) / 2
}

// compChannel holds both sides and the previous sample of one channel
type compChannel struct {
	a, b     muSide
	previous float64
}

func (c *compChannel) reset() {
	c.a = muSide{speed: compInitialSpeed, coef: 1}
	c.b = muSide{speed: compInitialSpeed, coef: 1}
	c.previous = 0
}

// Compressor is a program-dependent variable-mu style compressor whose
// release speed follows the signal energy.
type Compressor struct {
	overall   float64
	threshold float64
	release   float64
	fastest   float64
	attack    bool

	headroom    float64
	invHeadroom float64

	ch    [dsp.Stereo]compChannel
	flip  bool
	meter analysis.ReductionTracker
}

// CompControls are the normalized compressor settings applied per block
type CompControls struct {
	Comp   float64
	Speed  float64
	Attack bool
}

// NewCompressor creates a compressor for sampleRate
func NewCompressor(sampleRate float64) *Compressor {
	c := &Compressor{
		headroom:    core.DBToLinear(compHeadroomDB),
		invHeadroom: core.DBToLinear(-compHeadroomDB),
	}
	c.SetSampleRate(sampleRate)
	c.SetControls(CompControls{Comp: 0.2, Speed: 0.6})
	c.Reset()
	return c
}

// SetSampleRate sets the rate the release is scaled against
func (c *Compressor) SetSampleRate(sampleRate float64) {
	c.overall = 2 * sampleRate / dsp.ReferenceRate
}

// SetControls derives threshold and release for the next block.
func (c *Compressor) SetControls(ctl CompControls) {
	c.threshold = 1.001 - (1 - math.Pow(1-ctl.Comp, 3))
	c.release = math.Pow(compSpeedOffset-ctl.Speed, 5) * compReleaseScale / c.overall
	c.fastest = math.Sqrt(c.release)
	c.attack = ctl.Attack
}

// Threshold returns the squared-sample threshold
func (c *Compressor) Threshold() float64 {
	return c.threshold
}

// Begin starts a new metering block
func (c *Compressor) Begin() {
	c.meter.Begin()
}

func (c *Compressor) tick(ch *compChannel, x float64) float64 {
	x *= c.headroom

	sq := x * x
	if math.Abs(x) > math.Abs(ch.previous) {
		sq = ch.previous * ch.previous
	}
	ch.previous = x

	side := &ch.b
	if c.flip {
		side = &ch.a
	}
	side.step(sq, c.threshold, c.release, c.fastest, c.attack)

	return x * side.gain() * c.invHeadroom
}

// Tick processes one stereo frame.
func (c *Compressor) Tick(l, r float64) (float64, float64) {
	dryL, dryR := l, r

	l = c.tick(&c.ch[0], l)
	r = c.tick(&c.ch[1], r)
	c.flip = !c.flip

	c.meter.Observe(l, dryL)
	c.meter.Observe(r, dryR)
	if l == dryL || r == dryR {
		c.meter.Force(1)
	}
	return l, r
}

// Reset returns both channels to unity gain
func (c *Compressor) Reset() {
	c.ch[0].reset()
	c.ch[1].reset()
	c.flip = false
	c.meter.Begin()
}

// Reduction returns the smallest wet/dry ratio since Begin
func (c *Compressor) Reduction() float64 {
	return c.meter.Ratio()
}

// Meter returns the block reduction as a normalized meter value
func (c *Compressor) Meter() float64 {
	return c.meter.Meter()
}
