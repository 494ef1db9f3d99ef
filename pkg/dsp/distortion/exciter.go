// Package distortion provides the saturating stages of the chain
package distortion

import (
	"math"

	"github.com/justyntemme/lunchbox/pkg/dsp"
	"github.com/justyntemme/lunchbox/pkg/dsp/filter"
)

// Exciter design constants
const (
	ExciterIIRAmount  = 0.005832
	ExciterThreshold  = 0.33362176
	ExciterCutoff     = 28811.0
	exciterMaxCutoff  = 0.49999
	spiralGain        = 1.2533141373155
	exciterPhatScale  = 1.57079633
	exciterDriveLimit = 2.0
)

// dielectric is one side of the alternating highpass state
type dielectric struct {
	iir [dsp.Stereo]float64
}

func (d *dielectric) tick(ch int, x, amount float64) float64 {
	iir := dsp.FlushDenormal(d.iir[ch])
	iir = iir*(1-amount) + x*amount
	d.iir[ch] = iir
	return x - iir
}

// slew holds the three-sample history of the golden-ratio slew clamp
type slew struct {
	a, b, c float64
}

func (s *slew) tick(x, threshold float64) float64 {
	clamp := (s.b-s.c)*dsp.PhiSquaredI - (s.a-s.b)*dsp.PhiInverse + x - s.a

	s.c = s.b
	s.b = s.a
	s.a = x

	if clamp > threshold {
		x = s.b + threshold
	}
	if -clamp > threshold {
		x = s.b - threshold
	}

	s.a = s.a*dsp.PhiSquaredI + x*dsp.PhiInverse
	return x
}

// Exciter is a console-style saturator: golden-ratio lowpass, a
// level-dependent highpass alternating between two states, a sine
// shaper, a slew clamp and a second lowpass.
type Exciter struct {
	iirAmount float64
	threshold float64
	density   float64
	phattity  float64
	nonLin    float64

	lowpassA filter.Stereo
	lowpassB filter.Stereo
	lowpass  bool

	highpassA dielectric
	highpassB dielectric
	slew      [dsp.Stereo]slew
	flip      bool
}

// NewExciter creates an exciter for sampleRate with no drive.
func NewExciter(sampleRate float64) *Exciter {
	e := &Exciter{}
	e.SetSampleRate(sampleRate)
	e.SetDrive(0)
	return e
}

// SetSampleRate redesigns the lowpass pair and the highpass amount.
func (e *Exciter) SetSampleRate(sampleRate float64) {
	overall := sampleRate / dsp.ReferenceRate
	e.iirAmount = ExciterIIRAmount / overall
	// the slew threshold stays fixed across sample rates
	e.threshold = ExciterThreshold

	fc := ExciterCutoff / sampleRate
	e.lowpass = fc < exciterMaxCutoff
	e.lowpassA.SetCoefficients(filter.Lowpass(fc, dsp.Phi))
	e.lowpassB.SetCoefficients(filter.Lowpass(fc, dsp.PhiInverse))
}

// SetDrive sets the drive in 0..2. Up to 1 it fades in the spiral
// shaper, above 1 it blends in the sine shaper on top.
func (e *Exciter) SetDrive(drive float64) {
	drive = max(0, min(drive, exciterDriveLimit))
	e.density = min(drive, 1)
	e.phattity = max(drive-1, 0)
	e.nonLin = 5 - e.density
}

// Tick processes one stereo frame.
func (e *Exciter) Tick(l, r float64) (float64, float64) {
	if e.lowpass {
		l, r = e.lowpassA.TickFlushed(l, r)
	}

	hp := &e.highpassB
	if e.flip {
		hp = &e.highpassA
	}
	l = hp.tick(0, l, e.iirAmount*e.dielectricScale(l))
	r = hp.tick(1, r, e.iirAmount*e.dielectricScale(r))

	l = e.slew[0].tick(e.shape(l), e.threshold)
	r = e.slew[1].tick(e.shape(r), e.threshold)

	e.flip = !e.flip

	if e.lowpass {
		l, r = e.lowpassB.TickFlushed(l, r)
	}
	return l, r
}

func (e *Exciter) dielectricScale(x float64) float64 {
	return math.Abs(2 - (x+e.nonLin)/e.nonLin)
}

// shape applies the spiral and sine shapers to one sample
func (e *Exciter) shape(x float64) float64 {
	dry := x

	x = max(-1, min(x, 1))
	phat := math.Sin(x * exciterPhatScale)
	x *= spiralGain

	ax := math.Abs(x)
	div := ax
	if div == 0 {
		div = 1
	}
	dist := math.Sin(x*ax) / div

	out := dist
	if e.density < 1 {
		out = dry*(1-e.density) + dist*e.density
	}
	if e.phattity > 0 {
		out = out*(1-e.phattity) + phat*e.phattity
	}
	return out
}

// Reset clears all filter and slew history
func (e *Exciter) Reset() {
	e.lowpassA.Reset()
	e.lowpassB.Reset()
	e.highpassA = dielectric{}
	e.highpassB = dielectric{}
	e.slew = [dsp.Stereo]slew{}
	e.flip = false
}
