package gain

import (
	"math"

	"github.com/justyntemme/lunchbox/pkg/dsp"
	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
	"github.com/justyntemme/lunchbox/pkg/dsp/utility"
)

// Dither holds the left and right generators shared by Input and Output.
type Dither = [dsp.Stereo]utility.Xorshift

// Input applies the input trim, tracks the block peak and replaces near
// silent samples with a tiny seeded value so later stages never see
// denormals.
type Input struct {
	gain float64
	peak float64
	fpd  *Dither
}

// NewInput creates an input stage using the shared generators
func NewInput(fpd *Dither) *Input {
	return &Input{gain: 1, fpd: fpd}
}

// SetTrim sets the gain from a normalized trim value
func (in *Input) SetTrim(norm float64) {
	in.gain = NormToGain(norm)
}

// Begin starts a new block
func (in *Input) Begin() {
	in.peak = 0
}

// Tick processes one stereo frame.
func (in *Input) Tick(l, r float64) (float64, float64) {
	l *= in.gain
	r *= in.gain

	in.peak = max(in.peak, math.Abs(l), math.Abs(r))

	if math.Abs(l) < dsp.UnderflowFloor {
		l = float64(in.fpd[0].State()) * dsp.UnderflowReseed
	}
	if math.Abs(r) < dsp.UnderflowFloor {
		r = float64(in.fpd[1].State()) * dsp.UnderflowReseed
	}
	return l, r
}

// Reset is a no-op; the peak is cleared by Begin
func (in *Input) Reset() {}

// Peak returns the largest magnitude seen since Begin
func (in *Input) Peak() float64 {
	return in.peak
}

// Meter returns the block peak as a normalized level meter value
func (in *Input) Meter() float64 {
	return analysis.VuPPM(in.peak, analysis.LevelRange)
}

// Output applies the output trim, tracks the block peak and adds
// floating point dither sized to the host precision.
type Output struct {
	gain     float64
	peak     float64
	dither32 bool
	fpd      *Dither
}

// NewOutput creates an output stage using the shared generators
func NewOutput(fpd *Dither) *Output {
	return &Output{gain: 1, fpd: fpd}
}

// SetTrim sets the gain from a normalized trim value
func (o *Output) SetTrim(norm float64) {
	o.gain = NormToGain(norm)
}

// SetSinglePrecision selects 32-bit dither. In double precision the
// generators still advance but no dither is added.
func (o *Output) SetSinglePrecision(single bool) {
	o.dither32 = single
}

// Begin starts a new block
func (o *Output) Begin() {
	o.peak = 0
}

// Tick processes one stereo frame.
func (o *Output) Tick(l, r float64) (float64, float64) {
	l *= o.gain
	r *= o.gain

	o.peak = max(o.peak, math.Abs(l), math.Abs(r))

	if o.dither32 {
		l += o.fpd[0].Dither32(l)
		r += o.fpd[1].Dither32(r)
	} else {
		o.fpd[0].Next()
		o.fpd[1].Next()
	}
	return l, r
}

// Reset is a no-op; the peak is cleared by Begin
func (o *Output) Reset() {}

// Peak returns the largest magnitude seen since Begin
func (o *Output) Peak() float64 {
	return o.peak
}

// Meter returns the block peak as a normalized level meter value
func (o *Output) Meter() float64 {
	return analysis.VuPPM(o.peak, analysis.LevelRange)
}
