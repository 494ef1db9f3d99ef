package distortion

import "math"

// Inflator curve at the neutral curve setting
const (
	inflateA = 1.5
	inflateB = 0.0
	inflateC = -0.5
	inflateD = 0.0625
)

// Inflator is a polynomial soft clipper that raises perceived loudness
// without raising the peak. Safe mode clamps to ±1 before and after.
type Inflator struct {
	amount float64
	safe   bool
}

// NewInflator creates an inflator at the given wet amount
func NewInflator(amount float64) *Inflator {
	return &Inflator{amount: amount}
}

// SetAmount sets the wet amount in 0..1
func (f *Inflator) SetAmount(amount float64) {
	f.amount = amount
}

// SetSafe enables the ±1 clamps
func (f *Inflator) SetSafe(safe bool) {
	f.safe = safe
}

// Curve applies the inflate polynomial to x. Magnitudes of 2 and above
// map to zero.
func Curve(x float64) float64 {
	sign := -1.0
	if x > 0 {
		sign = 1
	}

	s1 := math.Abs(x)
	s2 := s1 * s1
	s3 := s2 * s1
	s4 := s2 * s2

	var y float64
	switch {
	case s1 >= 2:
		y = 0
	case s1 > 1:
		y = 2*s1 - s2
	default:
		y = inflateA*s1 + inflateB*s2 + inflateC*s3 - inflateD*(s2-2*s3+s4)
	}
	return y * sign
}

func (f *Inflator) tick(x float64) float64 {
	dry := x
	if f.safe {
		x = max(-1, min(x, 1))
	}
	x = Curve(x)
	if f.amount != 1 {
		x = dry*(1-f.amount) + x*f.amount
	}
	if f.safe {
		x = max(-1, min(x, 1))
	}
	return x
}

// Tick processes one stereo frame.
func (f *Inflator) Tick(l, r float64) (float64, float64) {
	return f.tick(l), f.tick(r)
}

// Reset is a no-op; the inflator is stateless
func (f *Inflator) Reset() {}
