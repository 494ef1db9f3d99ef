// Package filter provides the bilinear-transform filters used by the chain
package filter

import (
	"math"
	"math/cmplx"

	"github.com/justyntemme/lunchbox/pkg/dsp"
)

// Coefficients holds a normalized second-order section. The denominator's
// leading term is always 1.
type Coefficients struct {
	Z0, Z1, Z2 float64 // numerator
	P1, P2     float64 // denominator
}

// Identity passes the input through unchanged
var Identity = Coefficients{Z0: 1}

// Scale multiplies the numerator by gain
func (c Coefficients) Scale(gain float64) Coefficients {
	c.Z0 *= gain
	c.Z1 *= gain
	c.Z2 *= gain
	return c
}

// Response evaluates the transfer function at the normalized frequency fc.
func (c Coefficients) Response(fc float64) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*fc))
	z2 := z1 * z1
	num := complex(c.Z0, 0) + complex(c.Z1, 0)*z1 + complex(c.Z2, 0)*z2
	den := 1 + complex(c.P1, 0)*z1 + complex(c.P2, 0)*z2
	return num / den
}

// Magnitude returns |H| at the normalized frequency fc
func (c Coefficients) Magnitude(fc float64) float64 {
	return cmplx.Abs(c.Response(fc))
}

// Lowpass designs a second-order lowpass at the normalized cutoff
// fc = frequency/sampleRate.
func Lowpass(fc, q float64) Coefficients {
	k := math.Tan(math.Pi * fc)
	norm := 1 / (1 + k/q + k*k)
	z0 := k * k * norm
	return Coefficients{
		Z0: z0,
		Z1: 2 * z0,
		Z2: z0,
		P1: 2 * (k*k - 1) * norm,
		P2: (1 - k/q + k*k) * norm,
	}
}

// Bandpass designs a constant 0 dB peak gain bandpass
func Bandpass(fc, q float64) Coefficients {
	k := math.Tan(math.Pi * fc)
	norm := 1 / (1 + k/q + k*k)
	z0 := k / q * norm
	return Coefficients{
		Z0: z0,
		Z1: 0,
		Z2: -z0,
		P1: 2 * (k*k - 1) * norm,
		P2: (1 - k/q + k*k) * norm,
	}
}

// FirstOrderHighpass designs a one-pole, one-zero highpass
func FirstOrderHighpass(fc float64) Coefficients {
	k := math.Tan(math.Pi * fc)
	norm := 1 / (k + 1)
	return Coefficients{
		Z0: norm,
		Z1: -norm,
		P1: (k - 1) * norm,
	}
}

// Peaking designs a peaking filter of gainDB around a prewarped k = tan(pi*fc).
// Zero gain gives the identity.
func Peaking(k, q, gainDB float64) Coefficients {
	v := math.Pow(10, math.Abs(gainDB)/20)
	k2 := k * k

	var qk, vqk float64
	if gainDB > 0 {
		qk = k / q
		vqk = v * k / q
	} else {
		qk = v * k / q
		vqk = k / q
	}

	norm := 1 / (1 + qk + k2)
	z1 := 2 * (k2 - 1) * norm
	return Coefficients{
		Z0: (1 + vqk + k2) * norm,
		Z1: z1,
		Z2: (1 - vqk + k2) * norm,
		P1: z1,
		P2: (1 - qk + k2) * norm,
	}
}

// Biquad is the Direct Form I history of one channel
type Biquad struct {
	x1, x2 float64 // input delay line
	y1, y2 float64 // output delay line
}

// Tick filters one sample through c.
func (b *Biquad) Tick(c *Coefficients, x float64) float64 {
	y := c.Z0*x + c.Z1*b.x1 + c.Z2*b.x2 - c.P1*b.y1 - c.P2*b.y2
	b.x2 = b.x1
	b.x1 = x
	b.y2 = b.y1
	b.y1 = y
	return y
}

// TickFlushed is Tick with outputs below the denormal floor stored and
// returned as zero.
func (b *Biquad) TickFlushed(c *Coefficients, x float64) float64 {
	y := c.Z0*x + c.Z1*b.x1 + c.Z2*b.x2 - c.P1*b.y1 - c.P2*b.y2
	b.x2 = b.x1
	b.x1 = x
	y = dsp.FlushDenormal(y)
	b.y2 = b.y1
	b.y1 = y
	return y
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	*b = Biquad{}
}

// Stereo pairs one coefficient set with left and right histories
type Stereo struct {
	Coefficients
	ch [dsp.Stereo]Biquad
}

// NewStereo creates a stereo filter with the given coefficients
func NewStereo(c Coefficients) *Stereo {
	return &Stereo{Coefficients: c}
}

// SetCoefficients replaces the coefficients and keeps the history
func (s *Stereo) SetCoefficients(c Coefficients) {
	s.Coefficients = c
}

// Tick filters one stereo frame
func (s *Stereo) Tick(l, r float64) (float64, float64) {
	return s.ch[0].Tick(&s.Coefficients, l), s.ch[1].Tick(&s.Coefficients, r)
}

// TickFlushed filters one stereo frame with denormal flushing
func (s *Stereo) TickFlushed(l, r float64) (float64, float64) {
	return s.ch[0].TickFlushed(&s.Coefficients, l), s.ch[1].TickFlushed(&s.Coefficients, r)
}

// Reset clears both channel histories
func (s *Stereo) Reset() {
	s.ch[0].Reset()
	s.ch[1].Reset()
}
