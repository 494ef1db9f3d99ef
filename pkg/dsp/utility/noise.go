// Package utility provides small stateful helpers shared by the stages.
package utility

import (
	"math"
	"math/rand/v2"
)

// MinSeed is the smallest state a dither generator is allowed to start from.
const MinSeed = 16386

// Xorshift is a 32-bit xorshift generator used for denormal reseeding and
// floating point dither. The zero value is a valid but weak state of 1.
type Xorshift struct {
	state uint32
}

// NewXorshift creates a generator with the given state
func NewXorshift(state uint32) *Xorshift {
	return &Xorshift{state: state}
}

// State returns the current generator state
func (x *Xorshift) State() uint32 {
	if x.state == 0 {
		return 1
	}
	return x.state
}

// SetState overwrites the generator state
func (x *Xorshift) SetState(state uint32) {
	x.state = state
}

// Reseed draws states from r until one reaches MinSeed.
func (x *Xorshift) Reseed(r *rand.Rand) {
	for x.State() < MinSeed {
		x.state = r.Uint32()
	}
}

// Next advances the generator and returns the new state.
func (x *Xorshift) Next() uint32 {
	s := x.State()
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Dither32 advances the generator and returns the 32-bit float dither term
// for sample x, sized relative to the float32 exponent of x.
func (x *Xorshift) Dither32(sample float64) float64 {
	_, expon := math.Frexp(float64(float32(sample)))
	fpd := x.Next()
	return (float64(fpd) - float64(uint32(0x7fffffff))) * 5.5e-36 * math.Ldexp(1, expon+62)
}
