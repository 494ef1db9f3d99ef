package utility

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXorshiftSequence(t *testing.T) {
	x := NewXorshift(1)

	// 1 ^ 1<<13 = 8193; 8193 ^ 8193>>17 = 8193; 8193 ^ 8193<<5 = 270369
	assert.Equal(t, uint32(270369), x.Next())
	assert.Equal(t, uint32(270369), x.State())
}

func TestXorshiftZeroValue(t *testing.T) {
	var x Xorshift
	assert.Equal(t, uint32(1), x.State())
	assert.NotZero(t, x.Next())
}

func TestXorshiftReseed(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	x := NewXorshift(1)
	x.Reseed(r)
	assert.GreaterOrEqual(t, x.State(), uint32(MinSeed))

	// A seeded generator keeps its state.
	y := NewXorshift(99999)
	y.Reseed(r)
	assert.Equal(t, uint32(99999), y.State())
}

func TestDither32Magnitude(t *testing.T) {
	x := NewXorshift(123456)

	for _, sample := range []float64{0.5, 0.01, -0.75, 1e-4} {
		d := x.Dither32(sample)
		_, e := math.Frexp(float64(float32(sample)))
		bound := 2.2e9 * 5.5e-36 * math.Ldexp(1, e+62)
		require.LessOrEqual(t, math.Abs(d), bound)
		// Dither stays far below one float32 ulp of the sample.
		ulp := math.Ldexp(1, e-24)
		assert.Less(t, math.Abs(d), ulp)
	}
}
