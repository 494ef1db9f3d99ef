package dynamics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressorControls(t *testing.T) {
	c := NewCompressor(44100)

	c.SetControls(CompControls{Comp: 0, Speed: 0.6})
	assert.InDelta(t, 1.001, c.Threshold(), 1e-12)

	c.SetControls(CompControls{Comp: 1, Speed: 0.6})
	assert.InDelta(t, 0.001, c.Threshold(), 1e-12)

	c.SetControls(CompControls{Comp: 0.2, Speed: 0.6})
	assert.InDelta(t, 0.513, c.Threshold(), 1e-12)
	assert.InDelta(t, math.Pow(0.55, 5)*32768/2, c.release, 1e-9)
	assert.InDelta(t, math.Sqrt(c.release), c.fastest, 1e-12)
}

func TestCompressorQuietSignalUntouched(t *testing.T) {
	c := NewCompressor(44100)
	c.Begin()

	for i := 0; i < 4096; i++ {
		x := 0.05 * math.Sin(2*math.Pi*440*float64(i)/44100)
		l, r := c.Tick(x, -x)
		assert.InDelta(t, x, l, 1e-9)
		assert.InDelta(t, -x, r, 1e-9)
	}
	assert.InDelta(t, 1, c.Meter(), 1e-6)
}

func TestCompressorReducesLoudSignal(t *testing.T) {
	c := NewCompressor(44100)

	for block := 0; block < 40; block++ {
		c.Begin()
		for i := 0; i < 1024; i++ {
			x := 0.5 * math.Sin(2*math.Pi*440*float64(block*1024+i)/44100)
			c.Tick(x, x)
		}
	}
	assert.Less(t, c.Reduction(), 0.7)
	assert.Less(t, c.Meter(), 0.8)
}

func TestCompressorAttackFlag(t *testing.T) {
	reduce := func(fast bool) float64 {
		c := NewCompressor(44100)
		c.SetControls(CompControls{Comp: 0.5, Speed: 0.6, Attack: fast})
		c.Begin()
		var l float64
		for i := 0; i < 512; i++ {
			l, _ = c.Tick(0.5, 0.5)
		}
		return l
	}

	assert.Less(t, reduce(true), reduce(false))
}

func TestCompressorRecovers(t *testing.T) {
	c := NewCompressor(44100)

	for i := 0; i < 2*44100; i++ {
		c.Tick(0.5, 0.5)
	}
	c.Begin()
	c.Tick(0.5, 0.5)
	assert.Less(t, c.Reduction(), 0.9)

	for i := 0; i < 2*44100; i++ {
		c.Tick(0.01, 0.01)
	}
	c.Begin()
	c.Tick(0.01, 0.01)
	assert.Greater(t, c.Reduction(), 0.95)
}

func TestCompressorReset(t *testing.T) {
	c := NewCompressor(44100)
	for i := 0; i < 1000; i++ {
		c.Tick(0.8, -0.8)
	}
	c.Reset()

	for ch := range c.ch {
		assert.Equal(t, 1.0, c.ch[ch].a.coef)
		assert.Equal(t, compInitialSpeed, c.ch[ch].b.speed)
		assert.Zero(t, c.ch[ch].previous)
	}
	assert.False(t, c.flip)
}
