package dynamics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateThresholds(t *testing.T) {
	g := NewGate(0)
	on, off := g.Thresholds()
	assert.InDelta(t, 0.00018, on, 1e-15)
	assert.InDelta(t, 0.00018*1.1, off, 1e-15)

	g.SetThreshold(1)
	on, _ = g.Thresholds()
	assert.InDelta(t, 1.0/3+0.00018, on, 1e-12)

	assert.Equal(t, int32(66), gateReopen)
	assert.Equal(t, int32(220), gateCap)
}

func TestGateSilenceIsHardZero(t *testing.T) {
	g := NewGate(0.2)
	for i := 0; i < 1024; i++ {
		l, r := g.Tick(0, 0)
		require.Zero(t, l)
		require.Zero(t, r)
	}
}

func TestGateOpensAndPasses(t *testing.T) {
	g := NewGate(0.1)

	for i := 0; i < 4096; i++ {
		x := 0.5 * math.Sin(2*math.Pi*1000*float64(i)/44100)
		l, _ := g.Tick(x, x)
		if i > 1 {
			require.Equal(t, x, l, "sample %d", i)
		}
	}
	assert.True(t, g.Open(0))
	assert.True(t, g.Open(1))
}

func TestGateClosesAfterSignalStops(t *testing.T) {
	g := NewGate(0.1)
	for i := 0; i < 4096; i++ {
		x := 0.5 * math.Sin(2*math.Pi*1000*float64(i)/44100)
		g.Tick(x, x)
	}

	// low level hiss below the threshold
	var tail []float64
	for i := 0; i < 12000; i++ {
		x := 1e-4
		if i%2 == 1 {
			x = -x
		}
		l, _ := g.Tick(x, x)
		if i >= 11000 {
			tail = append(tail, l)
		}
	}
	for _, v := range tail {
		require.Zero(t, v)
	}
	assert.False(t, g.Open(0))
}

func TestGateReset(t *testing.T) {
	g := NewGate(0.1)
	g.Tick(0.5, 0.5)
	g.Tick(-0.5, -0.5)
	g.Tick(0.5, 0.5)
	require.True(t, g.Open(0))

	g.Reset()
	assert.False(t, g.Open(0))
	on, _ := g.Thresholds()
	assert.InDelta(t, 0.001/3+0.00018, on, 1e-12)
}
