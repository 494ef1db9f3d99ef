package dynamics

import (
	"math"

	"github.com/justyntemme/lunchbox/pkg/dsp"
)

// Gate constants
const (
	gateFloor       = 0.00018
	gateHysteresis  = 1.1
	gateRelease     = 0.028331119964586
	gateMaxCrossing = 220.9
)

// Zero-cross counter limits, truncated like the counter itself
var (
	gateReopen = int32(math.Floor(gateMaxCrossing * 0.3))
	gateCap    = int32(math.Floor(gateMaxCrossing))
)

// gateChannel tracks zero crossings and the gate roller of one channel
type gateChannel struct {
	wasNegative bool
	zeroCross   int32
	roller      float64
	gate        float64
}

// Gate is a zero-cross aware noise gate. It opens from silence only above
// the on threshold, stays open above a slightly higher off threshold and
// closes through a rectified knee into hard silence.
type Gate struct {
	on  float64
	off float64
	ch  [dsp.Stereo]gateChannel
}

// NewGate creates a gate at the given normalized threshold
func NewGate(threshold float64) *Gate {
	g := &Gate{}
	g.SetThreshold(threshold)
	return g
}

// SetThreshold sets the normalized gate threshold
func (g *Gate) SetThreshold(threshold float64) {
	g.on = math.Pow(threshold, 3)/3 + gateFloor
	g.off = g.on * gateHysteresis
}

// Thresholds returns the open and hold thresholds
func (g *Gate) Thresholds() (on, off float64) {
	return g.on, g.off
}

func (g *Gate) tick(c *gateChannel, x float64) float64 {
	if x > 0 {
		if c.wasNegative {
			c.zeroCross = gateReopen
		}
		c.wasNegative = false
	} else {
		c.zeroCross++
		c.wasNegative = true
	}
	if float64(c.zeroCross) > gateMaxCrossing {
		c.zeroCross = gateCap
	}

	zc := float64(c.zeroCross)
	ax := math.Abs(x)
	switch {
	case c.gate == 0 && ax > g.on:
		// open from total silence only
		if c.roller == 0 {
			c.roller = zc
		} else {
			c.roller -= gateRelease
		}
	case c.gate != 0 && ax > g.off:
		if c.roller < zc {
			c.roller = zc
		} else {
			c.roller -= gateRelease
		}
	default:
		c.roller -= gateRelease
	}
	if c.roller < 0 {
		c.roller = 0
	}

	if c.roller >= 1 {
		c.gate = 1
		return x
	}

	c.gate = c.roller
	if c.gate == 0 {
		return 0
	}
	bridge := (1 - math.Cos(ax)) * (1 - c.gate)
	if x > 0 {
		return x*c.gate + bridge
	}
	return x*c.gate - bridge
}

// Tick processes one stereo frame.
func (g *Gate) Tick(l, r float64) (float64, float64) {
	return g.tick(&g.ch[0], l), g.tick(&g.ch[1], r)
}

// Reset closes the gate
func (g *Gate) Reset() {
	g.ch = [dsp.Stereo]gateChannel{}
}

// Open reports whether the gate of channel ch is fully open
func (g *Gate) Open(ch int) bool {
	return g.ch[ch].gate == 1
}
