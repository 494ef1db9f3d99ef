package analysis

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/justyntemme/lunchbox/pkg/dsp"
)

// MeterRange describes the three-segment dB to normalized meter mapping.
// Mid maps to 0.5, Max to 1 and Min to 0.
type MeterRange struct {
	Min float64
	Mid float64
	Max float64
}

// Meter ranges used by the chain
var (
	LevelRange     = MeterRange{Min: -60, Mid: -18, Max: 0}
	ReductionRange = MeterRange{Min: -12, Mid: -6, Max: 0}
)

// Normalize maps a dB value into [0,1]
func (r MeterRange) Normalize(db float64) float64 {
	switch {
	case db > r.Max:
		return 1
	case db > r.Mid:
		return (db - (2*r.Mid - r.Max)) / (2*r.Max - 2*r.Mid)
	case db > r.Min:
		return (db - r.Min) / (2*r.Mid - 2*r.Min)
	default:
		// also catches NaN from negative or undefined inputs
		return 0
	}
}

// Plain maps a normalized meter value back to dB
func (r MeterRange) Plain(norm float64) float64 {
	if norm > 0.5 {
		return 2*(r.Max-r.Mid)*norm + (2*r.Mid - r.Max)
	}
	return 2*(r.Mid-r.Min)*norm + r.Min
}

// VuPPM converts a linear magnitude to a normalized meter value.
func VuPPM(value float64, r MeterRange) float64 {
	return r.Normalize(core.LinearToDB(value))
}

// PeakOf returns the largest magnitude found in either channel.
func PeakOf[T dsp.Sample](left, right []T) float64 {
	peak := 0.0
	for _, s := range left {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	for _, s := range right {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	return peak
}

// ReductionTracker keeps the smallest output/dry ratio seen in a block.
type ReductionTracker struct {
	ratio float64
}

// Begin starts a new block at ratio 1
func (t *ReductionTracker) Begin() {
	t.ratio = 1
}

// Observe records one processed sample against its dry value
func (t *ReductionTracker) Observe(wet, dry float64) {
	if dry == 0 {
		return
	}
	if r := wet / dry; r < t.ratio {
		t.ratio = r
	}
}

// Force sets the ratio, overriding whatever was observed
func (t *ReductionTracker) Force(ratio float64) {
	t.ratio = ratio
}

// Ratio returns the tracked ratio
func (t *ReductionTracker) Ratio() float64 {
	return t.ratio
}

// Meter returns the tracked ratio as a normalized reduction meter
func (t *ReductionTracker) Meter() float64 {
	return VuPPM(t.ratio, ReductionRange)
}

// PeakHold adds display ballistics to per-block normalized meter values:
// the value falls at a fixed rate and the held maximum is kept for a while.
type PeakHold struct {
	value     float64
	hold      float64
	holdTime  float64
	fallRate  float64
	holdCount float64
	mu        sync.Mutex
}

// NewPeakHold creates a peak hold with 1.5 s hold and a fall rate of one
// full scale per 1.5 s.
func NewPeakHold() *PeakHold {
	return &PeakHold{
		holdTime: 1.5,
		fallRate: 1 / 1.5,
	}
}

// SetHoldTime sets the hold time in seconds
func (ph *PeakHold) SetHoldTime(seconds float64) {
	ph.mu.Lock()
	defer ph.mu.Unlock()
	ph.holdTime = seconds
}

// SetFallRate sets the fall rate in normalized units per second
func (ph *PeakHold) SetFallRate(perSecond float64) {
	ph.mu.Lock()
	defer ph.mu.Unlock()
	ph.fallRate = perSecond
}

// Update feeds a new meter value observed elapsed seconds after the last one
func (ph *PeakHold) Update(meter, elapsed float64) {
	ph.mu.Lock()
	defer ph.mu.Unlock()

	ph.value = core.Clamp(ph.value-ph.fallRate*elapsed, 0, 1)
	if meter > ph.value {
		ph.value = meter
	}

	if meter >= ph.hold {
		ph.hold = meter
		ph.holdCount = ph.holdTime
		return
	}
	ph.holdCount -= elapsed
	if ph.holdCount <= 0 {
		ph.hold = ph.value
		ph.holdCount = 0
	}
}

// Value returns the falling meter value
func (ph *PeakHold) Value() float64 {
	ph.mu.Lock()
	defer ph.mu.Unlock()
	return ph.value
}

// Hold returns the held maximum
func (ph *PeakHold) Hold() float64 {
	ph.mu.Lock()
	defer ph.mu.Unlock()
	return ph.hold
}

// Reset clears value and hold
func (ph *PeakHold) Reset() {
	ph.mu.Lock()
	defer ph.mu.Unlock()
	ph.value = 0
	ph.hold = 0
	ph.holdCount = 0
}
