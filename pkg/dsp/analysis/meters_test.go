package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeterRangeNormalize(t *testing.T) {
	tests := []struct {
		name string
		db   float64
		want float64
	}{
		{"above max", 6, 1},
		{"max", 0, 1},
		{"mid", -18, 0.5},
		{"half way up", -9, 0.75},
		{"half way down", -39, 0.25},
		{"min", -60, 0},
		{"below min", -100, 0},
		{"minus infinity", math.Inf(-1), 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LevelRange.Normalize(tt.db), 1e-12)
		})
	}
}

func TestMeterRangeRoundTrip(t *testing.T) {
	for _, r := range []MeterRange{LevelRange, ReductionRange} {
		for db := r.Min + 0.25; db < r.Max; db += 0.25 {
			assert.InDelta(t, db, r.Plain(r.Normalize(db)), 1e-6)
		}
		for n := 0.0; n <= 1; n += 0.01 {
			assert.InDelta(t, n, r.Normalize(r.Plain(n)+1e-9), 1e-6)
		}
	}
}

func TestMeterRangeMonotonic(t *testing.T) {
	prev := -1.0
	for db := -80.0; db <= 6; db += 0.5 {
		v := ReductionRange.Normalize(db)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestVuPPM(t *testing.T) {
	assert.Equal(t, 0.0, VuPPM(0, LevelRange))
	assert.Equal(t, 1.0, VuPPM(1, ReductionRange))
	assert.Equal(t, 1.0, VuPPM(2, LevelRange))
	// -6 dB on the reduction meter sits at its midpoint
	assert.InDelta(t, 0.5, VuPPM(math.Pow(10, -6.0/20), ReductionRange), 1e-9)
}

func TestPeakOf(t *testing.T) {
	assert.Equal(t, 0.0, PeakOf[float32](nil, nil))
	assert.Equal(t, 0.9, PeakOf([]float64{0.1, -0.9}, []float64{0.5}))
	assert.InDelta(t, 0.75, PeakOf([]float32{0.25}, []float32{-0.75, 0.5}), 1e-7)
}

func TestReductionTracker(t *testing.T) {
	var tr ReductionTracker
	tr.Begin()
	assert.Equal(t, 1.0, tr.Ratio())
	assert.Equal(t, 1.0, tr.Meter())

	tr.Observe(0.5, 1)
	tr.Observe(0.9, 1)
	tr.Observe(1, 0)
	assert.Equal(t, 0.5, tr.Ratio())

	tr.Force(1)
	assert.Equal(t, 1.0, tr.Ratio())

	tr.Begin()
	tr.Observe(-0.25, -1)
	assert.Equal(t, 0.25, tr.Ratio())
	assert.Equal(t, 0.0, tr.Meter())
}

func TestPeakHold(t *testing.T) {
	ph := NewPeakHold()

	ph.Update(0.8, 0.01)
	assert.Equal(t, 0.8, ph.Value())
	assert.Equal(t, 0.8, ph.Hold())

	// Value falls while the hold is kept
	ph.Update(0, 0.75)
	assert.InDelta(t, 0.3, ph.Value(), 1e-9)
	assert.Equal(t, 0.8, ph.Hold())

	// Hold expires after its hold time
	ph.Update(0, 1)
	assert.Equal(t, 0.0, ph.Value())
	assert.Equal(t, 0.0, ph.Hold())

	ph.Update(0.5, 0.01)
	ph.Reset()
	assert.Equal(t, 0.0, ph.Value())
	assert.Equal(t, 0.0, ph.Hold())
}
