package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasureLevels(t *testing.T) {
	empty := MeasureLevels(nil)
	assert.True(t, math.IsInf(empty.PeakDB, -1))

	square := []float64{0.5, -0.5, 0.5, -0.5}
	l := MeasureLevels(square)
	assert.Equal(t, 0.5, l.Peak)
	assert.InDelta(t, 0.5, l.RMS, 1e-12)
	assert.InDelta(t, 0, l.DC, 1e-12)
	assert.InDelta(t, -6.0206, l.PeakDB, 1e-3)

	offset := MeasureLevels([]float64{0.25, 0.25})
	assert.InDelta(t, 0.25, offset.DC, 1e-12)
}

func TestCorrelation(t *testing.T) {
	sig := make([]float64, 512)
	inv := make([]float64, 512)
	for i := range sig {
		sig[i] = math.Sin(float64(i) * 0.1)
		inv[i] = -sig[i]
	}

	assert.InDelta(t, 1, Correlation(sig, sig), 1e-9)
	assert.InDelta(t, -1, Correlation(sig, inv), 1e-9)
	assert.Equal(t, 0.0, Correlation(sig, make([]float64, 512)))
	assert.Equal(t, 0.0, Correlation(nil, sig))
}
