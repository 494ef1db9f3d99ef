package analysis

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/tphakala/simd/f64"
)

// Levels summarizes one channel of audio
type Levels struct {
	Peak   float64
	RMS    float64
	DC     float64
	PeakDB float64
	RMSDB  float64
}

// MeasureLevels computes peak, RMS and DC offset of samples.
func MeasureLevels(samples []float64) Levels {
	if len(samples) == 0 {
		return Levels{PeakDB: math.Inf(-1), RMSDB: math.Inf(-1)}
	}

	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	n := float64(len(samples))
	rms := math.Sqrt(f64.DotProduct(samples, samples) / n)

	return Levels{
		Peak:   peak,
		RMS:    rms,
		DC:     f64.Sum(samples) / n,
		PeakDB: core.LinearToDB(peak),
		RMSDB:  core.LinearToDB(rms),
	}
}

// Correlation returns the normalized cross-correlation of two channels at
// lag zero: 1 for identical, -1 for inverted, 0 for silent input.
func Correlation(left, right []float64) float64 {
	n := min(len(left), len(right))
	if n == 0 {
		return 0
	}
	left, right = left[:n], right[:n]

	energy := math.Sqrt(f64.DotProduct(left, left) * f64.DotProduct(right, right))
	if energy == 0 {
		return 0
	}
	return f64.DotProduct(left, right) / energy
}
