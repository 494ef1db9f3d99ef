package filter

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/justyntemme/lunchbox/pkg/dsp/analysis"
)

const testRate = 44100.0

func toneImpulse(t *testing.T, c ToneControls, n int) []float64 {
	t.Helper()

	tone := NewTone(testRate)
	tone.SetControls(c)

	out := make([]float64, n)
	for i := range out {
		x := 0.0
		if i == 0 {
			x = 1
		}
		out[i], _ = tone.Tick(x, 0)
	}
	return out
}

func TestToneDCGain(t *testing.T) {
	tone := NewTone(testRate)

	var l, r float64
	for i := 0; i < 2*int(testRate); i++ {
		l, r = tone.Tick(0.5, -0.25)
	}
	assert.InDelta(t, 0.5*ToneOutputGain, l, 1e-6)
	assert.InDelta(t, -0.25*ToneOutputGain, r, 1e-6)
}

func TestToneFlatPeakingIsIdentity(t *testing.T) {
	tone := NewTone(testRate)
	c := tone.peak.Coefficients

	assert.InDelta(t, 1, c.Z0, 1e-15)
	assert.Equal(t, c.P1, c.Z1)
	assert.Equal(t, c.P2, c.Z2)
	for _, f := range []float64{20, 1200, 15000} {
		assert.InDelta(t, 1, c.Magnitude(f/testRate), 1e-12)
	}
}

var probes = []float64{30, 60, 100, 250, 500, 1000, 2000, 4000, 8000, 12000}

func TestToneFlatResponseBounded(t *testing.T) {
	impulse := toneImpulse(t, FlatTone, 1<<15)

	dbs, err := analysis.MagnitudeResponse(impulse, testRate, probes)
	require.NoError(t, err)

	for i, db := range dbs {
		assert.InDelta(t, 0, db, 6, "%.0f Hz", probes[i])
	}
}

func TestToneResponseMatchesGonum(t *testing.T) {
	const n = 1 << 15
	impulse := toneImpulse(t, ToneControls{Low: 0.8, Body: 0.3, High: 0.6, Air: 0.9, Focus: 0.75}, n)

	dbs, err := analysis.MagnitudeResponse(impulse, testRate, probes)
	require.NoError(t, err)

	coeffs := fourier.NewFFT(n).Coefficients(nil, impulse)
	for i, f := range probes {
		bin := int(math.Round(f * n / testRate))
		want := 20 * math.Log10(cmplx.Abs(coeffs[bin]))
		assert.InDelta(t, want, dbs[i], 1e-6, "%.0f Hz", f)
	}
}

func TestToneLowcut(t *testing.T) {
	at := func(c ToneControls, f float64) float64 {
		dbs, err := analysis.MagnitudeResponse(toneImpulse(t, c, 1<<15), testRate, []float64{f, 1000})
		require.NoError(t, err)
		return dbs[0] - dbs[1]
	}

	cut := FlatTone
	cut.Lowcut = true

	assert.Less(t, at(cut, 30), at(FlatTone, 30)-3)
}

func TestToneFocus(t *testing.T) {
	tone := NewTone(testRate)
	c := FlatTone

	c.Focus = 1
	tone.SetControls(c)
	assert.InDelta(t, math.Pow(10, 6.0/20), tone.peak.Magnitude(PeakFrequency/testRate), 1e-9)

	c.Focus = 0
	tone.SetControls(c)
	assert.InDelta(t, math.Pow(10, -6.0/20), tone.peak.Magnitude(PeakFrequency/testRate), 1e-9)
}

func TestToneBandGains(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		pg   float64
	}{
		{"off", 0, 0},
		{"quarter below", 0.125, 0.5},
		{"quarter", 0.25, 1},
		{"flat", 0.5, 1},
		{"full", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, pg := bandGain(tt.x)
			assert.InDelta(t, tt.pg, pg, 1e-12)
		})
	}

	// Curves join at the branch points
	below, _ := bandGain(0.2499999)
	at, _ := bandGain(0.25)
	assert.InDelta(t, below, at, 1e-5)

	mid, _ := bandGain(0.5)
	above, _ := bandGain(0.5000001)
	assert.InDelta(t, mid, above, 1e-3)

	// Boosting a band raises its gain
	full, _ := bandGain(1)
	assert.Greater(t, full, mid)
	assert.Greater(t, airGain(1), airGain(0.5))
}

func TestToneGlobalGainNormalizes(t *testing.T) {
	tone := NewTone(testRate)
	for _, c := range []ToneControls{
		FlatTone,
		{Low: 1, Body: 0, High: 0.75, Air: 0.2, Focus: 0.5, Lowcut: true},
	} {
		tone.SetControls(c)
		sum := 0.0
		for b := 0; b < NumBands; b++ {
			g, _ := tone.BandGain(b)
			sum += g
		}
		assert.InDelta(t, ToneOutputGain, sum*tone.GlobalGain(), 1e-12)
	}
}

func TestToneReset(t *testing.T) {
	tone := NewTone(testRate)
	tone.Tick(1, 1)
	tone.Reset()

	l, r := tone.Tick(0, 0)
	assert.Zero(t, l)
	assert.Zero(t, r)
}
