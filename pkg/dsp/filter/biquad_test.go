package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesigns(t *testing.T) {
	tests := []struct {
		name  string
		c     Coefficients
		fc    float64
		want  float64
		delta float64
	}{
		{"lowpass dc", Lowpass(0.1, 0.7071), 0, 1, 1e-12},
		{"lowpass nyquist", Lowpass(0.1, 0.7071), 0.5, 0, 1e-12},
		{"bandpass center", Bandpass(0.01, BandQ), 0.01, 1, 1e-9},
		{"bandpass dc", Bandpass(0.01, BandQ), 0, 0, 1e-12},
		{"highpass dc", FirstOrderHighpass(0.05), 0, 0, 1e-12},
		{"highpass nyquist", FirstOrderHighpass(0.05), 0.5, 1, 1e-12},
		{"identity", Identity, 0.2, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.c.Magnitude(tt.fc), tt.delta)
		})
	}
}

func TestPeaking(t *testing.T) {
	const sampleRate = 44100.0
	fc := PeakFrequency / sampleRate
	k := math.Tan(math.Pi * fc)

	boost := Peaking(k, PeakQ, 6)
	assert.InDelta(t, math.Pow(10, 6.0/20), boost.Magnitude(fc), 1e-9)
	assert.InDelta(t, 1, boost.Magnitude(0), 1e-12)

	cut := Peaking(k, PeakQ, -6)
	assert.InDelta(t, math.Pow(10, -6.0/20), cut.Magnitude(fc), 1e-9)

	// Boost and cut are exact inverses
	for _, f := range []float64{0.001, fc, 0.1, 0.3} {
		assert.InDelta(t, 1, boost.Magnitude(f)*cut.Magnitude(f), 1e-9)
	}

	flat := Peaking(k, PeakQ, 0)
	assert.InDelta(t, 1, flat.Z0, 1e-15)
	assert.Equal(t, flat.P1, flat.Z1)
	assert.InDelta(t, flat.P2, flat.Z2, 1e-15)
}

func TestBiquadMatchesResponse(t *testing.T) {
	c := Lowpass(0.05, 1.618033988749895)

	var b Biquad
	impulse := make([]float64, 4096)
	for i := range impulse {
		x := 0.0
		if i == 0 {
			x = 1
		}
		impulse[i] = b.Tick(&c, x)
	}

	// DC gain of the impulse response matches the design
	sum := 0.0
	for _, v := range impulse {
		sum += v
	}
	assert.InDelta(t, c.Magnitude(0), sum, 1e-9)

	b.Reset()
	assert.Equal(t, Biquad{}, b)
}

func TestBiquadFlush(t *testing.T) {
	var b Biquad
	c := Identity

	assert.Equal(t, 0.0, b.TickFlushed(&c, 1e-38))
	assert.Equal(t, 0.5, b.TickFlushed(&c, 0.5))

	var plain Biquad
	assert.Equal(t, 1e-38, plain.Tick(&c, 1e-38))
}

func TestStereoChannelsIndependent(t *testing.T) {
	s := NewStereo(Lowpass(0.1, 0.7071))

	l, r := s.Tick(1, 0)
	require.NotZero(t, l)
	assert.Zero(t, r)

	for i := 0; i < 16; i++ {
		_, r = s.Tick(0, 0)
		assert.Zero(t, r)
	}

	s.Reset()
	l, _ = s.Tick(0, 0)
	assert.Zero(t, l)
}
