package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpectrumSize(t *testing.T) {
	for _, size := range []int{0, 1, 3, 100, 1000} {
		_, err := NewSpectrum(size, false)
		assert.ErrorIs(t, err, ErrFFTSize, "size %d", size)
	}

	s, err := NewSpectrum(1024, true)
	require.NoError(t, err)
	assert.Equal(t, 1024, s.Size())
	assert.Equal(t, 513, s.Bins())
}

func TestSpectrumPeak(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		windowed bool
	}{
		{"rect 512", 512, false},
		{"hann 1024", 1024, true},
		{"hann 4096", 4096, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const sampleRate = 44100.0
			const freq = 1000.0

			s, err := NewSpectrum(tt.size, tt.windowed)
			require.NoError(t, err)

			input := make([]float64, tt.size)
			for i := range input {
				input[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
			}

			power, err := s.Power(input)
			require.NoError(t, err)

			maxBin := 0
			for k, p := range power {
				if p > power[maxBin] {
					maxBin = k
				}
			}
			assert.InDelta(t, freq, s.BinFrequency(maxBin, sampleRate), sampleRate/float64(tt.size))
		})
	}
}

func TestMagnitudeResponseImpulse(t *testing.T) {
	impulse := make([]float64, 256)
	impulse[0] = 1

	dbs, err := MagnitudeResponse(impulse, 48000, []float64{0, 100, 1000, 20000})
	require.NoError(t, err)
	for _, db := range dbs {
		assert.InDelta(t, 0, db, 1e-9)
	}

	impulse[0] = 0.5
	dbs, err = MagnitudeResponse(impulse, 48000, []float64{1000})
	require.NoError(t, err)
	assert.InDelta(t, -6.0206, dbs[0], 1e-3)
}

func TestBinFor(t *testing.T) {
	s, err := NewSpectrum(1024, false)
	require.NoError(t, err)

	assert.Equal(t, 0, s.BinFor(-10, 44100))
	assert.Equal(t, 512, s.BinFor(30000, 44100))
	assert.Equal(t, 23, s.BinFor(1000, 44100))
}

func TestBandEnergy(t *testing.T) {
	const sampleRate = 44100.0

	s, err := NewSpectrum(2048, true)
	require.NoError(t, err)

	input := make([]float64, 8192)
	for i := range input {
		input[i] = math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate)
	}

	bands := StandardBands()
	energy, err := s.BandEnergy(input, sampleRate, bands)
	require.NoError(t, err)
	require.Len(t, energy, len(bands))

	// 440 Hz lands in low-mid, which must dominate every other band.
	for i, e := range energy {
		if bands[i].Lo == 250 {
			continue
		}
		assert.Greater(t, energy[2], e+20, bands[i].Name)
	}

	// A block shorter than the plan still yields one frame.
	short, err := s.BandEnergy(input[:100], sampleRate, bands)
	require.NoError(t, err)
	assert.Len(t, short, len(bands))
}
