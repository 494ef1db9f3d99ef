package analysis

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// ErrFFTSize is returned for transform sizes that are not a power of two.
var ErrFFTSize = errors.New("analysis: fft size must be a power of two")

// Spectrum computes one-sided power spectra with a reusable plan and
// preallocated scratch buffers.
type Spectrum struct {
	size     int
	plan     *algofft.Plan[complex128]
	in       []complex128
	out      []complex128
	frame    []float64
	window   []float64
	re       []float64
	im       []float64
	power    []float64
	windowed bool
}

// NewSpectrum creates a spectrum of the given size. With windowed set a
// periodic Hann window is applied before the transform.
func NewSpectrum(size int, windowed bool) (*Spectrum, error) {
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("analysis: fft plan: %w", err)
	}

	bins := size/2 + 1
	s := &Spectrum{
		size:     size,
		plan:     plan,
		in:       make([]complex128, size),
		out:      make([]complex128, size),
		frame:    make([]float64, size),
		window:   make([]float64, size),
		re:       make([]float64, bins),
		im:       make([]float64, bins),
		power:    make([]float64, bins),
		windowed: windowed,
	}
	for i := range s.window {
		s.window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}
	return s, nil
}

// Size returns the transform size
func (s *Spectrum) Size() int {
	return s.size
}

// Bins returns the number of one-sided bins
func (s *Spectrum) Bins() int {
	return s.size/2 + 1
}

// BinFrequency returns the center frequency of bin
func (s *Spectrum) BinFrequency(bin int, sampleRate float64) float64 {
	return float64(bin) * sampleRate / float64(s.size)
}

// BinFor returns the bin nearest to freq
func (s *Spectrum) BinFor(freq, sampleRate float64) int {
	bin := int(math.Round(freq * float64(s.size) / sampleRate))
	return max(0, min(bin, s.size/2))
}

// Power transforms samples (zero padded or truncated to the plan size) and
// returns |X[k]|². The returned slice is reused by the next call.
func (s *Spectrum) Power(samples []float64) ([]float64, error) {
	clear(s.frame)
	copy(s.frame, samples)
	if s.windowed {
		vecmath.MulBlockInPlace(s.frame, s.window)
	}

	for i, v := range s.frame {
		s.in[i] = complex(v, 0)
	}
	if err := s.plan.Forward(s.out, s.in); err != nil {
		return nil, fmt.Errorf("analysis: forward fft: %w", err)
	}

	for k := range s.re {
		s.re[k] = real(s.out[k])
		s.im[k] = imag(s.out[k])
	}
	vecmath.Power(s.power, s.re, s.im)
	return s.power, nil
}

// MagnitudeResponse returns the dB magnitude of an impulse response at the
// requested frequencies, using the smallest power-of-two transform that
// holds the whole response.
func MagnitudeResponse(impulse []float64, sampleRate float64, freqs []float64) ([]float64, error) {
	size := 2
	for size < len(impulse) {
		size *= 2
	}

	s, err := NewSpectrum(size, false)
	if err != nil {
		return nil, err
	}
	power, err := s.Power(impulse)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = 10 * math.Log10(power[s.BinFor(f, sampleRate)])
	}
	return out, nil
}

// Band is a named frequency range in Hz
type Band struct {
	Name string
	Lo   float64
	Hi   float64
}

// StandardBands splits the audible range into the regions the tone stage
// works on.
func StandardBands() []Band {
	return []Band{
		{"sub (20-60Hz)", 20, 60},
		{"low (60-250Hz)", 60, 250},
		{"low-mid (250-1kHz)", 250, 1000},
		{"mid (1-2.5kHz)", 1000, 2500},
		{"presence (2.5-6kHz)", 2500, 6000},
		{"high (6-12kHz)", 6000, 12000},
		{"air (12-20kHz)", 12000, 20000},
	}
}

// BandEnergy averages windowed power spectra over hops of half the plan
// size and returns the energy in each band in dB.
func (s *Spectrum) BandEnergy(samples []float64, sampleRate float64, bands []Band) ([]float64, error) {
	acc := make([]float64, s.Bins())
	scaled := make([]float64, s.Bins())
	frames := 0

	hop := s.size / 2
	for pos := 0; pos == 0 || pos+s.size <= len(samples); pos += hop {
		end := min(pos+s.size, len(samples))
		power, err := s.Power(samples[pos:end])
		if err != nil {
			return nil, err
		}
		vecmath.AddBlockInPlace(acc, power)
		frames++
	}
	vecmath.ScaleBlock(scaled, acc, 1/float64(frames))

	out := make([]float64, len(bands))
	for i, b := range bands {
		lo := s.BinFor(b.Lo, sampleRate)
		hi := s.BinFor(b.Hi, sampleRate)
		sum := 0.0
		for k := lo; k <= hi; k++ {
			sum += scaled[k]
		}
		out[i] = 10 * math.Log10(sum+1e-30)
	}
	return out, nil
}
