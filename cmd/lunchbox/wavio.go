package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

const (
	wavFormatPCM   = 1
	stereoChannels = 2
)

var errChannels = errors.New("only mono and stereo WAV files are supported")

// clip is a decoded stereo file; mono input is duplicated to both sides
type clip struct {
	left, right []float64
	rate        int
	bits        int
}

func (c *clip) frames() int {
	return len(c.left)
}

func (c *clip) seconds() float64 {
	return float64(c.frames()) / float64(c.rate)
}

// fullScale returns the integer magnitude of 1.0 at bits
func fullScale(bits int) float64 {
	switch bits {
	case 8, 16, 24, 32:
		return math.Ldexp(1, bits-1)
	default:
		return math.Ldexp(1, 15)
	}
}

func readWAV(path string) (*clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%s: unsupported WAV format %d, want integer PCM", path, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := int(dec.NumChans)
	if channels < 1 || channels > stereoChannels {
		return nil, fmt.Errorf("%s: %d channels: %w", path, channels, errChannels)
	}

	bits := int(dec.BitDepth)
	left, right := deinterleave(buf.Data, channels, 1/fullScale(bits))
	return &clip{left: left, right: right, rate: int(dec.SampleRate), bits: bits}, nil
}

// deinterleave splits PCM integers into two float channels scaled by scale
func deinterleave(data []int, channels int, scale float64) (left, right []float64) {
	n := len(data) / channels
	left = make([]float64, n)
	right = make([]float64, n)
	for i := range n {
		left[i] = float64(data[i*channels]) * scale
		if channels == stereoChannels {
			right[i] = float64(data[i*channels+1]) * scale
		} else {
			right[i] = left[i]
		}
	}
	return left, right
}

// interleave merges both channels and converts them to clamped integers
func interleave(left, right []float64, bits int) []int {
	mixed := make([]float64, 2*len(left))
	f64.Interleave2(mixed, left, right)

	fs := fullScale(bits)
	f64.Scale(mixed, mixed, fs)

	out := make([]int, len(mixed))
	for i, v := range mixed {
		out[i] = int(math.Round(max(-fs, min(v, fs-1))))
	}
	return out
}

func writeWAV(path string, c *clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, c.rate, c.bits, stereoChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Data:           interleave(c.left, c.right, c.bits),
		Format:         &audio.Format{NumChannels: stereoChannels, SampleRate: c.rate},
		SourceBitDepth: c.bits,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return f.Close()
}

// resampleClip converts both channels to rate
func resampleClip(c *clip, rate int) (*clip, error) {
	if rate == c.rate {
		return c, nil
	}

	out := &clip{rate: rate, bits: c.bits}
	for _, ch := range []struct {
		src []float64
		dst *[]float64
	}{{c.left, &out.left}, {c.right, &out.right}} {
		r, err := resample.NewForRates(float64(c.rate), float64(rate), resample.WithQuality(resample.QualityBest))
		if err != nil {
			return nil, fmt.Errorf("failed to create resampler: %w", err)
		}
		*ch.dst = r.Process(ch.src)
	}

	n := min(len(out.left), len(out.right))
	out.left, out.right = out.left[:n], out.right[:n]
	return out, nil
}
