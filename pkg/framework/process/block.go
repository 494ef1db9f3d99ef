// Package process carries one audio block between host and processor.
package process

import (
	"github.com/justyntemme/lunchbox/pkg/dsp"
	"github.com/justyntemme/lunchbox/pkg/framework/param"
)

// Silence flag bits for the two stereo channels
const (
	SilentLeft  uint64 = 1 << 0
	SilentRight uint64 = 1 << 1
	SilentBoth         = SilentLeft | SilentRight
)

// Block is one host callback worth of audio. Buffers are caller owned and
// the processor never retains them.
type Block[T dsp.Sample] struct {
	Input  [][]T
	Output [][]T

	// Per-channel constant-zero bits, as set by the host
	InputSilence  uint64
	OutputSilence uint64

	// Incoming parameter points and outgoing meter points; either may be nil
	InputChanges  *param.Changes
	OutputChanges *param.Changes
}

// NumSamples returns the number of frames to process
func (b *Block[T]) NumSamples() int {
	if len(b.Input) > 0 && len(b.Input[0]) > 0 {
		return len(b.Input[0])
	}
	if len(b.Output) > 0 && len(b.Output[0]) > 0 {
		return len(b.Output[0])
	}
	return 0
}

// NumInputChannels returns the number of input channels
func (b *Block[T]) NumInputChannels() int {
	return len(b.Input)
}

// NumOutputChannels returns the number of output channels
func (b *Block[T]) NumOutputChannels() int {
	return len(b.Output)
}

// IsStereo reports whether both sides carry two channels of equal length
func (b *Block[T]) IsStereo() bool {
	if len(b.Input) != dsp.Stereo || len(b.Output) != dsp.Stereo {
		return false
	}
	n := len(b.Input[0])
	for _, ch := range [][]T{b.Input[1], b.Output[0], b.Output[1]} {
		if len(ch) != n {
			return false
		}
	}
	return true
}

// PassThrough copies input to output, skipping channels processed in place
func (b *Block[T]) PassThrough() {
	for ch := 0; ch < min(len(b.Input), len(b.Output)); ch++ {
		if !sameBuffer(b.Input[ch], b.Output[ch]) {
			copy(b.Output[ch], b.Input[ch])
		}
	}
}

// Clear zeros the output buffers
func (b *Block[T]) Clear() {
	for ch := range b.Output {
		clear(b.Output[ch])
	}
}

// HandleSilence propagates the input silence bits. Every flagged channel is
// zeroed on the output side. It reports true when a flagged channel means
// the block needs no processing.
func (b *Block[T]) HandleSilence() bool {
	if b.InputSilence == 0 {
		b.OutputSilence = 0
		return false
	}

	b.OutputSilence = 0
	for ch := 0; ch < min(len(b.Input), len(b.Output), 64); ch++ {
		bit := uint64(1) << uint(ch)
		if b.InputSilence&bit == 0 {
			continue
		}
		if !sameBuffer(b.Input[ch], b.Output[ch]) {
			clear(b.Output[ch])
		}
		b.OutputSilence |= bit
	}

	if b.InputSilence&SilentBoth != 0 {
		return true
	}
	b.OutputSilence = b.InputSilence
	return false
}

func sameBuffer[T dsp.Sample](a, b []T) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
