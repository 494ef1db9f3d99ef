package process

import (
	"errors"
	"fmt"
)

// ErrUnsupportedSampleSize is returned for sample widths other than 32 and
// 64 bits.
var ErrUnsupportedSampleSize = errors.New("process: unsupported sample size")

// SampleSize is the symbolic sample width negotiated with the host
type SampleSize int32

// Symbolic sample sizes
const (
	SampleSize32 SampleSize = 0
	SampleSize64 SampleSize = 1
)

// ParseSampleSize maps a bit depth onto its symbolic size
func ParseSampleSize(bits int) (SampleSize, error) {
	switch bits {
	case 32:
		return SampleSize32, nil
	case 64:
		return SampleSize64, nil
	}
	return 0, fmt.Errorf("%w: %d bits", ErrUnsupportedSampleSize, bits)
}

// Validate reports whether s is a known size
func (s SampleSize) Validate() error {
	if s != SampleSize32 && s != SampleSize64 {
		return fmt.Errorf("%w: symbolic size %d", ErrUnsupportedSampleSize, int32(s))
	}
	return nil
}

// Bits returns the width in bits
func (s SampleSize) Bits() int {
	if s == SampleSize64 {
		return 64
	}
	return 32
}

func (s SampleSize) String() string {
	return fmt.Sprintf("%d-bit", s.Bits())
}
