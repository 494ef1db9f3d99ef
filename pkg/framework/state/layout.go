// Package state persists processor parameters as a fixed sequence of
// little-endian 32-bit fields.
package state

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// FieldSize is the encoded size of every field in bytes
const FieldSize = 4

// Decoding errors
var (
	ErrTruncated = errors.New("state: truncated stream")
	ErrLayout    = errors.New("state: value count does not match layout")
)

// Kind selects the encoding of a field
type Kind uint8

// Field kinds
const (
	Float32 Kind = iota // IEEE-754 single precision normalized value
	Bool                // int32 0 or 1, any nonzero value reads as on
)

// Field binds one persisted slot to a parameter
type Field struct {
	Name string
	ID   uint32
	Kind Kind
}

// Layout is the ordered list of persisted fields
type Layout []Field

// Size returns the encoded size in bytes
func (l Layout) Size() int {
	return len(l) * FieldSize
}

// Encode writes one value per field. Bool fields store value > 0.5.
func (l Layout) Encode(w io.Writer, values []float64) error {
	if len(values) != len(l) {
		return fmt.Errorf("%w: %d values for %d fields", ErrLayout, len(values), len(l))
	}

	buf := make([]byte, l.Size())
	for i, f := range l {
		b := buf[i*FieldSize:]
		switch f.Kind {
		case Bool:
			on := int32(0)
			if values[i] > 0.5 {
				on = 1
			}
			binary.LittleEndian.PutUint32(b, uint32(on))
		default:
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(values[i])))
		}
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("state: write: %w", err)
	}
	return nil
}

// Decode reads one value per field. On a short read nothing is returned and
// the error names the first incomplete field.
func (l Layout) Decode(r io.Reader) ([]float64, error) {
	buf := make([]byte, l.Size())
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("state: field %s: %w", l[n/FieldSize].Name, ErrTruncated)
		}
		return nil, fmt.Errorf("state: read: %w", err)
	}

	values := make([]float64, len(l))
	for i, f := range l {
		bits := binary.LittleEndian.Uint32(buf[i*FieldSize:])
		switch f.Kind {
		case Bool:
			if int32(bits) != 0 {
				values[i] = 1
			}
		default:
			values[i] = float64(math.Float32frombits(bits))
		}
	}
	return values, nil
}
