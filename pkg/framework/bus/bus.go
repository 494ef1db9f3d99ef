// Package bus describes the audio buses a processor exposes and negotiates
// speaker arrangements with the host.
package bus

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrUnsupportedArrangement is returned when the host proposes buses the
// processor cannot run with.
var ErrUnsupportedArrangement = errors.New("bus: unsupported speaker arrangement")

// MediaType represents the type of bus
type MediaType int32

const (
	// MediaTypeAudio represents audio bus type
	MediaTypeAudio MediaType = 0
	// MediaTypeEvent represents event/MIDI bus type
	MediaTypeEvent MediaType = 1
)

// Direction represents the bus direction
type Direction int32

const (
	// DirectionInput represents input bus
	DirectionInput Direction = 0
	// DirectionOutput represents output bus
	DirectionOutput Direction = 1
)

// Type represents the bus type
type Type int32

const (
	// TypeMain represents main bus
	TypeMain Type = 0
	// TypeAux represents auxiliary bus
	TypeAux Type = 1
)

// Arrangement is a speaker bitmask, one bit per speaker
type Arrangement uint64

// Speaker arrangements
const (
	Mono   Arrangement = 1 << 19
	Stereo Arrangement = 1<<0 | 1<<1
)

// Channels returns the number of speakers in a
func (a Arrangement) Channels() int32 {
	return int32(bits.OnesCount64(uint64(a)))
}

func (a Arrangement) String() string {
	switch a {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	}
	return fmt.Sprintf("%d-channel(%#x)", a.Channels(), uint64(a))
}

// Info contains bus configuration
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Arrangement  Arrangement
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration manages audio buses
type Configuration struct {
	audioBuses []Info
}

// NewStereoConfiguration creates a standard stereo I/O configuration
func NewStereoConfiguration() *Configuration {
	return NewBuilder().
		WithStereoInput("Stereo In").
		WithStereoOutput("Stereo Out").
		MustBuild()
}

// GetBusCount returns the number of buses for a given type and direction
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	if mediaType != MediaTypeAudio {
		return 0
	}

	count := int32(0)
	for _, bus := range c.audioBuses {
		if bus.Direction == direction {
			count++
		}
	}
	return count
}

// GetBusInfo returns information about a specific bus
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	if mediaType != MediaTypeAudio {
		return nil
	}

	busIndex := int32(0)
	for i := range c.audioBuses {
		if c.audioBuses[i].Direction == direction {
			if busIndex == index {
				return &c.audioBuses[i]
			}
			busIndex++
		}
	}
	return nil
}

// SetArrangements accepts the host proposal only if it matches the
// configured bus count and every bus arrangement exactly. The
// configuration is unchanged on error.
func (c *Configuration) SetArrangements(inputs, outputs []Arrangement) error {
	if err := c.check(DirectionInput, inputs); err != nil {
		return err
	}
	return c.check(DirectionOutput, outputs)
}

// Arrangement returns the arrangement of a bus
func (c *Configuration) Arrangement(direction Direction, index int32) (Arrangement, bool) {
	info := c.GetBusInfo(MediaTypeAudio, direction, index)
	if info == nil {
		return 0, false
	}
	return info.Arrangement, true
}

func (c *Configuration) check(direction Direction, proposed []Arrangement) error {
	side := "input"
	if direction == DirectionOutput {
		side = "output"
	}

	if want := c.GetBusCount(MediaTypeAudio, direction); int32(len(proposed)) != want {
		return fmt.Errorf("%w: %d %s buses, want %d", ErrUnsupportedArrangement, len(proposed), side, want)
	}
	for i, a := range proposed {
		info := c.GetBusInfo(MediaTypeAudio, direction, int32(i))
		if a != info.Arrangement {
			return fmt.Errorf("%w: %s bus %d is %s, want %s", ErrUnsupportedArrangement, side, i, a, info.Arrangement)
		}
	}
	return nil
}
