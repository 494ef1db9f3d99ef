package bus

import (
	"errors"
	"fmt"
)

// Builder provides a fluent API for building bus configurations
type Builder struct {
	config *Configuration
	errors []error
}

// NewBuilder creates a new bus configuration builder
func NewBuilder() *Builder {
	return &Builder{
		config: &Configuration{audioBuses: []Info{}},
		errors: []error{},
	}
}

// WithAudioInput adds a main audio input bus
func (b *Builder) WithAudioInput(name string, a Arrangement) *Builder {
	return b.add(name, DirectionInput, a)
}

// WithAudioOutput adds a main audio output bus
func (b *Builder) WithAudioOutput(name string, a Arrangement) *Builder {
	return b.add(name, DirectionOutput, a)
}

// WithStereoInput is a convenience method for adding stereo input
func (b *Builder) WithStereoInput(name string) *Builder {
	return b.WithAudioInput(name, Stereo)
}

// WithStereoOutput is a convenience method for adding stereo output
func (b *Builder) WithStereoOutput(name string) *Builder {
	return b.WithAudioOutput(name, Stereo)
}

func (b *Builder) add(name string, direction Direction, a Arrangement) *Builder {
	if a == 0 {
		b.errors = append(b.errors, fmt.Errorf("bus %s: empty arrangement", name))
	}
	b.config.audioBuses = append(b.config.audioBuses, Info{
		MediaType:    MediaTypeAudio,
		Direction:    direction,
		ChannelCount: a.Channels(),
		Arrangement:  a,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
	return b
}

// Validate checks if the configuration is valid
func (b *Builder) Validate() error {
	if len(b.errors) > 0 {
		return errors.Join(b.errors...)
	}

	if b.config.GetBusCount(MediaTypeAudio, DirectionOutput) == 0 {
		return errors.New("configuration must have at least one output bus")
	}
	for _, bus := range b.config.audioBuses {
		if bus.ChannelCount > 32 {
			return fmt.Errorf("channel count %d exceeds maximum of 32 for bus %s", bus.ChannelCount, bus.Name)
		}
	}
	return nil
}

// Build returns the built configuration or an error
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.config, nil
}

// MustBuild returns the built configuration or panics on error
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
