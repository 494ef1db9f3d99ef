// Package plugin provides processor lifecycle scaffolding: metadata, setup
// negotiation and activation.
package plugin

import (
	"errors"
	"fmt"

	"github.com/justyntemme/lunchbox/pkg/framework/bus"
	"github.com/justyntemme/lunchbox/pkg/framework/debug"
	"github.com/justyntemme/lunchbox/pkg/framework/process"
)

// ErrNotSetUp is returned when activation is requested before Setup
var ErrNotSetUp = errors.New("plugin: processor not set up")

// Setup is the stream configuration the host proposes
type Setup struct {
	SampleRate   float64
	MaxBlockSize int32
	SampleSize   process.SampleSize
}

// BaseProcessor provides common functionality for audio processors
type BaseProcessor struct {
	*Base
	buses  *bus.Configuration
	logger *debug.Logger
	setup  Setup
	ready  bool
	active bool

	onSetup     func(s Setup) error
	onSetActive func(active bool) error
}

// NewBaseProcessor creates a base processor with the given bus
// configuration, stereo when nil.
func NewBaseProcessor(info Info, buses *bus.Configuration, logger *debug.Logger) *BaseProcessor {
	if buses == nil {
		buses = bus.NewStereoConfiguration()
	}
	if logger == nil {
		logger = debug.Default()
	}
	return &BaseProcessor{
		Base:   NewBase(info),
		buses:  buses,
		logger: logger,
	}
}

// Setup validates and stores the stream configuration
func (b *BaseProcessor) Setup(s Setup) error {
	if err := s.SampleSize.Validate(); err != nil {
		b.logger.Warn("setup rejected: %v", err)
		return err
	}
	if s.SampleRate <= 0 {
		err := fmt.Errorf("plugin: invalid sample rate %v", s.SampleRate)
		b.logger.Warn("setup rejected: %v", err)
		return err
	}

	if b.onSetup != nil {
		if err := b.onSetup(s); err != nil {
			return err
		}
	}
	b.setup = s
	b.ready = true
	b.logger.Info("setup: %.0f Hz, %s, max block %d", s.SampleRate, s.SampleSize, s.MaxBlockSize)
	return nil
}

// SetBusArrangements negotiates speaker arrangements with the host
func (b *BaseProcessor) SetBusArrangements(inputs, outputs []bus.Arrangement) error {
	if err := b.buses.SetArrangements(inputs, outputs); err != nil {
		b.logger.Warn("arrangement rejected: %v", err)
		return err
	}
	return nil
}

// SetActive starts or stops the stream
func (b *BaseProcessor) SetActive(active bool) error {
	if active && !b.ready {
		return ErrNotSetUp
	}
	if b.onSetActive != nil {
		if err := b.onSetActive(active); err != nil {
			return err
		}
	}
	b.active = active
	b.logger.Debug("active=%t", active)
	return nil
}

// IsActive reports whether the stream is running
func (b *BaseProcessor) IsActive() bool {
	return b.active
}

// Buses returns the bus configuration
func (b *BaseProcessor) Buses() *bus.Configuration {
	return b.buses
}

// Logger returns the lifecycle logger
func (b *BaseProcessor) Logger() *debug.Logger {
	return b.logger
}

// SampleRate returns the negotiated sample rate
func (b *BaseProcessor) SampleRate() float64 {
	return b.setup.SampleRate
}

// SampleSize returns the negotiated sample size
func (b *BaseProcessor) SampleSize() process.SampleSize {
	return b.setup.SampleSize
}

// LatencySamples is zero, every stage is sample-synchronous.
func (b *BaseProcessor) LatencySamples() int32 {
	return 0
}

// TailSamples is zero
func (b *BaseProcessor) TailSamples() int32 {
	return 0
}

// OnSetup sets a callback run after validation and before the setup is stored
func (b *BaseProcessor) OnSetup(fn func(s Setup) error) {
	b.onSetup = fn
}

// OnSetActive sets a callback for activation/deactivation
func (b *BaseProcessor) OnSetActive(fn func(active bool) error) {
	b.onSetActive = fn
}
