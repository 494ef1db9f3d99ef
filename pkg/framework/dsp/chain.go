// Package dsp provides the stereo stage chain the processor runs blocks through.
package dsp

import (
	"errors"
	"fmt"

	dspcore "github.com/justyntemme/lunchbox/pkg/dsp"
)

// Chain build errors
var (
	ErrNilStage       = errors.New("stage cannot be nil")
	ErrDuplicateStage = errors.New("duplicate stage name")
	ErrEmptyChain     = errors.New("stereo chain is empty")
	ErrUnknownStage   = errors.New("unknown stage")
)

// Stage is a per-sample stereo processor. Stages compute in float64; block
// helpers convert to and from the host sample type around every stage.
type Stage interface {
	// Tick processes one stereo frame
	Tick(left, right float64) (float64, float64)

	// Reset clears the stage's filter and envelope state
	Reset()
}

// StageFunc allows using a stateless function as a Stage.
type StageFunc func(left, right float64) (float64, float64)

func (f StageFunc) Tick(left, right float64) (float64, float64) {
	return f(left, right)
}

func (f StageFunc) Reset() {}

// ProcessStereo runs one stage over a block in place. Each output is stored
// back in T precision before the next stage sees it.
func ProcessStereo[T dspcore.Sample](s Stage, left, right []T) {
	n := min(len(left), len(right))
	for i := 0; i < n; i++ {
		l, r := s.Tick(float64(left[i]), float64(right[i]))
		left[i] = T(l)
		right[i] = T(r)
	}
}

type namedStage struct {
	name   string
	stage  Stage
	bypass bool
}

// StereoChain runs named stages in order over stereo blocks.
type StereoChain struct {
	stages []namedStage
	name   string
	bypass bool
}

// NewStereoChain creates a new stereo chain.
func NewStereoChain(name string) *StereoChain {
	return &StereoChain{
		name:   name,
		stages: make([]namedStage, 0, 8),
	}
}

// Name returns the chain name
func (c *StereoChain) Name() string {
	return c.name
}

// Add appends a named stage to the chain.
func (c *StereoChain) Add(name string, stage Stage) *StereoChain {
	c.stages = append(c.stages, namedStage{name: name, stage: stage})
	return c
}

// Process runs every enabled stage over the block in place.
func Process[T dspcore.Sample](c *StereoChain, left, right []T) {
	if c.bypass {
		return
	}
	for i := range c.stages {
		if c.stages[i].bypass {
			continue
		}
		ProcessStereo(c.stages[i].stage, left, right)
	}
}

// Process32 runs the chain over single precision buffers.
func (c *StereoChain) Process32(left, right []float32) {
	Process(c, left, right)
}

// Process64 runs the chain over double precision buffers.
func (c *StereoChain) Process64(left, right []float64) {
	Process(c, left, right)
}

// Reset resets all stages in the chain.
func (c *StereoChain) Reset() {
	for i := range c.stages {
		c.stages[i].stage.Reset()
	}
}

// SetBypass sets the bypass state of the whole chain.
func (c *StereoChain) SetBypass(bypass bool) {
	c.bypass = bypass
}

// IsBypassed reports whether the whole chain is bypassed
func (c *StereoChain) IsBypassed() bool {
	return c.bypass
}

// SetStageBypass enables or disables a single stage by name.
func (c *StereoChain) SetStageBypass(name string, bypass bool) error {
	for i := range c.stages {
		if c.stages[i].name == name {
			c.stages[i].bypass = bypass
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

// Stage looks up a stage by name
func (c *StereoChain) Stage(name string) (Stage, bool) {
	for _, s := range c.stages {
		if s.name == name {
			return s.stage, true
		}
	}
	return nil, false
}

// Names returns the stage names in processing order
func (c *StereoChain) Names() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}
	return names
}

// Count returns the number of stages in the chain.
func (c *StereoChain) Count() int {
	return len(c.stages)
}

// StereoBuilder provides a fluent API for building stereo chains.
type StereoBuilder struct {
	chain  *StereoChain
	errors []error
}

// NewStereoBuilder creates a new stereo chain builder.
func NewStereoBuilder(name string) *StereoBuilder {
	return &StereoBuilder{
		chain: NewStereoChain(name),
	}
}

// WithStage adds a named stage to the chain.
func (b *StereoBuilder) WithStage(name string, stage Stage) *StereoBuilder {
	if stage == nil {
		b.errors = append(b.errors, fmt.Errorf("%w: %q", ErrNilStage, name))
		return b
	}
	if _, exists := b.chain.Stage(name); exists {
		b.errors = append(b.errors, fmt.Errorf("%w: %q", ErrDuplicateStage, name))
		return b
	}
	b.chain.Add(name, stage)
	return b
}

// WithFunc adds a stateless processing function to the chain.
func (b *StereoBuilder) WithFunc(name string, tick func(left, right float64) (float64, float64)) *StereoBuilder {
	if tick == nil {
		return b.WithStage(name, nil)
	}
	return b.WithStage(name, StageFunc(tick))
}

// Build builds the stereo chain and returns any errors.
func (b *StereoBuilder) Build() (*StereoChain, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("stereo chain %q: %w", b.chain.name, errors.Join(b.errors...))
	}
	if b.chain.Count() == 0 {
		return nil, ErrEmptyChain
	}
	return b.chain, nil
}
