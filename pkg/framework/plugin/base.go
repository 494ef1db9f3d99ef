package plugin

import (
	"github.com/justyntemme/lunchbox/pkg/framework/param"
	"github.com/justyntemme/lunchbox/pkg/framework/state"
)

// Base ties metadata, parameters and persisted state together
type Base struct {
	Info   Info
	params *param.Registry
	state  *state.Manager
}

// NewBase creates a plugin base. Parameters must be registered before
// AttachState is called.
func NewBase(info Info) *Base {
	return &Base{
		Info:   info,
		params: param.NewRegistry(),
	}
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// AttachState binds the persisted layout to the registered parameters
func (b *Base) AttachState(layout state.Layout) error {
	m, err := state.NewManager(layout, b.params)
	if err != nil {
		return err
	}
	b.state = m
	return nil
}

// State returns the state manager, nil until AttachState succeeds
func (b *Base) State() *state.Manager {
	return b.state
}
