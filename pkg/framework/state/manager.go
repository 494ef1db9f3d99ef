package state

import (
	"fmt"
	"io"

	"github.com/justyntemme/lunchbox/pkg/framework/param"
)

// Manager handles processor state saving and loading
type Manager struct {
	layout   Layout
	registry *param.Registry
}

// NewManager creates a state manager. Every field ID must exist in registry.
func NewManager(layout Layout, registry *param.Registry) (*Manager, error) {
	for _, f := range layout {
		if registry.Get(f.ID) == nil {
			return nil, fmt.Errorf("state: field %s: %w", f.Name, param.ErrUnknownID)
		}
	}
	return &Manager{layout: layout, registry: registry}, nil
}

// Layout returns the persisted field order
func (m *Manager) Layout() Layout {
	return m.layout
}

// Values returns the current value of every field in layout order
func (m *Manager) Values() []float64 {
	values := make([]float64, len(m.layout))
	for i, f := range m.layout {
		values[i] = m.registry.Get(f.ID).GetValue()
	}
	return values
}

// Save writes the current parameter values
func (m *Manager) Save(w io.Writer) error {
	return m.layout.Encode(w, m.Values())
}

// Load reads a full state and only then applies it, so a failed load leaves
// every parameter untouched.
func (m *Manager) Load(r io.Reader) error {
	values, err := m.layout.Decode(r)
	if err != nil {
		return err
	}
	for i, f := range m.layout {
		m.registry.Get(f.ID).SetValue(values[i])
	}
	return nil
}
