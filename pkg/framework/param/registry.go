package param

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Registry errors
var (
	ErrDuplicateID = errors.New("param: duplicate parameter id")
	ErrUnknownID   = errors.New("param: unknown parameter id")
	ErrUnknownName = errors.New("param: unknown parameter name")
)

// Registry manages processor parameters
type Registry struct {
	params map[uint32]*Parameter
	order  []uint32 // registration order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		order:  make([]uint32, 0),
	}
}

// Add registers parameters. A repeated ID is rejected and nothing after it
// is added.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			return fmt.Errorf("%w: %d (%s)", ErrDuplicateID, p.ID, p.Name)
		}
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// Lookup finds a parameter by its name or short name, ignoring case
func (r *Registry) Lookup(name string) (*Parameter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		p := r.params[id]
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.ShortName, name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// Set stores a normalized value for id
func (r *Registry) Set(id uint32, value float64) error {
	p := r.Get(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	p.SetValue(value)
	return nil
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}
	return r.params[r.order[index]]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}

// ResetAll restores every parameter to its default
func (r *Registry) ResetAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.params {
		p.Reset()
	}
}

// Table is a dense, read-only ID index for the audio thread
type Table struct {
	params []*Parameter
}

// Table snapshots the registry into a slice indexed by ID. IDs should be
// small and contiguous.
func (r *Registry) Table() *Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := uint32(0)
	for id := range r.params {
		size = max(size, id+1)
	}
	t := &Table{params: make([]*Parameter, size)}
	for id, p := range r.params {
		t.params[id] = p
	}
	return t
}

// Get returns the parameter for id or nil
func (t *Table) Get(id uint32) *Parameter {
	if int(id) >= len(t.params) {
		return nil
	}
	return t.params[id]
}

// Len returns the table size
func (t *Table) Len() int {
	return len(t.params)
}
