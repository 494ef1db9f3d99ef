package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangesLastPointWins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(Knob(1, "A", 0).Build(), Knob(2, "B", 0).Build()))

	c := NewChanges(8)
	require.True(t, c.Add(1, 0, 0.1))
	require.True(t, c.Add(2, 10, 0.9))
	require.True(t, c.Add(1, 64, 0.7))
	require.True(t, c.Add(1, 32, 0.3))
	require.True(t, c.Add(2, 10, 0.4))

	v, ok := c.Last(1)
	require.True(t, ok)
	assert.Equal(t, 0.7, v)

	v, ok = c.Last(2)
	require.True(t, ok)
	assert.Equal(t, 0.4, v)

	_, ok = c.Last(3)
	assert.False(t, ok)

	c.Add(99, 0, 1)
	c.ApplyTo(r)
	assert.Equal(t, 0.7, r.Get(1).GetValue())
	assert.Equal(t, 0.4, r.Get(2).GetValue())
	assert.Zero(t, c.Len())
}

func TestChangesCapacity(t *testing.T) {
	c := NewChanges(2)
	assert.True(t, c.Add(1, 0, 0))
	assert.True(t, c.Add(1, 1, 0))
	assert.False(t, c.Add(1, 2, 0))
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.True(t, c.Add(1, 0, 0))
}

func TestChangesApplyDoesNotAllocate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(Knob(0, "A", 0).Build(), Knob(1, "B", 0).Build()))
	table := r.Table()
	c := NewChanges(16)

	allocs := testing.AllocsPerRun(100, func() {
		c.Add(0, 0, 0.5)
		c.Add(1, 5, 0.25)
		c.Add(0, 9, 0.75)
		c.ApplyTo(table)
	})
	assert.Zero(t, allocs)
	assert.Equal(t, 0.75, table.Get(0).GetValue())
}
