package debug

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerRecord(t *testing.T) {
	p := NewProfiler(4)
	for _, d := range []time.Duration{4, 1, 3, 2, 10} {
		p.Record("stage", d*time.Millisecond)
	}

	m, ok := p.Measurement("stage")
	require.True(t, ok)
	assert.Equal(t, uint64(5), m.Count)
	assert.Equal(t, 20*time.Millisecond, m.Total)
	assert.Equal(t, time.Millisecond, m.Min)
	assert.Equal(t, 10*time.Millisecond, m.Max)
	assert.Equal(t, 10*time.Millisecond, m.Last)
	assert.Equal(t, 4*time.Millisecond, m.Average())

	// The ring keeps 10, 1, 3, 2.
	assert.Equal(t, time.Millisecond, m.Percentile(0))
	assert.Equal(t, 10*time.Millisecond, m.Percentile(100))

	_, ok = p.Measurement("missing")
	assert.False(t, ok)

	assert.Contains(t, p.Report(), "stage: count=5")
	p.Reset()
	assert.Equal(t, "No measurements recorded", p.Report())
}

func TestProfilerDisabled(t *testing.T) {
	p := NewProfiler(8)
	p.SetEnabled(false)
	p.Time("noop", func() {})
	p.Record("noop", time.Second)

	_, ok := p.Measurement("noop")
	assert.False(t, ok)
}

func TestBlockProfilerLoad(t *testing.T) {
	b := NewBlockProfiler(48000)
	assert.Zero(t, b.Load())

	b.Block(480, func() {})
	b.Record(BlockSection, 5*time.Millisecond)

	load := b.Load()
	assert.Greater(t, load, 0.0)
	// 480 frames are 10 ms of audio and the total is at least 5 ms.
	assert.GreaterOrEqual(t, load, 0.5)
}
