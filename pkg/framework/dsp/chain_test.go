package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gainStage multiplies each channel and counts resets.
type gainStage struct {
	left, right float64
	resets      int
}

func (g *gainStage) Tick(l, r float64) (float64, float64) {
	return l * g.left, r * g.right
}

func (g *gainStage) Reset() {
	g.resets++
}

func TestStereoChainOrder(t *testing.T) {
	chain := NewStereoChain("test")
	chain.Add("double", &gainStage{left: 2, right: 2})
	chain.Add("offset", StageFunc(func(l, r float64) (float64, float64) {
		return l + 1, r - 1
	}))

	left := []float64{1, 2}
	right := []float64{1, 2}
	chain.Process64(left, right)

	// (x*2)+1 and (x*2)-1: order matters
	assert.Equal(t, []float64{3, 5}, left)
	assert.Equal(t, []float64{1, 3}, right)
	assert.Equal(t, []string{"double", "offset"}, chain.Names())
}

func TestStereoChainBypass(t *testing.T) {
	chain := NewStereoChain("test")
	chain.Add("double", &gainStage{left: 2, right: 2})

	left := []float32{0.25}
	right := []float32{0.5}

	chain.SetBypass(true)
	assert.True(t, chain.IsBypassed())
	chain.Process32(left, right)
	assert.Equal(t, []float32{0.25}, left)

	chain.SetBypass(false)
	require.NoError(t, chain.SetStageBypass("double", true))
	chain.Process32(left, right)
	assert.Equal(t, []float32{0.25}, left)

	require.NoError(t, chain.SetStageBypass("double", false))
	chain.Process32(left, right)
	assert.Equal(t, []float32{0.5}, left)
	assert.Equal(t, []float32{1}, right)

	assert.ErrorIs(t, chain.SetStageBypass("missing", true), ErrUnknownStage)
}

func TestProcessStereoTruncatesPerStage(t *testing.T) {
	third := StageFunc(func(l, r float64) (float64, float64) { return l / 3, r / 3 })
	triple := StageFunc(func(l, r float64) (float64, float64) { return l * 3, r * 3 })

	left := []float32{1}
	right := []float32{1}
	ProcessStereo(third, left, right)
	one := 1.0
	stored := float32(one / 3)
	assert.Equal(t, stored, left[0])
	ProcessStereo(triple, left, right)

	want := float32(float64(stored) * 3)
	assert.Equal(t, want, left[0])
}

func TestProcessStereoUnevenLengths(t *testing.T) {
	stage := &gainStage{left: 2, right: 2}
	left := []float64{1, 1, 1}
	right := []float64{1}
	ProcessStereo(stage, left, right)
	assert.Equal(t, []float64{2, 1, 1}, left)
	assert.Equal(t, []float64{2}, right)
}

func TestStereoChainReset(t *testing.T) {
	a := &gainStage{left: 1, right: 1}
	b := &gainStage{left: 1, right: 1}
	chain := NewStereoChain("test").Add("a", a).Add("b", b)
	chain.Reset()
	assert.Equal(t, 1, a.resets)
	assert.Equal(t, 1, b.resets)

	s, ok := chain.Stage("b")
	require.True(t, ok)
	assert.Same(t, b, s)
}

func TestStereoBuilder(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		chain, err := NewStereoBuilder("ok").
			WithStage("a", &gainStage{left: 1, right: 1}).
			WithFunc("b", func(l, r float64) (float64, float64) { return r, l }).
			Build()
		require.NoError(t, err)
		assert.Equal(t, 2, chain.Count())
		assert.Equal(t, "ok", chain.Name())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := NewStereoBuilder("empty").Build()
		assert.ErrorIs(t, err, ErrEmptyChain)
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := NewStereoBuilder("nil").WithStage("a", nil).Build()
		assert.ErrorIs(t, err, ErrNilStage)

		_, err = NewStereoBuilder("nilfunc").WithFunc("a", nil).Build()
		assert.ErrorIs(t, err, ErrNilStage)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := NewStereoBuilder("dup").
			WithStage("a", &gainStage{}).
			WithStage("a", &gainStage{}).
			Build()
		assert.ErrorIs(t, err, ErrDuplicateStage)
	})
}
