package distortion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurve(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"zero", 0, 0},
		{"unity", 1, 1},
		{"negative unity", -1, -1},
		{"half", 0.5, 0.75 - 0.0625 - 0.0625*(0.25-0.25+0.0625)},
		{"above unity", 1.5, 0.75},
		{"two", 2, 0},
		{"beyond", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Curve(tt.x), 1e-12)
		})
	}
}

func TestCurveOddSymmetry(t *testing.T) {
	for x := 0.01; x < 2; x += 0.01 {
		assert.InDelta(t, -Curve(x), Curve(-x), 1e-15)
	}
}

func TestInflatorDry(t *testing.T) {
	f := NewInflator(0)
	for _, x := range []float64{-1.7, -0.3, 0, 0.25, 0.9, 1.4} {
		l, r := f.Tick(x, -x)
		assert.Equal(t, x, l)
		assert.Equal(t, -x, r)
	}
}

func TestInflatorSafe(t *testing.T) {
	f := NewInflator(0.5)
	f.SetSafe(true)

	for x := -3.0; x <= 3; x += 0.05 {
		l, _ := f.Tick(x, 0)
		assert.LessOrEqual(t, l, 1.0)
		assert.GreaterOrEqual(t, l, -1.0)
	}

	// Without safe mode the dry share passes overs through
	f.SetSafe(false)
	l, _ := f.Tick(3, 0)
	assert.InDelta(t, 1.5, l, 1e-12)
}

func TestInflatorFullWet(t *testing.T) {
	f := NewInflator(1)
	l, r := f.Tick(0.5, -0.5)
	assert.Equal(t, Curve(0.5), l)
	assert.Equal(t, Curve(-0.5), r)
	assert.Greater(t, l, 0.5)
}
