package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGeometry(t *testing.T) {
	g := ComputeGeometry(19.2, 42, DefaultAppearance())

	assert.Equal(t, 0.0, g.PrimaryBoxStart)
	assert.Equal(t, 20.0, g.LabelTextX)
	assert.InDelta(t, 39.2, g.PrimaryBoxEnd, 1e-9)
	assert.InDelta(t, 42.2, g.VersionTextX, 1e-9)
	assert.InDelta(t, 87.2, g.SecondaryBoxEnd, 1e-9)
	assert.Equal(t, 163.0, g.Width)
	assert.Equal(t, 20.0, g.Height)
}

func TestComputeGeometry_Height(t *testing.T) {
	tests := []struct {
		name       string
		appearance *Appearance
		expected   float64
	}{
		{name: "nil appearance uses default", appearance: nil, expected: 20},
		{name: "zero height uses default", appearance: &Appearance{}, expected: 20},
		{name: "custom height", appearance: &Appearance{Height: 28}, expected: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeGeometry(10, 10, tt.appearance).Height)
		})
	}
}

func TestComputeGeometry_Monotonic(t *testing.T) {
	a := DefaultAppearance()
	prev := ComputeGeometry(0, 30, a)

	for _, w := range []float64{0.5, 1, 10, 57.6, 120, 500} {
		g := ComputeGeometry(w, 30, a)

		assert.Greater(t, g.PrimaryBoxEnd, prev.PrimaryBoxEnd)
		assert.Greater(t, g.VersionTextX, prev.VersionTextX)
		assert.Greater(t, g.SecondaryBoxEnd, prev.SecondaryBoxEnd)
		assert.Equal(t, prev.PrimaryBoxStart, g.PrimaryBoxStart)
		assert.Equal(t, prev.LabelTextX, g.LabelTextX)
		assert.Equal(t, Width, g.Width)

		prev = g
	}
}
