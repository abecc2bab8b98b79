package points

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pairquest/pkg/errors"
	"github.com/matzehuels/pairquest/pkg/geom"
)

func TestGenerateDefaults(t *testing.T) {
	pts, err := Generate(DefaultOptions())
	require.NoError(t, err)
	require.Len(t, pts, DefaultCount)
	for _, p := range pts {
		assert.True(t, DefaultBounds.Contains(p), "%s outside frame", p)
	}
}

func TestGenerateZeroCount(t *testing.T) {
	pts, err := Generate(Options{Count: 0, Seed: 1})
	require.NoError(t, err)
	assert.Empty(t, pts)

	pts, err = Generate(Options{})
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestGenerateZeroSeedIsItsOwnSequence(t *testing.T) {
	zero, err := Generate(Options{Count: 20, Seed: 0})
	require.NoError(t, err)
	def, err := Generate(Options{Count: 20, Seed: DefaultSeed})
	require.NoError(t, err)
	again, err := Generate(Options{Count: 20, Seed: 0})
	require.NoError(t, err)

	assert.NotEqual(t, def, zero)
	assert.Equal(t, zero, again)
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(Options{Count: 100, Seed: 7})
	require.NoError(t, err)
	b, err := Generate(Options{Count: 100, Seed: 7})
	require.NoError(t, err)
	c, err := Generate(Options{Count: 100, Seed: 8})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerateInteger(t *testing.T) {
	bounds := geom.Rect{MinX: 0.5, MinY: 0, MaxX: 3.5, MaxY: 2}
	pts, err := Generate(Options{Count: 500, Seed: 1, Bounds: bounds, Integer: true})
	require.NoError(t, err)
	for _, p := range pts {
		assert.Equal(t, math.Trunc(p.X), p.X)
		assert.Equal(t, math.Trunc(p.Y), p.Y)
		assert.True(t, p.X >= 1 && p.X <= 3, "x=%v", p.X)
		assert.True(t, p.Y >= 0 && p.Y <= 2, "y=%v", p.Y)
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative count", Options{Count: -1}},
		{"too many", Options{Count: MaxCount + 1}},
		{"inverted bounds", Options{Count: 1, Bounds: geom.Rect{MinX: 10, MaxX: 0, MaxY: 5}}},
		{"no integer x", Options{Count: 1, Integer: true, Bounds: geom.Rect{MinX: 0.2, MaxX: 0.8, MaxY: 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
		})
	}
}

func TestFrame(t *testing.T) {
	assert.Equal(t, geom.Rect{MinX: 20, MinY: 20, MaxX: 780, MaxY: 580}, DefaultBounds)
	assert.Equal(t, geom.Rect{MinX: 5, MinY: 5, MaxX: 95, MaxY: 45}, Frame(100, 50, 5))
}
