package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource_Deterministic(t *testing.T) {
	a, b := NewSource(42), NewSource(42)
	for range 100 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}

	c := NewSource(43)
	same := 0
	a = NewSource(42)
	for range 100 {
		if a.IntN(1_000_000) == c.IntN(1_000_000) {
			same++
		}
	}
	assert.Less(t, same, 5, "different seeds should diverge")
}

func TestNewSeed(t *testing.T) {
	seen := make(map[int64]bool)
	for range 50 {
		s, err := NewSeed()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s, int64(0))
		seen[s] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, DeriveSeed(7, 3), DeriveSeed(7, 3))
	assert.NotEqual(t, DeriveSeed(7, 3), DeriveSeed(7, 4))
	assert.NotEqual(t, DeriveSeed(7, 3), DeriveSeed(8, 3))

	seen := make(map[int64]bool)
	for n := range 1000 {
		s := DeriveSeed(1, n)
		assert.GreaterOrEqual(t, s, int64(0))
		seen[s] = true
	}
	assert.Len(t, seen, 1000)
}
