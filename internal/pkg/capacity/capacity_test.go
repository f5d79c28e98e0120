package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpotsRemaining(t *testing.T) {
	assert.Equal(t, 10, SpotsRemaining(10, 0))
	assert.Equal(t, 3, SpotsRemaining(10, 7))
	assert.Equal(t, 0, SpotsRemaining(10, 10))

	// Over-subscription clamps to zero instead of going negative
	assert.Equal(t, 0, SpotsRemaining(10, 15))
}

func TestSpotsRemaining_Unlimited(t *testing.T) {
	assert.Equal(t, 0, SpotsRemaining(Unlimited, 50))
	assert.Equal(t, 0, SpotsRemaining(-1, 50))
}

func TestFillPercent(t *testing.T) {
	assert.Equal(t, 0, FillPercent(10, 0))
	assert.Equal(t, 50, FillPercent(10, 5))
	assert.Equal(t, 100, FillPercent(10, 10))

	// Clamped to 100 even when the counter drifted above capacity
	assert.Equal(t, 100, FillPercent(10, 12))

	// Negative counts never produce a negative percentage
	assert.Equal(t, 0, FillPercent(10, -3))
}

func TestFillPercent_Unlimited(t *testing.T) {
	assert.Equal(t, 0, FillPercent(Unlimited, 500))
}

func TestIsFull(t *testing.T) {
	assert.False(t, IsFull(10, 9))
	assert.True(t, IsFull(10, 10))
	assert.True(t, IsFull(10, 11))
}

func TestIsFull_Unlimited(t *testing.T) {
	assert.False(t, IsFull(Unlimited, 1000))
	assert.False(t, IsFull(-5, 1000))
}
