package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClampsToRange(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(-100, 0, 10))
	assert.Equal(t, 0.0, Normalize(0, 0, 10))
	assert.Equal(t, 100.0, Normalize(10, 0, 10))
	assert.Equal(t, 100.0, Normalize(999, 0, 10))
}

func TestNormalizeLinearInteriorMapping(t *testing.T) {
	assert.InDelta(t, 50.0, Normalize(5, 0, 10), 1e-9)
	assert.InDelta(t, 25.0, Normalize(2.5, 0, 10), 1e-9)
	assert.InDelta(t, 60.0, Normalize(1, -5, 5), 1e-9)
}

func TestNormalizeDegenerateRange(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(5, 10, 10))
	assert.Equal(t, 0.0, Normalize(5, 10, 0))
}

func TestRoundScoreHalfUp(t *testing.T) {
	assert.Equal(t, 54, roundScore(53.985))
	assert.Equal(t, 50, roundScore(50.238))
	assert.Equal(t, 51, roundScore(50.5))
	assert.Equal(t, 0, roundScore(0))
	assert.Equal(t, 100, roundScore(100))
}
