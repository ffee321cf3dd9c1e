package mkaudio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSaturatorPivotIsZero(t *testing.T) {
	s := NewSaturator(1, 1, 1, 1, 0.25, false)
	assert.InDelta(t, 0.0, s.Process(0.25), 1e-12)
}

func TestSaturatorUnitOffsetsHitBeta(t *testing.T) {
	s := NewSaturator(3, 7, 0.8, 0.6, 0.1, false)
	assert.InDelta(t, 0.8, s.Process(0.1+1), 1e-9)
	assert.InDelta(t, -0.6, s.Process(0.1-1), 1e-9)
}

func TestSaturatorFlipNegatesOutput(t *testing.T) {
	plain := NewSaturator(2, 2, 0.5, 0.5, 0, false)
	flipped := NewSaturator(2, 2, 0.5, 0.5, 0, true)
	assert.InDelta(t, -plain.Process(0.3), flipped.Process(0.3), 1e-12)
	assert.InDelta(t, -plain.Process(-0.6), flipped.Process(-0.6), 1e-12)
}

func TestSaturatorAlphaIsClampedAboveZero(t *testing.T) {
	s := NewSaturator(0, -5, 1, 1, 0, false)
	assert.GreaterOrEqual(t, s.AlphaPos, minShapeAlpha)
	assert.GreaterOrEqual(t, s.AlphaNeg, minShapeAlpha)
	assert.False(t, math.IsNaN(s.Process(0.5)))
	assert.False(t, math.IsNaN(s.Process(-0.5)))
}

func TestSaturatorAsymmetricShapesDiffer(t *testing.T) {
	s := NewSaturator(10, 1, 1, 1, 0, false)
	pos := s.Process(0.5)
	neg := s.Process(-0.5)
	assert.NotEqual(t, pos, -neg)
}

func TestSaturatorPivotPropertyHoldsAcrossParameters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		alphaPos := rapid.Float64Range(0, 50).Draw(t, "alphaPos")
		alphaNeg := rapid.Float64Range(0, 50).Draw(t, "alphaNeg")
		betaPos := rapid.Float64Range(0, 5).Draw(t, "betaPos")
		betaNeg := rapid.Float64Range(0, 5).Draw(t, "betaNeg")
		delta := rapid.Float64Range(-1, 1).Draw(t, "delta")
		s := NewSaturator(alphaPos, alphaNeg, betaPos, betaNeg, delta, false)
		assert.InDelta(t, 0.0, s.Process(delta), 1e-9)
		assert.InDelta(t, betaPos, s.Process(delta+1), 1e-9)
		assert.InDelta(t, -betaNeg, s.Process(delta-1), 1e-9)
	})
}
