package mkaudio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestConvolutionIdentityKernelPassesThrough(t *testing.T) {
	c := NewConvolution([]float64{1})
	for _, x := range []float64{0.1, -0.5, 0.9} {
		assert.Equal(t, x, c.Process(x))
	}
}

func TestConvolutionMovingAverage(t *testing.T) {
	c := NewConvolution([]float64{0.5, 0.5})
	c.Process(1)
	got := c.Process(1)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestConvolutionDenormalFlush(t *testing.T) {
	c := NewConvolution([]float64{1e-20})
	got := c.Process(1)
	assert.Equal(t, float64(0), got)
}

func TestConvolutionResetClearsWindow(t *testing.T) {
	c := NewConvolution([]float64{1, 1})
	c.Process(5)
	c.Reset()
	got := c.Process(0)
	assert.Equal(t, float64(0), got)
}

func TestConvolutionZeroKernelAlwaysZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 16).Draw(t, "n")
		kernel := make([]float64, n)
		c := NewConvolution(kernel)
		x := rapid.Float64Range(-1, 1).Draw(t, "x")
		assert.Equal(t, float64(0), c.Process(x))
	})
}
