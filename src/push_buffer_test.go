package mkaudio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPushBufferFillsBeforeShifting(t *testing.T) {
	p := NewPushBuffer[float64](3)
	assert.Equal(t, 0, p.CurrentFillIndex())

	p.Push(1)
	p.Push(2)
	assert.Equal(t, 2, p.CurrentFillIndex())

	p.Push(3)
	assert.Equal(t, 3, p.CurrentFillIndex())

	r := p.ReadLock()
	assert.Equal(t, []float64{1, 2, 3}, []float64{r.At(0), r.At(1), r.At(2)})
	r.Unlock()

	p.Push(4)
	r = p.ReadLock()
	defer r.Unlock()
	assert.Equal(t, []float64{2, 3, 4}, []float64{r.At(0), r.At(1), r.At(2)})
}

func TestPushBufferFillToCapacityIsZeroFilled(t *testing.T) {
	p := NewPushBuffer[float64](4)
	p.fillToCapacity()
	assert.Equal(t, 4, p.CurrentFillIndex())
	for i := 0; i < 4; i++ {
		assert.Equal(t, float64(0), p.Index(i))
	}
}

func TestPushBufferNeverGrowsPastCapacity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 32).Draw(t, "n")
		pushes := rapid.IntRange(0, 64).Draw(t, "pushes")
		p := NewPushBuffer[float64](n)
		for i := 0; i < pushes; i++ {
			p.Push(float64(i))
		}
		assert.Equal(t, n, p.Length())
		assert.LessOrEqual(t, p.CurrentFillIndex(), n)
	})
}
