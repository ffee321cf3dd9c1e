package mkaudio

import "sync"

// PushBuffer is a fixed-length FIFO window used by FIR kernels. Unlike
// CircularBuffer it does not wrap; once full, the oldest sample is dropped
// and the rest shift down so the newest sample always lands at the last
// index, matching the tap layout FIR inner loops expect.
type PushBuffer[T Sample] struct {
	mu   sync.RWMutex
	data []T
	fill int
}

// NewPushBuffer creates a zero-filled push buffer of length n. n need not
// be a power of two — kernel lengths are arbitrary.
func NewPushBuffer[T Sample](n int) *PushBuffer[T] {
	return &PushBuffer[T]{data: make([]T, n)}
}

// Push inserts a new sample. While the buffer isn't yet full, it is
// appended at the fill index; once full, the window shifts left and the
// new sample lands at index N-1.
func (p *PushBuffer[T]) Push(x T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.data)
	if n == 0 {
		return
	}
	if p.fill < n {
		p.data[p.fill] = x
		p.fill++
		return
	}
	copy(p.data, p.data[1:])
	p.data[n-1] = x
}

// fillToCapacity marks the buffer as full without touching its contents,
// used by Convolution so the window is always considered full even before
// the first real sample arrives.
func (p *PushBuffer[T]) fillToCapacity() {
	p.mu.Lock()
	p.fill = len(p.data)
	p.mu.Unlock()
}

// PushReadView and PushWriteView mirror SampleBuffer's lock views.
type PushReadView[T Sample] struct{ buf *PushBuffer[T] }
type PushWriteView[T Sample] struct{ buf *PushBuffer[T] }

func (v PushReadView[T]) At(i int) T    { return v.buf.data[i] }
func (v PushReadView[T]) Len() int      { return len(v.buf.data) }
func (v PushReadView[T]) Unlock()       { v.buf.mu.RUnlock() }
func (v PushWriteView[T]) At(i int) T   { return v.buf.data[i] }
func (v PushWriteView[T]) Set(i int, x T) { v.buf.data[i] = x }
func (v PushWriteView[T]) Len() int     { return len(v.buf.data) }
func (v PushWriteView[T]) Unlock()      { v.buf.mu.Unlock() }

// ReadLock acquires a shared lock over the buffer's current contents.
func (p *PushBuffer[T]) ReadLock() PushReadView[T] {
	p.mu.RLock()
	return PushReadView[T]{buf: p}
}

// WriteLock acquires an exclusive lock over the buffer.
func (p *PushBuffer[T]) WriteLock() PushWriteView[T] {
	p.mu.Lock()
	return PushWriteView[T]{buf: p}
}

// Index returns the sample at position i under its own read lock. Prefer
// ReadLock for multiple accesses to avoid repeated lock overhead.
func (p *PushBuffer[T]) Index(i int) T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data[i]
}

// Length returns the buffer's fixed capacity N.
func (p *PushBuffer[T]) Length() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.data)
}

// CurrentFillIndex returns how many positions have been written (0..N).
func (p *PushBuffer[T]) CurrentFillIndex() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fill
}
