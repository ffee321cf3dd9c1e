package mkaudio

import "sync"

// Sample is the numeric element type every buffer and DSP kernel in this
// library operates on. Only float32 and float64 make sense for normalized
// audio samples, mirroring the Rust source's "Generic T must be either f32
// or f64" convention.
type Sample interface {
	~float32 | ~float64
}

// bufferCell is the shared, reference-counted, lockable storage behind a
// SampleBuffer. Clones of a SampleBuffer point at the same cell, so the
// lock and the backing array really are shared, matching spec.md's
// "clones share the same storage and lock" contract.
type bufferCell[T Sample] struct {
	mu   sync.RWMutex
	data []T
	refs int32
}

// SampleBuffer is owning, shareable, lockable contiguous sample storage.
// It is the handle; the actual array and lock live in the cell it points
// at, so cloning a SampleBuffer never copies samples.
type SampleBuffer[T Sample] struct {
	cell *bufferCell[T]
}

// NewSampleBuffer creates a buffer of the given length, zero-filled.
func NewSampleBuffer[T Sample](length int) *SampleBuffer[T] {
	return &SampleBuffer[T]{cell: &bufferCell[T]{data: make([]T, length), refs: 1}}
}

// SampleBufferFrom creates a buffer with data copied from src.
func SampleBufferFrom[T Sample](src []T) *SampleBuffer[T] {
	data := make([]T, len(src))
	copy(data, src)
	return &SampleBuffer[T]{cell: &bufferCell[T]{data: data, refs: 1}}
}

// SampleReadView is an immutable view acquired under the buffer's read
// lock. Call Unlock when done; views do not unlock themselves.
type SampleReadView[T Sample] struct {
	cell *bufferCell[T]
}

// SampleWriteView is an exclusive, mutable view acquired under the
// buffer's write lock.
type SampleWriteView[T Sample] struct {
	cell *bufferCell[T]
}

// At returns the sample at index i.
func (v SampleReadView[T]) At(i int) T { return v.cell.data[i] }

// Len returns the view's length, fixed as of lock acquisition.
func (v SampleReadView[T]) Len() int { return len(v.cell.data) }

// Unlock releases the read lock. Must be called exactly once per view.
func (v SampleReadView[T]) Unlock() { v.cell.mu.RUnlock() }

// At returns the sample at index i.
func (v SampleWriteView[T]) At(i int) T { return v.cell.data[i] }

// Set stores x at index i.
func (v SampleWriteView[T]) Set(i int, x T) { v.cell.data[i] = x }

// Len returns the view's length, fixed as of lock acquisition.
func (v SampleWriteView[T]) Len() int { return len(v.cell.data) }

// Unlock releases the write lock. Must be called exactly once per view.
func (v SampleWriteView[T]) Unlock() { v.cell.mu.Unlock() }

// ReadLock blocks until a read lock is available; multiple concurrent
// readers are allowed, excluded only by an active writer.
func (b *SampleBuffer[T]) ReadLock() SampleReadView[T] {
	b.cell.mu.RLock()
	return SampleReadView[T]{cell: b.cell}
}

// WriteLock blocks until the buffer is exclusively available.
func (b *SampleBuffer[T]) WriteLock() SampleWriteView[T] {
	b.cell.mu.Lock()
	return SampleWriteView[T]{cell: b.cell}
}

// TryReadLock attempts a read lock without blocking. ok is false if a
// writer currently holds the lock.
func (b *SampleBuffer[T]) TryReadLock() (view SampleReadView[T], ok bool) {
	if b.cell.mu.TryRLock() {
		return SampleReadView[T]{cell: b.cell}, true
	}
	return SampleReadView[T]{}, false
}

// TryWriteLock attempts a write lock without blocking.
func (b *SampleBuffer[T]) TryWriteLock() (view SampleWriteView[T], ok bool) {
	if b.cell.mu.TryLock() {
		return SampleWriteView[T]{cell: b.cell}, true
	}
	return SampleWriteView[T]{}, false
}

// Resize acquires exclusive access and replaces the storage with a new,
// zero-filled array of the given length. This is a documented lossy
// operation: existing content is not preserved.
func (b *SampleBuffer[T]) Resize(length int) {
	b.cell.mu.Lock()
	defer b.cell.mu.Unlock()
	b.cell.data = make([]T, length)
}

// Length returns the buffer's current length.
func (b *SampleBuffer[T]) Length() int {
	b.cell.mu.RLock()
	defer b.cell.mu.RUnlock()
	return len(b.cell.data)
}

// IsEmpty reports whether the buffer has zero length.
func (b *SampleBuffer[T]) IsEmpty() bool { return b.Length() == 0 }

// Clone returns a new handle sharing this buffer's storage and lock,
// incrementing the cell's reference count.
func (b *SampleBuffer[T]) Clone() *SampleBuffer[T] {
	b.cell.mu.Lock()
	b.cell.refs++
	b.cell.mu.Unlock()
	return &SampleBuffer[T]{cell: b.cell}
}

// Release drops this handle. Storage is freed (left for the garbage
// collector) when the last handle is released.
func (b *SampleBuffer[T]) Release() {
	b.cell.mu.Lock()
	b.cell.refs--
	if b.cell.refs <= 0 {
		b.cell.data = nil
	}
	b.cell.mu.Unlock()
}
