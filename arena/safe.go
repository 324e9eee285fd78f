package arena

import (
	"sync"
	"unsafe"
)

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// It lets vectors owned by different goroutines grow out of one region; each
// vector itself still needs a single owner.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewSafeArena(chunkSize int, opts ...Option) *SafeArena {
	return &SafeArena{a: NewArena(chunkSize, opts...)}
}

// AllocBytes thread-safely allocates n bytes and returns a slice pointing to them.
// Returns nil if n <= 0.
func (s *SafeArena) AllocBytes(n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// TryAllocAligned thread-safely bumps size bytes aligned to align.
func (s *SafeArena) TryAllocAligned(size, align uintptr) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.TryAllocAligned(size, align)
}

// TryGrowInPlace thread-safely extends the most recent allocation.
func (s *SafeArena) TryGrowInPlace(ptr unsafe.Pointer, oldSize, newSize uintptr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.TryGrowInPlace(ptr, oldSize, newSize)
}

// TryShrinkInPlace thread-safely returns the tail of the most recent allocation.
func (s *SafeArena) TryShrinkInPlace(ptr unsafe.Pointer, oldSize, newSize uintptr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.TryShrinkInPlace(ptr, oldSize, newSize)
}

// TryAccountHeap thread-safely charges a garbage-collected allocation.
func (s *SafeArena) TryAccountHeap(size uintptr) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.TryAccountHeap(size)
}

// EnsureCapacity thread-safely ensures the current chunk has at least n free bytes.
func (s *SafeArena) EnsureCapacity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.EnsureCapacity(n)
}

// Reset thread-safely resets allocation offsets to zero for arena reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely drops all chunks and makes the arena unusable.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}
