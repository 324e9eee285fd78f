package arena

// SizeInUse returns the total number of chunk bytes currently allocated in the arena.
// This includes internal fragmentation due to alignment.
func (a *Arena) SizeInUse() int {
	if a.chunks == nil {
		return 0
	}
	return a.inUse
}

// NumChunks returns the number of chunks currently allocated by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks in the arena.
func (a *Arena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns the ratio of bytes in use to total capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// HeapBytes returns the bytes of garbage-collected allocations charged to the
// arena since the last Reset().
func (a *Arena) HeapBytes() int {
	return a.heapBytes
}

// Allocations returns the number of successful allocation requests served,
// including heap-accounted ones. In-place growth is not counted.
func (a *Arena) Allocations() int {
	return a.allocations
}

// InPlaceGrows returns how many times an allocation was extended without moving.
func (a *Arena) InPlaceGrows() int {
	return a.inPlaceGrows
}

// Peak returns the high-water mark of SizeInUse()+HeapBytes(), kept across resets.
func (a *Arena) Peak() int {
	return a.peak
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:    a.SizeInUse(),
		HeapBytes:    a.HeapBytes(),
		Capacity:     a.Capacity(),
		NumChunks:    a.NumChunks(),
		ChunkSize:    a.ChunkSize(),
		Utilization:  a.Utilization(),
		Allocations:  a.Allocations(),
		InPlaceGrows: a.InPlaceGrows(),
		Peak:         a.Peak(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse    int     // Chunk bytes currently allocated
	HeapBytes    int     // Garbage-collected bytes charged to the arena
	Capacity     int     // Total chunk capacity in bytes
	NumChunks    int     // Number of chunks
	ChunkSize    int     // Default chunk size
	Utilization  float64 // Ratio of used to total capacity (0.0-1.0)
	Allocations  int     // Allocation requests served
	InPlaceGrows int     // Allocations extended without moving
	Peak         int     // High-water mark of bytes handed out
}

// Thread-safe metrics for SafeArena

// SizeInUse thread-safely returns the total number of bytes currently allocated.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// NumChunks thread-safely returns the number of chunks currently allocated.
func (s *SafeArena) NumChunks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.NumChunks()
}

// Capacity thread-safely returns the total capacity of all chunks.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Utilization thread-safely returns the ratio of bytes in use to total capacity.
func (s *SafeArena) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
