// Package arena implements a chunked bump allocator (memory arena) for Go.
//
// # Overview
//
// An arena allocator hands out sequential byte ranges from large chunks and
// frees them all at once. It backs the vectors in package vec, which grow
// through the Allocator interface.
//
// # Basic Usage
//
//	a := arena.NewArena(0, arena.WithMaxSize(16<<20))
//	defer a.Release()
//
//	buf := a.AllocBytes(1024)
//	ptr := arena.Alloc[MyStruct](a)
//	nums := arena.AllocSlice[int](a, 100)
//
//	a.Reset() // O(chunks), keeps the chunks for reuse
//
// # Growth
//
// Only the most recent allocation of the current chunk can be grown in place
// (TryGrowInPlace); anything else has to be reallocated and copied. Chunks
// kept by Reset are reused before new ones are made.
//
// # Pointers
//
// Chunk memory is invisible to the garbage collector. Element types that hold
// pointers (strings, slices, maps, interfaces, ...) are therefore allocated
// on the Go heap by TryMakeSlice and only charged against the size limit.
// Zero-sized types never reach the arena at all.
//
// # Thread Safety
//
// Arena is not thread-safe. SafeArena wraps it in a mutex and implements the
// same Allocator interface.
//
// # Metrics
//
//	m := a.Metrics()
//	fmt.Printf("in use: %d, heap: %d, peak: %d\n", m.SizeInUse, m.HeapBytes, m.Peak)
package arena
