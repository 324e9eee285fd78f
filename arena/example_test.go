package arena_test

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/arenavec/arena"
	"github.com/pavanmanishd/arenavec/vec"
)

// Example demonstrates basic arena usage
func Example() {
	// Create a new arena with default chunk size
	a := arena.NewArena(0)
	defer a.Release() // Always clean up

	// Allocate raw bytes
	buf := a.AllocBytes(1024)
	fmt.Printf("Allocated buffer of size: %d\n", len(buf))

	// Allocate a typed value (zeroed)
	ptr := arena.Alloc[int](a)
	*ptr = 42
	fmt.Printf("Allocated int with value: %d\n", *ptr)

	// Allocate a slice
	slice := arena.AllocSlice[int](a, 5)
	for i := range slice {
		slice[i] = i * 2
	}
	fmt.Printf("Allocated slice: %v\n", slice)

	// Check memory usage
	fmt.Printf("Memory in use: %d bytes\n", a.SizeInUse())
	fmt.Printf("Utilization: %.2f%%\n", a.Utilization()*100)

	// Reset for reuse (O(1) operation)
	a.Reset()
	fmt.Printf("After reset, memory in use: %d bytes\n", a.SizeInUse())

	// Output:
	// Allocated buffer of size: 1024
	// Allocated int with value: 42
	// Allocated slice: [0 2 4 6 8]
	// Memory in use: 1072 bytes
	// Utilization: 1.64%
	// After reset, memory in use: 0 bytes
}

// ExampleArena_Reset demonstrates arena reuse with Reset
func ExampleArena_Reset() {
	a := arena.NewArena(1024)
	defer a.Release()

	for round := 1; round <= 3; round++ {
		for i := 0; i < 5; i++ {
			arena.Alloc[int64](a)
		}
		fmt.Printf("Round %d - Memory in use: %d bytes\n", round, a.SizeInUse())
		a.Reset()
	}

	// Output:
	// Round 1 - Memory in use: 40 bytes
	// Round 2 - Memory in use: 40 bytes
	// Round 3 - Memory in use: 40 bytes
}

// ExampleArena_TryGrowInPlace shows a vector whose buffer stays the arena's
// latest allocation: every growth after the first extends it where it is.
func ExampleArena_TryGrowInPlace() {
	a := arena.NewArena(1024)
	defer a.Release()

	v := vec.New[int64](a)
	for i := 0; i < 32; i++ {
		v.Push(int64(i))
	}
	fmt.Printf("len %d, cap %d\n", v.Len(), v.Cap())
	fmt.Printf("allocations %d, grown in place %d\n", a.Allocations(), a.InPlaceGrows())
	fmt.Printf("in use: %d bytes\n", a.SizeInUse())

	// Output:
	// len 32, cap 32
	// allocations 1, grown in place 3
	// in use: 256 bytes
}

// ExampleArena_TryShrinkInPlace hands the tail of the latest allocation back.
func ExampleArena_TryShrinkInPlace() {
	a := arena.NewArena(1024)
	defer a.Release()

	p, _ := a.TryAllocAligned(256, 8)
	fmt.Println(a.TryShrinkInPlace(p, 256, 64), a.SizeInUse())

	// only the latest allocation can shrink
	a.AllocBytes(8)
	fmt.Println(a.TryShrinkInPlace(p, 64, 32), a.SizeInUse())

	// Output:
	// true 64
	// false 72
}

// ExampleArena_TryAllocAligned demonstrates alignment beyond pointer size
func ExampleArena_TryAllocAligned() {
	a := arena.NewArena(1024)
	defer a.Release()

	a.AllocBytes(3)
	p, err := a.TryAllocAligned(128, 64)
	fmt.Println(err, uintptr(p)%64)

	_, err = a.TryAllocAligned(16, 24)
	fmt.Println(errors.Is(err, arena.ErrBadAlignment))

	// Output:
	// <nil> 0
	// true
}

// ExampleWithMaxSize demonstrates a byte cap refusing a request
func ExampleWithMaxSize() {
	a := arena.NewArena(1024, arena.WithMaxSize(256))
	defer a.Release()

	_, err := a.TryAllocAligned(200, 8)
	fmt.Println(err)

	_, err = a.TryAllocAligned(100, 8)
	fmt.Println(errors.Is(err, arena.ErrExhausted))

	v := vec.New[int64](a)
	fmt.Println(v.TryReserve(32) != nil, v.TryReserve(7) == nil)

	// Output:
	// <nil>
	// true
	// true true
}

// ExampleHasPointers shows where slices of each element kind are placed.
func ExampleHasPointers() {
	a := arena.NewArena(1024)
	defer a.Release()

	arena.AllocSlice[int32](a, 4)
	names := arena.AllocSlice[string](a, 4)
	names[0] = "kept visible to the GC"

	fmt.Println(arena.HasPointers[int32](), arena.HasPointers[string]())
	fmt.Printf("chunk bytes %d, heap bytes %d\n", a.SizeInUse(), a.HeapBytes())
	fmt.Println(a.HeapBytes() == 4*int(unsafe.Sizeof("")))

	// Output:
	// false true
	// chunk bytes 16, heap bytes 64
	// true
}

// ExampleSafeArena demonstrates two vectors growing from one region in
// separate goroutines
func ExampleSafeArena() {
	s := arena.NewSafeArena(4096)
	defer s.Release()

	evens, odds := vec.New[int](s), vec.New[int](s)

	var wg sync.WaitGroup
	fill := func(v *vec.Vec[int], start int) {
		defer wg.Done()
		for i := start; i < 200; i += 2 {
			v.Push(i)
		}
	}
	wg.Add(2)
	go fill(evens, 0)
	go fill(odds, 1)
	wg.Wait()

	last, _ := odds.Last()
	fmt.Println(evens.Len(), odds.Len(), evens.Get(99), last)

	// Output:
	// 100 100 198 199
}
