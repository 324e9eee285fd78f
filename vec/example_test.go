package vec_test

import (
	"fmt"
	"slices"

	"github.com/pavanmanishd/arenavec/arena"
	"github.com/pavanmanishd/arenavec/vec"
)

// Example demonstrates basic vector usage
func Example() {
	a := arena.NewArena(0)
	defer a.Release()

	v := vec.New[int](a)
	for i := 1; i <= 6; i++ {
		v.Push(i)
	}
	v.Retain(func(x int) bool { return x%2 == 0 })
	fmt.Println(v, v.Len())

	last, _ := v.Pop()
	fmt.Println(last, v)

	// Output:
	// [2 4 6] 3
	// 6 [2 4]
}

// ExampleVec_SwapRemove demonstrates O(1) removal that does not keep order
func ExampleVec_SwapRemove() {
	a := arena.NewArena(0)
	defer a.Release()

	v := vec.FromSlice([]string{"foo", "bar", "baz", "qux"}, a)
	fmt.Println(v.SwapRemove(1), v)

	// Output:
	// bar [foo qux baz]
}

// ExampleVec_Drain demonstrates draining part of a vector
func ExampleVec_Drain() {
	a := arena.NewArena(0)
	defer a.Release()

	v := vec.FromSlice([]int{1, 2, 3, 4, 5}, a)
	d := v.Drain(1, 3)
	defer d.Close()

	first, _ := d.Next()
	fmt.Println(first)
	d.Close()
	fmt.Println(v)

	// Output:
	// 2
	// [1 4 5]
}

// ExampleVec_Splice demonstrates replacing a range
func ExampleVec_Splice() {
	a := arena.NewArena(0)
	defer a.Release()

	v := vec.FromSlice([]int{1, 2, 3}, a)
	removed := slices.Collect(v.Splice(0, 2, vec.SliceIter([]int{7, 8})).All())
	fmt.Println(removed, v)

	// Output:
	// [1 2] [7 8 3]
}

// ExampleDedup demonstrates removing consecutive duplicates
func ExampleDedup() {
	a := arena.NewArena(0)
	defer a.Release()

	v := vec.FromSlice([]int{1, 2, 2, 3, 2}, a)
	vec.Dedup(v)
	fmt.Println(v)

	// Output:
	// [1 2 3 2]
}

// ExampleVec_TryReserve demonstrates reporting allocation failure
func ExampleVec_TryReserve() {
	a := arena.NewArena(1024, arena.WithMaxSize(512))
	defer a.Release()

	v := vec.New[int64](a)
	if err := v.TryReserve(128); err != nil {
		fmt.Println("reserve failed")
	}
	fmt.Println(v.TryReserve(32) == nil, v.Cap())

	// Output:
	// reserve failed
	// true 32
}
