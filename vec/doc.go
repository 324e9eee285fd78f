// Package vec provides Vec, a growable sequence whose buffer is bump-allocated
// from an arena.
//
// # Basic Usage
//
//	a := arena.NewArena(0)
//	defer a.Release()
//
//	v := vec.New[int](a)
//	v.Push(1)
//	v.ExtendFromSlice([]int{2, 3, 4})
//	v.Retain(func(x int) bool { return x%2 == 0 }) // [2 4]
//
// # Capacity
//
// Length and capacity are stored in 32 bits; growing past MaxCapacity
// panics with ErrCapacityOverflow. Growth doubles the capacity, and a buffer
// that is the arena's latest allocation is extended where it lies instead of
// being copied. Truncating never gives memory back. Zero-sized element types
// never allocate and report MaxCapacity.
//
// # Draining
//
// Drain, Splice and DrainFilter borrow the vector until they are closed.
// Close restores the vector whether or not the iterator was exhausted, so
// defer it, or range over All() which closes on exit:
//
//	d := v.Drain(1, 3)
//	defer d.Close()
//
// # Failure
//
// Out-of-range indexes, bad ranges and capacity overflow panic with an error
// wrapping ErrIndexOutOfRange, ErrInvalidRange or ErrCapacityOverflow. Only
// TryReserve and TryReserveExact report allocation failure as an error.
package vec
