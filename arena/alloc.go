package arena

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Allocator is the capability a growable container needs from a region:
// bump allocation, cheap growth of the latest allocation, and accounting for
// allocations that have to live on the garbage-collected heap.
// Both *Arena and *SafeArena implement it.
type Allocator interface {
	TryAllocAligned(size, align uintptr) (unsafe.Pointer, error)
	TryGrowInPlace(ptr unsafe.Pointer, oldSize, newSize uintptr) bool
	TryShrinkInPlace(ptr unsafe.Pointer, oldSize, newSize uintptr) bool
	TryAccountHeap(size uintptr) error
}

var (
	_ Allocator = (*Arena)(nil)
	_ Allocator = (*SafeArena)(nil)
)

// Alloc returns a pointer to a zeroed T owned by the arena.
// Panics when the arena cannot serve the request.
func Alloc[T any](a Allocator) *T {
	s := AllocSlice[T](a, 1)
	return &s[0]
}

// AllocSlice allocates a zeroed slice of n elements of type T inside the arena.
// Returns nil if n <= 0. Panics when the arena cannot serve the request.
func AllocSlice[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	s, err := TryMakeSlice[T](a, n)
	if err != nil {
		panic(err)
	}
	return s
}

// TryMakeSlice allocates a zeroed slice of exactly n elements.
//
// Pointer-free element types are carved out of chunk memory. Element types
// holding pointers must stay visible to the garbage collector, so they get a
// typed heap allocation charged against the arena's size limit instead.
// Zero-sized element types never reach the arena.
func TryMakeSlice[T any](a Allocator, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrTooLarge, "negative length %d", n)
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 || n == 0 {
		return make([]T, n), nil
	}
	if uintptr(n) > uintptr(maxInt)/size {
		return nil, errors.Wrapf(ErrTooLarge, "%d elements of %d bytes", n, size)
	}
	total := size * uintptr(n)

	if HasPointers[T]() {
		if err := a.TryAccountHeap(total); err != nil {
			return nil, err
		}
		return make([]T, n), nil
	}
	p, err := a.TryAllocAligned(total, unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

// TryGrowSlice returns a slice of newCap elements whose prefix holds s.
// When s is the arena's most recent allocation and the chunk has room, s is
// extended where it is; otherwise a fresh block is allocated and s copied.
// The memory past len(s) is zeroed. s is unchanged on error.
func TryGrowSlice[T any](a Allocator, s []T, newCap int) ([]T, error) {
	if newCap <= len(s) {
		return s, nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return make([]T, newCap), nil
	}
	if len(s) > 0 && !HasPointers[T]() && uintptr(newCap) <= uintptr(maxInt)/size {
		p := unsafe.Pointer(unsafe.SliceData(s))
		if a.TryGrowInPlace(p, size*uintptr(len(s)), size*uintptr(newCap)) {
			return unsafe.Slice((*T)(p), newCap), nil
		}
	}
	ns, err := TryMakeSlice[T](a, newCap)
	if err != nil {
		return nil, err
	}
	copy(ns, s)
	return ns, nil
}

// ShrinkSlice cuts s down to newCap elements and hands the freed bytes back
// to the arena when s is its most recent allocation. The result's capacity is
// clipped so the freed memory is never reachable through it.
func ShrinkSlice[T any](a Allocator, s []T, newCap int) []T {
	if newCap >= len(s) {
		return s
	}
	var zero T
	size := unsafe.Sizeof(zero)
	if size != 0 && len(s) > 0 && !HasPointers[T]() {
		p := unsafe.Pointer(unsafe.SliceData(s))
		a.TryShrinkInPlace(p, size*uintptr(len(s)), size*uintptr(newCap))
	}
	return s[:newCap:newCap]
}

var pointerCache sync.Map // reflect.Type -> bool

// HasPointers reports whether values of T contain pointers the garbage
// collector must see. Such values cannot live in untyped chunk memory.
func HasPointers[T any]() bool {
	t := reflect.TypeFor[T]()
	if v, ok := pointerCache.Load(t); ok {
		return v.(bool)
	}
	has := typeHasPointers(t)
	pointerCache.Store(t, has)
	return has
}

func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// pointers, strings, slices, maps, channels, funcs, interfaces
		return true
	}
}
