package vec

import (
	"math"
	"unsafe"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pavanmanishd/arenavec/arena"
)

// MaxCapacity is the largest length or capacity a Vec can have. Both are
// stored in 32 bits.
const MaxCapacity = math.MaxUint32

// capLimit is MaxCapacity clipped to what an int can hold on this platform.
const capLimit = min(MaxCapacity, math.MaxInt)

// rawVec owns a buffer and its capacity. The buffer is a slice whose length
// is the capacity; it is never nil. The arena owns the memory's lifetime,
// rawVec owns access to it.
type rawVec[T any] struct {
	buf []T
	a   arena.Allocator
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func alignOf[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}

// newRawVec returns an empty buffer without allocating. Zero-sized element
// types get the full capacity up front since they never need memory.
func newRawVec[T any](a arena.Allocator) rawVec[T] {
	if sizeOf[T]() == 0 {
		return rawVec[T]{buf: make([]T, capLimit), a: a}
	}
	return rawVec[T]{buf: make([]T, 0), a: a}
}

func rawWithCapacity[T any](n int, a arena.Allocator) rawVec[T] {
	r := newRawVec[T](a)
	if err := r.tryReserveExact(0, n); err != nil {
		panic(err)
	}
	return r
}

func (r *rawVec[T]) capacity() int {
	return len(r.buf)
}

// minNonZeroCap is the smallest capacity the amortized policy hands out.
func minNonZeroCap[T any]() int {
	switch size := sizeOf[T](); {
	case size == 1:
		return 8
	case size <= 1024:
		return 4
	default:
		return 1
	}
}

// needsToGrow also reports true for a negative additional so that the grow
// path rejects it.
func (r *rawVec[T]) needsToGrow(length, additional int) bool {
	return additional < 0 || additional > len(r.buf)-length
}

// reserve makes room for length+additional elements with amortized slack.
func (r *rawVec[T]) reserve(length, additional int) {
	if err := r.tryReserve(length, additional); err != nil {
		panic(err)
	}
}

func (r *rawVec[T]) reserveExact(length, additional int) {
	if err := r.tryReserveExact(length, additional); err != nil {
		panic(err)
	}
}

func (r *rawVec[T]) tryReserve(length, additional int) error {
	if !r.needsToGrow(length, additional) {
		return nil
	}
	return r.growAmortized(length, additional)
}

func (r *rawVec[T]) tryReserveExact(length, additional int) error {
	if !r.needsToGrow(length, additional) {
		return nil
	}
	return r.growExact(length, additional)
}

// growOne is reserve(length, 1) for callers already at capacity.
func (r *rawVec[T]) growOne(length int) {
	if err := r.growAmortized(length, 1); err != nil {
		panic(err)
	}
}

func (r *rawVec[T]) growAmortized(length, additional int) error {
	required, err := requiredCap(length, additional)
	if err != nil {
		return err
	}
	if sizeOf[T]() == 0 {
		// Capacity is already capLimit, so needing more is an overflow.
		return errors.Wrapf(ErrCapacityOverflow, "zero-sized elements: %d + %d", length, additional)
	}
	newCap := max(2*len(r.buf), required, minNonZeroCap[T]())
	newCap = min(newCap, capLimit)
	return r.finishGrow(newCap)
}

func (r *rawVec[T]) growExact(length, additional int) error {
	required, err := requiredCap(length, additional)
	if err != nil {
		return err
	}
	if sizeOf[T]() == 0 {
		return errors.Wrapf(ErrCapacityOverflow, "zero-sized elements: %d + %d", length, additional)
	}
	return r.finishGrow(required)
}

func (r *rawVec[T]) finishGrow(newCap int) error {
	size := sizeOf[T]()
	if uintptr(newCap) > uintptr(math.MaxInt)/size {
		return errors.Wrapf(ErrCapacityOverflow, "%d elements of %d bytes", newCap, size)
	}
	old := r.buf
	buf, err := arena.TryGrowSlice(r.a, old, newCap)
	if err != nil {
		return &AllocError{Size: size * uintptr(newCap), Align: alignOf[T](), Cause: err}
	}
	if len(old) > 0 && unsafe.SliceData(buf) != unsafe.SliceData(old) {
		Logger().Debug("vec: buffer moved",
			zap.Int("old_cap", len(old)),
			zap.Int("new_cap", newCap),
			zap.Uint64("elem_size", uint64(size)))
	}
	r.buf = buf
	return nil
}

// shrinkToFit cuts capacity down to length. The arena gets the bytes back
// when the buffer is its most recent allocation.
func (r *rawVec[T]) shrinkToFit(length int) {
	if sizeOf[T]() == 0 || len(r.buf) <= length {
		return
	}
	r.buf = arena.ShrinkSlice(r.a, r.buf, length)
}

// requiredCap returns length+additional, refusing anything past the 32-bit bound.
func requiredCap(length, additional int) (int, error) {
	if additional < 0 || additional > math.MaxInt-length {
		return 0, errors.Wrapf(ErrCapacityOverflow, "%d + %d overflows", length, additional)
	}
	if _, err := safecast.Convert[uint32](length + additional); err != nil {
		return 0, errors.Wrapf(ErrCapacityOverflow, "%d + %d: %v", length, additional, err)
	}
	return length + additional, nil
}
