package vec

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrIndexOutOfRange is panicked with when an index is past the length.
	ErrIndexOutOfRange = errors.New("vec: index out of range")
	// ErrInvalidRange is panicked with for start > end or end > len.
	ErrInvalidRange = errors.New("vec: invalid range")
	// ErrCapacityOverflow reports a length or capacity past MaxCapacity, or a
	// byte size that cannot be represented.
	ErrCapacityOverflow = errors.New("vec: capacity overflow")
)

// AllocError describes a buffer the arena refused to hand out.
type AllocError struct {
	Size  uintptr // requested bytes
	Align uintptr
	Cause error
}

// Error describes the failed layout and its cause.
func (e *AllocError) Error() string {
	return fmt.Sprintf("vec: allocation of %d bytes (align %d) failed: %v", e.Size, e.Align, e.Cause)
}

// Unwrap returns the arena's error.
func (e *AllocError) Unwrap() error {
	return e.Cause
}

func panicIndex(op string, index, length int) {
	panic(errors.Wrapf(ErrIndexOutOfRange, "%s: index %d, len %d", op, index, length))
}

func checkRange(start, end, length int) {
	if start < 0 || start > end {
		panic(errors.Wrapf(ErrInvalidRange, "range start %d > end %d", start, end))
	}
	if end > length {
		panic(errors.Wrapf(ErrInvalidRange, "range end %d > len %d", end, length))
	}
}
