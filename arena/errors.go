package arena

import "github.com/cockroachdb/errors"

var (
	// ErrReleased is returned (or panicked with) when an arena is used after Release().
	ErrReleased = errors.New("arena: use after Release()")
	// ErrExhausted reports that a request would push the arena past its size limit.
	ErrExhausted = errors.New("arena: size limit exhausted")
	// ErrBadAlignment reports an alignment that is not a power of two.
	ErrBadAlignment = errors.New("arena: alignment must be a power of two")
	// ErrTooLarge reports a request whose byte size cannot be represented.
	ErrTooLarge = errors.New("arena: allocation size overflows")
)
