// Package arena implements a chunked bump allocator (memory arena).
// Typical usage: create one arena per unit of work, grow many vectors and
// temporary buffers from it, then Reset() at the end for O(1) cleanup.
package arena

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

const ptrAlign = unsafe.Alignof(uintptr(0))

// zeroBase is handed out for zero-byte requests so callers always get a
// non-nil, maximally aligned pointer.
var zeroBase [0]uint64

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
	last   uintptr // start of the most recent allocation
}

// fit returns the aligned start offset for a size-byte allocation, or false
// when the chunk cannot hold it.
func (c *chunk) fit(size, align uintptr) (uintptr, bool) {
	if size > uintptr(len(c.buf)) {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	start := alignUp(base+c.offset, align) - base
	if start+size > uintptr(len(c.buf)) {
		return 0, false
	}
	return start, true
}

// isLast reports whether ptr/size describe the most recent allocation.
func (c *chunk) isLast(ptr unsafe.Pointer, size uintptr) bool {
	if len(c.buf) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	return uintptr(ptr) == base+c.last && c.last+size == c.offset
}

// Arena is a chunked bump allocator. Not goroutine-safe by default.
// Use SafeArena for concurrent access.
type Arena struct {
	chunks    []chunk
	chunkSize int
	cur       int
	maxSize   int
	log       *zap.Logger

	inUse        int
	heapBytes    int
	peak         int
	allocations  int
	inPlaceGrows int
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int, opts ...Option) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = Logger()
	}
	a.grow(chunkSize)
	return a
}

// AllocBytes returns a []byte slice pointing into the arena's backing chunk.
// The caller must ensure the arena remains reachable while the returned slice is in use.
// Returns nil if n <= 0. Panics after Release() or when the size limit is hit.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	p, err := a.TryAllocAligned(uintptr(n), ptrAlign)
	if err != nil {
		panic(err)
	}
	return unsafe.Slice((*byte)(p), n)
}

// TryAllocAligned bumps size bytes aligned to align out of the arena.
// The returned memory is zeroed.
func (a *Arena) TryAllocAligned(size, align uintptr) (unsafe.Pointer, error) {
	if a.chunks == nil {
		return nil, ErrReleased
	}
	if align == 0 || align&(align-1) != 0 {
		return nil, errors.Wrapf(ErrBadAlignment, "align %d", align)
	}
	if size == 0 {
		return unsafe.Pointer(&zeroBase), nil
	}

	// Fast path: current chunk
	c := &a.chunks[a.cur]
	if start, ok := c.fit(size, align); ok {
		return a.commit(c, start, size)
	}
	return a.allocSlow(size, align)
}

// allocSlow handles allocation when the current chunk is full. Chunks kept
// across Reset() are reused before a new one is allocated.
func (a *Arena) allocSlow(size, align uintptr) (unsafe.Pointer, error) {
	for i := a.cur + 1; i < len(a.chunks); i++ {
		c := &a.chunks[i]
		if start, ok := c.fit(size, align); ok {
			a.cur = i
			return a.commit(c, start, size)
		}
	}
	if err := a.checkLimit(size); err != nil {
		return nil, err
	}

	need := size + align - 1
	if need < size || need > uintptr(maxInt) {
		return nil, errors.Wrapf(ErrTooLarge, "%d bytes", size)
	}
	a.grow(int(need))
	c := &a.chunks[a.cur]
	start, ok := c.fit(size, align)
	if !ok {
		return nil, errors.AssertionFailedf("arena: fresh chunk of %d bytes cannot fit %d", len(c.buf), size)
	}
	return a.commit(c, start, size)
}

func (a *Arena) commit(c *chunk, start, size uintptr) (unsafe.Pointer, error) {
	end := start + size
	if err := a.checkLimit(end - c.offset); err != nil {
		return nil, err
	}
	a.inUse += int(end - c.offset)
	c.last = start
	c.offset = end
	a.allocations++
	a.notePeak()

	b := c.buf[start:end]
	clear(b)
	return unsafe.Pointer(&b[0]), nil
}

// TryGrowInPlace extends the allocation at ptr from oldSize to newSize bytes
// without moving it. Only the most recent allocation of the current chunk can
// grow, and only while the chunk has room; otherwise false is returned and
// nothing changes. The added bytes are zeroed.
func (a *Arena) TryGrowInPlace(ptr unsafe.Pointer, oldSize, newSize uintptr) bool {
	if a.chunks == nil || newSize < oldSize {
		return false
	}
	c := &a.chunks[a.cur]
	if !c.isLast(ptr, oldSize) || newSize > uintptr(len(c.buf))-c.last {
		return false
	}
	delta := newSize - oldSize
	if a.checkLimit(delta) != nil {
		return false
	}
	clear(c.buf[c.offset : c.last+newSize])
	c.offset = c.last + newSize
	a.inUse += int(delta)
	a.inPlaceGrows++
	a.notePeak()
	return true
}

// TryShrinkInPlace hands the bytes past newSize back to the arena when ptr is
// the most recent allocation. The caller must stop using them either way.
func (a *Arena) TryShrinkInPlace(ptr unsafe.Pointer, oldSize, newSize uintptr) bool {
	if a.chunks == nil || newSize > oldSize {
		return false
	}
	c := &a.chunks[a.cur]
	if !c.isLast(ptr, oldSize) {
		return false
	}
	c.offset = c.last + newSize
	a.inUse -= int(oldSize - newSize)
	return true
}

// TryAccountHeap charges size bytes of a garbage-collected allocation made on
// the arena's behalf against its size limit.
func (a *Arena) TryAccountHeap(size uintptr) error {
	if a.chunks == nil {
		return ErrReleased
	}
	if err := a.checkLimit(size); err != nil {
		return err
	}
	a.heapBytes += int(size)
	a.allocations++
	a.notePeak()
	return nil
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	if n <= 0 {
		return
	}
	if _, ok := a.chunks[a.cur].fit(uintptr(n), ptrAlign); !ok {
		a.grow(n)
	}
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// Every slice previously handed out must be considered dead afterwards.
func (a *Arena) Reset() {
	a.panicIfReleased()
	a.notePeak()
	for i := range a.chunks {
		a.chunks[i].offset = 0
		a.chunks[i].last = 0
	}
	a.cur = 0
	a.inUse = 0
	a.heapBytes = 0
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent operations will panic.
func (a *Arena) Release() {
	a.chunks = nil
	a.cur = 0
	a.inUse = 0
	a.heapBytes = 0
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.cur = len(a.chunks) - 1
	if len(a.chunks) > 1 {
		a.log.Debug("arena: new chunk",
			zap.Int("size", size),
			zap.Int("chunks", len(a.chunks)))
	}
}

func (a *Arena) checkLimit(n uintptr) error {
	if a.maxSize <= 0 {
		return nil
	}
	if n > uintptr(a.maxSize) || a.inUse+a.heapBytes > a.maxSize-int(n) {
		a.log.Debug("arena: size limit reached",
			zap.Uint64("requested", uint64(n)),
			zap.Int("in_use", a.inUse+a.heapBytes),
			zap.Int("max_size", a.maxSize))
		return errors.Wrapf(ErrExhausted, "requested %d bytes with %d of %d in use",
			n, a.inUse+a.heapBytes, a.maxSize)
	}
	return nil
}

func (a *Arena) notePeak() {
	if used := a.inUse + a.heapBytes; used > a.peak {
		a.peak = used
	}
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic(ErrReleased)
	}
}

// alignUp rounds off up to a multiple of align, which must be a power of two.
func alignUp(off, align uintptr) uintptr {
	return (off + align - 1) &^ (align - 1)
}

const maxInt = int(^uint(0) >> 1)
