package vec

import (
	"fmt"
	"iter"
	"math"
	"unsafe"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"

	"github.com/pavanmanishd/arenavec/arena"
)

// Vec is a contiguous growable sequence whose buffer comes from an arena.
//
// Elements in [0, Len()) are initialized; the capacity past them is scratch
// space. Shrinking the length never reallocates, only growth past Cap()
// asks the arena for memory, and memory is never handed back individually.
// A Vec must be created with one of the constructors and used by a single
// goroutine.
type Vec[T any] struct {
	raw rawVec[T]
	len uint32
}

// New returns an empty vector bound to a. Nothing is allocated until the
// first element is added.
func New[T any](a arena.Allocator) *Vec[T] {
	return &Vec[T]{raw: newRawVec[T](a)}
}

// WithCapacity returns an empty vector able to hold exactly n elements
// without reallocating. Panics if n is past MaxCapacity.
func WithCapacity[T any](n int, a arena.Allocator) *Vec[T] {
	return &Vec[T]{raw: rawWithCapacity[T](n, a)}
}

// FromSeq collects seq into a new vector.
func FromSeq[T any](seq iter.Seq[T], a arena.Allocator) *Vec[T] {
	v := New[T](a)
	v.Extend(seq)
	return v
}

// FromSlice copies s into a new vector sized exactly for it.
func FromSlice[T any](s []T, a arena.Allocator) *Vec[T] {
	v := WithCapacity[T](len(s), a)
	copy(v.raw.buf, s)
	v.setLen(len(s))
	return v
}

// FromRawParts rebuilds a vector from the pieces returned by IntoRawParts.
// ptr must point at capacity elements obtained from a, the first length of
// which are initialized.
func FromRawParts[T any](ptr *T, length, capacity int, a arena.Allocator) *Vec[T] {
	if ptr == nil {
		panic(errors.AssertionFailedf("vec: FromRawParts with nil pointer"))
	}
	if sizeOf[T]() == 0 {
		capacity = capLimit
	}
	if _, err := safecast.Convert[uint32](capacity); err != nil {
		panic(errors.Wrapf(ErrCapacityOverflow, "capacity %d: %v", capacity, err))
	}
	if length < 0 || length > capacity {
		panic(errors.Wrapf(ErrInvalidRange, "length %d > capacity %d", length, capacity))
	}
	v := &Vec[T]{raw: rawVec[T]{buf: unsafe.Slice(ptr, capacity), a: a}}
	v.setLen(length)
	return v
}

// IntoRawParts disassembles v into its buffer pointer, length and capacity.
// v is left empty and can be reused.
func (v *Vec[T]) IntoRawParts() (ptr *T, length, capacity int) {
	ptr, length, capacity = unsafe.SliceData(v.raw.buf), v.Len(), v.Cap()
	v.raw = newRawVec[T](v.raw.a)
	v.len = 0
	return ptr, length, capacity
}

// setLen, increaseLen and decreaseLen only do bookkeeping. Callers must have
// written the elements being published, or read out the ones being dropped.

func (v *Vec[T]) setLen(n int) {
	v.len = uint32(n)
}

func (v *Vec[T]) increaseLen(n int) {
	v.len += uint32(n)
}

func (v *Vec[T]) decreaseLen(n int) {
	v.len -= uint32(n)
}

// Arena returns the allocator the vector grows through.
func (v *Vec[T]) Arena() arena.Allocator {
	return v.raw.a
}

// Len returns the number of elements.
func (v *Vec[T]) Len() int {
	return int(v.len)
}

// Cap returns how many elements fit without reallocating. Zero-sized element
// types report MaxCapacity.
func (v *Vec[T]) Cap() int {
	return v.raw.capacity()
}

// IsEmpty reports whether the vector has no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.len == 0
}

// Reserve makes room for at least additional more elements, over-allocating
// to keep repeated growth amortized O(1).
func (v *Vec[T]) Reserve(additional int) {
	v.raw.reserve(v.Len(), additional)
}

// ReserveExact makes room for exactly additional more elements.
func (v *Vec[T]) ReserveExact(additional int) {
	v.raw.reserveExact(v.Len(), additional)
}

// TryReserve is Reserve returning ErrCapacityOverflow or an *AllocError
// instead of panicking.
func (v *Vec[T]) TryReserve(additional int) error {
	return v.raw.tryReserve(v.Len(), additional)
}

// TryReserveExact is ReserveExact returning an error instead of panicking.
func (v *Vec[T]) TryReserveExact(additional int) error {
	return v.raw.tryReserveExact(v.Len(), additional)
}

// ShrinkToFit drops the spare capacity. The bytes return to the arena only if
// the buffer is its latest allocation.
func (v *Vec[T]) ShrinkToFit() {
	v.raw.shrinkToFit(v.Len())
}

// AsSlice returns the elements as a slice sharing the vector's buffer. It is
// never nil, and its capacity is clipped so appending to it copies.
func (v *Vec[T]) AsSlice() []T {
	return v.raw.buf[:v.len:v.len]
}

// IntoSlice hands the buffer over as a slice with len == cap, shrinking first.
// Nothing is copied. v is left empty.
func (v *Vec[T]) IntoSlice() []T {
	v.ShrinkToFit()
	s := v.AsSlice()
	v.raw = newRawVec[T](v.raw.a)
	v.len = 0
	return s
}

// Get returns the element at i.
func (v *Vec[T]) Get(i int) T {
	if uint(i) >= uint(v.len) {
		panicIndex("Get", i, v.Len())
	}
	return v.raw.buf[i]
}

// Set overwrites the element at i.
func (v *Vec[T]) Set(i int, value T) {
	if uint(i) >= uint(v.len) {
		panicIndex("Set", i, v.Len())
	}
	v.raw.buf[i] = value
}

// Ptr returns a pointer to the element at i. It stays valid until the vector
// reallocates.
func (v *Vec[T]) Ptr(i int) *T {
	if uint(i) >= uint(v.len) {
		panicIndex("Ptr", i, v.Len())
	}
	return &v.raw.buf[i]
}

// Slice returns the elements in [start, end).
func (v *Vec[T]) Slice(start, end int) []T {
	checkRange(start, end, v.Len())
	return v.raw.buf[start:end:end]
}

// First returns the first element, if any.
func (v *Vec[T]) First() (T, bool) {
	if v.len == 0 {
		var zero T
		return zero, false
	}
	return v.raw.buf[0], true
}

// Last returns the last element, if any.
func (v *Vec[T]) Last() (T, bool) {
	if v.len == 0 {
		var zero T
		return zero, false
	}
	return v.raw.buf[v.len-1], true
}

// Swap exchanges the elements at i and j.
func (v *Vec[T]) Swap(i, j int) {
	if uint(i) >= uint(v.len) {
		panicIndex("Swap", i, v.Len())
	}
	if uint(j) >= uint(v.len) {
		panicIndex("Swap", j, v.Len())
	}
	v.raw.buf[i], v.raw.buf[j] = v.raw.buf[j], v.raw.buf[i]
}

// Push appends value, growing the buffer when full.
func (v *Vec[T]) Push(value T) {
	n := v.Len()
	if n == v.raw.capacity() {
		v.raw.growOne(n)
	}
	v.raw.buf[n] = value
	v.increaseLen(1)
}

// Pop removes and returns the last element. It reports false when empty.
func (v *Vec[T]) Pop() (T, bool) {
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.decreaseLen(1)
	value := v.raw.buf[v.len]
	v.raw.buf[v.len] = zero
	return value, true
}

// Insert places value at index i, shifting everything after it right.
// Panics if i > Len().
func (v *Vec[T]) Insert(i int, value T) {
	n := v.Len()
	if i < 0 || i > n {
		panicIndex("Insert", i, n)
	}
	if n == v.raw.capacity() {
		v.raw.growOne(n)
	}
	buf := v.raw.buf
	copy(buf[i+1:n+1], buf[i:n])
	buf[i] = value
	v.increaseLen(1)
}

// Remove takes out the element at i and shifts the rest left.
func (v *Vec[T]) Remove(i int) T {
	n := v.Len()
	if uint(i) >= uint(n) {
		panicIndex("Remove", i, n)
	}
	buf := v.raw.buf
	value := buf[i]
	copy(buf[i:n-1], buf[i+1:n])
	clear(buf[n-1 : n])
	v.decreaseLen(1)
	return value
}

// SwapRemove takes out the element at i and moves the last element into its
// place. O(1), does not preserve order.
func (v *Vec[T]) SwapRemove(i int) T {
	n := v.Len()
	if uint(i) >= uint(n) {
		panicIndex("SwapRemove", i, n)
	}
	buf := v.raw.buf
	value := buf[i]
	buf[i] = buf[n-1]
	clear(buf[n-1 : n])
	v.decreaseLen(1)
	return value
}

// Truncate shortens the vector to n elements. Capacity is kept; it is a no-op
// when n >= Len().
func (v *Vec[T]) Truncate(n int) {
	if n < 0 {
		panicIndex("Truncate", n, v.Len())
	}
	if n >= v.Len() {
		return
	}
	clear(v.raw.buf[n:v.len])
	v.setLen(n)
}

// Clear removes every element, keeping the capacity.
func (v *Vec[T]) Clear() {
	v.Truncate(0)
}

// Resize grows the vector to n elements filled with value, or truncates it.
func (v *Vec[T]) Resize(n int, value T) {
	v.ResizeWith(n, func() T { return value })
}

// ResizeWith grows the vector to n elements produced by f, or truncates it.
func (v *Vec[T]) ResizeWith(n int, f func() T) {
	cur := v.Len()
	if n <= cur {
		v.Truncate(n)
		return
	}
	v.Reserve(n - cur)
	for i := cur; i < n; i++ {
		v.raw.buf[i] = f()
		v.increaseLen(1)
	}
}

// Extend appends every value seq produces. The length is bumped per element,
// so a panic inside seq leaves everything appended so far in place.
func (v *Vec[T]) Extend(seq iter.Seq[T]) {
	for value := range seq {
		v.Push(value)
	}
}

// ExtendIter appends everything it produces, reserving up front from its
// SizeHint when it has one and again whenever the hint undershoots.
func (v *Vec[T]) ExtendIter(it Iterator[T]) {
	defer stopIter(it)
	hinter, _ := it.(SizeHinter)
	if hinter != nil {
		v.Reserve(hinter.SizeHint())
	}
	for {
		value, ok := it.Next()
		if !ok {
			return
		}
		n := v.Len()
		if n == v.raw.capacity() {
			lower := 0
			if hinter != nil {
				lower = hinter.SizeHint()
			}
			v.raw.reserve(n, min(lower, math.MaxInt-1)+1)
		}
		v.raw.buf[n] = value
		v.increaseLen(1)
	}
}

// ExtendFromSlice appends a copy of s.
func (v *Vec[T]) ExtendFromSlice(s []T) {
	v.Reserve(len(s))
	n := v.Len()
	copy(v.raw.buf[n:n+len(s)], s)
	v.increaseLen(len(s))
}

// ExtendFromSlices appends copies of every slice with a single reservation.
func (v *Vec[T]) ExtendFromSlices(slices ...[]T) {
	total := 0
	for _, s := range slices {
		if len(s) > math.MaxInt-total {
			panic(errors.Wrap(ErrCapacityOverflow, "combined length overflows"))
		}
		total += len(s)
	}
	v.Reserve(total)
	n := v.Len()
	for _, s := range slices {
		n += copy(v.raw.buf[n:], s)
	}
	v.setLen(n)
}

// Append moves every element of other onto the end of v, leaving other empty
// with its capacity intact.
func (v *Vec[T]) Append(other *Vec[T]) {
	if other == v {
		panic(errors.AssertionFailedf("vec: Append of a vector to itself"))
	}
	v.ExtendFromSlice(other.AsSlice())
	other.Clear()
}

// SplitOff moves [at, Len()) into a new vector allocated from the same arena
// with exactly that capacity. v keeps [0, at).
func (v *Vec[T]) SplitOff(at int) *Vec[T] {
	n := v.Len()
	if at < 0 || at > n {
		panicIndex("SplitOff", at, n)
	}
	other := WithCapacity[T](n-at, v.raw.a)
	copy(other.raw.buf, v.raw.buf[at:n])
	other.setLen(n - at)
	clear(v.raw.buf[at:n])
	v.setLen(at)
	return other
}

// Clone copies v into a new vector from the same arena.
func (v *Vec[T]) Clone() *Vec[T] {
	return FromSlice(v.AsSlice(), v.raw.a)
}

// Retain keeps the elements for which keep returns true, in order.
func (v *Vec[T]) Retain(keep func(T) bool) {
	v.RetainMut(func(p *T) bool { return keep(*p) })
}

// RetainMut is Retain with a predicate that may modify the elements.
//
// If keep panics, the element it was looking at and everything after it is
// kept, and the vector stays consistent.
func (v *Vec[T]) RetainMut(keep func(*T) bool) {
	g := retainGuard[T]{v: v, original: v.Len()}
	// Hide everything while scanning; the guard publishes the survivors.
	v.setLen(0)
	defer g.finish()

	buf := v.raw.buf
	// Nothing deleted yet: kept elements stay where they are.
	for g.processed < g.original {
		if !keep(&buf[g.processed]) {
			g.processed++
			g.deleted++
			break
		}
		g.processed++
	}
	for g.processed < g.original {
		cur := &buf[g.processed]
		if !keep(cur) {
			g.processed++
			g.deleted++
			continue
		}
		buf[g.processed-g.deleted] = *cur
		g.processed++
	}
}

type retainGuard[T any] struct {
	v         *Vec[T]
	original  int
	processed int
	deleted   int
}

// finish shifts the unprocessed tail back over the hole and restores the length.
func (g *retainGuard[T]) finish() {
	buf := g.v.raw.buf
	if g.deleted > 0 {
		copy(buf[g.processed-g.deleted:], buf[g.processed:g.original])
		clear(buf[g.original-g.deleted : g.original])
	}
	g.v.setLen(g.original - g.deleted)
}

// DedupBy removes every element for which same(cur, prev) reports true, where
// prev is the last element kept before it. Only consecutive runs collapse.
//
// Elements are partitioned in place by swapping, so a panicking same leaves a
// permutation of the original elements behind.
func (v *Vec[T]) DedupBy(same func(cur, prev *T) bool) {
	n := v.Len()
	if n <= 1 {
		return
	}
	buf := v.raw.buf
	write := 1
	for read := 1; read < n; read++ {
		if same(&buf[read], &buf[write-1]) {
			continue
		}
		if read != write {
			buf[read], buf[write] = buf[write], buf[read]
		}
		write++
	}
	v.Truncate(write)
}

// Dedup removes consecutive equal elements, keeping the first of each run.
func Dedup[T comparable](v *Vec[T]) {
	v.DedupBy(func(cur, prev *T) bool { return *cur == *prev })
}

// DedupByKey removes consecutive elements that map to the same key.
func DedupByKey[T any, K comparable](v *Vec[T], key func(*T) K) {
	v.DedupBy(func(cur, prev *T) bool { return key(cur) == key(prev) })
}

// Contains reports whether value is present.
func Contains[T comparable](v *Vec[T], value T) bool {
	for _, x := range v.AsSlice() {
		if x == value {
			return true
		}
	}
	return false
}

// All iterates over index/element pairs.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.raw.buf[i]) {
				return
			}
		}
	}
}

// Values iterates over the elements.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(v.raw.buf[i]) {
				return
			}
		}
	}
}

// Pointers iterates over pointers to the elements, for in-place mutation.
func (v *Vec[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(&v.raw.buf[i]) {
				return
			}
		}
	}
}

// Backward iterates over index/element pairs from the end.
func (v *Vec[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.Len() - 1; i >= 0; i-- {
			if !yield(i, v.raw.buf[i]) {
				return
			}
		}
	}
}

// String formats the elements like a slice.
func (v *Vec[T]) String() string {
	return fmt.Sprint(v.AsSlice())
}
