package vec

import "iter"

// Iterator produces values one at a time until it reports false.
type Iterator[T any] interface {
	Next() (T, bool)
}

// SizeHinter is implemented by iterators that know a lower bound on how many
// values they have left.
type SizeHinter interface {
	SizeHint() int
}

type stopper interface {
	Stop()
}

// stopIter releases resources held by it, if it holds any.
func stopIter(it any) {
	if s, ok := it.(stopper); ok {
		s.Stop()
	}
}

// SliceIter returns an iterator over s with an exact size hint.
func SliceIter[T any](s []T) *SliceIterator[T] {
	return &SliceIterator[T]{s: s}
}

// SliceIterator walks a slice front to back.
type SliceIterator[T any] struct {
	s []T
}

// Next yields the front element of the slice.
func (it *SliceIterator[T]) Next() (T, bool) {
	if len(it.s) == 0 {
		var zero T
		return zero, false
	}
	v := it.s[0]
	it.s = it.s[1:]
	return v, true
}

// SizeHint returns the number of elements left.
func (it *SliceIterator[T]) SizeHint() int {
	return len(it.s)
}

// SeqIter adapts a push iterator. Its size is unknown, so consumers
// buffer or grow as they go. Stop must be called if it is abandoned early;
// the vector operations taking an Iterator do so themselves.
func SeqIter[T any](seq iter.Seq[T]) *SeqIterator[T] {
	next, stop := iter.Pull(seq)
	return &SeqIterator[T]{next: next, stop: stop}
}

// SeqIterator pulls values out of an iter.Seq.
type SeqIterator[T any] struct {
	next func() (T, bool)
	stop func()
}

// Next pulls the next value from the sequence.
func (it *SeqIterator[T]) Next() (T, bool) {
	return it.next()
}

// Stop ends the underlying sequence. It is safe to call more than once.
func (it *SeqIterator[T]) Stop() {
	it.stop()
}

// IntoIter consumes a vector's elements from both ends.
type IntoIter[T any] struct {
	buf        []T
	start, end int
}

// IntoIter takes ownership of every element. v is left empty and can be reused.
func (v *Vec[T]) IntoIter() *IntoIter[T] {
	it := &IntoIter[T]{buf: v.raw.buf, end: v.Len()}
	v.raw = newRawVec[T](v.raw.a)
	v.len = 0
	return it
}

// Next yields the front element.
func (it *IntoIter[T]) Next() (T, bool) {
	var zero T
	if it.start == it.end {
		return zero, false
	}
	v := it.buf[it.start]
	it.buf[it.start] = zero
	it.start++
	return v, true
}

// NextBack yields the back element.
func (it *IntoIter[T]) NextBack() (T, bool) {
	var zero T
	if it.start == it.end {
		return zero, false
	}
	it.end--
	v := it.buf[it.end]
	it.buf[it.end] = zero
	return v, true
}

// Len returns the number of elements not yet yielded.
func (it *IntoIter[T]) Len() int {
	return it.end - it.start
}

// SizeHint is Len.
func (it *IntoIter[T]) SizeHint() int {
	return it.Len()
}

// AsSlice returns the elements not yet yielded.
func (it *IntoIter[T]) AsSlice() []T {
	return it.buf[it.start:it.end:it.end]
}

// All yields the remaining elements front to back.
func (it *IntoIter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := it.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
