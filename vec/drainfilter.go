package vec

import "iter"

// DrainFilter walks a vector once, yielding the elements pred selects and
// compacting the rest in place.
//
// Close scans whatever was not visited yet, then shifts the survivors into
// place and restores the length. If pred panicked, Close skips the scan and
// only restores consistency; the unvisited elements are kept.
type DrainFilter[T any] struct {
	vec       *Vec[T]
	pred      func(*T) bool
	idx       int // next element to visit
	del       int // elements yielded so far
	oldLen    int
	panicking bool
	closed    bool
}

// DrainFilter returns an iterator removing every element for which pred
// returns true. pred may modify the elements it keeps.
func (v *Vec[T]) DrainFilter(pred func(*T) bool) *DrainFilter[T] {
	oldLen := v.Len()
	v.setLen(0)
	return &DrainFilter[T]{vec: v, pred: pred, oldLen: oldLen}
}

// Next yields the next element pred selects.
func (f *DrainFilter[T]) Next() (T, bool) {
	var zero T
	if f.closed {
		return zero, false
	}
	buf := f.vec.raw.buf
	for f.idx < f.oldLen {
		i := f.idx
		f.panicking = true
		drained := f.pred(&buf[i])
		f.panicking = false
		f.idx++
		if drained {
			f.del++
			return buf[i], true
		}
		if f.del > 0 {
			buf[i-f.del] = buf[i]
		}
	}
	return zero, false
}

// All yields the selected elements and closes the filter when the loop ends.
func (f *DrainFilter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer f.Close()
		for {
			v, ok := f.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close finishes the scan and restores the vector. Calling it again is a no-op.
func (f *DrainFilter[T]) Close() {
	if f.closed {
		return
	}
	defer f.backshift()
	if !f.panicking {
		for {
			if _, ok := f.Next(); !ok {
				break
			}
		}
	}
}

func (f *DrainFilter[T]) backshift() {
	f.closed = true
	buf := f.vec.raw.buf
	if f.idx < f.oldLen && f.del > 0 {
		copy(buf[f.idx-f.del:], buf[f.idx:f.oldLen])
	}
	newLen := f.oldLen - f.del
	clear(buf[newLen:f.oldLen])
	f.vec.setLen(newLen)
}
