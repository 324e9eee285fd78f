package vec

import (
	"iter"

	"go.uber.org/zap"
)

// Drain removes a range from a vector and yields its elements.
//
// While the drain is live the vector's length is cut to the start of the
// range, so nothing drained or behind it is reachable through the vector.
// Close moves the tail back over the gap and restores the length whether or
// not every element was consumed; defer it right after creating the drain.
type Drain[T any] struct {
	vec       *Vec[T]
	cur, end  int // elements still to yield
	tailStart int
	tailLen   int
	closed    bool
}

// Drain removes [start, end) and returns an iterator over the removed
// elements. Panics unless 0 <= start <= end <= Len().
func (v *Vec[T]) Drain(start, end int) *Drain[T] {
	n := v.Len()
	checkRange(start, end, n)
	v.setLen(start)
	return &Drain[T]{
		vec:       v,
		cur:       start,
		end:       end,
		tailStart: end,
		tailLen:   n - end,
	}
}

// DrainAll drains every element.
func (v *Vec[T]) DrainAll() *Drain[T] {
	return v.Drain(0, v.Len())
}

// WithDrain runs fn over a drain of [start, end) and closes it afterwards,
// even if fn panics.
func (v *Vec[T]) WithDrain(start, end int, fn func(d *Drain[T])) {
	d := v.Drain(start, end)
	defer d.Close()
	fn(d)
}

// Next yields the front element of the drained range.
func (d *Drain[T]) Next() (T, bool) {
	if d.cur == d.end {
		var zero T
		return zero, false
	}
	v := d.vec.raw.buf[d.cur]
	d.cur++
	return v, true
}

// NextBack yields the back element of the drained range.
func (d *Drain[T]) NextBack() (T, bool) {
	if d.cur == d.end {
		var zero T
		return zero, false
	}
	d.end--
	return d.vec.raw.buf[d.end], true
}

// Len returns the number of elements not yet yielded.
func (d *Drain[T]) Len() int {
	return d.end - d.cur
}

// SizeHint returns the exact number of elements left.
func (d *Drain[T]) SizeHint() int {
	return d.Len()
}

// AsSlice returns the elements not yet yielded.
func (d *Drain[T]) AsSlice() []T {
	return d.vec.raw.buf[d.cur:d.end:d.end]
}

// All yields the remaining elements and closes the drain when the loop ends.
func (d *Drain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer d.Close()
		for {
			v, ok := d.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Keep puts the elements not yet yielded back into the vector, ahead of the
// tail, and closes the drain.
func (d *Drain[T]) Keep() {
	if d.closed {
		return
	}
	d.closed = true
	v := d.vec
	buf := v.raw.buf
	start := v.Len()
	unyielded := d.end - d.cur
	copy(buf[start:], buf[d.cur:d.end])
	copy(buf[start+unyielded:], buf[d.tailStart:d.tailStart+d.tailLen])
	d.cur = d.end
	d.finish(start + unyielded + d.tailLen)
}

// Close drops whatever was not yielded, moves the tail back and restores the
// vector's length. Calling it again is a no-op.
func (d *Drain[T]) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.cur = d.end
	v := d.vec
	start := v.Len()
	if d.tailLen > 0 && d.tailStart != start {
		buf := v.raw.buf
		copy(buf[start:], buf[d.tailStart:d.tailStart+d.tailLen])
	}
	d.finish(start + d.tailLen)
}

// finish clears the slots vacated past newLen and publishes the length.
func (d *Drain[T]) finish(newLen int) {
	if oldEnd := d.tailStart + d.tailLen; newLen < oldEnd {
		clear(d.vec.raw.buf[newLen:oldEnd])
	}
	d.vec.setLen(newLen)
}

// fill writes values from src into the gap between the vector's length and
// the tail, bumping the length per element. It reports whether the gap was
// filled completely; false means src ran out.
func (d *Drain[T]) fill(src Iterator[T]) bool {
	v := d.vec
	for v.Len() < d.tailStart {
		value, ok := src.Next()
		if !ok {
			return false
		}
		v.raw.buf[v.Len()] = value
		v.increaseLen(1)
	}
	return true
}

// moveTail shifts the tail right by additional slots, growing the buffer if needed.
func (d *Drain[T]) moveTail(additional int) {
	v := d.vec
	v.raw.reserve(d.tailStart+d.tailLen, additional)
	buf := v.raw.buf
	newStart := d.tailStart + additional
	copy(buf[newStart:newStart+d.tailLen], buf[d.tailStart:d.tailStart+d.tailLen])
	clear(buf[d.tailStart:min(newStart, d.tailStart+d.tailLen)])
	d.tailStart = newStart
	Logger().Debug("vec: splice moved tail",
		zap.Int("tail_len", d.tailLen),
		zap.Int("by", additional))
}

// Splice is a Drain whose gap is refilled from a replacement iterator when it
// is closed. Next yields the removed elements.
type Splice[T any] struct {
	drain       *Drain[T]
	replaceWith Iterator[T]
	closed      bool
}

// Splice removes [start, end) and, on Close, inserts everything replaceWith
// produces in its place. The tail is moved at most twice: once by the
// replacement's SizeHint and once more for anything beyond it.
func (v *Vec[T]) Splice(start, end int, replaceWith Iterator[T]) *Splice[T] {
	return &Splice[T]{drain: v.Drain(start, end), replaceWith: replaceWith}
}

// Next yields the front removed element.
func (s *Splice[T]) Next() (T, bool) {
	return s.drain.Next()
}

// NextBack yields the back removed element.
func (s *Splice[T]) NextBack() (T, bool) {
	return s.drain.NextBack()
}

// Len returns the number of removed elements not yet yielded.
func (s *Splice[T]) Len() int {
	return s.drain.Len()
}

// SizeHint returns the exact number of removed elements left.
func (s *Splice[T]) SizeHint() int {
	return s.drain.Len()
}

// All yields the removed elements and closes the splice when the loop ends.
func (s *Splice[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer s.Close()
		for {
			v, ok := s.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close drops the removed elements not yet yielded, writes the replacement
// into the gap and restores the tail. Calling it again is a no-op.
func (s *Splice[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	d := s.drain
	defer d.Close()
	defer stopIter(s.replaceWith)
	d.cur = d.end

	if d.tailLen == 0 {
		d.vec.ExtendIter(s.replaceWith)
		return
	}
	if !d.fill(s.replaceWith) {
		return
	}

	if h, ok := s.replaceWith.(SizeHinter); ok {
		if lower := h.SizeHint(); lower > 0 {
			d.moveTail(lower)
			if !d.fill(s.replaceWith) {
				return
			}
		}
	}

	var rest []T
	for {
		value, ok := s.replaceWith.Next()
		if !ok {
			break
		}
		rest = append(rest, value)
	}
	if len(rest) > 0 {
		d.moveTail(len(rest))
		d.fill(SliceIter(rest))
	}
}
