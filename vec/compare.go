package vec

import (
	"cmp"
	"encoding/binary"
	"hash/maphash"

	"golang.org/x/exp/constraints"
)

// Equal reports whether a and b hold the same elements in the same order.
func Equal[T comparable](a, b *Vec[T]) bool {
	return EqualSlice(a, b.AsSlice())
}

// EqualSlice reports whether v holds exactly the elements of s.
func EqualSlice[T comparable](v *Vec[T], s []T) bool {
	if v.Len() != len(s) {
		return false
	}
	for i, x := range v.AsSlice() {
		if x != s[i] {
			return false
		}
	}
	return true
}

// Compare orders a and b lexicographically: -1, 0 or +1.
func Compare[T constraints.Ordered](a, b *Vec[T]) int {
	return CompareSlice(a, b.AsSlice())
}

// CompareSlice orders v against s lexicographically. Floating-point NaNs
// sort before every other value and equal to each other.
func CompareSlice[T constraints.Ordered](v *Vec[T], s []T) int {
	return v.CompareFunc(s, cmp.Compare[T])
}

// CompareFunc orders v against s lexicographically using cmp on elements.
// A shorter sequence that is a prefix of the other sorts first.
func (v *Vec[T]) CompareFunc(s []T, cmp func(x, y T) int) int {
	mine := v.AsSlice()
	for i := 0; i < len(mine) && i < len(s); i++ {
		if c := cmp(mine[i], s[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(mine) < len(s):
		return -1
	case len(mine) > len(s):
		return 1
	default:
		return 0
	}
}

// Hash hashes the length and the elements of v. Equal vectors hash equally
// under the same seed.
func Hash[T comparable](v *Vec[T], seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(v.Len()))
	h.Write(n[:])
	for _, x := range v.AsSlice() {
		maphash.WriteComparable(&h, x)
	}
	return h.Sum64()
}
