package vec

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrainFilter(t *testing.T) {
	a := newTestArena(t)

	t.Run("exhausted", func(t *testing.T) {
		v := FromSlice([]int{1, 2, 3, 4, 5, 6}, a)
		evens := slices.Collect(v.DrainFilter(func(x *int) bool { return *x%2 == 0 }).All())
		require.Equal(t, []int{2, 4, 6}, evens)
		require.Equal(t, []int{1, 3, 5}, v.AsSlice())
		require.Zero(t, v.raw.buf[3])
	})

	t.Run("closed early", func(t *testing.T) {
		v := FromSlice([]int{1, 2, 3, 4, 5, 6}, a)
		f := v.DrainFilter(func(x *int) bool { return *x > 2 })
		require.Zero(t, v.Len())

		x, ok := f.Next()
		require.True(t, ok)
		require.Equal(t, 3, x)
		f.Close()

		// the rest of the matches are dropped on Close
		require.Equal(t, []int{1, 2}, v.AsSlice())
		_, ok = f.Next()
		require.False(t, ok)
		f.Close()
		require.Equal(t, 2, v.Len())
	})

	t.Run("predicate mutates kept elements", func(t *testing.T) {
		v := FromSlice([]int{1, 2, 3, 4}, a)
		f := v.DrainFilter(func(x *int) bool {
			if *x%2 == 1 {
				*x *= 100
				return false
			}
			return true
		})
		f.Close()
		require.Equal(t, []int{100, 300}, v.AsSlice())
	})

	t.Run("nothing matches", func(t *testing.T) {
		v := FromSlice([]int{1, 2, 3}, a)
		f := v.DrainFilter(func(*int) bool { return false })
		_, ok := f.Next()
		require.False(t, ok)
		f.Close()
		require.Equal(t, []int{1, 2, 3}, v.AsSlice())
	})
}

func TestDrainFilterPanicSafety(t *testing.T) {
	a := newTestArena(t)
	v := FromSlice([]int{1, 2, 3, 4, 5, 6}, a)

	calls := 0
	require.Panics(t, func() {
		f := v.DrainFilter(func(x *int) bool {
			calls++
			if *x == 4 {
				panic("predicate failed")
			}
			return *x%2 == 0
		})
		defer f.Close()
		for range f.All() {
		}
	})

	// 2 was drained; 4 and everything behind it are kept and the
	// predicate is not called again
	require.Equal(t, []int{1, 3, 4, 5, 6}, v.AsSlice())
	require.Equal(t, 4, calls)
	require.Zero(t, v.raw.buf[5])
}
