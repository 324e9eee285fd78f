package arena

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// replay runs the same allocation script against any Allocator.
func replay(t *testing.T, al Allocator) {
	t.Helper()
	p, err := al.TryAllocAligned(48, 8)
	require.NoError(t, err)
	require.True(t, al.TryGrowInPlace(p, 48, 96))
	require.True(t, al.TryShrinkInPlace(p, 96, 80))

	s, err := TryMakeSlice[uint16](al, 10)
	require.NoError(t, err)
	s, err = TryGrowSlice(al, s, 40)
	require.NoError(t, err)
	_ = ShrinkSlice(al, s, 20)

	names, err := TryMakeSlice[string](al, 3)
	require.NoError(t, err)
	require.Len(t, names, 3)
}

func TestSafeArenaMatchesArena(t *testing.T) {
	plain := NewArena(512)
	safe := NewSafeArena(512)

	replay(t, plain)
	replay(t, safe)

	require.Equal(t, plain.Metrics(), safe.Metrics())
	require.Equal(t, plain.SizeInUse(), safe.SizeInUse())
	require.Equal(t, plain.NumChunks(), safe.NumChunks())
	require.Equal(t, plain.Capacity(), safe.Capacity())
	require.Equal(t, plain.Utilization(), safe.Utilization())

	safe.EnsureCapacity(4096)
	require.Equal(t, 2, safe.NumChunks())
	safe.Reset()
	require.Zero(t, safe.SizeInUse())
	require.Len(t, safe.AllocBytes(16), 16)
}

// TestSharedAllocator grows private buffers from one SafeArena in many
// goroutines and checks that none of them overlap.
func TestSharedAllocator(t *testing.T) {
	var al Allocator = NewSafeArena(1024)
	const workers = 8
	const rounds = 50

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			buf := []uint32{}
			for i := 0; i < rounds; i++ {
				if len(buf) == cap(buf) {
					grown, err := TryGrowSlice(al, buf[:cap(buf)], max(4, 2*cap(buf)))
					if err != nil {
						errs <- err
						return
					}
					buf = grown[:len(buf)]
				}
				buf = append(buf, uint32(w<<16|i))

				// odd-aligned scratch allocations between growths
				if _, err := al.TryAllocAligned(uintptr(i%7+1), 1<<(i%4)); err != nil {
					errs <- err
					return
				}
			}
			for i, x := range buf {
				if x != uint32(w<<16|i) {
					errs <- errors.Newf("worker %d: buf[%d] = %#x", w, i, x)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestSafeArenaLimitUnderContention(t *testing.T) {
	s := NewSafeArena(1024, WithMaxSize(4096))
	const workers = 8

	var mu sync.Mutex
	granted := 0
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, err := s.TryAllocAligned(64, 8); err != nil {
					if !errors.Is(err, ErrExhausted) {
						t.Errorf("unexpected error: %v", err)
					}
					return
				}
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 4096/64, granted)
	require.Equal(t, 4096, s.SizeInUse())
}

func TestSafeArenaResetWhileReading(t *testing.T) {
	s := NewSafeArena(1024)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.AllocBytes(32)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			s.Reset()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			m := s.Metrics()
			if m.SizeInUse > m.Capacity {
				t.Errorf("in use %d exceeds capacity %d", m.SizeInUse, m.Capacity)
			}
		}
	}()
	wg.Wait()
}

func TestSafeArenaRelease(t *testing.T) {
	s := NewSafeArena(1024)
	p, err := s.TryAllocAligned(8, 8)
	require.NoError(t, err)
	s.Release()

	_, err = s.TryAllocAligned(8, 8)
	require.ErrorIs(t, err, ErrReleased)
	require.ErrorIs(t, s.TryAccountHeap(8), ErrReleased)
	require.False(t, s.TryGrowInPlace(p, 8, 16))
	require.False(t, s.TryShrinkInPlace(p, 8, 0))
	require.Zero(t, s.Metrics().Capacity)
	require.PanicsWithError(t, ErrReleased.Error(), func() { s.AllocBytes(1) })
}

func BenchmarkSafeArenaConcurrent(b *testing.B) {
	s := NewSafeArena(1024 * 1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.AllocBytes(64)
			i++
			if i%1000 == 999 {
				s.Reset()
			}
		}
	})
}
