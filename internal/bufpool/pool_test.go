package bufpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolGetReturnsSizedBuffer(t *testing.T) {
	t.Parallel()

	p := New()

	tests := []struct {
		name        string
		requestSize int
		expectCap   int
	}{
		{name: "small", requestSize: 64, expectCap: 256},
		{name: "exact small", requestSize: 256, expectCap: 256},
		{name: "medium", requestSize: 1024, expectCap: 1024},
		{name: "large", requestSize: 5000, expectCap: 8192},
		{name: "at cap", requestSize: 32768, expectCap: 32768},
		{name: "oversized", requestSize: 65536, expectCap: 65536},
		{name: "zero", requestSize: 0, expectCap: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := p.Get(tc.requestSize)
			if tc.requestSize == 0 {
				require.Len(t, buf, 0)
				require.Equal(t, 0, cap(buf))
				return
			}

			require.Len(t, buf, tc.requestSize)
			require.Equal(t, tc.expectCap, cap(buf))
		})
	}
}

func TestPoolPutReusesBuffer(t *testing.T) {
	t.Parallel()

	p := New()

	buf := p.Get(200)
	require.Len(t, buf, 200)
	buf[0] = 42

	ptr := &buf[:1][0]
	p.Put(buf)

	reused := p.Get(200)
	require.Len(t, reused, 200)
	require.Equal(t, 256, cap(reused))
	require.Same(t, ptr, &reused[:1][0])

	for i, v := range reused {
		require.Zerof(t, v, "expected buffer to be zeroed, found value %d at index %d", v, i)
	}
}

func TestPoolConcurrentAccess(t *testing.T) {
	t.Parallel()

	p := New()
	var wg sync.WaitGroup

	worker := func(size int) {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			buf := p.Get(size)
			require.Len(t, buf, size)
			require.GreaterOrEqual(t, cap(buf), size)
			for j := range buf {
				buf[j] = byte(i)
			}
			p.Put(buf)
		}
	}

	sizes := []int{64, 512, 2048, 8192, 40000}
	for _, size := range sizes {
		size := size
		wg.Add(1)
		go worker(size)
	}

	wg.Wait()
}

func TestScratchGrowsByPowerOfTwoAndCapsAt32768(t *testing.T) {
	t.Parallel()

	s := NewScratch(New())

	buf, err := s.Reserve(10)
	require.NoError(t, err)
	require.Len(t, buf, 10)
	require.Equal(t, MinScratch, cap(buf))

	buf, err = s.Reserve(1000)
	require.NoError(t, err)
	require.Len(t, buf, 1000)
	require.Equal(t, 1024, cap(buf))

	buf, err = s.Reserve(MaxScratch)
	require.NoError(t, err)
	require.Len(t, buf, MaxScratch)
	require.Equal(t, MaxScratch, cap(buf))

	_, err = s.Reserve(MaxScratch + 1)
	require.Error(t, err)

	s.Release()
}

func TestScratchRejectsNegativeReservation(t *testing.T) {
	t.Parallel()

	s := NewScratch(nil)
	_, err := s.Reserve(-1)
	require.Error(t, err)
}
