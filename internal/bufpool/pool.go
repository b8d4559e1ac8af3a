// Package bufpool provides sized byte-slice pooling to reduce GC churn, and
// a Scratch helper that implements the event engine's power-of-two,
// bounded-growth scratch buffer (spec.md §3: "dynamically grown power-of-two
// array, initial 256 bytes, capped at 32,768 bytes").
package bufpool

import (
	"fmt"
	"sync"
)

// MinScratch and MaxScratch bound the event engine's scratch buffer: it
// starts at 256 bytes and never grows past 32 KiB. Any sysex or meta-event
// payload longer than MaxScratch is a protocol error (BIG_PAYLOAD), not a
// buffer-pool concern; bufpool only refuses to allocate past the cap.
const (
	MinScratch = 256
	MaxScratch = 32768
)

var sizeClasses = powersOfTwo(MinScratch, MaxScratch)

func powersOfTwo(min, max int) []int {
	var classes []int
	for n := min; n <= max; n *= 2 {
		classes = append(classes, n)
	}
	return classes
}

type classPool struct {
	size int
	pool *sync.Pool
}

// Pool provides sized byte slices backed by reusable buffers.
type Pool struct {
	pools []classPool
}

var defaultPool = New()

// Get acquires a buffer from the package-level default pool.
func Get(size int) []byte {
	return defaultPool.Get(size)
}

// Put releases a buffer back to the package-level default pool.
func Put(buf []byte) {
	defaultPool.Put(buf)
}

// New creates a buffer pool with size classes at each power of two between
// MinScratch and MaxScratch.
func New() *Pool {
	pools := make([]classPool, len(sizeClasses))
	for i, classSize := range sizeClasses {
		size := classSize
		pools[i] = classPool{
			size: size,
			pool: &sync.Pool{
				New: func() any {
					return make([]byte, size)
				},
			},
		}
	}
	return &Pool{pools: pools}
}

// Get returns a byte slice whose length matches the requested size and
// whose capacity is the nearest size class that can accommodate it.
// Requests larger than the largest size class allocate a fresh slice
// without pooling.
func (p *Pool) Get(size int) []byte {
	if p == nil || size <= 0 {
		return nil
	}

	for i := range p.pools {
		class := &p.pools[i]
		if size <= class.size {
			buf := class.pool.Get().([]byte)
			return buf[:size]
		}
	}

	return make([]byte, size)
}

// Put returns buf to the pool if its capacity matches a size class.
// Buffers that do not match any class are discarded. The buffer is zeroed
// before reuse so stale event payload bytes never leak across callers.
func (p *Pool) Put(buf []byte) {
	if p == nil || buf == nil {
		return
	}

	capBuf := cap(buf)
	for i := range p.pools {
		class := &p.pools[i]
		if capBuf == class.size {
			full := buf[:class.size]
			clear(full)
			class.pool.Put(full)
			return
		}
	}
}

// Scratch is the event engine's single reusable payload buffer: it grows by
// doubling from MinScratch and never exceeds MaxScratch. A zero-value
// Scratch backed by the default pool is ready to use.
type Scratch struct {
	pool *Pool
	buf  []byte
}

// NewScratch returns a Scratch backed by pool. A nil pool uses the
// package-level default pool.
func NewScratch(pool *Pool) *Scratch {
	if pool == nil {
		pool = defaultPool
	}
	return &Scratch{pool: pool}
}

// Reserve returns a []byte of exactly n bytes, growing the backing buffer
// (by power-of-two doubling, starting at MinScratch) if needed. It returns
// an error without allocating when n exceeds MaxScratch — the caller (the
// event engine) turns that into a BIG_PAYLOAD protocol error.
func (s *Scratch) Reserve(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("bufpool: negative reservation %d", n)
	}
	if n > MaxScratch {
		return nil, fmt.Errorf("bufpool: reservation %d exceeds cap %d", n, MaxScratch)
	}
	if s.pool == nil {
		s.pool = defaultPool
	}
	if cap(s.buf) < n {
		s.release()
		want := MinScratch
		for want < n {
			want *= 2
		}
		s.buf = s.pool.Get(want)
	}
	return s.buf[:n], nil
}

// Release returns the backing buffer to the pool; Reserve will allocate a
// fresh one on next use.
func (s *Scratch) Release() {
	s.release()
}

func (s *Scratch) release() {
	if s.buf != nil {
		s.pool.Put(s.buf)
		s.buf = nil
	}
}
