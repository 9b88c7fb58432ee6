package bsdiff

import "sync"

// Allocator routes the core's allocations (spec.md §5): NewIndex asks
// IndexSlice for the S+1 suffix index and an S+1 rank array the
// suffix-array builder works in, and each Diff call asks ByteSlice for
// the T+1 scratch buffer. All sizes already account for the "+1 to
// avoid a zero-size allocation" rule, so implementations should not add
// their own padding.
//
// An Allocator that returns an error simulates the "allocation failure"
// branch of spec.md §7 without needing to actually exhaust memory; see
// failingAllocator in alloc_test.go.
type Allocator interface {
	// ByteSlice returns a slice of length n, or an error.
	ByteSlice(n int) ([]byte, error)
	// IndexSlice returns a slice of length n, or an error.
	IndexSlice(n int) ([]int64, error)
}

// defaultAllocator is the ambient, GC-backed allocator used when no
// Allocator option is given. It never fails.
type defaultAllocator struct{}

func (defaultAllocator) ByteSlice(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func (defaultAllocator) IndexSlice(n int) ([]int64, error) {
	return make([]int64, n), nil
}

// PoolAllocator hands out slices from a sync.Pool. A slice goes back
// into the pool only when it is passed to Release; NewIndex and Diff do
// not call Release themselves. It never fails; pooled slices are not
// zeroed, so callers must only rely on slice length, never on leftover
// contents.
type PoolAllocator struct {
	bytes sync.Pool
	index sync.Pool
}

// NewPoolAllocator returns a ready-to-use PoolAllocator.
func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{}
}

func (p *PoolAllocator) ByteSlice(n int) ([]byte, error) {
	if v, ok := p.bytes.Get().([]byte); ok && cap(v) >= n {
		return v[:n], nil
	}
	return make([]byte, n), nil
}

func (p *PoolAllocator) IndexSlice(n int) ([]int64, error) {
	if v, ok := p.index.Get().([]int64); ok && cap(v) >= n {
		return v[:n], nil
	}
	return make([]int64, n), nil
}

// Release returns buf and idx to the pool for reuse by a later call.
// Callers are done with both slices once Release returns.
func (p *PoolAllocator) Release(buf []byte, idx []int64) {
	if buf != nil {
		p.bytes.Put(buf)
	}
	if idx != nil {
		p.index.Put(idx)
	}
}
