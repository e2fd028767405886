package collections

import (
	"sync"
	"sync/atomic"

	"modernc.org/mathutil"

	"clr-typesys/internal/diagnostic"
)

const defaultFirstSegment = 16

// ExtensibleArray is an array made of segments of doubling size. Existing
// elements never move, so readers need no lock. Writers are serialized, and
// the length is published only after the element is stored.
type ExtensibleArray[T any] struct {
	first    int // size of segment 0, a power of two
	segments atomic.Pointer[[][]T]
	count    atomic.Int64
	write    sync.Mutex
}

// NewExtensibleArray creates an array whose first segment holds at least
// firstSegment elements.
func NewExtensibleArray[T any](firstSegment int) *ExtensibleArray[T] {
	first := defaultFirstSegment
	if firstSegment > 0 {
		first = 1 << mathutil.BitLen(firstSegment-1)
	}

	a := &ExtensibleArray[T]{first: first}
	a.segments.Store(&[][]T{})

	return a
}

// locate maps an index to its segment and offset.
func (a *ExtensibleArray[T]) locate(i int) (segment, offset int) {
	n := i + a.first
	segment = mathutil.BitLen(n) - mathutil.BitLen(a.first)
	offset = n - a.first<<segment

	return segment, offset
}

// store writes v at index i, allocating segments as needed. The write lock
// must be held.
func (a *ExtensibleArray[T]) store(i int, v T) {
	seg, off := a.locate(i)

	segments := *a.segments.Load()
	if seg >= len(segments) {
		grown := make([][]T, seg+1)
		copy(grown, segments)

		for s := len(segments); s <= seg; s++ {
			grown[s] = make([]T, a.first<<s)
		}

		a.segments.Store(&grown)
		segments = grown
	}

	segments[seg][off] = v
}

// Set stores v at index i, growing the array as needed. Overwriting an index
// that readers may load concurrently needs external synchronization.
func (a *ExtensibleArray[T]) Set(i int, v T) {
	if i < 0 {
		panic(diagnostic.OutOfRange("ExtensibleArray.Set", "negative index %d", i))
	}

	a.write.Lock()
	defer a.write.Unlock()

	a.store(i, v)

	if int64(i) >= a.count.Load() {
		a.count.Store(int64(i) + 1)
	}
}

// Append stores v after the last element and returns its index.
func (a *ExtensibleArray[T]) Append(v T) int {
	a.write.Lock()
	defer a.write.Unlock()

	i := int(a.count.Load())
	a.store(i, v)
	a.count.Store(int64(i) + 1)

	return i
}

// Get returns the element at index i.
func (a *ExtensibleArray[T]) Get(i int) T {
	if i < 0 || i >= a.Len() {
		panic(diagnostic.OutOfRange("ExtensibleArray.Get", "index %d of %d", i, a.Len()))
	}

	segments := *a.segments.Load()
	seg, off := a.locate(i)

	return segments[seg][off]
}

// Len returns one past the highest index written.
func (a *ExtensibleArray[T]) Len() int {
	return int(a.count.Load())
}

// Capacity returns the number of allocated slots.
func (a *ExtensibleArray[T]) Capacity() int {
	total := 0
	for _, s := range *a.segments.Load() {
		total += len(s)
	}

	return total
}
