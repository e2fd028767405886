package collections

import (
	"cmp"
	"slices"
)

type sortedEntry[K cmp.Ordered, V any] struct {
	key   K
	value V
}

// AppendingSortedList keeps entries sorted by key. Insertion in ascending
// key order appends in O(1); out-of-order keys fall back to a binary-search
// insertion. Equal keys keep their insertion order.
type AppendingSortedList[K cmp.Ordered, V any] struct {
	entries []sortedEntry[K, V]
}

// NewAppendingSortedList creates a list with the given capacity.
func NewAppendingSortedList[K cmp.Ordered, V any](capacity int) *AppendingSortedList[K, V] {
	return &AppendingSortedList[K, V]{entries: make([]sortedEntry[K, V], 0, capacity)}
}

// Add inserts v under k.
func (l *AppendingSortedList[K, V]) Add(k K, v V) {
	n := len(l.entries)
	if n == 0 || cmp.Compare(l.entries[n-1].key, k) <= 0 {
		l.entries = append(l.entries, sortedEntry[K, V]{key: k, value: v})
		return
	}

	i := l.upperBound(k)
	l.entries = slices.Insert(l.entries, i, sortedEntry[K, V]{key: k, value: v})
}

// upperBound returns the index of the first entry with a key greater than k.
func (l *AppendingSortedList[K, V]) upperBound(k K) int {
	lo, hi := 0, len(l.entries)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp.Compare(l.entries[mid].key, k) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo
}

// Get returns the first value under k.
func (l *AppendingSortedList[K, V]) Get(k K) (V, bool) {
	i, found := slices.BinarySearchFunc(l.entries, k, func(e sortedEntry[K, V], k K) int {
		return cmp.Compare(e.key, k)
	})
	if !found {
		var zero V
		return zero, false
	}

	return l.entries[i].value, true
}

// Remove deletes the first entry under k.
func (l *AppendingSortedList[K, V]) Remove(k K) bool {
	i, found := slices.BinarySearchFunc(l.entries, k, func(e sortedEntry[K, V], k K) int {
		return cmp.Compare(e.key, k)
	})
	if !found {
		return false
	}

	l.entries = slices.Delete(l.entries, i, i+1)

	return true
}

// At returns the i-th entry in key order.
func (l *AppendingSortedList[K, V]) At(i int) (K, V) {
	e := l.entries[i]
	return e.key, e.value
}

// Len returns the number of entries.
func (l *AppendingSortedList[K, V]) Len() int {
	return len(l.entries)
}

// Values returns the values in key order.
func (l *AppendingSortedList[K, V]) Values() []V {
	out := make([]V, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.value
	}

	return out
}

// Keys returns the keys in order.
func (l *AppendingSortedList[K, V]) Keys() []K {
	out := make([]K, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.key
	}

	return out
}
