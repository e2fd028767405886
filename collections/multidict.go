package collections

import "slices"

// MultiDict maps each key to an ordered list of values.
type MultiDict[K comparable, V comparable] struct {
	entries map[K][]V
	count   int
}

// NewMultiDict creates an empty MultiDict.
func NewMultiDict[K comparable, V comparable]() *MultiDict[K, V] {
	return &MultiDict[K, V]{entries: make(map[K][]V)}
}

// Add appends v to the values of k.
func (d *MultiDict[K, V]) Add(k K, v V) {
	if d.entries == nil {
		d.entries = make(map[K][]V)
	}

	d.entries[k] = append(d.entries[k], v)
	d.count++
}

// Remove deletes the first occurrence of v under k.
func (d *MultiDict[K, V]) Remove(k K, v V) bool {
	values := d.entries[k]

	i := slices.Index(values, v)
	if i < 0 {
		return false
	}

	values = slices.Delete(values, i, i+1)
	if len(values) == 0 {
		delete(d.entries, k)
	} else {
		d.entries[k] = values
	}

	d.count--

	return true
}

// Get returns the values of k in insertion order. The result must not be modified.
func (d *MultiDict[K, V]) Get(k K) []V {
	return d.entries[k]
}

// Contains reports whether k has at least one value.
func (d *MultiDict[K, V]) Contains(k K) bool {
	return len(d.entries[k]) > 0
}

// Len returns the total number of values.
func (d *MultiDict[K, V]) Len() int {
	return d.count
}

// KeyCount returns the number of distinct keys.
func (d *MultiDict[K, V]) KeyCount() int {
	return len(d.entries)
}

// Keys returns the keys in unspecified order.
func (d *MultiDict[K, V]) Keys() []K {
	keys := make([]K, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}

	return keys
}

// Clear removes everything.
func (d *MultiDict[K, V]) Clear() {
	clear(d.entries)
	d.count = 0
}
