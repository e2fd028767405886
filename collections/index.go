package collections

import (
	"iter"
	"slices"

	"clr-typesys/internal/diagnostic"
	"clr-typesys/utils"
)

// backing stores an Index's key to item association.
type backing[K comparable, V comparable] interface {
	add(k K, v V) error
	remove(k K, v V) bool
	get(k K) (V, bool)
	getAll(k K) []V
	keys() []K
	clear()
}

type uniqueBacking[K comparable, V comparable] map[K]V

func (b uniqueBacking[K, V]) add(k K, v V) error {
	if _, exists := b[k]; exists {
		return diagnostic.InvalidArgument("Index.Add", "duplicate key %v", k)
	}

	b[k] = v

	return nil
}

func (b uniqueBacking[K, V]) remove(k K, v V) bool {
	if cur, ok := b[k]; ok && cur == v {
		delete(b, k)
		return true
	}

	return false
}

func (b uniqueBacking[K, V]) get(k K) (V, bool) {
	v, ok := b[k]
	return v, ok
}

func (b uniqueBacking[K, V]) getAll(k K) []V {
	if v, ok := b[k]; ok {
		return []V{v}
	}

	return nil
}

func (b uniqueBacking[K, V]) keys() []K {
	keys := make([]K, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}

	return keys
}

func (b uniqueBacking[K, V]) clear() { clear(b) }

type multiBacking[K comparable, V comparable] struct {
	dict *MultiDict[K, V]
}

func (b multiBacking[K, V]) add(k K, v V) error {
	b.dict.Add(k, v)
	return nil
}

func (b multiBacking[K, V]) remove(k K, v V) bool { return b.dict.Remove(k, v) }

func (b multiBacking[K, V]) get(k K) (V, bool) {
	values := b.dict.Get(k)
	if len(values) == 0 {
		var zero V
		return zero, false
	}

	return values[0], true
}

func (b multiBacking[K, V]) getAll(k K) []V { return b.dict.Get(k) }
func (b multiBacking[K, V]) keys() []K      { return b.dict.Keys() }
func (b multiBacking[K, V]) clear()         { b.dict.Clear() }

// Index keeps items addressable by a key computed from the item itself.
// When an item's key-producing property changes the owner must call
// NotifyKeyChanged so the index can move the item. The backing store is
// allocated on first use and released by Close.
type Index[K comparable, V comparable] struct {
	keyOf   func(V) K
	multi   bool
	backing backing[K, V]
	items   []V
	closed  bool
}

// NewIndex creates an index whose keys must be unique.
func NewIndex[K comparable, V comparable](keyOf func(V) K) *Index[K, V] {
	if keyOf == nil {
		panic(diagnostic.InvalidArgument("NewIndex", "key function cannot be nil"))
	}

	return &Index[K, V]{keyOf: keyOf}
}

// NewMultiIndex creates an index that allows several items per key.
func NewMultiIndex[K comparable, V comparable](keyOf func(V) K) *Index[K, V] {
	idx := NewIndex(keyOf)
	idx.multi = true

	return idx
}

func (x *Index[K, V]) open(op string) backing[K, V] {
	if x.closed {
		panic(diagnostic.InvalidOperation(op, "index used after Close"))
	}

	if x.backing == nil {
		if x.multi {
			x.backing = multiBacking[K, V]{dict: NewMultiDict[K, V]()}
		} else {
			x.backing = make(uniqueBacking[K, V])
		}
	}

	return x.backing
}

// IsMulti reports whether the index allows several items per key.
func (x *Index[K, V]) IsMulti() bool {
	return x.multi
}

// Add indexes v under its current key.
func (x *Index[K, V]) Add(v V) error {
	if err := x.open("Index.Add").add(x.keyOf(v), v); err != nil {
		return err
	}

	x.items = append(x.items, v)

	return nil
}

// Remove drops v from the index.
func (x *Index[K, V]) Remove(v V) bool {
	if !x.open("Index.Remove").remove(x.keyOf(v), v) {
		return false
	}

	if i := slices.Index(x.items, v); i >= 0 {
		x.items = slices.Delete(x.items, i, i+1)
	}

	return true
}

// NotifyKeyChanged moves v from oldKey to its current key.
func (x *Index[K, V]) NotifyKeyChanged(v V, oldKey K) error {
	b := x.open("Index.NotifyKeyChanged")

	newKey := x.keyOf(v)
	if newKey == oldKey {
		return nil
	}

	if !b.remove(oldKey, v) {
		return diagnostic.InvalidArgument("Index.NotifyKeyChanged", "item not indexed under %v", oldKey)
	}

	if err := b.add(newKey, v); err != nil {
		// restore the previous association
		_ = b.add(oldKey, v)
		return err
	}

	return nil
}

// Get returns the item under k; for multi-valued indexes the first one.
func (x *Index[K, V]) Get(k K) (V, bool) {
	return x.open("Index.Get").get(k)
}

// GetAll returns every item under k.
func (x *Index[K, V]) GetAll(k K) []V {
	return x.open("Index.GetAll").getAll(k)
}

// Contains reports whether any item is indexed under k.
func (x *Index[K, V]) Contains(k K) bool {
	return utils.Second(x.Get(k))
}

// Keys returns the indexed keys in unspecified order.
func (x *Index[K, V]) Keys() []K {
	return x.open("Index.Keys").keys()
}

// Len returns the number of items.
func (x *Index[K, V]) Len() int {
	x.open("Index.Len")
	return len(x.items)
}

// All iterates the items in insertion order.
func (x *Index[K, V]) All() iter.Seq[V] {
	x.open("Index.All")

	return func(yield func(V) bool) {
		for _, v := range x.items {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns a copy of the items in insertion order.
func (x *Index[K, V]) Slice() []V {
	x.open("Index.Slice")
	return slices.Clone(x.items)
}

// Close releases the backing store. Any later use panics.
func (x *Index[K, V]) Close() {
	if x.closed {
		return
	}

	if x.backing != nil {
		x.backing.clear()
		x.backing = nil
	}

	x.items = nil
	x.closed = true
}
