package collections

import "clr-typesys/internal/diagnostic"

// Singleton is a list holding at most one element.
type Singleton[T any] struct {
	value    T
	has      bool
	readOnly bool
}

// NewSingleton returns a read-only list holding v.
func NewSingleton[T any](v T) *Singleton[T] {
	return &Singleton[T]{value: v, has: true, readOnly: true}
}

// NewEmptySingleton returns a writable, empty list.
func NewEmptySingleton[T any]() *Singleton[T] {
	return &Singleton[T]{}
}

// IsReadOnly reports whether the list rejects mutation.
func (s *Singleton[T]) IsReadOnly() bool {
	return s.readOnly
}

// Add stores v. It fails when the list is read-only or already holds a value.
func (s *Singleton[T]) Add(v T) error {
	if s.readOnly {
		return diagnostic.InvalidOperation("Singleton.Add", "list is read-only")
	}

	if s.has {
		return diagnostic.InvalidOperation("Singleton.Add", "list already holds a value")
	}

	s.value, s.has = v, true

	return nil
}

// Clear empties a writable list.
func (s *Singleton[T]) Clear() error {
	if s.readOnly {
		return diagnostic.InvalidOperation("Singleton.Clear", "list is read-only")
	}

	var zero T
	s.value, s.has = zero, false

	return nil
}

// Len returns 0 or 1.
func (s *Singleton[T]) Len() int {
	if s.has {
		return 1
	}

	return 0
}

// At returns the element at index 0.
func (s *Singleton[T]) At(i int) T {
	if i != 0 || !s.has {
		panic(diagnostic.OutOfRange("Singleton.At", "index %d of %d", i, s.Len()))
	}

	return s.value
}

// Slice returns the content as a fresh slice.
func (s *Singleton[T]) Slice() []T {
	if !s.has {
		return nil
	}

	return []T{s.value}
}
