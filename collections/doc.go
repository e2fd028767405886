// Package collections provides the indexed containers used for declaration
// lookup by name and ordinal.
//
// Key types:
//   - Index: items keyed by one of their own properties, with unique or
//     multi-valued backing, re-indexed on NotifyKeyChanged
//   - MultiDict: key to ordered list of values
//   - AppendingSortedList: sorted by key, O(1) for ascending insertion
//   - Singleton: a list of at most one element, optionally read-only
//   - ExtensibleArray: segmented array with serialized writers and lock-free reads
//
// None of these types carry type-system semantics.
package collections
