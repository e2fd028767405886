// Package match provides name comparison helpers for member and type lookup.
//
// Key functions:
//   - EqualName: ordinal or case-insensitive identifier comparison
//   - Distance: edit distance between two names
//   - Suggest: ranks near-miss candidates for "not found" diagnostics
package match
