// Package diagnostic provides the error taxonomy of the type system.
//
// Failures fall into three kinds:
//   - Precondition violations: invalid arguments, domain mismatches,
//     out-of-range generic ordinals. Programming errors; callers are not
//     expected to recover from them.
//   - Unsupported operations: a genuine gap, distinct from misuse.
//   - Invalid operations: mutating a structure built as read-only, or using
//     a structure after it was closed.
//
// Every Error matches its kind's sentinel through errors.Is.
package diagnostic
