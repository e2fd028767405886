// Package metadata is an in-memory implementation of the declarations the
// type system reads: types, generic parameters, fields, methods, properties
// and events. Declarations are indexed by name and reindex themselves when
// renamed.
package metadata
