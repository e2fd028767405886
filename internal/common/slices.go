package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Map applies fn to every element, returning nil for an empty input.
func Map[S ~[]E, E, R any](s S, fn func(E) R) []R {
	if len(s) == 0 {
		return nil
	}

	out := make([]R, len(s))
	for i, e := range s {
		out[i] = fn(e)
	}

	return out
}

// MapSame applies fn to every element and reports whether any result differs
// from its input. When nothing changed the original slice is returned.
func MapSame[S ~[]E, E comparable](s S, fn func(E) E) (S, bool) {
	var out S

	for i, e := range s {
		r := fn(e)
		if out == nil {
			if r == e {
				continue
			}

			out = make(S, len(s))
			copy(out, s[:i])
		}

		out[i] = r
	}

	if out == nil {
		return s, false
	}

	return out, true
}
