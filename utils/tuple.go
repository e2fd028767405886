package utils

// Second returns the second of two values, e.g. the result of a two-valued call.
func Second[T any](_ any, t T) T { return t }

// Unpack2 returns the first two elements of s, zero-filled when s is shorter.
func Unpack2[Slice ~[]T, T any](s Slice) (first T, second T) {
	switch len(s) {
	default:
		return s[0], s[1]
	case 0:
		return
	case 1:
		first = s[0]
		return
	}
}

// Reversed returns a copy of s in reverse order.
func Reversed[Slice ~[]T, T any](s Slice) Slice {
	out := make(Slice, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}

	return out
}
