package typesys

import "clr-typesys/internal/diagnostic"

func checkTranslation(op string, from, to *Module) error {
	if to == nil {
		return diagnostic.InvalidArgument(op, "nil target module")
	}

	if from.domain != to.domain {
		return diagnostic.DomainMismatch(op, "module %s of domain %q cannot reach module %s of domain %q",
			from.name, from.domain.name, to.name, to.domain.name)
	}

	return nil
}

func translateAll(ts []Type, target *Module) ([]Type, error) {
	if ts == nil {
		return nil, nil
	}

	out := make([]Type, len(ts))
	for i, t := range ts {
		tt, err := t.Translate(target)
		if err != nil {
			return nil, err
		}

		out[i] = tt
	}

	return out, nil
}

// Translate moves t into target. It is nil-safe and returns t itself when t
// already belongs to target.
func Translate(t Type, target *Module) (Type, error) {
	if t == nil {
		return nil, nil
	}

	return t.Translate(target)
}

// MustTranslate is Translate that panics on failure.
func MustTranslate(t Type, target *Module) Type {
	tt, err := Translate(t, target)
	if err != nil {
		panic(err)
	}

	return tt
}
