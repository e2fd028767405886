package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"clr-typesys/internal/common"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrOutOfRange       = fmt.Errorf("%w: out of range", ErrInvalidArgument)
	ErrDomainMismatch   = fmt.Errorf("%w: modules belong to different domains", ErrInvalidArgument)
	ErrNotFound         = errors.New("not found")
	ErrNotSupported     = errors.New("operation not supported")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Kind classifies an Error.
type Kind int

const (
	KindInvalidArgument Kind = iota
	KindOutOfRange
	KindDomainMismatch
	KindNotFound
	KindNotSupported
	KindInvalidOperation
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid-argument"
	case KindOutOfRange:
		return "out-of-range"
	case KindDomainMismatch:
		return "domain-mismatch"
	case KindNotFound:
		return "not-found"
	case KindNotSupported:
		return "not-supported"
	case KindInvalidOperation:
		return "invalid-operation"
	default:
		return common.UnknownStr
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindOutOfRange:
		return ErrOutOfRange
	case KindDomainMismatch:
		return ErrDomainMismatch
	case KindNotFound:
		return ErrNotFound
	case KindNotSupported:
		return ErrNotSupported
	case KindInvalidOperation:
		return ErrInvalidOperation
	default:
		return ErrInvalidArgument
	}
}

// Error is a single failure of the type system.
type Error struct {
	// Kind of the failure.
	Kind Kind
	// Op names the operation that failed, e.g. "Translate".
	Op string
	// Message is the human-readable description.
	Message string
	// Suggestions are close alternatives, filled by name lookups.
	Suggestions []string
}

// Error returns a formatted error string.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}

	b.WriteString(e.Kind.sentinel().Error())

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(e.Suggestions, ", "))
		b.WriteString("?)")
	}

	return b.String()
}

// Unwrap exposes the kind's sentinel so errors.Is works on the taxonomy.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// New creates an Error of the given kind.
func New(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidArgument creates a precondition-violation error.
func InvalidArgument(op, format string, args ...any) *Error {
	return New(KindInvalidArgument, op, format, args...)
}

// OutOfRange creates an out-of-range precondition error.
func OutOfRange(op, format string, args ...any) *Error {
	return New(KindOutOfRange, op, format, args...)
}

// DomainMismatch creates an error for a translation across domains.
func DomainMismatch(op, format string, args ...any) *Error {
	return New(KindDomainMismatch, op, format, args...)
}

// NotSupported creates an unsupported-operation error.
func NotSupported(op, format string, args ...any) *Error {
	return New(KindNotSupported, op, format, args...)
}

// InvalidOperation creates a read-only or use-after-close error.
func InvalidOperation(op, format string, args ...any) *Error {
	return New(KindInvalidOperation, op, format, args...)
}

// NotFound creates a lookup failure carrying suggestions.
func NotFound(op, name string, suggestions []string) *Error {
	return &Error{
		Kind:        KindNotFound,
		Op:          op,
		Message:     fmt.Sprintf("%q", name),
		Suggestions: suggestions,
	}
}

// KindOf returns the kind of err if it is an *Error.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}

	return 0, false
}

// Recover converts a panic carrying an error into a returned error. Other
// panics are re-raised. Use as: defer diagnostic.Recover(&err).
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}

	if e, ok := r.(error); ok {
		*err = e
		return
	}

	panic(r)
}
