package diagnostic

import (
	"errors"
	"fmt"
)

// Kind enumerates spec.md §7's abstract error kinds.
type Kind int

const (
	UndefinedSymbol Kind = iota
	RedefiningSymbol
	AmbiguousSymbol
	RecursiveModule
	CircularDefine
	RecursiveAssignment
	TypeMismatch
	InvalidRange
	OutOfBounds
	NonConstant
	NonDeterministicWithoutLayer
	InternalInconsistency
)

func (k Kind) String() string {
	switch k {
	case UndefinedSymbol:
		return "undefined-symbol"
	case RedefiningSymbol:
		return "redefining-symbol"
	case AmbiguousSymbol:
		return "ambiguous-symbol"
	case RecursiveModule:
		return "recursive-module"
	case CircularDefine:
		return "circular-define"
	case RecursiveAssignment:
		return "recursive-assignment"
	case TypeMismatch:
		return "type-mismatch"
	case InvalidRange:
		return "invalid-range"
	case OutOfBounds:
		return "out-of-bounds"
	case NonConstant:
		return "non-constant"
	case NonDeterministicWithoutLayer:
		return "non-deterministic-without-layer"
	case InternalInconsistency:
		return "internal-inconsistency"
	default:
		return "unknown-error-kind"
	}
}

// Error is the single structured error type every core package
// returns for a user-visible failure (spec.md §7): every error is
// fatal for the current top-level request, carries the original
// source line, and formats as a single-line diagnostic.
type Error struct {
	Kind    Kind
	File    string
	Line    int
	Message string
	Wrapped error
}

func New(kind Kind, file string, line int, message string) *Error {
	return &Error{Kind: kind, File: file, Line: line, Message: message}
}

// Wrap attaches an underlying error for errors.Unwrap/errors.As, while
// still presenting the spec.md §7 single-line diagnostic text.
func Wrap(kind Kind, file string, line int, message string, err error) *Error {
	return &Error{Kind: kind, File: file, Line: line, Message: message, Wrapped: err}
}

// Error formats spec.md §7's user-visible failure line:
// "Error at <file>:<line>: <message>".
func (e *Error) Error() string {
	return fmt.Sprintf("Error at %s:%d: %s", e.File, e.Line, e.Message)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is a *Error of the same Kind, so callers
// can write errors.Is(err, diagnostic.New(diagnostic.CircularDefine, "", 0, ""))
// or, more idiomatically, compare against a Kind via IsKind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

// IsKind reports whether err is, or wraps, a *diagnostic.Error of the
// given kind (a thin errors.As wrapper, since Kind comparison needs
// the concrete type's field, not just identity).
func IsKind(err error, kind Kind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}
