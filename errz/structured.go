// Package errz defines the typed errors raised while decompiling a method
// body.
package errz

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrStackUnderflow indicates a pop or peek on an empty symbolic stack,
	// or a close of an empty block stack.
	ErrStackUnderflow ErrorKind = iota
	// ErrMalformedRegion indicates an exception region whose boundaries do
	// not resolve to instructions or do not nest.
	ErrMalformedRegion
	// ErrUnsupportedInstruction indicates a deliberately unimplemented opcode.
	ErrUnsupportedInstruction
	// ErrMemberNotReadable indicates a method without a readable body.
	ErrMemberNotReadable
	// ErrMalformedMember indicates a resolver returned an unusable shape.
	ErrMalformedMember
	// ErrSyntax indicates an assembly listing that could not be parsed.
	ErrSyntax
	// ErrInvalidOperand indicates an operand that names a missing parameter,
	// local or branch target.
	ErrInvalidOperand
	// ErrHalted indicates an observer stopped the decompilation.
	ErrHalted
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrStackUnderflow:
		return "stack underflow"
	case ErrMalformedRegion:
		return "malformed region"
	case ErrUnsupportedInstruction:
		return "unsupported instruction"
	case ErrMemberNotReadable:
		return "member not readable"
	case ErrMalformedMember:
		return "malformed member"
	case ErrSyntax:
		return "syntax error"
	case ErrInvalidOperand:
		return "invalid operand"
	case ErrHalted:
		return "halted"
	default:
		return "error"
	}
}

// DecompileError is an error raised at a specific point of the element
// stream.
type DecompileError struct {
	Message string
	Kind    ErrorKind
	Label   string // label of the instruction being processed, if any
	Cause   error
}

// Error implements the error interface.
func (e *DecompileError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Label != "" {
		msg = fmt.Sprintf("%s (at %s)", msg, e.Label)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *DecompileError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether the error rules out a partial result. Unsupported
// instructions and unreadable members are always fatal; the remaining kinds
// may be recovered from in lenient mode.
func (e *DecompileError) IsFatal() bool {
	switch e.Kind {
	case ErrUnsupportedInstruction, ErrMemberNotReadable:
		return true
	default:
		return false
	}
}

// WithCause wraps the error with a cause.
func (e *DecompileError) WithCause(cause error) *DecompileError {
	e.Cause = cause
	return e
}

// New creates a new DecompileError.
func New(kind ErrorKind, label, message string) *DecompileError {
	return &DecompileError{Kind: kind, Label: label, Message: message}
}

// Newf creates a new DecompileError with a formatted message.
func Newf(kind ErrorKind, label, format string, args ...any) *DecompileError {
	return &DecompileError{Kind: kind, Label: label, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether any error in err's chain is a DecompileError of the
// given kind.
func Is(err error, kind ErrorKind) bool {
	var de *DecompileError
	if !errors.As(err, &de) {
		return false
	}
	if de.Kind == kind {
		return true
	}
	return de.Cause != nil && Is(de.Cause, kind)
}

// IsFatal reports whether err contains a fatal DecompileError. Errors of any
// other type are treated as fatal.
func IsFatal(err error) bool {
	var de *DecompileError
	if !errors.As(err, &de) {
		return true
	}
	return de.IsFatal()
}
