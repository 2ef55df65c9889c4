package lisp

import "fmt"

// ErrorKind enumerates the error values the evaluator and builtins can
// produce — spec.md §7's "None, Generic, Syntax, NotBound, Arguments,
// Type, Memory, TODO".
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrGeneric
	ErrSyntax
	ErrNotBound
	ErrArguments
	ErrType
	ErrMemory
	ErrTODO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrGeneric:
		return "generic"
	case ErrSyntax:
		return "syntax error"
	case ErrNotBound:
		return "symbol not bound"
	case ErrArguments:
		return "invalid arguments"
	case ErrType:
		return "type error"
	case ErrMemory:
		return "memory error"
	case ErrTODO:
		return "not yet implemented"
	default:
		return "unrecognized error"
	}
}

// Error is a value, not a native panic/exception, per spec.md §7: every
// error carries the offending form (or Nil), a short message, and an
// optional "did you mean" suggestion filled in by the suggestion engine
// (suggest.go) when one is available. Grounded on
// clarete-langlang/go/errors.go's ParsingError, which carries the same
// message-plus-context shape for a typed, value-carrying error.
type Error struct {
	Kind       ErrorKind
	Value      Value
	Message    string
	Suggestion string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (did you mean %q?)", e.Kind, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, value Value, message string) *Error {
	if value == nil {
		value = Nil
	}
	return &Error{Kind: kind, Value: value, Message: message}
}

func argumentsError(message string) *Error {
	return newError(ErrArguments, Nil, message)
}

func typeError(value Value, message string) *Error {
	return newError(ErrType, value, message)
}
