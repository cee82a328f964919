// Package errors defines the five error kinds the engine can raise, per
// the propagation policy: every analysis aborts on the first error and
// surfaces it verbatim, never as a partial result.
package errors

import "fmt"

// Kind classifies an Error into one of the five taxonomy buckets.
type Kind int

const (
	// Lexical covers unknown tokens and unterminated braces.
	Lexical Kind = iota
	// Syntactic covers unexpected tokens, missing arguments, unmatched delimiters.
	Syntactic
	// SemanticParse covers reserved-name misuse and function arity mismatches.
	SemanticParse
	// Scope covers free-variable evaluation and differentiation w.r.t. an absent variable.
	Scope
	// Algorithmic covers degree/iteration caps and internal invariant violations.
	Algorithmic
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Syntactic:
		return "syntactic"
	case SemanticParse:
		return "semantic-parse"
	case Scope:
		return "scope"
	case Algorithmic:
		return "algorithmic"
	default:
		return fmt.Sprintf("unknown-kind(%d)", int(k))
	}
}

// Pos is a byte-offset position into the original input, or -1 if unknown.
type Pos int

// NoPos marks an error with no associated input position.
const NoPos Pos = -1

// Error is the single error type surfaced across the engine's public
// boundary: every domain error carries a Kind, a human-readable message,
// and an optional position.
type Error struct {
	Kind    Kind
	Message string
	Pos     Pos
	wrapped error
}

func (e *Error) Error() string {
	if e.Pos == NoPos {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s error at position %d: %s", e.Kind, int(e.Pos), e.Message)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// New builds a positionless Error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: NoPos}
}

// At builds an Error of the given kind anchored to a position.
func At(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Wrap attaches a Kind/message to an existing error, preserving it for Unwrap.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: NoPos, wrapped: err}
}
