package diag

import (
	"fmt"

	"tabc/internal/source"
)

// Error is the single error type the core compiler ever returns. It
// carries enough structure (a Code, a Position, an optional enclosing function
// name) for internal/diagfmt to render a file:line-anchored message, but it
// also satisfies the plain error interface so callers that don't care about
// structure can just propagate it with %w.
//
// The core never accumulates diagnostics: the first Error returned aborts
// the pipeline (see the propagation policy in the validator and parser).
type Error struct {
	Code Code
	Span source.Position
	// Func is the enclosing function name, set for every type error; empty
	// for lex and parse errors, which have no function context yet.
	Func string
	Msg  string
}

func (e *Error) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: in function %s: %s", e.Code, e.Func, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// NewLexError builds a fatal lexical diagnostic.
func NewLexError(code Code, span source.Position, msg string) *Error {
	return &Error{Code: code, Span: span, Msg: msg}
}

// NewSyntaxError builds a fatal parse diagnostic.
func NewSyntaxError(code Code, span source.Position, msg string) *Error {
	return &Error{Code: code, Span: span, Msg: msg}
}

// NewTypeError builds a fatal validator diagnostic, prefixed with the
// enclosing function's name per the error-handling design.
func NewTypeError(fn string, code Code, span source.Position, msg string) *Error {
	return &Error{Code: code, Span: span, Func: fn, Msg: msg}
}

// NewInternalError reports a violated AST shape invariant: a bug in this
// compiler, not in the user's program.
func NewInternalError(span source.Position, msg string) *Error {
	return &Error{Code: InternalBadShape, Span: span, Msg: "internal error: " + msg}
}

// Internal reports whether e is an internal invariant failure.
func (e *Error) Internal() bool { return e.Code.Stage() == "internal" }
