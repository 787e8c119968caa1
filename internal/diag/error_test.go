package diag

import (
	"errors"
	"testing"

	"tabc/internal/source"
)

func TestErrorMessageIncludesFunctionName(t *testing.T) {
	err := NewTypeError("f", TypeMismatch, source.Position{}, "cannot assign bool to i64")
	if got := err.Error(); got != "type-mismatch: in function f: cannot assign bool to i64" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrorMessageWithoutFunctionName(t *testing.T) {
	err := NewLexError(LexUnknownChar, source.Position{}, "unexpected '!'")
	if got := err.Error(); got != "lex-unknown-char: unexpected '!'" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestInternalClassification(t *testing.T) {
	err := NewInternalError(source.Position{}, "binary op with 1 children")
	if !err.Internal() {
		t.Fatal("expected Internal() to be true")
	}
	var asErr *Error
	if !errors.As(error(err), &asErr) {
		t.Fatal("expected errors.As to succeed")
	}
}
