package diag

import "fmt"

// Code namespaces diagnostics by pipeline stage, the way the stages
// themselves are separated: a reader can tell a lex error from a type
// error by the thousands digit alone.
type Code uint16

const (
	Unknown Code = 0

	// Lexical errors (1000s).
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumberSuffix    Code = 1004

	// Syntax errors (2000s).
	SynUnexpectedToken    Code = 2001
	SynUnknownType        Code = 2002
	SynMalformedDecl      Code = 2003
	SynDuplicateField     Code = 2004
	SynDuplicateArg       Code = 2005
	SynDuplicateFunc      Code = 2006
	SynBadArraySize       Code = 2007
	SynUnexpectedIndent   Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynExpectIdentifier   Code = 2010

	// Type errors (3000s).
	TypeUnknownVariable   Code = 3001
	TypeUnknownFunction   Code = 3002
	TypeMismatch          Code = 3003
	TypeArityMismatch     Code = 3004
	TypeNotComparable     Code = 3005
	TypeNotBoolean        Code = 3006
	TypeBadLValue         Code = 3007
	TypeBadOperand        Code = 3008
	TypeUnknownField      Code = 3009
	TypeVoidVariable      Code = 3010
	TypeNotAPointer       Code = 3011
	TypeNotAnIndexable    Code = 3012
	TypeNotARecord        Code = 3013
	TypeBadAddressOf      Code = 3014
	TypeBadNegateOperand  Code = 3015
	TypeBadReturn         Code = 3016
	TypeUnknownExternName Code = 3017

	// Internal invariant failures (9000s) — a bug in this compiler, not in
	// the user's program.
	InternalBadShape Code = 9001
)

func (c Code) String() string {
	switch c {
	case Unknown:
		return "unknown"
	case LexUnknownChar:
		return "lex-unknown-char"
	case LexUnterminatedString:
		return "lex-unterminated-string"
	case LexUnterminatedChar:
		return "lex-unterminated-char"
	case LexBadNumberSuffix:
		return "lex-bad-number-suffix"
	case SynUnexpectedToken:
		return "syn-unexpected-token"
	case SynUnknownType:
		return "syn-unknown-type"
	case SynMalformedDecl:
		return "syn-malformed-decl"
	case SynDuplicateField:
		return "syn-duplicate-field"
	case SynDuplicateArg:
		return "syn-duplicate-arg"
	case SynDuplicateFunc:
		return "syn-duplicate-func"
	case SynBadArraySize:
		return "syn-bad-array-size"
	case SynUnexpectedIndent:
		return "syn-unexpected-indent"
	case SynUnexpectedTopLevel:
		return "syn-unexpected-top-level"
	case SynExpectIdentifier:
		return "syn-expect-identifier"
	case TypeUnknownVariable:
		return "type-unknown-variable"
	case TypeUnknownFunction:
		return "type-unknown-function"
	case TypeMismatch:
		return "type-mismatch"
	case TypeArityMismatch:
		return "type-arity-mismatch"
	case TypeNotComparable:
		return "type-not-comparable"
	case TypeNotBoolean:
		return "type-not-boolean"
	case TypeBadLValue:
		return "type-bad-lvalue"
	case TypeBadOperand:
		return "type-bad-operand"
	case TypeUnknownField:
		return "type-unknown-field"
	case TypeVoidVariable:
		return "type-void-variable"
	case TypeNotAPointer:
		return "type-not-a-pointer"
	case TypeNotAnIndexable:
		return "type-not-an-indexable"
	case TypeNotARecord:
		return "type-not-a-record"
	case TypeBadAddressOf:
		return "type-bad-address-of"
	case TypeBadNegateOperand:
		return "type-bad-negate-operand"
	case TypeBadReturn:
		return "type-bad-return"
	case TypeUnknownExternName:
		return "type-unknown-extern-name"
	case InternalBadShape:
		return "internal-bad-shape"
	default:
		return fmt.Sprintf("Code(%d)", uint16(c))
	}
}

// Stage reports which pipeline stage a code belongs to, derived from its
// numeric range.
func (c Code) Stage() string {
	switch {
	case c >= 1000 && c < 2000:
		return "lex"
	case c >= 2000 && c < 3000:
		return "syntax"
	case c >= 3000 && c < 9000:
		return "type"
	case c >= 9000:
		return "internal"
	default:
		return "unknown"
	}
}
