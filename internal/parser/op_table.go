package parser

import (
	"tabc/internal/ast"
	"tabc/internal/token"
)

// Precedence tiers, higher binds tighter. Seven tiers in total, the same
// flat table technique a precedence-climbing parser uses for any
// operator set, just sized to this language's smaller grammar.
const (
	precLowest         = 0
	precAssignment     = 10
	precLogicalOr      = 30
	precLogicalAnd     = 40
	precEquality       = 80
	precComparison     = 90
	precAdditive       = 110
	precMultiplicative = 120
)

// binaryPrec returns the precedence of a binary operator token, or
// ok=false if k is not one.
func binaryPrec(k token.Kind) (int, bool) {
	switch k {
	case token.Assign:
		return precAssignment, true
	case token.KwOr:
		return precLogicalOr, true
	case token.KwAnd:
		return precLogicalAnd, true
	case token.EqEq, token.BangEq:
		return precEquality, true
	case token.Lt, token.Gt:
		return precComparison, true
	case token.Plus, token.Minus:
		return precAdditive, true
	case token.Star, token.Slash:
		return precMultiplicative, true
	default:
		return 0, false
	}
}

// binaryExprKind maps a binary operator token to its Expression kind.
// token.Assign is handled separately by the caller, since assignment
// builds an ExprVariableAssignment node rather than a generic binary one.
func binaryExprKind(k token.Kind) ast.ExprKind {
	switch k {
	case token.Plus:
		return ast.ExprPlus
	case token.Minus:
		return ast.ExprMinus
	case token.Star:
		return ast.ExprMultiply
	case token.Slash:
		return ast.ExprDivide
	case token.Lt:
		return ast.ExprLessThan
	case token.Gt:
		return ast.ExprGreaterThan
	case token.EqEq:
		return ast.ExprEqual
	case token.BangEq:
		return ast.ExprNotEqual
	case token.KwAnd:
		return ast.ExprLogicalAnd
	case token.KwOr:
		return ast.ExprLogicalOr
	default:
		return ast.ExprInvalid
	}
}
