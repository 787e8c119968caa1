package ast

import (
	"fmt"

	"tabc/internal/source"
	"tabc/internal/types"
)

// ExprKind discriminates the shape of one Expression node. The set is
// closed and mirrors the language's surface grammar one-to-one: there is
// no separate statement/expression split, since every construct (including
// control flow) is itself an Expression.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLiteral
	ExprVariable
	ExprVariableDeclaration
	ExprVariableAssignment
	ExprReturn
	ExprConditional
	ExprForLoop
	ExprContinue
	ExprBreak
	ExprScope
	ExprPlus
	ExprMinus
	ExprMultiply
	ExprDivide
	ExprLessThan
	ExprGreaterThan
	ExprEqual
	ExprNotEqual
	ExprLogicalAnd
	ExprLogicalOr
	ExprPostIncrement
	ExprFunctionCall
	ExprCallee
	ExprPointerDereference
	ExprArraySubscript
	ExprAddressOf
	ExprNegate
	ExprMemberAccess
)

func (k ExprKind) String() string {
	switch k {
	case ExprInvalid:
		return "Invalid"
	case ExprLiteral:
		return "Literal"
	case ExprVariable:
		return "Variable"
	case ExprVariableDeclaration:
		return "VariableDeclaration"
	case ExprVariableAssignment:
		return "VariableAssignment"
	case ExprReturn:
		return "Return"
	case ExprConditional:
		return "Conditional"
	case ExprForLoop:
		return "ForLoop"
	case ExprContinue:
		return "Continue"
	case ExprBreak:
		return "Break"
	case ExprScope:
		return "Scope"
	case ExprPlus:
		return "Plus"
	case ExprMinus:
		return "Minus"
	case ExprMultiply:
		return "Multiply"
	case ExprDivide:
		return "Divide"
	case ExprLessThan:
		return "LessThan"
	case ExprGreaterThan:
		return "GreaterThan"
	case ExprEqual:
		return "Equal"
	case ExprNotEqual:
		return "NotEqual"
	case ExprLogicalAnd:
		return "LogicalAnd"
	case ExprLogicalOr:
		return "LogicalOr"
	case ExprPostIncrement:
		return "PostIncrement"
	case ExprFunctionCall:
		return "FunctionCall"
	case ExprCallee:
		return "Callee"
	case ExprPointerDereference:
		return "PointerDereference"
	case ExprArraySubscript:
		return "ArraySubscript"
	case ExprAddressOf:
		return "AddressOf"
	case ExprNegate:
		return "Negate"
	case ExprMemberAccess:
		return "MemberAccess"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// Expression is one node of the AST. Only the fields relevant to Kind are
// meaningful; this single discriminated struct stands in for the
// reference's per-kind sub-arenas, since the surface language's node
// shapes are few and fixed. Children holds child expressions in the order
// described by each kind's invariant (see the New* constructors below).
type Expression struct {
	Kind     ExprKind
	Type     types.TypeID
	Pos      source.Position
	Children []ExprID

	// Scalar payloads. Exactly one is meaningful, selected by Kind.
	Int64  int64  // Literal (signed), and Negate's folded constant when applicable
	Uint64 uint64 // Literal (unsigned)
	Str    string // Literal (string/pointer-to-char), Variable/Callee identifier (a MemberAccess's field name lives on its Variable child)
	Char   byte   // Literal (char)
	Bool   bool   // Literal (bool)
}

// Exprs owns one file's arena of Expression nodes.
type Exprs struct {
	Arena *Arena[Expression]
}

// NewExprs creates an empty expression arena.
func NewExprs() *Exprs {
	return &Exprs{Arena: NewArena[Expression](64)}
}

// Get returns the node for id, or nil if id is NoExprID.
func (e *Exprs) Get(id ExprID) *Expression {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) alloc(expr Expression) ExprID {
	return ExprID(e.Arena.Allocate(expr))
}

// NewIntLiteral allocates a signed integer literal.
func (e *Exprs) NewIntLiteral(pos source.Position, value int64, typ types.TypeID) ExprID {
	return e.alloc(Expression{Kind: ExprLiteral, Type: typ, Pos: pos, Int64: value})
}

// NewUintLiteral allocates an unsigned integer literal.
func (e *Exprs) NewUintLiteral(pos source.Position, value uint64, typ types.TypeID) ExprID {
	return e.alloc(Expression{Kind: ExprLiteral, Type: typ, Pos: pos, Uint64: value})
}

// NewCharLiteral allocates a character literal.
func (e *Exprs) NewCharLiteral(pos source.Position, value byte, typ types.TypeID) ExprID {
	return e.alloc(Expression{Kind: ExprLiteral, Type: typ, Pos: pos, Char: value})
}

// NewBoolLiteral allocates a boolean literal.
func (e *Exprs) NewBoolLiteral(pos source.Position, value bool, typ types.TypeID) ExprID {
	return e.alloc(Expression{Kind: ExprLiteral, Type: typ, Pos: pos, Bool: value})
}

// NewStringLiteral allocates a string literal, either a bare string value
// or (per the pointer-to-char convention) a null-terminated data pointer.
func (e *Exprs) NewStringLiteral(pos source.Position, value string, typ types.TypeID) ExprID {
	return e.alloc(Expression{Kind: ExprLiteral, Type: typ, Pos: pos, Str: value})
}

// NewCompositeLiteral allocates an array or record literal from its
// already-parsed element expressions.
func (e *Exprs) NewCompositeLiteral(pos source.Position, children []ExprID, typ types.TypeID) ExprID {
	return e.alloc(Expression{Kind: ExprLiteral, Type: typ, Pos: pos, Children: children})
}

// NewVariable allocates an identifier reference. typ is NoTypeID unless
// the parser already knows it (a declared-variable child in a
// VariableDeclaration).
func (e *Exprs) NewVariable(pos source.Position, name string, typ types.TypeID) ExprID {
	return e.alloc(Expression{Kind: ExprVariable, Type: typ, Pos: pos, Str: name})
}

// NewCallee allocates the function-name head of a FunctionCall.
func (e *Exprs) NewCallee(pos source.Position, name string) ExprID {
	return e.alloc(Expression{Kind: ExprCallee, Pos: pos, Str: name})
}

// NewBinary allocates a two-child binary operator expression.
func (e *Exprs) NewBinary(kind ExprKind, pos source.Position, lhs, rhs ExprID) ExprID {
	return e.alloc(Expression{Kind: kind, Pos: pos, Children: []ExprID{lhs, rhs}})
}

// NewUnary allocates a one-child unary operator expression.
func (e *Exprs) NewUnary(kind ExprKind, pos source.Position, operand ExprID) ExprID {
	return e.alloc(Expression{Kind: kind, Pos: pos, Children: []ExprID{operand}})
}

// NewScope allocates a block of sequential child expressions.
func (e *Exprs) NewScope(pos source.Position, children []ExprID) ExprID {
	return e.alloc(Expression{Kind: ExprScope, Pos: pos, Children: children})
}

// NewVariableDeclaration allocates a `var name: type = init` binding.
// variable must itself be an ExprVariable node carrying the declared type.
func (e *Exprs) NewVariableDeclaration(pos source.Position, variable, init ExprID) ExprID {
	return e.alloc(Expression{Kind: ExprVariableDeclaration, Pos: pos, Children: []ExprID{variable, init}})
}

// NewVariableAssignment allocates an `lhs = rhs` assignment.
func (e *Exprs) NewVariableAssignment(pos source.Position, lhs, rhs ExprID) ExprID {
	return e.alloc(Expression{Kind: ExprVariableAssignment, Pos: pos, Children: []ExprID{lhs, rhs}})
}

// NewReturn allocates a return statement. value may be NoExprID for a
// bare `return` in a void function.
func (e *Exprs) NewReturn(pos source.Position, value ExprID) ExprID {
	var children []ExprID
	if value.IsValid() {
		children = []ExprID{value}
	}
	return e.alloc(Expression{Kind: ExprReturn, Pos: pos, Children: children})
}

// NewConditional allocates an if/elif/else chain. children follows the
// [cond, body, (cond, body)*, body?] pattern.
func (e *Exprs) NewConditional(pos source.Position, children []ExprID) ExprID {
	return e.alloc(Expression{Kind: ExprConditional, Pos: pos, Children: children})
}

// NewForLoop allocates a for loop with exactly four children: init,
// condition, step, body.
func (e *Exprs) NewForLoop(pos source.Position, init, cond, step, body ExprID) ExprID {
	return e.alloc(Expression{Kind: ExprForLoop, Pos: pos, Children: []ExprID{init, cond, step, body}})
}

// NewContinue allocates a continue statement.
func (e *Exprs) NewContinue(pos source.Position) ExprID {
	return e.alloc(Expression{Kind: ExprContinue, Pos: pos})
}

// NewBreak allocates a break statement.
func (e *Exprs) NewBreak(pos source.Position) ExprID {
	return e.alloc(Expression{Kind: ExprBreak, Pos: pos})
}

// NewFunctionCall allocates a call expression; callee must be an
// ExprCallee node, followed by its argument expressions.
func (e *Exprs) NewFunctionCall(pos source.Position, callee ExprID, args []ExprID) ExprID {
	children := make([]ExprID, 0, len(args)+1)
	children = append(children, callee)
	children = append(children, args...)
	return e.alloc(Expression{Kind: ExprFunctionCall, Pos: pos, Children: children})
}

// NewArraySubscript allocates a `target[index]` expression.
func (e *Exprs) NewArraySubscript(pos source.Position, target, index ExprID) ExprID {
	return e.alloc(Expression{Kind: ExprArraySubscript, Pos: pos, Children: []ExprID{target, index}})
}

// NewMemberAccess allocates a `target.field` expression. field must be an
// ExprVariable node holding the field's identifier.
func (e *Exprs) NewMemberAccess(pos source.Position, target, field ExprID) ExprID {
	return e.alloc(Expression{Kind: ExprMemberAccess, Pos: pos, Children: []ExprID{target, field}})
}
