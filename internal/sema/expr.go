package sema

import (
	"fmt"

	"tabc/internal/ast"
	"tabc/internal/diag"
	"tabc/internal/types"
)

// validateExpr resolves and type-checks one expression, mutating its
// Type field (and, for Negate, folding it into a Literal in place) and
// returning the type it ends up carrying. Kinds with no meaningful
// type (Scope, Conditional, ForLoop, Continue, Break, Return) return
// NoTypeID. A Callee is never validated on its own: validateFunctionCall
// resolves it by name.
func (c *Checker) validateExpr(id ast.ExprID) (types.TypeID, error) {
	node := c.exprs.Get(id)
	switch node.Kind {
	case ast.ExprLiteral:
		return c.validateLiteral(node)
	case ast.ExprVariable:
		return c.validateVariable(node)
	case ast.ExprVariableDeclaration:
		return c.validateVariableDeclaration(node)
	case ast.ExprVariableAssignment:
		return c.validateVariableAssignment(node)
	case ast.ExprReturn:
		return c.validateReturn(node)
	case ast.ExprConditional:
		return c.validateConditional(node)
	case ast.ExprForLoop:
		return c.validateForLoop(node)
	case ast.ExprContinue, ast.ExprBreak:
		return types.NoTypeID, nil
	case ast.ExprScope:
		return c.validateScope(node)
	case ast.ExprPlus, ast.ExprMinus, ast.ExprMultiply, ast.ExprDivide:
		return c.validateArithmetic(node)
	case ast.ExprLessThan, ast.ExprGreaterThan, ast.ExprEqual, ast.ExprNotEqual:
		return c.validateComparison(node)
	case ast.ExprLogicalAnd, ast.ExprLogicalOr:
		return c.validateLogical(node)
	case ast.ExprPostIncrement:
		return c.validatePostIncrement(node)
	case ast.ExprFunctionCall:
		return c.validateFunctionCall(node)
	case ast.ExprPointerDereference:
		return c.validatePointerDereference(node)
	case ast.ExprArraySubscript:
		return c.validateArraySubscript(node)
	case ast.ExprAddressOf:
		return c.validateAddressOf(node)
	case ast.ExprNegate:
		return c.validateNegate(node)
	case ast.ExprMemberAccess:
		return c.validateMemberAccess(node)
	default:
		return types.NoTypeID, diag.NewInternalError(node.Pos, fmt.Sprintf("unexpected expression kind %v", node.Kind))
	}
}

// validateExprs validates ids in order, stopping at the first error.
func (c *Checker) validateExprs(ids []ast.ExprID) error {
	for _, id := range ids {
		if _, err := c.validateExpr(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) validateLiteral(node *ast.Expression) (types.TypeID, error) {
	if node.Type == types.NoTypeID {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "literal has no type")
	}
	// A composite literal's elements are themselves expressions the
	// parser already produced, but they were never routed through the
	// validator; walk them now so nested variables/calls resolve.
	if err := c.validateExprs(node.Children); err != nil {
		return types.NoTypeID, err
	}
	return node.Type, nil
}

func (c *Checker) validateVariable(node *ast.Expression) (types.TypeID, error) {
	typ, ok := c.lookup(node.Str)
	if !ok {
		return types.NoTypeID, c.errf(diag.TypeUnknownVariable, node.Pos, fmt.Sprintf("unknown variable %q", node.Str))
	}
	node.Type = typ
	return typ, nil
}

func (c *Checker) validateVariableDeclaration(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 2 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "VariableDeclaration must have 2 children")
	}
	variable := c.exprs.Get(node.Children[0])
	declared := variable.Type
	if declared == types.NoTypeID {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "VariableDeclaration's Variable child has no declared type")
	}
	if declared == c.in.Builtins().Void {
		return types.NoTypeID, c.errf(diag.TypeVoidVariable, node.Pos, fmt.Sprintf("variable %q cannot have type void", variable.Str))
	}
	initType, err := c.validateExpr(node.Children[1])
	if err != nil {
		return types.NoTypeID, err
	}
	if !types.Equal(c.in, initType, declared) {
		return types.NoTypeID, c.errf(diag.TypeMismatch, node.Pos, fmt.Sprintf("cannot initialize %q of type %s with value of type %s", variable.Str, c.in.String(declared), c.in.String(initType)))
	}
	c.bind(variable.Str, declared)
	node.Type = declared
	return declared, nil
}

func (c *Checker) validateVariableAssignment(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 2 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "VariableAssignment must have 2 children")
	}
	lhsID, rhsID := node.Children[0], node.Children[1]
	lhsNode := c.exprs.Get(lhsID)
	switch lhsNode.Kind {
	case ast.ExprVariable, ast.ExprPointerDereference, ast.ExprMemberAccess:
	default:
		return types.NoTypeID, c.errf(diag.TypeBadLValue, node.Pos, fmt.Sprintf("cannot assign to a %v", lhsNode.Kind))
	}
	lhsType, err := c.validateExpr(lhsID)
	if err != nil {
		return types.NoTypeID, err
	}
	rhsType, err := c.validateExpr(rhsID)
	if err != nil {
		return types.NoTypeID, err
	}
	if lhsType == types.NoTypeID || !types.Equal(c.in, lhsType, rhsType) {
		return types.NoTypeID, c.errf(diag.TypeMismatch, node.Pos, fmt.Sprintf("cannot assign value of type %s to lvalue of type %s", c.in.String(rhsType), c.in.String(lhsType)))
	}
	node.Type = lhsType
	return lhsType, nil
}

func (c *Checker) validateReturn(node *ast.Expression) (types.TypeID, error) {
	voidType := c.in.Builtins().Void
	if len(node.Children) == 0 {
		if c.returnType != voidType {
			return types.NoTypeID, c.errf(diag.TypeBadReturn, node.Pos, fmt.Sprintf("missing return value, function returns %s", c.in.String(c.returnType)))
		}
		return types.NoTypeID, nil
	}
	valType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, err
	}
	if !types.Equal(c.in, valType, c.returnType) {
		return types.NoTypeID, c.errf(diag.TypeBadReturn, node.Pos, fmt.Sprintf("returning %s, function returns %s", c.in.String(valType), c.in.String(c.returnType)))
	}
	return types.NoTypeID, nil
}

func (c *Checker) validateConditional(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) < 2 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "Conditional must have at least 2 children")
	}
	boolType := c.in.Builtins().Bool
	i := 0
	for i+1 < len(node.Children) {
		condType, err := c.validateExpr(node.Children[i])
		if err != nil {
			return types.NoTypeID, err
		}
		if !types.Equal(c.in, condType, boolType) {
			return types.NoTypeID, c.errf(diag.TypeNotBoolean, node.Pos, fmt.Sprintf("condition has type %s, want bool", c.in.String(condType)))
		}
		if err := c.validateBody(node.Children[i+1]); err != nil {
			return types.NoTypeID, err
		}
		i += 2
	}
	if i < len(node.Children) {
		// trailing else body, no condition
		if err := c.validateBody(node.Children[i]); err != nil {
			return types.NoTypeID, err
		}
	}
	return types.NoTypeID, nil
}

// validateBody checks that id names a Scope and validates it as one.
func (c *Checker) validateBody(id ast.ExprID) error {
	body := c.exprs.Get(id)
	if body.Kind != ast.ExprScope {
		return diag.NewInternalError(body.Pos, "expected a Scope body")
	}
	_, err := c.validateScope(body)
	return err
}

func (c *Checker) validateForLoop(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 4 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "ForLoop must have 4 children")
	}
	init, cond, step, body := node.Children[0], node.Children[1], node.Children[2], node.Children[3]
	c.pushScope()
	defer c.popScope()

	if _, err := c.validateExpr(init); err != nil {
		return types.NoTypeID, err
	}
	condType, err := c.validateExpr(cond)
	if err != nil {
		return types.NoTypeID, err
	}
	if !types.Equal(c.in, condType, c.in.Builtins().Bool) {
		return types.NoTypeID, c.errf(diag.TypeNotBoolean, node.Pos, fmt.Sprintf("for-loop condition has type %s, want bool", c.in.String(condType)))
	}
	if _, err := c.validateExpr(step); err != nil {
		return types.NoTypeID, err
	}
	if err := c.validateBody(body); err != nil {
		return types.NoTypeID, err
	}
	return types.NoTypeID, nil
}

func (c *Checker) validateScope(node *ast.Expression) (types.TypeID, error) {
	c.pushScope()
	defer c.popScope()
	if err := c.validateExprs(node.Children); err != nil {
		return types.NoTypeID, err
	}
	return types.NoTypeID, nil
}

func (c *Checker) validateArithmetic(node *ast.Expression) (types.TypeID, error) {
	lhsType, rhsType, err := c.validateBinaryOperands(node)
	if err != nil {
		return types.NoTypeID, err
	}
	lhs, rhs := c.in.MustLookup(lhsType), c.in.MustLookup(rhsType)
	if lhs.IsInteger() && rhs.IsInteger() {
		if !types.Equal(c.in, lhsType, rhsType) {
			return types.NoTypeID, c.errf(diag.TypeMismatch, node.Pos, fmt.Sprintf("operand types %s and %s differ", c.in.String(lhsType), c.in.String(rhsType)))
		}
		node.Type = lhsType
		return lhsType, nil
	}
	if lhs.IsPointer() && rhs.IsInteger() && (node.Kind == ast.ExprPlus || node.Kind == ast.ExprMinus) {
		node.Type = lhsType
		return lhsType, nil
	}
	return types.NoTypeID, c.errf(diag.TypeBadOperand, node.Pos, fmt.Sprintf("bad operand types %s and %s for %v", c.in.String(lhsType), c.in.String(rhsType), node.Kind))
}

func (c *Checker) validateComparison(node *ast.Expression) (types.TypeID, error) {
	lhsType, rhsType, err := c.validateBinaryOperands(node)
	if err != nil {
		return types.NoTypeID, err
	}
	if !types.Equal(c.in, lhsType, rhsType) {
		return types.NoTypeID, c.errf(diag.TypeMismatch, node.Pos, fmt.Sprintf("cannot compare %s and %s", c.in.String(lhsType), c.in.String(rhsType)))
	}
	if !c.in.MustLookup(lhsType).IsComparable() {
		return types.NoTypeID, c.errf(diag.TypeNotComparable, node.Pos, fmt.Sprintf("type %s is not comparable", c.in.String(lhsType)))
	}
	node.Type = c.in.Builtins().Bool
	return node.Type, nil
}

func (c *Checker) validateLogical(node *ast.Expression) (types.TypeID, error) {
	lhsType, rhsType, err := c.validateBinaryOperands(node)
	if err != nil {
		return types.NoTypeID, err
	}
	boolType := c.in.Builtins().Bool
	if !types.Equal(c.in, lhsType, boolType) || !types.Equal(c.in, rhsType, boolType) {
		return types.NoTypeID, c.errf(diag.TypeNotBoolean, node.Pos, fmt.Sprintf("operands of %v must be bool, got %s and %s", node.Kind, c.in.String(lhsType), c.in.String(rhsType)))
	}
	node.Type = boolType
	return boolType, nil
}

func (c *Checker) validateBinaryOperands(node *ast.Expression) (types.TypeID, types.TypeID, error) {
	if len(node.Children) != 2 {
		return types.NoTypeID, types.NoTypeID, diag.NewInternalError(node.Pos, fmt.Sprintf("%v must have 2 children", node.Kind))
	}
	lhsType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, types.NoTypeID, err
	}
	rhsType, err := c.validateExpr(node.Children[1])
	if err != nil {
		return types.NoTypeID, types.NoTypeID, err
	}
	return lhsType, rhsType, nil
}

func (c *Checker) validatePostIncrement(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 1 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "PostIncrement must have 1 child")
	}
	operand := c.exprs.Get(node.Children[0])
	if operand.Kind != ast.ExprVariable {
		return types.NoTypeID, c.errf(diag.TypeBadOperand, node.Pos, "operand of ++ must be a variable")
	}
	operandType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, err
	}
	t := c.in.MustLookup(operandType)
	if !t.IsInteger() && !t.IsPointer() {
		return types.NoTypeID, c.errf(diag.TypeBadOperand, node.Pos, fmt.Sprintf("cannot increment a value of type %s", c.in.String(operandType)))
	}
	node.Type = operandType
	return operandType, nil
}

func (c *Checker) validatePointerDereference(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 1 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "PointerDereference must have 1 child")
	}
	operandType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, err
	}
	t := c.in.MustLookup(operandType)
	if !t.IsPointer() {
		return types.NoTypeID, c.errf(diag.TypeNotAPointer, node.Pos, fmt.Sprintf("cannot dereference a value of type %s", c.in.String(operandType)))
	}
	node.Type = t.Elem
	return t.Elem, nil
}

func (c *Checker) validateAddressOf(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 1 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "AddressOf must have 1 child")
	}
	operand := c.exprs.Get(node.Children[0])
	if operand.Kind != ast.ExprVariable {
		return types.NoTypeID, c.errf(diag.TypeBadAddressOf, node.Pos, "operand of & must be a variable")
	}
	operandType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, err
	}
	ptrType := c.in.Intern(types.MakePointer(operandType))
	node.Type = ptrType
	return ptrType, nil
}

// validateNegate implements the one constant-folding rule this
// language has: `-` applied to a signed integer Literal rewrites the
// Negate node itself into the folded Literal, in place. The operand is
// validated first, so a nested Negate is already folded when it is checked.
func (c *Checker) validateNegate(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 1 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "Negate must have 1 child")
	}
	operandType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, err
	}
	operand := c.exprs.Get(node.Children[0])
	if operand.Kind != ast.ExprLiteral || !c.in.MustLookup(operandType).IsSigned() {
		return types.NoTypeID, c.errf(diag.TypeBadNegateOperand, node.Pos, "operand of unary - must be a signed integer literal")
	}
	node.Kind = ast.ExprLiteral
	node.Int64 = -operand.Int64
	node.Type = operandType
	node.Children = nil
	return operandType, nil
}

func (c *Checker) validateArraySubscript(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 2 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "ArraySubscript must have 2 children")
	}
	targetType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, err
	}
	indexType, err := c.validateExpr(node.Children[1])
	if err != nil {
		return types.NoTypeID, err
	}
	if !c.in.MustLookup(indexType).IsInteger() {
		return types.NoTypeID, c.errf(diag.TypeBadOperand, node.Pos, fmt.Sprintf("array index must be an integer, got %s", c.in.String(indexType)))
	}
	t := c.in.MustLookup(targetType)
	if !t.IsPointer() && !t.IsArray() {
		return types.NoTypeID, c.errf(diag.TypeNotAnIndexable, node.Pos, fmt.Sprintf("cannot index a value of type %s", c.in.String(targetType)))
	}
	node.Type = t.Elem
	return t.Elem, nil
}

func (c *Checker) validateMemberAccess(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) != 2 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "MemberAccess must have 2 children")
	}
	targetType, err := c.validateExpr(node.Children[0])
	if err != nil {
		return types.NoTypeID, err
	}
	t := c.in.MustLookup(targetType)
	if !t.IsRecord() {
		return types.NoTypeID, c.errf(diag.TypeNotARecord, node.Pos, fmt.Sprintf("cannot access a field of a value of type %s", c.in.String(targetType)))
	}
	fieldNode := c.exprs.Get(node.Children[1])
	fields, _ := c.in.RecordFields(targetType)
	for _, f := range fields {
		if f.Name == fieldNode.Str {
			fieldNode.Type = f.Type
			node.Type = f.Type
			return f.Type, nil
		}
	}
	return types.NoTypeID, c.errf(diag.TypeUnknownField, node.Pos, fmt.Sprintf("type %s has no field %q", c.in.String(targetType), fieldNode.Str))
}

func (c *Checker) validateFunctionCall(node *ast.Expression) (types.TypeID, error) {
	if len(node.Children) == 0 {
		return types.NoTypeID, diag.NewInternalError(node.Pos, "FunctionCall must have a Callee child")
	}
	callee := c.exprs.Get(node.Children[0])
	proto, ok := c.funcs[callee.Str]
	if !ok {
		return types.NoTypeID, c.errf(diag.TypeUnknownFunction, node.Pos, fmt.Sprintf("unknown function %q", callee.Str))
	}
	args := node.Children[1:]
	if len(args) != len(proto.Params) {
		return types.NoTypeID, c.errf(diag.TypeArityMismatch, node.Pos, fmt.Sprintf("%s expects %d argument(s), got %d", proto.Name, len(proto.Params), len(args)))
	}
	for i, argID := range args {
		argType, err := c.validateExpr(argID)
		if err != nil {
			return types.NoTypeID, err
		}
		param := proto.Params[i]
		if !types.Equal(c.in, argType, param.Type) {
			return types.NoTypeID, c.errf(diag.TypeMismatch, node.Pos, fmt.Sprintf("argument %d of %s: expected %s, got %s", i+1, proto.Name, c.in.String(param.Type), c.in.String(argType)))
		}
	}
	node.Type = proto.ReturnType
	return proto.ReturnType, nil
}
