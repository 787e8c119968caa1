package codegen

import (
	"fmt"

	"tabc/internal/ast"
	"tabc/internal/types"
)

// emit lowers one already-validated expression, returning the
// register (or immediate) holding its value and its textual IR type.
// Statement-shaped kinds (Scope, VariableDeclaration, ...) return
// ("", "void", nil): they are emitted for effect only.
func (fe *funcEmitter) emit(id ast.ExprID) (string, string, error) {
	node := fe.exprs.Get(id)
	switch node.Kind {
	case ast.ExprLiteral:
		return fe.emitLiteral(node)
	case ast.ExprVariable:
		return fe.emitVariableLoad(node)
	case ast.ExprVariableDeclaration:
		return fe.emitVariableDeclaration(node)
	case ast.ExprVariableAssignment:
		return fe.emitVariableAssignment(node)
	case ast.ExprReturn:
		return fe.emitReturn(node)
	case ast.ExprConditional:
		return fe.emitConditional(node)
	case ast.ExprForLoop:
		return fe.emitForLoop(node)
	case ast.ExprContinue:
		if len(fe.loops) == 0 {
			return "", "", fmt.Errorf("continue outside a loop")
		}
		fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", fe.loops[len(fe.loops)-1].continueLabel)
		return "", "void", nil
	case ast.ExprBreak:
		if len(fe.loops) == 0 {
			return "", "", fmt.Errorf("break outside a loop")
		}
		fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", fe.loops[len(fe.loops)-1].breakLabel)
		return "", "void", nil
	case ast.ExprScope:
		return fe.emitScope(node)
	case ast.ExprPlus, ast.ExprMinus, ast.ExprMultiply, ast.ExprDivide:
		return fe.emitArithmetic(node)
	case ast.ExprLessThan, ast.ExprGreaterThan, ast.ExprEqual, ast.ExprNotEqual:
		return fe.emitComparison(node)
	case ast.ExprLogicalAnd, ast.ExprLogicalOr:
		return fe.emitLogical(node)
	case ast.ExprPostIncrement:
		return fe.emitPostIncrement(node)
	case ast.ExprFunctionCall:
		return fe.emitFunctionCall(node)
	case ast.ExprPointerDereference:
		return fe.emitPointerDereference(node)
	case ast.ExprArraySubscript:
		return fe.emitArraySubscript(node)
	case ast.ExprAddressOf:
		return fe.emitAddressOf(node)
	case ast.ExprMemberAccess:
		return fe.emitMemberAccess(node)
	default:
		return "", "", fmt.Errorf("codegen: unexpected expression kind %v", node.Kind)
	}
}

func (fe *funcEmitter) emitScope(node *ast.Expression) (string, string, error) {
	fe.pushScope()
	defer fe.popScope()
	for _, child := range node.Children {
		if _, _, err := fe.emit(child); err != nil {
			return "", "", err
		}
	}
	return "", "void", nil
}

func (fe *funcEmitter) emitLiteral(node *ast.Expression) (string, string, error) {
	ty := llvmType(fe.mod.in, node.Type)
	t := fe.mod.in.MustLookup(node.Type)

	if t.IsArray() || t.IsRecord() {
		return fe.emitCompositeLiteral(node, ty)
	}
	if t.IsPointer() {
		return fe.emitStringLiteral(node)
	}
	switch {
	case t.Builtin == types.Bool:
		if node.Bool {
			return "1", ty, nil
		}
		return "0", ty, nil
	case t.Builtin == types.Char:
		return fmt.Sprintf("%d", node.Char), ty, nil
	case t.Builtin == types.U64:
		return fmt.Sprintf("%d", node.Uint64), ty, nil
	default: // I32, I64
		return fmt.Sprintf("%d", node.Int64), ty, nil
	}
}

// emitCompositeLiteral materializes an array/record literal as a flat
// alloca of i64-wide slots, one per element, storing each element at
// its own declared type — a reference layout, not an ABI-correct one.
func (fe *funcEmitter) emitCompositeLiteral(node *ast.Expression, _ string) (string, string, error) {
	n := len(node.Children)
	reg := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = alloca [%d x i64]\n", reg, n)
	for i, childID := range node.Children {
		val, elemTy, err := fe.emit(childID)
		if err != nil {
			return "", "", err
		}
		slot := fe.nextTemp()
		fmt.Fprintf(&fe.mod.buf, "  %s = getelementptr inbounds [%d x i64], ptr %s, i64 0, i64 %d\n", slot, n, reg, i)
		fmt.Fprintf(&fe.mod.buf, "  store %s %s, ptr %s\n", elemTy, val, slot)
	}
	return reg, "ptr", nil
}

func (fe *funcEmitter) emitStringLiteral(node *ast.Expression) (string, string, error) {
	name, ok := fe.mod.strConsts[node.Str]
	if !ok {
		fe.mod.nextGlobal++
		name = fmt.Sprintf("str%d", fe.mod.nextGlobal)
		fe.mod.strConsts[node.Str] = name
	}
	n := len(node.Str) + 1 // null terminator
	ptr := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = getelementptr inbounds [%d x i8], ptr @%s, i64 0, i64 0\n", ptr, n, name)
	return ptr, "ptr", nil
}

func (fe *funcEmitter) emitVariableLoad(node *ast.Expression) (string, string, error) {
	reg, ok := fe.lookup(node.Str)
	if !ok {
		return "", "", fmt.Errorf("codegen: unbound variable %q (validator should have rejected this)", node.Str)
	}
	ty := llvmType(fe.mod.in, node.Type)
	val := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = load %s, ptr %s\n", val, ty, reg)
	return val, ty, nil
}

func (fe *funcEmitter) emitVariableDeclaration(node *ast.Expression) (string, string, error) {
	variable := fe.exprs.Get(node.Children[0])
	initVal, initTy, err := fe.emit(node.Children[1])
	if err != nil {
		return "", "", err
	}
	reg := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = alloca %s\n", reg, initTy)
	fmt.Fprintf(&fe.mod.buf, "  store %s %s, ptr %s\n", initTy, initVal, reg)
	fe.bind(variable.Str, reg)
	return "", "void", nil
}

// lvalueAddr resolves the storage address an lvalue (Variable,
// PointerDereference, or MemberAccess) writes through, and the
// textual IR type of the value stored there.
func (fe *funcEmitter) lvalueAddr(id ast.ExprID) (string, string, error) {
	node := fe.exprs.Get(id)
	switch node.Kind {
	case ast.ExprVariable:
		reg, ok := fe.lookup(node.Str)
		if !ok {
			return "", "", fmt.Errorf("codegen: unbound variable %q", node.Str)
		}
		return reg, llvmType(fe.mod.in, node.Type), nil
	case ast.ExprPointerDereference:
		ptrVal, _, err := fe.emit(node.Children[0])
		if err != nil {
			return "", "", err
		}
		return ptrVal, llvmType(fe.mod.in, node.Type), nil
	case ast.ExprMemberAccess:
		return fe.memberAddr(node)
	default:
		return "", "", fmt.Errorf("codegen: %v is not an lvalue", node.Kind)
	}
}

func (fe *funcEmitter) emitVariableAssignment(node *ast.Expression) (string, string, error) {
	addr, ty, err := fe.lvalueAddr(node.Children[0])
	if err != nil {
		return "", "", err
	}
	val, _, err := fe.emit(node.Children[1])
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(&fe.mod.buf, "  store %s %s, ptr %s\n", ty, val, addr)
	return val, ty, nil
}

func (fe *funcEmitter) emitReturn(node *ast.Expression) (string, string, error) {
	if len(node.Children) == 0 {
		fmt.Fprint(&fe.mod.buf, "  ret void\n")
		return "", "void", nil
	}
	val, ty, err := fe.emit(node.Children[0])
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(&fe.mod.buf, "  ret %s %s\n", ty, val)
	return "", "void", nil
}

func (fe *funcEmitter) emitConditional(node *ast.Expression) (string, string, error) {
	end := fe.nextLabel("ifend")
	i := 0
	for i+1 < len(node.Children) {
		condVal, _, err := fe.emit(node.Children[i])
		if err != nil {
			return "", "", err
		}
		thenLabel := fe.nextLabel("ifthen")
		nextLabel := fe.nextLabel("ifnext")
		fmt.Fprintf(&fe.mod.buf, "  br i1 %s, label %%%s, label %%%s\n", condVal, thenLabel, nextLabel)
		fmt.Fprintf(&fe.mod.buf, "%s:\n", thenLabel)
		if _, _, err := fe.emit(node.Children[i+1]); err != nil {
			return "", "", err
		}
		if !fe.terminates(fe.exprs.Get(node.Children[i+1])) {
			fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", end)
		}
		fmt.Fprintf(&fe.mod.buf, "%s:\n", nextLabel)
		i += 2
	}
	if i < len(node.Children) {
		if _, _, err := fe.emit(node.Children[i]); err != nil {
			return "", "", err
		}
		if !fe.terminates(fe.exprs.Get(node.Children[i])) {
			fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", end)
		}
	} else {
		fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", end)
	}
	fmt.Fprintf(&fe.mod.buf, "%s:\n", end)
	return "", "void", nil
}

func (fe *funcEmitter) emitForLoop(node *ast.Expression) (string, string, error) {
	fe.pushScope()
	defer fe.popScope()

	condLabel := fe.nextLabel("forcond")
	bodyLabel := fe.nextLabel("forbody")
	stepLabel := fe.nextLabel("forstep")
	endLabel := fe.nextLabel("forend")

	if _, _, err := fe.emit(node.Children[0]); err != nil { // init
		return "", "", err
	}
	fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", condLabel)

	fmt.Fprintf(&fe.mod.buf, "%s:\n", condLabel)
	condVal, _, err := fe.emit(node.Children[1])
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(&fe.mod.buf, "  br i1 %s, label %%%s, label %%%s\n", condVal, bodyLabel, endLabel)

	fmt.Fprintf(&fe.mod.buf, "%s:\n", bodyLabel)
	fe.loops = append(fe.loops, loopLabels{continueLabel: stepLabel, breakLabel: endLabel})
	bodyNode := fe.exprs.Get(node.Children[3])
	if _, _, err := fe.emit(node.Children[3]); err != nil {
		fe.loops = fe.loops[:len(fe.loops)-1]
		return "", "", err
	}
	fe.loops = fe.loops[:len(fe.loops)-1]
	if !fe.terminates(bodyNode) {
		fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", stepLabel)
	}

	fmt.Fprintf(&fe.mod.buf, "%s:\n", stepLabel)
	if _, _, err := fe.emit(node.Children[2]); err != nil { // step
		return "", "", err
	}
	fmt.Fprintf(&fe.mod.buf, "  br label %%%s\n", condLabel)

	fmt.Fprintf(&fe.mod.buf, "%s:\n", endLabel)
	return "", "void", nil
}

func (fe *funcEmitter) emitArithmetic(node *ast.Expression) (string, string, error) {
	lhsVal, lhsTy, err := fe.emit(node.Children[0])
	if err != nil {
		return "", "", err
	}
	rhsVal, _, err := fe.emit(node.Children[1])
	if err != nil {
		return "", "", err
	}
	t := fe.mod.in.MustLookup(node.Type)
	op := "add"
	switch node.Kind {
	case ast.ExprPlus:
		op = "add"
	case ast.ExprMinus:
		op = "sub"
	case ast.ExprMultiply:
		op = "mul"
	case ast.ExprDivide:
		if t.IsPointer() {
			return "", "", fmt.Errorf("codegen: pointer division is not a valid operation")
		}
		if t.Builtin == types.U64 {
			op = "udiv"
		} else {
			op = "sdiv"
		}
	}
	val := fe.nextTemp()
	resultTy := lhsTy
	if t.IsPointer() {
		// pointer +/- integer: GEP by a raw byte offset.
		offsetVal := rhsVal
		if node.Kind == ast.ExprMinus {
			neg := fe.nextTemp()
			fmt.Fprintf(&fe.mod.buf, "  %s = sub i64 0, %s\n", neg, rhsVal)
			offsetVal = neg
		}
		fmt.Fprintf(&fe.mod.buf, "  %s = getelementptr inbounds i8, ptr %s, i64 %s\n", val, lhsVal, offsetVal)
		return val, "ptr", nil
	}
	fmt.Fprintf(&fe.mod.buf, "  %s = %s %s %s, %s\n", val, op, resultTy, lhsVal, rhsVal)
	return val, resultTy, nil
}

func (fe *funcEmitter) emitComparison(node *ast.Expression) (string, string, error) {
	lhsVal, lhsTy, err := fe.emit(node.Children[0])
	if err != nil {
		return "", "", err
	}
	rhsVal, _, err := fe.emit(node.Children[1])
	if err != nil {
		return "", "", err
	}
	cmpTy := lhsTy
	pred := comparisonPredicate(node.Kind, fe.exprs.Get(node.Children[0]).Type, fe.mod.in)
	val := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = icmp %s %s %s, %s\n", val, pred, cmpTy, lhsVal, rhsVal)
	return val, "i1", nil
}

func comparisonPredicate(kind ast.ExprKind, operandType types.TypeID, in *types.Interner) string {
	unsigned := false
	if t, ok := in.Lookup(operandType); ok && t.Kind == types.KindBuiltin && t.Builtin == types.U64 {
		unsigned = true
	}
	switch kind {
	case ast.ExprEqual:
		return "eq"
	case ast.ExprNotEqual:
		return "ne"
	case ast.ExprLessThan:
		if unsigned {
			return "ult"
		}
		return "slt"
	case ast.ExprGreaterThan:
		if unsigned {
			return "ugt"
		}
		return "sgt"
	default:
		return "eq"
	}
}

func (fe *funcEmitter) emitLogical(node *ast.Expression) (string, string, error) {
	lhsVal, _, err := fe.emit(node.Children[0])
	if err != nil {
		return "", "", err
	}
	rhsVal, _, err := fe.emit(node.Children[1])
	if err != nil {
		return "", "", err
	}
	op := "and"
	if node.Kind == ast.ExprLogicalOr {
		op = "or"
	}
	val := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = %s i1 %s, %s\n", val, op, lhsVal, rhsVal)
	return val, "i1", nil
}

func (fe *funcEmitter) emitPostIncrement(node *ast.Expression) (string, string, error) {
	addr, ty, err := fe.lvalueAddr(node.Children[0])
	if err != nil {
		return "", "", err
	}
	old := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = load %s, ptr %s\n", old, ty, addr)
	updated := fe.nextTemp()
	t := fe.mod.in.MustLookup(fe.exprs.Get(node.Children[0]).Type)
	if t.IsPointer() {
		fmt.Fprintf(&fe.mod.buf, "  %s = getelementptr inbounds i8, ptr %s, i64 1\n", updated, old)
	} else {
		fmt.Fprintf(&fe.mod.buf, "  %s = add %s %s, 1\n", updated, ty, old)
	}
	fmt.Fprintf(&fe.mod.buf, "  store %s %s, ptr %s\n", ty, updated, addr)
	return old, ty, nil
}

func (fe *funcEmitter) emitPointerDereference(node *ast.Expression) (string, string, error) {
	ptrVal, _, err := fe.emit(node.Children[0])
	if err != nil {
		return "", "", err
	}
	ty := llvmType(fe.mod.in, node.Type)
	val := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = load %s, ptr %s\n", val, ty, ptrVal)
	return val, ty, nil
}

func (fe *funcEmitter) emitAddressOf(node *ast.Expression) (string, string, error) {
	addr, _, err := fe.lvalueAddr(node.Children[0])
	if err != nil {
		return "", "", err
	}
	return addr, "ptr", nil
}

func (fe *funcEmitter) emitArraySubscript(node *ast.Expression) (string, string, error) {
	addr, ty, err := fe.arraySubscriptAddr(node)
	if err != nil {
		return "", "", err
	}
	val := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = load %s, ptr %s\n", val, ty, addr)
	return val, ty, nil
}

func (fe *funcEmitter) arraySubscriptAddr(node *ast.Expression) (string, string, error) {
	targetVal, _, err := fe.emit(node.Children[0])
	if err != nil {
		return "", "", err
	}
	indexVal, _, err := fe.emit(node.Children[1])
	if err != nil {
		return "", "", err
	}
	elemTy := llvmType(fe.mod.in, node.Type)
	addr := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = getelementptr inbounds %s, ptr %s, i64 %s\n", addr, elemTy, targetVal, indexVal)
	return addr, elemTy, nil
}

// memberAddr resolves target.field's storage address using the real
// field index from the record's interned field list (§9 open question
// 5 requires correct behavior here, not the reference's field-0 bug).
func (fe *funcEmitter) memberAddr(node *ast.Expression) (string, string, error) {
	targetVal, _, err := fe.emit(node.Children[0])
	if err != nil {
		return "", "", err
	}
	targetType := fe.exprs.Get(node.Children[0]).Type
	fieldNode := fe.exprs.Get(node.Children[1])
	fields, ok := fe.mod.in.RecordFields(targetType)
	if !ok {
		return "", "", fmt.Errorf("codegen: %v is not a record", targetType)
	}
	fieldIdx := -1
	for i, f := range fields {
		if f.Name == fieldNode.Str {
			fieldIdx = i
			break
		}
	}
	if fieldIdx < 0 {
		return "", "", fmt.Errorf("codegen: record has no field %q", fieldNode.Str)
	}
	addr := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = getelementptr inbounds i64, ptr %s, i64 %d\n", addr, targetVal, fieldIdx)
	return addr, llvmType(fe.mod.in, node.Type), nil
}

func (fe *funcEmitter) emitMemberAccess(node *ast.Expression) (string, string, error) {
	addr, ty, err := fe.memberAddr(node)
	if err != nil {
		return "", "", err
	}
	val := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = load %s, ptr %s\n", val, ty, addr)
	return val, ty, nil
}

func (fe *funcEmitter) emitFunctionCall(node *ast.Expression) (string, string, error) {
	callee := fe.exprs.Get(node.Children[0])
	args := node.Children[1:]
	argStrs := make([]string, len(args))
	for i, argID := range args {
		val, ty, err := fe.emit(argID)
		if err != nil {
			return "", "", err
		}
		argStrs[i] = fmt.Sprintf("%s %s", ty, val)
	}
	retTy := llvmType(fe.mod.in, node.Type)
	if retTy == "void" {
		fmt.Fprintf(&fe.mod.buf, "  call void @%s(%s)\n", callee.Str, joinArgs(argStrs))
		return "", "void", nil
	}
	val := fe.nextTemp()
	fmt.Fprintf(&fe.mod.buf, "  %s = call %s @%s(%s)\n", val, retTy, callee.Str, joinArgs(argStrs))
	return val, retTy, nil
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}
