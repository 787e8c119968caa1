package ast_test

import (
	"testing"

	"tabc/internal/ast"
	"tabc/internal/source"
	"tabc/internal/types"
)

func TestArenaOneBasedIndexing(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 must never resolve to a stored value")
	}
	id := a.Allocate(42)
	if id != 1 {
		t.Fatalf("first allocation should be index 1, got %d", id)
	}
	if got := a.Get(id); got == nil || *got != 42 {
		t.Fatalf("Get(1) = %v, want 42", got)
	}
}

func TestBinaryExpressionHasTwoChildren(t *testing.T) {
	exprs := ast.NewExprs()
	in := types.NewInterner()
	lhs := exprs.NewIntLiteral(source.Position{Line: 1, Col: 1}, 1, in.Builtins().I64)
	rhs := exprs.NewIntLiteral(source.Position{Line: 1, Col: 3}, 2, in.Builtins().I64)
	sum := exprs.NewBinary(ast.ExprPlus, source.Position{Line: 1, Col: 2}, lhs, rhs)
	node := exprs.Get(sum)
	if node.Kind != ast.ExprPlus || len(node.Children) != 2 {
		t.Fatalf("expected Plus with 2 children, got %+v", node)
	}
}

func TestVariableDeclarationHasVariableAndInitializer(t *testing.T) {
	exprs := ast.NewExprs()
	in := types.NewInterner()
	pos := source.Position{Line: 1, Col: 1}
	v := exprs.NewVariable(pos, "x", in.Builtins().I64)
	init := exprs.NewIntLiteral(pos, 5, in.Builtins().I64)
	decl := exprs.NewVariableDeclaration(pos, v, init)
	node := exprs.Get(decl)
	if len(node.Children) != 2 {
		t.Fatalf("VariableDeclaration must carry exactly 2 children, got %d", len(node.Children))
	}
	varNode := exprs.Get(node.Children[0])
	if varNode.Kind != ast.ExprVariable || varNode.Str != "x" {
		t.Fatalf("first child must be the declared Variable, got %+v", varNode)
	}
}

func TestForLoopHasFourChildren(t *testing.T) {
	exprs := ast.NewExprs()
	pos := source.Position{Line: 1, Col: 1}
	init := exprs.NewContinue(pos)
	cond := exprs.NewBreak(pos)
	step := exprs.NewBreak(pos)
	body := exprs.NewScope(pos, nil)
	loop := exprs.NewForLoop(pos, init, cond, step, body)
	node := exprs.Get(loop)
	if len(node.Children) != 4 {
		t.Fatalf("ForLoop must carry exactly 4 children, got %d", len(node.Children))
	}
}

func TestFunctionCallFirstChildIsCallee(t *testing.T) {
	exprs := ast.NewExprs()
	pos := source.Position{Line: 1, Col: 1}
	callee := exprs.NewCallee(pos, "add")
	arg := exprs.NewIntLiteral(pos, 1, types.NoTypeID)
	call := exprs.NewFunctionCall(pos, callee, []ast.ExprID{arg})
	node := exprs.Get(call)
	if len(node.Children) != 2 {
		t.Fatalf("expected callee + 1 argument, got %d children", len(node.Children))
	}
	calleeNode := exprs.Get(node.Children[0])
	if calleeNode.Kind != ast.ExprCallee || calleeNode.Str != "add" {
		t.Fatalf("first child must be Callee \"add\", got %+v", calleeNode)
	}
}
