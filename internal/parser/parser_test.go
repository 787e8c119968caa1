package parser_test

import (
	"testing"

	"tabc/internal/ast"
	"tabc/internal/lexer"
	"tabc/internal/parser"
	"tabc/internal/source"
	"tabc/internal/types"
)

func parse(t *testing.T, src string) *parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tab", []byte(src))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	res, err := parser.ParseFile(toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	return res
}

func TestParseSimpleFunction(t *testing.T) {
	src := "function add(a: i64, b: i64) -> i64:\n\treturn a + b\n"
	res := parse(t, src)
	if len(res.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(res.Functions))
	}
	fn := res.Functions[0]
	if fn.Proto.Name != "add" || len(fn.Proto.Params) != 2 {
		t.Fatalf("unexpected prototype: %+v", fn.Proto)
	}
	body := res.Exprs.Get(fn.Body)
	if body.Kind != ast.ExprScope || len(body.Children) != 1 {
		t.Fatalf("expected single-statement scope, got %+v", body)
	}
	ret := res.Exprs.Get(body.Children[0])
	if ret.Kind != ast.ExprReturn || len(ret.Children) != 1 {
		t.Fatalf("expected a Return with a value, got %+v", ret)
	}
	sum := res.Exprs.Get(ret.Children[0])
	if sum.Kind != ast.ExprPlus {
		t.Fatalf("expected a Plus expression, got %v", sum.Kind)
	}
}

func TestSelfRecursiveCallResolves(t *testing.T) {
	src := "function fact(n: i64) -> i64:\n\treturn fact(n)\n"
	res := parse(t, src)
	body := res.Exprs.Get(res.Functions[0].Body)
	ret := res.Exprs.Get(body.Children[0])
	call := res.Exprs.Get(ret.Children[0])
	if call.Kind != ast.ExprFunctionCall {
		t.Fatalf("expected self-recursive call to resolve to FunctionCall, got %v", call.Kind)
	}
	callee := res.Exprs.Get(call.Children[0])
	if callee.Kind != ast.ExprCallee || callee.Str != "fact" {
		t.Fatalf("expected Callee \"fact\", got %+v", callee)
	}
}

func TestForwardCallDoesNotResolve(t *testing.T) {
	// helper is declared after caller, so at the point caller's body is
	// parsed, helper is not yet a known function name: it parses as a
	// bare Variable, not a FunctionCall. Mutual/forward recursion across
	// functions is unsupported by design.
	src := "function caller() -> void:\n\thelper\n" +
		"function helper() -> void:\n\treturn\n"
	res := parse(t, src)
	body := res.Exprs.Get(res.Functions[0].Body)
	stmt := res.Exprs.Get(body.Children[0])
	if stmt.Kind != ast.ExprVariable {
		t.Fatalf("expected bare Variable for forward-referenced name, got %v", stmt.Kind)
	}
}

func TestStructDeclExtendsTypeEnv(t *testing.T) {
	src := "struct Point:\n\tx: i64\n\ty: i64\n" +
		"function makePoint() -> Point:\n\treturn { 0, 0 }\n"
	res := parse(t, src)
	if _, ok := res.TypeEnv["Point"]; !ok {
		t.Fatal("expected struct declaration to register \"Point\" in the type environment")
	}
}

func TestArrayLiteralType(t *testing.T) {
	src := "function f() -> void:\n\tvar xs: i64[3] = [1, 2, 3]\n"
	res := parse(t, src)
	body := res.Exprs.Get(res.Functions[0].Body)
	decl := res.Exprs.Get(body.Children[0])
	init := res.Exprs.Get(decl.Children[1])
	arrType := res.Interner.MustLookup(init.Type)
	if arrType.Kind != types.KindArray || arrType.ArrayLen != 3 {
		t.Fatalf("expected array literal type of length 3, got %+v", arrType)
	}
}

func TestTypeGrammarSuffixesLeftToRight(t *testing.T) {
	src := "function f(p: i64*[4]) -> void:\n\treturn\n"
	res := parse(t, src)
	param := res.Functions[0].Proto.Params[0]
	outer := res.Interner.MustLookup(param.Type)
	if outer.Kind != types.KindArray || outer.ArrayLen != 4 {
		t.Fatalf("expected outer array of 4, got %+v", outer)
	}
	elem := res.Interner.MustLookup(outer.Elem)
	if elem.Kind != types.KindPointer {
		t.Fatalf("expected array element to be a pointer, got %+v", elem)
	}
}

func TestConditionalChainShape(t *testing.T) {
	src := "function f(x: i64) -> void:\n" +
		"\tif x:\n\t\treturn\n" +
		"\telif x:\n\t\treturn\n" +
		"\telse:\n\t\treturn\n"
	res := parse(t, src)
	body := res.Exprs.Get(res.Functions[0].Body)
	cond := res.Exprs.Get(body.Children[0])
	if cond.Kind != ast.ExprConditional || len(cond.Children) != 5 {
		t.Fatalf("expected [cond,body,cond,body,elseBody] (5 children), got %d", len(cond.Children))
	}
}

func TestForLoopHasFourChildren(t *testing.T) {
	src := "function f() -> void:\n\tfor var i: i64 = 0, i, i++:\n\t\tbreak\n"
	res := parse(t, src)
	body := res.Exprs.Get(res.Functions[0].Body)
	loop := res.Exprs.Get(body.Children[0])
	if loop.Kind != ast.ExprForLoop || len(loop.Children) != 4 {
		t.Fatalf("expected ForLoop with 4 children, got %+v", loop)
	}
}

func TestUnaryPrefixesStackInnermostOutwards(t *testing.T) {
	src := "function f(p: i64*) -> void:\n\tvar y: i64 = -*p\n"
	res := parse(t, src)
	body := res.Exprs.Get(res.Functions[0].Body)
	decl := res.Exprs.Get(body.Children[0])
	negate := res.Exprs.Get(decl.Children[1])
	if negate.Kind != ast.ExprNegate {
		t.Fatalf("expected outermost Negate, got %v", negate.Kind)
	}
	deref := res.Exprs.Get(negate.Children[0])
	if deref.Kind != ast.ExprPointerDereference {
		t.Fatalf("expected inner PointerDereference, got %v", deref.Kind)
	}
}
