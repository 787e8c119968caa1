package codegen_test

import (
	"strings"
	"testing"

	"tabc/internal/ast"
	"tabc/internal/codegen"
	"tabc/internal/lexer"
	"tabc/internal/parser"
	"tabc/internal/sema"
	"tabc/internal/source"
)

func compile(t *testing.T, src string) string {
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
	c := sema.NewChecker(res.Interner)
	if err := c.Check(res.Functions, res.Exprs); err != nil {
		t.Fatalf("Check: %v", err)
	}
	ir, err := codegen.EmitModule(res.Functions, res.Exprs, res.Interner)
	if err != nil {
		t.Fatalf("EmitModule: %v", err)
	}
	return ir
}

func TestEmitMinimalReturn(t *testing.T) {
	ir := compile(t, "function main() -> void:\n\treturn\n")
	if !strings.Contains(ir, "define void @main()") {
		t.Fatalf("expected a void main definition, got:\n%s", ir)
	}
	if !strings.Contains(ir, "ret void") {
		t.Fatalf("expected a ret void, got:\n%s", ir)
	}
}

func TestEmitArithmeticReturn(t *testing.T) {
	ir := compile(t, "function add(a: i64, b: i64) -> i64:\n\treturn a + b\n")
	if !strings.Contains(ir, "define i64 @add(i64 %arg0, i64 %arg1)") {
		t.Fatalf("expected an i64 add definition, got:\n%s", ir)
	}
	if !strings.Contains(ir, "= add i64 ") {
		t.Fatalf("expected an add instruction, got:\n%s", ir)
	}
}

// extern prototypes have no surface syntax: the driver registers them
// programmatically via the validator's/code-generator's extern
// interface, the same way a linked-in runtime function would be.
func TestEmitDeclaresExternFunctions(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tab", []byte("function main() -> void:\n\treturn\n"))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	res, err := parser.ParseFile(toks)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	c := sema.NewChecker(res.Interner)
	externFn := &ast.Function{Proto: ast.FunctionPrototype{Name: "puts", ReturnType: res.Interner.Builtins().Void}}
	c.RegisterExtern(externFn.Proto)
	fns := append([]*ast.Function{externFn}, res.Functions...)
	if err := c.Check(fns, res.Exprs); err != nil {
		t.Fatalf("Check: %v", err)
	}
	ir, err := codegen.EmitModule(fns, res.Exprs, res.Interner)
	if err != nil {
		t.Fatalf("EmitModule: %v", err)
	}
	if !strings.Contains(ir, "declare void @puts()") {
		t.Fatalf("expected an extern declaration, got:\n%s", ir)
	}
}

// The second field of a two-field record must be addressed at GEP
// index 1, never index 0 — the reference implementation's field-index
// bug this spec explicitly does not reproduce.
func TestMemberAccessUsesRealFieldIndex(t *testing.T) {
	src := "struct Point:\n\tx: i64\n\ty: i64\n" +
		"function getY(p: Point) -> i64:\n\treturn p.y\n"
	ir := compile(t, src)
	if !strings.Contains(ir, "getelementptr inbounds i64, ptr %t2, i64 1") {
		t.Fatalf("expected member access on the second field to GEP at index 1, got:\n%s", ir)
	}
	if strings.Contains(ir, "getelementptr inbounds i64, ptr %t2, i64 0") {
		t.Fatalf("did not expect a field-0 GEP for a second-field access, got:\n%s", ir)
	}
}

func TestEmitConditionalBranches(t *testing.T) {
	src := "function f(x: bool) -> void:\n\tif x:\n\t\treturn\n\telse:\n\t\treturn\n"
	ir := compile(t, src)
	if !strings.Contains(ir, "br i1") {
		t.Fatalf("expected a conditional branch, got:\n%s", ir)
	}
}

func TestEmitForLoopBranchesBackToCondition(t *testing.T) {
	src := "function f() -> void:\n\tfor var i: i64 = 0, i < 3, i++:\n\t\tbreak\n\treturn\n"
	ir := compile(t, src)
	if !strings.Contains(ir, "forcond") || !strings.Contains(ir, "forbody") || !strings.Contains(ir, "forstep") || !strings.Contains(ir, "forend") {
		t.Fatalf("expected all four for-loop labels, got:\n%s", ir)
	}
}

func TestEmitArraySubscriptTypedGEP(t *testing.T) {
	src := "function f(xs: i64[3]) -> i64:\n\treturn xs[0]\n"
	ir := compile(t, src)
	if !strings.Contains(ir, "getelementptr inbounds i64, ptr") {
		t.Fatalf("expected a typed array GEP, got:\n%s", ir)
	}
}
