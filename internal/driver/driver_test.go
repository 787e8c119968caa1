package driver_test

import (
	"os"
	"strings"
	"testing"

	"tabc/internal/ast"
	"tabc/internal/driver"
	"tabc/internal/source"
)

func TestCheckSingleFileSucceeds(t *testing.T) {
	fs := source.NewFileSet()
	dir := t.TempDir()
	path := dir + "/main.tab"
	writeFile(t, path, "function main() -> void:\n\treturn\n")

	if _, err := driver.Check(fs, path, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckReportsTypeError(t *testing.T) {
	fs := source.NewFileSet()
	dir := t.TempDir()
	path := dir + "/main.tab"
	writeFile(t, path, "function main() -> void:\n\treturn missing\n")

	if _, err := driver.Check(fs, path, nil); err == nil {
		t.Fatal("expected an unknown-variable error")
	}
}

func TestBuildEmitsTextualIR(t *testing.T) {
	fs := source.NewFileSet()
	dir := t.TempDir()
	path := dir + "/main.tab"
	writeFile(t, path, "function main() -> void:\n\treturn\n")

	ir, err := driver.Build(fs, path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(ir, "define void @main()") {
		t.Fatalf("expected a main definition, got:\n%s", ir)
	}
}

func TestBuildWithRegisteredExtern(t *testing.T) {
	fs := source.NewFileSet()
	dir := t.TempDir()
	path := dir + "/main.tab"
	writeFile(t, path, "function main() -> i64:\n\treturn puts(1)\n")

	externs := driver.Externs{{
		Name:       "puts",
		Params:     []ast.Param{{Name: "x", Type: 0}},
		ReturnType: 0,
	}}
	// Builtin TypeIDs are the same in every freshly seeded interner (see
	// types.NewInterner); fill in the real ids through a throwaway parse
	// so the extern's signature actually matches the call site.
	res, err := driver.Parse(fs, path)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	i64 := res.Interner.Builtins().I64
	externs[0].Params[0].Type = i64
	externs[0].ReturnType = i64

	if _, err := driver.Check(fs, path, externs); err != nil {
		t.Fatalf("unexpected error calling a registered extern: %v", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
