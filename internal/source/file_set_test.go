package source

import (
	"os"
	"testing"
)

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.tab", []byte("a\nb\nc"))
	f := fs.Get(id)
	if got := f.GetLine(1); got != "a" {
		t.Fatalf("line 1 = %q, want %q", got, "a")
	}
	if got := f.GetLine(3); got != "c" {
		t.Fatalf("line 3 = %q, want %q", got, "c")
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 = %q, want empty", got)
	}
}

func TestFileSetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.tab", []byte("function f() -> i64:\n\treturn 0\n"))
	if got := fs.Line(Position{File: id, Line: 2}); got != "\treturn 0" {
		t.Fatalf("line 2 = %q", got)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	fs := NewFileSet()
	dir := t.TempDir() + "/x.tab"
	content := []byte{0xEF, 0xBB, 0xBF}
	content = append(content, []byte("function f() -> i64:\r\n\treturn 0\r\n")...)
	if err := os.WriteFile(dir, content, 0o600); err != nil {
		t.Fatal(err)
	}
	id, err := fs.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Fatal("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Fatal("expected FileNormalizedCRLF flag")
	}
	if got := f.GetLine(1); got != "function f() -> i64:" {
		t.Fatalf("line 1 = %q", got)
	}
}
