package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"tabc/internal/diag"
	"tabc/internal/diagfmt"
	"tabc/internal/source"
	"tabc/internal/token"
)

func newFileSet(t *testing.T, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tab", []byte(content))
	return fs, id
}

func TestPrettyRendersPathAndCaret(t *testing.T) {
	fs, id := newFileSet(t, "var x i64 = foo\n")
	err := diag.NewTypeError("main", diag.TypeUnknownVariable, source.Position{File: id, Line: 1, Col: 14}, "unknown variable foo")

	var buf bytes.Buffer
	if perr := diagfmt.Pretty(&buf, err, fs, diagfmt.PrettyOpts{}); perr != nil {
		t.Fatalf("Pretty: %v", perr)
	}
	out := buf.String()
	if !strings.Contains(out, "t.tab:1:14") {
		t.Fatalf("missing location: %q", out)
	}
	if !strings.Contains(out, "unknown variable foo") {
		t.Fatalf("missing message: %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header+source+caret, got %d lines: %q", len(lines), out)
	}
	caret := lines[2]
	if !strings.HasSuffix(caret, "^") {
		t.Fatalf("caret line doesn't end in ^: %q", caret)
	}
}

func TestPrettyWithNilFileSetPrintsOnlyHeader(t *testing.T) {
	err := diag.NewLexError(diag.LexUnknownChar, source.Position{Line: 2, Col: 3}, "unexpected character")
	var buf bytes.Buffer
	if perr := diagfmt.Pretty(&buf, err, nil, diagfmt.PrettyOpts{}); perr != nil {
		t.Fatalf("Pretty: %v", perr)
	}
	if strings.Count(buf.String(), "\n") != 1 {
		t.Fatalf("expected exactly one line, got %q", buf.String())
	}
}

func TestJSONRoundTripsDiagnostic(t *testing.T) {
	fs, id := newFileSet(t, "")
	err := diag.NewSyntaxError(diag.SynUnexpectedToken, source.Position{File: id, Line: 5, Col: 1}, "unexpected token")

	var buf bytes.Buffer
	if jerr := diagfmt.JSON(&buf, err, fs, diagfmt.JSONOpts{}); jerr != nil {
		t.Fatalf("JSON: %v", jerr)
	}
	if !strings.Contains(buf.String(), `"code": "syn-unexpected-token"`) {
		t.Fatalf("missing code in JSON: %s", buf.String())
	}
}

func TestMsgpackEncodesWithoutError(t *testing.T) {
	fs, id := newFileSet(t, "")
	err := diag.NewTypeError("f", diag.TypeMismatch, source.Position{File: id, Line: 1, Col: 1}, "mismatch")
	var buf bytes.Buffer
	if merr := diagfmt.Msgpack(&buf, err, fs, diagfmt.JSONOpts{}); merr != nil {
		t.Fatalf("Msgpack: %v", merr)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty msgpack output")
	}
}

func TestFormatTokensPrettyStopsAtEOF(t *testing.T) {
	toks := []token.Token{
		{Kind: token.KwVar, Text: "var", Pos: source.Position{Line: 1, Col: 1}},
		{Kind: token.EOF, Pos: source.Position{Line: 1, Col: 4}},
		{Kind: token.KwVar, Text: "should-not-appear", Pos: source.Position{Line: 2, Col: 1}},
	}
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&buf, toks); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	if strings.Contains(buf.String(), "should-not-appear") {
		t.Fatalf("expected output to stop at EOF: %s", buf.String())
	}
}

func TestFormatTokensJSONStopsAtEOF(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Ident, Text: "x", Pos: source.Position{Line: 1, Col: 1}},
		{Kind: token.EOF, Pos: source.Position{Line: 1, Col: 2}},
		{Kind: token.Ident, Text: "should-not-appear", Pos: source.Position{Line: 2, Col: 1}},
	}
	var buf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&buf, toks); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "`) {
		t.Fatalf("unexpected JSON: %s", buf.String())
	}
	if strings.Contains(buf.String(), "should-not-appear") {
		t.Fatalf("expected output to stop at EOF: %s", buf.String())
	}
}
