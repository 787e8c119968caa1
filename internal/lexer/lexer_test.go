package lexer_test

import (
	"testing"

	"tabc/internal/lexer"
	"tabc/internal/source"
	"tabc/internal/token"
)

func tokenize(t *testing.T, content string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tab", []byte(content))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func wantKinds(t *testing.T, got []token.Kind, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kind count mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("kind %d: got %v, want %v (full: got %v, want %v)", i, got[i], want[i], got, want)
		}
	}
}

func TestIndentTracksTabsOnly(t *testing.T) {
	toks := tokenize(t, "function f():\n\tvar x = 1\n")
	got := kinds(toks)
	want := []token.Kind{
		token.KwFunction, token.Ident, token.LParen, token.RParen, token.Colon, token.EndOfLine,
		token.IndentPlus, token.KwVar, token.Ident, token.Assign, token.IntLit, token.EndOfLine,
		token.IndentMinus, token.EOF,
	}
	wantKinds(t, got, want)
}

func TestSpacesDoNotIndent(t *testing.T) {
	// A line indented with spaces, not tabs, does not open a block: the
	// indent counter only ever looks at leading tab bytes.
	toks := tokenize(t, "function f():\n    var x = 1\n")
	got := kinds(toks)
	want := []token.Kind{
		token.KwFunction, token.Ident, token.LParen, token.RParen, token.Colon, token.EndOfLine,
		token.KwVar, token.Ident, token.Assign, token.IntLit, token.EndOfLine,
		token.EOF,
	}
	wantKinds(t, got, want)
}

func TestKeywordPrefixMisTokenizesIdentifier(t *testing.T) {
	// "forward" begins with the keyword "for": the lexer's prefix match
	// splits it into KwFor followed by an Ident for the remainder "ward".
	toks := tokenize(t, "forward")
	got := kinds(toks)
	want := []token.Kind{token.KwFor, token.Ident, token.EndOfLine, token.EOF}
	wantKinds(t, got, want)
	if toks[1].Text != "ward" {
		t.Fatalf("remainder ident text = %q, want %q", toks[1].Text, "ward")
	}
}

func TestIdentifierStartingWithOrMisTokenizes(t *testing.T) {
	toks := tokenize(t, "orders")
	got := kinds(toks)
	// "orders" begins with keyword "or", so it mis-tokenizes too.
	want := []token.Kind{token.KwOr, token.Ident, token.EndOfLine, token.EOF}
	wantKinds(t, got, want)
	if toks[1].Text != "ders" {
		t.Fatalf("remainder ident text = %q, want %q", toks[1].Text, "ders")
	}
}

func TestCharLiteralClosingQuoteUnvalidated(t *testing.T) {
	// The byte after the char value is consumed unconditionally as the
	// closing quote, even when it is not actually a quote.
	toks := tokenize(t, "'ax")
	if len(toks) < 1 || toks[0].Kind != token.CharLit {
		t.Fatalf("got %v, want a leading CharLit", kinds(toks))
	}
	if toks[0].Text != "a" {
		t.Fatalf("char literal value = %q, want %q", toks[0].Text, "a")
	}
}

func TestCharLiteralEscape(t *testing.T) {
	toks := tokenize(t, `'\n'`)
	if toks[0].Kind != token.CharLit || toks[0].Text != "\n" {
		t.Fatalf("got kind=%v text=%q, want CharLit %q", toks[0].Kind, toks[0].Text, "\n")
	}
}

func TestNumberSuffixes(t *testing.T) {
	toks := tokenize(t, "42 7u64 9i64")
	want := []token.Kind{token.IntLit, token.UintLit, token.IntLit, token.EndOfLine, token.EOF}
	wantKinds(t, kinds(toks), want)
	if toks[0].Text != "42" || toks[1].Text != "7" || toks[2].Text != "9" {
		t.Fatalf("literal texts = %q, %q, %q; want 42, 7, 9", toks[0].Text, toks[1].Text, toks[2].Text)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nb\"c"`)
	if toks[0].Kind != token.StringLit {
		t.Fatalf("got %v, want StringLit", toks[0].Kind)
	}
	want := "a\nb\"c"
	if toks[0].Text != want {
		t.Fatalf("string literal value = %q, want %q", toks[0].Text, want)
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tab", []byte(`"abc`))
	if _, err := lexer.Tokenize(fs.Get(id)); err == nil {
		t.Fatal("expected error for unterminated string literal")
	}
}

func TestTrailingCommentTruncatesLine(t *testing.T) {
	toks := tokenize(t, "var x = 1 # trailing note\n")
	want := []token.Kind{token.KwVar, token.Ident, token.Assign, token.IntLit, token.EndOfLine, token.EOF}
	wantKinds(t, kinds(toks), want)
}

func TestWholeLineCommentSkipped(t *testing.T) {
	toks := tokenize(t, "# a comment\nvar x = 1\n")
	want := []token.Kind{token.KwVar, token.Ident, token.Assign, token.IntLit, token.EndOfLine, token.EOF}
	wantKinds(t, kinds(toks), want)
}

func TestStrayBangIsFatal(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.tab", []byte("x ! y"))
	if _, err := lexer.Tokenize(fs.Get(id)); err == nil {
		t.Fatal("expected error for stray '!'")
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	toks := tokenize(t, "( ) [ ] { } , : . & * / + ++ - -> < > = == !=")
	want := []token.Kind{
		token.LParen, token.RParen, token.LBracket, token.RBracket, token.LBrace, token.RBrace,
		token.Comma, token.Colon, token.Dot, token.Amp, token.Star, token.Slash,
		token.Plus, token.PlusPlus, token.Minus, token.Arrow, token.Lt, token.Gt,
		token.Assign, token.EqEq, token.BangEq, token.EndOfLine, token.EOF,
	}
	wantKinds(t, kinds(toks), want)
}

func TestMultipleIndentLevels(t *testing.T) {
	src := "function f():\n\tif x:\n\t\tvar y = 1\n\tvar z = 2\n"
	toks := tokenize(t, src)
	got := kinds(toks)
	want := []token.Kind{
		token.KwFunction, token.Ident, token.LParen, token.RParen, token.Colon, token.EndOfLine,
		token.IndentPlus, token.KwIf, token.Ident, token.Colon, token.EndOfLine,
		token.IndentPlus, token.KwVar, token.Ident, token.Assign, token.IntLit, token.EndOfLine,
		token.IndentMinus, token.KwVar, token.Ident, token.Assign, token.IntLit, token.EndOfLine,
		token.IndentMinus, token.EOF,
	}
	wantKinds(t, got, want)
}
