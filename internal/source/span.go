package source

import "fmt"

// Position names a single point in a source file by 1-based line and
// column. Every token, and every diagnostic derived from one, carries a
// Position rather than a byte range: the language's own error model is
// file:line (see the tokenizer's line discipline), and column is carried
// only to draw a caret under the offending lexeme.
type Position struct {
	File FileID
	Line uint32
	Col  uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
