package lexer

import (
	"strings"

	"tabc/internal/diag"
	"tabc/internal/token"
)

// scanString consumes a double-quoted literal, translating \r, \n, \" and
// passing any other escaped byte through literally (the backslash itself
// is dropped). An unterminated literal is a fatal lex error.
func (lx *lexer) scanString(cur *cursor, lineNo, col uint32) error {
	cur.bump() // opening '"'
	var b strings.Builder
	for {
		if cur.eof() {
			return lx.errf(lineNo, col, diag.LexUnterminatedString, "unterminated string literal")
		}
		c := cur.bump()
		if c == '"' {
			lx.emit(token.StringLit, lineNo, col, b.String())
			return nil
		}
		if c == '\\' {
			if cur.eof() {
				return lx.errf(lineNo, col, diag.LexUnterminatedString, "unterminated string literal")
			}
			e := cur.bump()
			switch e {
			case 'r':
				b.WriteByte('\r')
			case 'n':
				b.WriteByte('\n')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte(e)
			}
			continue
		}
		b.WriteByte(c)
	}
}
