package lexer

import "tabc/internal/token"

// scanChar consumes a single-quoted character literal. The closing quote is
// consumed unconditionally without checking that it actually is a quote —
// preserved deliberately, not a bug to fix here.
func (lx *lexer) scanChar(cur *cursor, lineNo, col uint32) error {
	cur.bump() // opening '\''
	var value byte
	if cur.peek() == '\\' {
		cur.bump()
		e := cur.bump()
		switch e {
		case 'r':
			value = '\r'
		case 'n':
			value = '\n'
		case '\'':
			value = '\''
		case '0':
			value = 0
		default:
			value = e
		}
	} else {
		value = cur.bump()
	}
	cur.bump() // closing quote, unvalidated
	lx.emit(token.CharLit, lineNo, col, string(value))
	return nil
}
