package lexer

import "tabc/internal/token"

// scanNumber consumes a run of digits and an optional immediately-adjacent
// "i64" or "u64" suffix. The emitted lexeme never includes the suffix; a
// literal with no suffix defaults to i64.
func (lx *lexer) scanNumber(cur *cursor, lineNo, col uint32) error {
	start := cur.pos
	for !cur.eof() && isDigit(cur.peek()) {
		cur.bump()
	}
	text := string(cur.line[start:cur.pos])
	kind := token.IntLit
	switch {
	case cur.hasPrefix("i64"):
		cur.pos += 3
		kind = token.IntLit
	case cur.hasPrefix("u64"):
		cur.pos += 3
		kind = token.UintLit
	}
	lx.emit(kind, lineNo, col, text)
	return nil
}
