package lexer

import "tabc/internal/token"

// scanIdentOrKeyword dispatches to a keyword token when the remaining input
// has a keyword spelling as a PREFIX (see token.MatchKeywordPrefix for the
// deliberately-preserved mis-tokenization this implies), otherwise scans a
// full identifier.
func (lx *lexer) scanIdentOrKeyword(cur *cursor, lineNo, col uint32) error {
	rest := string(cur.line[cur.pos:])
	if kind, text, ok := token.MatchKeywordPrefix(rest); ok {
		for range text {
			cur.bump()
		}
		lx.emit(kind, lineNo, col, text)
		return nil
	}
	start := cur.pos
	for !cur.eof() && !isSpecial(cur.peek()) {
		cur.bump()
	}
	text := string(cur.line[start:cur.pos])
	lx.emit(token.Ident, lineNo, col, text)
	return nil
}
