package lexer

import (
	"tabc/internal/diag"
	"tabc/internal/token"
)

// scanOperatorOrPunct handles every recognized special token. An
// unrecognized byte (including a stray '!') is a fatal lex error.
func (lx *lexer) scanOperatorOrPunct(cur *cursor, lineNo, col uint32) error {
	b := cur.bump()
	switch b {
	case '(':
		lx.emit(token.LParen, lineNo, col, "")
	case ')':
		lx.emit(token.RParen, lineNo, col, "")
	case '[':
		lx.emit(token.LBracket, lineNo, col, "")
	case ']':
		lx.emit(token.RBracket, lineNo, col, "")
	case '{':
		lx.emit(token.LBrace, lineNo, col, "")
	case '}':
		lx.emit(token.RBrace, lineNo, col, "")
	case ',':
		lx.emit(token.Comma, lineNo, col, "")
	case ':':
		lx.emit(token.Colon, lineNo, col, "")
	case '.':
		lx.emit(token.Dot, lineNo, col, "")
	case '&':
		lx.emit(token.Amp, lineNo, col, "")
	case '*':
		lx.emit(token.Star, lineNo, col, "")
	case '/':
		lx.emit(token.Slash, lineNo, col, "")
	case '+':
		if cur.peek() == '+' {
			cur.bump()
			lx.emit(token.PlusPlus, lineNo, col, "")
		} else {
			lx.emit(token.Plus, lineNo, col, "")
		}
	case '-':
		if cur.peek() == '>' {
			cur.bump()
			lx.emit(token.Arrow, lineNo, col, "")
		} else {
			lx.emit(token.Minus, lineNo, col, "")
		}
	case '<':
		lx.emit(token.Lt, lineNo, col, "")
	case '>':
		lx.emit(token.Gt, lineNo, col, "")
	case '=':
		if cur.peek() == '=' {
			cur.bump()
			lx.emit(token.EqEq, lineNo, col, "")
		} else {
			lx.emit(token.Assign, lineNo, col, "")
		}
	case '!':
		if cur.peek() == '=' {
			cur.bump()
			lx.emit(token.BangEq, lineNo, col, "")
		} else {
			return lx.errf(lineNo, col, diag.LexUnknownChar, "stray '!'")
		}
	default:
		return lx.errf(lineNo, col, diag.LexUnknownChar, "unrecognized character")
	}
	return nil
}
