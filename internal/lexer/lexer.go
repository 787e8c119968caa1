// Package lexer turns one source file into the ordered token list the
// parser consumes. It is line-oriented: the reference language's only
// grouping construct is leading-tab indentation, so the lexer processes
// the file one physical line at a time rather than as a continuous byte
// stream, synthesizing IndentPlus/IndentMinus and EndOfLine tokens as it
// goes.
package lexer

import (
	"bytes"

	"tabc/internal/diag"
	"tabc/internal/source"
	"tabc/internal/token"
)

// Tokenize lexes file in full and returns its token list, or the first
// fatal lex error encountered. There is no recovery: a single bad byte
// aborts the whole file.
func Tokenize(file *source.File) ([]token.Token, error) {
	lx := &lexer{file: file}
	if err := lx.run(); err != nil {
		return nil, err
	}
	return lx.out, nil
}

type lexer struct {
	file   *source.File
	out    []token.Token
	indent int
}

func (lx *lexer) run() error {
	lines := splitLines(lx.file.Content)
	var lineNo uint32
	for _, raw := range lines {
		lineNo++
		tabs := leadingTabs(raw)
		rest := raw[tabs:]
		if len(rest) == 0 || rest[0] == '#' {
			// Blank or whole-line comment: skipped entirely, does not
			// affect indentation accounting.
			continue
		}
		if err := lx.emitIndentDelta(tabs, int(lineNo), tabs); err != nil {
			return err
		}
		if err := lx.scanLine(rest, lineNo, tabs); err != nil {
			return err
		}
		lx.emit(token.EndOfLine, lineNo, uint32(len(raw))+1, "")
	}
	for lx.indent > 0 {
		lx.indent--
		lx.emit(token.IndentMinus, lineNo+1, 1, "")
	}
	lx.emit(token.EOF, lineNo+1, 1, "")
	return nil
}

func (lx *lexer) emitIndentDelta(newIndent int, lineNo, col int) error {
	col++ // 1-based
	switch {
	case newIndent > lx.indent:
		for lx.indent < newIndent {
			lx.indent++
			lx.emit(token.IndentPlus, uint32(lineNo), uint32(col), "")
		}
	case newIndent < lx.indent:
		for lx.indent > newIndent {
			lx.indent--
			lx.emit(token.IndentMinus, uint32(lineNo), uint32(col), "")
		}
	}
	return nil
}

// scanLine tokenizes the content of one significant line, after its
// leading indentation tabs have already been stripped. tabOffset is the
// number of tabs stripped, used only to compute accurate columns.
func (lx *lexer) scanLine(rest []byte, lineNo uint32, tabOffset int) error {
	cur := newCursor(rest)
	for {
		skipSpaces(&cur)
		if cur.eof() {
			return nil
		}
		if cur.peek() == '#' {
			// Trailing comment: truncate the rest of the line.
			return nil
		}
		col := uint32(tabOffset) + cur.pos + 1
		if err := lx.scanToken(&cur, lineNo, col); err != nil {
			return err
		}
	}
}

func (lx *lexer) scanToken(cur *cursor, lineNo, col uint32) error {
	b := cur.peek()
	switch {
	case isAlpha(b):
		return lx.scanIdentOrKeyword(cur, lineNo, col)
	case isDigit(b):
		return lx.scanNumber(cur, lineNo, col)
	case b == '"':
		return lx.scanString(cur, lineNo, col)
	case b == '\'':
		return lx.scanChar(cur, lineNo, col)
	default:
		return lx.scanOperatorOrPunct(cur, lineNo, col)
	}
}

func (lx *lexer) emit(kind token.Kind, line, col uint32, text string) {
	lx.out = append(lx.out, token.Token{
		Kind: kind,
		Pos:  source.Position{File: lx.file.ID, Line: line, Col: col},
		Text: text,
	})
}

func (lx *lexer) errf(line, col uint32, code diag.Code, msg string) error {
	return diag.NewLexError(code, source.Position{File: lx.file.ID, Line: line, Col: col}, msg)
}

func splitLines(content []byte) [][]byte {
	if len(content) == 0 {
		return nil
	}
	return bytes.Split(content, []byte{'\n'})
}

func leadingTabs(line []byte) int {
	n := 0
	for n < len(line) && line[n] == '\t' {
		n++
	}
	return n
}

func skipSpaces(cur *cursor) {
	for !cur.eof() && (cur.peek() == ' ' || cur.peek() == '\t') {
		cur.bump()
	}
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpecial(b byte) bool {
	switch b {
	case '(', ')', '[', ']', '{', '}', ',', ':', '.', '&', '*', '/', '+', '-', '<', '>', '=', '!', '"', '\'', '#', ' ', '\t':
		return true
	default:
		return false
	}
}
