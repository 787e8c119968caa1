package parser

import (
	"strconv"

	"tabc/internal/diag"
	"tabc/internal/token"
	"tabc/internal/types"
)

// parseType consumes a base type name followed by any number of `*` and
// `[N]` suffixes, associating left-to-right: `i64*[4]` is "array of 4
// pointer-to-i64".
func (p *Parser) parseType() (types.TypeID, error) {
	nameTok, err := p.expect(token.Ident, diag.SynUnknownType, "a type name")
	if err != nil {
		return types.NoTypeID, err
	}
	id, ok := p.typeEnv[nameTok.Text]
	if !ok {
		return types.NoTypeID, diag.NewSyntaxError(diag.SynUnknownType, nameTok.Pos, "unknown type \""+nameTok.Text+"\"")
	}
	for {
		switch p.peek().Kind {
		case token.Star:
			p.advance()
			id = p.interner.Intern(types.MakePointer(id))
		case token.LBracket:
			p.advance()
			sizeTok, err := p.expect(token.IntLit, diag.SynBadArraySize, "an integer array size")
			if err != nil {
				return types.NoTypeID, err
			}
			n, convErr := strconv.ParseUint(sizeTok.Text, 10, 64)
			if convErr != nil {
				return types.NoTypeID, diag.NewSyntaxError(diag.SynBadArraySize, sizeTok.Pos, "bad array size \""+sizeTok.Text+"\"")
			}
			if _, err := p.expect(token.RBracket, diag.SynBadArraySize, "']'"); err != nil {
				return types.NoTypeID, err
			}
			id = p.interner.Intern(types.MakeArray(id, n))
		default:
			return id, nil
		}
	}
}
