package parser

import (
	"tabc/internal/diag"
	"tabc/internal/token"
	"tabc/internal/types"
)

// parseStructDecl parses:
//
//	struct NAME : <EOL> <IndentPlus> (field : TYPE <EOL>)+ <IndentMinus>
//
// and inserts the resulting record type into the type environment under
// NAME so later declarations can reference it by name.
func (p *Parser) parseStructDecl() error {
	if _, err := p.expect(token.KwStruct, diag.SynMalformedDecl, "'struct'"); err != nil {
		return err
	}
	nameTok, err := p.expect(token.Ident, diag.SynMalformedDecl, "a struct name")
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
		return err
	}
	if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
		return err
	}
	if _, err := p.expect(token.IndentPlus, diag.SynUnexpectedIndent, "an indented struct body"); err != nil {
		return err
	}

	var fields []types.Field
	for !p.at(token.IndentMinus) {
		fieldTok, err := p.expect(token.Ident, diag.SynMalformedDecl, "a field name")
		if err != nil {
			return err
		}
		if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
			return err
		}
		typ, err := p.parseType()
		if err != nil {
			return err
		}
		for _, existing := range fields {
			if existing.Name == fieldTok.Text {
				return diag.NewSyntaxError(diag.SynDuplicateField, fieldTok.Pos, "duplicate field \""+fieldTok.Text+"\"")
			}
		}
		fields = append(fields, types.Field{Name: fieldTok.Text, Type: typ})
		if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
			return err
		}
	}
	if len(fields) == 0 {
		return diag.NewSyntaxError(diag.SynMalformedDecl, nameTok.Pos, "struct \""+nameTok.Text+"\" must declare at least one field")
	}
	if _, err := p.expect(token.IndentMinus, diag.SynUnexpectedIndent, "end of struct body"); err != nil {
		return err
	}

	recordID := p.interner.InternRecord(fields)
	p.typeEnv[nameTok.Text] = recordID
	return nil
}
