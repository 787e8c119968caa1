package parser

import (
	"tabc/internal/ast"
	"tabc/internal/diag"
	"tabc/internal/token"
)

// parseFunctionDecl parses:
//
//	function NAME ( args? ) -> TYPE : <EOL> <IndentPlus> body <IndentMinus>
//
// The function's name is registered as declared BEFORE its body is
// parsed, so a call to itself inside its own body resolves to a
// FunctionCall rather than a bare Variable. This deliberately does not
// extend to other, not-yet-declared functions: mutual recursion across
// functions is unsupported, since a later function's name is unknown at
// the point an earlier one's body is parsed.
func (p *Parser) parseFunctionDecl() (*ast.Function, error) {
	kwTok, err := p.expect(token.KwFunction, diag.SynMalformedDecl, "'function'")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident, diag.SynMalformedDecl, "a function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen, diag.SynMalformedDecl, "'('"); err != nil {
		return nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen, diag.SynMalformedDecl, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Arrow, diag.SynMalformedDecl, "'->'"); err != nil {
		return nil, err
	}
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
		return nil, err
	}

	p.declaredFuncs[nameTok.Text] = true

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Proto: ast.FunctionPrototype{
			Name:       nameTok.Text,
			Params:     params,
			ReturnType: retType,
			Pos:        kwTok.Pos,
		},
		Body: body,
	}, nil
}

// parseParamList parses zero or more `name : TYPE` pairs separated by
// commas, stopping before the closing ')'.
func (p *Parser) parseParamList() ([]ast.Param, error) {
	var params []ast.Param
	if p.at(token.RParen) {
		return params, nil
	}
	for {
		nameTok, err := p.expect(token.Ident, diag.SynMalformedDecl, "a parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		for _, existing := range params {
			if existing.Name == nameTok.Text {
				return nil, diag.NewSyntaxError(diag.SynDuplicateArg, nameTok.Pos, "duplicate parameter \""+nameTok.Text+"\"")
			}
		}
		params = append(params, ast.Param{Name: nameTok.Text, Type: typ})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		return params, nil
	}
}
