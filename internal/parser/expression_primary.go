package parser

import (
	"strconv"

	"tabc/internal/ast"
	"tabc/internal/diag"
	"tabc/internal/token"
	"tabc/internal/types"
)

func parseInt64(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}

func parseUint64(text string) (uint64, error) {
	return strconv.ParseUint(text, 10, 64)
}

// parseArrayLiteral parses `[ e1, e2, … ]`. Its type is an Array of the
// first element's type (whatever type that element already carries,
// possibly none) with length equal to the element count.
func (p *Parser) parseArrayLiteral() (ast.ExprID, error) {
	tok := p.advance() // '['
	var children []ast.ExprID
	for !p.at(token.RBracket) {
		elem, err := p.parseExpression(precLowest + 1)
		if err != nil {
			return ast.NoExprID, err
		}
		children = append(children, elem)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBracket, diag.SynMalformedDecl, "']'"); err != nil {
		return ast.NoExprID, err
	}
	if len(children) == 0 {
		return ast.NoExprID, diag.NewSyntaxError(diag.SynMalformedDecl, tok.Pos, "array literal must have at least one element")
	}
	firstType := p.exprs.Get(children[0]).Type
	arrType := p.interner.Intern(types.MakeArray(firstType, uint64(len(children))))
	return p.exprs.NewCompositeLiteral(tok.Pos, children, arrType), nil
}

// parseRecordLiteral parses `{ e1, e2, … }`. Its type is a Record with
// synthetic empty field names in element order, which per structural
// record equality (positional over field types, names ignored) may
// legitimately coincide with a nominally declared struct's type.
func (p *Parser) parseRecordLiteral() (ast.ExprID, error) {
	tok := p.advance() // '{'
	var children []ast.ExprID
	for !p.at(token.RBrace) {
		elem, err := p.parseExpression(precLowest + 1)
		if err != nil {
			return ast.NoExprID, err
		}
		children = append(children, elem)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBrace, diag.SynMalformedDecl, "'}'"); err != nil {
		return ast.NoExprID, err
	}
	fields := make([]types.Field, len(children))
	for i, c := range children {
		fields[i] = types.Field{Name: "", Type: p.exprs.Get(c).Type}
	}
	recType := p.interner.InternRecord(fields)
	return p.exprs.NewCompositeLiteral(tok.Pos, children, recType), nil
}

// parseIdentOrCall parses a bare identifier. A name that names a declared
// function becomes the head of a FunctionCall; any other name becomes a
// Variable whose type is left unset for the validator.
func (p *Parser) parseIdentOrCall() (ast.ExprID, error) {
	nameTok := p.advance()
	if !p.declaredFuncs[nameTok.Text] {
		return p.exprs.NewVariable(nameTok.Pos, nameTok.Text, types.NoTypeID), nil
	}
	callee := p.exprs.NewCallee(nameTok.Pos, nameTok.Text)
	if _, err := p.expect(token.LParen, diag.SynMalformedDecl, "'('"); err != nil {
		return ast.NoExprID, err
	}
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, err := p.parseExpression(precLowest + 1)
		if err != nil {
			return ast.NoExprID, err
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen, diag.SynMalformedDecl, "')'"); err != nil {
		return ast.NoExprID, err
	}
	return p.exprs.NewFunctionCall(nameTok.Pos, callee, args), nil
}
