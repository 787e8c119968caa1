package parser

import (
	"tabc/internal/ast"
	"tabc/internal/diag"
	"tabc/internal/token"
	"tabc/internal/types"
)

// parseExpression implements precedence climbing: it parses a unary
// expression, then repeatedly consumes binary operators whose precedence
// is at least minPrec, recursing on the right-hand side with that
// operator's precedence plus one.
func (p *Parser) parseExpression(minPrec int) (ast.ExprID, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		prec, ok := binaryPrec(p.peek().Kind)
		if !ok || prec < minPrec {
			return lhs, nil
		}
		opTok := p.advance()
		rhs, err := p.parseExpression(prec + 1)
		if err != nil {
			return ast.NoExprID, err
		}
		if opTok.Kind == token.Assign {
			lhs = p.exprs.NewVariableAssignment(opTok.Pos, lhs, rhs)
			continue
		}
		lhs = p.exprs.NewBinary(binaryExprKind(opTok.Kind), opTok.Pos, lhs, rhs)
	}
}

// parseUnary handles the prefix operators `*` (dereference), `-`
// (negate), and `&` (address-of). Multiple prefixes stack and are
// applied from innermost outwards: the leftmost operator ends up as the
// outermost wrapping node once recursion unwinds.
func (p *Parser) parseUnary() (ast.ExprID, error) {
	switch p.peek().Kind {
	case token.Star:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.exprs.NewUnary(ast.ExprPointerDereference, tok.Pos, operand), nil
	case token.Minus:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.exprs.NewUnary(ast.ExprNegate, tok.Pos, operand), nil
	case token.Amp:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return ast.NoExprID, err
		}
		return p.exprs.NewUnary(ast.ExprAddressOf, tok.Pos, operand), nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression and then applies any
// left-to-right suffix chain: `++`, `[ expr ]`, `.` identifier.
func (p *Parser) parsePostfix() (ast.ExprID, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		switch p.peek().Kind {
		case token.PlusPlus:
			tok := p.advance()
			expr = p.exprs.NewUnary(ast.ExprPostIncrement, tok.Pos, expr)
		case token.LBracket:
			tok := p.advance()
			index, err := p.parseExpression(precLowest)
			if err != nil {
				return ast.NoExprID, err
			}
			if _, err := p.expect(token.RBracket, diag.SynMalformedDecl, "']'"); err != nil {
				return ast.NoExprID, err
			}
			expr = p.exprs.NewArraySubscript(tok.Pos, expr, index)
		case token.Dot:
			tok := p.advance()
			fieldTok, err := p.expect(token.Ident, diag.SynMalformedDecl, "a field name")
			if err != nil {
				return ast.NoExprID, err
			}
			field := p.exprs.NewVariable(fieldTok.Pos, fieldTok.Text, types.NoTypeID)
			expr = p.exprs.NewMemberAccess(tok.Pos, expr, field)
		default:
			return expr, nil
		}
	}
}

// parsePrimary parses the grammar's primary expressions: literals,
// parenthesized expressions, array/record composite literals, and
// identifiers (which become either a FunctionCall head or a bare
// Variable depending on whether the name names a declared function).
func (p *Parser) parsePrimary() (ast.ExprID, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		n, err := parseInt64(tok.Text)
		if err != nil {
			return ast.NoExprID, diag.NewSyntaxError(diag.SynMalformedDecl, tok.Pos, "bad integer literal \""+tok.Text+"\"")
		}
		return p.exprs.NewIntLiteral(tok.Pos, n, p.interner.Builtins().I64), nil
	case token.UintLit:
		p.advance()
		n, err := parseUint64(tok.Text)
		if err != nil {
			return ast.NoExprID, diag.NewSyntaxError(diag.SynMalformedDecl, tok.Pos, "bad integer literal \""+tok.Text+"\"")
		}
		return p.exprs.NewUintLiteral(tok.Pos, n, p.interner.Builtins().U64), nil
	case token.CharLit:
		p.advance()
		var b byte
		if len(tok.Text) > 0 {
			b = tok.Text[0]
		}
		return p.exprs.NewCharLiteral(tok.Pos, b, p.interner.Builtins().Char), nil
	case token.StringLit:
		p.advance()
		ptrChar := p.interner.Intern(types.MakePointer(p.interner.Builtins().Char))
		return p.exprs.NewStringLiteral(tok.Pos, tok.Text, ptrChar), nil
	case token.LParen:
		p.advance()
		inner, err := p.parseExpression(precLowest)
		if err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.RParen, diag.SynMalformedDecl, "')'"); err != nil {
			return ast.NoExprID, err
		}
		return inner, nil
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseRecordLiteral()
	case token.Ident:
		return p.parseIdentOrCall()
	default:
		return ast.NoExprID, diag.NewSyntaxError(diag.SynUnexpectedToken, tok.Pos, "unexpected token \""+tok.Text+"\"")
	}
}
