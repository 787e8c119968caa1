package parser

import (
	"tabc/internal/ast"
	"tabc/internal/diag"
	"tabc/internal/token"
)

// parseBlock parses an indented block framed by IndentPlus/IndentMinus
// into a Scope expression. Stray EndOfLine tokens between statements are
// skipped.
func (p *Parser) parseBlock() (ast.ExprID, error) {
	openTok, err := p.expect(token.IndentPlus, diag.SynUnexpectedIndent, "an indented block")
	if err != nil {
		return ast.NoExprID, err
	}
	var children []ast.ExprID
	for !p.at(token.IndentMinus) {
		if p.at(token.EndOfLine) {
			p.advance()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return ast.NoExprID, err
		}
		children = append(children, stmt)
	}
	if _, err := p.expect(token.IndentMinus, diag.SynUnexpectedIndent, "end of block"); err != nil {
		return ast.NoExprID, err
	}
	return p.exprs.NewScope(openTok.Pos, children), nil
}

// parseStatement dispatches on the current token: one of the
// statement-like keywords, or a bare expression statement.
func (p *Parser) parseStatement() (ast.ExprID, error) {
	switch p.peek().Kind {
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseConditional()
	case token.KwFor:
		return p.parseForLoop()
	case token.KwContinue:
		tok := p.advance()
		if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
			return ast.NoExprID, err
		}
		return p.exprs.NewContinue(tok.Pos), nil
	case token.KwBreak:
		tok := p.advance()
		if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
			return ast.NoExprID, err
		}
		return p.exprs.NewBreak(tok.Pos), nil
	case token.KwVar:
		return p.parseVarDecl()
	default:
		expr, err := p.parseExpression(precLowest)
		if err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
			return ast.NoExprID, err
		}
		return expr, nil
	}
}

// parseReturn parses `return` followed either by EndOfLine (void return)
// or an expression.
func (p *Parser) parseReturn() (ast.ExprID, error) {
	tok := p.advance()
	if p.at(token.EndOfLine) {
		p.advance()
		return p.exprs.NewReturn(tok.Pos, ast.NoExprID), nil
	}
	value, err := p.parseExpression(precLowest)
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
		return ast.NoExprID, err
	}
	return p.exprs.NewReturn(tok.Pos, value), nil
}

// parseVarDecl parses `var NAME : TYPE = EXPR`.
func (p *Parser) parseVarDecl() (ast.ExprID, error) {
	tok := p.advance()
	nameTok, err := p.expect(token.Ident, diag.SynMalformedDecl, "a variable name")
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
		return ast.NoExprID, err
	}
	declType, err := p.parseType()
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.Assign, diag.SynMalformedDecl, "'='"); err != nil {
		return ast.NoExprID, err
	}
	init, err := p.parseExpression(precLowest)
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
		return ast.NoExprID, err
	}
	variable := p.exprs.NewVariable(nameTok.Pos, nameTok.Text, declType)
	return p.exprs.NewVariableDeclaration(tok.Pos, variable, init), nil
}

// parseConditional parses an if / elif* / else? chain into a Conditional
// expression whose children follow [cond, body, (cond, body)*, body?].
func (p *Parser) parseConditional() (ast.ExprID, error) {
	tok := p.advance() // 'if'
	var children []ast.ExprID

	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
		return ast.NoExprID, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.NoExprID, err
	}
	children = append(children, cond, body)

	for p.at(token.KwElif) {
		p.advance()
		cond, err := p.parseExpression(precLowest)
		if err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
			return ast.NoExprID, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return ast.NoExprID, err
		}
		children = append(children, cond, body)
	}

	if p.at(token.KwElse) {
		p.advance()
		if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
			return ast.NoExprID, err
		}
		elseBody, err := p.parseBlock()
		if err != nil {
			return ast.NoExprID, err
		}
		children = append(children, elseBody)
	}

	return p.exprs.NewConditional(tok.Pos, children), nil
}

// parseForLoop parses `for INIT , COND , STEP : <EOL> BODY`.
func (p *Parser) parseForLoop() (ast.ExprID, error) {
	tok := p.advance() // 'for'

	init, err := p.parseForInit()
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.Comma, diag.SynMalformedDecl, "','"); err != nil {
		return ast.NoExprID, err
	}
	cond, err := p.parseExpression(precLowest)
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.Comma, diag.SynMalformedDecl, "','"); err != nil {
		return ast.NoExprID, err
	}
	step, err := p.parseExpression(precLowest)
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.EndOfLine, diag.SynMalformedDecl, "end of line"); err != nil {
		return ast.NoExprID, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.NoExprID, err
	}
	return p.exprs.NewForLoop(tok.Pos, init, cond, step, body), nil
}

// parseForInit parses the for loop's init clause: either a variable
// declaration (without its own trailing EndOfLine, since the loop header
// continues on the same line) or a bare expression.
func (p *Parser) parseForInit() (ast.ExprID, error) {
	if p.at(token.KwVar) {
		tok := p.advance()
		nameTok, err := p.expect(token.Ident, diag.SynMalformedDecl, "a variable name")
		if err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.Colon, diag.SynMalformedDecl, "':'"); err != nil {
			return ast.NoExprID, err
		}
		declType, err := p.parseType()
		if err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.Assign, diag.SynMalformedDecl, "'='"); err != nil {
			return ast.NoExprID, err
		}
		init, err := p.parseExpression(precLowest)
		if err != nil {
			return ast.NoExprID, err
		}
		variable := p.exprs.NewVariable(nameTok.Pos, nameTok.Text, declType)
		return p.exprs.NewVariableDeclaration(tok.Pos, variable, init), nil
	}
	return p.parseExpression(precLowest)
}
