// Package parser builds the function list and type environment for one
// source file from its token stream: a hand-written recursive-descent
// parser with a one-token lookahead buffer and a precedence-climbing
// expression parser, the same shape as a conventional single-pass
// compiler frontend.
package parser

import (
	"fmt"

	"tabc/internal/ast"
	"tabc/internal/diag"
	"tabc/internal/token"
	"tabc/internal/types"
)

// Result is everything ParseFile produces from one token stream.
type Result struct {
	Functions []*ast.Function
	Exprs     *ast.Exprs
	Interner  *types.Interner
	TypeEnv   map[string]types.TypeID
}

// Parser holds the state needed to parse exactly one file's token stream.
// It never recovers from an error: the first fatal diagnostic aborts
// ParseFile entirely, matching the tokenizer's own no-recovery contract.
type Parser struct {
	toks []token.Token
	pos  int

	exprs    *ast.Exprs
	interner *types.Interner
	typeEnv  map[string]types.TypeID

	declaredFuncs map[string]bool
	functions     []*ast.Function
}

// ParseFile parses a complete token stream (as produced by
// tabc/internal/lexer.Tokenize) into a Result, or returns the first fatal
// parse error encountered.
func ParseFile(toks []token.Token) (*Result, error) {
	in := types.NewInterner()
	p := &Parser{
		toks:          toks,
		exprs:         ast.NewExprs(),
		interner:      in,
		typeEnv:       seedTypeEnv(in),
		declaredFuncs: make(map[string]bool),
	}
	if err := p.parseTopLevel(); err != nil {
		return nil, err
	}
	return &Result{
		Functions: p.functions,
		Exprs:     p.exprs,
		Interner:  p.interner,
		TypeEnv:   p.typeEnv,
	}, nil
}

func seedTypeEnv(in *types.Interner) map[string]types.TypeID {
	b := in.Builtins()
	return map[string]types.TypeID{
		"i32":  b.I32,
		"i64":  b.I64,
		"u64":  b.U64,
		"bool": b.Bool,
		"char": b.Char,
		"void": b.Void,
	}
}

// parseTopLevel alternates between function and struct declarations until
// EndOfFile, per the surface grammar's top-level alternation.
func (p *Parser) parseTopLevel() error {
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwFunction:
			fn, err := p.parseFunctionDecl()
			if err != nil {
				return err
			}
			p.functions = append(p.functions, fn)
		case token.KwStruct:
			if err := p.parseStructDecl(); err != nil {
				return err
			}
		default:
			return p.errf(diag.SynUnexpectedTopLevel, "expected 'function' or 'struct' declaration, found %q", p.peek().Text)
		}
	}
	return nil
}

// --- token-stream primitives -------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches k, otherwise returns a
// fatal parse error.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.errf(code, "expected %s, found %q", what, p.peek().Text)
}

func (p *Parser) errf(code diag.Code, format string, args ...any) error {
	return diag.NewSyntaxError(code, p.peek().Pos, fmt.Sprintf(format, args...))
}
