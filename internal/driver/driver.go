// Package driver orchestrates the core tokenize -> parse -> validate ->
// codegen pipeline for the command-line tool: single-file helpers for
// each stage, plus a concurrent batch driver over many files.
package driver

import (
	"fmt"

	"tabc/internal/ast"
	"tabc/internal/codegen"
	"tabc/internal/lexer"
	"tabc/internal/parser"
	"tabc/internal/sema"
	"tabc/internal/source"
	"tabc/internal/token"
	"tabc/internal/types"
)

// Tokenize reads path and returns its token stream. It is the single-file
// entry point behind `tabc tokenize`.
func Tokenize(fs *source.FileSet, path string) ([]token.Token, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lexer.Tokenize(fs.Get(id))
}

// Parse tokenizes and parses path, returning the parser's Result.
func Parse(fs *source.FileSet, path string) (*parser.Result, error) {
	toks, err := Tokenize(fs, path)
	if err != nil {
		return nil, err
	}
	return parser.ParseFile(toks)
}

// Externs is the set of extern prototypes a Check/Build caller wants
// registered before validation, e.g. a small runtime the CLI links
// against. The core itself has no surface syntax for externs (see
// SPEC_FULL.md §4.2); this is how an outer driver supplies them.
type Externs []ast.FunctionPrototype

// Check runs tokenize -> parse -> validate on a single file and returns
// the parser's Result (so callers like the disk cache can inspect the
// function table) alongside any validation error.
func Check(fs *source.FileSet, path string, externs Externs) (*parser.Result, error) {
	res, err := Parse(fs, path)
	if err != nil {
		return nil, err
	}
	c := sema.NewChecker(res.Interner)
	for _, proto := range externs {
		c.RegisterExtern(proto)
	}
	if err := c.Check(res.Functions, res.Exprs); err != nil {
		return res, err
	}
	return res, nil
}

// Build runs the full pipeline on a single file and returns the emitted
// textual IR.
func Build(fs *source.FileSet, path string, externs Externs) (string, error) {
	res, err := Check(fs, path, externs)
	if err != nil {
		return "", err
	}
	fns := res.Functions
	if len(externs) > 0 {
		fns = make([]*ast.Function, 0, len(externs)+len(res.Functions))
		for _, proto := range externs {
			fns = append(fns, &ast.Function{Proto: proto})
		}
		fns = append(fns, res.Functions...)
	}
	return codegen.EmitModule(fns, res.Exprs, res.Interner)
}

// BuiltinsTypeEnv exposes the interner's builtin type names, useful for
// tooling (e.g. diagfmt) that wants to render a type without its own
// Result in hand.
func BuiltinsTypeEnv(in *types.Interner) types.Builtins {
	return in.Builtins()
}
