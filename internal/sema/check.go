// Package sema validates the parser's output: it resolves every
// identifier, assigns a type to every expression the parser left
// untyped, and rejects programs whose operands, arities, or control
// flow don't type-check. It mutates the AST it walks rather than
// building a separate typed tree.
package sema

import (
	"tabc/internal/ast"
	"tabc/internal/diag"
	"tabc/internal/source"
	"tabc/internal/types"
)

// Checker walks one file's Functions against one type Interner. It is
// the single struct, single big per-kind switch shape a hand-written
// type checker uses for a closed expression grammar: no visitor
// interface, no separate typed-AST output, just in-place mutation and
// first-error-wins propagation.
type Checker struct {
	exprs *ast.Exprs
	in    *types.Interner
	funcs map[string]*ast.FunctionPrototype

	scopes      []map[string]types.TypeID
	currentFunc string
	returnType  types.TypeID
}

// NewChecker creates a Checker against the given type Interner. Use
// RegisterExtern to seed externally-declared functions before calling
// Check, or simply include extern ast.Functions (Body == NoExprID) in
// the fns slice passed to Check; both paths land in the same table.
func NewChecker(in *types.Interner) *Checker {
	return &Checker{in: in, funcs: make(map[string]*ast.FunctionPrototype)}
}

// RegisterExtern adds an extern function's prototype to the function
// table so that calls to it type-check, without requiring a body to
// validate. This is the validator's extern-function registration
// contract the outer driver uses for linked-in declarations.
func (c *Checker) RegisterExtern(proto ast.FunctionPrototype) {
	c.funcs[proto.Name] = &proto
}

// Check validates every non-extern function in fns against exprs,
// returning the first fatal diagnostic encountered. Extern functions
// (IsExtern() == true) are registered into the function table but
// have no body to walk.
func (c *Checker) Check(fns []*ast.Function, exprs *ast.Exprs) error {
	c.exprs = exprs
	for _, fn := range fns {
		proto := fn.Proto
		c.funcs[proto.Name] = &proto
	}
	for _, fn := range fns {
		if fn.IsExtern() {
			continue
		}
		if err := c.checkFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkFunction(fn *ast.Function) error {
	c.currentFunc = fn.Proto.Name
	c.returnType = fn.Proto.ReturnType

	scope := make(map[string]types.TypeID, len(fn.Proto.Params))
	for _, p := range fn.Proto.Params {
		scope[p.Name] = p.Type
	}
	c.scopes = []map[string]types.TypeID{scope}

	if _, err := c.validateExpr(fn.Body); err != nil {
		return err
	}
	return nil
}

func (c *Checker) errf(code diag.Code, pos source.Position, msg string) error {
	return diag.NewTypeError(c.currentFunc, code, pos, msg)
}

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, make(map[string]types.TypeID))
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) bind(name string, typ types.TypeID) {
	c.scopes[len(c.scopes)-1][name] = typ
}

// lookup searches the scope stack innermost-first.
func (c *Checker) lookup(name string) (types.TypeID, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if t, ok := c.scopes[i][name]; ok {
			return t, true
		}
	}
	return types.NoTypeID, false
}
