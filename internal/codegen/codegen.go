// Package codegen is the compiler's only external collaborator: it
// consumes a validated set of Functions (and their already-typed
// expression tree) and emits a minimal LLVM-flavored textual IR. It
// is a reference implementation of the handoff contract, not a
// production backend — no optimizer, no real machine code, no
// register allocation beyond one alloca per local. Everything here
// exists to exercise the contract end-to-end: every typed expression
// the validator produced has somewhere to go.
package codegen

import (
	"fmt"
	"strings"

	"tabc/internal/ast"
	"tabc/internal/types"
)

// Emitter owns the textual IR buffer for one module (one file's worth
// of validated Functions).
type Emitter struct {
	in  *types.Interner
	buf strings.Builder

	strConsts map[string]string // literal text -> global name
	nextGlobal int
}

// EmitModule renders fns (both extern declarations and defined
// functions) against exprs as one textual IR module.
func EmitModule(fns []*ast.Function, exprs *ast.Exprs, in *types.Interner) (string, error) {
	e := &Emitter{in: in, strConsts: make(map[string]string)}
	for _, fn := range fns {
		if fn.IsExtern() {
			e.emitExternDecl(fn)
		}
	}
	for _, fn := range fns {
		if fn.IsExtern() {
			continue
		}
		if err := e.emitFunction(fn, exprs); err != nil {
			return "", err
		}
	}
	e.emitStringGlobals()
	return e.buf.String(), nil
}

// emitStringGlobals appends a private constant global for every string
// literal encountered while lowering function bodies. Emitted last,
// since this reference textual IR is never handed to a real LLVM
// assembler that would care about forward references to globals.
func (e *Emitter) emitStringGlobals() {
	for text, name := range e.strConsts {
		n := len(text) + 1
		fmt.Fprintf(&e.buf, "@%s = private unnamed_addr constant [%d x i8] %s\n", name, n, escapeLLVMString(text))
	}
}

func (e *Emitter) emitExternDecl(fn *ast.Function) {
	params := make([]string, len(fn.Proto.Params))
	for i, p := range fn.Proto.Params {
		params[i] = llvmType(e.in, p.Type)
	}
	fmt.Fprintf(&e.buf, "declare %s @%s(%s)\n", llvmType(e.in, fn.Proto.ReturnType), fn.Proto.Name, strings.Join(params, ", "))
}

// funcEmitter holds the per-function state: temp/block counters, the
// scope stack of name -> alloca-register bindings (mirroring the
// validator's own scope stack, one layer per Scope/ForLoop/argument
// binding), and the enclosing loop's continue/break labels.
type funcEmitter struct {
	mod   *Emitter
	exprs *ast.Exprs

	tmp int
	blk int

	scopes []map[string]string
	loops  []loopLabels
}

type loopLabels struct {
	continueLabel string
	breakLabel    string
}

func (e *Emitter) emitFunction(fn *ast.Function, exprs *ast.Exprs) error {
	fe := &funcEmitter{mod: e, exprs: exprs}
	fe.pushScope() // argument-binding scope

	params := make([]string, len(fn.Proto.Params))
	for i, p := range fn.Proto.Params {
		params[i] = fmt.Sprintf("%s %%arg%d", llvmType(e.in, p.Type), i)
	}
	fmt.Fprintf(&e.buf, "define %s @%s(%s) {\n", llvmType(e.in, fn.Proto.ReturnType), fn.Proto.Name, strings.Join(params, ", "))
	fmt.Fprint(&e.buf, "entry:\n")
	for i, p := range fn.Proto.Params {
		ty := llvmType(e.in, p.Type)
		reg := fe.nextTemp()
		fmt.Fprintf(&e.buf, "  %s = alloca %s\n", reg, ty)
		fmt.Fprintf(&e.buf, "  store %s %%arg%d, ptr %s\n", ty, i, reg)
		fe.bind(p.Name, reg)
	}

	if _, _, err := fe.emit(fn.Body); err != nil {
		return err
	}
	if !fe.terminates(exprs.Get(fn.Body)) {
		if fn.Proto.ReturnType == e.in.Builtins().Void {
			fmt.Fprint(&e.buf, "  ret void\n")
		} else {
			fmt.Fprint(&e.buf, "  unreachable\n")
		}
	}
	fmt.Fprint(&e.buf, "}\n\n")
	return nil
}

func (fe *funcEmitter) nextTemp() string {
	fe.tmp++
	return fmt.Sprintf("%%t%d", fe.tmp)
}

func (fe *funcEmitter) nextLabel(tag string) string {
	fe.blk++
	return fmt.Sprintf("%s%d", tag, fe.blk)
}

func (fe *funcEmitter) pushScope() { fe.scopes = append(fe.scopes, make(map[string]string)) }
func (fe *funcEmitter) popScope()  { fe.scopes = fe.scopes[:len(fe.scopes)-1] }

func (fe *funcEmitter) bind(name, reg string) {
	fe.scopes[len(fe.scopes)-1][name] = reg
}

func (fe *funcEmitter) lookup(name string) (string, bool) {
	for i := len(fe.scopes) - 1; i >= 0; i-- {
		if reg, ok := fe.scopes[i][name]; ok {
			return reg, true
		}
	}
	return "", false
}

// terminates reports whether node is a Terminating statement (Return,
// Continue, Break) or a Scope whose last statement terminates — the
// glossary's definition, used to decide whether a synthetic
// fall-through branch is needed.
func (fe *funcEmitter) terminates(node *ast.Expression) bool {
	switch node.Kind {
	case ast.ExprReturn, ast.ExprContinue, ast.ExprBreak:
		return true
	case ast.ExprScope:
		if len(node.Children) == 0 {
			return false
		}
		return fe.terminates(fe.exprs.Get(node.Children[len(node.Children)-1]))
	default:
		return false
	}
}
