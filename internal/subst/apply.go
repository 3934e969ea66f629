// Package subst implements the substitution-application pass of §4.5: a
// visitor that rewrites every expression node's cached type by applying
// a solved substitution list, without re-descending into
// function-internal declarations (those are handled later, during
// monomorphisation).
package subst

import (
	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/types"
)

// Apply walks root and calls types.ApplySubstitution on every node's
// cached type slot (§4.5). Nested function declarations, impls, and
// submodules are deliberately left untouched here — §4.5 "are processed
// when monomorphised".
func Apply(subs types.Substitution, root ast.Node) {
	w := &walker{subs: subs, root: root}
	w.visit(root)
}

type walker struct {
	subs types.Substitution
	root ast.Node
}

func (w *walker) applyTo(t *ast.Typed) {
	if ty := t.GetType(); ty != nil {
		t.SetType(types.ApplySubstitution(w.subs, ty))
	}
}

// visit dispatches on concrete node type, applying the substitution to
// any Typed embed and recursing into expression children. It stops at
// FuncDecl/Ext/DataDecl/TraitNode bodies: those are walked again, fresh,
// when the function in question is monomorphised (§4.5).
func (w *walker) visit(n ast.Node) {
	if n == nil {
		return
	}
	switch node := n.(type) {
	case *ast.Root:
		for _, imp := range node.Main {
			w.visit(imp)
		}
		// Funcs/Extensions/Types/Traits are walked per-instantiation by
		// monomorphisation, not here.

	case *ast.IntLit:
		w.applyTo(&node.Typed)
	case *ast.FltLit:
		w.applyTo(&node.Typed)
	case *ast.StrLit:
		w.applyTo(&node.Typed)
	case *ast.CharLit:
		w.applyTo(&node.Typed)
	case *ast.BoolLit:
		w.applyTo(&node.Typed)

	case *ast.Array:
		w.applyTo(&node.Typed)
		for _, e := range node.Exprs {
			w.visit(e)
		}
	case *ast.Tuple:
		w.applyTo(&node.Typed)
		for _, e := range node.Exprs {
			w.visit(e)
		}

	case *ast.TypeCast:
		w.applyTo(&node.Typed)
		for _, a := range node.Args {
			w.visit(a)
		}

	case *ast.UnOp:
		w.applyTo(&node.Typed)
		w.visit(node.Rval)

	case *ast.BinOp:
		w.applyTo(&node.Typed)
		w.visit(node.Lval)
		w.visit(node.Rval)

	case *ast.Seq:
		w.applyTo(&node.Typed)
		for _, s := range node.Stmts {
			w.visit(s)
		}

	case *ast.Block:
		w.applyTo(&node.Typed)
		w.visit(node.Inner)

	case *ast.Ret:
		w.applyTo(&node.Typed)
		w.visit(node.Expr)

	case *ast.If:
		w.applyTo(&node.Typed)
		w.visit(node.Cond)
		w.visit(node.Then)
		w.visit(node.Else)

	case *ast.While:
		w.applyTo(&node.Typed)
		w.visit(node.Cond)
		w.visit(node.Body)

	case *ast.For:
		w.applyTo(&node.Typed)
		w.visit(node.Pattern)
		w.visit(node.Range)
		w.visit(node.Body)

	case *ast.Match:
		w.applyTo(&node.Typed)
		w.visit(node.Expr)
		for _, br := range node.Branches {
			w.visit(br)
		}
	case *ast.MatchBranch:
		w.visit(node.Pattern)
		w.visit(node.Branch)

	case *ast.Var:
		w.applyTo(&node.Typed)
	case *ast.VarAssign:
		w.applyTo(&node.Typed)
		w.visit(node.RefExpr)
		w.visit(node.Expr)

	case *ast.Jump:
		w.applyTo(&node.Typed)
		w.visit(node.Expr)

	case *ast.PatLit:
		w.applyTo(&node.Typed)
	case *ast.PatVar:
		w.applyTo(&node.Typed)
	case *ast.PatTuple:
		w.applyTo(&node.Typed)
		for _, e := range node.Elems {
			w.visit(e)
		}
	case *ast.PatCtor:
		w.applyTo(&node.Typed)
		for _, a := range node.Args {
			w.visit(a)
		}

	case *ast.FuncDecl:
		// The FuncDecl Apply was called on directly (e.g. the function
		// the driver is currently processing) gets its own body walked;
		// any other FuncDecl reached through it, or through a Seq in
		// Root.Main, is a nested declaration and is skipped, per §4.5.
		if node != w.root {
			return
		}
		w.applyTo(&node.Typed)
		w.visit(node.Body)

	default:
		// NamedVal, TypeNode, Ext, DataDecl, TraitNode, Import, Mod carry
		// no per-expression type slot substitution touches.
	}
}
