package mono

import "github.com/ante-lang/antec/internal/ast"

// clone deep-copies an AST subtree so each call-site instantiation of a
// generic function gets its own type slots to solve independently (§4.6
// step 3: "recompiled under the ground mapping"). Declarations reached
// through DeclPtr/TypeExpr are shared, not cloned — only the shape that
// constraint collection and substitution-application write into differs
// per instantiation.
func clone(n ast.Node) ast.Node {
	if n == nil {
		return nil
	}
	switch node := n.(type) {
	case *ast.IntLit:
		c := *node
		return &c
	case *ast.FltLit:
		c := *node
		return &c
	case *ast.StrLit:
		c := *node
		return &c
	case *ast.CharLit:
		c := *node
		return &c
	case *ast.BoolLit:
		c := *node
		return &c

	case *ast.Array:
		c := *node
		c.Exprs = cloneSlice(node.Exprs)
		return &c
	case *ast.Tuple:
		c := *node
		c.Exprs = cloneSlice(node.Exprs)
		return &c

	case *ast.TypeCast:
		c := *node
		c.Args = cloneSlice(node.Args)
		return &c

	case *ast.UnOp:
		c := *node
		c.Rval = clone(node.Rval)
		return &c

	case *ast.BinOp:
		c := *node
		c.Lval = clone(node.Lval)
		c.Rval = clone(node.Rval)
		return &c

	case *ast.Seq:
		c := *node
		c.Stmts = cloneSlice(node.Stmts)
		return &c

	case *ast.Block:
		c := *node
		c.Inner = clone(node.Inner)
		return &c

	case *ast.Ret:
		c := *node
		c.Expr = clone(node.Expr)
		return &c

	case *ast.If:
		c := *node
		c.Cond = clone(node.Cond)
		c.Then = clone(node.Then)
		c.Else = clone(node.Else)
		return &c

	case *ast.While:
		c := *node
		c.Cond = clone(node.Cond)
		c.Body = clone(node.Body)
		return &c

	case *ast.For:
		c := *node
		c.Pattern = clone(node.Pattern)
		c.Range = clone(node.Range)
		c.Body = clone(node.Body)
		return &c

	case *ast.Match:
		c := *node
		c.Expr = clone(node.Expr)
		branches := make([]*ast.MatchBranch, len(node.Branches))
		for i, b := range node.Branches {
			branches[i] = clone(b).(*ast.MatchBranch)
		}
		c.Branches = branches
		return &c
	case *ast.MatchBranch:
		c := *node
		c.Pattern = clone(node.Pattern)
		c.Branch = clone(node.Branch)
		return &c

	case *ast.Var:
		c := *node
		return &c
	case *ast.VarAssign:
		c := *node
		c.RefExpr = clone(node.RefExpr)
		c.Expr = clone(node.Expr)
		return &c

	case *ast.Jump:
		c := *node
		c.Expr = clone(node.Expr)
		return &c

	case *ast.PatLit:
		c := *node
		return &c
	case *ast.PatVar:
		c := *node
		return &c
	case *ast.PatTuple:
		c := *node
		c.Elems = cloneSlice(node.Elems)
		return &c
	case *ast.PatCtor:
		c := *node
		c.Args = cloneSlice(node.Args)
		return &c

	case *ast.FuncDecl:
		c := *node
		c.Body = clone(node.Body)
		return &c

	default:
		// NamedVal/TypeNode/Ext/DataDecl/TraitNode/Import/Mod carry no
		// per-call-site type state; the original is shared.
		return n
	}
}

func cloneSlice(ns []ast.Node) []ast.Node {
	if ns == nil {
		return nil
	}
	out := make([]ast.Node, len(ns))
	for i, n := range ns {
		out[i] = clone(n)
	}
	return out
}
