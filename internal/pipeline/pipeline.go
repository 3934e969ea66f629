// Package pipeline wires the per-module passes of §2's data flow into a
// single entry point: declaration scan (already done by the caller, via
// internal/module), trait-impl arg resolution, constraint collection,
// unification, trait resolution, substitution application,
// monomorphisation, and pattern compilation — in that order, matching
// the stage list §2 names.
package pipeline

import (
	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/config"
	"github.com/ante-lang/antec/internal/constraint"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/lower"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/mono"
	"github.com/ante-lang/antec/internal/pattern"
	"github.com/ante-lang/antec/internal/subst"
	"github.com/ante-lang/antec/internal/types"
)

// Output collects everything downstream stages (codegen) need out of one
// compiled module.
type Output struct {
	Substitution    types.Substitution
	Instantiations  []*mono.Instantiation
	CompiledMatches map[*ast.Match]*pattern.Compiled
}

var intDefaultByName = map[string]types.PrimTag{
	"i8": types.I8, "i16": types.I16, "i32": types.I32, "i64": types.I64,
	"u8": types.U8, "u16": types.U16, "u32": types.U32, "u64": types.U64,
	"isz": types.Isz, "usz": types.Usz,
}

// Compile runs the full pipeline over mod, whose AST has already been
// scanned into its declaration tables (§4.8). It reports recoverable
// diagnostics to sink and returns as much of Output as could be produced;
// callers should check sink.Failed() before trusting the result is
// complete (§5 "continue after non-fatal failures when safe").
func Compile(tc *types.TypeContext, mod *module.Module, sink *diag.Sink, cfg *config.Config) *Output {
	if cfg == nil {
		cfg = config.Default()
	}
	intDefault := types.I32
	if tag, ok := intDefaultByName[cfg.IntLiteralDefault]; ok {
		intDefault = tag
	}
	fltDefault := types.F64

	lower.FinishTypeDecls(tc, mod, sink)
	lower.FinishTraitImpls(tc, mod, sink)

	coll := constraint.New(tc, mod, sink, intDefault, fltDefault)
	for _, fd := range mod.AST.Funcs {
		coll.Collect(fd)
	}
	for _, n := range mod.AST.Main {
		coll.Collect(n)
	}
	result := coll.Result()

	m := mono.New(tc, mod, sink, intDefault, fltDefault)
	sub, err := m.Solve(result)
	if err != nil {
		reportErr(sink, err)
		return &Output{CompiledMatches: map[*ast.Match]*pattern.Compiled{}}
	}

	for _, fd := range mod.AST.Funcs {
		subst.Apply(sub, fd)
	}
	for _, n := range mod.AST.Main {
		subst.Apply(sub, n)
	}

	out := &Output{Substitution: sub, CompiledMatches: map[*ast.Match]*pattern.Compiled{}}

	for _, fd := range mod.AST.Funcs {
		out.Instantiations = append(out.Instantiations, instantiateCallSites(m, fd.Body, sink)...)
	}
	for _, n := range mod.AST.Main {
		out.Instantiations = append(out.Instantiations, instantiateCallSites(m, n, sink)...)
	}

	compileMatches(mod, strTypeOf(mod), mod.AST.Funcs, mod.AST.Main, out, sink)

	return out
}

func instantiateCallSites(m *mono.Monomorphiser, root ast.Node, sink *diag.Sink) []*mono.Instantiation {
	var out []*mono.Instantiation
	for _, site := range mono.FindCallSites(root) {
		argTy := site.Rval.GetType()
		var args []types.Type
		if tup, ok := argTy.(*types.Tuple); ok {
			args = tup.Fields
		} else if argTy != nil {
			args = []types.Type{argTy}
		}
		inst, err := m.Instantiate(site.DeclPtr, args, site.Loc())
		if err != nil {
			reportErr(sink, err)
			continue
		}
		out = append(out, inst)
	}
	return out
}

// compileMatches walks every function body for Match expressions and
// compiles each one (§4.7), recording exhaustiveness diagnostics and the
// decision structure codegen will consume.
func compileMatches(mod *module.Module, strType types.Type, funcs []*ast.FuncDecl, main []ast.Node, out *Output, sink *diag.Sink) {
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		if match, ok := n.(*ast.Match); ok {
			scrutTy := match.Expr.GetType()
			compiled, err := pattern.Compile(scrutTy, match.Branches)
			if err != nil {
				sink.Report(diag.New(diag.EXH001, err.Error(), match.Loc()))
			} else {
				if compiled.FallthroughReachable {
					sink.Report(diag.New(diag.EXH001, "match is not exhaustive", match.Loc()))
				}
				if strType != nil {
					if err := pattern.ResolveStringEquality(compiled, mod, strType); err != nil {
						sink.Report(diag.New(diag.TRA001, err.Error(), match.Loc()))
					}
				}
				out.CompiledMatches[match] = compiled
			}
		}
		for _, c := range matchChildren(n) {
			walk(c)
		}
	}
	for _, fd := range funcs {
		walk(fd.Body)
	}
	for _, n := range main {
		walk(n)
	}
}

func strTypeOf(mod *module.Module) types.Type {
	decl, ok := mod.LookupType("Str")
	if !ok {
		return nil
	}
	return decl.Resolve()
}

func matchChildren(n ast.Node) []ast.Node {
	switch node := n.(type) {
	case *ast.Array:
		return node.Exprs
	case *ast.Tuple:
		return node.Exprs
	case *ast.TypeCast:
		return node.Args
	case *ast.UnOp:
		return []ast.Node{node.Rval}
	case *ast.BinOp:
		return []ast.Node{node.Lval, node.Rval}
	case *ast.Seq:
		return node.Stmts
	case *ast.Block:
		return []ast.Node{node.Inner}
	case *ast.Ret:
		return []ast.Node{node.Expr}
	case *ast.If:
		return []ast.Node{node.Cond, node.Then, node.Else}
	case *ast.While:
		return []ast.Node{node.Cond, node.Body}
	case *ast.For:
		return []ast.Node{node.Range, node.Body}
	case *ast.Match:
		children := []ast.Node{node.Expr}
		for _, br := range node.Branches {
			children = append(children, br.Branch)
		}
		return children
	case *ast.VarAssign:
		return []ast.Node{node.Expr}
	case *ast.Jump:
		return []ast.Node{node.Expr}
	default:
		return nil
	}
}

func reportErr(sink *diag.Sink, err error) {
	if r, ok := err.(*diag.Report); ok {
		sink.Report(r)
		return
	}
	sink.Report(diag.New(diag.INT001, err.Error(), nil))
}
