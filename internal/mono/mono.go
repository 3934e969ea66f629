// Package mono implements monomorphisation (§4.6 steps 1 and 3): every
// call site that invokes a generic function gets its own ground
// instantiation, produced by cloning the callee's body, constraining it
// against the call site's ground argument types, unifying, resolving
// trait constraints, and applying the resulting substitution — cached by
// (function identity, ground parameter signature) so repeat call sites
// with the same ground types share one instantiation.
package mono

import (
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/constraint"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/lower"
	"github.com/ante-lang/antec/internal/mangle"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/subst"
	"github.com/ante-lang/antec/internal/trait"
	"github.com/ante-lang/antec/internal/types"
)

// Instantiation is one ground specialization of a generic function: a
// freshly cloned, fully substituted body plus the mangled name codegen
// should emit it under (§6).
type Instantiation struct {
	Source      *ast.FuncDecl // the original, still-generic declaration
	Decl        *ast.FuncDecl // the cloned, ground body handed to codegen
	Type        *types.Func
	MangledName string
}

// Monomorphiser holds the shared arena/module/diagnostics context every
// instantiation is solved against, plus the instantiation cache.
type Monomorphiser struct {
	tc         *types.TypeContext
	mod        *module.Module
	sink       *diag.Sink
	resolver   *trait.Resolver
	lower      *lower.Lowerer
	intDefault types.PrimTag
	fltDefault types.PrimTag

	cache map[string]*Instantiation
}

func New(tc *types.TypeContext, mod *module.Module, sink *diag.Sink, intDefault, fltDefault types.PrimTag) *Monomorphiser {
	return &Monomorphiser{
		tc: tc, mod: mod, sink: sink,
		resolver:   trait.NewResolver(tc),
		lower:      lower.New(tc, mod, sink),
		intDefault: intDefault,
		fltDefault: fltDefault,
		cache:      make(map[string]*Instantiation),
	}
}

// cacheKey identifies one (generic function, ground argument list) pair.
// fd's pointer disambiguates same-named functions across modules; the
// mangled form of groundArgs disambiguates call sites, matching the
// signature encoding codegen will key its own emission cache by (§6).
func cacheKey(fd *ast.FuncDecl, groundArgs []types.Type) string {
	return fmt.Sprintf("%p|%s", fd, mangle.Mangle(fd.Name, groundArgs))
}

// Instantiate produces (or retrieves from cache) the ground specialization
// of fd for a call site whose arguments have already been solved to
// groundArgs. fd must not itself be mutated — a deep clone is substituted
// in its place (§4.6 step 3: "recompiled under the ground mapping").
func (m *Monomorphiser) Instantiate(fd *ast.FuncDecl, groundArgs []types.Type, loc ast.Location) (*Instantiation, error) {
	key := cacheKey(fd, groundArgs)
	if inst, ok := m.cache[key]; ok {
		return inst, nil
	}

	clonedNode := clone(fd)
	clonedFd, ok := clonedNode.(*ast.FuncDecl)
	if !ok {
		return nil, &diag.Report{Code: diag.INT001, Phase: diag.PhaseMono,
			Message: "monomorphisation target is not a function declaration", Loc: loc, Fatal: true}
	}

	coll := constraint.New(m.tc, m.mod, m.sink, m.intDefault, m.fltDefault)
	coll.Collect(clonedFd)
	result := coll.Result()

	fnTy, ok := clonedFd.GetType().(*types.Func)
	if !ok {
		return nil, &diag.Report{Code: diag.INT001, Phase: diag.PhaseMono,
			Message: "cloned function declaration produced no function type", Loc: loc, Fatal: true}
	}

	normGround := types.NormalizeParams(groundArgs, m.tc.Prim(types.Unit))
	if len(normGround) != len(fnTy.Params) {
		return nil, &diag.Report{Code: diag.ARI002, Phase: diag.PhaseMono,
			Message: fmt.Sprintf("%s expects %d argument(s), got %d", fd.Name, len(fnTy.Params), len(normGround)),
			Loc:     loc}
	}

	unifier := types.NewUnifier(m.tc)
	var sub types.Substitution
	var err error
	for i := range normGround {
		sub, err = unifier.Unify(fnTy.Params[i], normGround[i], sub, loc)
		if err != nil {
			return nil, m.wrapUnifyErr(err, loc)
		}
	}

	sub, err = m.solveFrom(result, sub, unifier)
	if err != nil {
		return nil, err
	}

	subst.Apply(sub, clonedFd)

	groundTy, ok := types.ApplySubstitution(sub, fnTy).(*types.Func)
	if !ok {
		return nil, &diag.Report{Code: diag.INT001, Phase: diag.PhaseMono,
			Message: "substituted function type is not a Func", Loc: loc, Fatal: true}
	}
	if groundTy.IsGeneric() {
		return nil, &diag.Report{Code: diag.MONO001, Phase: diag.PhaseMono,
			Message: fmt.Sprintf("%s cannot be fully instantiated from this call site: %s", fd.Name, groundTy),
			Loc:     loc}
	}

	inst := &Instantiation{
		Source:      fd,
		Decl:        clonedFd,
		Type:        groundTy,
		MangledName: mangle.Mangle(fd.Name, groundTy.Params),
	}
	m.cache[key] = inst
	return inst, nil
}

// Solve runs the full §4.4/§4.6-step-2 sequence over a top-level
// collection result (no call-site parameter unification precedes it,
// unlike Instantiate): unify every equality constraint in source order,
// then resolve every trait constraint against the resulting
// substitution.
func (m *Monomorphiser) Solve(result *constraint.Result) (types.Substitution, error) {
	return m.solveFrom(result, nil, types.NewUnifier(m.tc))
}

func (m *Monomorphiser) solveFrom(result *constraint.Result, sub types.Substitution, unifier *types.Unifier) (types.Substitution, error) {
	var err error
	for _, c := range result.Constraints {
		sub, err = unifier.Unify(c.Left, c.Right, sub, c.Loc)
		if err != nil {
			return nil, &diag.Report{Code: diag.UNI001, Phase: diag.PhaseMono,
				Message: c.Message + ": " + err.Error(), Loc: c.Loc}
		}
	}
	return m.resolveTraits(result.Traits, sub, unifier)
}

func (m *Monomorphiser) wrapUnifyErr(err error, loc ast.Location) error {
	if _, ok := err.(*types.OccursError); ok {
		return &diag.Report{Code: diag.UNI002, Phase: diag.PhaseMono, Message: err.Error(), Loc: loc}
	}
	return &diag.Report{Code: diag.UNI001, Phase: diag.PhaseMono, Message: err.Error(), Loc: loc}
}

// resolveTraits implements §4.6 step 2 over a function's trait
// constraints, including the two-phase dance TraitConstraint.Result
// requires: Ref.Args must be ground before Resolve is called, but Result
// need not be — it is unified against the resolution's output type only
// after resolution succeeds, and that unification is folded back into
// the running substitution for every constraint resolved afterward.
func (m *Monomorphiser) resolveTraits(cs []constraint.TraitConstraint, sub types.Substitution, unifier *types.Unifier) (types.Substitution, error) {
	for _, tcon := range cs {
		ref := substituteRef(sub, tcon.Ref)
		if !ref.IsGround() {
			return nil, &diag.Report{Code: diag.MONO001, Phase: diag.PhaseMono,
				Message: fmt.Sprintf("trait constraint %s is not ground after substitution", ref), Loc: tcon.Loc}
		}
		res, err := m.resolver.Resolve(m.mod, ref, tcon.Loc, m.sink)
		if err != nil {
			return nil, err
		}
		if tcon.Result == nil {
			continue
		}
		outTy, err := m.resultTypeOf(ref, res, tcon.Loc)
		if err != nil {
			return nil, err
		}
		wantTy := types.ApplySubstitution(sub, tcon.Result)
		sub, err = unifier.Unify(wantTy, outTy, sub, tcon.Loc)
		if err != nil {
			return nil, m.wrapUnifyErr(err, tcon.Loc)
		}
	}
	return sub, nil
}

func substituteRef(sub types.Substitution, ref *types.TraitRef) *types.TraitRef {
	args := make([]types.Type, len(ref.Args))
	for i, a := range ref.Args {
		args[i] = types.ApplySubstitution(sub, a)
	}
	return &types.TraitRef{TraitName: ref.TraitName, Args: args, Impl: ref.Impl}
}

// resultTypeOf reads the output type a resolved Extract/Insert/Iterable
// constraint produces. Builtin resolutions carry it directly. A
// user-defined impl has no associated-type slot in TraitImpl (§4.8 models
// trait impls as a bag of methods, not an associated-type record), so the
// output type is read off the implementing method's own declared return
// type instead — a deliberate, documented simplification (see
// DESIGN.md): a method with no declared return type cannot back one of
// these three traits.
func (m *Monomorphiser) resultTypeOf(ref *types.TraitRef, res *trait.Resolution, loc ast.Location) (types.Type, error) {
	if res.Builtin != nil {
		return res.Builtin.Result, nil
	}
	name, ok := resultMethodName[ref.TraitName]
	if !ok {
		return nil, &diag.Report{Code: diag.INT001, Phase: diag.PhaseMono,
			Message: fmt.Sprintf("trait %s unexpectedly carries a deferred result type", ref.TraitName), Loc: loc, Fatal: true}
	}
	methodDecl, ok := res.Impl.Methods[name]
	if !ok {
		return nil, &diag.Report{Code: diag.TRA001, Phase: diag.PhaseMono,
			Message: fmt.Sprintf("implementation of %s is missing its %s method", ref, name), Loc: loc}
	}
	methodFd, ok := methodDecl.Node.(*ast.FuncDecl)
	if !ok || methodFd.TypeExpr == nil {
		return nil, &diag.Report{Code: diag.TRA001, Phase: diag.PhaseMono,
			Message: fmt.Sprintf("%s.%s has no declared return type to recover an output type from", ref, name), Loc: loc}
	}
	return m.lower.Lower(methodFd.TypeExpr), nil
}

var resultMethodName = map[string]string{
	trait.Extract: "extract",
	trait.Insert:  "insert",
	"Iterable":    "iter",
}

// FindCallSites walks n (already constraint-collected, so every BinOp
// call node's DeclPtr is populated where resolvable) and returns every
// call site whose callee resolves to a generic function declaration —
// the set this package's caller should drive Instantiate over (§4.6 step
// 1: "every call site... gets its own instantiation").
func FindCallSites(n ast.Node) []*ast.BinOp {
	var out []*ast.BinOp
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		if node == nil {
			return
		}
		if b, ok := node.(*ast.BinOp); ok && b.Op == "(" && b.DeclPtr != nil {
			if fnTy, ok := b.DeclPtr.GetType().(*types.Func); ok && fnTy.IsGeneric() {
				out = append(out, b)
			}
		}
		for _, child := range children(node) {
			walk(child)
		}
	}
	walk(n)
	return out
}

// children enumerates n's direct expression/statement children, for the
// plain structural walk FindCallSites performs. It deliberately mirrors
// subst.walker's node coverage rather than importing it, since the two
// walks serve different purposes (one rewrites types, this one collects
// call sites) and subst's walker type is unexported.
func children(n ast.Node) []ast.Node {
	switch node := n.(type) {
	case *ast.Root:
		return node.Main
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
	case *ast.FuncDecl:
		return []ast.Node{node.Body}
	default:
		return nil
	}
}
