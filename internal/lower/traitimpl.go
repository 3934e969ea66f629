package lower

import (
	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

// FinishTraitImpls fills in TraitImpl.Args for every extension the module
// scanner recorded (§4.8). scan.go cannot do this itself: computing an
// arena type from a trait clause's `*ast.TypeNode` arguments requires
// Lower, and Lower's package depends on module, so module cannot depend
// back on it. This is the missing second half of scanExt, run once after
// scanning and before any trait resolution.
//
// The convention: a trait clause's Args begins with the extended type
// itself (the implicit Self), followed by each of the clause's own type
// arguments lowered in order (e.g. `ext T { given Cast 'u }` yields
// Args=[T, 'u]). A clause with no extra arguments but whose declared
// trait takes more than one type parameter (the common homogeneous case,
// `ext T { given Eq }` meaning `Eq T T`) has Self repeated to pad out to
// the trait's declared arity.
func FinishTraitImpls(tc *types.TypeContext, mod *module.Module, sink *diag.Sink) {
	if mod.AST == nil {
		return
	}
	l := New(tc, mod, sink)
	for _, ext := range mod.AST.Extensions {
		if ext.TypeExpr == nil {
			continue
		}
		self := l.Lower(ext.TypeExpr)
		for _, tcc := range ext.Traits {
			impl := findUnresolvedImpl(mod, tcc, ext)
			if impl == nil {
				continue
			}
			args := []types.Type{self}
			for _, tn := range tcc.Args {
				args = append(args, l.Lower(tn))
			}
			if want, ok := mod.Traits[tcc.Trait]; ok {
				for len(args) < len(want.TypeArgs) {
					args = append(args, self)
				}
			}
			impl.Args = args
		}
	}
}

// findUnresolvedImpl locates the TraitImpl scanExt created for this
// extension's trait clause, matched by Ext identity (an extension may
// carry several clauses for the same trait name, each with its own
// not-yet-populated TraitImpl; the first one scanExt recorded in source
// order whose Args are still unset is the one this clause owns).
func findUnresolvedImpl(mod *module.Module, tcc *ast.Tcc, ext *ast.Ext) *module.TraitImpl {
	for _, impl := range mod.TraitImpls[tcc.Trait] {
		if impl.Ext == ext && impl.Args == nil {
			return impl
		}
	}
	return nil
}
