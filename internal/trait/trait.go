// Package trait implements trait resolution (§4.6 step 2): given a
// ground TraitRef, find a matching TraitImpl in the current module's
// import closure, or — for the fixed set of builtin traits over
// primitive types — synthesize a trivial implementation (§4.6a).
package trait

import (
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

// Builtin trait names, per §4.6a.
const (
	Add     = "Add"
	Sub     = "Sub"
	Mul     = "Mul"
	Div     = "Div"
	Mod     = "Mod"
	Cmp     = "Cmp"
	Eq      = "Eq"
	Is      = "Is"
	Neg     = "Neg"
	Cast    = "Cast"
	Extract = "Extract"
	Insert  = "Insert"
	Deref   = "Deref"
	Not     = "Not"
)

var builtinNames = map[string]bool{
	Add: true, Sub: true, Mul: true, Div: true, Mod: true,
	Cmp: true, Eq: true, Is: true, Neg: true, Cast: true,
	Extract: true, Insert: true, Deref: true, Not: true,
}

// IsBuiltinTraitName reports whether name is one of the fixed builtin
// trait names §4.6a knows how to synthesize.
func IsBuiltinTraitName(name string) bool { return builtinNames[name] }

// Resolution is the outcome of resolving one ground TraitRef: exactly one
// of Impl or Builtin is set.
type Resolution struct {
	Impl    *module.TraitImpl
	Builtin *Builtin
}

// Resolver resolves trait constraints against a module's import closure,
// falling back to builtin synthesis for primitive operations.
type Resolver struct {
	tc *types.TypeContext
}

func NewResolver(tc *types.TypeContext) *Resolver { return &Resolver{tc: tc} }

// Resolve implements §4.6 step 2: ref must already be ground (no free
// type variables) by the time it reaches here — callers apply the
// call-site substitution first. mod is searched via its import closure
// (§4.8 lookupTraitImpl); on no user impl and a builtin-eligible
// primitive signature, a synthetic implementation is produced instead.
func (r *Resolver) Resolve(mod *module.Module, ref *types.TraitRef, loc ast.Location, sink *diag.Sink) (*Resolution, error) {
	if !ref.IsGround() {
		return nil, &diag.Report{
			Code: diag.INT001, Phase: diag.PhaseTraitResolve,
			Message: fmt.Sprintf("trait constraint %s is not ground at resolution time", ref),
			Loc:     loc, Fatal: true,
		}
	}

	impl, err := mod.LookupTraitImpl(ref.TraitName, ref.Args)
	if err != nil {
		if amb, ok := err.(*module.AmbiguousImplError); ok {
			return nil, &diag.Report{
				Code: diag.TRA002, Phase: diag.PhaseTraitResolve,
				Message: fmt.Sprintf("ambiguous implementation for %s: %d candidates", ref, len(amb.Candidates)),
				Loc:     loc,
			}
		}
		return nil, err
	}
	if impl != nil {
		ref.Impl = impl
		return &Resolution{Impl: impl}, nil
	}

	if ref.TraitName == Cast && len(ref.Args) == 2 {
		if b, ok := SynthesizeCast(r.tc, ref.Args[0], ref.Args[1]); ok {
			return &Resolution{Builtin: b}, nil
		}
	}
	if b, ok := SynthesizeBuiltin(r.tc, ref.TraitName, ref.Args); ok {
		return &Resolution{Builtin: b}, nil
	}

	return nil, &diag.Report{
		Code: diag.TRA001, Phase: diag.PhaseTraitResolve,
		Message: fmt.Sprintf("no implementation of %s found", ref),
		Loc:     loc,
	}
}
