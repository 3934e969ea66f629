// Package constraint implements the constraint-finding pass of §4.3: a
// visitor over the typed AST that emits an ordered list of equality
// constraints plus a list of required type-class constraints.
package constraint

import (
	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/types"
)

// Constraint is one equality requirement, with the location and
// human-readable message it should surface if unification fails (§4.3).
type Constraint struct {
	Left, Right types.Type
	Loc         ast.Location
	Message     string
}

// TraitConstraint is one required type-class instance (§4.3, §4.6).
//
// Result is non-nil only for the handful of builtin traits whose output
// type cannot be read back out of Ref.Args alone (Extract/Insert: the
// element type comes from the container's structure, discovered only
// once the container is ground; Iterable: the loop-bound element type
// may still be a free variable at collection time). When Result is set,
// resolution must not require it to already be ground — only Ref.Args
// need be — and must unify Result against the resolution's output type
// as an extra step after synthesis/impl lookup, feeding that unifier
// back into the substitution the rest of the function uses.
type TraitConstraint struct {
	Ref    *types.TraitRef
	Loc    ast.Location
	Result types.Type
}

// Result is everything one collection pass produced, in AST source order
// (§5 "constraint lists are produced in AST source order").
type Result struct {
	Constraints []Constraint
	Traits      []TraitConstraint
}

func (r *Result) emit(left, right types.Type, loc ast.Location, msg string) {
	r.Constraints = append(r.Constraints, Constraint{Left: left, Right: right, Loc: loc, Message: msg})
}

func (r *Result) emitTrait(ref *types.TraitRef, loc ast.Location) {
	r.Traits = append(r.Traits, TraitConstraint{Ref: ref, Loc: loc})
}

// emitTraitResult is emitTrait for the Extract/Insert/Iterable shape
// described on TraitConstraint.Result.
func (r *Result) emitTraitResult(ref *types.TraitRef, result types.Type, loc ast.Location) {
	r.Traits = append(r.Traits, TraitConstraint{Ref: ref, Loc: loc, Result: result})
}
