package types

import (
	"fmt"
	"strings"
)

// TraitRef is a single required type-class constraint attached to a
// function type, e.g. `given Show 'a`. Impl is filled in by trait
// resolution (§4.6) once the constraint is ground and a concrete
// implementation has been found; it is nil until then.
type TraitRef struct {
	TraitName string
	Args      []Type
	Impl      interface{} // *module.TraitImpl once resolved; nil beforehand
}

func (r *TraitRef) String() string {
	parts := make([]string, len(r.Args))
	for i, a := range r.Args {
		parts[i] = a.String()
	}
	if len(parts) == 0 {
		return r.TraitName
	}
	return r.TraitName + " " + strings.Join(parts, " ")
}

// Equals compares trait name and argument types structurally; Impl is not
// part of identity (two unresolved refs to the same constraint are equal).
func (r *TraitRef) Equals(other *TraitRef) bool {
	if r.TraitName != other.TraitName || len(r.Args) != len(other.Args) {
		return false
	}
	for i := range r.Args {
		if !r.Args[i].Equals(other.Args[i]) {
			return false
		}
	}
	return true
}

func (r *TraitRef) IsGround() bool {
	for _, a := range r.Args {
		if a.IsGeneric() {
			return false
		}
	}
	return true
}

// Func is a function type. Params is normalised to []Type{Unit} when the
// source declares zero parameters (§3).
type Func struct {
	Return      Type
	Params      []Type
	Constraints []*TraitRef
	IsMeta      bool
}

func (f *Func) isType() {}

func (f *Func) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	prefix := ""
	if f.IsMeta {
		prefix = "meta "
	}
	s := fmt.Sprintf("%s(%s) -> %s", prefix, strings.Join(params, ", "), f.Return.String())
	if len(f.Constraints) > 0 {
		cs := make([]string, len(f.Constraints))
		for i, c := range f.Constraints {
			cs[i] = c.String()
		}
		s += " given " + strings.Join(cs, ", ")
	}
	return s
}

func (f *Func) IsGeneric() bool {
	if f.Return.IsGeneric() {
		return true
	}
	for _, p := range f.Params {
		if p.IsGeneric() {
			return true
		}
	}
	return false
}

func (f *Func) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*Func)
	if !ok || len(f.Params) != len(o.Params) || f.IsMeta != o.IsMeta {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	if !f.Return.Equals(o.Return) {
		return false
	}
	// Trait-constraint sets are merged rather than compared pairwise during
	// unification (rule 6), but equality still requires the same set.
	if len(f.Constraints) != len(o.Constraints) {
		return false
	}
	for _, c := range f.Constraints {
		found := false
		for _, oc := range o.Constraints {
			if c.Equals(oc) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *Func) ApproxEquals(other Type) bool {
	if _, ok := stripForEquals(other).(*TypeVar); ok {
		return true
	}
	o, ok := stripForEquals(other).(*Func)
	if !ok || len(f.Params) != len(o.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].ApproxEquals(o.Params[i]) {
			return false
		}
	}
	return f.Return.ApproxEquals(o.Return)
}

// NormalizeParams applies the §3 empty-parameter-list rule.
func NormalizeParams(params []Type, unit Type) []Type {
	if len(params) == 0 {
		return []Type{unit}
	}
	return params
}
