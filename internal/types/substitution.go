package types

// Binding is one entry of a substitution: a type variable bound to a
// target type.
type Binding struct {
	Name   string
	Target Type
}

// Substitution is the ordered list of bindings unification produces
// (§4.4). Order matters: composition order must be preserved by any
// caller that appends, since ApplySubstitution walks the list once per
// variable occurrence rather than chasing chains.
type Substitution []Binding

// Lookup returns the first binding for name, since the unifier applies
// each substitution to the remaining constraints immediately as it is
// produced — by the time a later binding is appended, earlier bindings
// are already folded into anything that could reference them.
func (s Substitution) Lookup(name string) (Type, bool) {
	for _, b := range s {
		if b.Name == name {
			return b.Target, true
		}
	}
	return nil, false
}

// Extend appends a new binding, preserving generation order, after first
// applying it to the targets of the earlier bindings, so that no target
// mentions a variable bound later in the list.
func (s Substitution) Extend(name string, target Type) Substitution {
	single := Substitution{{Name: name, Target: target}}
	out := make(Substitution, len(s), len(s)+1)
	for i, b := range s {
		out[i] = Binding{Name: b.Name, Target: ApplySubstitution(single, b.Target)}
	}
	return append(out, Binding{Name: name, Target: target})
}

// ApplySubstitution walks t and replaces any TypeVar with its bound
// target from subs, recursing into every compound form. This is the
// substitution-application primitive both the unifier (applying its own
// growing list mid-solve) and the standalone substitution-application
// pass (§4.5) use.
func ApplySubstitution(subs Substitution, t Type) Type {
	switch v := t.(type) {
	case *Primitive:
		return v
	case *TypeVar:
		if target, ok := subs.Lookup(v.Name); ok {
			// The bound target may itself still mention other variables
			// if callers violate the composition-order contract; guard
			// against infinite recursion by not re-substituting into a
			// variable's own binding here (callers are responsible for
			// keeping subs in composition order, per §4.4).
			return target
		}
		return v
	case *Ptr:
		return &Ptr{Inner: ApplySubstitution(subs, v.Inner)}
	case *Array:
		return &Array{Inner: ApplySubstitution(subs, v.Inner), Length: v.Length}
	case *Tuple:
		fields := make([]Type, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = ApplySubstitution(subs, f)
		}
		return &Tuple{Fields: fields, FieldNames: v.FieldNames}
	case *Func:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = ApplySubstitution(subs, p)
		}
		constraints := make([]*TraitRef, len(v.Constraints))
		for i, c := range v.Constraints {
			args := make([]Type, len(c.Args))
			for j, a := range c.Args {
				args[j] = ApplySubstitution(subs, a)
			}
			constraints[i] = &TraitRef{TraitName: c.TraitName, Args: args, Impl: c.Impl}
		}
		return &Func{Return: ApplySubstitution(subs, v.Return), Params: params, Constraints: constraints, IsMeta: v.IsMeta}
	case *ProductType:
		if len(v.TypeArgs) == 0 {
			return v
		}
		args := make([]Type, len(v.TypeArgs))
		changed := false
		for i, a := range v.TypeArgs {
			args[i] = ApplySubstitution(subs, a)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return &ProductType{
			Name: v.Name, Fields: v.Fields, FieldNames: v.FieldNames,
			TypeArgs: args, ParentSum: v.ParentSum, UnboundRef: v.UnboundRef,
		}
	case *SumType:
		if len(v.TypeArgs) == 0 {
			return v
		}
		args := make([]Type, len(v.TypeArgs))
		changed := false
		for i, a := range v.TypeArgs {
			args[i] = ApplySubstitution(subs, a)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return v
		}
		return &SumType{Name: v.Name, Tags: v.Tags, TypeArgs: args, UnboundRef: v.UnboundRef}
	case *Modifier:
		return &Modifier{Inner: ApplySubstitution(subs, v.Inner), Kind: v.Kind, Directive: v.Directive, directiveSite: v.directiveSite}
	default:
		return t
	}
}

// substituteVars is the one-shot map-based substitution used internally
// by generic instantiation (arena.go): unlike ApplySubstitution it never
// needs composition-order semantics since it is always applied exactly
// once to a template's fields.
func substituteVars(subs map[string]Type, t Type) Type {
	ordered := make(Substitution, 0, len(subs))
	for name, target := range subs {
		ordered = append(ordered, Binding{Name: name, Target: target})
	}
	return ApplySubstitution(ordered, t)
}
