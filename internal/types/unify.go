package types

import "fmt"

// UnifyError is a structured unification failure carrying both operand
// types and the constraint's location (§4.4 rule 9, §7 "Unification").
// Loc is interface{} (an ast.Location) to avoid importing ast from the
// core type-representation layer.
type UnifyError struct {
	Left, Right Type
	Loc         interface{}
	Reason      string
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Reason)
}

// OccursError reports occurs-check failure (§4.4 rule 2, §7, §8).
type OccursError struct {
	Var *TypeVar
	In  Type
	Loc interface{}
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Var, e.In)
}

// Unifier performs first-order Robinson unification with an occurs check,
// applying each new binding to the rest of the work list immediately as
// it is produced (§4.4).
type Unifier struct {
	tc *TypeContext
}

func NewUnifier(tc *TypeContext) *Unifier { return &Unifier{tc: tc} }

// Unify attempts to unify t1 and t2 against the running substitution sub,
// returning the extended substitution or a structured error.
func (u *Unifier) Unify(t1, t2 Type, sub Substitution, loc interface{}) (Substitution, error) {
	t1 = ApplySubstitution(sub, t1)
	t2 = ApplySubstitution(sub, t2)

	// Rule 1: identical interned types succeed trivially.
	if t1 == t2 {
		return sub, nil
	}

	switch a := t1.(type) {
	case *TypeVar:
		return u.bind(a, t2, sub, loc)
	case *Modifier:
		// Rule 8: strip modifiers on both sides before comparing; chains
		// must match when both sides carry any.
		aChain, aBase := a.chain()
		bChain, bBase := stripModChain(t2)
		if len(bChain) > 0 && !modChainsEqual(aChain, bChain) {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "modifier mismatch"}
		}
		return u.Unify(aBase, bBase, sub, loc)
	default:
		if bv, ok := t2.(*TypeVar); ok {
			return u.bind(bv, t1, sub, loc)
		}
		if bm, ok := t2.(*Modifier); ok {
			// Rule 8 again: only t2 carries modifiers, so strip them.
			_, bBase := bm.chain()
			return u.Unify(t1, bBase, sub, loc)
		}
	}

	switch a := t1.(type) {
	case *Primitive:
		b, ok := t2.(*Primitive)
		if !ok || a.Tag != b.Tag {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "primitive mismatch"}
		}
		return sub, nil

	case *Ptr:
		// Rule 3.
		b, ok := t2.(*Ptr)
		if !ok {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "expected pointer"}
		}
		return u.Unify(a.Inner, b.Inner, sub, loc)

	case *Array:
		// Rule 4.
		b, ok := t2.(*Array)
		if !ok {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "expected array"}
		}
		if a.Length != b.Length {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "array length mismatch"}
		}
		return u.Unify(a.Inner, b.Inner, sub, loc)

	case *Tuple:
		// Rule 5.
		b, ok := t2.(*Tuple)
		if !ok {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "expected tuple"}
		}
		if len(a.Fields) != len(b.Fields) {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "tuple arity mismatch"}
		}
		if a.IsRecord() && b.IsRecord() {
			for i := range a.FieldNames {
				if a.FieldNames[i] != b.FieldNames[i] {
					return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "field name mismatch"}
				}
			}
		} else if a.IsRecord() != b.IsRecord() {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "tuple/record mismatch"}
		}
		var err error
		for i := range a.Fields {
			sub, err = u.Unify(a.Fields[i], b.Fields[i], sub, loc)
			if err != nil {
				return nil, err
			}
		}
		return sub, nil

	case *Func:
		// Rule 6.
		b, ok := t2.(*Func)
		if !ok {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "expected function"}
		}
		if len(a.Params) != len(b.Params) {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "function arity mismatch"}
		}
		var err error
		for i := range a.Params {
			sub, err = u.Unify(a.Params[i], b.Params[i], sub, loc)
			if err != nil {
				return nil, err
			}
		}
		sub, err = u.Unify(a.Return, b.Return, sub, loc)
		if err != nil {
			return nil, err
		}
		// Trait-constraint sets are merged for later resolution rather
		// than unified pairwise, per rule 6.
		return sub, nil

	case *ProductType:
		// Rule 7.
		b, ok := t2.(*ProductType)
		if !ok || !shareTemplate(a, b) {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "distinct named types"}
		}
		return u.unifyArgs(a.TypeArgs, b.TypeArgs, sub, loc)

	case *SumType:
		// Rule 7.
		b, ok := t2.(*SumType)
		if !ok || sumTemplateRoot(a) != sumTemplateRoot(b) {
			return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "distinct named types"}
		}
		return u.unifyArgs(a.TypeArgs, b.TypeArgs, sub, loc)

	default:
		// Rule 9.
		return nil, &UnifyError{Left: t1, Right: t2, Loc: loc, Reason: "structural mismatch"}
	}
}

func (u *Unifier) unifyArgs(a, b []Type, sub Substitution, loc interface{}) (Substitution, error) {
	if len(a) != len(b) {
		return nil, &UnifyError{Loc: loc, Reason: "type argument count mismatch"}
	}
	var err error
	for i := range a {
		sub, err = u.Unify(a[i], b[i], sub, loc)
		if err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func modChainsEqual(a, b []*Modifier) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
		if a[i].Kind == ModCompilerDirective && a[i].Directive != b[i].Directive {
			return false
		}
	}
	return true
}

// bind handles TypeVar-vs-anything unification (rule 2), including the
// occurs check and the age-based tie-break (§4.4): when binding one type
// variable to another, the younger variable (higher Age) is substituted
// into the older one so earlier-introduced names stay stable.
func (u *Unifier) bind(v *TypeVar, t Type, sub Substitution, loc interface{}) (Substitution, error) {
	if v.Equals(t) {
		return sub, nil
	}
	if other, ok := t.(*TypeVar); ok {
		if v.Age < other.Age {
			return sub.Extend(other.Name, v), nil
		}
		return sub.Extend(v.Name, other), nil
	}
	if u.occurs(v.Name, t) {
		return nil, &OccursError{Var: v, In: t, Loc: loc}
	}
	return sub.Extend(v.Name, t), nil
}

// occurs is the occurs check: does name appear anywhere inside t (other
// than the trivial case of t being exactly that variable, handled by the
// caller before calling occurs)?
func (u *Unifier) occurs(name string, t Type) bool {
	switch v := t.(type) {
	case *TypeVar:
		return v.Name == name
	case *Ptr:
		return u.occurs(name, v.Inner)
	case *Array:
		return u.occurs(name, v.Inner)
	case *Tuple:
		for _, f := range v.Fields {
			if u.occurs(name, f) {
				return true
			}
		}
		return false
	case *Func:
		if u.occurs(name, v.Return) {
			return true
		}
		for _, p := range v.Params {
			if u.occurs(name, p) {
				return true
			}
		}
		return false
	case *ProductType:
		for _, a := range v.TypeArgs {
			if u.occurs(name, a) {
				return true
			}
		}
		return false
	case *SumType:
		for _, a := range v.TypeArgs {
			if u.occurs(name, a) {
				return true
			}
		}
		return false
	case *Modifier:
		return u.occurs(name, v.Inner)
	default:
		return false
	}
}
