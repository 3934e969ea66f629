package types

import "strings"

// RhoMark is the leading character that marks a type variable as a row
// variable (extensible-record row, §3). Row variables are parsed and
// represented but, per §9's open question, not yet consumed by any
// unifier rule.
const RhoMark = "ρ"

// TypeVar is an interned type variable. Age is assigned by the
// TypeContext in creation order and used by the unifier's tie-breaking
// rule (§4.4): when two variables meet, the younger one is bound into the
// older one so that earlier-introduced names remain stable in
// diagnostics.
type TypeVar struct {
	Name string
	Age  uint64
}

func (v *TypeVar) isType()         {}
func (v *TypeVar) String() string  { return "'" + v.Name }
func (v *TypeVar) IsGeneric() bool { return true }

// IsRowVar reports whether this variable represents a row variable.
func (v *TypeVar) IsRowVar() bool { return strings.HasPrefix(v.Name, RhoMark) }

func (v *TypeVar) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*TypeVar)
	return ok && o.Name == v.Name
}

// ApproxEquals treats any TypeVar, including itself against a concrete
// type, as matching (I5): a type variable approximately-matches anything.
func (v *TypeVar) ApproxEquals(other Type) bool { return true }
