// Package types implements the type representation layer of the core
// pipeline: a hash-consed type arena, type-variable/substitution
// machinery, and the first-order unifier. See spec.md §3-4.1 and §4.4.
package types

import "strings"

// Type is the common interface for every interned type form. Equality
// between two Types constructed through the same TypeContext reduces to
// Go pointer identity (I1); Equals and ApproxEquals below are provided
// for the rarer cases (cross-arena comparison in tests, or §4.6's
// approximate probing) where pointer identity is not assumed.
type Type interface {
	String() string
	// Equals is strict structural equality, matching §3 invariant I5:
	// TypeVar only equals another TypeVar of the same name.
	Equals(other Type) bool
	// ApproxEquals treats any TypeVar as matching anything (I5).
	ApproxEquals(other Type) bool
	// IsGeneric reports whether this type or any type argument it embeds
	// mentions a TypeVar anywhere (I4).
	IsGeneric() bool
	isType()
}

// PrimTag enumerates the primitive scalar tags of §3.
type PrimTag int

const (
	I8 PrimTag = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	Isz
	Usz
	F16
	F32
	F64
	C8
	Bool
	Unit
)

var primNames = [...]string{
	"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64",
	"isz", "usz", "f16", "f32", "f64", "c8", "bool", "unit",
}

func (t PrimTag) String() string {
	if int(t) < 0 || int(t) >= len(primNames) {
		return "<bad-prim>"
	}
	return primNames[t]
}

// IsInt reports whether the tag is one of the fixed-width or
// pointer-sized integer kinds (used by the unifier's kind checks and by
// builtin-trait synthesis's Cast rules, §4.6a).
func (t PrimTag) IsInt() bool {
	switch t {
	case I8, I16, I32, I64, U8, U16, U32, U64, Isz, Usz:
		return true
	}
	return false
}

// IsSigned reports whether the integer tag is signed.
func (t PrimTag) IsSigned() bool {
	switch t {
	case I8, I16, I32, I64, Isz:
		return true
	}
	return false
}

// IsFloat reports whether the tag is a floating-point kind.
func (t PrimTag) IsFloat() bool {
	switch t {
	case F16, F32, F64:
		return true
	}
	return false
}

// Primitive is the interned representation of a scalar type.
type Primitive struct {
	Tag PrimTag
}

func (p *Primitive) isType()         {}
func (p *Primitive) String() string  { return p.Tag.String() }
func (p *Primitive) IsGeneric() bool { return false }

func (p *Primitive) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*Primitive)
	return ok && o.Tag == p.Tag
}

func (p *Primitive) ApproxEquals(other Type) bool {
	if _, ok := stripForEquals(other).(*TypeVar); ok {
		return true
	}
	return p.Equals(other)
}

// stripForEquals strips modifiers the same way equality does on both
// sides before structural comparison (unification rule 8).
func stripForEquals(t Type) Type {
	for {
		m, ok := t.(*Modifier)
		if !ok {
			return t
		}
		t = m.Inner
	}
}

// canonicalKey builds the interning key for a type. It is intentionally a
// plain string, not a struct, so the arena's map can use built-in
// equality without a custom hash.
func canonicalKeyParts(parts ...string) string {
	return strings.Join(parts, "\x01")
}
