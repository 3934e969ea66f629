package types

import (
	"fmt"
	"strings"
)

// Ptr is a pointer-to type.
type Ptr struct {
	Inner Type
}

func (p *Ptr) isType()         {}
func (p *Ptr) String() string  { return "@" + p.Inner.String() }
func (p *Ptr) IsGeneric() bool { return p.Inner.IsGeneric() }

func (p *Ptr) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*Ptr)
	return ok && p.Inner.Equals(o.Inner)
}

func (p *Ptr) ApproxEquals(other Type) bool {
	if _, ok := stripForEquals(other).(*TypeVar); ok {
		return true
	}
	o, ok := stripForEquals(other).(*Ptr)
	return ok && p.Inner.ApproxEquals(o.Inner)
}

// Array is a fixed-length array type, Length >= 0.
type Array struct {
	Inner  Type
	Length int
}

func (a *Array) isType()         {}
func (a *Array) String() string  { return fmt.Sprintf("[%d]%s", a.Length, a.Inner.String()) }
func (a *Array) IsGeneric() bool { return a.Inner.IsGeneric() }

func (a *Array) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*Array)
	return ok && a.Length == o.Length && a.Inner.Equals(o.Inner)
}

func (a *Array) ApproxEquals(other Type) bool {
	if _, ok := stripForEquals(other).(*TypeVar); ok {
		return true
	}
	o, ok := stripForEquals(other).(*Array)
	return ok && a.Length == o.Length && a.Inner.ApproxEquals(o.Inner)
}

// Tuple is an anonymous record when FieldNames is non-empty, a positional
// tuple otherwise; both forms share this struct and are interned
// identically (§3).
type Tuple struct {
	Fields     []Type
	FieldNames []string // len == 0, or len == len(Fields)
}

func (t *Tuple) isType() {}

func (t *Tuple) IsRecord() bool { return len(t.FieldNames) > 0 }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		if t.IsRecord() {
			parts[i] = fmt.Sprintf("%s: %s", t.FieldNames[i], f.String())
		} else {
			parts[i] = f.String()
		}
	}
	if len(parts) == 0 {
		return "unit"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) IsGeneric() bool {
	for _, f := range t.Fields {
		if f.IsGeneric() {
			return true
		}
	}
	return false
}

func (t *Tuple) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*Tuple)
	if !ok || len(t.Fields) != len(o.Fields) || len(t.FieldNames) != len(o.FieldNames) {
		return false
	}
	for i := range t.FieldNames {
		if t.FieldNames[i] != o.FieldNames[i] {
			return false
		}
	}
	for i := range t.Fields {
		if !t.Fields[i].Equals(o.Fields[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) ApproxEquals(other Type) bool {
	if _, ok := stripForEquals(other).(*TypeVar); ok {
		return true
	}
	o, ok := stripForEquals(other).(*Tuple)
	if !ok || len(t.Fields) != len(o.Fields) {
		return false
	}
	for i := range t.Fields {
		if !t.Fields[i].ApproxEquals(o.Fields[i]) {
			return false
		}
	}
	return true
}
