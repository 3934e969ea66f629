package types

import "strings"

// ProductType is a named record/struct, or — when ParentSum is non-nil —
// the payload of one tagged alternative of a sum type (§3 I3). Fields[0]
// of a variant is the discriminator slot.
type ProductType struct {
	Name       string
	Fields     []Type
	FieldNames []string
	TypeArgs   []Type
	IsAlias    bool

	// ParentSum is the back-reference from a tag to its sum type (§9
	// "weak back-references"), held as a plain pointer; the
	// parent/variant cycle is left to the garbage collector.
	ParentSum *SumType

	// UnboundRef points to the generic template this type was
	// instantiated from, or is nil if this *is* the template (I2).
	UnboundRef *ProductType

	// GenericVariants caches every concrete instantiation of this
	// template, keyed implicitly by TypeArgs via the arena.
	GenericVariants []*ProductType
}

func (p *ProductType) isType() {}

func (p *ProductType) String() string {
	if len(p.TypeArgs) == 0 {
		return p.Name
	}
	args := make([]string, len(p.TypeArgs))
	for i, a := range p.TypeArgs {
		args[i] = a.String()
	}
	return p.Name + " " + strings.Join(args, " ")
}

func (p *ProductType) IsGeneric() bool {
	for _, a := range p.TypeArgs {
		if a.IsGeneric() {
			return true
		}
	}
	// A template with no type args supplied yet (the bare declaration) is
	// generic iff any of its formal parameters are free type variables.
	if p.UnboundRef == nil {
		for _, f := range p.Fields {
			if _, ok := f.(*TypeVar); ok {
				return true
			}
		}
	}
	return false
}

func (p *ProductType) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*ProductType)
	if !ok || p.Name != o.Name || len(p.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	if !shareTemplate(p, o) {
		return false
	}
	for i := range p.TypeArgs {
		if !p.TypeArgs[i].Equals(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

func (p *ProductType) ApproxEquals(other Type) bool {
	if _, ok := stripForEquals(other).(*TypeVar); ok {
		return true
	}
	o, ok := stripForEquals(other).(*ProductType)
	if !ok || p.Name != o.Name || len(p.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	for i := range p.TypeArgs {
		if !p.TypeArgs[i].ApproxEquals(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// productTemplateRoot walks the unbound chain (I2) to the template.
func productTemplateRoot(p *ProductType) *ProductType {
	for p.UnboundRef != nil {
		p = p.UnboundRef
	}
	return p
}

func shareTemplate(a, b *ProductType) bool {
	return productTemplateRoot(a) == productTemplateRoot(b)
}

// IsVariantOf reports whether t is a generic variant instantiated from
// template's unbound chain (I2), per SPEC_FULL.md supplemented feature 4.
func IsVariantOf(t, template *ProductType) bool {
	return productTemplateRoot(t) == productTemplateRoot(template)
}

// SumType is a tagged union over a fixed set of ProductType alternatives
// (§3). Every tag's ParentSum must equal this SumType (I3), enforced by
// the arena constructor.
type SumType struct {
	Name            string
	Tags            []*ProductType
	TypeArgs        []Type
	UnboundRef      *SumType
	GenericVariants []*SumType
}

func (s *SumType) isType() {}

func (s *SumType) String() string {
	if len(s.TypeArgs) == 0 {
		return s.Name
	}
	args := make([]string, len(s.TypeArgs))
	for i, a := range s.TypeArgs {
		args[i] = a.String()
	}
	return s.Name + " " + strings.Join(args, " ")
}

func (s *SumType) IsGeneric() bool {
	for _, a := range s.TypeArgs {
		if a.IsGeneric() {
			return true
		}
	}
	return false
}

func sumTemplateRoot(s *SumType) *SumType {
	for s.UnboundRef != nil {
		s = s.UnboundRef
	}
	return s
}

func (s *SumType) Equals(other Type) bool {
	o, ok := stripForEquals(other).(*SumType)
	if !ok || s.Name != o.Name || len(s.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	if sumTemplateRoot(s) != sumTemplateRoot(o) {
		return false
	}
	for i := range s.TypeArgs {
		if !s.TypeArgs[i].Equals(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

func (s *SumType) ApproxEquals(other Type) bool {
	if _, ok := stripForEquals(other).(*TypeVar); ok {
		return true
	}
	o, ok := stripForEquals(other).(*SumType)
	if !ok || s.Name != o.Name || len(s.TypeArgs) != len(o.TypeArgs) {
		return false
	}
	for i := range s.TypeArgs {
		if !s.TypeArgs[i].ApproxEquals(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// IsVariantOfSum is the sum-type analogue of IsVariantOf.
func IsVariantOfSum(t, template *SumType) bool {
	return sumTemplateRoot(t) == sumTemplateRoot(template)
}
