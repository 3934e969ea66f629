package types

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeContext is the process-wide (per §3's definition; per-compilation
// in this reimplementation, see SPEC_FULL.md's DESIGN.md note on
// "Global type arena") hash-consing arena: every constructor looks up a
// canonical key and returns the existing instance or inserts a new one,
// guaranteeing I1 (structural equality implies reference equality).
//
// TypeContext is not safe for concurrent use (§5): a host that wants to
// compile independent modules in parallel must give each compilation its
// own TypeContext.
type TypeContext struct {
	interned  map[string]Type
	varAge    uint64
	directive uint64

	// prims is a fixed table since there are only 16 primitive tags.
	prims [Unit + 1]*Primitive
}

// NewTypeContext creates a fresh, empty arena.
func NewTypeContext() *TypeContext {
	tc := &TypeContext{interned: make(map[string]Type)}
	for tag := I8; tag <= Unit; tag++ {
		tc.prims[tag] = &Primitive{Tag: tag}
	}
	return tc
}

func (tc *TypeContext) Prim(tag PrimTag) *Primitive { return tc.prims[tag] }

func (tc *TypeContext) Ptr(inner Type) *Ptr {
	key := canonicalKeyParts("ptr", identityKey(inner))
	if existing, ok := tc.interned[key]; ok {
		return existing.(*Ptr)
	}
	t := &Ptr{Inner: inner}
	tc.interned[key] = t
	return t
}

func (tc *TypeContext) Array(inner Type, length int) *Array {
	key := canonicalKeyParts("array", strconv.Itoa(length), identityKey(inner))
	if existing, ok := tc.interned[key]; ok {
		return existing.(*Array)
	}
	t := &Array{Inner: inner, Length: length}
	tc.interned[key] = t
	return t
}

// Tuple constructs a positional tuple; Record constructs the named-field
// form. They are interned into the same table and share structure when a
// caller happens to pass matching field names (§3: "the two forms share
// structure and are interned identically"). A nullary tuple/record is
// the unique Unit value (§8: `Tuple([]) == Unit`), so both collapse to
// Prim(Unit) rather than minting a distinct zero-field *Tuple.
func (tc *TypeContext) Tuple(fields []Type) Type {
	return tc.record(fields, nil)
}

func (tc *TypeContext) Record(fields []Type, names []string) Type {
	return tc.record(fields, names)
}

func (tc *TypeContext) record(fields []Type, names []string) Type {
	if len(fields) == 0 {
		return tc.Prim(Unit)
	}
	parts := make([]string, 0, len(fields)*2+1)
	parts = append(parts, "tuple")
	for i, f := range fields {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		parts = append(parts, name, identityKey(f))
	}
	key := canonicalKeyParts(parts...)
	if existing, ok := tc.interned[key]; ok {
		return existing.(*Tuple)
	}
	t := &Tuple{Fields: fields, FieldNames: names}
	tc.interned[key] = t
	return t
}

func (tc *TypeContext) Func(ret Type, params []Type, constraints []*TraitRef, isMeta bool) *Func {
	params = NormalizeParams(params, tc.Prim(Unit))
	parts := []string{"func", identityKey(ret), strconv.FormatBool(isMeta)}
	for _, p := range params {
		parts = append(parts, identityKey(p))
	}
	for _, c := range constraints {
		cs := c.TraitName
		for _, a := range c.Args {
			cs += "," + identityKey(a)
		}
		parts = append(parts, "given:"+cs)
	}
	key := canonicalKeyParts(parts...)
	if existing, ok := tc.interned[key]; ok {
		return existing.(*Func)
	}
	t := &Func{Return: ret, Params: params, Constraints: constraints, IsMeta: isMeta}
	tc.interned[key] = t
	return t
}

// TypeVar creates or returns the interned variable of the given name.
// Each distinct name gets one arena slot; Age records creation order for
// the unifier's tie-breaking rule (§4.4).
func (tc *TypeContext) TypeVar(name string) *TypeVar {
	key := canonicalKeyParts("typevar", name)
	if existing, ok := tc.interned[key]; ok {
		return existing.(*TypeVar)
	}
	tc.varAge++
	t := &TypeVar{Name: name, Age: tc.varAge}
	tc.interned[key] = t
	return t
}

// FreshTypeVar creates a new, arena-unique type variable with a
// generated name, used throughout constraint collection (§4.3).
func (tc *TypeContext) FreshTypeVar(prefix string) *TypeVar {
	for i := 0; ; i++ {
		name := fmt.Sprintf("%s%d", prefix, i)
		key := canonicalKeyParts("typevar", name)
		if _, exists := tc.interned[key]; !exists {
			return tc.TypeVar(name)
		}
	}
}

// Modifier wraps base with kind, applying the idempotence lattice of
// addModifier (§4.1). directive is only meaningful when
// kind == ModCompilerDirective.
func (tc *TypeContext) Modifier(base Type, kind ModKind, directive string) Type {
	chain, inner := stripModChain(base)
	if skip, _ := canAddModifier(chain, inner, kind, directive); skip {
		return base
	}
	m := &Modifier{Inner: base, Kind: kind, Directive: directive}
	if kind == ModCompilerDirective {
		// Compiler-directive modifiers are intentionally distinct per
		// source node (I1); never collapse them via the interning table.
		tc.directive++
		m.directiveSite = tc.directive
		return m
	}
	key := canonicalKeyParts("mod", kind.String(), identityKey(base))
	if existing, ok := tc.interned[key]; ok {
		return existing.(*Modifier)
	}
	tc.interned[key] = m
	return m
}

// AddModifiersTo re-wraps other with the modifier chain present on t
// (§4.1's addModifiersTo).
func (tc *TypeContext) AddModifiersTo(t, other Type) Type {
	chain, _ := stripModChain(t)
	result := other
	// Re-apply outermost-last so the resulting chain order matches t's.
	for i := len(chain) - 1; i >= 0; i-- {
		result = tc.Modifier(result, chain[i].Kind, chain[i].Directive)
	}
	return result
}

// NewProductTemplate interns a fresh named-record template. Call
// InstantiateProduct to produce concrete generic variants from it.
func (tc *TypeContext) NewProductTemplate(name string, fields []Type, fieldNames []string, typeArgs []Type) *ProductType {
	p := &ProductType{Name: name, Fields: fields, FieldNames: fieldNames, TypeArgs: typeArgs}
	tc.interned[canonicalKeyParts("product-template", name)] = p
	return p
}

// InstantiateProduct returns the interned generic variant of template at
// the given concrete type arguments, creating and caching it on first
// request (I2).
func (tc *TypeContext) InstantiateProduct(template *ProductType, args []Type) *ProductType {
	key := canonicalKeyParts("product", template.Name, identityKeys(args))
	if existing, ok := tc.interned[key]; ok {
		return existing.(*ProductType)
	}
	subs := make(map[string]Type, len(template.TypeArgs))
	for i, formal := range template.TypeArgs {
		if tv, ok := formal.(*TypeVar); ok && i < len(args) {
			subs[tv.Name] = args[i]
		}
	}
	fields := make([]Type, len(template.Fields))
	for i, f := range template.Fields {
		fields[i] = substituteVars(subs, f)
	}
	variant := &ProductType{
		Name:       template.Name,
		Fields:     fields,
		FieldNames: template.FieldNames,
		TypeArgs:   args,
		ParentSum:  template.ParentSum,
		UnboundRef: template,
	}
	tc.interned[key] = variant
	template.GenericVariants = append(template.GenericVariants, variant)
	return variant
}

// NewSumTemplate interns a fresh sum-type template and wires each tag's
// ParentSum back-reference (I3).
func (tc *TypeContext) NewSumTemplate(name string, tags []*ProductType, typeArgs []Type) *SumType {
	s := &SumType{Name: name, Tags: tags, TypeArgs: typeArgs}
	for _, tag := range tags {
		tag.ParentSum = s
	}
	tc.interned[canonicalKeyParts("sum-template", name)] = s
	return s
}

// InstantiateSum returns the interned generic variant of template at the
// given concrete type arguments.
func (tc *TypeContext) InstantiateSum(template *SumType, args []Type) *SumType {
	key := canonicalKeyParts("sum", template.Name, identityKeys(args))
	if existing, ok := tc.interned[key]; ok {
		return existing.(*SumType)
	}
	subs := make(map[string]Type, len(template.TypeArgs))
	for i, formal := range template.TypeArgs {
		if tv, ok := formal.(*TypeVar); ok && i < len(args) {
			subs[tv.Name] = args[i]
		}
	}
	variant := &SumType{Name: template.Name, TypeArgs: args, UnboundRef: template}
	variant.Tags = make([]*ProductType, len(template.Tags))
	for i, tag := range template.Tags {
		instTag := tc.InstantiateProduct(tag, args)
		// InstantiateProduct keys variants by the tag's own name; re-derive
		// its fields from the sum's substitution so payload types line up
		// even though tags and the sum template share the same args list.
		fields := make([]Type, len(tag.Fields))
		for j, f := range tag.Fields {
			fields[j] = substituteVars(subs, f)
		}
		instTag.Fields = fields
		instTag.ParentSum = variant
		variant.Tags[i] = instTag
	}
	tc.interned[key] = variant
	template.GenericVariants = append(template.GenericVariants, variant)
	return variant
}

func identityKey(t Type) string {
	switch v := t.(type) {
	case *Primitive:
		return "p:" + v.Tag.String()
	case *TypeVar:
		return "v:" + v.Name
	case *ProductType:
		return "P:" + v.Name + ":" + identityKeys(v.TypeArgs)
	case *SumType:
		return "S:" + v.Name + ":" + identityKeys(v.TypeArgs)
	default:
		// Composite forms not yet interned (built during lowering before
		// being handed to the arena) fall back to their printed form;
		// once constructed via the arena they are reused by pointer.
		return fmt.Sprintf("%T:%s", t, t.String())
	}
}

func identityKeys(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = identityKey(t)
	}
	return strings.Join(parts, ",")
}
