package types

// ModKind enumerates the modifier kinds of §3. CompilerDirective carries
// an opaque token (the directive name) since directives are a compiler
// extension point rather than a fixed set.
type ModKind int

const (
	ModMut ModKind = iota
	ModConst
	ModLet
	ModGlobal
	ModAnte
	ModCompilerDirective
)

func (k ModKind) String() string {
	switch k {
	case ModMut:
		return "mut"
	case ModConst:
		return "const"
	case ModLet:
		return "let"
	case ModGlobal:
		return "global"
	case ModAnte:
		return "ante"
	case ModCompilerDirective:
		return "directive"
	default:
		return "<bad-mod>"
	}
}

// Modifier wraps a type with a stacked modifier. Equality ignores Let (I3
// calls it an "identity modifier"): a Let-wrapped type structurally
// equals its unwrapped form everywhere except at the one arena slot the
// compiler-directive case intentionally keeps distinct per source node
// (I1).
type Modifier struct {
	Inner Type
	Kind  ModKind
	// Directive is the directive token text; only meaningful when
	// Kind == ModCompilerDirective. Two directive modifiers with
	// different tokens (or even the same token from different source
	// nodes) are deliberately kept as distinct arena entries, per I1.
	Directive string
	// directiveSite disambiguates distinct compiler-directive nodes that
	// would otherwise canonicalise to the same key; it is not compared by
	// Equals/ApproxEquals, only used by the arena's interning key.
	directiveSite uint64
}

func (m *Modifier) isType() {}

func (m *Modifier) String() string {
	if m.Kind == ModLet {
		return m.Inner.String()
	}
	tag := m.Kind.String()
	if m.Kind == ModCompilerDirective {
		tag = "#" + m.Directive
	}
	return tag + " " + m.Inner.String()
}

func (m *Modifier) IsGeneric() bool { return m.Inner.IsGeneric() }

// chain returns the list of modifier kinds from outermost to innermost,
// and the unwrapped base type.
func (m *Modifier) chain() ([]*Modifier, Type) {
	var chain []*Modifier
	var cur Type = m
	for {
		mm, ok := cur.(*Modifier)
		if !ok {
			return chain, cur
		}
		chain = append(chain, mm)
		cur = mm.Inner
	}
}

func (m *Modifier) Equals(other Type) bool {
	aChain, aBase := m.chain()
	aChain = filterLet(aChain)
	bChain, bBase := stripModChain(other)
	bChain = filterLet(bChain)
	if len(aChain) != len(bChain) {
		return false
	}
	for i := range aChain {
		if aChain[i].Kind != bChain[i].Kind {
			return false
		}
		if aChain[i].Kind == ModCompilerDirective && aChain[i].Directive != bChain[i].Directive {
			return false
		}
	}
	return aBase.Equals(bBase)
}

func (m *Modifier) ApproxEquals(other Type) bool {
	if _, ok := other.(*TypeVar); ok {
		return true
	}
	_, aBase := m.chain()
	_, bBase := stripModChain(other)
	return aBase.ApproxEquals(bBase)
}

func stripModChain(t Type) ([]*Modifier, Type) {
	if m, ok := t.(*Modifier); ok {
		return m.chain()
	}
	return nil, t
}

func filterLet(chain []*Modifier) []*Modifier {
	out := chain[:0:0]
	for _, m := range chain {
		if m.Kind != ModLet {
			out = append(out, m)
		}
	}
	return out
}

func modKindOf(t Type) (ModKind, bool) {
	m, ok := t.(*Modifier)
	if !ok {
		return 0, false
	}
	return m.Kind, true
}

// canAddModifier implements the idempotence lattice of §4.1's
// addModifier: Let is always a no-op; adding the same modifier twice is a
// no-op; Mut stacked on Const leaves Const unchanged. Returns (skip,
// collapseTo) where skip reports the add should be a no-op and
// collapseTo, if non-nil, is the type to return instead of wrapping.
func canAddModifier(existing []*Modifier, base Type, kind ModKind, directive string) (skip bool, collapseTo Type) {
	if kind == ModLet {
		return true, nil
	}
	for _, m := range existing {
		if m.Kind == kind {
			if kind != ModCompilerDirective || m.Directive == directive {
				return true, nil
			}
		}
	}
	for _, m := range existing {
		if kind == ModMut && m.Kind == ModConst {
			return true, nil
		}
	}
	return false, nil
}
