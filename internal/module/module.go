package module

import (
	"fmt"
	"sort"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/types"
)

// Module owns an AST root and everything the declaration scan (§4.8)
// inserted into it: functions, types, traits, trait implementations,
// imports, and submodules. There is a single process-wide root per
// compilation; multiple physical root directories (standard library,
// working directory, configured library paths — see internal/config)
// are merged into it by the host before the pipeline runs.
type Module struct {
	Name   string
	AST    *ast.Root
	Parent *Module

	Funcs      map[string]*Declaration
	Types      map[string]*TypeDecl
	Traits     map[string]*TraitDecl
	TraitImpls map[string][]*TraitImpl // trait name -> impls, in declaration order

	Imports   []string
	Submodule map[string]*Module

	// importOrder preserves the order imports were declared in, which
	// feeds the deterministic trait-impl search order of §5.
	importOrder []*Module
}

// NewModule creates an empty module named name, parented under parent
// (nil for the process-wide root).
func NewModule(name string, parent *Module) *Module {
	return &Module{
		Name:       name,
		Parent:     parent,
		Funcs:      make(map[string]*Declaration),
		Types:      make(map[string]*TypeDecl),
		Traits:     make(map[string]*TraitDecl),
		TraitImpls: make(map[string][]*TraitImpl),
		Submodule:  make(map[string]*Module),
	}
}

// AddImport records that this module imports dep, in declaration order.
func (m *Module) AddImport(dep *Module) {
	m.Imports = append(m.Imports, dep.Name)
	m.importOrder = append(m.importOrder, dep)
}

// AddTraitImpl registers a concrete trait implementation, accumulating
// across imports (§3 "Lifecycles").
func (m *Module) AddTraitImpl(impl *TraitImpl) {
	impl.SourceOrder = len(m.TraitImpls[impl.TraitName])
	m.TraitImpls[impl.TraitName] = append(m.TraitImpls[impl.TraitName], impl)
}

// LookupType walks from the current module up through enclosing modules,
// then searches imports left-to-right; the first match wins (§4.8).
func (m *Module) LookupType(name string) (*TypeDecl, bool) {
	for cur := m; cur != nil; cur = cur.Parent {
		if td, ok := cur.Types[name]; ok {
			return td, true
		}
	}
	for _, dep := range m.importOrder {
		if td, ok := dep.Types[name]; ok {
			return td, true
		}
	}
	return nil, false
}

// LookupFunc resolves a function/trait-stub declaration the same way
// LookupType resolves a type name.
func (m *Module) LookupFunc(name string) (*Declaration, bool) {
	for cur := m; cur != nil; cur = cur.Parent {
		if d, ok := cur.Funcs[name]; ok {
			return d, true
		}
	}
	for _, dep := range m.importOrder {
		if d, ok := dep.Funcs[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// LookupTrait resolves a trait declaration by name.
func (m *Module) LookupTrait(name string) (*TraitDecl, bool) {
	for cur := m; cur != nil; cur = cur.Parent {
		if td, ok := cur.Traits[name]; ok {
			return td, true
		}
	}
	for _, dep := range m.importOrder {
		if td, ok := dep.Traits[name]; ok {
			return td, true
		}
	}
	return nil, false
}

// AmbiguousImplError reports that more than one TraitImpl matched a
// constraint (§7 TraitResolution).
type AmbiguousImplError struct {
	TraitName  string
	Args       []types.Type
	Candidates []*TraitImpl
}

func (e *AmbiguousImplError) Error() string {
	return fmt.Sprintf("ambiguous implementation for %s: %d candidates match", e.TraitName, len(e.Candidates))
}

// LookupTraitImpl iterates the multi-map entry for trait, returning the
// impl whose args match pointwise under arena equality (§4.8). Candidates
// are considered across the current module and its import closure, in
// module-import declaration order, then alphabetical by source name (§5)
// — so an ambiguity error lists candidates in that deterministic order.
func (m *Module) LookupTraitImpl(traitName string, args []types.Type) (*TraitImpl, error) {
	var candidates []*TraitImpl
	// rank is the search position of the module a candidate was first
	// found in: the module and its parents, then the import closure.
	rank := map[*TraitImpl]int{}
	modRank := 0
	seen := map[*Module]bool{}
	var walk func(mod *Module)
	walk = func(mod *Module) {
		if mod == nil || seen[mod] {
			return
		}
		seen[mod] = true
		for _, impl := range mod.TraitImpls[traitName] {
			if impl.Matches(traitName, args) {
				candidates = append(candidates, impl)
				if _, dup := rank[impl]; !dup {
					rank[impl] = modRank
				}
			}
		}
		modRank++
		for _, dep := range mod.importOrder {
			walk(dep)
		}
	}
	for cur := m; cur != nil; cur = cur.Parent {
		for _, impl := range cur.TraitImpls[traitName] {
			if impl.Matches(traitName, args) {
				candidates = append(candidates, impl)
				if _, dup := rank[impl]; !dup {
					rank[impl] = modRank
				}
			}
		}
		modRank++
	}
	for _, dep := range m.importOrder {
		walk(dep)
	}

	candidates = dedupImpls(candidates)
	sort.SliceStable(candidates, func(i, j int) bool {
		if rank[candidates[i]] != rank[candidates[j]] {
			return rank[candidates[i]] < rank[candidates[j]]
		}
		return candidates[i].SourceName < candidates[j].SourceName
	})

	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return candidates[0], nil
	default:
		return nil, &AmbiguousImplError{TraitName: traitName, Args: args, Candidates: candidates}
	}
}

func dedupImpls(impls []*TraitImpl) []*TraitImpl {
	seen := map[*TraitImpl]bool{}
	out := impls[:0:0]
	for _, i := range impls {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}

// GetOrCreateSubmodule returns the named child module, creating it (and
// parenting it under m) on first request. Used for the transient child
// modules string-interpolation expressions compile into (§4.8).
func (m *Module) GetOrCreateSubmodule(name string) *Module {
	if sub, ok := m.Submodule[name]; ok {
		return sub
	}
	sub := NewModule(name, m)
	m.Submodule[name] = sub
	return sub
}
