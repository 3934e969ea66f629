// Package module implements the module table of §4.8: declaration
// scanning, name resolution (lookupType/lookupTraitImpl), trait impl
// bookkeeping, and the filesystem-path-to-module-name iterator of §4.9.
package module

import (
	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/types"
)

// DeclKind distinguishes the Declaration variants of §3.
type DeclKind int

const (
	DeclVar DeclKind = iota
	DeclFunc
)

// Declaration is a name bound to an AST node and a typed value slot that
// is populated after compilation (codegen or monomorphisation fills it;
// §3 "Lifecycles").
type Declaration struct {
	Name string
	Kind DeclKind
	Node ast.Node

	// Type is the declaration's solved type, nil until the substitution
	// pass or monomorphisation assigns it.
	Type types.Type

	// IsGlobal and IsMutable apply to DeclVar; a global mutable variable
	// auto-derefs on use (§3).
	IsGlobal  bool
	IsMutable bool

	// TraitStub, when non-nil, marks this as a trait-method stub: a
	// FuncDecl with exactly one constraint naming its owning trait (§3).
	// Its Impl field is filled in (as a *TraitImpl) once trait resolution
	// (§4.6) finds a concrete implementation for a given call site.
	TraitStub *types.TraitRef
}

// NewVarDecl creates a local-or-global variable declaration.
func NewVarDecl(name string, node ast.Node, isGlobal, isMutable bool) *Declaration {
	return &Declaration{Name: name, Kind: DeclVar, Node: node, IsGlobal: isGlobal, IsMutable: isMutable}
}

// NewFuncDecl creates a concrete function declaration.
func NewFuncDecl(name string, node ast.Node) *Declaration {
	return &Declaration{Name: name, Kind: DeclFunc, Node: node}
}

// NewTraitStubDecl creates a trait-method-stub declaration: a FuncDecl
// whose only constraint names the trait it belongs to.
func NewTraitStubDecl(name string, node ast.Node, owner *types.TraitRef) *Declaration {
	return &Declaration{Name: name, Kind: DeclFunc, Node: node, TraitStub: owner}
}
