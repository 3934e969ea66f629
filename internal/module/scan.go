package module

import (
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/types"
)

// Scanner sweeps a parsed module's Root and inserts every top-level
// function, type declaration, trait declaration, and trait implementation
// into the Module (§4.8). Imports recursively scan their own AST before
// being wired in via AddImport.
type Scanner struct {
	tc *types.TypeContext
}

func NewScanner(tc *types.TypeContext) *Scanner { return &Scanner{tc: tc} }

// Scan builds a Module for root, reporting non-fatal diagnostics to sink
// and continuing after recoverable failures (§5 "attempt to continue
// after non-fatal failures when safe").
func (s *Scanner) Scan(name string, root *ast.Root, parent *Module, sink *diag.Sink) *Module {
	mod := NewModule(name, parent)
	mod.AST = root

	for _, td := range root.Types {
		s.scanTypeDecl(mod, td, sink)
	}
	for i, tn := range root.Traits {
		s.scanTraitDecl(mod, tn, i, sink)
	}
	for i, fd := range root.Funcs {
		s.scanFuncDecl(mod, fd, i, sink)
	}
	for i, ext := range root.Extensions {
		s.scanExt(mod, ext, i, sink)
	}
	return mod
}

func (s *Scanner) scanTypeDecl(mod *Module, td *ast.DataDecl, sink *diag.Sink) {
	if _, exists := mod.Types[td.Name]; exists {
		sink.Report(diag.New(diag.NAM001, "duplicate type declaration: "+td.Name, toLoc(td.Loc())))
		return
	}
	// Product/Sum/Alias are filled in later by lower.FinishTypeDecls: it
	// alone can call Lower to turn this declaration's body into arena
	// types, and Lower's package already depends on module.
	decl := &TypeDecl{Name: td.Name, Arity: len(td.Params)}
	mod.Types[td.Name] = decl
}

func (s *Scanner) scanTraitDecl(mod *Module, tn *ast.TraitNode, order int, sink *diag.Sink) {
	if _, exists := mod.Traits[tn.Name]; exists {
		sink.Report(diag.New(diag.NAM001, "duplicate trait declaration: "+tn.Name, toLoc(tn.Loc())))
		return
	}
	typeArgs := make([]*types.TypeVar, len(tn.Generics))
	for i, g := range tn.Generics {
		typeArgs[i] = s.tc.TypeVar(g)
	}
	decl := NewTraitDecl(tn.Name, typeArgs, order)
	ownerRef := &types.TraitRef{TraitName: tn.Name}
	for _, fn := range tn.Fns {
		stub := NewTraitStubDecl(fn.Name, fn, ownerRef)
		decl.Methods[fn.Name] = stub
		mod.Funcs[fn.Name] = stub
	}
	mod.Traits[tn.Name] = decl
}

func (s *Scanner) scanFuncDecl(mod *Module, fd *ast.FuncDecl, order int, sink *diag.Sink) {
	if _, exists := mod.Funcs[fd.Name]; exists {
		sink.Report(diag.New(diag.NAM001, "duplicate function declaration: "+fd.Name, toLoc(fd.Loc())))
		return
	}
	mod.Funcs[fd.Name] = NewFuncDecl(fd.Name, fd)
}

func (s *Scanner) scanExt(mod *Module, ext *ast.Ext, order int, sink *diag.Sink) {
	if ext.TypeExpr == nil || len(ext.Traits) == 0 {
		// A bare `ext T { ... }` with no trait clause adds inherent
		// methods directly; not modeled as a TraitImpl.
		return
	}
	for _, tcc := range ext.Traits {
		impl := &TraitImpl{
			TraitName:   tcc.Trait,
			Ext:         ext,
			Methods:     make(map[string]*Declaration),
			SourceOrder: order,
			SourceName:  fmt.Sprintf("%s@%s", tcc.Trait, ext.TypeExpr.Name),
		}
		for _, m := range ext.Methods {
			impl.Methods[m.Name] = NewFuncDecl(m.Name, m)
		}
		mod.AddTraitImpl(impl)
	}
}

func toLoc(l ast.Location) interface{} { return l }
