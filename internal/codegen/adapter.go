// Package codegen specifies the adapter contract §6 draws between the
// core and the external code-generation backend: the core hands over
// fully-solved, fully-ground functions (original non-generic
// declarations as written, plus one descriptor per monomorphised
// instantiation) and the adapter lowers each into its own IR. Nothing
// in this package generates machine code or any concrete IR; the real
// backend is, per spec.md's Non-goals, an external collaborator.
package codegen

import (
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/mangle"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/mono"
	"github.com/ante-lang/antec/internal/pipeline"
	"github.com/ante-lang/antec/internal/types"
)

// ParamDecl names one formal parameter of an emitted function alongside
// its ground type, since codegen needs both to allocate a binding.
type ParamDecl struct {
	Name string
	Type types.Type
}

// MonoMapping gives, for one emitted function, the ground type each of
// its original type-variable names was bound to by monomorphisation
// (§4.6). It is empty for functions that were never generic.
type MonoMapping map[string]types.Type

// FuncDescriptor is everything emit_function needs (spec.md §6): the
// source name, its mangled form (§6, internal/mangle), the solved
// signature, per-parameter declarations, the (fully substituted) body,
// and the type-variable bindings active at this instantiation.
type FuncDescriptor struct {
	Name        string
	MangledName string
	Signature   *types.Func
	Params      []ParamDecl
	Body        ast.Node
	Mono        MonoMapping
}

// Adapter is the minimal API the core consumes (spec.md: "a thin
// 'codegen adapter' ... offering a minimal API the core consumes").
// Implementations lower FuncDescriptor.Body into their own IR; the core
// promises every type slot reachable from Body is ground.
type Adapter interface {
	EmitFunction(d FuncDescriptor) error
}

// Driver walks a compiled module's output and calls Adapter.EmitFunction
// once per function the core decides to emit: every non-generic
// top-level declaration exactly once, and every call-site instantiation
// pipeline.Compile produced (§4.6), each under its own mangled name.
type Driver struct {
	Adapter Adapter
}

func NewDriver(adapter Adapter) *Driver {
	return &Driver{Adapter: adapter}
}

// Run emits every function reachable from mod and out. It stops at the
// first adapter error, consistent with §5's "halt further passes" rule
// for failures the adapter itself cannot recover from.
func (d *Driver) Run(mod *module.Module, out *pipeline.Output) error {
	for _, fd := range mod.AST.Funcs {
		fnTy, ok := fd.GetType().(*types.Func)
		if !ok || fnTy.IsGeneric() {
			// Never instantiated at any call site (dead code) or still
			// generic (emitted only through its instantiations below).
			continue
		}
		desc := FuncDescriptor{
			Name:        fd.Name,
			MangledName: mangle.Mangle(fd.Name, fnTy.Params),
			Signature:   fnTy,
			Params:      paramDecls(fd, fnTy),
			Body:        fd.Body,
		}
		if err := d.Adapter.EmitFunction(desc); err != nil {
			return fmt.Errorf("emitting %s: %w", fd.Name, err)
		}
	}

	for _, inst := range out.Instantiations {
		desc := FuncDescriptor{
			Name:        inst.Source.Name,
			MangledName: inst.MangledName,
			Signature:   inst.Type,
			Params:      paramDecls(inst.Decl, inst.Type),
			Body:        inst.Decl.Body,
			Mono:        monoMapping(inst),
		}
		if err := d.Adapter.EmitFunction(desc); err != nil {
			return fmt.Errorf("emitting %s: %w", inst.MangledName, err)
		}
	}
	return nil
}

func paramDecls(fd *ast.FuncDecl, fnTy *types.Func) []ParamDecl {
	params := make([]ParamDecl, len(fd.Params))
	for i, p := range fd.Params {
		ty := types.Type(nil)
		if i < len(fnTy.Params) {
			ty = fnTy.Params[i]
		}
		params[i] = ParamDecl{Name: p.Name, Type: ty}
	}
	return params
}

// monoMapping recovers the type-variable bindings that grounded this
// instantiation by re-unifying the original generic signature against
// the ground one mono.Instantiate already computed. Re-deriving it here
// (rather than threading the unifier's Substitution out of
// Instantiate) keeps Instantiation's public shape small; unification is
// cheap and, since both sides are already known-unifiable, cannot fail.
func monoMapping(inst *mono.Instantiation) MonoMapping {
	origTy, ok := inst.Source.GetType().(*types.Func)
	if !ok {
		return nil
	}
	tc := types.NewTypeContext()
	unifier := types.NewUnifier(tc)
	sub, err := unifier.Unify(origTy, inst.Type, nil, inst.Source.Loc())
	if err != nil {
		return nil
	}
	mapping := make(MonoMapping, len(sub))
	for _, b := range sub {
		mapping[b.Name] = b.Target
	}
	return mapping
}
