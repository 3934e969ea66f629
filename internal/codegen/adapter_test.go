package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/mangle"
	"github.com/ante-lang/antec/internal/mono"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/pipeline"
	"github.com/ante-lang/antec/internal/types"
)

func TestRecordingAdapterCollectsInOrder(t *testing.T) {
	r := NewRecordingAdapter()
	require.NoError(t, r.EmitFunction(FuncDescriptor{Name: "a"}))
	require.NoError(t, r.EmitFunction(FuncDescriptor{Name: "b"}))
	require.Len(t, r.Emitted, 2)
	assert.Equal(t, "a", r.Emitted[0].Name)
	assert.Equal(t, "b", r.Emitted[1].Name)
}

func TestDriverRunEmitsConcreteFuncAndSkipsGeneric(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)

	concreteParam := ast.NewNamedVal("x", nil, ast.Location{})
	concrete := ast.NewFuncDecl("f", []*ast.NamedVal{concreteParam}, nil, ast.NewIntLit("1", ast.Location{}), ast.Location{})
	concrete.SetType(tc.Func(tc.Prim(types.I32), []types.Type{tc.Prim(types.I32)}, nil, false))

	tv := tc.FreshTypeVar("a")
	generic := ast.NewFuncDecl("id", nil, nil, nil, ast.Location{})
	generic.SetType(tc.Func(tv, []types.Type{tv}, nil, false))

	mod.AST = &ast.Root{Funcs: []*ast.FuncDecl{concrete, generic}}

	recorder := NewRecordingAdapter()
	driver := NewDriver(recorder)
	err := driver.Run(mod, &pipeline.Output{})
	require.NoError(t, err)

	require.Len(t, recorder.Emitted, 1)
	desc := recorder.Emitted[0]
	assert.Equal(t, "f", desc.Name)
	assert.Equal(t, mangle.Mangle("f", []types.Type{tc.Prim(types.I32)}), desc.MangledName)
	require.Len(t, desc.Params, 1)
	assert.Equal(t, "x", desc.Params[0].Name)
	assert.Same(t, tc.Prim(types.I32), desc.Params[0].Type)
}

func TestDriverRunStopsOnAdapterError(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	fd := ast.NewFuncDecl("f", nil, nil, nil, ast.Location{})
	fd.SetType(tc.Func(tc.Prim(types.Unit), nil, nil, false))
	mod.AST = &ast.Root{Funcs: []*ast.FuncDecl{fd}}

	boom := errors.New("boom")
	driver := NewDriver(failingAdapter{err: boom})
	err := driver.Run(mod, &pipeline.Output{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

type failingAdapter struct{ err error }

func (f failingAdapter) EmitFunction(FuncDescriptor) error { return f.err }

func TestDriverRunEmitsInstantiationsWithMonoMapping(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	mod.AST = &ast.Root{}

	tv := tc.FreshTypeVar("a")
	param := ast.NewNamedVal("x", nil, ast.Location{})
	source := ast.NewFuncDecl("id", []*ast.NamedVal{param}, nil, ast.NewVar("x", ast.Location{}), ast.Location{})
	source.SetType(tc.Func(tv, []types.Type{tv}, nil, false))

	cloned := ast.NewFuncDecl("id", []*ast.NamedVal{param}, nil, ast.NewVar("x", ast.Location{}), ast.Location{})
	groundTy := tc.Func(tc.Prim(types.I32), []types.Type{tc.Prim(types.I32)}, nil, false)
	cloned.SetType(groundTy)

	inst := &mono.Instantiation{
		Source:      source,
		Decl:        cloned,
		Type:        groundTy,
		MangledName: mangle.Mangle("id", []types.Type{tc.Prim(types.I32)}),
	}

	recorder := NewRecordingAdapter()
	driver := NewDriver(recorder)
	err := driver.Run(mod, &pipeline.Output{Instantiations: []*mono.Instantiation{inst}})
	require.NoError(t, err)

	require.Len(t, recorder.Emitted, 1)
	desc := recorder.Emitted[0]
	assert.Equal(t, "id", desc.Name)
	assert.Equal(t, inst.MangledName, desc.MangledName)
	require.Contains(t, desc.Mono, tv.Name)
	assert.True(t, desc.Mono[tv.Name].Equals(tc.Prim(types.I32)))
}
