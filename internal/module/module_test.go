package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/antec/internal/types"
)

func TestLookupTypeWalksParentChain(t *testing.T) {
	root := NewModule("root", nil)
	child := NewModule("child", root)
	root.Types["Foo"] = &TypeDecl{Name: "Foo", Arity: 0}

	got, ok := child.LookupType("Foo")
	require.True(t, ok)
	assert.Equal(t, "Foo", got.Name)
}

func TestLookupTypeSearchesImportsAfterParents(t *testing.T) {
	root := NewModule("root", nil)
	dep := NewModule("dep", nil)
	dep.Types["Bar"] = &TypeDecl{Name: "Bar", Arity: 0}
	root.AddImport(dep)

	got, ok := root.LookupType("Bar")
	require.True(t, ok)
	assert.Same(t, dep.Types["Bar"], got)

	_, ok = root.LookupType("Nowhere")
	assert.False(t, ok)
}

func TestLookupFuncAndLookupTrait(t *testing.T) {
	mod := NewModule("m", nil)
	decl := NewFuncDecl("f", nil)
	mod.Funcs["f"] = decl
	trait := NewTraitDecl("Show", nil, 0)
	mod.Traits["Show"] = trait

	gotF, ok := mod.LookupFunc("f")
	require.True(t, ok)
	assert.Same(t, decl, gotF)

	gotT, ok := mod.LookupTrait("Show")
	require.True(t, ok)
	assert.Same(t, trait, gotT)
}

func TestAddTraitImplAssignsSourceOrder(t *testing.T) {
	mod := NewModule("m", nil)
	tc := types.NewTypeContext()
	impl1 := &TraitImpl{TraitName: "Show", Args: []types.Type{tc.Prim(types.I32)}, SourceName: "b"}
	impl2 := &TraitImpl{TraitName: "Show", Args: []types.Type{tc.Prim(types.Bool)}, SourceName: "a"}
	mod.AddTraitImpl(impl1)
	mod.AddTraitImpl(impl2)

	assert.Equal(t, 0, impl1.SourceOrder)
	assert.Equal(t, 1, impl2.SourceOrder)
}

func TestLookupTraitImplNoMatch(t *testing.T) {
	mod := NewModule("m", nil)
	tc := types.NewTypeContext()
	impl, err := mod.LookupTraitImpl("Show", []types.Type{tc.Prim(types.I32)})
	require.NoError(t, err)
	assert.Nil(t, impl)
}

func TestLookupTraitImplSingleMatch(t *testing.T) {
	mod := NewModule("m", nil)
	tc := types.NewTypeContext()
	impl := &TraitImpl{TraitName: "Show", Args: []types.Type{tc.Prim(types.I32)}, SourceName: "a"}
	mod.AddTraitImpl(impl)

	got, err := mod.LookupTraitImpl("Show", []types.Type{tc.Prim(types.I32)})
	require.NoError(t, err)
	assert.Same(t, impl, got)
}

func TestLookupTraitImplAmbiguousReportsAllCandidates(t *testing.T) {
	mod := NewModule("m", nil)
	tc := types.NewTypeContext()
	args := []types.Type{tc.Prim(types.I32)}
	implA := &TraitImpl{TraitName: "Show", Args: args, SourceName: "b"}
	implB := &TraitImpl{TraitName: "Show", Args: args, SourceName: "a"}
	mod.AddTraitImpl(implA)
	mod.AddTraitImpl(implB)

	got, err := mod.LookupTraitImpl("Show", args)
	assert.Nil(t, got)
	require.Error(t, err)
	var aerr *AmbiguousImplError
	require.ErrorAs(t, err, &aerr)
	assert.Len(t, aerr.Candidates, 2)
}

func TestLookupTraitImplDeduplicatesAcrossParentAndImportWalk(t *testing.T) {
	// A single impl reachable via both the parent chain and the import
	// closure (because a dependency is shared) must not be counted twice.
	shared := NewModule("shared", nil)
	tc := types.NewTypeContext()
	impl := &TraitImpl{TraitName: "Show", Args: []types.Type{tc.Prim(types.I32)}, SourceName: "only"}
	shared.AddTraitImpl(impl)

	root := NewModule("root", nil)
	root.AddImport(shared)
	child := NewModule("child", root)
	child.AddImport(shared)

	got, err := child.LookupTraitImpl("Show", []types.Type{tc.Prim(types.I32)})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Same(t, impl, got)
}

func TestGetOrCreateSubmoduleIsIdempotent(t *testing.T) {
	mod := NewModule("m", nil)
	a := mod.GetOrCreateSubmodule("child")
	b := mod.GetOrCreateSubmodule("child")
	assert.Same(t, a, b)
	assert.Same(t, mod, a.Parent)
}

func TestTypeDeclResolve(t *testing.T) {
	tc := types.NewTypeContext()
	alias := &TypeDecl{Name: "Byte", Alias: tc.Prim(types.U8)}
	assert.Same(t, tc.Prim(types.U8), alias.Resolve())

	product := tc.NewProductTemplate("Box", nil, nil, nil)
	prodDecl := &TypeDecl{Name: "Box", Product: product}
	assert.Same(t, types.Type(product), prodDecl.Resolve())

	empty := &TypeDecl{Name: "Nothing"}
	assert.Nil(t, empty.Resolve())
}
