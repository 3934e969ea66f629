package trait

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

func TestIsBuiltinTraitName(t *testing.T) {
	assert.True(t, IsBuiltinTraitName(Add))
	assert.True(t, IsBuiltinTraitName(Cast))
	assert.False(t, IsBuiltinTraitName("Show"))
}

func TestSynthesizeBuiltinArith(t *testing.T) {
	tc := types.NewTypeContext()
	b, ok := SynthesizeBuiltin(tc, Add, []types.Type{tc.Prim(types.I32), tc.Prim(types.I32)})
	require.True(t, ok)
	assert.Same(t, tc.Prim(types.I32), b.Result)
}

func TestSynthesizeBuiltinArithRejectsMismatchedPrims(t *testing.T) {
	tc := types.NewTypeContext()
	_, ok := SynthesizeBuiltin(tc, Add, []types.Type{tc.Prim(types.I32), tc.Prim(types.Bool)})
	assert.False(t, ok)
}

func TestSynthesizeBuiltinModRejectsFloat(t *testing.T) {
	tc := types.NewTypeContext()
	_, ok := SynthesizeBuiltin(tc, Mod, []types.Type{tc.Prim(types.F64), tc.Prim(types.F64)})
	assert.False(t, ok)
}

func TestSynthesizeBuiltinCmpOverPointers(t *testing.T) {
	tc := types.NewTypeContext()
	p := tc.Ptr(tc.Prim(types.I32))
	b, ok := SynthesizeBuiltin(tc, Cmp, []types.Type{p, p})
	require.True(t, ok)
	assert.Same(t, tc.Prim(types.Bool), b.Result)
}

func TestSynthesizeBuiltinDeref(t *testing.T) {
	tc := types.NewTypeContext()
	b, ok := SynthesizeBuiltin(tc, Deref, []types.Type{tc.Ptr(tc.Prim(types.I32))})
	require.True(t, ok)
	assert.Same(t, tc.Prim(types.I32), b.Result)
}

func TestSynthesizeBuiltinCastReturnsFalse(t *testing.T) {
	tc := types.NewTypeContext()
	_, ok := SynthesizeBuiltin(tc, Cast, []types.Type{tc.Prim(types.I32)})
	assert.False(t, ok, "Cast must be resolved through SynthesizeCast, not SynthesizeBuiltin")
}

func TestSynthesizeBuiltinExtractOnArray(t *testing.T) {
	tc := types.NewTypeContext()
	arr := tc.Array(tc.Prim(types.Bool), 3)
	b, ok := SynthesizeBuiltin(tc, Extract, []types.Type{arr, tc.Prim(types.I32)})
	require.True(t, ok)
	assert.Same(t, tc.Prim(types.Bool), b.Result)
}

func TestSynthesizeBuiltinExtractOnTupleRefuses(t *testing.T) {
	tc := types.NewTypeContext()
	tup := tc.Tuple([]types.Type{tc.Prim(types.I32), tc.Prim(types.Bool)})
	_, ok := SynthesizeBuiltin(tc, Extract, []types.Type{tup, tc.Prim(types.I32)})
	assert.False(t, ok)
}

func TestSynthesizeCastIntToIntSignExtends(t *testing.T) {
	tc := types.NewTypeContext()
	b, ok := SynthesizeCast(tc, tc.Prim(types.I8), tc.Prim(types.I32))
	require.True(t, ok)
	assert.Equal(t, CastIntToInt, b.CastKind)
	assert.Equal(t, ExtendSign, b.IntExtend)
	assert.False(t, b.Truncating)
}

func TestSynthesizeCastIntToIntZeroExtendsUnsigned(t *testing.T) {
	tc := types.NewTypeContext()
	b, ok := SynthesizeCast(tc, tc.Prim(types.U8), tc.Prim(types.U32))
	require.True(t, ok)
	assert.Equal(t, ExtendZero, b.IntExtend)
}

func TestSynthesizeCastNarrowingTruncates(t *testing.T) {
	tc := types.NewTypeContext()
	b, ok := SynthesizeCast(tc, tc.Prim(types.I32), tc.Prim(types.I8))
	require.True(t, ok)
	assert.True(t, b.Truncating)
}

func TestSynthesizeCastPtrToPtr(t *testing.T) {
	tc := types.NewTypeContext()
	b, ok := SynthesizeCast(tc, tc.Ptr(tc.Prim(types.I32)), tc.Ptr(tc.Prim(types.Bool)))
	require.True(t, ok)
	assert.Equal(t, CastPtrToPtr, b.CastKind)
}

func TestSynthesizeCastUnsupportedPair(t *testing.T) {
	tc := types.NewTypeContext()
	_, ok := SynthesizeCast(tc, tc.Prim(types.Bool), tc.Prim(types.I32))
	assert.False(t, ok)
}

func TestResolverResolveUsesUserImplBeforeBuiltin(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	args := []types.Type{tc.Prim(types.I32), tc.Prim(types.I32)}
	impl := &module.TraitImpl{TraitName: Add, Args: args, SourceName: "userAdd"}
	mod.AddTraitImpl(impl)

	r := NewResolver(tc)
	sink := diag.NewSink()
	res, err := r.Resolve(mod, &types.TraitRef{TraitName: Add, Args: args}, ast.Location{}, sink)
	require.NoError(t, err)
	require.NotNil(t, res.Impl)
	assert.Same(t, impl, res.Impl)
	assert.Nil(t, res.Builtin)
}

func TestResolverResolveFallsBackToBuiltin(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	args := []types.Type{tc.Prim(types.I32), tc.Prim(types.I32)}

	r := NewResolver(tc)
	sink := diag.NewSink()
	res, err := r.Resolve(mod, &types.TraitRef{TraitName: Add, Args: args}, ast.Location{}, sink)
	require.NoError(t, err)
	require.NotNil(t, res.Builtin)
	assert.Equal(t, Add, res.Builtin.Trait)
}

func TestResolverResolveReportsNoImplAsTRA001(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	args := []types.Type{tc.Prim(types.Bool), tc.Prim(types.Bool)}

	r := NewResolver(tc)
	sink := diag.NewSink()
	_, err := r.Resolve(mod, &types.TraitRef{TraitName: Add, Args: args}, ast.Location{}, sink)
	require.Error(t, err)
	rep, ok := err.(*diag.Report)
	require.True(t, ok)
	assert.Equal(t, diag.TRA001, rep.Code)
}

func TestResolverResolveRejectsNonGroundRef(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	tv := tc.FreshTypeVar("a")

	r := NewResolver(tc)
	sink := diag.NewSink()
	_, err := r.Resolve(mod, &types.TraitRef{TraitName: Add, Args: []types.Type{tv, tv}}, ast.Location{}, sink)
	require.Error(t, err)
	rep, ok := err.(*diag.Report)
	require.True(t, ok)
	assert.Equal(t, diag.INT001, rep.Code)
}

func TestResolverResolveReportsAmbiguousAsTRA002(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	args := []types.Type{tc.Prim(types.I32), tc.Prim(types.I32)}
	mod.AddTraitImpl(&module.TraitImpl{TraitName: Add, Args: args, SourceName: "a"})
	mod.AddTraitImpl(&module.TraitImpl{TraitName: Add, Args: args, SourceName: "b"})

	r := NewResolver(tc)
	sink := diag.NewSink()
	_, err := r.Resolve(mod, &types.TraitRef{TraitName: Add, Args: args}, ast.Location{}, sink)
	require.Error(t, err)
	rep, ok := err.(*diag.Report)
	require.True(t, ok)
	assert.Equal(t, diag.TRA002, rep.Code)
}
