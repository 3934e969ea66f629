package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimIsInterned(t *testing.T) {
	tc := NewTypeContext()
	assert.Same(t, tc.Prim(I32), tc.Prim(I32))
	assert.NotSame(t, tc.Prim(I32), tc.Prim(I64))
}

func TestCompoundsAreInterned(t *testing.T) {
	tc := NewTypeContext()

	tests := []struct {
		name string
		make func() Type
	}{
		{"Ptr", func() Type { return tc.Ptr(tc.Prim(I32)) }},
		{"Array", func() Type { return tc.Array(tc.Prim(I32), 4) }},
		{"Tuple", func() Type { return tc.Tuple([]Type{tc.Prim(I32), tc.Prim(Bool)}) }},
		{"Func", func() Type { return tc.Func(tc.Prim(Unit), []Type{tc.Prim(I32)}, nil, false) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.make()
			b := tt.make()
			assert.Same(t, a, b, "two constructions with identical structure must intern to the same instance (I1)")
		})
	}
}

func TestArrayInterningRespectsLength(t *testing.T) {
	tc := NewTypeContext()
	a3 := tc.Array(tc.Prim(I32), 3)
	a4 := tc.Array(tc.Prim(I32), 4)
	assert.NotSame(t, a3, a4)
	assert.False(t, a3.Equals(a4))
}

func TestTupleAndRecordShareStructure(t *testing.T) {
	tc := NewTypeContext()
	tup := tc.Tuple([]Type{tc.Prim(I32), tc.Prim(Bool)})
	rec := tc.Record([]Type{tc.Prim(I32), tc.Prim(Bool)}, []string{"", ""})
	assert.Same(t, tup, rec)
}

func TestFreshTypeVarIsDistinctEachCall(t *testing.T) {
	tc := NewTypeContext()
	a := tc.FreshTypeVar("t")
	b := tc.FreshTypeVar("t")
	assert.False(t, a.Equals(b))
	assert.Greater(t, b.Age, a.Age)
}

func TestTypeVarNamedLookupIsStable(t *testing.T) {
	tc := NewTypeContext()
	a := tc.TypeVar("x")
	b := tc.TypeVar("x")
	assert.Same(t, a, b)
}

func TestModifierLetIsIdentity(t *testing.T) {
	tc := NewTypeContext()
	inner := tc.Prim(I32)
	let := tc.Modifier(inner, ModLet, "")
	assert.True(t, let.Equals(inner), "a Let modifier is an identity wrapper for Equals (I3)")
	assert.Equal(t, inner.String(), let.String())
}

func TestModifierConstAbsorbsMut(t *testing.T) {
	tc := NewTypeContext()
	inner := tc.Prim(I32)
	constTy := tc.Modifier(inner, ModConst, "")
	stillConst := tc.AddModifiersTo(tc.Modifier(inner, ModMut, ""), constTy)
	mod, ok := stillConst.(*Modifier)
	require.True(t, ok)
	assert.Equal(t, ModConst, mod.Kind, "Const must not be demoted back to Mut by a later modifier add")
}

func TestNewProductTemplateAndInstantiate(t *testing.T) {
	tc := NewTypeContext()
	tv := tc.FreshTypeVar("a")
	template := tc.NewProductTemplate("Box", []Type{tv}, []string{"value"}, []Type{tv})
	instance := tc.InstantiateProduct(template, []Type{tc.Prim(I32)})

	assert.True(t, IsVariantOf(instance, template))
	assert.False(t, instance.IsGeneric())
	assert.True(t, template.IsGeneric())
}

func TestNullaryTupleIsUnit(t *testing.T) {
	tc := NewTypeContext()
	assert.Same(t, tc.Prim(Unit), tc.Tuple(nil))
	assert.Same(t, tc.Prim(Unit), tc.Tuple([]Type{}))
	assert.Same(t, tc.Prim(Unit), tc.Record(nil, nil))
	assert.True(t, tc.Tuple(nil).Equals(tc.Prim(Unit)), "Tuple([]) == Unit (§8)")
}

func TestApproxEqualsTreatsTypeVarAsWildcard(t *testing.T) {
	tc := NewTypeContext()
	v := tc.FreshTypeVar("a")
	assert.True(t, v.ApproxEquals(tc.Prim(I32)))
	assert.False(t, v.Equals(tc.Prim(I32)), "Equals must not be fooled the same way ApproxEquals is (I5)")
}
