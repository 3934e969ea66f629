package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyPrimitivesMatch(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	sub, err := u.Unify(tc.Prim(I32), tc.Prim(I32), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, sub)
}

func TestUnifyPrimitivesMismatch(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	_, err := u.Unify(tc.Prim(I32), tc.Prim(Bool), nil, nil)
	require.Error(t, err)
	var uerr *UnifyError
	require.ErrorAs(t, err, &uerr)
}

func TestUnifyBindsTypeVar(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	v := tc.FreshTypeVar("a")
	sub, err := u.Unify(v, tc.Prim(I32), nil, nil)
	require.NoError(t, err)
	target, ok := sub.Lookup(v.Name)
	require.True(t, ok)
	assert.True(t, target.Equals(tc.Prim(I32)))
}

func TestUnifyOccursCheck(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	v := tc.FreshTypeVar("a")
	self := tc.Ptr(v)
	_, err := u.Unify(v, self, nil, nil)
	require.Error(t, err)
	var oerr *OccursError
	require.ErrorAs(t, err, &oerr)
}

func TestUnifyArraysRequireExactLength(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	a3 := tc.Array(tc.Prim(I32), 3)
	a4 := tc.Array(tc.Prim(I32), 4)
	_, err := u.Unify(a3, a4, nil, nil)
	require.Error(t, err)
}

func TestUnifyTuplesElementwise(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	v := tc.FreshTypeVar("a")
	lhs := tc.Tuple([]Type{v, tc.Prim(Bool)})
	rhs := tc.Tuple([]Type{tc.Prim(I32), tc.Prim(Bool)})
	sub, err := u.Unify(lhs, rhs, nil, nil)
	require.NoError(t, err)
	bound, ok := sub.Lookup(v.Name)
	require.True(t, ok)
	assert.True(t, bound.Equals(tc.Prim(I32)))
}

func TestUnifyFuncArityMismatch(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	f1 := tc.Func(tc.Prim(Unit), []Type{tc.Prim(I32)}, nil, false)
	f2 := tc.Func(tc.Prim(Unit), []Type{tc.Prim(I32), tc.Prim(I32)}, nil, false)
	_, err := u.Unify(f1, f2, nil, nil)
	require.Error(t, err)
}

func TestUnifyModifierChainMustMatch(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	mut := tc.Modifier(tc.Prim(I32), ModMut, "")
	constTy := tc.Modifier(tc.Prim(I32), ModConst, "")
	_, err := u.Unify(mut, constTy, nil, nil)
	require.Error(t, err)
}

func TestUnifyAgeBasedTieBreak(t *testing.T) {
	tc := NewTypeContext()
	u := NewUnifier(tc)
	older := tc.FreshTypeVar("a")
	younger := tc.FreshTypeVar("b")
	sub, err := u.Unify(younger, older, nil, nil)
	require.NoError(t, err)
	// The younger variable is substituted into the older one, so the
	// binding key is the younger name (§4.4's stability guarantee).
	_, ok := sub.Lookup(younger.Name)
	assert.True(t, ok)
}

func TestApplySubstitutionRecursesIntoCompounds(t *testing.T) {
	tc := NewTypeContext()
	v := tc.FreshTypeVar("a")
	sub := Substitution{{Name: v.Name, Target: tc.Prim(I32)}}
	tup := tc.Tuple([]Type{v, tc.Prim(Bool)})
	result := ApplySubstitution(sub, tup).(*Tuple)
	assert.True(t, result.Fields[0].Equals(tc.Prim(I32)))
	assert.True(t, result.Fields[1].Equals(tc.Prim(Bool)))
}
