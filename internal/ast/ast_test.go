package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ante-lang/antec/internal/types"
)

func TestLocationString(t *testing.T) {
	loc := Location{File: "f.ante", Start: Pos{Line: 1, Col: 2}, End: Pos{Line: 1, Col: 5}}
	assert.Equal(t, "f.ante:1:2-1:5", loc.String())
}

func TestKindStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "BinOp", KBinOp.String())
	assert.Equal(t, "PatCtor", KPatCtor.String())
	assert.Equal(t, "Unknown", Kind(-1).String())
	assert.Equal(t, "Unknown", Kind(1000).String())
}

func TestTypedGetSetType(t *testing.T) {
	tc := types.NewTypeContext()
	var ty Typed
	assert.Nil(t, ty.GetType())
	ty.SetType(tc.Prim(types.I32))
	assert.Same(t, tc.Prim(types.I32), ty.GetType())
}

func TestIntLitConstructorAndAccessors(t *testing.T) {
	loc := Location{File: "f.ante"}
	n := NewIntLit("42", loc)
	assert.Equal(t, KIntLit, n.Kind())
	assert.Equal(t, loc, n.Loc())
	assert.Equal(t, "42", n.String())
	assert.Nil(t, n.GetType())
}

func TestBoolLitStringReflectsValue(t *testing.T) {
	assert.Equal(t, "true", NewBoolLit(true, Location{}).String())
	assert.Equal(t, "false", NewBoolLit(false, Location{}).String())
}

func TestRootStringAndKind(t *testing.T) {
	r := NewRoot(Location{})
	assert.Equal(t, KRoot, r.Kind())
	assert.Equal(t, "Root", r.String())
	assert.Empty(t, r.Funcs)
}

func TestTypeNodeCarriesTagAndParams(t *testing.T) {
	param := NewTypeNode("named", "i32", Location{})
	fn := NewTypeNode("named", "Pair", Location{})
	fn.Params = []*TypeNode{param}
	assert.Equal(t, "named", fn.Tag)
	assert.Equal(t, "Pair", fn.String())
	require := assert.New(t)
	require.Len(fn.Params, 1)
	require.Equal("i32", fn.Params[0].Name)
}

func TestArrayAndTupleHoldExprsInOrder(t *testing.T) {
	a := NewIntLit("1", Location{})
	b := NewIntLit("2", Location{})

	arr := NewArray([]Node{a, b}, Location{})
	assert.Equal(t, KArray, arr.Kind())
	assert.Equal(t, []Node{a, b}, arr.Exprs)

	tup := NewTuple([]Node{a, b}, Location{})
	assert.Equal(t, KTuple, tup.Kind())
	assert.Equal(t, []Node{a, b}, tup.Exprs)
}
