package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ante-lang/antec/internal/types"
)

func TestMangleNoParams(t *testing.T) {
	assert.Equal(t, "identity", Mangle("identity", nil))
}

func TestMangleIncludesEachParam(t *testing.T) {
	tc := types.NewTypeContext()
	got := Mangle("pair", []types.Type{tc.Prim(types.I32), tc.Prim(types.Bool)})
	assert.Contains(t, got, "pair")
	assert.Contains(t, got, "i32")
	assert.Contains(t, got, "bool")
}

func TestMangleIsDeterministic(t *testing.T) {
	tc := types.NewTypeContext()
	params := []types.Type{tc.Prim(types.I32), tc.Ptr(tc.Prim(types.Bool))}
	a := Mangle("f", params)
	b := Mangle("f", params)
	assert.Equal(t, a, b)
}

func TestMangleDistinguishesParamOrder(t *testing.T) {
	tc := types.NewTypeContext()
	a := Mangle("f", []types.Type{tc.Prim(types.I32), tc.Prim(types.Bool)})
	b := Mangle("f", []types.Type{tc.Prim(types.Bool), tc.Prim(types.I32)})
	assert.NotEqual(t, a, b)
}

func TestCanonicalTypeStringNFCNormalizes(t *testing.T) {
	// Two byte-distinct spellings of the same visible name: one using
	// the precomposed "e with acute" codepoint (NFC), the other using
	// plain "e" followed by a combining acute accent rune (NFD). Both
	// must canonicalize identically once routed through
	// golang.org/x/text's NFC normalizer.
	precomposed := "caf" + string(rune(0x00e9))
	combining := "cafe" + string(rune(0x0301))
	require := assert.New(t)
	require.NotEqual(precomposed, combining, "the two spellings must differ byte-for-byte before normalization")

	tc := types.NewTypeContext()
	composed := tc.NewProductTemplate(precomposed, nil, nil, nil)
	decomposed := tc.NewProductTemplate(combining, nil, nil, nil)

	require.Equal(CanonicalTypeString(composed), CanonicalTypeString(decomposed))
}
