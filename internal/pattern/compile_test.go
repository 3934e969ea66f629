package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

func TestCompileLiteralBranchEmitsLiteralTest(t *testing.T) {
	tc := types.NewTypeContext()
	branches := []*ast.MatchBranch{
		ast.NewMatchBranch(ast.NewPatLit(ast.KIntLit, "1", ast.Location{}), ast.NewIntLit("1", ast.Location{}), ast.Location{}),
		ast.NewMatchBranch(ast.NewPatVar("_", ast.Location{}), ast.NewIntLit("0", ast.Location{}), ast.Location{}),
	}
	compiled, err := Compile(tc.Prim(types.I32), branches)
	require.NoError(t, err)
	require.Len(t, compiled.Branches, 2)

	first := compiled.Branches[0]
	require.Len(t, first.Tests, 1)
	assert.Equal(t, TestLiteral, first.Tests[0].Kind)
	assert.Equal(t, "1", first.Tests[0].LitText)

	second := compiled.Branches[1]
	assert.Empty(t, second.Tests)
	assert.False(t, compiled.FallthroughReachable, "a trailing wildcard covers everything left")
}

func TestCompilePatVarBindsPath(t *testing.T) {
	tc := types.NewTypeContext()
	branches := []*ast.MatchBranch{
		ast.NewMatchBranch(ast.NewPatVar("x", ast.Location{}), ast.NewIntLit("0", ast.Location{}), ast.Location{}),
	}
	compiled, err := Compile(tc.Prim(types.I32), branches)
	require.NoError(t, err)
	require.Len(t, compiled.Branches[0].Bindings, 1)
	assert.Equal(t, "x", compiled.Branches[0].Bindings[0].Name)
}

func TestCompileTuplePatternRecursesByOffset(t *testing.T) {
	tc := types.NewTypeContext()
	scrut := tc.Tuple([]types.Type{tc.Prim(types.I32), tc.Prim(types.Bool)})
	tuplePat := ast.NewPatTuple([]ast.Node{
		ast.NewPatLit(ast.KIntLit, "1", ast.Location{}),
		ast.NewPatVar("b", ast.Location{}),
	}, ast.Location{})
	branches := []*ast.MatchBranch{ast.NewMatchBranch(tuplePat, ast.NewIntLit("0", ast.Location{}), ast.Location{})}

	compiled, err := Compile(scrut, branches)
	require.NoError(t, err)
	b := compiled.Branches[0]
	require.Len(t, b.Tests, 1)
	assert.Equal(t, []int{0}, b.Tests[0].Path)
	require.Len(t, b.Bindings, 1)
	assert.Equal(t, []int{1}, b.Bindings[0].Path)
}

func TestCompileCtorPatternEmitsTagTestAndOffsetsPayload(t *testing.T) {
	tc := types.NewTypeContext()
	none := tc.NewProductTemplate("None", []types.Type{tc.Prim(types.I32)}, []string{"$tag"}, nil)
	some := tc.NewProductTemplate("Some", []types.Type{tc.Prim(types.I32), tc.Prim(types.I32)}, []string{"$tag", "value"}, nil)
	sum := tc.NewSumTemplate("Option", []*types.ProductType{none, some}, nil)

	ctorPat := ast.NewPatCtor("Some", []ast.Node{ast.NewPatVar("x", ast.Location{})}, ast.Location{})
	branches := []*ast.MatchBranch{ast.NewMatchBranch(ctorPat, ast.NewIntLit("0", ast.Location{}), ast.Location{})}

	compiled, err := Compile(sum, branches)
	require.NoError(t, err)
	b := compiled.Branches[0]
	require.Len(t, b.Tests, 1)
	assert.Equal(t, TestTag, b.Tests[0].Kind)
	assert.Equal(t, "Some", b.Tests[0].TagName)
	assert.Equal(t, 1, b.Tests[0].TagIndex)

	require.Len(t, b.Bindings, 1)
	assert.Equal(t, []int{1}, b.Bindings[0].Path, "payload offsets start at 1, past the discriminator slot")
}

func TestCompileUnknownTagIsAnError(t *testing.T) {
	tc := types.NewTypeContext()
	none := tc.NewProductTemplate("None", []types.Type{tc.Prim(types.I32)}, []string{"$tag"}, nil)
	sum := tc.NewSumTemplate("Option", []*types.ProductType{none}, nil)

	ctorPat := ast.NewPatCtor("Nowhere", nil, ast.Location{})
	branches := []*ast.MatchBranch{ast.NewMatchBranch(ctorPat, ast.NewIntLit("0", ast.Location{}), ast.Location{})}

	_, err := Compile(sum, branches)
	assert.Error(t, err)
}

func TestResolveStringEquabilityFillsImpl(t *testing.T) {
	tc := types.NewTypeContext()
	strType := tc.NewProductTemplate("Str", nil, nil, nil)
	mod := module.NewModule("test", nil)
	impl := &module.TraitImpl{TraitName: "Eq", Args: []types.Type{strType, strType}, SourceName: "strEq"}
	mod.AddTraitImpl(impl)

	branches := []*ast.MatchBranch{
		ast.NewMatchBranch(ast.NewPatLit(ast.KStrLit, "\"hi\"", ast.Location{}), ast.NewIntLit("0", ast.Location{}), ast.Location{}),
	}
	compiled, err := Compile(strType, branches)
	require.NoError(t, err)

	require.NoError(t, ResolveStringEquality(compiled, mod, strType))
	assert.Same(t, impl, compiled.Branches[0].Tests[0].StrEqImpl)
}

func TestResolveStringEqualityErrorsWithoutImpl(t *testing.T) {
	tc := types.NewTypeContext()
	strType := tc.NewProductTemplate("Str", nil, nil, nil)
	mod := module.NewModule("test", nil)

	branches := []*ast.MatchBranch{
		ast.NewMatchBranch(ast.NewPatLit(ast.KStrLit, "\"hi\"", ast.Location{}), ast.NewIntLit("0", ast.Location{}), ast.Location{}),
	}
	compiled, err := Compile(strType, branches)
	require.NoError(t, err)

	err = ResolveStringEquality(compiled, mod, strType)
	assert.Error(t, err)
}
