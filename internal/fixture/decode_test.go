package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/antec/internal/ast"
)

func TestDecodeRejectsNonRootTopLevel(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"IntLit","text":"1"}`))
	assert.Error(t, err)
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeEmptyRoot(t *testing.T) {
	root, err := Decode([]byte(`{"kind":"Root"}`))
	require.NoError(t, err)
	assert.Empty(t, root.Funcs)
	assert.Empty(t, root.Main)
}

func TestDecodeSimpleFuncDecl(t *testing.T) {
	src := `{
		"kind": "Root",
		"funcs": [{
			"kind": "FuncDecl",
			"name": "f",
			"params": [{"kind": "NamedVal", "name": "x", "type_expr": {"kind":"TypeNode","tag":"named","name":"i32"}}],
			"type_expr": {"kind":"TypeNode","tag":"named","name":"i32"},
			"body": {"kind":"Var","name":"x"}
		}]
	}`
	root, err := Decode([]byte(src))
	require.NoError(t, err)
	require.Len(t, root.Funcs, 1)

	fd := root.Funcs[0]
	assert.Equal(t, "f", fd.Name)
	require.Len(t, fd.Params, 1)
	assert.Equal(t, "x", fd.Params[0].Name)
	require.NotNil(t, fd.TypeExpr)
	assert.Equal(t, "i32", fd.TypeExpr.Name)

	body, ok := fd.Body.(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "x", body.Name)
}

func TestDecodeBinOpAndIf(t *testing.T) {
	src := `{
		"kind": "Root",
		"main": [{
			"kind": "If",
			"cond": {"kind":"BoolLit","text":"true"},
			"then": {"kind":"BinOp","op":"+","lval":{"kind":"IntLit","text":"1"},"rval":{"kind":"IntLit","text":"2"}},
			"else": {"kind":"IntLit","text":"0"}
		}]
	}`
	root, err := Decode([]byte(src))
	require.NoError(t, err)
	require.Len(t, root.Main, 1)

	ifNode, ok := root.Main[0].(*ast.If)
	require.True(t, ok)
	_, ok = ifNode.Cond.(*ast.BoolLit)
	assert.True(t, ok)

	bin, ok := ifNode.Then.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	lhs, ok := bin.Lval.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, "1", lhs.Text)
}

func TestDecodeMatchWithBranches(t *testing.T) {
	src := `{
		"kind": "Root",
		"main": [{
			"kind": "Match",
			"expr": {"kind":"BoolLit","text":"true"},
			"branches": [
				{"kind":"MatchBranch","pattern":{"kind":"PatLit","lit_kind":"BoolLit","text":"true"},"branch":{"kind":"IntLit","text":"1"}},
				{"kind":"MatchBranch","pattern":{"kind":"PatVar","name":"_"},"branch":{"kind":"IntLit","text":"0"}}
			]
		}]
	}`
	root, err := Decode([]byte(src))
	require.NoError(t, err)

	match, ok := root.Main[0].(*ast.Match)
	require.True(t, ok)
	require.Len(t, match.Branches, 2)
	pat, ok := match.Branches[0].Pattern.(*ast.PatLit)
	require.True(t, ok)
	assert.Equal(t, ast.KBoolLit, pat.LitKind)
}

func TestDecodeArrayAndTuple(t *testing.T) {
	src := `{
		"kind": "Root",
		"main": [
			{"kind":"Array","exprs":[{"kind":"IntLit","text":"1"},{"kind":"IntLit","text":"2"}]},
			{"kind":"Tuple","exprs":[{"kind":"IntLit","text":"1"},{"kind":"BoolLit","text":"false"}]}
		]
	}`
	root, err := Decode([]byte(src))
	require.NoError(t, err)
	require.Len(t, root.Main, 2)

	arr, ok := root.Main[0].(*ast.Array)
	require.True(t, ok)
	assert.Len(t, arr.Exprs, 2)

	tup, ok := root.Main[1].(*ast.Tuple)
	require.True(t, ok)
	assert.Len(t, tup.Exprs, 2)
}
