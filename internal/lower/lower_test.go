package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

func namedTypeNode(name string, params ...*ast.TypeNode) *ast.TypeNode {
	tn := ast.NewTypeNode("named", name, ast.Location{})
	tn.Params = params
	return tn
}

func TestLowerPrimitiveShortcut(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	got := l.Lower(namedTypeNode("i32"))
	assert.Same(t, tc.Prim(types.I32), got)
	assert.False(t, sink.Failed())
}

func TestLowerUnknownNameReportsNAM001(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	l.Lower(namedTypeNode("Nowhere"))
	require.True(t, sink.Failed())
	assert.Equal(t, diag.NAM001, sink.Reports()[0].Code)
}

func TestLowerAliasToPrimitiveUnwraps(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	mod.Types["Byte"] = &module.TypeDecl{Name: "Byte", Alias: tc.Prim(types.U8), Arity: 0}
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	got := l.Lower(namedTypeNode("Byte"))
	assert.Same(t, tc.Prim(types.U8), got)
}

func TestLowerUnderAppliedGenericGetsFreshVars(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	tv := tc.FreshTypeVar("a")
	template := tc.NewProductTemplate("Box", []types.Type{tv}, []string{"value"}, []types.Type{tv})
	mod.Types["Box"] = &module.TypeDecl{Name: "Box", Product: template, Arity: 1}
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	got := l.Lower(namedTypeNode("Box"))
	product, ok := got.(*types.ProductType)
	require.True(t, ok)
	assert.True(t, types.IsVariantOf(product, template))
	assert.True(t, product.IsGeneric(), "the completed fresh var keeps the instance generic until unification grounds it")
}

func TestLowerOverAppliedGenericReportsARI001(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	template := tc.NewProductTemplate("Unit0", nil, nil, nil)
	mod.Types["Unit0"] = &module.TypeDecl{Name: "Unit0", Product: template, Arity: 0}
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	l.Lower(namedTypeNode("Unit0", namedTypeNode("i32")))
	require.True(t, sink.Failed())
	assert.Equal(t, diag.ARI001, sink.Reports()[0].Code)
}

func TestLowerPtrAndArray(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	ptr := ast.NewTypeNode("ptr", "", ast.Location{})
	ptr.Extension = namedTypeNode("i32")
	got := l.Lower(ptr)
	p, ok := got.(*types.Ptr)
	require.True(t, ok)
	assert.Same(t, tc.Prim(types.I32), p.Inner)

	arr := ast.NewTypeNode("array", "", ast.Location{})
	arr.Params = []*ast.TypeNode{namedTypeNode("bool")}
	arr.Length = 4
	got = l.Lower(arr)
	a, ok := got.(*types.Array)
	require.True(t, ok)
	assert.Equal(t, 4, a.Length)
}

func TestLowerFuncTypeLastParamIsReturn(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	fn := ast.NewTypeNode("func", "", ast.Location{})
	fn.Params = []*ast.TypeNode{namedTypeNode("i32"), namedTypeNode("bool")}
	got := l.Lower(fn)
	f, ok := got.(*types.Func)
	require.True(t, ok)
	assert.Same(t, tc.Prim(types.Bool), f.Return)
	require.Len(t, f.Params, 1)
	assert.Same(t, tc.Prim(types.I32), f.Params[0])
}

func TestLowerModifierWrapsBase(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	sink := diag.NewSink()
	l := New(tc, mod, sink)

	tn := namedTypeNode("i32")
	tn.Modifiers = []string{"mut"}
	got := l.Lower(tn)
	m, ok := got.(*types.Modifier)
	require.True(t, ok)
	assert.Equal(t, types.ModMut, m.Kind)
}
