package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/config"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

func TestCompileSimpleFunctionSolvesReturnType(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	ret := ast.NewTypeNode("named", "i32", ast.Location{})
	fd := ast.NewFuncDecl("f", nil, ret, ast.NewIntLit("1", ast.Location{}), ast.Location{})
	mod.AST = &ast.Root{Funcs: []*ast.FuncDecl{fd}}
	sink := diag.NewSink()

	out := Compile(tc, mod, sink, config.Default())
	require.False(t, sink.Failed())
	require.NotNil(t, out)

	fnTy, ok := fd.GetType().(*types.Func)
	require.True(t, ok)
	assert.Same(t, tc.Prim(types.I32), fnTy.Return)
}

func TestCompileReportsBodyReturnMismatch(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	ret := ast.NewTypeNode("named", "bool", ast.Location{})
	fd := ast.NewFuncDecl("f", nil, ret, ast.NewIntLit("1", ast.Location{}), ast.Location{})
	mod.AST = &ast.Root{Funcs: []*ast.FuncDecl{fd}}
	sink := diag.NewSink()

	Compile(tc, mod, sink, config.Default())
	assert.True(t, sink.Failed())
}

func TestCompileUsesConfiguredIntLiteralDefault(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	ret := ast.NewTypeNode("named", "i64", ast.Location{})
	fd := ast.NewFuncDecl("f", nil, ret, ast.NewIntLit("1", ast.Location{}), ast.Location{})
	mod.AST = &ast.Root{Funcs: []*ast.FuncDecl{fd}}
	sink := diag.NewSink()

	cfg := &config.Config{IntLiteralDefault: "i64"}
	Compile(tc, mod, sink, cfg)
	require.False(t, sink.Failed())

	lit := fd.Body.(*ast.IntLit)
	assert.Same(t, tc.Prim(types.I64), lit.GetType())
}

func TestCompileRecordsCompiledMatchAndFlagsNonExhaustive(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)

	trueBranch := ast.NewMatchBranch(ast.NewPatLit(ast.KBoolLit, "true", ast.Location{}), ast.NewIntLit("1", ast.Location{}), ast.Location{})
	match := ast.NewMatch(ast.NewBoolLit(true, ast.Location{}), []*ast.MatchBranch{trueBranch}, ast.Location{})
	mod.AST = &ast.Root{Main: []ast.Node{match}}
	sink := diag.NewSink()

	out := Compile(tc, mod, sink, config.Default())
	require.True(t, sink.Failed(), "a non-exhaustive match reports EXH001")

	compiled, ok := out.CompiledMatches[match]
	require.True(t, ok)
	assert.True(t, compiled.FallthroughReachable)
}

func TestCompileWithNilConfigUsesDefault(t *testing.T) {
	tc := types.NewTypeContext()
	mod := module.NewModule("test", nil)
	ret := ast.NewTypeNode("named", "i32", ast.Location{})
	fd := ast.NewFuncDecl("f", nil, ret, ast.NewIntLit("1", ast.Location{}), ast.Location{})
	mod.AST = &ast.Root{Funcs: []*ast.FuncDecl{fd}}
	sink := diag.NewSink()

	out := Compile(tc, mod, sink, nil)
	require.False(t, sink.Failed())
	require.NotNil(t, out)
}
