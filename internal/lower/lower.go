// Package lower implements the pure AST-type-expression to arena-type
// translator of §4.2: named-type lookup, alias unwrapping to a
// primitive, auto-completion of under-applied generics with fresh type
// variables, and an arity error for over-application.
package lower

import (
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

var primByName = map[string]types.PrimTag{
	"i8": types.I8, "i16": types.I16, "i32": types.I32, "i64": types.I64,
	"u8": types.U8, "u16": types.U16, "u32": types.U32, "u64": types.U64,
	"isz": types.Isz, "usz": types.Usz,
	"f16": types.F16, "f32": types.F32, "f64": types.F64,
	"c8": types.C8, "bool": types.Bool, "unit": types.Unit,
}

var modByName = map[string]types.ModKind{
	"mut": types.ModMut, "const": types.ModConst, "let": types.ModLet,
	"global": types.ModGlobal, "ante": types.ModAnte,
}

// Lowerer translates parsed type expressions to arena types within the
// scope of a single Module.
type Lowerer struct {
	tc   *types.TypeContext
	mod  *module.Module
	sink *diag.Sink
}

func New(tc *types.TypeContext, mod *module.Module, sink *diag.Sink) *Lowerer {
	return &Lowerer{tc: tc, mod: mod, sink: sink}
}

// Lower translates a single *ast.TypeNode into an arena Type.
func (l *Lowerer) Lower(tn *ast.TypeNode) types.Type {
	if tn == nil {
		return l.tc.Prim(types.Unit)
	}

	base := l.lowerBase(tn)
	for _, mname := range tn.Modifiers {
		if kind, ok := modByName[mname]; ok {
			base = l.tc.Modifier(base, kind, "")
		} else {
			base = l.tc.Modifier(base, types.ModCompilerDirective, mname)
		}
	}
	return base
}

func (l *Lowerer) lowerBase(tn *ast.TypeNode) types.Type {
	switch tn.Tag {
	case "typevar":
		return l.tc.TypeVar(tn.Name)

	case "ptr":
		return l.tc.Ptr(l.Lower(asTypeNode(tn.Extension)))

	case "array":
		elem := l.Lower(tn.Params[0])
		return l.tc.Array(elem, tn.Length)

	case "tuple":
		fields := make([]types.Type, len(tn.Params))
		for i, p := range tn.Params {
			fields[i] = l.Lower(p)
		}
		return l.tc.Tuple(fields)

	case "func":
		ret := l.Lower(tn.Params[len(tn.Params)-1])
		params := make([]types.Type, len(tn.Params)-1)
		for i := 0; i < len(tn.Params)-1; i++ {
			params[i] = l.Lower(tn.Params[i])
		}
		return l.tc.Func(ret, params, nil, false)

	case "named":
		return l.lowerNamed(tn)

	default:
		l.sink.Report(diag.New(diag.NAM001, "unknown type expression tag: "+tn.Tag, tn.Loc()))
		return l.tc.FreshTypeVar("'err")
	}
}

// lowerNamed looks up the declared type in the module. If the name
// resolves to an alias to a primitive, it returns that primitive
// directly (§4.2). Under-applied generics are completed with fresh type
// variables; over-application is an Arity error.
func (l *Lowerer) lowerNamed(tn *ast.TypeNode) types.Type {
	if tag, ok := primByName[tn.Name]; ok {
		return l.tc.Prim(tag)
	}

	decl, ok := l.mod.LookupType(tn.Name)
	if !ok {
		l.sink.Report(diag.New(diag.NAM001, "undeclared type: "+tn.Name, tn.Loc()))
		return l.tc.FreshTypeVar("'err")
	}

	args := make([]types.Type, len(tn.Params))
	for i, p := range tn.Params {
		args[i] = l.Lower(p)
	}

	if len(args) > decl.Arity {
		l.sink.Report(diag.New(diag.ARI001,
			fmt.Sprintf("type %s expects %d argument(s), got %d", tn.Name, decl.Arity, len(args)),
			tn.Loc()))
		return l.tc.FreshTypeVar("'err")
	}
	for len(args) < decl.Arity {
		args = append(args, l.tc.FreshTypeVar("'_"+tn.Name))
	}

	if decl.Alias != nil {
		if prim, ok := decl.Alias.(*types.Primitive); ok {
			return prim
		}
		return decl.Alias
	}
	if decl.Product != nil {
		if len(args) == 0 {
			return decl.Product
		}
		return l.tc.InstantiateProduct(decl.Product, args)
	}
	if decl.Sum != nil {
		if len(args) == 0 {
			return decl.Sum
		}
		return l.tc.InstantiateSum(decl.Sum, args)
	}
	l.sink.Report(diag.New(diag.INT001, "type declaration "+tn.Name+" has no resolved form", tn.Loc()))
	return l.tc.FreshTypeVar("'err")
}

func asTypeNode(n ast.Node) *ast.TypeNode {
	if tn, ok := n.(*ast.TypeNode); ok {
		return tn
	}
	return nil
}
