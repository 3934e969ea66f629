package lower

import (
	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

// FinishTypeDecls fills in TypeDecl.Product, TypeDecl.Sum, and
// TypeDecl.Alias for every declaration the module scanner recorded
// (§4.2, §3 I3). scan.go cannot do this itself for the same reason
// scanExt cannot finish trait impls (see FinishTraitImpls): building an
// arena type from a DataDecl's body requires Lower, and Lower's package
// already depends on module. Run once, before constraint collection,
// so decl.Resolve()/decl.Product/decl.Sum are populated by the time
// lowerNamed, findTag, and collectFieldAccess read them.
//
// A DataDecl's Params name its declared generic parameters (e.g. `'a`);
// its Body, when present, is a "tuple"-tagged *ast.TypeNode whose Params
// are the field types and whose Modifiers, read index-aligned, name
// those fields ("" for a positional/unnamed field, the common case for
// a sum variant's payload). A DataDecl with SumName set is one tagged
// variant of the sum named SumName; variants sharing a SumName are
// grouped here into a single SumType, with Fields[0] of each tag wired
// as the "$tag" discriminator (I3) and ParentSum set by NewSumTemplate.
func FinishTypeDecls(tc *types.TypeContext, mod *module.Module, sink *diag.Sink) {
	if mod.AST == nil {
		return
	}
	l := New(tc, mod, sink)

	var sumOrder []string
	sumVariants := map[string][]*ast.DataDecl{}

	for _, td := range mod.AST.Types {
		if td.SumName != "" {
			if _, seen := sumVariants[td.SumName]; !seen {
				sumOrder = append(sumOrder, td.SumName)
			}
			sumVariants[td.SumName] = append(sumVariants[td.SumName], td)
			continue
		}

		decl, ok := mod.Types[td.Name]
		if !ok {
			continue
		}
		if td.IsAlias {
			decl.Alias = l.lowerAliasBody(td)
			continue
		}
		fields, names := l.buildFields(td.Body)
		decl.Product = tc.NewProductTemplate(td.Name, fields, names, declTypeArgs(tc, td.Params))
	}

	for _, sumName := range sumOrder {
		variants := sumVariants[sumName]
		typeArgs := declTypeArgs(tc, variants[0].Params)

		tags := make([]*types.ProductType, len(variants))
		for i, v := range variants {
			payload, payloadNames := l.buildFields(v.Body)
			fields := append([]types.Type{tc.Prim(types.I32)}, payload...)
			fieldNames := append([]string{"$tag"}, payloadNames...)
			tags[i] = tc.NewProductTemplate(v.Name, fields, fieldNames, declTypeArgs(tc, v.Params))
			if vd, ok := mod.Types[v.Name]; ok {
				vd.Product = tags[i]
			}
		}

		decl, ok := mod.Types[sumName]
		if !ok {
			decl = &module.TypeDecl{Name: sumName, Arity: len(typeArgs)}
			mod.Types[sumName] = decl
		}
		decl.Sum = tc.NewSumTemplate(sumName, tags, typeArgs)
	}
}

// lowerAliasBody lowers the single type expression an alias declaration
// names (§4.2: a primitive alias target is returned by lowerNamed as-is,
// so Lower itself needs no special casing here).
func (l *Lowerer) lowerAliasBody(td *ast.DataDecl) types.Type {
	tn, ok := td.Body.(*ast.TypeNode)
	if !ok || tn == nil {
		l.sink.Report(diag.New(diag.INT001, "alias "+td.Name+" has no type expression body", td.Loc()))
		return l.tc.FreshTypeVar("'err")
	}
	return l.Lower(tn)
}

// buildFields reads a product or variant body into its ordered field
// types and names. A non-"tuple" body (or a bare, non-TypeNode body) is
// treated as a single unnamed field; a nil body (a nullary variant like
// `None`) has no fields at all.
func (l *Lowerer) buildFields(body ast.Node) ([]types.Type, []string) {
	tn, ok := body.(*ast.TypeNode)
	if !ok || tn == nil {
		return nil, nil
	}
	if tn.Tag != "tuple" {
		return []types.Type{l.Lower(tn)}, []string{""}
	}
	fields := make([]types.Type, len(tn.Params))
	names := make([]string, len(tn.Params))
	for i, p := range tn.Params {
		fields[i] = l.Lower(p)
		if i < len(tn.Modifiers) {
			names[i] = tn.Modifiers[i]
		}
	}
	return fields, names
}

// declTypeArgs turns a DataDecl's declared generic parameters into the
// TypeVars used as a product/sum template's TypeArgs (consumed by
// InstantiateProduct/InstantiateSum's substitution).
func declTypeArgs(tc *types.TypeContext, params []*ast.NamedVal) []types.Type {
	if len(params) == 0 {
		return nil
	}
	args := make([]types.Type, len(params))
	for i, p := range params {
		args[i] = tc.TypeVar(p.Name)
	}
	return args
}
