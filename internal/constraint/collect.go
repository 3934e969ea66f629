package constraint

import (
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/lower"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

// Collector is the visitor of §4.3: it walks a typed AST in source order
// and emits equality constraints plus required type-class constraints,
// assigning each node's cached Type slot to either a concrete shape (for
// literals) or a fresh type variable constrained to the inferred shape.
type Collector struct {
	tc     *types.TypeContext
	mod    *module.Module
	sink   *diag.Sink
	lower  *lower.Lowerer
	result *Result

	// retStack mirrors §4.3's "stack of current-function return types",
	// pushed on entering a FuncDecl body and popped on leaving it, so
	// `return e` constrains against the innermost enclosing function.
	retStack []types.Type

	// intDefault is the primitive an un-annotated integer literal is
	// constrained to (§9 open question: I32, not overridden by outward
	// context, per the config knob internal/config exposes).
	intDefault types.PrimTag
	fltDefault types.PrimTag

	strType types.Type // lazily resolved "Str" named type, see strTy()

	// scopes is a lexical-scope stack of local bindings (function
	// parameters and pattern-bound variables): the module table of §4.8
	// only tracks top-level declarations, so locals are resolved here,
	// innermost scope first.
	scopes []map[string]*module.Declaration
}

func (c *Collector) pushScope() { c.scopes = append(c.scopes, map[string]*module.Declaration{}) }
func (c *Collector) popScope()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *Collector) bind(name string, decl *module.Declaration) {
	if len(c.scopes) == 0 {
		c.pushScope()
	}
	c.scopes[len(c.scopes)-1][name] = decl
}

func (c *Collector) lookupLocal(name string) (*module.Declaration, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if d, ok := c.scopes[i][name]; ok {
			return d, true
		}
	}
	return nil, false
}

// New creates a Collector. intDefault/fltDefault let a host honor
// config.Config.IntLiteralDefault; pass types.I32/types.F64 for the
// spec's documented defaults.
func New(tc *types.TypeContext, mod *module.Module, sink *diag.Sink, intDefault, fltDefault types.PrimTag) *Collector {
	return &Collector{
		tc: tc, mod: mod, sink: sink,
		lower:      lower.New(tc, mod, sink),
		result:     &Result{},
		intDefault: intDefault,
		fltDefault: fltDefault,
	}
}

func (c *Collector) Result() *Result { return c.result }

func (c *Collector) freshVar(prefix string) *types.TypeVar { return c.tc.FreshTypeVar(prefix) }

func (c *Collector) setAndReturn(t *ast.Typed, ty types.Type) types.Type {
	t.SetType(ty)
	return ty
}

// strTy resolves the stdlib "Str" named type on first use (§9: the core
// does not define a Str primitive; it is a stdlib-declared type the
// lexer's string-literal token constrains against). If no "Str"
// declaration is in scope (e.g. a fixture compiled without the stdlib),
// a fresh type variable stands in so collection can still proceed.
func (c *Collector) strTy(loc ast.Location) types.Type {
	if c.strType != nil {
		return c.strType
	}
	if decl, ok := c.mod.LookupType("Str"); ok {
		c.strType = decl.Resolve()
	} else {
		c.sink.Report(diag.New(diag.NAM001, "undeclared type: Str (stdlib not in scope)", loc))
		c.strType = c.tc.FreshTypeVar("'Str")
	}
	return c.strType
}

// Collect visits n, returning its constrained type. It is the single
// entry point every node kind table row in §4.3 is implemented under.
func (c *Collector) Collect(n ast.Node) types.Type {
	if n == nil {
		return c.tc.Prim(types.Unit)
	}
	switch node := n.(type) {

	case *ast.IntLit:
		return c.setAndReturn(&node.Typed, c.tc.Prim(c.intDefault))

	case *ast.FltLit:
		return c.setAndReturn(&node.Typed, c.tc.Prim(c.fltDefault))

	case *ast.BoolLit:
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Bool))

	case *ast.CharLit:
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.C8))

	case *ast.StrLit:
		return c.setAndReturn(&node.Typed, c.strTy(node.Loc()))

	case *ast.Array:
		return c.collectArray(node)

	case *ast.Tuple:
		fields := make([]types.Type, len(node.Exprs))
		for i, e := range node.Exprs {
			fields[i] = c.Collect(e)
		}
		return c.setAndReturn(&node.Typed, c.tc.Tuple(fields))

	case *ast.UnOp:
		return c.collectUnOp(node)

	case *ast.BinOp:
		return c.collectBinOp(node)

	case *ast.Seq:
		var last types.Type = c.tc.Prim(types.Unit)
		for _, s := range node.Stmts {
			last = c.Collect(s)
		}
		return c.setAndReturn(&node.Typed, last)

	case *ast.Block:
		t := c.Collect(node.Inner)
		return c.setAndReturn(&node.Typed, t)

	case *ast.If:
		return c.collectIf(node)

	case *ast.While:
		cond := c.Collect(node.Cond)
		c.result.emit(cond, c.tc.Prim(types.Bool), node.Cond.Loc(), "while condition must be Bool")
		c.Collect(node.Body)
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Unit))

	case *ast.For:
		return c.collectFor(node)

	case *ast.Match:
		return c.collectMatch(node)

	case *ast.Ret:
		return c.collectRet(node)

	case *ast.Jump:
		if node.Expr != nil {
			c.Collect(node.Expr)
		}
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Unit))

	case *ast.Var:
		return c.collectVar(node)

	case *ast.VarAssign:
		return c.collectVarAssign(node)

	case *ast.TypeCast:
		return c.collectTypeCast(node)

	case *ast.FuncDecl:
		c.collectFuncDecl(node)
		return node.GetType()

	case *ast.PatVar, *ast.PatLit, *ast.PatTuple, *ast.PatCtor:
		return c.collectPattern(n, nil)

	default:
		return c.tc.Prim(types.Unit)
	}
}

func (c *Collector) collectArray(node *ast.Array) types.Type {
	if len(node.Exprs) == 0 {
		elem := c.freshVar("'elem")
		return c.setAndReturn(&node.Typed, c.tc.Array(elem, 0))
	}
	first := c.Collect(node.Exprs[0])
	for _, e := range node.Exprs[1:] {
		t := c.Collect(e)
		c.result.emit(first, t, e.Loc(), "array elements must have the same type")
	}
	return c.setAndReturn(&node.Typed, c.tc.Array(first, len(node.Exprs)))
}

func (c *Collector) collectIf(node *ast.If) types.Type {
	cond := c.Collect(node.Cond)
	c.result.emit(cond, c.tc.Prim(types.Bool), node.Cond.Loc(), "if condition must be Bool")
	thenTy := c.Collect(node.Then)
	if node.Else == nil {
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Unit))
	}
	elseTy := c.Collect(node.Else)
	c.result.emit(thenTy, elseTy, node.Loc(), "if branches must have the same type")
	return c.setAndReturn(&node.Typed, thenTy)
}

// collectFor implements the for-loop row of §4.3. A literal `a..b` range
// (§ original source: Tok_Range) binds the loop pattern directly against
// the bound type (an int, always; no trait involved — mirroring the
// source's direct I32/I32 treatment). Any other range expression (an
// array, or a user Iterable instance) must satisfy the Iterable builtin
// trait: Args is [container] and the element type is the constraint's
// Result, which the resolver unifies against whatever element type the
// concrete container turns out to have.
func (c *Collector) collectFor(node *ast.For) types.Type {
	rangeTy := c.Collect(node.Range)
	c.pushScope()
	if isRangeExpr(node.Range) {
		c.collectPattern(node.Pattern, rangeTy)
	} else {
		elem := c.freshVar("'iter")
		c.result.emitTraitResult(&types.TraitRef{TraitName: "Iterable", Args: []types.Type{rangeTy}}, elem, node.Range.Loc())
		c.collectPattern(node.Pattern, elem)
	}
	c.Collect(node.Body)
	c.popScope()
	return c.setAndReturn(&node.Typed, c.tc.Prim(types.Unit))
}

func isRangeExpr(n ast.Node) bool {
	b, ok := n.(*ast.BinOp)
	return ok && b.Op == ".."
}

// collectVarAssign implements `x = e` / `x := e`: an unseen local name on
// the left declares a new binding in the current scope (the language has
// no separate `let`; first assignment to a bare name is the declaration,
// matching the source's VarDecl-via-first-use convention); a name already
// in scope, or any non-bare-name target (e.g. `@p = e`, `a#i = e`), is a
// mutation and only unifies.
func (c *Collector) collectVarAssign(node *ast.VarAssign) types.Type {
	rhs := c.Collect(node.Expr)
	if v, ok := node.RefExpr.(*ast.Var); ok {
		if _, exists := c.lookupLocal(v.Name); !exists {
			if _, isFunc := c.mod.LookupFunc(v.Name); !isFunc {
				decl := module.NewVarDecl(v.Name, node, false, true)
				decl.Type = rhs
				c.bind(v.Name, decl)
				v.DeclPtr = decl
				v.SetType(rhs)
				return c.setAndReturn(&node.Typed, c.tc.Prim(types.Unit))
			}
		}
	}
	lhs := c.Collect(node.RefExpr)
	c.result.emit(lhs, rhs, node.Loc(), "assignment target and value must agree")
	return c.setAndReturn(&node.Typed, c.tc.Prim(types.Unit))
}

func (c *Collector) collectMatch(node *ast.Match) types.Type {
	scrutTy := c.Collect(node.Expr)
	var bodyTy types.Type
	for i, br := range node.Branches {
		c.pushScope()
		c.collectPattern(br.Pattern, scrutTy)
		t := c.Collect(br.Branch)
		c.popScope()
		if i == 0 {
			bodyTy = t
		} else {
			c.result.emit(bodyTy, t, br.Loc(), "match branches must have the same type")
		}
	}
	if bodyTy == nil {
		bodyTy = c.freshVar("'match")
	}
	return c.setAndReturn(&node.Typed, bodyTy)
}

// collectPattern constrains a pattern node against scrutTy (the type the
// value being matched/bound has), recursing into tuple/constructor
// sub-patterns. A nil scrutTy (used when called standalone, e.g. from
// Collect's PatVar/... fallthrough) just assigns a fresh variable.
func (c *Collector) collectPattern(n ast.Node, scrutTy types.Type) types.Type {
	if scrutTy == nil {
		scrutTy = c.freshVar("'pat")
	}
	switch p := n.(type) {
	case *ast.PatVar:
		if !p.IsWildcard() {
			decl := module.NewVarDecl(p.Name, p, false, false)
			decl.Type = scrutTy
			p.DeclPtr = decl
			if len(c.scopes) > 0 {
				c.bind(p.Name, decl)
			}
		}
		return c.setAndReturn(&p.Typed, scrutTy)

	case *ast.PatLit:
		var litTy types.Type
		switch p.LitKind {
		case ast.KIntLit:
			litTy = c.tc.Prim(c.intDefault)
		case ast.KFltLit:
			litTy = c.tc.Prim(c.fltDefault)
		case ast.KCharLit:
			litTy = c.tc.Prim(types.C8)
		case ast.KStrLit:
			litTy = c.strTy(p.Loc())
		case ast.KBoolLit:
			litTy = c.tc.Prim(types.Bool)
		default:
			litTy = scrutTy
		}
		c.result.emit(scrutTy, litTy, p.Loc(), "pattern literal must match scrutinee type")
		return c.setAndReturn(&p.Typed, litTy)

	case *ast.PatTuple:
		fieldVars := make([]types.Type, len(p.Elems))
		for i, e := range p.Elems {
			fieldVars[i] = c.freshVar("'patfield")
			c.collectPattern(e, fieldVars[i])
		}
		tup := c.tc.Tuple(fieldVars)
		c.result.emit(scrutTy, tup, p.Loc(), "tuple pattern must match scrutinee shape")
		return c.setAndReturn(&p.Typed, tup)

	case *ast.PatCtor:
		return c.collectCtorPattern(p, scrutTy)

	default:
		return scrutTy
	}
}

// collectCtorPattern resolves p.Name as a sum-type tag (§4.7): it looks
// the tag up among every declared sum type's tags, instantiates that
// sum's template with fresh type arguments, constrains scrutTy against
// the instantiated sum, and recurses into the tag's payload fields.
func (c *Collector) collectCtorPattern(p *ast.PatCtor, scrutTy types.Type) types.Type {
	sumDecl, tag, ok := c.findTag(p.Name)
	if !ok {
		c.sink.Report(diag.New(diag.NAM001, "undeclared constructor: "+p.Name, p.Loc()))
		return c.setAndReturn(&p.Typed, c.freshVar("'err"))
	}
	args := make([]types.Type, sumDecl.Arity)
	for i := range args {
		args[i] = c.freshVar("'ctor")
	}
	inst := c.tc.InstantiateSum(sumDecl.Sum, args)
	c.result.emit(scrutTy, inst, p.Loc(), "constructor pattern must match scrutinee type")

	instTag := findInstantiatedTag(inst, tag.Name)
	if len(p.Args) != 0 && instTag != nil {
		payload := instTag.Fields[minInt(1, len(instTag.Fields)):]
		if len(p.Args) != len(payload) {
			c.sink.Report(diag.New(diag.ARI002,
				fmt.Sprintf("constructor %s expects %d argument(s), got %d", p.Name, len(payload), len(p.Args)),
				p.Loc()))
		} else {
			for i, a := range p.Args {
				c.collectPattern(a, payload[i])
			}
		}
	}
	return c.setAndReturn(&p.Typed, inst)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func findInstantiatedTag(s *types.SumType, name string) *types.ProductType {
	for _, t := range s.Tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// findTag searches every type declaration in the module's scope for a
// sum type owning a tag named name (§4.8's lookup discipline applied to
// constructors rather than type names).
func (c *Collector) findTag(name string) (*module.TypeDecl, *types.ProductType, bool) {
	for _, decl := range c.mod.Types {
		if decl.Sum == nil {
			continue
		}
		for _, tag := range decl.Sum.Tags {
			if tag.Name == name {
				return decl, tag, true
			}
		}
	}
	return nil, nil, false
}

func (c *Collector) collectRet(node *ast.Ret) types.Type {
	t := c.Collect(node.Expr)
	if len(c.retStack) > 0 {
		ret := c.retStack[len(c.retStack)-1]
		c.result.emit(t, ret, node.Loc(), "return value must match the declared return type")
	}
	return c.setAndReturn(&node.Typed, c.tc.Prim(types.Unit))
}

func (c *Collector) collectVar(node *ast.Var) types.Type {
	if decl, ok := c.lookupLocal(node.Name); ok {
		node.DeclPtr = decl
		if decl.Type != nil {
			return c.setAndReturn(&node.Typed, decl.Type)
		}
		return c.setAndReturn(&node.Typed, c.freshVar("'"+node.Name))
	}
	decl, _ := declOf(node.DeclPtr)
	if decl == nil {
		decl2, ok := c.mod.LookupFunc(node.Name)
		if !ok {
			c.sink.Report(diag.New(diag.NAM001, "undeclared variable: "+node.Name, node.Loc()))
			return c.setAndReturn(&node.Typed, c.freshVar("'err"))
		}
		decl = decl2
		node.DeclPtr = decl
	}
	if decl.Type != nil {
		return c.setAndReturn(&node.Typed, decl.Type)
	}
	return c.setAndReturn(&node.Typed, c.freshVar("'"+node.Name))
}

func declOf(p interface{}) (*module.Declaration, bool) {
	d, ok := p.(*module.Declaration)
	return d, ok
}

// collectFuncDecl implements the function-declaration row: the body is
// constrained against the declared return type, with the return pushed
// onto retStack for nested `return e` (§4.3). Trait constraints present
// in the signature (fd.Tccs) are peeled off and re-emitted as standalone
// typeclass constraints, per §4.3's closing paragraph.
func (c *Collector) collectFuncDecl(fd *ast.FuncDecl) {
	c.pushScope()
	defer c.popScope()

	params := make([]types.Type, len(fd.Params))
	for i, p := range fd.Params {
		if p.TypeExpr != nil {
			params[i] = c.lower.Lower(p.TypeExpr)
		} else {
			params[i] = c.freshVar("'" + p.Name)
		}
		decl := module.NewVarDecl(p.Name, p, false, false)
		decl.Type = params[i]
		c.bind(p.Name, decl)
	}
	var ret types.Type
	if fd.TypeExpr != nil {
		ret = c.lower.Lower(fd.TypeExpr)
	} else {
		ret = c.freshVar("'ret")
	}

	var constraints []*types.TraitRef
	for _, tcc := range fd.Tccs {
		args := make([]types.Type, len(tcc.Args))
		for i, a := range tcc.Args {
			args[i] = c.lower.Lower(a)
		}
		ref := &types.TraitRef{TraitName: tcc.Trait, Args: args}
		constraints = append(constraints, ref)
		c.result.emitTrait(ref, fd.Loc())
	}

	fnTy := c.tc.Func(ret, params, constraints, false)
	fd.SetType(fnTy)

	c.retStack = append(c.retStack, ret)
	bodyTy := c.Collect(fd.Body)
	c.retStack = c.retStack[:len(c.retStack)-1]

	if fd.Body != nil {
		c.result.emit(bodyTy, ret, fd.Loc(), "function body must match its declared return type")
	}
}

// collectTypeCast handles both `T(args)` type-construction casts and, per
// §4.6a, the Cast trait between primitives: the target type comes from
// TypeExpr; a Cast constraint is emitted when the sole argument's type
// differs from the target and the target is a primitive or pointer form.
// Whether the source is an eligible form is checked when the constraint
// is resolved.
func (c *Collector) collectTypeCast(node *ast.TypeCast) types.Type {
	target := c.lower.Lower(node.TypeExpr)
	argTypes := make([]types.Type, len(node.Args))
	for i, a := range node.Args {
		argTypes[i] = c.Collect(a)
	}
	if len(argTypes) == 1 && argTypes[0] != target {
		switch target.(type) {
		case *types.Primitive, *types.Ptr:
			c.result.emitTrait(&types.TraitRef{TraitName: "Cast", Args: []types.Type{argTypes[0], target}}, node.Loc())
		}
	}
	return c.setAndReturn(&node.Typed, target)
}

// binArithOps/binCompareOps/binEqOps name the builtin trait each
// operator routes through, mirroring the source's BinOpNode handling
// (operator.cpp / constraintfindingvisitor.cpp).
var binArithOps = map[string]string{"+": "Add", "-": "Sub", "*": "Mul", "/": "Div", "%": "Mod"}
var binCompareOps = map[string]bool{"<": true, "<=": true, ">": true, ">=": true}
var binEqOps = map[string]bool{"==": true, "!=": true, "is": true, "isnt": true}
var binLogicOps = map[string]bool{"and": true, "or": true}

func (c *Collector) collectBinOp(node *ast.BinOp) types.Type {
	if node.Op == "(" {
		return c.collectCall(node)
	}
	if node.Op == "#" {
		return c.collectIndex(node)
	}

	lhs := c.Collect(node.Lval)
	rhs := c.Collect(node.Rval)

	switch {
	case binArithOps[node.Op] != "":
		c.result.emit(lhs, rhs, node.Loc(), "operands of "+node.Op+" must agree")
		c.result.emitTrait(&types.TraitRef{TraitName: binArithOps[node.Op], Args: []types.Type{lhs, lhs}}, node.Loc())
		return c.setAndReturn(&node.Typed, lhs)

	case binCompareOps[node.Op]:
		c.result.emit(lhs, rhs, node.Loc(), "operands of "+node.Op+" must agree")
		c.result.emitTrait(&types.TraitRef{TraitName: "Cmp", Args: []types.Type{lhs, lhs}}, node.Loc())
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Bool))

	case binEqOps[node.Op]:
		c.result.emit(lhs, rhs, node.Loc(), "operands of "+node.Op+" must agree")
		trait := "Eq"
		if node.Op == "is" || node.Op == "isnt" {
			trait = "Is"
		}
		c.result.emitTrait(&types.TraitRef{TraitName: trait, Args: []types.Type{lhs, lhs}}, node.Loc())
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Bool))

	case binLogicOps[node.Op]:
		c.result.emit(lhs, c.tc.Prim(types.Bool), node.Lval.Loc(), "operand must be Bool")
		c.result.emit(rhs, c.tc.Prim(types.Bool), node.Rval.Loc(), "operand must be Bool")
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Bool))

	case node.Op == "..":
		// A range's own type is never observed except as a `for`
		// loop's direct Range child (handled there) or here, as a
		// bare value: both bounds must be the same integer kind the
		// range itself stands for.
		c.result.emit(lhs, c.tc.Prim(c.intDefault), node.Lval.Loc(), "range bound must be an integer")
		c.result.emit(rhs, c.tc.Prim(c.intDefault), node.Rval.Loc(), "range bound must be an integer")
		return c.setAndReturn(&node.Typed, c.tc.Prim(c.intDefault))

	case node.Op == "in":
		// Membership test against any Iterable container (§4.6a); Args
		// is [container] and elem is the constraint's Result, as for
		// Extract, so the resolver can fill elem in once rhs's concrete
		// shape is known.
		elem := c.freshVar("'in")
		c.result.emit(lhs, elem, node.Loc(), "membership-test element type")
		c.result.emitTraitResult(&types.TraitRef{TraitName: "Iterable", Args: []types.Type{rhs}}, elem, node.Loc())
		return c.setAndReturn(&node.Typed, c.tc.Prim(types.Bool))

	case node.Op == ".":
		return c.collectFieldAccess(node, lhs)

	default:
		c.sink.Report(diag.New(diag.INT001, "unrecognized binary operator: "+node.Op, node.Loc()))
		return c.setAndReturn(&node.Typed, c.freshVar("'err"))
	}
}

// collectIndex handles `a#i` array indexing via the Extract builtin
// trait (§4.6a). Array types carry a fixed, statically-known length
// (I3-adjacent invariant enforced by the unifier's array rule), so an
// index expression cannot be typed by structurally unifying the
// container against "an array of any length" — there is no such type.
// Instead the container and index are handed to the resolver as-is
// (Args[0], Args[1]) and elem, the constraint's Result, is unified
// against whatever element type the concrete container resolves to,
// once it is ground.
func (c *Collector) collectIndex(node *ast.BinOp) types.Type {
	containerTy := c.Collect(node.Lval)
	idxTy := c.Collect(node.Rval)
	c.result.emit(idxTy, c.tc.Prim(c.intDefault), node.Rval.Loc(), "index must be an integer")
	elem := c.freshVar("'elem")
	c.result.emitTraitResult(&types.TraitRef{TraitName: "Extract", Args: []types.Type{containerTy, idxTy}}, elem, node.Loc())
	return c.setAndReturn(&node.Typed, elem)
}

// collectFieldAccess implements the `x.f` row of §4.3: resolved lazily
// against product types whose field list contains f. Here "lazily"
// means: deferred until all declared product types are known (i.e. after
// the declaration scan, which always precedes constraint collection),
// not deferred past this pass.
func (c *Collector) collectFieldAccess(node *ast.BinOp, lhsTy types.Type) types.Type {
	fieldVar, ok := node.Rval.(*ast.Var)
	if !ok {
		c.sink.Report(diag.New(diag.INT001, "field access right side is not a name", node.Loc()))
		return c.setAndReturn(&node.Typed, c.freshVar("'err"))
	}
	var match *module.TypeDecl
	for _, decl := range c.mod.Types {
		if decl.Product == nil {
			continue
		}
		for _, fn := range decl.Product.FieldNames {
			if fn == fieldVar.Name {
				if match != nil {
					c.sink.Report(diag.New(diag.NAM002, "ambiguous field name: "+fieldVar.Name, node.Loc()))
					return c.setAndReturn(&node.Typed, c.freshVar("'err"))
				}
				match = decl
			}
		}
	}
	if match == nil {
		c.sink.Report(diag.New(diag.NAM001, "no field named "+fieldVar.Name+" in scope", node.Loc()))
		return c.setAndReturn(&node.Typed, c.freshVar("'err"))
	}
	args := make([]types.Type, len(match.Product.TypeArgs))
	for i := range args {
		args[i] = c.freshVar("'field")
	}
	var owner types.Type = match.Product
	var fieldTy types.Type
	idx := indexOf(match.Product.FieldNames, fieldVar.Name)
	if len(args) > 0 {
		inst := c.tc.InstantiateProduct(match.Product, args)
		owner = inst
		fieldTy = inst.Fields[idx]
	} else {
		fieldTy = match.Product.Fields[idx]
	}
	c.result.emit(lhsTy, owner, node.Loc(), "field access target must match the owning type")
	return c.setAndReturn(&node.Typed, fieldTy)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// collectUnOp implements `&x`/`@p` (ref/deref) and `-x`/`not x` (the
// Neg/Not builtin traits), per §4.3.
func (c *Collector) collectUnOp(node *ast.UnOp) types.Type {
	switch node.Op {
	case "&":
		t := c.Collect(node.Rval)
		return c.setAndReturn(&node.Typed, c.tc.Ptr(t))

	case "@":
		t := c.Collect(node.Rval)
		inner := c.freshVar("'deref")
		c.result.emit(t, c.tc.Ptr(inner), node.Rval.Loc(), "dereference target must be a pointer")
		return c.setAndReturn(&node.Typed, inner)

	case "-":
		t := c.Collect(node.Rval)
		c.result.emitTrait(&types.TraitRef{TraitName: "Neg", Args: []types.Type{t}}, node.Loc())
		return c.setAndReturn(&node.Typed, t)

	case "not":
		t := c.Collect(node.Rval)
		c.result.emitTrait(&types.TraitRef{TraitName: "Not", Args: []types.Type{t}}, node.Loc())
		return c.setAndReturn(&node.Typed, t)

	default:
		c.sink.Report(diag.New(diag.INT001, "unrecognized unary operator: "+node.Op, node.Loc()))
		return c.setAndReturn(&node.Typed, c.freshVar("'err"))
	}
}

// collectCall implements "f(args)" (§4.3): if f's type is already known
// to be a Function, its arity and params must unify with the arguments;
// otherwise a fresh function type is constrained over the call shape,
// following the source's BinOpNode '(' handling.
func (c *Collector) collectCall(node *ast.BinOp) types.Type {
	fnTy := c.Collect(node.Lval)
	argTy := c.Collect(node.Rval) // a Tuple of argument types, or Unit for zero args

	var args []types.Type
	if tup, ok := argTy.(*types.Tuple); ok {
		args = tup.Fields
	} else {
		args = []types.Type{argTy}
	}

	if fv, ok := node.Lval.(*ast.Var); ok {
		if decl, ok2 := declOf(fv.DeclPtr); ok2 {
			node.DeclPtr, _ = decl.Node.(*ast.FuncDecl)
		}
	}

	if existing, ok := fnTy.(*types.Func); ok {
		params := types.NormalizeParams(args, c.tc.Prim(types.Unit))
		if len(params) != len(existing.Params) {
			c.sink.Report(diag.New(diag.ARI002,
				fmt.Sprintf("function takes %d argument(s) but %d were given", len(existing.Params), len(params)),
				node.Lval.Loc()))
			return c.setAndReturn(&node.Typed, c.freshVar("'err"))
		}
		for i := range params {
			c.result.emit(params[i], existing.Params[i], node.Loc(), "argument type mismatch")
		}
		return c.setAndReturn(&node.Typed, existing.Return)
	}

	ret := c.freshVar("'callret")
	fresh := c.tc.Func(ret, args, nil, false)
	c.result.emit(fnTy, fresh, node.Loc(), "callee must be a function accepting these arguments")
	return c.setAndReturn(&node.Typed, ret)
}
