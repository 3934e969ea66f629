package ast

// Root is the top of a parsed compilation unit.
type Root struct {
	base
	Imports    []*Import
	Types      []*DataDecl
	Traits     []*TraitNode
	Extensions []*Ext
	Funcs      []*FuncDecl
	Main       []Node
}

func NewRoot(loc Location) *Root { return &Root{base: newBase(KRoot, loc)} }
func (r *Root) String() string   { return "Root" }

// --- literals ---

type IntLit struct {
	base
	Typed
	Text string
}

func NewIntLit(text string, loc Location) *IntLit {
	return &IntLit{base: newBase(KIntLit, loc), Text: text}
}
func (n *IntLit) String() string { return n.Text }

type FltLit struct {
	base
	Typed
	Text string
}

func NewFltLit(text string, loc Location) *FltLit {
	return &FltLit{base: newBase(KFltLit, loc), Text: text}
}
func (n *FltLit) String() string { return n.Text }

type StrLit struct {
	base
	Typed
	Text string
}

func NewStrLit(text string, loc Location) *StrLit {
	return &StrLit{base: newBase(KStrLit, loc), Text: text}
}
func (n *StrLit) String() string { return n.Text }

type CharLit struct {
	base
	Typed
	Text string
}

func NewCharLit(text string, loc Location) *CharLit {
	return &CharLit{base: newBase(KCharLit, loc), Text: text}
}
func (n *CharLit) String() string { return n.Text }

type BoolLit struct {
	base
	Typed
	Value bool
}

func NewBoolLit(v bool, loc Location) *BoolLit {
	return &BoolLit{base: newBase(KBoolLit, loc), Value: v}
}
func (n *BoolLit) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// --- composite expressions ---

type Array struct {
	base
	Typed
	Exprs []Node
}

func NewArray(exprs []Node, loc Location) *Array {
	return &Array{base: newBase(KArray, loc), Exprs: exprs}
}
func (n *Array) String() string { return "Array" }

type Tuple struct {
	base
	Typed
	Exprs []Node
}

func NewTuple(exprs []Node, loc Location) *Tuple {
	return &Tuple{base: newBase(KTuple, loc), Exprs: exprs}
}
func (n *Tuple) String() string { return "Tuple" }

// TypeNode is a parsed type *expression*, later lowered to an arena type by
// internal/lower. Tag distinguishes named/pointer/array/function/etc forms;
// the lowering pass interprets Tag the same way the parser's own
// `TypeNode::type` enum does.
type TypeNode struct {
	base
	Tag       string // "named", "ptr", "array", "tuple", "func", "typevar"
	Name      string
	Extension Node // for `@p` pointer-of: the inner type node
	Length    int  // for `[n]t` array-of: the declared length
	Params    []*TypeNode
	Modifiers []string
}

func NewTypeNode(tag, name string, loc Location) *TypeNode {
	return &TypeNode{base: newBase(KTypeNode, loc), Tag: tag, Name: name}
}
func (n *TypeNode) String() string { return n.Name }

type TypeCast struct {
	base
	Typed
	TypeExpr *TypeNode
	Args     []Node
}

func NewTypeCast(te *TypeNode, args []Node, loc Location) *TypeCast {
	return &TypeCast{base: newBase(KTypeCast, loc), TypeExpr: te, Args: args}
}
func (n *TypeCast) String() string { return "TypeCast" }

type UnOp struct {
	base
	Typed
	Op   string
	Rval Node
}

func NewUnOp(op string, rval Node, loc Location) *UnOp {
	return &UnOp{base: newBase(KUnOp, loc), Op: op, Rval: rval}
}
func (n *UnOp) String() string { return n.Op }

// BinOp carries a DeclPtr that, once resolved by name resolution, may name
// the overloaded builtin-trait method or generic function the operator
// dispatches to (see §6 "mono_mapping" contract).
type BinOp struct {
	base
	Typed
	Op      string
	Lval    Node
	Rval    Node
	DeclPtr *FuncDecl
}

func NewBinOp(op string, lval, rval Node, loc Location) *BinOp {
	return &BinOp{base: newBase(KBinOp, loc), Op: op, Lval: lval, Rval: rval}
}
func (n *BinOp) String() string { return n.Op }

type Seq struct {
	base
	Typed
	Stmts []Node
}

func NewSeq(stmts []Node, loc Location) *Seq {
	return &Seq{base: newBase(KSeq, loc), Stmts: stmts}
}
func (n *Seq) String() string { return "Seq" }

type Block struct {
	base
	Typed
	Inner Node
}

func NewBlock(inner Node, loc Location) *Block {
	return &Block{base: newBase(KBlock, loc), Inner: inner}
}
func (n *Block) String() string { return "Block" }

type Ret struct {
	base
	Typed
	Expr Node
}

func NewRet(expr Node, loc Location) *Ret {
	return &Ret{base: newBase(KRet, loc), Expr: expr}
}
func (n *Ret) String() string { return "Ret" }

type If struct {
	base
	Typed
	Cond Node
	Then Node
	Else Node // nil if absent
}

func NewIf(cond, then, els Node, loc Location) *If {
	return &If{base: newBase(KIf, loc), Cond: cond, Then: then, Else: els}
}
func (n *If) String() string { return "If" }

type While struct {
	base
	Typed
	Cond Node
	Body Node
}

func NewWhile(cond, body Node, loc Location) *While {
	return &While{base: newBase(KWhile, loc), Cond: cond, Body: body}
}
func (n *While) String() string { return "While" }

type For struct {
	base
	Typed
	Pattern Node
	Range   Node
	Body    Node
}

func NewFor(pattern, rng, body Node, loc Location) *For {
	return &For{base: newBase(KFor, loc), Pattern: pattern, Range: rng, Body: body}
}
func (n *For) String() string { return "For" }

// --- patterns (§4.7) ---

// PatLit is a literal pattern: int, float, string, or char.
type PatLit struct {
	base
	Typed
	LitKind Kind // one of KIntLit, KFltLit, KStrLit, KCharLit
	Text    string
}

func NewPatLit(litKind Kind, text string, loc Location) *PatLit {
	return &PatLit{base: newBase(KPatLit, loc), LitKind: litKind, Text: text}
}
func (n *PatLit) String() string { return n.Text }

// PatVar is a variable-binding pattern, including the `_` wildcard (Name
// == "_") which introduces no binding.
type PatVar struct {
	base
	Typed
	Name    string
	DeclPtr interface{} // *module.Declaration, filled by constraint collection
}

func NewPatVar(name string, loc Location) *PatVar {
	return &PatVar{base: newBase(KPatVar, loc), Name: name}
}
func (n *PatVar) String() string   { return n.Name }
func (n *PatVar) IsWildcard() bool { return n.Name == "_" }

// PatTuple destructures a tuple pattern `(p1, ..., pn)`.
type PatTuple struct {
	base
	Typed
	Elems []Node
}

func NewPatTuple(elems []Node, loc Location) *PatTuple {
	return &PatTuple{base: newBase(KPatTuple, loc), Elems: elems}
}
func (n *PatTuple) String() string { return "PatTuple" }

// PatCtor is a constructor pattern `Ctor p1 ... pn` referencing a
// sum-type tag, or a bare tag name with Args == nil for a nullary
// variant.
type PatCtor struct {
	base
	Typed
	Name string
	Args []Node
}

func NewPatCtor(name string, args []Node, loc Location) *PatCtor {
	return &PatCtor{base: newBase(KPatCtor, loc), Name: name, Args: args}
}
func (n *PatCtor) String() string { return n.Name }

type MatchBranch struct {
	base
	Pattern Node
	Branch  Node
}

func NewMatchBranch(pattern, branch Node, loc Location) *MatchBranch {
	return &MatchBranch{base: newBase(KMatchBranch, loc), Pattern: pattern, Branch: branch}
}
func (n *MatchBranch) String() string { return "MatchBranch" }

type Match struct {
	base
	Typed
	Expr     Node
	Branches []*MatchBranch
}

func NewMatch(expr Node, branches []*MatchBranch, loc Location) *Match {
	return &Match{base: newBase(KMatch, loc), Expr: expr, Branches: branches}
}
func (n *Match) String() string { return "Match" }

// --- declarations ---

type NamedVal struct {
	base
	Name     string
	TypeExpr *TypeNode
}

func NewNamedVal(name string, te *TypeNode, loc Location) *NamedVal {
	return &NamedVal{base: newBase(KNamedVal, loc), Name: name, TypeExpr: te}
}
func (n *NamedVal) String() string { return n.Name }

// Tcc is a trait-constraint clause attached to a generic function signature
// (e.g. `given Show 'a`), peeled off during constraint collection (§4.3).
type Tcc struct {
	Trait string
	Args  []*TypeNode
}

type FuncDecl struct {
	base
	Typed
	Name     string
	Params   []*NamedVal
	TypeExpr *TypeNode // declared return type, nil if inferred
	Tccs     []*Tcc
	Body     Node
	DeclPtr  interface{} // *module.Declaration; no core pass sets it
}

func NewFuncDecl(name string, params []*NamedVal, ret *TypeNode, body Node, loc Location) *FuncDecl {
	return &FuncDecl{base: newBase(KFuncDecl, loc), Name: name, Params: params, TypeExpr: ret, Body: body}
}
func (n *FuncDecl) String() string { return n.Name }

type Var struct {
	base
	Typed
	Name    string
	DeclPtr interface{} // *module.Declaration
}

func NewVar(name string, loc Location) *Var {
	return &Var{base: newBase(KVar, loc), Name: name}
}
func (n *Var) String() string { return n.Name }

type VarAssign struct {
	base
	Typed
	RefExpr   Node
	Expr      Node
	Modifiers []string
}

func NewVarAssign(ref, expr Node, mods []string, loc Location) *VarAssign {
	return &VarAssign{base: newBase(KVarAssign, loc), RefExpr: ref, Expr: expr, Modifiers: mods}
}
func (n *VarAssign) String() string { return "VarAssign" }

type Ext struct {
	base
	TypeExpr *TypeNode
	Methods  []*FuncDecl
	Traits   []*Tcc
}

func NewExt(te *TypeNode, methods []*FuncDecl, traits []*Tcc, loc Location) *Ext {
	return &Ext{base: newBase(KExt, loc), TypeExpr: te, Methods: methods, Traits: traits}
}
func (n *Ext) String() string { return "Ext" }

type JumpKind int

const (
	JumpBreak JumpKind = iota
	JumpContinue
	JumpReturn
)

type Jump struct {
	base
	Typed
	JKind JumpKind
	Expr  Node // nil unless JKind==JumpReturn
}

func NewJump(kind JumpKind, expr Node, loc Location) *Jump {
	return &Jump{base: newBase(KJump, loc), JKind: kind, Expr: expr}
}
func (n *Jump) String() string { return "Jump" }

// DataDecl declares a product type (record/tuple struct) or, when it has
// multiple tagged alternatives pinned together by the parser into separate
// DataDecl nodes sharing a sum name, a sum variant. IsAlias marks a type
// alias (`type Meters = F64`).
type DataDecl struct {
	base
	Name    string
	Params  []*NamedVal
	Body    Node
	IsAlias bool
	SumName string // non-empty if this DataDecl is a variant of a sum type
}

func NewDataDecl(name string, params []*NamedVal, body Node, isAlias bool, loc Location) *DataDecl {
	return &DataDecl{base: newBase(KDataDecl, loc), Name: name, Params: params, Body: body, IsAlias: isAlias}
}
func (n *DataDecl) String() string { return n.Name }

type TraitNode struct {
	base
	Name     string
	Generics []string
	Fns      []*FuncDecl
}

func NewTraitNode(name string, generics []string, fns []*FuncDecl, loc Location) *TraitNode {
	return &TraitNode{base: newBase(KTraitNode, loc), Name: name, Generics: generics, Fns: fns}
}
func (n *TraitNode) String() string { return n.Name }

type Import struct {
	base
	Expr string // raw import path text, resolved by the module loader
}

func NewImport(expr string, loc Location) *Import {
	return &Import{base: newBase(KImport, loc), Expr: expr}
}
func (n *Import) String() string { return n.Expr }

type ModKind int

const (
	ModPub ModKind = iota
	ModCompilerDirective
)

type Mod struct {
	base
	MKind ModKind
	Expr  Node // nil for bare directives
}

func NewMod(kind ModKind, expr Node, loc Location) *Mod {
	return &Mod{base: newBase(KMod, loc), MKind: kind, Expr: expr}
}

func (n *Mod) String() string { return "Mod" }
