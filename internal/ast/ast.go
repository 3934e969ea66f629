// Package ast defines the node shapes the type-checking core consumes from
// the parser. The concrete syntax, lexer, and parser are external
// collaborators (see SPEC_FULL.md); this package specifies only their
// contract with the core: a common visitor interface, a shared node-type
// tag, and a mutable type slot on every expression-carrying node.
package ast

import (
	"fmt"

	"github.com/ante-lang/antec/internal/types"
)

// Pos is a single point in a source file.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Location carries a file and a start/end range, per §6.
type Location struct {
	File  string
	Start Pos
	End   Pos
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%s-%s", l.File, l.Start, l.End)
}

// Node is the base interface every AST node implements.
type Node interface {
	Kind() Kind
	Loc() Location
	String() string
}

// Kind tags a node's concrete shape, used by visitors that dispatch on a
// sum type rather than virtual method calls (see DESIGN.md "visitor").
type Kind int

const (
	KRoot Kind = iota
	KIntLit
	KFltLit
	KStrLit
	KCharLit
	KBoolLit
	KArray
	KTuple
	KTypeNode
	KTypeCast
	KUnOp
	KBinOp
	KSeq
	KBlock
	KRet
	KIf
	KWhile
	KFor
	KMatch
	KMatchBranch
	KFuncDecl
	KNamedVal
	KVar
	KVarAssign
	KExt
	KJump
	KDataDecl
	KTraitNode
	KImport
	KMod
	KPatLit
	KPatVar
	KPatTuple
	KPatCtor
)

func (k Kind) String() string {
	names := [...]string{
		"Root", "IntLit", "FltLit", "StrLit", "CharLit", "BoolLit",
		"Array", "Tuple", "TypeNode", "TypeCast", "UnOp", "BinOp",
		"Seq", "Block", "Ret", "If", "While", "For", "Match",
		"MatchBranch", "FuncDecl", "NamedVal", "Var", "VarAssign",
		"Ext", "Jump", "DataDecl", "TraitNode", "Import", "Mod",
		"PatLit", "PatVar", "PatTuple", "PatCtor",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}
	return names[k]
}

// Typed is embedded by every expression-carrying node: a nullable type
// slot filled in by the pipeline, never by the parser.
type Typed struct {
	ResolvedType types.Type
}

// GetType returns the node's current resolved type, or nil if unset.
func (t *Typed) GetType() types.Type { return t.ResolvedType }

// SetType fills the node's type slot.
func (t *Typed) SetType(ty types.Type) { t.ResolvedType = ty }

// base factors out the Loc()/Kind() boilerplate every node needs.
type base struct {
	loc Location
	k   Kind
}

func (b base) Loc() Location { return b.loc }
func (b base) Kind() Kind    { return b.k }

func newBase(k Kind, loc Location) base { return base{loc: loc, k: k} }
