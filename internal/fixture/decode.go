// Package fixture decodes the JSON AST fixtures cmd/antecheck reads: a
// plain tagged-union encoding of the internal/ast node shapes, standing
// in for the external parser §1 calls out of scope for this core (ast
// package doc: "The concrete syntax, lexer, and parser are external
// collaborators"). A fixture is how a test or a dev harness hands the
// pipeline a tree without depending on that external parser.
package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
)

// wireNode is the flat JSON shape every node kind is encoded as; fields
// irrelevant to a given kind are simply omitted by the fixture author.
type wireNode struct {
	Kind string `json:"kind"`
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col"`

	Text      string   `json:"text,omitempty"`
	Op        string   `json:"op,omitempty"`
	Name      string   `json:"name,omitempty"`
	Tag       string   `json:"tag,omitempty"`
	Length    int      `json:"length,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	IsAlias   bool     `json:"is_alias,omitempty"`
	SumName   string   `json:"sum_name,omitempty"`
	Generics  []string `json:"generics,omitempty"`
	JumpKind  string   `json:"jump_kind,omitempty"`
	LitKind   string   `json:"lit_kind,omitempty"`
	Trait     string   `json:"trait,omitempty"`

	Lval      *wireNode `json:"lval,omitempty"`
	Rval      *wireNode `json:"rval,omitempty"`
	Cond      *wireNode `json:"cond,omitempty"`
	Then      *wireNode `json:"then,omitempty"`
	Else      *wireNode `json:"else,omitempty"`
	Body      *wireNode `json:"body,omitempty"`
	Inner     *wireNode `json:"inner,omitempty"`
	Expr      *wireNode `json:"expr,omitempty"`
	Range     *wireNode `json:"range,omitempty"`
	Pattern   *wireNode `json:"pattern,omitempty"`
	Branch    *wireNode `json:"branch,omitempty"`
	TypeExpr  *wireNode `json:"type_expr,omitempty"`
	RefExpr   *wireNode `json:"ref_expr,omitempty"`
	Extension *wireNode `json:"extension,omitempty"`

	Exprs      []*wireNode `json:"exprs,omitempty"`
	Stmts      []*wireNode `json:"stmts,omitempty"`
	Args       []*wireNode `json:"args,omitempty"`
	Params     []*wireNode `json:"params,omitempty"`
	Elems      []*wireNode `json:"elems,omitempty"`
	Branches   []*wireNode `json:"branches,omitempty"`
	Main       []*wireNode `json:"main,omitempty"`
	Funcs      []*wireNode `json:"funcs,omitempty"`
	Types      []*wireNode `json:"types,omitempty"`
	Traits     []*wireNode `json:"traits,omitempty"`
	Extensions []*wireNode `json:"extensions,omitempty"`
	Methods    []*wireNode `json:"methods,omitempty"`
	Fns        []*wireNode `json:"fns,omitempty"`
	Tccs       []wireTcc   `json:"tccs,omitempty"`
}

type wireTcc struct {
	Trait string      `json:"trait"`
	Args  []*wireNode `json:"args,omitempty"`
}

// Decode parses data as one JSON-encoded *ast.Root fixture.
func Decode(data []byte) (*ast.Root, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	n, err := toNode(&w)
	if err != nil {
		return nil, err
	}
	root, ok := n.(*ast.Root)
	if !ok {
		return nil, fmt.Errorf("fixture: top-level node must be kind %q, got %q", "Root", w.Kind)
	}
	return root, nil
}

func (w *wireNode) loc() ast.Location {
	if w == nil {
		return ast.Location{}
	}
	p := ast.Pos{Line: w.Line, Col: w.Col}
	return ast.Location{File: w.File, Start: p, End: p}
}

func toNode(w *wireNode) (ast.Node, error) {
	if w == nil {
		return nil, nil
	}
	loc := w.loc()
	switch w.Kind {
	case "Root":
		root := ast.NewRoot(loc)
		for _, t := range w.Types {
			n, err := toNode(t)
			if err != nil {
				return nil, err
			}
			root.Types = append(root.Types, n.(*ast.DataDecl))
		}
		for _, t := range w.Traits {
			n, err := toNode(t)
			if err != nil {
				return nil, err
			}
			root.Traits = append(root.Traits, n.(*ast.TraitNode))
		}
		for _, e := range w.Extensions {
			n, err := toNode(e)
			if err != nil {
				return nil, err
			}
			root.Extensions = append(root.Extensions, n.(*ast.Ext))
		}
		for _, f := range w.Funcs {
			n, err := toNode(f)
			if err != nil {
				return nil, err
			}
			root.Funcs = append(root.Funcs, n.(*ast.FuncDecl))
		}
		for _, m := range w.Main {
			n, err := toNode(m)
			if err != nil {
				return nil, err
			}
			root.Main = append(root.Main, n)
		}
		return root, nil

	case "IntLit":
		return ast.NewIntLit(w.Text, loc), nil
	case "FltLit":
		return ast.NewFltLit(w.Text, loc), nil
	case "StrLit":
		return ast.NewStrLit(w.Text, loc), nil
	case "CharLit":
		return ast.NewCharLit(w.Text, loc), nil
	case "BoolLit":
		return ast.NewBoolLit(w.Text == "true", loc), nil

	case "Array":
		exprs, err := toNodes(w.Exprs)
		if err != nil {
			return nil, err
		}
		return ast.NewArray(exprs, loc), nil

	case "Tuple":
		exprs, err := toNodes(w.Exprs)
		if err != nil {
			return nil, err
		}
		return ast.NewTuple(exprs, loc), nil

	case "TypeNode":
		params, err := toTypeNodes(w.Params)
		if err != nil {
			return nil, err
		}
		ext, err := toNode(w.Extension)
		if err != nil {
			return nil, err
		}
		tn := ast.NewTypeNode(w.Tag, w.Name, loc)
		tn.Params = params
		tn.Length = w.Length
		tn.Modifiers = w.Modifiers
		tn.Extension = ext
		return tn, nil

	case "TypeCast":
		te, err := toTypeNode(w.TypeExpr)
		if err != nil {
			return nil, err
		}
		args, err := toNodes(w.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewTypeCast(te, args, loc), nil

	case "UnOp":
		rval, err := toNode(w.Rval)
		if err != nil {
			return nil, err
		}
		return ast.NewUnOp(w.Op, rval, loc), nil

	case "BinOp":
		lval, err := toNode(w.Lval)
		if err != nil {
			return nil, err
		}
		rval, err := toNode(w.Rval)
		if err != nil {
			return nil, err
		}
		return ast.NewBinOp(w.Op, lval, rval, loc), nil

	case "Seq":
		stmts, err := toNodes(w.Stmts)
		if err != nil {
			return nil, err
		}
		return ast.NewSeq(stmts, loc), nil

	case "Block":
		inner, err := toNode(w.Inner)
		if err != nil {
			return nil, err
		}
		return ast.NewBlock(inner, loc), nil

	case "Ret":
		expr, err := toNode(w.Expr)
		if err != nil {
			return nil, err
		}
		return ast.NewRet(expr, loc), nil

	case "If":
		cond, err := toNode(w.Cond)
		if err != nil {
			return nil, err
		}
		then, err := toNode(w.Then)
		if err != nil {
			return nil, err
		}
		els, err := toNode(w.Else)
		if err != nil {
			return nil, err
		}
		return ast.NewIf(cond, then, els, loc), nil

	case "While":
		cond, err := toNode(w.Cond)
		if err != nil {
			return nil, err
		}
		body, err := toNode(w.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewWhile(cond, body, loc), nil

	case "For":
		pat, err := toNode(w.Pattern)
		if err != nil {
			return nil, err
		}
		rng, err := toNode(w.Range)
		if err != nil {
			return nil, err
		}
		body, err := toNode(w.Body)
		if err != nil {
			return nil, err
		}
		return ast.NewFor(pat, rng, body, loc), nil

	case "Match":
		expr, err := toNode(w.Expr)
		if err != nil {
			return nil, err
		}
		var branches []*ast.MatchBranch
		for _, b := range w.Branches {
			n, err := toNode(b)
			if err != nil {
				return nil, err
			}
			branches = append(branches, n.(*ast.MatchBranch))
		}
		return ast.NewMatch(expr, branches, loc), nil

	case "MatchBranch":
		pat, err := toNode(w.Pattern)
		if err != nil {
			return nil, err
		}
		branch, err := toNode(w.Branch)
		if err != nil {
			return nil, err
		}
		return ast.NewMatchBranch(pat, branch, loc), nil

	case "NamedVal":
		te, err := toTypeNode(w.TypeExpr)
		if err != nil {
			return nil, err
		}
		return ast.NewNamedVal(w.Name, te, loc), nil

	case "FuncDecl":
		var params []*ast.NamedVal
		for _, p := range w.Params {
			n, err := toNode(p)
			if err != nil {
				return nil, err
			}
			params = append(params, n.(*ast.NamedVal))
		}
		ret, err := toTypeNode(w.TypeExpr)
		if err != nil {
			return nil, err
		}
		body, err := toNode(w.Body)
		if err != nil {
			return nil, err
		}
		var tccs []*ast.Tcc
		for _, t := range w.Tccs {
			args, err := toTypeNodes(t.Args)
			if err != nil {
				return nil, err
			}
			tccs = append(tccs, &ast.Tcc{Trait: t.Trait, Args: args})
		}
		fd := ast.NewFuncDecl(w.Name, params, ret, body, loc)
		fd.Tccs = tccs
		return fd, nil

	case "Var":
		return ast.NewVar(w.Name, loc), nil

	case "VarAssign":
		ref, err := toNode(w.RefExpr)
		if err != nil {
			return nil, err
		}
		expr, err := toNode(w.Expr)
		if err != nil {
			return nil, err
		}
		return ast.NewVarAssign(ref, expr, w.Modifiers, loc), nil

	case "Ext":
		te, err := toTypeNode(w.TypeExpr)
		if err != nil {
			return nil, err
		}
		var methods []*ast.FuncDecl
		for _, m := range w.Methods {
			n, err := toNode(m)
			if err != nil {
				return nil, err
			}
			methods = append(methods, n.(*ast.FuncDecl))
		}
		var traits []*ast.Tcc
		for _, t := range w.Tccs {
			args, err := toTypeNodes(t.Args)
			if err != nil {
				return nil, err
			}
			traits = append(traits, &ast.Tcc{Trait: t.Trait, Args: args})
		}
		return ast.NewExt(te, methods, traits, loc), nil

	case "Jump":
		expr, err := toNode(w.Expr)
		if err != nil {
			return nil, err
		}
		return ast.NewJump(jumpKindOf(w.JumpKind), expr, loc), nil

	case "DataDecl":
		var params []*ast.NamedVal
		for _, p := range w.Params {
			n, err := toNode(p)
			if err != nil {
				return nil, err
			}
			params = append(params, n.(*ast.NamedVal))
		}
		body, err := toNode(w.Body)
		if err != nil {
			return nil, err
		}
		dd := ast.NewDataDecl(w.Name, params, body, w.IsAlias, loc)
		dd.SumName = w.SumName
		return dd, nil

	case "TraitNode":
		var fns []*ast.FuncDecl
		for _, f := range w.Fns {
			n, err := toNode(f)
			if err != nil {
				return nil, err
			}
			fns = append(fns, n.(*ast.FuncDecl))
		}
		return ast.NewTraitNode(w.Name, w.Generics, fns, loc), nil

	case "Import":
		return ast.NewImport(w.Text, loc), nil

	case "Mod":
		expr, err := toNode(w.Expr)
		if err != nil {
			return nil, err
		}
		return ast.NewMod(modKindOf(w.Tag), expr, loc), nil

	case "PatLit":
		return ast.NewPatLit(patLitKindOf(w.LitKind), w.Text, loc), nil

	case "PatVar":
		return ast.NewPatVar(w.Name, loc), nil

	case "PatTuple":
		elems, err := toNodes(w.Elems)
		if err != nil {
			return nil, err
		}
		return ast.NewPatTuple(elems, loc), nil

	case "PatCtor":
		args, err := toNodes(w.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewPatCtor(w.Name, args, loc), nil

	default:
		return nil, fmt.Errorf("fixture: unknown node kind %q", w.Kind)
	}
}

func toNodes(ws []*wireNode) ([]ast.Node, error) {
	out := make([]ast.Node, 0, len(ws))
	for _, w := range ws {
		n, err := toNode(w)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func toTypeNode(w *wireNode) (*ast.TypeNode, error) {
	n, err := toNode(w)
	if err != nil || n == nil {
		return nil, err
	}
	tn, ok := n.(*ast.TypeNode)
	if !ok {
		return nil, fmt.Errorf("fixture: expected a TypeNode, got kind %q", w.Kind)
	}
	return tn, nil
}

func toTypeNodes(ws []*wireNode) ([]*ast.TypeNode, error) {
	out := make([]*ast.TypeNode, 0, len(ws))
	for _, w := range ws {
		tn, err := toTypeNode(w)
		if err != nil {
			return nil, err
		}
		out = append(out, tn)
	}
	return out, nil
}

func jumpKindOf(s string) ast.JumpKind {
	switch s {
	case "continue":
		return ast.JumpContinue
	case "return":
		return ast.JumpReturn
	default:
		return ast.JumpBreak
	}
}

func modKindOf(s string) ast.ModKind {
	switch s {
	case "compiler_directive":
		return ast.ModCompilerDirective
	default:
		return ast.ModPub
	}
}

func patLitKindOf(s string) ast.Kind {
	switch s {
	case "FltLit":
		return ast.KFltLit
	case "StrLit":
		return ast.KStrLit
	case "CharLit":
		return ast.KCharLit
	case "BoolLit":
		return ast.KBoolLit
	default:
		return ast.KIntLit
	}
}
