package pattern

import (
	"fmt"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/types"
)

// TestKind distinguishes the two shapes of test §4.7 emits against the
// scrutinee: a tag comparison (constructor patterns) or a literal
// equality comparison.
type TestKind int

const (
	TestTag TestKind = iota
	TestLiteral
)

// Test is one conditional check a compiled branch performs against the
// scrutinee before falling through to its body; Path locates the value
// to test by walking tuple/constructor-payload offsets from the
// scrutinee root (payload index 0 is always the discriminator slot for a
// constructor's children, per I3, so sub-pattern offsets start at 1).
type Test struct {
	Kind TestKind
	Path []int

	// TestTag fields.
	TagName  string
	TagIndex int

	// TestLiteral fields. LitKind mirrors the ast.Kind of the literal
	// (KIntLit/KFltLit/KStrLit/KCharLit/KBoolLit); equality for every
	// literal kind except string is the primitive-equality builtin. For
	// KStrLit the comparison must route through the module's resolved
	// `Eq Str Str` instance (§4.7, §9 open question) — StrEqImpl is left
	// nil here and filled in by ResolveStringEquality once trait
	// resolution has run; a codegen adapter must not be handed a
	// KStrLit test with a nil StrEqImpl.
	LitKind   ast.Kind
	LitText   string
	StrEqImpl *module.TraitImpl
}

// Binding records that matching a branch binds Name to the value reached
// by walking Path from the scrutinee.
type Binding struct {
	Name    string
	Path    []int
	DeclPtr interface{} // *module.Declaration, wired by the caller once declared
}

// Branch is one compiled match arm: an ordered test sequence (failure
// jumps to the next branch's Label; success falls through to Body after
// performing Bindings), per §4.7.
type Branch struct {
	Index    int
	Label    string
	Tests    []Test
	Bindings []Binding
	Body     ast.Node
}

// Compiled is the full decomposition of one match expression: every
// branch plus the trailing fallthrough label, reached only if
// exhaustiveness found a gap (§4.7).
type Compiled struct {
	Branches             []*Branch
	FallthroughLabel     string
	FallthroughReachable bool
	Overlaps             []Overlap
}

// Compile decomposes a match expression into Branches, per §4.7's bullet
// list: literal tests compare by primitive equality (string literals are
// flagged for a later Eq-trait pass, see Test.StrEqImpl); tuple patterns
// recurse by offset; constructor patterns extract and compare the
// discriminator, then recurse into the payload; variable patterns bind.
// scrutineeType must be the scrutinee's solved, ground type so
// constructor patterns can resolve a tag name to its discriminator index.
func Compile(scrutineeType types.Type, branches []*ast.MatchBranch) (*Compiled, error) {
	sum, _ := stripMods(scrutineeType).(*types.SumType)

	out := make([]*Branch, len(branches))
	var patNodes []ast.Node
	for i, mb := range branches {
		patNodes = append(patNodes, mb.Pattern)
		b := &Branch{Index: i, Label: fmt.Sprintf("match.arm.%d", i), Body: mb.Branch}
		if err := walk(mb.Pattern, nil, sum, b); err != nil {
			return nil, err
		}
		out[i] = b
	}

	checker := NewChecker()
	result := checker.Check(scrutineeType, patNodes)

	return &Compiled{
		Branches:             out,
		FallthroughLabel:     "match.fallthrough",
		FallthroughReachable: !result.Exhaustive,
		Overlaps:             result.Overlaps,
	}, nil
}

func walk(n ast.Node, path []int, sum *types.SumType, b *Branch) error {
	switch p := n.(type) {
	case *ast.PatVar:
		if !p.IsWildcard() {
			b.Bindings = append(b.Bindings, Binding{Name: p.Name, Path: append([]int{}, path...), DeclPtr: p.DeclPtr})
		}
		return nil

	case *ast.PatLit:
		b.Tests = append(b.Tests, Test{
			Kind: TestLiteral, Path: append([]int{}, path...),
			LitKind: p.LitKind, LitText: p.Text,
		})
		return nil

	case *ast.PatTuple:
		for i, e := range p.Elems {
			if err := walk(e, append(path, i), sum, b); err != nil {
				return err
			}
		}
		return nil

	case *ast.PatCtor:
		idx, ok := tagIndex(sum, p.Name)
		if !ok {
			return fmt.Errorf("pattern compilation: %q is not a tag of %s", p.Name, scrutineeName(sum))
		}
		b.Tests = append(b.Tests, Test{Kind: TestTag, Path: append([]int{}, path...), TagName: p.Name, TagIndex: idx})
		for i, a := range p.Args {
			// Field 0 of the tag's payload is the discriminator slot
			// (I3); sub-pattern offsets address the payload starting at 1.
			if err := walk(a, append(path, i+1), sum, b); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("pattern compilation: unsupported pattern node %T", n)
	}
}

func tagIndex(sum *types.SumType, name string) (int, bool) {
	if sum == nil {
		return 0, false
	}
	for i, tag := range sum.Tags {
		if tag.Name == name {
			return i, true
		}
	}
	return 0, false
}

func scrutineeName(sum *types.SumType) string {
	if sum == nil {
		return "<non-sum-type>"
	}
	return sum.Name
}

// ResolveStringEquality fills in StrEqImpl on every KStrLit test a
// compiled match contains, by looking up `Eq Str Str` in mod's import
// closure. It is a separate pass (rather than part of Compile) because
// trait resolution needs the module table, which pattern compilation
// itself does not depend on.
func ResolveStringEquality(compiled *Compiled, mod *module.Module, strType types.Type) error {
	for _, b := range compiled.Branches {
		for i := range b.Tests {
			t := &b.Tests[i]
			if t.Kind != TestLiteral || t.LitKind != ast.KStrLit {
				continue
			}
			impl, err := mod.LookupTraitImpl("Eq", []types.Type{strType, strType})
			if err != nil {
				return err
			}
			if impl == nil {
				return fmt.Errorf("pattern compilation: no Eq Str Str instance in scope for string literal pattern %q", t.LitText)
			}
			t.StrEqImpl = impl
		}
	}
	return nil
}
