// Package pattern implements pattern-matching exhaustiveness checking
// and compilation (§4.7): decomposing a `match` into conditional tests
// against the scrutinee, and deciding whether every value of the
// scrutinee's type is covered by at least one branch.
package pattern

import (
	"fmt"
	"strings"

	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/types"
)

// APattern is the abstract pattern shape exhaustiveness checking works
// over: a simplified mirror of the surface ast pattern nodes, stripped of
// locations and type slots, used to build and subtract coverage sets.
type APattern interface {
	isAPattern()
	String() string
}

// AWildcard matches everything at its position: produced both by `_` and
// by a binding variable, per §4.7.
type AWildcard struct{}

func (AWildcard) isAPattern()    {}
func (AWildcard) String() string { return "_" }

// ALit matches one concrete literal value.
type ALit struct{ Text string }

func (ALit) isAPattern()      {}
func (a ALit) String() string { return a.Text }

// ATuple matches a fixed-arity tuple, structurally, by element.
type ATuple struct{ Elems []APattern }

func (ATuple) isAPattern() {}
func (a ATuple) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ACtor matches one sum-type tag, with a sub-pattern per payload field
// (empty for a nullary variant).
type ACtor struct {
	Name string
	Args []APattern
}

func (ACtor) isAPattern() {}
func (a ACtor) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return a.Name + " " + strings.Join(parts, " ")
}

// PatternSet is a set of concrete abstract patterns, used both as the
// "universe" of everything a type can produce and as the residual set
// still uncovered after processing some branches.
type PatternSet []APattern

// Checker checks match expressions for exhaustiveness and for branches
// fully subsumed by earlier ones (§4.7, §7 Exhaustiveness).
type Checker struct{}

func NewChecker() *Checker { return &Checker{} }

// Witness is the reconstructed sample value a non-exhaustive match fails
// to cover, reported as the first missing case (§7).
type Witness struct {
	Pattern APattern
}

func (w *Witness) String() string { return w.Pattern.String() }

// Overlap reports a branch fully subsumed by the branches before it —
// warned, not an error (§4.7 "unreachable branches").
type Overlap struct {
	BranchIndex int
}

// Result is the outcome of checking one match expression.
type Result struct {
	Exhaustive bool
	Missing    *Witness
	Overlaps   []Overlap
}

// Check builds the abstract coverage tree for scrutineeType (§4.7: "sum
// types expand into one child per tag; product/tuple into children per
// field; type variables become wildcards") and walks branches, in
// source order, subtracting what each one covers. The first uncovered
// leaf, if any, is reconstructed and reported; branches that stop
// covering anything new are reported as overlapping.
func (c *Checker) Check(scrutineeType types.Type, branches []ast.Node) *Result {
	universe := buildUniverse(scrutineeType)
	uncovered := universe

	var overlaps []Overlap
	for i, branchPat := range branches {
		covered := expand(branchPat)
		next := subtract(uncovered, covered)
		// A literal against an opaque domain (a lone wildcard) removes
		// nothing from it yet still covers new values: not an overlap.
		opaque := len(uncovered) == 1 && isWildcard(uncovered[0]) && !isWildcard(covered)
		if len(next) == len(uncovered) && !opaque {
			overlaps = append(overlaps, Overlap{BranchIndex: i})
		}
		uncovered = next
	}

	if len(uncovered) > 0 {
		return &Result{Exhaustive: false, Missing: &Witness{Pattern: uncovered[0]}, Overlaps: overlaps}
	}
	return &Result{Exhaustive: true, Overlaps: overlaps}
}

// buildUniverse constructs the set of abstract patterns a value of t can
// take, one level deep (§4.7).
func buildUniverse(t types.Type) PatternSet {
	switch v := stripMods(t).(type) {
	case *types.Primitive:
		if v.Tag == types.Bool {
			return PatternSet{ALit{Text: "true"}, ALit{Text: "false"}}
		}
		// Every other primitive (including Unit, which has exactly one
		// value but no literal syntax to name it) is treated as an
		// infinite/opaque domain only a wildcard can cover.
		return PatternSet{AWildcard{}}

	case *types.SumType:
		tags := make(PatternSet, len(v.Tags))
		for i, tag := range v.Tags {
			args := make([]APattern, 0, len(tag.Fields))
			// Fields[0] is the discriminator slot (I3); only the payload
			// fields after it are pattern-visible.
			for range tag.Fields[min(1, len(tag.Fields)):] {
				args = append(args, AWildcard{})
			}
			tags[i] = ACtor{Name: tag.Name, Args: args}
		}
		return tags

	case *types.Tuple:
		elems := make([]APattern, len(v.Fields))
		for i := range v.Fields {
			elems[i] = AWildcard{}
		}
		return PatternSet{ATuple{Elems: elems}}

	default:
		return PatternSet{AWildcard{}}
	}
}

func stripMods(t types.Type) types.Type {
	for {
		m, ok := t.(*types.Modifier)
		if !ok {
			return t
		}
		t = m.Inner
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// expand converts one surface ast pattern node into its abstract form,
// recursing into tuple elements and constructor arguments.
func expand(n ast.Node) APattern {
	switch p := n.(type) {
	case *ast.PatVar:
		return AWildcard{}
	case *ast.PatLit:
		return ALit{Text: p.Text}
	case *ast.PatTuple:
		elems := make([]APattern, len(p.Elems))
		for i, e := range p.Elems {
			elems[i] = expand(e)
		}
		return ATuple{Elems: elems}
	case *ast.PatCtor:
		args := make([]APattern, len(p.Args))
		for i, a := range p.Args {
			args[i] = expand(a)
		}
		return ACtor{Name: p.Name, Args: args}
	default:
		return AWildcard{}
	}
}

// subtract removes from universe every element that covered fully
// matches, mirroring the one-arm-at-a-time refinement of §4.7.
func subtract(universe PatternSet, covered APattern) PatternSet {
	if isWildcard(covered) {
		return nil
	}
	if len(universe) == 1 {
		if _, ok := universe[0].(AWildcard); ok {
			// An infinite/opaque domain is only ever cleared by a
			// wildcard, handled above; a concrete literal/ctor pattern
			// against it leaves the domain open (§9: literal patterns
			// over Str/int never make a match exhaustive by themselves).
			return universe
		}
	}
	var remaining PatternSet
	for _, u := range universe {
		if !patternsMatch(u, covered) {
			remaining = append(remaining, u)
		}
	}
	return remaining
}

func isWildcard(p APattern) bool {
	_, ok := p.(AWildcard)
	return ok
}

// patternsMatch reports whether covered fully accounts for u: a wildcard
// on either side always matches; ctors must share a name (their args are
// not required to individually exhaust — §4.7 treats a matching tag as
// fully covering that position, the same depth the decomposition table
// specifies); tuples must share arity.
func patternsMatch(u, covered APattern) bool {
	if isWildcard(u) || isWildcard(covered) {
		return true
	}
	switch up := u.(type) {
	case ALit:
		cp, ok := covered.(ALit)
		return ok && up.Text == cp.Text
	case ACtor:
		cp, ok := covered.(ACtor)
		return ok && up.Name == cp.Name
	case ATuple:
		cp, ok := covered.(ATuple)
		return ok && len(up.Elems) == len(cp.Elems)
	default:
		return false
	}
}

// RenderMissing produces a human-readable reconstruction of a witness for
// diagnostic messages (§7: "reported with a constructed sample").
func RenderMissing(w *Witness) string {
	return fmt.Sprintf("missing case: %s", w.Pattern)
}
