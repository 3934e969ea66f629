package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubstitutionExtendPreservesOrder(t *testing.T) {
	tc := NewTypeContext()
	sub := Substitution{}
	sub = sub.Extend("a", tc.Prim(I32))
	sub = sub.Extend("b", tc.Prim(Bool))

	want := Substitution{
		{Name: "a", Target: tc.Prim(I32)},
		{Name: "b", Target: tc.Prim(Bool)},
	}
	if diff := cmp.Diff(want, sub); diff != "" {
		t.Fatalf("substitution diverged from expected composition order (-want +got):\n%s", diff)
	}
}

func TestSubstitutionLookupFindsFirstMatch(t *testing.T) {
	tc := NewTypeContext()
	sub := Substitution{
		{Name: "a", Target: tc.Prim(I32)},
	}
	target, ok := sub.Lookup("a")
	if !ok || !target.Equals(tc.Prim(I32)) {
		t.Fatalf("Lookup(%q) = %v, %v; want %v, true", "a", target, ok, tc.Prim(I32))
	}
	if _, ok := sub.Lookup("missing"); ok {
		t.Fatalf("Lookup(%q) unexpectedly found a binding", "missing")
	}
}
