package module

import (
	"github.com/ante-lang/antec/internal/ast"
	"github.com/ante-lang/antec/internal/types"
)

// TraitDecl is a named interface with formal type arguments and a set of
// method stubs (§3).
type TraitDecl struct {
	Name     string
	TypeArgs []*types.TypeVar
	Methods  map[string]*Declaration // method name -> trait-method stub
	// SourceOrder is the position this trait was declared in, relative to
	// other decls in the same module-scan pass.
	SourceOrder int
}

func NewTraitDecl(name string, typeArgs []*types.TypeVar, order int) *TraitDecl {
	return &TraitDecl{Name: name, TypeArgs: typeArgs, Methods: make(map[string]*Declaration), SourceOrder: order}
}

// TraitImpl pairs a trait name with concrete type arguments and the AST
// extension node carrying method definitions (§3).
type TraitImpl struct {
	TraitName string
	Args      []types.Type
	Ext       *ast.Ext
	Methods   map[string]*Declaration

	// SourceOrder is this impl's position among its module's impls of
	// the same trait (assigned by AddTraitImpl). SourceName is the
	// tie-break of §5's ordering guarantee: LookupTraitImpl orders
	// candidates by module-import declaration order, then alphabetically
	// by SourceName.
	SourceOrder int
	SourceName  string
}

// Matches reports whether this impl's (trait, args) pair matches the
// given constraint, using arena equality on each argument (§4.8
// lookupTraitImpl: "the impl whose args match pointwise under arena
// equality").
func (ti *TraitImpl) Matches(traitName string, args []types.Type) bool {
	if ti.TraitName != traitName || len(ti.Args) != len(args) {
		return false
	}
	for i := range args {
		if ti.Args[i] != args[i] && !ti.Args[i].Equals(args[i]) {
			return false
		}
	}
	return true
}
