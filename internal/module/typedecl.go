package module

import "github.com/ante-lang/antec/internal/types"

// TypeDecl names a declared type: a product-type template, a sum-type
// template, or (when Alias is non-nil) a type alias resolving directly to
// another type, including the primitive-alias shortcut of §4.2.
type TypeDecl struct {
	Name    string
	Product *types.ProductType
	Sum     *types.SumType
	Alias   types.Type
	Arity   int // number of formal type parameters
}

// Resolve returns the underlying type this declaration names (unapplied,
// i.e. the template/alias form — callers needing a concrete instantiation
// go through the arena's Instantiate* methods).
func (d *TypeDecl) Resolve() types.Type {
	switch {
	case d.Alias != nil:
		return d.Alias
	case d.Product != nil:
		return d.Product
	case d.Sum != nil:
		return d.Sum
	default:
		return nil
	}
}
