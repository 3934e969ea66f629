// Package mangle implements name mangling (§6): producing an
// unambiguous encoding of a function's parameter-type list that the
// codegen adapter treats opaquely.
package mangle

import (
	"strings"

	"github.com/ante-lang/antec/internal/types"
	"golang.org/x/text/unicode/norm"
)

// separator is a non-identifier character unlikely to appear in source
// identifiers, used to join canonical type strings (§6).
const separator = ""

// CanonicalTypeString renders t into the string form used both by name
// mangling and by trait-impl/instance-cache keys. Text is routed through
// NFC normalization (golang.org/x/text/unicode/norm) so two differently
// composed Unicode spellings of the same identifier canonicalise
// identically.
func CanonicalTypeString(t types.Type) string {
	return norm.NFC.String(t.String())
}

// Mangle produces base followed by an unambiguous encoding of params
// (§6): each parameter is rendered via CanonicalTypeString and the
// resulting strings are concatenated with a non-identifier separator.
func Mangle(base string, params []types.Type) string {
	var sb strings.Builder
	sb.WriteString(norm.NFC.String(base))
	for _, p := range params {
		sb.WriteString(separator)
		sb.WriteString(CanonicalTypeString(p))
	}
	return sb.String()
}
