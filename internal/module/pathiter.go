package module

import "strings"

// PathIter converts a filesystem-style import path into an ordered
// sequence of module-name segments (§4.9). It is the canonical way to
// translate import directives into module-table lookups via
// findPath/addPath below; the core's own algorithms never touch the
// filesystem directly.
type PathIter struct {
	segments []string
	i        int
}

// sourceExts lists the extensions stripped from a trailing path segment,
// matching the concrete syntax's source-file suffix.
var sourceExts = []string{".an", ".ante"}

// NewPathIter splits path on '/' or '\', skips a leading "." segment,
// and strips a trailing source-extension from the final segment.
func NewPathIter(path string) *PathIter {
	norm := strings.NewReplacer("\\", "/").Replace(path)
	raw := strings.Split(norm, "/")

	segments := make([]string, 0, len(raw))
	for i, seg := range raw {
		if seg == "" {
			continue
		}
		if i == 0 && seg == "." {
			continue
		}
		segments = append(segments, seg)
	}
	if n := len(segments); n > 0 {
		segments[n-1] = stripSourceExt(segments[n-1])
	}
	return &PathIter{segments: segments}
}

func stripSourceExt(seg string) string {
	for _, ext := range sourceExts {
		if strings.HasSuffix(seg, ext) {
			return strings.TrimSuffix(seg, ext)
		}
	}
	return seg
}

// Next returns the next segment and true, or ("", false) when exhausted.
func (p *PathIter) Next() (string, bool) {
	if p.i >= len(p.segments) {
		return "", false
	}
	seg := p.segments[p.i]
	p.i++
	return seg, true
}

// Segments returns the full ordered segment list.
func (p *PathIter) Segments() []string { return p.segments }

// FindPath walks root through each segment of path via GetOrCreateSubmodule
// semantics read-only: it returns the module reached by following
// existing submodules, or (nil, false) on the first missing segment.
func FindPath(root *Module, path string) (*Module, bool) {
	cur := root
	it := NewPathIter(path)
	for {
		seg, ok := it.Next()
		if !ok {
			return cur, true
		}
		next, ok := cur.Submodule[seg]
		if !ok {
			return nil, false
		}
		cur = next
	}
}

// AddPath walks root through each segment of path, creating submodules
// as needed, and returns the final module.
func AddPath(root *Module, path string) *Module {
	cur := root
	it := NewPathIter(path)
	for {
		seg, ok := it.Next()
		if !ok {
			return cur
		}
		cur = cur.GetOrCreateSubmodule(seg)
	}
}
