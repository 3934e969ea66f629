// Package diag implements the structured diagnostic sink described in
// §7: a typed error Report, a Sink that accumulates non-fatal reports per
// pass, and a colorized renderer for terminal output (mirroring the
// teacher's internal/errors package and its REPL's color conventions).
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Code is one of the error-kind taxonomies of §7.
type Code string

const (
	NAM001  Code = "NAM001"  // undeclared type or variable
	NAM002  Code = "NAM002"  // ambiguous lookup
	ARI001  Code = "ARI001"  // wrong number of type arguments
	ARI002  Code = "ARI002"  // wrong number of call/pattern arguments
	UNI001  Code = "UNI001"  // structural mismatch
	UNI002  Code = "UNI002"  // occurs-check failure
	TRA001  Code = "TRA001"  // no matching trait implementation
	TRA002  Code = "TRA002"  // ambiguous trait implementation
	EXH001  Code = "EXH001"  // non-exhaustive match
	MONO001 Code = "MONO001" // generic function cannot be instantiated
	INT001  Code = "INT001"  // internal invariant violation (always fatal)
)

// Phase names the pipeline stage that produced a Report (§2 data flow).
type Phase string

const (
	PhaseDeclScan     Phase = "decl-scan"
	PhaseConstraint   Phase = "constraint-collection"
	PhaseUnify        Phase = "unification"
	PhaseApply        Phase = "substitution-apply"
	PhaseMono         Phase = "monomorphisation"
	PhaseTraitResolve Phase = "trait-resolution"
	PhasePattern      Phase = "pattern-compile"
)

// Note is a secondary location attached to a Report, e.g. pointing at a
// conflicting earlier declaration.
type Note struct {
	Message string
	Loc     interface{}
}

// Report is the canonical structured diagnostic: every error carries one
// or more locations, the rendered form of any involved types, and a
// single-sentence summary (§7 "User-visible behaviour").
type Report struct {
	Code    Code
	Phase   Phase
	Message string
	Loc     interface{} // ast.Location; kept opaque to avoid an import cycle
	Notes   []Note
	Fatal   bool // true for Internal errors (§7)
}

func New(code Code, message string, loc interface{}) *Report {
	return &Report{Code: code, Message: message, Loc: loc, Fatal: code == INT001}
}

func (r *Report) Error() string {
	if r.Loc != nil {
		return fmt.Sprintf("%s: %s: %s", r.Loc, r.Code, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

func (r *Report) WithNote(message string, loc interface{}) *Report {
	r.Notes = append(r.Notes, Note{Message: message, Loc: loc})
	return r
}

// Sink accumulates non-fatal reports during a pass; at the pass boundary
// the driver checks Failed() and halts further passes if so (§7, §5).
type Sink struct {
	reports []*Report
}

func NewSink() *Sink { return &Sink{} }

// Report records a diagnostic. An Internal-coded report always marks the
// sink failed and is expected to unwind immediately at the call site.
func (s *Sink) Report(r *Report) { s.reports = append(s.reports, r) }

func (s *Sink) Failed() bool { return len(s.reports) > 0 }

func (s *Sink) Reports() []*Report { return s.reports }

// ExitCode mirrors §7: non-zero if any error was produced.
func (s *Sink) ExitCode() int {
	if s.Failed() {
		return 1
	}
	return 0
}

// Reporter renders Reports to an io.Writer, coloring output when w is a
// terminal (mattn/go-isatty), matching the teacher's REPL color gating.
type Reporter struct {
	w      io.Writer
	color  bool
	bold   func(a ...interface{}) string
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	dim    func(a ...interface{}) string
}

// NewReporter builds a Reporter writing to w. If w is os.Stdout/Stderr
// and it is attached to a real terminal, ANSI colors are enabled.
func NewReporter(w io.Writer) *Reporter {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{
		w:      w,
		color:  useColor,
		bold:   color.New(color.Bold).SprintFunc(),
		red:    color.New(color.FgRed, color.Bold).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		dim:    color.New(color.Faint).SprintFunc(),
	}
}

// Render writes one formatted Report.
func (rp *Reporter) Render(r *Report) {
	tag := string(r.Code)
	loc := fmt.Sprintf("%v", r.Loc)
	if rp.color {
		tag = rp.red(tag)
		loc = rp.dim(loc)
		fmt.Fprintf(rp.w, "%s %s %s\n", tag, loc, rp.bold(r.Message))
	} else {
		fmt.Fprintf(rp.w, "%s %s %s\n", tag, loc, r.Message)
	}
	for _, n := range r.Notes {
		if rp.color {
			fmt.Fprintf(rp.w, "  %s %v: %s\n", rp.yellow("note:"), n.Loc, n.Message)
		} else {
			fmt.Fprintf(rp.w, "  note: %v: %s\n", n.Loc, n.Message)
		}
	}
}

// RenderAll renders every report in the sink, in the order produced
// (§5's ordering guarantee: constraint/error ordering follows AST source
// order).
func (rp *Reporter) RenderAll(s *Sink) {
	for _, r := range s.Reports() {
		rp.Render(r)
	}
}
