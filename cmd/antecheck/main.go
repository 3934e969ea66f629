// Command antecheck is a development harness for the type-checking
// pipeline: it loads a JSON AST fixture (internal/fixture stands in for
// the external lexer/parser this package never implements, see that
// package's doc comment), scans it into a module, runs
// internal/pipeline.Compile, and reports diagnostics. With no fixture
// argument it drops into an interactive loop for poking at the module
// table, styled after the teacher's REPL (internal/repl).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/ante-lang/antec/internal/codegen"
	"github.com/ante-lang/antec/internal/config"
	"github.com/ante-lang/antec/internal/diag"
	"github.com/ante-lang/antec/internal/fixture"
	"github.com/ante-lang/antec/internal/mangle"
	"github.com/ante-lang/antec/internal/module"
	"github.com/ante-lang/antec/internal/pipeline"
	"github.com/ante-lang/antec/internal/types"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
)

func main() {
	var (
		fixturePath = flag.String("fixture", "", "path to a JSON AST fixture to compile")
		configPath  = flag.String("config", "", "path to a project config file (defaults to the built-in defaults)")
		modName     = flag.String("module", "main", "module name to give the compiled unit")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("config"), err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *fixturePath == "" {
		runInteractive(cfg)
		return
	}

	tc, mod, out, sink := compileFixture(*fixturePath, *modName, cfg)
	reporter := diag.NewReporter(os.Stdout)
	reporter.RenderAll(sink)
	printSummary(tc, mod, sink)
	if !sink.Failed() {
		recorder := codegen.NewRecordingAdapter()
		if err := codegen.NewDriver(recorder).Run(mod, out); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("codegen"), err)
			os.Exit(1)
		}
		fmt.Printf("%s emitted %d function(s) to the codegen adapter\n", green("✓"), len(recorder.Emitted))
	}
	os.Exit(sink.ExitCode())
}

// compileFixture decodes, scans, and runs the full pipeline over a single
// fixture file, mirroring §2's data flow end to end.
func compileFixture(path, modName string, cfg *config.Config) (*types.TypeContext, *module.Module, *pipeline.Output, *diag.Sink) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read fixture %q: %v\n", red("Error"), path, err)
		os.Exit(1)
	}
	root, err := fixture.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: malformed fixture %q: %v\n", red("Error"), path, err)
		os.Exit(1)
	}

	tc := types.NewTypeContext()
	sink := diag.NewSink()
	scanner := module.NewScanner(tc)
	mod := scanner.Scan(modName, root, nil, sink)
	if sink.Failed() {
		return tc, mod, &pipeline.Output{}, sink
	}

	out := pipeline.Compile(tc, mod, sink, cfg)
	return tc, mod, out, sink
}

func printSummary(tc *types.TypeContext, mod *module.Module, sink *diag.Sink) {
	if sink.Failed() {
		fmt.Printf("%s %d diagnostic(s)\n", red("✗"), len(sink.Reports()))
		return
	}
	fmt.Printf("%s module %s: %d function(s), %d type(s), %d trait(s)\n",
		green("✓"), bold(mod.Name), len(mod.Funcs), len(mod.Types), len(mod.Traits))
	for name, decl := range mod.Funcs {
		if decl.Type != nil {
			fmt.Printf("  %s : %s\n", cyan(name), decl.Type)
		}
	}
}

// runInteractive starts a liner-backed prompt loop for loading fixtures
// and inspecting the resulting module table one command at a time,
// following the teacher's history-file and completer conventions
// (internal/repl.Run).
func runInteractive(cfg *config.Config) {
	fmt.Printf("%s - type inference pipeline console\n", bold("antecheck"))
	fmt.Println("Type :help for commands, :quit to exit")
	fmt.Println()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(false)

	historyPath := historyFilePath()
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, cmd := range []string{":help", ":load", ":funcs", ":types", ":traits", ":quit"} {
			if strings.HasPrefix(cmd, partial) {
				out = append(out, cmd)
			}
		}
		return out
	})

	var (
		tc   *types.TypeContext
		mod  *module.Module
		sink *diag.Sink
	)

	for {
		input, err := line.Prompt("antecheck> ")
		if err != nil {
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		switch fields[0] {
		case ":quit", ":q":
			saveHistory(line, historyPath)
			return

		case ":help":
			printInteractiveHelp()

		case ":load":
			if len(fields) < 2 {
				fmt.Fprintf(os.Stderr, "%s: usage: :load <fixture.json>\n", red("Error"))
				continue
			}
			tc, mod, _, sink = compileFixture(fields[1], "main", cfg)
			reporter := diag.NewReporter(os.Stdout)
			reporter.RenderAll(sink)
			printSummary(tc, mod, sink)

		case ":funcs":
			requireModule(mod, func() {
				for name, decl := range mod.Funcs {
					fmt.Printf("  %s : %s\n", cyan(name), typeOrPending(decl.Type))
				}
			})

		case ":types":
			requireModule(mod, func() {
				for name, td := range mod.Types {
					fmt.Printf("  %s (arity %d)\n", cyan(name), td.Arity)
				}
			})

		case ":traits":
			requireModule(mod, func() {
				for name, impls := range mod.TraitImpls {
					for _, impl := range impls {
						if tup := argsAsTuple(tc, impl.Args); tup != nil {
							fmt.Printf("  %s %s\n", cyan(name), mangle.CanonicalTypeString(tup))
						} else {
							fmt.Printf("  %s\n", cyan(name))
						}
					}
				}
			})

		default:
			fmt.Fprintf(os.Stderr, "%s: unknown command %q (:help for a list)\n", red("Error"), fields[0])
		}
	}
}

func requireModule(mod *module.Module, fn func()) {
	if mod == nil {
		fmt.Fprintf(os.Stderr, "%s: no module loaded, use :load <fixture.json>\n", red("Error"))
		return
	}
	fn()
}

func typeOrPending(t types.Type) string {
	if t == nil {
		return dim("<pending>")
	}
	return t.String()
}

func argsAsTuple(tc *types.TypeContext, args []types.Type) types.Type {
	if tc == nil || len(args) == 0 {
		return nil
	}
	return tc.Tuple(args)
}

func printInteractiveHelp() {
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>   compile a JSON AST fixture and report diagnostics\n", cyan(":load"))
	fmt.Printf("  %s          list the current module's functions and their solved types\n", cyan(":funcs"))
	fmt.Printf("  %s          list the current module's type declarations\n", cyan(":types"))
	fmt.Printf("  %s         list the current module's trait implementations\n", cyan(":traits"))
	fmt.Printf("  %s          exit\n", cyan(":quit"))
}

func historyFilePath() string {
	dir := os.TempDir()
	return dir + string(os.PathSeparator) + ".antecheck_history"
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
