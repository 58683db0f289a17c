// Package replshell implements an interactive read-eval-print loop over the
// same pipeline cmd/tlcore drives for files. Grounded on the teacher's
// internal/repl/repl.go: github.com/peterh/liner for line editing and
// persistent history, github.com/fatih/color for the prompt and diagnostic
// coloring, and a ":"-prefixed meta-command convention. Unlike the teacher
// (whose REPL holds a module-level type/instance/dictionary environment),
// a tlcore session only ever has one flat global scope, so its persistent
// state is just one Resolver, one Checker+Env, one Dispatcher and one
// Evaluator kept alive across lines.
package replshell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/check"
	"github.com/tlcore-lang/tlcore/internal/desugar"
	"github.com/tlcore-lang/tlcore/internal/dispatch"
	"github.com/tlcore-lang/tlcore/internal/errors"
	"github.com/tlcore-lang/tlcore/internal/eval"
	"github.com/tlcore-lang/tlcore/internal/lexer"
	"github.com/tlcore-lang/tlcore/internal/parser"
	"github.com/tlcore-lang/tlcore/internal/pipeline"
	"github.com/tlcore-lang/tlcore/internal/resolve"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// REPL is one interactive session's persistent state, threaded across every
// passes so later lines can see earlier ones' bindings, aliases, trait
// instances and dictionary tables.
type REPL struct {
	debug bool

	resolver   *resolve.Resolver
	checker    *check.Checker
	globalEnv  *check.Env
	dispatcher *dispatch.Dispatcher
	evaluator  *eval.Evaluator

	history     []string
	lastChecked ast.Expr
}

// New creates a session with fresh, empty pass state.
func New(debug bool, out io.Writer) *REPL {
	checker := check.New()
	globalEnv := check.NewEnv(nil)
	check.InstallBuiltins(globalEnv)
	return &REPL{
		debug:      debug,
		resolver:   resolve.New(),
		checker:    checker,
		globalEnv:  globalEnv,
		dispatcher: dispatch.New(checker.Types()),
		evaluator:  eval.New(os.Stdin, out),
	}
}

// Start runs the loop until the user quits or sends EOF.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".tlcore_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Fprintf(out, "%s\n", bold("tlcore"))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(s string) (c []string) {
		if !strings.HasPrefix(s, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":type", ":history", ":reset"} {
			if strings.HasPrefix(cmd, s) {
				c = append(c, cmd)
			}
		}
		return c
	})

	for {
		input, err := line.Prompt("tlcore> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if r.handleCommand(input, out) {
				break
			}
			continue
		}

		r.processLine(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// handleCommand runs a ":"-prefixed meta-command, returning true if the
// session should end.
func (r *REPL) handleCommand(input string, out io.Writer) bool {
	switch {
	case input == ":quit" || input == ":q":
		fmt.Fprintln(out, green("Goodbye!"))
		return true
	case input == ":help":
		fmt.Fprintln(out, "Meta-commands:")
		fmt.Fprintln(out, "  :help      show this message")
		fmt.Fprintln(out, "  :type      show the type of the last evaluated expression")
		fmt.Fprintln(out, "  :history   list entered lines")
		fmt.Fprintln(out, "  :reset     start a fresh session")
		fmt.Fprintln(out, "  :quit      exit")
		return false
	case input == ":type":
		if r.lastChecked == nil {
			fmt.Fprintln(out, dim("no expression evaluated yet"))
			return false
		}
		t, ok := r.checker.Types()[r.lastChecked]
		if !ok {
			fmt.Fprintln(out, dim("no expression evaluated yet"))
			return false
		}
		fmt.Fprintln(out, ast.PrintType(t))
		return false
	case input == ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, h)
		}
		return false
	case input == ":reset":
		*r = *New(r.debug, out)
		fmt.Fprintln(out, dim("session reset"))
		return false
	default:
		fmt.Fprintf(out, "%s: unknown command %q\n", red("Error"), input)
		return false
	}
}

// processLine runs one line of source through the full pipeline against the
// session's persistent state and prints its result or diagnostic.
func (r *REPL) processLine(input string, out io.Writer) {
	l := lexer.New(lexer.Normalize([]byte(input)))
	p := parser.New(l, "<repl>")
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), errs[0])
		return
	}

	expanded, err := desugar.Desugar(prog)
	if err != nil {
		r.report(out, err)
		return
	}

	resolved, err := r.resolver.Resolve(expanded)
	if err != nil {
		r.report(out, err)
		return
	}

	checked := &ast.Program{}
	for _, stmt := range resolved.Stmts {
		s, err := r.checker.CheckStmt(r.globalEnv, stmt)
		if err != nil {
			r.report(out, err)
			return
		}
		checked.Stmts = append(checked.Stmts, s)
		switch cs := s.(type) {
		case *ast.ExprStmt:
			r.lastChecked = cs.Expr
		case *ast.Assign:
			r.lastChecked = cs.Expr
		}
	}

	dispatched, err := r.dispatcher.Dispatch(checked)
	if err != nil {
		r.report(out, err)
		return
	}

	logs, err := r.evaluator.Run(dispatched)
	if err != nil {
		r.report(out, err)
		return
	}
	for _, log := range logs {
		fmt.Fprintf(out, "%s %s\n", cyan("=>"), log.Text)
	}
}

func (r *REPL) report(out io.Writer, err error) {
	fmt.Fprintf(out, "%s: %s\n", red("Error"), pipeline.FormatDiagnostic(err, r.debug))
	if rep, ok := errors.AsReport(err); ok && r.debug {
		fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf("phase=%s code=%s", rep.Phase, rep.Code)))
	}
}
