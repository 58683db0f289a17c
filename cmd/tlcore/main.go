// Command tlcore is the CLI entry point: run a source file through the
// full pipeline, or start an interactive session. Grounded on the
// teacher's cmd/ailang/main.go (flag-based subcommands, fatih/color for
// diagnostics, red-only error vs --debug full trace), trimmed to the two
// operations spec.md's CLI actually needs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/tlcore-lang/tlcore/internal/config"
	"github.com/tlcore-lang/tlcore/internal/pipeline"
	"github.com/tlcore-lang/tlcore/internal/replshell"
)

var (
	red  = color.New(color.FgRed).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(".tlcorerc.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		return 1
	}

	debug := cfg.Debug
	if !cfg.Color {
		color.NoColor = true
	}
	var rest []string
	for _, a := range args {
		switch a {
		case "--debug":
			debug = true
		case "--help", "-h":
			printHelp()
			return 0
		default:
			rest = append(rest, a)
		}
	}

	if len(rest) == 0 {
		printHelp()
		return 1
	}

	if rest[0] == "repl" {
		replshell.New(debug, os.Stdout).Start(os.Stdout)
		return 0
	}

	return runFile(rest[0], debug)
}

func runFile(filename string, debug bool) int {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), filename, err)
		return 1
	}

	logs, err := pipeline.Run(content, filepath.Base(filename), os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), pipeline.FormatDiagnostic(err, debug))
		return 1
	}

	// Plain runs print nothing beyond whatever print/println already wrote
	// to stdout; --debug additionally shows the interleaved annotated
	// listing (SPEC_FULL.md SUPPLEMENTED FEATURES item 1), not raw lines.
	if debug {
		fmt.Println(pipeline.AnnotateSource(content, logs, cyan))
	}
	return 0
}

func printHelp() {
	fmt.Println(bold("tlcore"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tlcore <file>    Run a source file")
	fmt.Println("  tlcore repl      Start the interactive REPL")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --debug   print the full error cause chain instead of just the message")
}
