// Command anzenc is the CLI driver: it feeds one or more modules through
// pkg/driver and prints each module's diagnostics, colorized when stdout is
// a terminal (spec.md's Non-goals keep the CLI itself out of the core's
// scope; this is ambient scaffolding to exercise the pipeline end to end).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/pkg/builtin"
	"github.com/anzen-lang/anzen/pkg/driver"
)

const (
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the testable core of main: it takes no global state beyond the
// handles it's given, so tests can pass their own *os.File values (pipes or
// temporary files) instead of the process's real stdout/stderr.
func run(args []string, stdout, stderr *os.File) int {
	color := isatty.IsTerminal(stdout.Fd()) || isatty.IsCygwinTerminal(stdout.Fd())

	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: anzenc <module-name>...")
		return 2
	}

	builtins, _, err := builtin.Load()
	if err != nil {
		fmt.Fprintf(stderr, "anzenc: loading builtins: %v\n", err)
		return 1
	}

	units := make([]driver.Unit, len(args))
	for i, name := range args {
		units[i] = driver.Unit{Module: &ast.Module{Name: name, State: ast.StateParsed}}
	}

	outcomes, err := driver.Run(context.Background(), builtins, units)
	if err != nil {
		fmt.Fprintf(stderr, "anzenc: %v\n", err)
		return 1
	}

	failed := false
	for _, o := range outcomes {
		status := colorize(color, colorGreen, "ok")
		if o.Result.Bag.HasErrors() {
			failed = true
			status = colorize(color, colorRed, "failed")
		}
		fmt.Fprintf(stdout, "%s: %s [%s]\n", o.Unit.Module.Name, status, o.Unit.Module.State)
		for _, diagErr := range o.Result.Bag.Errors() {
			fmt.Fprintf(stdout, "  %s %s\n", colorize(color, colorYellow, "-"), diagErr)
		}
	}

	if failed {
		return 1
	}
	return 0
}

func colorize(enabled bool, color, s string) string {
	if !enabled {
		return s
	}
	return color + s + colorReset
}
