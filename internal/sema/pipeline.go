// Package sema implements the five-pass semantic analyzer: symbol
// extraction, scope binding, constraint generation, constraint solving, and
// type assignment, run in strict sequence over a single module.
package sema

import (
	"fmt"

	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// Result is the outcome of running the full pipeline over one module.
type Result struct {
	Module *ast.Module
	Bag    *diagnostics.Bag
}

// Run drives a freshly-parsed module through all five passes. builtins is
// the pre-populated root scope the driver supplies; ctx owns this module's
// type-variable counter and must not be shared with any other module
// processed concurrently.
func Run(module *ast.Module, builtins *scope.Scope, ctx *types.Context) *Result {
	bag := diagnostics.NewBag()

	if module.State != ast.StateParsed {
		bag.Add(fmt.Errorf("module %q: cannot start pipeline from state %s", module.Name, module.State))
		module.State = ast.StateErrored
		return &Result{Module: module, Bag: bag}
	}

	module.Builtins = builtins

	ext := newExtractor(ctx, bag)
	ast.Walk(ext, module)
	module.State = ast.StateSymbolsExtracted

	if !requirePass(module, ast.StateSymbolsExtracted, bag) {
		return &Result{Module: module, Bag: bag}
	}
	bnd := newBinder(bag)
	bnd.run(module)
	module.State = ast.StateScopesBound

	if !requirePass(module, ast.StateScopesBound, bag) {
		return &Result{Module: module, Bag: bag}
	}
	gen := newGenerator(ctx, bag)
	gen.run(module)
	module.State = ast.StateConstraintsGenerated

	if !requirePass(module, ast.StateConstraintsGenerated, bag) {
		return &Result{Module: module, Bag: bag}
	}
	sol, unsatisfied := newSolver(gen.constraints, bag).solve()
	for _, c := range unsatisfied {
		bag.Addf(diagnostics.ErrInference, c.pos(), c.describe())
	}

	if !requirePass(module, ast.StateConstraintsGenerated, bag) {
		return &Result{Module: module, Bag: bag}
	}
	asn := newAssigner(sol, bag)
	ast.Walk(asn, module)

	if bag.HasErrors() {
		module.State = ast.StateErrored
	} else {
		module.State = ast.StateTyped
	}

	return &Result{Module: module, Bag: bag}
}

// requirePass enforces spec.md §4.8: a pass refuses to run unless the
// module is at exactly the state the prior pass is supposed to have left
// it in. Called after advancing to that state, so any mutation of
// module.State between the advance and the next pass is caught before that
// pass touches it. A module handed to Run in any state other than parsed is
// rejected by the check at the top of Run instead.
func requirePass(module *ast.Module, want ast.ModuleState, bag *diagnostics.Bag) bool {
	if module.State == want {
		return true
	}
	bag.Add(fmt.Errorf("module %q: expected state %s before next pass, got %s", module.Name, want, module.State))
	module.State = ast.StateErrored
	return false
}
