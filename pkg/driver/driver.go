// Package driver is the ambient multi-module runner that exercises the
// core's concurrency contract (spec.md §5, SPEC_FULL.md §5): each module is
// processed by its own *types.Context and *diagnostics.Bag, so N modules
// can be driven through the five-pass pipeline concurrently with no shared
// mutable state. Grounded on funvibe-funxy's internal/modules package,
// which drives its own multi-file builds the same way.
package driver

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/sema"
	"github.com/anzen-lang/anzen/internal/types"
)

// minVersion is the oldest @version pragma this driver accepts. Modules
// carrying no pragma at all are always accepted (the pragma is optional).
const minVersion = "v0.1.0"

// Unit is one module to process, paired with the optional version pragma
// a source file may declare (e.g. a leading `@version v1.2.0` comment the
// out-of-scope parser would have surfaced).
type Unit struct {
	Module  *ast.Module
	Version string // "" if the module declares no @version pragma
}

// Outcome pairs one unit's pipeline result with the run id its diagnostics
// bag was stamped with, so a caller correlating many concurrent runs can
// tell which bag belongs to which module without inspecting bag internals.
type Outcome struct {
	Unit   Unit
	Result *sema.Result
	RunID  uuid.UUID
}

// Run processes every unit concurrently against the shared builtins scope,
// stopping (via the group's context) only on an unrecoverable driver-level
// error (a malformed @version pragma, or one older than minVersion) —
// per-module semantic errors are
// never fatal to the group, they're just collected in that module's Bag.
func Run(ctx context.Context, builtins *scope.Scope, units []Unit) ([]Outcome, error) {
	outcomes := make([]Outcome, len(units))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range units {
		i, u := i, u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if u.Version != "" {
				if !semver.IsValid(u.Version) {
					return fmt.Errorf("module %q: malformed @version pragma %q", u.Module.Name, u.Version)
				}
				if semver.Compare(u.Version, minVersion) < 0 {
					return fmt.Errorf("module %q: @version %s predates minimum supported %s",
						u.Module.Name, u.Version, minVersion)
				}
			}

			tctx := types.NewContext()
			result := sema.Run(u.Module, builtins, tctx)
			outcomes[i] = Outcome{Unit: u, Result: result, RunID: result.Bag.RunID}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Summarize renders a short, deterministic report of a Run's outcomes as a
// single string, one line per module followed by its diagnostics, for
// callers that would rather not walk every bag by hand.
func Summarize(outcomes []Outcome) string {
	var b strings.Builder
	for _, o := range outcomes {
		fmt.Fprintf(&b, "%s: %s (run %s)\n", o.Unit.Module.Name, o.Unit.Module.State, o.RunID)
		for _, err := range o.Result.Bag.Errors() {
			fmt.Fprintf(&b, "  %s\n", err)
		}
	}
	return b.String()
}
