package sema

import (
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/types"
)

// solver implements pass 4: it drains a worklist of constraints, unifying
// what it can and deferring what it can't yet (spec.md §4.6: "a LIFO
// constraint queue, except that a constraint that cannot yet be solved is
// pushed back onto the front rather than the back, so it is retried only
// after everything else has had a chance to narrow its operands").
type solver struct {
	bag   *diagnostics.Bag
	queue []*constraint
	sol   *substitution
}

func newSolver(constraints []*constraint, bag *diagnostics.Bag) *solver {
	queue := make([]*constraint, len(constraints))
	copy(queue, constraints)
	return &solver{bag: bag, queue: queue, sol: newSubstitution()}
}

// solve drains the queue to a fixed point and returns the resulting
// substitution plus whichever constraints it could never satisfy.
func (sv *solver) solve() (*substitution, []*constraint) {
	var unsatisfied []*constraint

	// Bound the number of consecutive no-progress pops at len(queue): once
	// every remaining constraint has been deferred once without anything
	// elsewhere narrowing its operands, the queue has stalled.
	stall := 0
	for len(sv.queue) > 0 && stall <= len(sv.queue) {
		c := sv.queue[len(sv.queue)-1]
		sv.queue = sv.queue[:len(sv.queue)-1]

		status := sv.step(c)
		switch status {
		case stepSolved:
			stall = 0
		case stepFailed:
			unsatisfied = append(unsatisfied, c)
			stall = 0
		case stepDeferred:
			sv.queue = append([]*constraint{c}, sv.queue...)
			stall++
		}
	}

	for _, c := range sv.queue {
		unsatisfied = append(unsatisfied, c)
	}

	return sv.sol, unsatisfied
}

type stepStatus int

const (
	stepSolved stepStatus = iota
	stepFailed
	stepDeferred
)

func (sv *solver) step(c *constraint) stepStatus {
	switch c.kind {
	case kindEquality, kindConformance:
		// Conformance is treated as equality (spec.md §4.5): Anzen has no
		// subtyping relation finer than "the same type" at this stage.
		if unify(c.lhs, c.rhs, sv.sol) {
			return stepSolved
		}
		return stepFailed
	case kindSpecialization:
		return sv.stepSpecialization(c)
	case kindMembership:
		return sv.stepMembership(c)
	case kindDisjunction:
		return sv.stepDisjunction(c)
	default:
		return stepFailed
	}
}

func (sv *solver) stepSpecialization(c *constraint) stepStatus {
	generic := sv.sol.walk(c.rhs)
	genericFn, ok := generic.(*types.FunctionType)
	if !ok {
		if _, isVar := generic.(*types.TypeVariable); isVar {
			return stepDeferred
		}
		return stepFailed
	}
	specificFn, ok := sv.sol.walk(c.lhs).(*types.FunctionType)
	if !ok {
		return stepDeferred
	}
	if len(genericFn.Placeholders) == 0 {
		if unify(genericFn, specificFn, sv.sol) {
			return stepSolved
		}
		return stepFailed
	}

	mapping := types.Mapping{}
	if len(genericFn.Params) != len(specificFn.Params) {
		return stepFailed
	}
	for i, gp := range genericFn.Params {
		sp := sv.sol.walk(specificFn.Params[i].Type.Type)
		if _, isVar := sp.(*types.TypeVariable); isVar {
			return stepDeferred
		}
		res := types.SpecializeAgainst(sp, gp.Type.Type, mapping)
		if !res.OK {
			return stepFailed
		}
		mapping = res.Mapping
	}

	specialized, ok := types.Specialize(genericFn, mapping).(*types.FunctionType)
	if !ok {
		return stepFailed
	}
	if unifyFunctions(specialized, specificFn, sv.sol) {
		return stepSolved
	}
	return stepFailed
}

func (sv *solver) stepMembership(c *constraint) stepStatus {
	owner := sv.sol.walk(c.owner)
	if _, isVar := owner.(*types.TypeVariable); isVar {
		return stepDeferred
	}

	candidates := findMember(owner, c.memberName)
	switch len(candidates) {
	case 0:
		sv.bag.Addf(diagnostics.ErrNoMember, c.pos(), owner.String(), c.memberName)
		unify(c.memberType, types.ErrorType, sv.sol)
		return stepFailed
	case 1:
		if unify(c.memberType, candidates[0], sv.sol) {
			return stepSolved
		}
		return stepFailed
	default:
		alts := make([][]*constraint, len(candidates))
		for i, cand := range candidates {
			alts[i] = []*constraint{equalityConstraint(c.at, c.memberType, cand)}
		}
		return sv.stepDisjunction(disjunctionConstraint(c.at, c.subject+"."+c.memberName, alts))
	}
}

func (sv *solver) stepDisjunction(c *constraint) stepStatus {
	var successes []*substitution
	for _, alt := range c.alternatives {
		trial := sv.sol.clone()
		if solveAlternative(alt, trial) {
			successes = append(successes, trial)
		}
	}
	switch len(successes) {
	case 0:
		return stepFailed
	case 1:
		sv.sol = successes[0]
		return stepSolved
	default:
		sv.bag.Addf(diagnostics.ErrAmbiguousType, c.pos(), c.describe(), describeCandidates(c.alternatives))
		sv.sol = successes[0]
		return stepSolved
	}
}

// solveAlternative tries to satisfy every constraint in alt against trial,
// mutating trial in place. It applies the same defer-and-retry discipline as
// the top-level solver, scoped to just this alternative's obligations.
func solveAlternative(alt []*constraint, trial *substitution) bool {
	queue := make([]*constraint, len(alt))
	copy(queue, alt)
	stall := 0
	for len(queue) > 0 && stall <= len(queue) {
		c := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		sv := &solver{bag: diagnostics.NewBag(), queue: nil, sol: trial}
		switch sv.step(c) {
		case stepSolved:
			stall = 0
		case stepFailed:
			return false
		case stepDeferred:
			queue = append([]*constraint{c}, queue...)
			stall++
		}
	}
	return len(queue) == 0
}

func describeCandidates(alts [][]*constraint) []string {
	out := make([]string, 0, len(alts))
	for _, alt := range alts {
		for _, c := range alt {
			out = append(out, c.rhs.String())
		}
	}
	return out
}
