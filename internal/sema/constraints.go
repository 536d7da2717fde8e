package sema

import (
	"fmt"

	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// constraintKind discriminates the five constraint shapes spec.md §4.5 names.
type constraintKind int

const (
	kindEquality constraintKind = iota
	kindConformance
	kindSpecialization
	kindMembership
	kindDisjunction
)

// constraint is one typing obligation emitted by the generator and consumed
// destructively by the solver.
type constraint struct {
	kind constraintKind
	at   ast.Range

	// equality / conformance / specialization
	lhs types.Type
	rhs types.Type

	// membership
	memberName   string
	memberType   types.Type
	subject      string // human-readable description of what's being looked up on
	owner        types.Type

	// disjunction
	alternatives [][]*constraint
	subjectDesc  string // description used if no alternative can be solved
}

func (c *constraint) pos() ast.Range { return c.at }

func (c *constraint) describe() string {
	switch c.kind {
	case kindMembership:
		return fmt.Sprintf("%s.%s", c.subject, c.memberName)
	case kindDisjunction:
		if c.subjectDesc != "" {
			return c.subjectDesc
		}
		return "expression"
	default:
		return "expression"
	}
}

func equalityConstraint(at ast.Range, a, b types.Type) *constraint {
	return &constraint{kind: kindEquality, at: at, lhs: a, rhs: b}
}

func conformanceConstraint(at ast.Range, a, b types.Type) *constraint {
	return &constraint{kind: kindConformance, at: at, lhs: a, rhs: b}
}

func specializationConstraint(at ast.Range, specific, generic types.Type) *constraint {
	return &constraint{kind: kindSpecialization, at: at, lhs: specific, rhs: generic}
}

func membershipConstraint(at ast.Range, subjectDesc, memberName string, memberType types.Type, owner types.Type) *constraint {
	return &constraint{
		kind:       kindMembership,
		at:         at,
		subject:    subjectDesc,
		memberName: memberName,
		memberType: memberType,
		owner:      owner,
	}
}

func disjunctionConstraint(at ast.Range, subjectDesc string, alternatives [][]*constraint) *constraint {
	return &constraint{kind: kindDisjunction, at: at, subjectDesc: subjectDesc, alternatives: alternatives}
}

// overloadEquality builds the per-overload alternatives for an Ident
// resolving to more than one symbol (spec.md §4.5's Ident rule). Membership
// constraints with several candidates build their own alternatives in
// (*solver).stepMembership.
func overloadEquality(at ast.Range, target types.Type, symbols []*scope.Symbol) [][]*constraint {
	alts := make([][]*constraint, 0, len(symbols))
	for _, sym := range symbols {
		alts = append(alts, []*constraint{equalityConstraint(at, target, sym.Type.Type)})
	}
	return alts
}
