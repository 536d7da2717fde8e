package sema

import "github.com/anzen-lang/anzen/internal/types"

// substitution is the solver's partial solution: a binding from a type
// variable to the type it was unified with. Representatives are found by
// walking the chain; nothing is ever rewritten in place, so a substitution
// can be cheaply cloned for backtracking over a disjunction (spec.md §4.6).
type substitution struct {
	bindings map[*types.TypeVariable]types.Type
}

func newSubstitution() *substitution {
	return &substitution{bindings: make(map[*types.TypeVariable]types.Type)}
}

func (s *substitution) clone() *substitution {
	cp := make(map[*types.TypeVariable]types.Type, len(s.bindings))
	for k, v := range s.bindings {
		cp[k] = v
	}
	return &substitution{bindings: cp}
}

// walk follows a chain of variable bindings to its representative: either a
// concrete type, or the innermost still-unbound variable.
func (s *substitution) walk(t types.Type) types.Type {
	for {
		v, ok := t.(*types.TypeVariable)
		if !ok {
			return t
		}
		next, ok := s.bindings[v]
		if !ok {
			return t
		}
		t = next
	}
}

func (s *substitution) bind(v *types.TypeVariable, t types.Type) bool {
	if occursIn(v, t, s) {
		return false
	}
	s.bindings[v] = t
	return true
}

// occursIn is a shallow occurs check: it walks through variables, function
// types and aliases (the shapes inference actually builds incrementally) but
// treats struct/union/interface bodies as opaque, since those are nominal
// and legitimately self-referential (spec.md §4.1, I7) rather than built up
// by unification one layer at a time.
func occursIn(v *types.TypeVariable, t types.Type, s *substitution) bool {
	t = s.walk(t)
	switch tv := t.(type) {
	case *types.TypeVariable:
		return tv == v
	case *types.FunctionType:
		for _, p := range tv.Params {
			if occursIn(v, p.Type.Type, s) {
				return true
			}
		}
		return occursIn(v, tv.Codomain.Type, s)
	case *types.TypeAlias:
		return occursIn(v, tv.Underlying, s)
	case types.Metatype:
		return occursIn(v, tv.Of, s)
	default:
		return false
	}
}

// unify implements spec.md §4.6's unification algorithm: walk both sides to
// their representative, then structurally-equal is a no-op, either side
// being a variable binds it, function/function matches params and codomain,
// struct/union/interface match by name and members, and alias-against-
// function resolves via find_member("__new__", ...). Anything else fails.
func unify(a, b types.Type, s *substitution) bool {
	a = s.walk(a)
	b = s.walk(b)

	if types.IsErrorType(a) || types.IsErrorType(b) {
		return true
	}

	if av, ok := a.(*types.TypeVariable); ok {
		if bv, ok := b.(*types.TypeVariable); ok && av == bv {
			return true
		}
		return s.bind(av, b)
	}
	if bv, ok := b.(*types.TypeVariable); ok {
		return s.bind(bv, a)
	}

	if types.Equals(a, b) {
		return true
	}

	switch at := a.(type) {
	case *types.FunctionType:
		bt, ok := b.(*types.FunctionType)
		if !ok {
			return unifyAliasAgainstFunction(b, at, s)
		}
		return unifyFunctions(at, bt, s)
	case *types.StructType:
		bt, ok := b.(*types.StructType)
		if !ok || at.Name != bt.Name {
			return false
		}
		for _, f := range at.Properties {
			other, ok := bt.Property(f.Name)
			if !ok || !unify(f.Type.Type, other.Type, s) {
				return false
			}
		}
		return true
	case *types.UnionType:
		bt, ok := b.(*types.UnionType)
		if !ok || at.Name != bt.Name || len(at.Members) != len(bt.Members) {
			return false
		}
		for i, m := range at.Members {
			if !unify(m, bt.Members[i], s) {
				return false
			}
		}
		return true
	case *types.InterfaceType:
		bt, ok := b.(*types.InterfaceType)
		if !ok || at.Name != bt.Name || len(at.Members) != len(bt.Members) {
			return false
		}
		for name, mt := range at.Members {
			other, ok := bt.Members[name]
			if !ok || !unify(mt.Type, other.Type, s) {
				return false
			}
		}
		return true
	case *types.TypeAlias:
		if bt, ok := b.(*types.TypeAlias); ok {
			return unify(at.Underlying, bt.Underlying, s)
		}
		if bf, ok := b.(*types.FunctionType); ok {
			return unifyAliasAgainstFunction(at, bf, s)
		}
		return unify(at.Underlying, b, s)
	case types.Metatype:
		bt, ok := b.(types.Metatype)
		if !ok {
			return false
		}
		return unify(at.Of, bt.Of, s)
	default:
		return false
	}
}

func unifyFunctions(at, bt *types.FunctionType, s *substitution) bool {
	if len(at.Params) != len(bt.Params) {
		return false
	}
	for i, p := range at.Params {
		other := bt.Params[i]
		if p.Label != other.Label || !unify(p.Type.Type, other.Type.Type, s) {
			return false
		}
	}
	return unify(at.Codomain.Type, bt.Codomain.Type, s)
}

func unifyAliasAgainstFunction(aliasSide types.Type, fn *types.FunctionType, s *substitution) bool {
	alias, ok := aliasSide.(*types.TypeAlias)
	if !ok {
		return false
	}
	ctor := constructorType(alias)
	if ctor == nil {
		return false
	}
	return unifyFunctions(ctor, fn, s)
}
