package types

import "fmt"

// pairKey identifies an unordered pair of type identities for the
// termination memo used by Equals (spec.md §4.1: "two struct types may
// reference themselves (directly or through a member)... equality uses a
// memoization table keyed by unordered pairs of type identities").
type pairKey struct{ a, b string }

func makePairKey(a, b Type) pairKey {
	ka, kb := identity(a), identity(b)
	if ka > kb {
		ka, kb = kb, ka
	}
	return pairKey{ka, kb}
}

// identity returns a string that is stable for the lifetime of a type value
// and unique enough to key the memo table. Pointer-identity types (structs,
// unions, interfaces, type variables) use their pointer address by way of
// %p; value types use their structural String() form, which is safe because
// only nominal types can cycle.
func identity(t Type) string {
	switch v := t.(type) {
	case *StructType:
		return fmt.Sprintf("struct:%p", v)
	case *UnionType:
		return fmt.Sprintf("union:%p", v)
	case *InterfaceType:
		return fmt.Sprintf("iface:%p", v)
	case *TypeVariable:
		return fmt.Sprintf("tvar:%p", v)
	case *TypeAlias:
		return fmt.Sprintf("alias:%p", v)
	default:
		return fmt.Sprintf("%T:%s", t, t.String())
	}
}

// Equals reports whether two semantic types are structurally equal, modulo
// cycles introduced by self-referential nominal types. This is the entry
// point; cyclic recursion is broken by a fresh memo table per top-level call.
func Equals(a, b Type) bool {
	return equalsMemo(a, b, make(map[pairKey]bool))
}

// QualifiedEquals implements spec.md §4.1 "qualified equality":
// (Q1, T1) = (Q2, T2) iff Q1 = Q2 and T1 = T2.
func QualifiedEquals(a, b *QualifiedType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Quals == b.Quals && Equals(a.Type, b.Type)
}

func equalsMemo(a, b Type, memo map[pairKey]bool) bool {
	a, b = unwrapAliasForEquality(a), unwrapAliasForEquality(b)

	if isNominal(a) && isNominal(b) {
		key := makePairKey(a, b)
		if v, ok := memo[key]; ok {
			return v
		}
		// Pre-populate with true: this is the co-inductive assumption that
		// breaks infinite recursion on self-referential structs. If the
		// structural check below later fails, the entry is corrected to
		// false — giving the overall check the greatest-fixed-point
		// semantics spec.md §4.1 calls for.
		memo[key] = true
		result := equalsStructural(a, b, memo)
		memo[key] = result
		return result
	}

	return equalsStructural(a, b, memo)
}

func isNominal(t Type) bool {
	switch t.(type) {
	case *StructType, *UnionType, *InterfaceType:
		return true
	default:
		return false
	}
}

func unwrapAliasForEquality(t Type) Type {
	if alias, ok := t.(*TypeAlias); ok {
		return alias.Underlying
	}
	return t
}

func equalsStructural(a, b Type, memo map[pairKey]bool) bool {
	switch av := a.(type) {
	case *TypeVariable:
		bv, ok := b.(*TypeVariable)
		return ok && av == bv
	case TypePlaceholder:
		bv, ok := b.(TypePlaceholder)
		return ok && av.Name == bv.Name
	case *StructType:
		bv, ok := b.(*StructType)
		if !ok || av.Name != bv.Name || !placeholdersEqual(av.Placeholders, bv.Placeholders) {
			return false
		}
		if len(av.Properties) != len(bv.Properties) {
			return false
		}
		for _, pf := range av.Properties {
			other, ok := bv.Property(pf.Name)
			if !ok || !qualifiedEqualsMemo(pf.Type, other, memo) {
				return false
			}
		}
		if len(av.Methods) != len(bv.Methods) {
			return false
		}
		for name, overloads := range av.Methods {
			others, ok := bv.Methods[name]
			if !ok || len(overloads) != len(others) {
				return false
			}
			for i, ov := range overloads {
				if !equalsMemo(ov, others[i], memo) {
					return false
				}
			}
		}
		return true
	case *UnionType:
		bv, ok := b.(*UnionType)
		if !ok || av.Name != bv.Name || len(av.Members) != len(bv.Members) {
			return false
		}
		for i, m := range av.Members {
			if !equalsMemo(m, bv.Members[i], memo) {
				return false
			}
		}
		return true
	case *InterfaceType:
		bv, ok := b.(*InterfaceType)
		if !ok || av.Name != bv.Name || len(av.Members) != len(bv.Members) {
			return false
		}
		for name, mt := range av.Members {
			other, ok := bv.Members[name]
			if !ok || !qualifiedEqualsMemo(mt, other, memo) {
				return false
			}
		}
		return true
	case *FunctionType:
		bv, ok := b.(*FunctionType)
		if !ok || len(av.Params) != len(bv.Params) {
			return false
		}
		if !placeholdersEqual(av.Placeholders, bv.Placeholders) {
			return false
		}
		for i, p := range av.Params {
			other := bv.Params[i]
			if p.Label != other.Label || !qualifiedEqualsMemo(p.Type, other.Type, memo) {
				return false
			}
		}
		return qualifiedEqualsMemo(av.Codomain, bv.Codomain, memo)
	case Metatype:
		bv, ok := b.(Metatype)
		return ok && equalsMemo(av.Of, bv.Of, memo)
	case *Metatype:
		bv, ok := b.(*Metatype)
		return ok && equalsMemo(av.Of, bv.Of, memo)
	case SelfType:
		_, ok := b.(SelfType)
		return ok
	case errorType:
		_, ok := b.(errorType)
		return ok
	default:
		return false
	}
}

func qualifiedEqualsMemo(a, b *QualifiedType, memo map[pairKey]bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Quals == b.Quals && equalsMemo(a.Type, b.Type, memo)
}

func placeholdersEqual(a, b []TypePlaceholder) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
