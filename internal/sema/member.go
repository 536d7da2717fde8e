package sema

import "github.com/anzen-lang/anzen/internal/types"

// findMember looks up name on owner, returning the candidate types it could
// denote (spec.md §4.6's find_member): zero means no such member, more than
// one means an overloaded method. A TypeVariable owner returns nil — the
// caller must defer until the owner itself is resolved.
func findMember(owner types.Type, name string) []types.Type {
	switch t := owner.(type) {
	case *types.TypeAlias:
		return findMemberOnUnderlying(t.Underlying, name)
	case types.Metatype:
		// A member looked up on a type expression itself (e.g. Point.__new__)
		// resolves against the type's own definition, same as an instance.
		return findMemberOnUnderlying(t.Of, name)
	case *types.Metatype:
		return findMemberOnUnderlying(t.Of, name)
	case *types.StructType, *types.UnionType, *types.InterfaceType:
		return findMemberOnUnderlying(t, name)
	case *types.TypeVariable:
		return nil
	default:
		return nil
	}
}

func findMemberOnUnderlying(t types.Type, name string) []types.Type {
	switch v := t.(type) {
	case *types.TypeAlias:
		return findMemberOnUnderlying(v.Underlying, name)
	case *types.StructType:
		if prop, ok := v.Property(name); ok {
			return []types.Type{prop.Type}
		}
		if overloads, ok := v.Methods[name]; ok {
			out := make([]types.Type, len(overloads))
			for i, o := range overloads {
				out[i] = o
			}
			return out
		}
		return nil
	case *types.InterfaceType:
		if mt, ok := v.Members[name]; ok {
			return []types.Type{mt.Type}
		}
		return nil
	case *types.UnionType:
		// A member common to every case is visible on the union itself; this
		// is rare enough (spec.md doesn't name a scenario for it) that we only
		// support the trivial all-cases-agree form.
		var common []types.Type
		for i, m := range v.Members {
			found := findMemberOnUnderlying(m, name)
			if len(found) != 1 {
				return nil
			}
			if i == 0 {
				common = found
				continue
			}
			if !types.Equals(common[0], found[0]) {
				return nil
			}
		}
		return common
	default:
		return nil
	}
}

// constructorType returns the function type `__new__` resolves to for alias,
// synthesizing the default memberwise constructor when the struct declares
// no explicit one (spec.md §4.6: "alias-against-function unification looks
// up find_member(\"__new__\", alias)").
func constructorType(alias *types.TypeAlias) *types.FunctionType {
	st, ok := alias.Underlying.(*types.StructType)
	if !ok {
		return nil
	}
	if overloads, ok := st.Methods["__new__"]; ok && len(overloads) > 0 {
		return overloads[0]
	}
	params := make([]types.FunctionParam, len(st.Properties))
	for i, f := range st.Properties {
		params[i] = types.FunctionParam{Label: f.Name, Type: f.Type}
	}
	return &types.FunctionType{Params: params, Codomain: types.Unqualified(alias)}
}
