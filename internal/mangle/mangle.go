// Package mangle implements the name-mangling contract consumed by the IR
// exporter (spec.md §6): a deterministic, injective mapping from a symbol's
// scope path, name, and resolved type to a flat string.
package mangle

import (
	"fmt"
	"strings"

	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// ScopePath walks from the given scope up to (but not including) the root,
// returning components in outer-to-inner order.
func ScopePath(s *scope.Scope) []string {
	var rev []string
	for cur := s; cur != nil && cur.Parent != nil; cur = cur.Parent {
		rev = append(rev, cur.Name)
	}
	path := make([]string, len(rev))
	for i, name := range rev {
		path[len(rev)-1-i] = name
	}
	return path
}

func lenPrefixed(s string) string {
	return fmt.Sprintf("%d%s", len(s), s)
}

// Symbol mangles a symbol's defining scope, name, and type into the `_Z`
// form: `_Z` + len-prefixed scope components + len-prefixed name + mangled
// type. Two symbols differing in scope path, name, or type always produce
// distinct strings (I6): the length prefixes make component boundaries
// unambiguous, so concatenation can't alias two different component splits.
func Symbol(definingScope *scope.Scope, name string, t *types.QualifiedType) string {
	var b strings.Builder
	b.WriteString("_Z")
	for _, comp := range ScopePath(definingScope) {
		b.WriteString(lenPrefixed(comp))
	}
	b.WriteString(lenPrefixed(name))
	b.WriteString(qualifiedType(t))
	return b.String()
}

func qualifiedType(qt *types.QualifiedType) string {
	var b strings.Builder
	if qt.Quals.Has(types.Cst) {
		b.WriteByte('c')
	}
	if qt.Quals.Has(types.Mut) {
		b.WriteByte('m')
	}
	b.WriteString(typeOf(qt.Type))
	return b.String()
}

// typeOf mangles a bare semantic type. Builtins get single-letter codes;
// everything nominal is wrapped with its name so that two structs named
// differently never collide even if their structural shape happens to
// coincide at this encoding depth.
func typeOf(t types.Type) string {
	switch v := t.(type) {
	case *types.TypeAlias:
		switch v.Name {
		case "Int":
			return "i"
		case "Bool":
			return "b"
		case "Float":
			return "d"
		case "String":
			return "s"
		case "Nothing":
			return "n"
		case "Anything":
			return "a"
		}
		return typeOf(v.Underlying)
	case *types.StructType:
		return "S" + lenPrefixed(v.Name)
	case *types.FunctionType:
		var b strings.Builder
		b.WriteByte('F')
		for _, p := range v.Params {
			b.WriteString(qualifiedType(p.Type))
		}
		b.WriteString("__")
		b.WriteString(qualifiedType(v.Codomain))
		return b.String()
	case *types.UnionType:
		var b strings.Builder
		b.WriteString("U" + lenPrefixed(v.Name))
		return b.String()
	case *types.InterfaceType:
		return "I" + lenPrefixed(v.Name)
	case *types.TypeVariable:
		return fmt.Sprintf("v%d", v.ID())
	case *types.TypePlaceholder:
		return "p" + lenPrefixed(v.Name)
	case *types.Metatype:
		return "M" + typeOf(v.Of)
	case *types.SelfType:
		return "Y" + typeOf(v.Enclosing)
	default:
		if types.IsErrorType(t) {
			return "E"
		}
		return "x"
	}
}
