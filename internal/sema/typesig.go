package sema

import (
	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/types"
)

// sigToQualified converts a type-signature node written by the programmer
// into the semantic qualified type the constraint generator equates symbols
// against. A bare type name resolves against the generator's current scope
// (see (*generator).top): the innermost scope enclosing wherever this
// signature occurs in the tree, so its own placeholders and any enclosing
// Self are visible. It never mutates sig.
func (g *generator) sigToQualified(sig ast.TypeSig) *types.QualifiedType {
	if sig == nil {
		return types.Unqualified(g.ctx.Fresh())
	}
	switch n := sig.(type) {
	case *ast.QualSig:
		var quals types.QualSet
		if n.Cst {
			quals = quals.Union(types.QualSet(types.Cst))
		}
		if n.Mut {
			quals = quals.Union(types.QualSet(types.Mut))
		}
		if !quals.Valid() {
			g.bag.Addf(diagnostics.ErrIncompatibleQualifier, n.Range)
		}
		inner := g.sigToQualified(n.Subject)
		return &types.QualifiedType{Quals: quals, Type: inner.Type}
	case *ast.IdentSig:
		return types.Unqualified(g.identSigType(n))
	case *ast.FunSig:
		params := make([]types.FunctionParam, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, types.FunctionParam{Label: p.Label, Type: g.sigToQualified(p.Signature)})
		}
		return types.Unqualified(&types.FunctionType{Params: params, Codomain: g.sigToQualified(n.Codomain)})
	case *ast.UnionSig:
		members := make([]types.Type, 0, len(n.Alternatives))
		for _, alt := range n.Alternatives {
			members = append(members, g.sigToQualified(alt).Type)
		}
		return types.Unqualified(&types.UnionType{Members: members})
	default:
		return types.Unqualified(types.ErrorType)
	}
}

// identSigType resolves a bare type-name signature to the semantic type it
// denotes. The identifier must resolve to a symbol whose own type is a
// Metatype, a generic placeholder, or the enclosing Self (which denotes the
// enclosing type's alias); anything else is InvalidTypeIdentifier.
func (g *generator) identSigType(n *ast.IdentSig) types.Type {
	lookup := g.top()
	if lookup == nil {
		return types.ErrorType
	}
	defining := lookup.FindDefining(n.Name)
	if defining == nil {
		g.bag.Addf(diagnostics.ErrUndefinedSymbol, n.Range, n.Name)
		return types.ErrorType
	}
	syms := defining.Lookup(n.Name)
	switch st := syms[0].Type.Type.(type) {
	case *types.TypePlaceholder:
		return *st
	case *types.SelfType:
		return st.Enclosing
	}
	mt, ok := syms[0].Type.Type.(*types.Metatype)
	if !ok {
		g.bag.Addf(diagnostics.ErrInvalidTypeIdentifier, n.Range, n.Name)
		return types.ErrorType
	}
	if len(n.SpecArgs) == 0 {
		return mt.Of
	}
	mapping := make(types.Mapping, len(n.SpecArgs))
	if alias, ok := mt.Of.(*types.TypeAlias); ok {
		if st, ok := alias.Underlying.(*types.StructType); ok {
			for i, ph := range st.Placeholders {
				if i < len(n.SpecArgs) {
					mapping[ph.Name] = g.sigToQualified(n.SpecArgs[i]).Type
				}
			}
		}
	}
	return types.Specialize(mt.Of, mapping)
}
