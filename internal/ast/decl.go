package ast

import (
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// FunDecl is a function, method, constructor, or destructor declaration. Its
// parameters and generic placeholders live in its own inner scope, distinct
// from its body's scope, so that parameters may be shadowed inside the body
// (spec.md §4.3: "this permits shadowing").
type FunDecl struct {
	Range        Range
	Name         string
	Kind         FunKind
	Placeholders []string
	Params       []*ParamDecl
	Codomain     TypeSig // optional
	Body         *BraceStmt // optional (nil for an interface member signature)

	scopedBase
	scopeOwnerBase
	QualType *types.QualifiedType
	Symbol   *scope.Symbol
}

func (d *FunDecl) Pos() Range             { return d.Range }
func (d *FunDecl) Accept(v Visitor) Signal { return v.VisitFunDecl(d) }
func (d *FunDecl) declNode()               {}
func (d *FunDecl) walkChildren(v Visitor) {
	for _, p := range d.Params {
		Walk(v, p)
	}
	if d.Codomain != nil {
		Walk(v, d.Codomain)
	}
	if d.Body != nil {
		Walk(v, d.Body)
	}
}

// ParamDecl is a function parameter: an optional external label, a name, a
// signature, and an optional default value.
type ParamDecl struct {
	Range     Range
	Label     string // "" if unlabeled
	Name      string
	Signature TypeSig
	Default   Expr // optional

	scopedBase
	QualType *types.QualifiedType
	Symbol   *scope.Symbol
}

func (d *ParamDecl) Pos() Range             { return d.Range }
func (d *ParamDecl) Accept(v Visitor) Signal { return v.VisitParamDecl(d) }
func (d *ParamDecl) declNode()               {}
func (d *ParamDecl) walkChildren(v Visitor) {
	if d.Signature != nil {
		Walk(v, d.Signature)
	}
	if d.Default != nil {
		Walk(v, d.Default)
	}
}

// PropDecl is a property (variable) declaration: `let x: Int := 0`.
type PropDecl struct {
	Range          Range
	Name           string
	Signature      TypeSig // optional
	InitOp         BindOp
	Init           Expr // optional; HasInit distinguishes "no initializer" from BindCopy-with-nil
	HasInit        bool
	Reassignable   bool

	scopedBase
	QualType *types.QualifiedType
	Symbol   *scope.Symbol
}

func (d *PropDecl) Pos() Range             { return d.Range }
func (d *PropDecl) Accept(v Visitor) Signal { return v.VisitPropDecl(d) }
func (d *PropDecl) declNode()               {}

// stmtNode lets a PropDecl stand directly as a BraceStmt element: `let x =
// 0` inside a function body is a local declaration, not one of the four
// control-flow statement shapes, but it still appears in a statement list.
func (d *PropDecl) stmtNode() {}
func (d *PropDecl) walkChildren(v Visitor) {
	if d.Signature != nil {
		Walk(v, d.Signature)
	}
	if d.HasInit && d.Init != nil {
		Walk(v, d.Init)
	}
}

// StructDecl declares a (possibly generic, possibly self-referential)
// struct type.
type StructDecl struct {
	Range        Range
	Name         string
	Placeholders []string
	Properties   []*PropDecl
	Methods      []*FunDecl

	scopedBase
	scopeOwnerBase
	QualType *types.QualifiedType // a Metatype<TypeAlias<StructType>>, once solved
	Symbol   *scope.Symbol
}

func (d *StructDecl) Pos() Range             { return d.Range }
func (d *StructDecl) Accept(v Visitor) Signal { return v.VisitStructDecl(d) }
func (d *StructDecl) declNode()               {}
func (d *StructDecl) walkChildren(v Visitor) {
	for _, p := range d.Properties {
		Walk(v, p)
	}
	for _, m := range d.Methods {
		Walk(v, m)
	}
}

// UnionTypeCaseDecl is one case of a union declaration, e.g. `case some(Int)`.
type UnionTypeCaseDecl struct {
	Range   Range
	Name    string
	Payload []TypeSig

	scopedBase
}

func (d *UnionTypeCaseDecl) Pos() Range             { return d.Range }
func (d *UnionTypeCaseDecl) Accept(v Visitor) Signal { return v.VisitUnionTypeCaseDecl(d) }
func (d *UnionTypeCaseDecl) declNode()               {}
func (d *UnionTypeCaseDecl) walkChildren(v Visitor) {
	for _, p := range d.Payload {
		Walk(v, p)
	}
}

// UnionDecl declares a tagged union (sum) type.
type UnionDecl struct {
	Range Range
	Name  string
	Cases []*UnionTypeCaseDecl

	scopedBase
	scopeOwnerBase
	QualType *types.QualifiedType
	Symbol   *scope.Symbol
}

func (d *UnionDecl) Pos() Range             { return d.Range }
func (d *UnionDecl) Accept(v Visitor) Signal { return v.VisitUnionDecl(d) }
func (d *UnionDecl) declNode()               {}
func (d *UnionDecl) walkChildren(v Visitor) {
	for _, c := range d.Cases {
		Walk(v, c)
	}
}

// InterfaceDecl declares an interface: a named aggregate of required members.
type InterfaceDecl struct {
	Range   Range
	Name    string
	Methods []*FunDecl // bodies are nil: signatures only

	scopedBase
	scopeOwnerBase
	QualType *types.QualifiedType
	Symbol   *scope.Symbol
}

func (d *InterfaceDecl) Pos() Range             { return d.Range }
func (d *InterfaceDecl) Accept(v Visitor) Signal { return v.VisitInterfaceDecl(d) }
func (d *InterfaceDecl) declNode()               {}
func (d *InterfaceDecl) walkChildren(v Visitor) {
	for _, m := range d.Methods {
		Walk(v, m)
	}
}

// TypeExtDecl extends an existing nominal type with additional methods
// (`extension Point { fun ... }`).
type TypeExtDecl struct {
	Range   Range
	Subject TypeSig
	Methods []*FunDecl

	scopeOwnerBase
}

func (d *TypeExtDecl) Pos() Range             { return d.Range }
func (d *TypeExtDecl) Accept(v Visitor) Signal { return v.VisitTypeExtDecl(d) }
func (d *TypeExtDecl) declNode()               {}
func (d *TypeExtDecl) walkChildren(v Visitor) {
	Walk(v, d.Subject)
	for _, m := range d.Methods {
		Walk(v, m)
	}
}
