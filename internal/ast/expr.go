package ast

import "github.com/anzen-lang/anzen/internal/scope"

// Ident is an identifier occurrence: a variable, function, or type name use.
// Its resolved scope is set by the scope binder (pass 2); SpecArgs carries
// any explicit `<...>` specialization arguments written by the programmer.
type Ident struct {
	Range         Range
	Name          string
	ResolvedScope *scope.Scope
	SpecArgs      []TypeSig // optional explicit specialization arguments

	exprBase
}

func (e *Ident) Pos() Range             { return e.Range }
func (e *Ident) Accept(v Visitor) Signal { return v.VisitIdent(e) }
func (e *Ident) exprNode()               {}
func (e *Ident) walkChildren(v Visitor) {
	for _, a := range e.SpecArgs {
		Walk(v, a)
	}
}

// SelectExpr is `owner.ownee`. The ownee's scope is intentionally left
// unresolved by the scope binder (spec.md §4.4): it depends on the owner's
// type, which isn't known until the constraint solver runs.
type SelectExpr struct {
	Range Range
	Owner Expr
	Ownee *Ident

	exprBase
}

func (e *SelectExpr) Pos() Range             { return e.Range }
func (e *SelectExpr) Accept(v Visitor) Signal { return v.VisitSelectExpr(e) }
func (e *SelectExpr) exprNode()               {}
func (e *SelectExpr) walkChildren(v Visitor) {
	Walk(v, e.Owner)
	Walk(v, e.Ownee)
}

// ImplicitSelectExpr is a bare `.member` expression whose owner is inferred
// from context (e.g. a union case constructor used where the union type is
// already known).
type ImplicitSelectExpr struct {
	Range Range
	Ownee *Ident

	exprBase
}

func (e *ImplicitSelectExpr) Pos() Range             { return e.Range }
func (e *ImplicitSelectExpr) Accept(v Visitor) Signal { return v.VisitImplicitSelectExpr(e) }
func (e *ImplicitSelectExpr) exprNode()               {}
func (e *ImplicitSelectExpr) walkChildren(v Visitor) {
	Walk(v, e.Ownee)
}

// CallArg is one argument in a call: an optional external label, the
// binding operator under which it's passed, and the value expression.
type CallArg struct {
	Range     Range
	Label     string // "" if unlabeled
	BindingOp BindOp
	Value     Expr
}

func (a *CallArg) Pos() Range { return a.Range }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Range     Range
	Callee    Expr
	Arguments []*CallArg

	exprBase
}

func (e *CallExpr) Pos() Range             { return e.Range }
func (e *CallExpr) Accept(v Visitor) Signal { return v.VisitCallExpr(e) }
func (e *CallExpr) exprNode()               {}
func (e *CallExpr) walkChildren(v Visitor) {
	Walk(v, e.Callee)
	for _, a := range e.Arguments {
		Walk(v, a.Value)
	}
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Range Range
	Value bool

	exprBase
}

func (e *BoolLit) Pos() Range             { return e.Range }
func (e *BoolLit) Accept(v Visitor) Signal { return v.VisitBoolLit(e) }
func (e *BoolLit) exprNode()               {}
func (e *BoolLit) walkChildren(Visitor)    {}

// IntLit is an integer literal.
type IntLit struct {
	Range Range
	Value int64

	exprBase
}

func (e *IntLit) Pos() Range             { return e.Range }
func (e *IntLit) Accept(v Visitor) Signal { return v.VisitIntLit(e) }
func (e *IntLit) exprNode()               {}
func (e *IntLit) walkChildren(Visitor)    {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Range Range
	Value float64

	exprBase
}

func (e *FloatLit) Pos() Range             { return e.Range }
func (e *FloatLit) Accept(v Visitor) Signal { return v.VisitFloatLit(e) }
func (e *FloatLit) exprNode()               {}
func (e *FloatLit) walkChildren(Visitor)    {}

// StringLit is a string literal.
type StringLit struct {
	Range Range
	Value string

	exprBase
}

func (e *StringLit) Pos() Range             { return e.Range }
func (e *StringLit) Accept(v Visitor) Signal { return v.VisitStringLit(e) }
func (e *StringLit) exprNode()               {}
func (e *StringLit) walkChildren(Visitor)    {}

// InfixExpr is `left op right` (arithmetic, comparison, logical operators).
type InfixExpr struct {
	Range Range
	Op    string
	Left  Expr
	Right Expr

	exprBase
}

func (e *InfixExpr) Pos() Range             { return e.Range }
func (e *InfixExpr) Accept(v Visitor) Signal { return v.VisitInfixExpr(e) }
func (e *InfixExpr) exprNode()               {}
func (e *InfixExpr) walkChildren(v Visitor) {
	Walk(v, e.Left)
	Walk(v, e.Right)
}

// PrefixExpr is `op operand` (unary minus, logical not, ...).
type PrefixExpr struct {
	Range   Range
	Op      string
	Operand Expr

	exprBase
}

func (e *PrefixExpr) Pos() Range             { return e.Range }
func (e *PrefixExpr) Accept(v Visitor) Signal { return v.VisitPrefixExpr(e) }
func (e *PrefixExpr) exprNode()               {}
func (e *PrefixExpr) walkChildren(v Visitor) {
	Walk(v, e.Operand)
}

// ParenExpr is a parenthesized expression, kept distinct from its inner
// expression so pretty-printing (out of scope here) can round-trip it.
type ParenExpr struct {
	Range Range
	Inner Expr

	exprBase
}

func (e *ParenExpr) Pos() Range             { return e.Range }
func (e *ParenExpr) Accept(v Visitor) Signal { return v.VisitParenExpr(e) }
func (e *ParenExpr) exprNode()               {}
func (e *ParenExpr) walkChildren(v Visitor) {
	Walk(v, e.Inner)
}

// LambdaExpr is an anonymous function literal; it opens its own scope for
// its parameters, distinct from its body's.
type LambdaExpr struct {
	Range    Range
	Params   []*ParamDecl
	Codomain TypeSig // optional
	Body     *BraceStmt

	scopeOwnerBase
	exprBase
}

func (e *LambdaExpr) Pos() Range             { return e.Range }
func (e *LambdaExpr) Accept(v Visitor) Signal { return v.VisitLambdaExpr(e) }
func (e *LambdaExpr) exprNode()               {}
func (e *LambdaExpr) walkChildren(v Visitor) {
	for _, p := range e.Params {
		Walk(v, p)
	}
	if e.Codomain != nil {
		Walk(v, e.Codomain)
	}
	Walk(v, e.Body)
}

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	Range    Range
	Elements []Expr

	exprBase
}

func (e *ArrayLit) Pos() Range             { return e.Range }
func (e *ArrayLit) Accept(v Visitor) Signal { return v.VisitArrayLit(e) }
func (e *ArrayLit) exprNode()               {}
func (e *ArrayLit) walkChildren(v Visitor) {
	for _, el := range e.Elements {
		Walk(v, el)
	}
}

// SetLit is `{e1, e2, ...}` in set-literal position.
type SetLit struct {
	Range    Range
	Elements []Expr

	exprBase
}

func (e *SetLit) Pos() Range             { return e.Range }
func (e *SetLit) Accept(v Visitor) Signal { return v.VisitSetLit(e) }
func (e *SetLit) exprNode()               {}
func (e *SetLit) walkChildren(v Visitor) {
	for _, el := range e.Elements {
		Walk(v, el)
	}
}

// MapEntry is one key/value pair of a MapLit.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLit is `{k1: v1, k2: v2, ...}` in map-literal position.
type MapLit struct {
	Range   Range
	Entries []MapEntry

	exprBase
}

func (e *MapLit) Pos() Range             { return e.Range }
func (e *MapLit) Accept(v Visitor) Signal { return v.VisitMapLit(e) }
func (e *MapLit) exprNode()               {}
func (e *MapLit) walkChildren(v Visitor) {
	for _, entry := range e.Entries {
		Walk(v, entry.Key)
		Walk(v, entry.Value)
	}
}

// UnsafeCastExpr is `value as! TypeSig`, an escape hatch the solver trusts
// without further conformance checking.
type UnsafeCastExpr struct {
	Range  Range
	Value  Expr
	Target TypeSig

	exprBase
}

func (e *UnsafeCastExpr) Pos() Range             { return e.Range }
func (e *UnsafeCastExpr) Accept(v Visitor) Signal { return v.VisitUnsafeCastExpr(e) }
func (e *UnsafeCastExpr) exprNode()               {}
func (e *UnsafeCastExpr) walkChildren(v Visitor) {
	Walk(v, e.Value)
	Walk(v, e.Target)
}
