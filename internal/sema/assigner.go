package sema

import (
	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/types"
)

// assigner implements pass 5: it walks the fully-constrained AST one last
// time and replaces every expression, parameter and property node's
// provisional (possibly still-variable) qualified type with what the solver
// settled on. A variable that never got bound is an InferenceError (spec.md
// §7); the node's type becomes ErrorType so the failure doesn't cascade into
// unrelated diagnostics. Only the outermost variable is resolved: variables
// nested inside a function or struct type are left in place, and function,
// struct, union and interface declaration nodes keep the type the generator
// gave them.
type assigner struct {
	ast.BaseVisitor
	sol *substitution
	bag *diagnostics.Bag
}

func newAssigner(sol *substitution, bag *diagnostics.Bag) *assigner {
	return &assigner{sol: sol, bag: bag}
}

func (a *assigner) resolve(q *types.QualifiedType, at ast.Range, desc string) *types.QualifiedType {
	if q == nil {
		return q
	}
	resolved := a.sol.walk(q.Type)
	if _, stillVar := resolved.(*types.TypeVariable); stillVar {
		a.bag.Addf(diagnostics.ErrInference, at, desc)
		return &types.QualifiedType{Quals: q.Quals, Type: types.ErrorType}
	}
	return &types.QualifiedType{Quals: q.Quals, Type: resolved}
}

func (a *assigner) finalize(e ast.Expr, desc string) ast.Signal {
	e.SetType(a.resolve(e.Type(), e.Pos(), desc))
	return ast.SignalContinue
}

func (a *assigner) VisitIdent(id *ast.Ident) ast.Signal { return a.finalize(id, id.Name) }

func (a *assigner) VisitSelectExpr(s *ast.SelectExpr) ast.Signal {
	return a.finalize(s, describeExpr(s.Owner)+"."+s.Ownee.Name)
}

func (a *assigner) VisitImplicitSelectExpr(s *ast.ImplicitSelectExpr) ast.Signal {
	return a.finalize(s, "."+s.Ownee.Name)
}

func (a *assigner) VisitCallExpr(c *ast.CallExpr) ast.Signal { return a.finalize(c, "call") }

func (a *assigner) VisitBoolLit(n *ast.BoolLit) ast.Signal     { return a.finalize(n, "expression") }
func (a *assigner) VisitIntLit(n *ast.IntLit) ast.Signal       { return a.finalize(n, "expression") }
func (a *assigner) VisitFloatLit(n *ast.FloatLit) ast.Signal   { return a.finalize(n, "expression") }
func (a *assigner) VisitStringLit(n *ast.StringLit) ast.Signal { return a.finalize(n, "expression") }

func (a *assigner) VisitInfixExpr(n *ast.InfixExpr) ast.Signal   { return a.finalize(n, "expression") }
func (a *assigner) VisitPrefixExpr(n *ast.PrefixExpr) ast.Signal { return a.finalize(n, "expression") }
func (a *assigner) VisitParenExpr(n *ast.ParenExpr) ast.Signal   { return a.finalize(n, "expression") }
func (a *assigner) VisitLambdaExpr(n *ast.LambdaExpr) ast.Signal { return a.finalize(n, "lambda") }
func (a *assigner) VisitArrayLit(n *ast.ArrayLit) ast.Signal     { return a.finalize(n, "array literal") }
func (a *assigner) VisitSetLit(n *ast.SetLit) ast.Signal         { return a.finalize(n, "set literal") }
func (a *assigner) VisitMapLit(n *ast.MapLit) ast.Signal         { return a.finalize(n, "map literal") }
func (a *assigner) VisitUnsafeCastExpr(n *ast.UnsafeCastExpr) ast.Signal {
	return a.finalize(n, "cast")
}

func (a *assigner) VisitParamDecl(p *ast.ParamDecl) ast.Signal {
	p.QualType = a.resolve(p.QualType, p.Range, p.Name)
	return ast.SignalContinue
}

func (a *assigner) VisitPropDecl(p *ast.PropDecl) ast.Signal {
	p.QualType = a.resolve(p.QualType, p.Range, p.Name)
	return ast.SignalContinue
}
