package sema

import (
	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/scope"
)

// binder implements pass 2: it resolves every identifier occurrence to the
// scope that defines it (spec.md §4.4). It maintains a stack of enclosing
// scopes and, per scope, the name currently under declaration (to implement
// the "declaration initializer shadows itself" rule).
type binder struct {
	ast.BaseVisitor
	bag *diagnostics.Bag

	scopes     []*scope.Scope
	underDecl  map[*scope.Scope]string
}

func newBinder(bag *diagnostics.Bag) *binder {
	return &binder{bag: bag, underDecl: make(map[*scope.Scope]string)}
}

func (b *binder) run(m *ast.Module) {
	ast.Walk(b, m)
}

func (b *binder) push(s *scope.Scope) { b.scopes = append(b.scopes, s) }
func (b *binder) pop()                { b.scopes = b.scopes[:len(b.scopes)-1] }
func (b *binder) top() *scope.Scope   { return b.scopes[len(b.scopes)-1] }

func (b *binder) VisitModule(m *ast.Module) ast.Signal {
	b.push(m.InnerScope)
	for _, d := range m.Decls {
		ast.Walk(b, d)
	}
	b.pop()
	return ast.SignalStop
}

func (b *binder) VisitBraceStmt(s *ast.BraceStmt) ast.Signal {
	b.push(s.InnerScope)
	for _, st := range s.Stmts {
		ast.Walk(b, st)
	}
	b.pop()
	return ast.SignalStop
}

func (b *binder) VisitLambdaExpr(lam *ast.LambdaExpr) ast.Signal {
	b.push(lam.InnerScope)
	for _, p := range lam.Params {
		ast.Walk(b, p)
	}
	ast.Walk(b, lam.Body)
	b.pop()
	return ast.SignalStop
}

func (b *binder) VisitFunDecl(d *ast.FunDecl) ast.Signal {
	b.push(d.InnerScope)
	for _, p := range d.Params {
		ast.Walk(b, p)
	}
	if d.Body != nil {
		ast.Walk(b, d.Body)
	}
	b.pop()
	return ast.SignalStop
}

func (b *binder) VisitStructDecl(d *ast.StructDecl) ast.Signal {
	b.push(d.InnerScope)
	for _, p := range d.Properties {
		ast.Walk(b, p)
	}
	for _, m := range d.Methods {
		ast.Walk(b, m)
	}
	b.pop()
	return ast.SignalStop
}

func (b *binder) VisitUnionDecl(d *ast.UnionDecl) ast.Signal {
	b.push(d.InnerScope)
	b.pop()
	return ast.SignalStop
}

func (b *binder) VisitInterfaceDecl(d *ast.InterfaceDecl) ast.Signal {
	b.push(d.InnerScope)
	for _, m := range d.Methods {
		ast.Walk(b, m)
	}
	b.pop()
	return ast.SignalStop
}

func (b *binder) VisitTypeExtDecl(d *ast.TypeExtDecl) ast.Signal {
	b.push(d.InnerScope)
	for _, m := range d.Methods {
		ast.Walk(b, m)
	}
	b.pop()
	return ast.SignalStop
}

// VisitPropDecl implements the declaration-initializer shadowing rule: while
// resolving x's own initializer, an occurrence of x that would otherwise
// resolve to this property's own defining scope instead resolves starting
// from that scope's parent (spec.md §4.4).
func (b *binder) VisitPropDecl(p *ast.PropDecl) ast.Signal {
	if p.Signature != nil {
		ast.Walk(b, p.Signature)
	}
	if p.HasInit && p.Init != nil {
		owning := p.DefiningScope
		prev, had := b.underDecl[owning]
		b.underDecl[owning] = p.Name
		ast.Walk(b, p.Init)
		if had {
			b.underDecl[owning] = prev
		} else {
			delete(b.underDecl, owning)
		}
	}
	return ast.SignalStop
}

func (b *binder) VisitIdent(id *ast.Ident) ast.Signal {
	start := b.top()
	defining := start.FindDefining(id.Name)
	if defining != nil && b.underDecl[defining] == id.Name && defining.Parent != nil {
		defining = defining.Parent.FindDefining(id.Name)
	}
	if defining == nil {
		b.bag.Addf(diagnostics.ErrUndefinedSymbol, id.Range, id.Name)
		return ast.SignalStop
	}
	id.ResolvedScope = defining
	for _, a := range id.SpecArgs {
		ast.Walk(b, a)
	}
	return ast.SignalStop
}

// VisitSelectExpr deliberately does not resolve Ownee's scope (spec.md
// §4.4): that depends on Owner's type, unknown until the solver runs.
func (b *binder) VisitSelectExpr(s *ast.SelectExpr) ast.Signal {
	ast.Walk(b, s.Owner)
	return ast.SignalStop
}

func (b *binder) VisitImplicitSelectExpr(*ast.ImplicitSelectExpr) ast.Signal {
	return ast.SignalStop
}
