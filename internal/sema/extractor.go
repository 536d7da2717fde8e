package sema

import (
	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// extractor implements pass 1: it walks the AST top-down, opens a scope at
// every scope-opening node, and registers each declaration as a symbol in
// the current scope (spec.md §4.3).
type extractor struct {
	ast.BaseVisitor
	ctx     *types.Context
	bag     *diagnostics.Bag
	current *scope.Scope
}

func newExtractor(ctx *types.Context, bag *diagnostics.Bag) *extractor {
	return &extractor{ctx: ctx, bag: bag}
}

// declareOne registers a single (non-overloadable) symbol, reporting
// DuplicateDeclaration if the name is already taken in this scope.
func (e *extractor) declareOne(at ast.Range, name string, sym *scope.Symbol) {
	if existing := e.current.Lookup(name); len(existing) > 0 {
		e.bag.Addf(diagnostics.ErrDuplicateDecl, at, name)
		return
	}
	e.current.Add(sym)
}

// declareOverloadable registers a function symbol, allowed to accumulate
// into an overload set only if every existing symbol under that name is
// itself overloadable.
func (e *extractor) declareOverloadable(at ast.Range, name string, sym *scope.Symbol) {
	existing := e.current.Lookup(name)
	for _, other := range existing {
		if !other.Overloadable {
			e.bag.Addf(diagnostics.ErrDuplicateDecl, at, name)
			return
		}
	}
	e.current.Add(sym)
}

func (e *extractor) VisitModule(m *ast.Module) ast.Signal {
	m.InnerScope = scope.New(m.Name, m.Builtins)
	e.current = m.InnerScope
	return ast.SignalContinue
}

func (e *extractor) VisitBraceStmt(b *ast.BraceStmt) ast.Signal {
	b.InnerScope = scope.New("", e.current)
	saved := e.current
	e.current = b.InnerScope
	for _, s := range b.Stmts {
		ast.Walk(e, s)
	}
	e.current = saved
	return ast.SignalStop
}

func (e *extractor) VisitFunDecl(d *ast.FunDecl) ast.Signal {
	name := d.Name
	d.DefiningScope = e.current
	sym := &scope.Symbol{Name: name, Type: types.Unqualified(e.ctx.Fresh()), Overloadable: true, Generic: len(d.Placeholders) > 0}
	e.declareOverloadable(d.Range, name, sym)
	d.Symbol = sym

	d.InnerScope = scope.New(name, e.current)
	inner := d.InnerScope
	for _, ph := range d.Placeholders {
		inner.Add(&scope.Symbol{Name: ph, Type: types.Unqualified(&types.TypePlaceholder{Name: ph}), Generic: true})
	}

	saved := e.current
	e.current = inner
	for _, p := range d.Params {
		ast.Walk(e, p)
	}
	e.current = saved

	if d.Body != nil {
		saved := e.current
		e.current = inner
		ast.Walk(e, d.Body)
		e.current = saved
	}

	return ast.SignalStop // children already walked manually above
}

func (e *extractor) VisitLambdaExpr(lam *ast.LambdaExpr) ast.Signal {
	lam.InnerScope = scope.New("", e.current)
	saved := e.current
	e.current = lam.InnerScope
	for _, p := range lam.Params {
		ast.Walk(e, p)
	}
	if lam.Codomain != nil {
		ast.Walk(e, lam.Codomain)
	}
	ast.Walk(e, lam.Body)
	e.current = saved
	return ast.SignalStop
}

func (e *extractor) VisitParamDecl(p *ast.ParamDecl) ast.Signal {
	p.DefiningScope = e.current
	sym := &scope.Symbol{Name: p.Name, Type: types.Unqualified(e.ctx.Fresh())}
	e.declareOne(p.Range, p.Name, sym)
	p.Symbol = sym
	return ast.SignalContinue
}

func (e *extractor) VisitPropDecl(p *ast.PropDecl) ast.Signal {
	p.DefiningScope = e.current
	sym := &scope.Symbol{Name: p.Name, Type: types.Unqualified(e.ctx.Fresh())}
	e.declareOne(p.Range, p.Name, sym)
	p.Symbol = sym
	return ast.SignalContinue
}

func (e *extractor) declareNominal(at ast.Range, name string, placeholders []string) (*scope.Scope, *scope.Symbol) {
	aliasVar := e.ctx.Fresh()
	alias := types.NewAlias(name, aliasVar)
	sym := &scope.Symbol{Name: name, Type: types.Unqualified(&types.Metatype{Of: alias})}
	e.declareOne(at, name, sym)

	inner := scope.New(name, e.current)
	sym.InnerScope = inner
	for _, ph := range placeholders {
		inner.Add(&scope.Symbol{Name: ph, Type: types.Unqualified(&types.TypePlaceholder{Name: ph}), Generic: true})
	}
	inner.Add(&scope.Symbol{Name: "Self", Type: types.Unqualified(&types.SelfType{Enclosing: alias})})
	return inner, sym
}

func (e *extractor) VisitStructDecl(d *ast.StructDecl) ast.Signal {
	d.DefiningScope = e.current
	d.InnerScope, d.Symbol = e.declareNominal(d.Range, d.Name, d.Placeholders)

	saved := e.current
	e.current = d.InnerScope
	for _, p := range d.Properties {
		ast.Walk(e, p)
	}
	for _, m := range d.Methods {
		ast.Walk(e, m)
	}
	e.current = saved
	return ast.SignalStop
}

func (e *extractor) VisitUnionDecl(d *ast.UnionDecl) ast.Signal {
	d.DefiningScope = e.current
	d.InnerScope, d.Symbol = e.declareNominal(d.Range, d.Name, nil)

	saved := e.current
	e.current = d.InnerScope
	for _, c := range d.Cases {
		c.DefiningScope = e.current
	}
	e.current = saved
	return ast.SignalStop
}

func (e *extractor) VisitInterfaceDecl(d *ast.InterfaceDecl) ast.Signal {
	d.DefiningScope = e.current
	d.InnerScope, d.Symbol = e.declareNominal(d.Range, d.Name, nil)

	saved := e.current
	e.current = d.InnerScope
	for _, m := range d.Methods {
		ast.Walk(e, m)
	}
	e.current = saved
	return ast.SignalStop
}

func (e *extractor) VisitTypeExtDecl(d *ast.TypeExtDecl) ast.Signal {
	d.InnerScope = scope.New("extension", e.current)
	saved := e.current
	e.current = d.InnerScope
	for _, m := range d.Methods {
		ast.Walk(e, m)
	}
	e.current = saved
	return ast.SignalStop
}
