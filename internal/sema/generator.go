package sema

import (
	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/diagnostics"
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// generator implements pass 3: a bottom-up walk that assigns every typed
// node a qualified type (fresh, unless more specific) and emits the
// constraints listed in spec.md §4.5.
type generator struct {
	ast.BaseVisitor
	ctx         *types.Context
	bag         *diagnostics.Bag
	constraints []*constraint
	builtins    map[string]types.Type // name -> the builtin's underlying type (not its Metatype)
	scopes      []*scope.Scope
}

func newGenerator(ctx *types.Context, bag *diagnostics.Bag) *generator {
	return &generator{ctx: ctx, bag: bag, builtins: make(map[string]types.Type)}
}

func (g *generator) emit(c *constraint) { g.constraints = append(g.constraints, c) }

func (g *generator) push(s *scope.Scope) { g.scopes = append(g.scopes, s) }
func (g *generator) pop()                { g.scopes = g.scopes[:len(g.scopes)-1] }
func (g *generator) top() *scope.Scope {
	if len(g.scopes) == 0 {
		return nil
	}
	return g.scopes[len(g.scopes)-1]
}

func (g *generator) run(m *ast.Module) {
	g.loadBuiltins(m)
	g.push(m.InnerScope)
	for _, d := range m.Decls {
		g.genDecl(d)
	}
	g.pop()
}

// loadBuiltins resolves the names spec.md §6 requires directly into their
// underlying types, peeling off the Metatype wrapper every type identifier
// carries, so literal constraints can equate against the bare type.
func (g *generator) loadBuiltins(m *ast.Module) {
	for _, name := range []string{"Int", "Bool", "Float", "String", "Nothing", "Anything"} {
		syms := m.Builtins.Lookup(name)
		if len(syms) == 0 {
			continue
		}
		if mt, ok := syms[0].Type.Type.(*types.Metatype); ok {
			g.builtins[name] = mt.Of
		}
	}
}

func (g *generator) builtin(name string) types.Type {
	if t, ok := g.builtins[name]; ok {
		return t
	}
	return types.ErrorType
}

// --- declarations ---

func (g *generator) genDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FunDecl:
		g.genFunDecl(n)
	case *ast.PropDecl:
		g.genPropDecl(n)
	case *ast.StructDecl:
		g.genStructDecl(n)
	case *ast.UnionDecl:
		g.genUnionDecl(n)
	case *ast.InterfaceDecl:
		g.genInterfaceDecl(n)
	case *ast.TypeExtDecl:
		for _, m := range n.Methods {
			g.genFunDecl(m)
		}
	case *ast.ParamDecl:
		g.genParamDecl(n)
	}
}

func (g *generator) genFunDecl(d *ast.FunDecl) {
	g.push(d.InnerScope)
	defer g.pop()

	params := make([]types.FunctionParam, 0, len(d.Params))
	for _, p := range d.Params {
		g.genParamDecl(p)
		params = append(params, types.FunctionParam{Label: p.Label, Type: p.QualType})
	}

	var codomain *types.QualifiedType
	if d.Codomain != nil {
		codomain = g.sigToQualified(d.Codomain)
	} else {
		codomain = types.Unqualified(g.builtin("Nothing"))
	}

	placeholders := make([]types.TypePlaceholder, 0, len(d.Placeholders))
	for _, ph := range d.Placeholders {
		placeholders = append(placeholders, types.TypePlaceholder{Name: ph})
	}

	fn := &types.FunctionType{Placeholders: placeholders, Params: params, Codomain: codomain}
	d.QualType = types.Unqualified(fn)

	if sym := d.Symbol; sym != nil {
		g.emit(equalityConstraint(d.Range, sym.Type.Type, fn))
	}

	if d.Body != nil {
		g.genBraceStmt(d.Body)
	}
}

func (g *generator) genParamDecl(p *ast.ParamDecl) {
	if p.Signature != nil {
		p.QualType = g.sigToQualified(p.Signature)
		if sym := p.Symbol; sym != nil {
			g.emit(equalityConstraint(p.Range, sym.Type.Type, p.QualType.Type))
		}
	} else {
		p.QualType = types.Unqualified(g.ctx.Fresh())
	}
	if p.Default != nil {
		g.genExpr(p.Default)
		g.emit(conformanceConstraint(p.Range, p.Default.Type().Type, p.QualType.Type))
	}
}

func (g *generator) genPropDecl(p *ast.PropDecl) {
	var declaredQ *types.QualifiedType
	if p.Signature != nil {
		declaredQ = g.sigToQualified(p.Signature)
	} else {
		declaredQ = types.Unqualified(g.ctx.Fresh())
	}
	declared := declaredQ.Type
	p.QualType = declaredQ
	if sym := p.Symbol; sym != nil {
		g.emit(equalityConstraint(p.Range, sym.Type.Type, declared))
	}

	if p.HasInit && p.Init != nil {
		g.genExpr(p.Init)
		if p.Signature != nil {
			g.emit(conformanceConstraint(p.Range, p.Init.Type().Type, declared))
		} else {
			g.emit(equalityConstraint(p.Range, p.Init.Type().Type, declared))
		}
	}
}

func (g *generator) genStructDecl(d *ast.StructDecl) {
	g.push(d.InnerScope)
	defer g.pop()

	props := make([]types.StructField, 0, len(d.Properties))
	for _, p := range d.Properties {
		g.genPropDecl(p)
		props = append(props, types.StructField{Name: p.Name, Type: p.QualType})
	}
	methods := make(map[string][]*types.FunctionType)
	order := make([]string, 0, len(d.Methods))
	for _, m := range d.Methods {
		g.genFunDecl(m)
		fn, _ := m.QualType.Type.(*types.FunctionType)
		if _, ok := methods[m.Name]; !ok {
			order = append(order, m.Name)
		}
		methods[m.Name] = append(methods[m.Name], fn)
	}

	placeholders := make([]types.TypePlaceholder, 0, len(d.Placeholders))
	for _, ph := range d.Placeholders {
		placeholders = append(placeholders, types.TypePlaceholder{Name: ph})
	}

	st := &types.StructType{Name: d.Name, Placeholders: placeholders, Properties: props, Methods: methods, MethodOrder: order}
	alias := types.NewAlias(d.Name, st)
	d.QualType = types.Unqualified(&types.Metatype{Of: alias})

	if sym := d.Symbol; sym != nil {
		if mt, ok := sym.Type.Type.(*types.Metatype); ok {
			if existingAlias, ok := mt.Of.(*types.TypeAlias); ok {
				g.emit(equalityConstraint(d.Range, existingAlias.Underlying, st))
			}
		}
	}
}

func (g *generator) genUnionDecl(d *ast.UnionDecl) {
	g.push(d.InnerScope)
	defer g.pop()

	members := make([]types.Type, 0, len(d.Cases))
	for _, c := range d.Cases {
		payload := make([]types.StructField, 0, len(c.Payload))
		for i, sig := range c.Payload {
			payload = append(payload, types.StructField{
				Name: casePayloadLabel(i),
				Type: g.sigToQualified(sig),
			})
		}
		members = append(members, &types.StructType{Name: c.Name, Properties: payload})
	}
	u := &types.UnionType{Name: d.Name, Members: members}
	alias := types.NewAlias(d.Name, u)
	d.QualType = types.Unqualified(&types.Metatype{Of: alias})

	if sym := d.Symbol; sym != nil {
		if mt, ok := sym.Type.Type.(*types.Metatype); ok {
			if existingAlias, ok := mt.Of.(*types.TypeAlias); ok {
				g.emit(equalityConstraint(d.Range, existingAlias.Underlying, u))
			}
		}
	}
}

func casePayloadLabel(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}
	return "_"
}

func (g *generator) genInterfaceDecl(d *ast.InterfaceDecl) {
	g.push(d.InnerScope)
	defer g.pop()

	members := make(map[string]*types.QualifiedType, len(d.Methods))
	for _, m := range d.Methods {
		g.push(m.InnerScope)
		params := make([]types.FunctionParam, 0, len(m.Params))
		for _, p := range m.Params {
			g.genParamDecl(p)
			params = append(params, types.FunctionParam{Label: p.Label, Type: p.QualType})
		}
		var codomain *types.QualifiedType
		if m.Codomain != nil {
			codomain = g.sigToQualified(m.Codomain)
		} else {
			codomain = types.Unqualified(g.builtin("Nothing"))
		}
		g.pop()
		fn := &types.FunctionType{Params: params, Codomain: codomain}
		m.QualType = types.Unqualified(fn)
		members[m.Name] = m.QualType
	}
	iface := &types.InterfaceType{Name: d.Name, Members: members}
	alias := types.NewAlias(d.Name, iface)
	d.QualType = types.Unqualified(&types.Metatype{Of: alias})

	if sym := d.Symbol; sym != nil {
		if mt, ok := sym.Type.Type.(*types.Metatype); ok {
			if existingAlias, ok := mt.Of.(*types.TypeAlias); ok {
				g.emit(equalityConstraint(d.Range, existingAlias.Underlying, iface))
			}
		}
	}
}

// --- statements ---

func (g *generator) genBraceStmt(b *ast.BraceStmt) {
	g.push(b.InnerScope)
	defer g.pop()
	for _, s := range b.Stmts {
		g.genStmt(s)
	}
}

func (g *generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.PropDecl:
		g.genPropDecl(n)
	case *ast.BindingStmt:
		g.genExpr(n.RValue)
		if id, ok := n.LValue.(*ast.Ident); ok {
			g.genIdentLValue(id)
		} else {
			g.genExpr(n.LValue)
		}
		g.emit(conformanceConstraint(n.Range, n.RValue.Type().Type, n.LValue.Type().Type))
	case *ast.ReturnStmt:
		if n.Value != nil {
			g.genExpr(n.Value)
		}
	case *ast.IfStmt:
		g.genExpr(n.Condition)
		g.emit(equalityConstraint(n.Range, n.Condition.Type().Type, g.builtin("Bool")))
		g.genBraceStmt(n.Then)
		if n.Else != nil {
			g.genStmt(n.Else)
		}
	case *ast.WhileStmt:
		g.genExpr(n.Condition)
		g.emit(equalityConstraint(n.Range, n.Condition.Type().Type, g.builtin("Bool")))
		g.genBraceStmt(n.Body)
	case *ast.BraceStmt:
		g.genBraceStmt(n)
	}
}

// genIdentLValue handles an lvalue identifier the same as any other Ident
// use (it must already have been declared; this is not a PropDecl).
func (g *generator) genIdentLValue(id *ast.Ident) {
	g.genExpr(id)
}

// --- expressions ---

func (g *generator) genExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		g.genIdent(n)
	case *ast.SelectExpr:
		g.genSelectExpr(n)
	case *ast.ImplicitSelectExpr:
		n.SetType(types.Unqualified(g.ctx.Fresh()))
	case *ast.CallExpr:
		g.genCallExpr(n)
	case *ast.BoolLit:
		n.SetType(types.Unqualified(g.builtin("Bool")))
	case *ast.IntLit:
		n.SetType(types.Unqualified(g.builtin("Int")))
	case *ast.FloatLit:
		n.SetType(types.Unqualified(g.builtin("Float")))
	case *ast.StringLit:
		n.SetType(types.Unqualified(g.builtin("String")))
	case *ast.InfixExpr:
		g.genExpr(n.Left)
		g.genExpr(n.Right)
		n.SetType(types.Unqualified(g.ctx.Fresh()))
	case *ast.PrefixExpr:
		g.genExpr(n.Operand)
		n.SetType(types.Unqualified(g.ctx.Fresh()))
	case *ast.ParenExpr:
		g.genExpr(n.Inner)
		n.SetType(n.Inner.Type())
	case *ast.LambdaExpr:
		g.genLambdaExpr(n)
	case *ast.ArrayLit:
		elemType := g.ctx.Fresh()
		for _, el := range n.Elements {
			g.genExpr(el)
			g.emit(conformanceConstraint(el.Pos(), el.Type().Type, elemType))
		}
		n.SetType(types.Unqualified(elemType))
	case *ast.SetLit:
		elemType := g.ctx.Fresh()
		for _, el := range n.Elements {
			g.genExpr(el)
			g.emit(conformanceConstraint(el.Pos(), el.Type().Type, elemType))
		}
		n.SetType(types.Unqualified(elemType))
	case *ast.MapLit:
		keyType, valType := g.ctx.Fresh(), g.ctx.Fresh()
		for _, entry := range n.Entries {
			g.genExpr(entry.Key)
			g.genExpr(entry.Value)
			g.emit(conformanceConstraint(entry.Key.Pos(), entry.Key.Type().Type, keyType))
			g.emit(conformanceConstraint(entry.Value.Pos(), entry.Value.Type().Type, valType))
		}
		n.SetType(types.Unqualified(valType))
	case *ast.UnsafeCastExpr:
		g.genExpr(n.Value)
		n.SetType(g.sigToQualified(n.Target))
	}
}

func (g *generator) genIdent(id *ast.Ident) {
	fresh := g.ctx.Fresh()
	id.SetType(types.Unqualified(fresh))
	if id.ResolvedScope == nil {
		id.SetType(types.Unqualified(types.ErrorType))
		return
	}
	syms := id.ResolvedScope.Lookup(id.Name)
	switch len(syms) {
	case 0:
		// undefined; binder already reported this
	case 1:
		g.emit(equalityConstraint(id.Range, fresh, syms[0].Type.Type))
	default:
		g.emit(disjunctionConstraint(id.Range, id.Name, overloadEquality(id.Range, fresh, syms)))
	}
}

func (g *generator) genSelectExpr(s *ast.SelectExpr) {
	g.genExpr(s.Owner)
	ownee := g.ctx.Fresh()
	s.Ownee.SetType(types.Unqualified(ownee))
	s.SetType(types.Unqualified(ownee))
	g.emit(membershipConstraint(s.Range, describeExpr(s.Owner), s.Ownee.Name, ownee, s.Owner.Type().Type))
}

func (g *generator) genCallExpr(c *ast.CallExpr) {
	g.genExpr(c.Callee)
	result := g.ctx.Fresh()
	params := make([]types.FunctionParam, 0, len(c.Arguments))
	for _, a := range c.Arguments {
		g.genExpr(a.Value)
		params = append(params, types.FunctionParam{Label: a.Label, Type: a.Value.Type()})
	}
	provisional := &types.FunctionType{Params: params, Codomain: types.Unqualified(result)}

	if g.calleeIsGeneric(c.Callee) {
		g.emit(specializationConstraint(c.Range, provisional, c.Callee.Type().Type))
	} else {
		g.emit(equalityConstraint(c.Range, c.Callee.Type().Type, provisional))
	}
	c.SetType(types.Unqualified(result))
}

// calleeIsGeneric reports whether callee is a bare reference to a single,
// non-overloaded generic function symbol — the one shape spec.md §4.5's
// specialization constraint applies to. Anything else (overloaded or
// non-generic) is handled by plain equality instead.
func (g *generator) calleeIsGeneric(callee ast.Expr) bool {
	id, ok := callee.(*ast.Ident)
	if !ok || id.ResolvedScope == nil {
		return false
	}
	syms := id.ResolvedScope.Lookup(id.Name)
	return len(syms) == 1 && syms[0].Generic
}

func (g *generator) genLambdaExpr(lam *ast.LambdaExpr) {
	g.push(lam.InnerScope)
	defer g.pop()

	params := make([]types.FunctionParam, 0, len(lam.Params))
	for _, p := range lam.Params {
		g.genParamDecl(p)
		params = append(params, types.FunctionParam{Label: p.Label, Type: p.QualType})
	}
	var codomain *types.QualifiedType
	if lam.Codomain != nil {
		codomain = g.sigToQualified(lam.Codomain)
	} else {
		codomain = types.Unqualified(g.ctx.Fresh())
	}
	g.genBraceStmt(lam.Body)
	fn := &types.FunctionType{Params: params, Codomain: codomain}
	lam.SetType(types.Unqualified(fn))
}

func describeExpr(e ast.Expr) string {
	if id, ok := e.(*ast.Ident); ok {
		return id.Name
	}
	return "<expr>"
}
