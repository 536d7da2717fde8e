package ast

// Visitor is the traversal/dispatch primitive shared by all five passes
// (spec.md §4, design notes §9): one Visit method per node variant,
// returning a Signal that tells Walk whether to descend into the node's
// children. A pass that doesn't care about a given node kind embeds
// BaseVisitor and overrides only the methods it needs.
type Visitor interface {
	VisitModule(*Module) Signal
	VisitBlock(*Block) Signal
	VisitFunDecl(*FunDecl) Signal
	VisitParamDecl(*ParamDecl) Signal
	VisitPropDecl(*PropDecl) Signal
	VisitStructDecl(*StructDecl) Signal
	VisitUnionDecl(*UnionDecl) Signal
	VisitUnionTypeCaseDecl(*UnionTypeCaseDecl) Signal
	VisitInterfaceDecl(*InterfaceDecl) Signal
	VisitTypeExtDecl(*TypeExtDecl) Signal

	VisitBindingStmt(*BindingStmt) Signal
	VisitReturnStmt(*ReturnStmt) Signal
	VisitIfStmt(*IfStmt) Signal
	VisitWhileStmt(*WhileStmt) Signal
	VisitBraceStmt(*BraceStmt) Signal

	VisitIdent(*Ident) Signal
	VisitSelectExpr(*SelectExpr) Signal
	VisitImplicitSelectExpr(*ImplicitSelectExpr) Signal
	VisitCallExpr(*CallExpr) Signal
	VisitBoolLit(*BoolLit) Signal
	VisitIntLit(*IntLit) Signal
	VisitFloatLit(*FloatLit) Signal
	VisitStringLit(*StringLit) Signal
	VisitInfixExpr(*InfixExpr) Signal
	VisitPrefixExpr(*PrefixExpr) Signal
	VisitParenExpr(*ParenExpr) Signal
	VisitLambdaExpr(*LambdaExpr) Signal
	VisitArrayLit(*ArrayLit) Signal
	VisitSetLit(*SetLit) Signal
	VisitMapLit(*MapLit) Signal
	VisitUnsafeCastExpr(*UnsafeCastExpr) Signal

	VisitIdentSig(*IdentSig) Signal
	VisitQualSig(*QualSig) Signal
	VisitFunSig(*FunSig) Signal
	VisitUnionSig(*UnionSig) Signal
}

// BaseVisitor implements Visitor with every method returning SignalContinue
// and doing nothing else. Passes embed it and override only what they need.
type BaseVisitor struct{}

func (BaseVisitor) VisitModule(*Module) Signal                           { return SignalContinue }
func (BaseVisitor) VisitBlock(*Block) Signal                             { return SignalContinue }
func (BaseVisitor) VisitFunDecl(*FunDecl) Signal                         { return SignalContinue }
func (BaseVisitor) VisitParamDecl(*ParamDecl) Signal                     { return SignalContinue }
func (BaseVisitor) VisitPropDecl(*PropDecl) Signal                       { return SignalContinue }
func (BaseVisitor) VisitStructDecl(*StructDecl) Signal                   { return SignalContinue }
func (BaseVisitor) VisitUnionDecl(*UnionDecl) Signal                     { return SignalContinue }
func (BaseVisitor) VisitUnionTypeCaseDecl(*UnionTypeCaseDecl) Signal     { return SignalContinue }
func (BaseVisitor) VisitInterfaceDecl(*InterfaceDecl) Signal             { return SignalContinue }
func (BaseVisitor) VisitTypeExtDecl(*TypeExtDecl) Signal                 { return SignalContinue }
func (BaseVisitor) VisitBindingStmt(*BindingStmt) Signal                 { return SignalContinue }
func (BaseVisitor) VisitReturnStmt(*ReturnStmt) Signal                   { return SignalContinue }
func (BaseVisitor) VisitIfStmt(*IfStmt) Signal                           { return SignalContinue }
func (BaseVisitor) VisitWhileStmt(*WhileStmt) Signal                     { return SignalContinue }
func (BaseVisitor) VisitBraceStmt(*BraceStmt) Signal                     { return SignalContinue }
func (BaseVisitor) VisitIdent(*Ident) Signal                             { return SignalContinue }
func (BaseVisitor) VisitSelectExpr(*SelectExpr) Signal                   { return SignalContinue }
func (BaseVisitor) VisitImplicitSelectExpr(*ImplicitSelectExpr) Signal   { return SignalContinue }
func (BaseVisitor) VisitCallExpr(*CallExpr) Signal                       { return SignalContinue }
func (BaseVisitor) VisitBoolLit(*BoolLit) Signal                         { return SignalContinue }
func (BaseVisitor) VisitIntLit(*IntLit) Signal                           { return SignalContinue }
func (BaseVisitor) VisitFloatLit(*FloatLit) Signal                       { return SignalContinue }
func (BaseVisitor) VisitStringLit(*StringLit) Signal                     { return SignalContinue }
func (BaseVisitor) VisitInfixExpr(*InfixExpr) Signal                     { return SignalContinue }
func (BaseVisitor) VisitPrefixExpr(*PrefixExpr) Signal                   { return SignalContinue }
func (BaseVisitor) VisitParenExpr(*ParenExpr) Signal                     { return SignalContinue }
func (BaseVisitor) VisitLambdaExpr(*LambdaExpr) Signal                   { return SignalContinue }
func (BaseVisitor) VisitArrayLit(*ArrayLit) Signal                       { return SignalContinue }
func (BaseVisitor) VisitSetLit(*SetLit) Signal                           { return SignalContinue }
func (BaseVisitor) VisitMapLit(*MapLit) Signal                           { return SignalContinue }
func (BaseVisitor) VisitUnsafeCastExpr(*UnsafeCastExpr) Signal           { return SignalContinue }
func (BaseVisitor) VisitIdentSig(*IdentSig) Signal                       { return SignalContinue }
func (BaseVisitor) VisitQualSig(*QualSig) Signal                         { return SignalContinue }
func (BaseVisitor) VisitFunSig(*FunSig) Signal                           { return SignalContinue }
func (BaseVisitor) VisitUnionSig(*UnionSig) Signal                       { return SignalContinue }

// Walk dispatches n to v and, if v's Visit call returns SignalContinue,
// descends into n's children by calling Walk(v) on each of them. Every node
// kind knows its own children, so Walk itself stays a one-line dispatch;
// the actual recursion lives in each node's walkChildren method.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if n.Accept(v) == SignalStop {
		return
	}
	if wc, ok := n.(interface{ walkChildren(Visitor) }); ok {
		wc.walkChildren(v)
	}
}
