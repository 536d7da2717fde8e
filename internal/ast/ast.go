// Package ast defines the abstract syntax tree the semantic analyzer consumes.
//
// The parser that produces this tree is out of scope for this module (see
// spec.md's external-collaborators list); this package is the stand-in data
// model the five analysis passes read and mutate. Every node carries an
// opaque Range; nothing about line/column semantics beyond identity and
// comparison is required downstream.
package ast

import (
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

// Position is an opaque point in source text. The core never inspects its
// fields beyond passing them through to diagnostics.
type Position struct {
	Line   int
	Column int
}

// Range is the opaque source range every AST node carries.
type Range struct {
	Start Position
	End   Position
}

// Node is the root interface implemented by every AST node.
type Node interface {
	Pos() Range
	Accept(v Visitor) Signal
}

// Decl is a declaration node (function, parameter, property, struct, union,
// union case, interface, or type extension). Generic placeholders are not
// nodes: declarations list them by name.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node. Every Expr carries a settable qualified type,
// written by the constraint generator (fresh variable) and refined by the
// solver and type assigner.
type Expr interface {
	Node
	exprNode()
	Type() *types.QualifiedType
	SetType(*types.QualifiedType)
}

// TypeSig is a type-signature node (an annotation written by the programmer,
// e.g. `Int`, `@mut Int`, `(Int, Bool) -> Int`). The constraint generator
// reads these to build semantic types; it never mutates them.
type TypeSig interface {
	Node
	typeSigNode()
}

// exprBase is embedded by every Expr implementation to provide the Type /
// SetType bookkeeping once.
type exprBase struct {
	qualType *types.QualifiedType
}

func (e *exprBase) Type() *types.QualifiedType     { return e.qualType }
func (e *exprBase) SetType(t *types.QualifiedType) { e.qualType = t }

// scopedBase is embedded by nodes that carry a back-pointer to the scope
// that defines them (set by the symbol extractor or the scope binder).
type scopedBase struct {
	DefiningScope *scope.Scope
}

// scopeOwnerBase is embedded by nodes that open a lexical scope of their own.
type scopeOwnerBase struct {
	InnerScope *scope.Scope
}

// BindOp is one of the three binding operators.
type BindOp int

const (
	BindCopy BindOp = iota // :=
	BindRef                // &-
	BindMove               // <-
)

func (b BindOp) String() string {
	switch b {
	case BindCopy:
		return ":="
	case BindRef:
		return "&-"
	case BindMove:
		return "<-"
	default:
		return "?"
	}
}

// FunKind distinguishes the four flavors of callable declaration.
type FunKind int

const (
	FunKindRegular FunKind = iota
	FunKindMethod
	FunKindConstructor
	FunKindDestructor
)

// ModuleState tracks where a Module sits in the five-pass pipeline (spec.md
// §4.8). Passes refuse to run unless the module is at exactly state-1.
type ModuleState int

const (
	StateParsed ModuleState = iota
	StateSymbolsExtracted
	StateScopesBound
	StateConstraintsGenerated
	StateTyped
	StateErrored
)

func (s ModuleState) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateSymbolsExtracted:
		return "symbolsExtracted"
	case StateScopesBound:
		return "scopesBound"
	case StateConstraintsGenerated:
		return "constraintsGenerated"
	case StateTyped:
		return "typed"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Signal is the traversal control value a Visitor returns from each Visit
// call: continue walking the node's children, or stop this subtree.
type Signal int

const (
	SignalContinue Signal = iota
	SignalStop
)

// Module is the root node of a compilation unit. It owns the module scope
// (parent: the built-in scope passed in from outside the core) and tracks
// its own processing state.
type Module struct {
	Range Range
	Name  string
	Decls []Decl

	scopeOwnerBase
	State    ModuleState
	Builtins *scope.Scope // parent of InnerScope; supplied by the driver
}

func (m *Module) Pos() Range         { return m.Range }
func (m *Module) Accept(v Visitor) Signal { return v.VisitModule(m) }
func (m *Module) walkChildren(v Visitor) {
	for _, d := range m.Decls {
		Walk(v, d)
	}
}

// Block is a brace-delimited sequence of statements that opens its own
// lexical scope (distinct from a BraceStmt, which is the statement wrapper
// for function and lambda bodies and if/while arms). No other node in this
// package holds a Block.
type Block struct {
	Range Range
	Stmts []Stmt

	scopeOwnerBase
}

func (b *Block) Pos() Range         { return b.Range }
func (b *Block) Accept(v Visitor) Signal { return v.VisitBlock(b) }
func (b *Block) walkChildren(v Visitor) {
	for _, s := range b.Stmts {
		Walk(v, s)
	}
}
