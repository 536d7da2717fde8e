// Package scope implements Anzen's lexical scope and symbol model
// (spec.md §3.4, §4.2).
package scope

import "github.com/anzen-lang/anzen/internal/types"

// Scope is a lexical scope: an optional name, an optional parent, and a
// mapping from name to the overload set registered under that name.
// Scope equality is identity (spec.md §3.4) — two distinct *Scope values
// are never considered the same scope even with identical contents.
type Scope struct {
	Name    string
	Parent  *Scope
	symbols map[string][]*Symbol
	order   []string // insertion order, for deterministic iteration in tests/diagnostics
}

// New creates an empty scope with the given (optional) name and parent.
func New(name string, parent *Scope) *Scope {
	return &Scope{Name: name, Parent: parent, symbols: make(map[string][]*Symbol)}
}

// Lookup returns all symbols registered under name in this scope only (not
// its ancestors), or the empty slice if none.
func (s *Scope) Lookup(name string) []*Symbol {
	return s.symbols[name]
}

// FindDefining walks up the parent chain, returning the nearest scope in
// which name is defined, or nil.
func (s *Scope) FindDefining(name string) *Scope {
	for cur := s; cur != nil; cur = cur.Parent {
		if len(cur.symbols[name]) > 0 {
			return cur
		}
	}
	return nil
}

// Add appends sym to the overload set for sym.Name. The caller is
// responsible for enforcing the duplicate-declaration rules (spec.md §4.3);
// Add itself never rejects a symbol.
func (s *Scope) Add(sym *Symbol) {
	if _, ok := s.symbols[sym.Name]; !ok {
		s.order = append(s.order, sym.Name)
	}
	s.symbols[sym.Name] = append(s.symbols[sym.Name], sym)
	sym.Scope = s
}

// Names returns the names declared directly in this scope, in insertion
// order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Symbol is a named entry in a scope (spec.md §3.4): its declared type,
// whether it may be overloaded (only functions), whether it is generic, and
// (for scope-opening symbols, e.g. a struct's alias symbol) the scope it
// introduces.
type Symbol struct {
	Name          string
	Type          *types.QualifiedType
	Overloadable  bool
	Generic       bool
	InnerScope    *Scope // set for struct/union/interface symbols: their body's scope
	Scope         *Scope // the scope this symbol is registered in (set by Add)
}
