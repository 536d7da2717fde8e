// Package types implements Anzen's semantic type model: the closed sum of
// type variants (spec.md §3.2), qualified types (§3.3), and the operations
// over them (equality modulo cycles, specialization/substitution, §4.1).
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface every semantic type variant implements.
type Type interface {
	String() string
	isType()
}

// Context owns the process-wide-in-spirit, but per-compilation-in-practice
// monotone type-variable counter (design notes §9: "prefer a per-compilation
// counter owned by a TypeContext object passed explicitly; do not rely on
// thread-local or module-level globals").
type Context struct {
	counter int
}

// NewContext creates a fresh, independent type-variable counter. The driver
// gives each module its own Context so concurrent module processing shares
// no mutable state (spec.md §5).
func NewContext() *Context {
	return &Context{}
}

// Fresh allocates a new, globally-unique-within-this-context type variable.
func (c *Context) Fresh() *TypeVariable {
	c.counter++
	return &TypeVariable{id: c.counter}
}

// TypeVariable is a fresh, unsolved type slot. Identity is the pointer
// itself; two distinct *TypeVariable values are never equal even if
// eventually bound to the same type.
type TypeVariable struct {
	id int
}

func (v *TypeVariable) isType() {}
func (v *TypeVariable) String() string {
	return fmt.Sprintf("t%d", v.id)
}

// ID exposes the variable's allocation-order identity, used only for
// deterministic ordering (e.g. solver diagnostics, test fixtures).
func (v *TypeVariable) ID() int { return v.id }

// TypePlaceholder is a universally-quantified generic parameter, e.g. the
// `T` in `struct Box<T> { let value: T }`.
type TypePlaceholder struct {
	Name string
}

func (p TypePlaceholder) isType()        {}
func (p TypePlaceholder) String() string { return p.Name }

// StructField pairs a property name with its qualified type; order matters
// (structs use an ordered map per spec.md §3.2) so StructType stores them in
// a slice, searched linearly by Property.
type StructField struct {
	Name string
	Type *QualifiedType
}

// Overload is one entry in a method's overload list.
type Overload struct {
	Name string
	Type *FunctionType
}

// StructType is a nominal, possibly self-referential (directly or through a
// member) aggregate type.
type StructType struct {
	Name         string
	Placeholders []TypePlaceholder
	Properties   []StructField
	Methods      map[string][]*FunctionType // ordered overload sets, keyed by method name
	MethodOrder  []string                   // insertion order of Methods keys
}

func (s *StructType) isType() {}

func (s *StructType) String() string {
	return s.Name
}

// Property looks up a property by name, returning (type, true) or (nil, false).
func (s *StructType) Property(name string) (*QualifiedType, bool) {
	for _, f := range s.Properties {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// FunctionParam is one entry in a function type's parameter list.
type FunctionParam struct {
	Label string // "" if unlabeled
	Type  *QualifiedType
}

// FunctionType is the type of a callable: an ordered parameter list plus a
// qualified codomain.
type FunctionType struct {
	Placeholders []TypePlaceholder // non-empty iff this is a generic function
	Params       []FunctionParam
	Codomain     *QualifiedType
}

func (f *FunctionType) isType() {}

func (f *FunctionType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Label != "" {
			parts[i] = fmt.Sprintf("%s: %s", p.Label, p.Type.String())
		} else {
			parts[i] = p.Type.String()
		}
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Codomain.String())
}

// UnionType is a named aggregate of case member types.
type UnionType struct {
	Name    string
	Members []Type
}

func (u *UnionType) isType()        {}
func (u *UnionType) String() string { return u.Name }

// InterfaceType is a named aggregate of required member types.
type InterfaceType struct {
	Name    string
	Members map[string]*QualifiedType
}

func (i *InterfaceType) isType()        {}
func (i *InterfaceType) String() string { return i.Name }

// TypeAlias is a name bound to an underlying type. Aliases are flattened on
// construction: NewAlias never wraps another alias, it substitutes through
// to the real underlying type (spec.md §3.2: "an alias of an alias is the
// underlying").
type TypeAlias struct {
	Name       string
	Underlying Type
}

// NewAlias builds a TypeAlias, flattening through any alias-of-alias chain.
func NewAlias(name string, underlying Type) *TypeAlias {
	for {
		if inner, ok := underlying.(*TypeAlias); ok {
			underlying = inner.Underlying
			continue
		}
		break
	}
	return &TypeAlias{Name: name, Underlying: underlying}
}

func (a *TypeAlias) isType()        {}
func (a *TypeAlias) String() string { return a.Name }

// Metatype is the type of a type expression: the identifier `Int` (used as
// an expression) has type Metatype{Of: Int}.
type Metatype struct {
	Of Type
}

func (m Metatype) isType()        {}
func (m Metatype) String() string { return fmt.Sprintf("Metatype<%s>", m.Of.String()) }

// SelfType refers to the enclosing nominal type from inside its own body.
type SelfType struct {
	Enclosing Type
}

func (s SelfType) isType()        {}
func (s SelfType) String() string { return "Self" }

// ErrorType is the sentinel produced by resolution failure. It is absorbing
// under unification (spec.md §7): any constraint mentioning it is vacuously
// satisfied, so a single root cause doesn't cascade into a wall of errors.
type errorType struct{}

func (errorType) isType()        {}
func (errorType) String() string { return "<error>" }

// ErrorType is the single shared ErrorType sentinel value.
var ErrorType Type = errorType{}

// IsErrorType reports whether t is the ErrorType sentinel.
func IsErrorType(t Type) bool {
	_, ok := t.(errorType)
	return ok
}

// --- Built-in type identities (spec.md §6) -------------------------------

// Builtins is the minimal contract the built-in scope must satisfy: these
// names are used for identity comparison when the constraint generator
// types literals (spec.md §6). The built-in scope itself is supplied
// externally (pkg/builtin is a reference fixture, not part of the core).
type Builtins struct {
	Int      Type
	Bool     Type
	Float    Type
	String   Type
	Nothing  Type
	Anything Type
}

// sortedKeys returns m's keys sorted, for iterating a map in a deterministic
// order. Nothing in this module calls it at present.
func sortedKeys(m map[string]*QualifiedType) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
