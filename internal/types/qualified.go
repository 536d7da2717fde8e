package types

import "strings"

// Qualifier is one of the two binding qualifiers a type may carry.
type Qualifier int

const (
	Cst Qualifier = 1 << iota
	Mut
)

// QualSet is a set of qualifiers, represented as a small bitset. The empty
// set is a legal intermediate inference state (spec.md §3.3): it unifies
// with any other qualifier set.
type QualSet uint8

// Has reports whether q contains the given qualifier.
func (q QualSet) Has(f Qualifier) bool { return QualSet(f)&q != 0 }

// Valid reports whether q is a legal qualifier set: it must not contain both
// Cst and Mut simultaneously.
func (q QualSet) Valid() bool {
	return !(q.Has(Cst) && q.Has(Mut))
}

// Empty reports whether q carries no qualifiers.
func (q QualSet) Empty() bool { return q == 0 }

// Union returns the set union of q and other.
func (q QualSet) Union(other QualSet) QualSet { return q | other }

// String renders the qualifier set as `@cst @mut`-style annotations.
func (q QualSet) String() string {
	var parts []string
	if q.Has(Cst) {
		parts = append(parts, "@cst")
	}
	if q.Has(Mut) {
		parts = append(parts, "@mut")
	}
	return strings.Join(parts, " ")
}

// QualifiedType pairs a qualifier set with a semantic type (spec.md §3.3).
type QualifiedType struct {
	Quals QualSet
	Type  Type
}

// NewQualified builds a qualified type with the given qualifiers.
func NewQualified(t Type, quals QualSet) *QualifiedType {
	return &QualifiedType{Quals: quals, Type: t}
}

// Unqualified builds a qualified type with an empty qualifier set — the
// legal intermediate state before any qualifier has been determined.
func Unqualified(t Type) *QualifiedType {
	return &QualifiedType{Type: t}
}

func (qt *QualifiedType) String() string {
	if qt == nil {
		return "<nil>"
	}
	if qt.Quals.Empty() {
		return qt.Type.String()
	}
	return qt.Quals.String() + " " + qt.Type.String()
}
