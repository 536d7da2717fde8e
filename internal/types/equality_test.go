package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualsSelfReferentialStruct(t *testing.T) {
	// I7: "struct Pair { let a: Int; let b: Pair }" compares equal to
	// itself, and two independently-built instances of the same shape
	// compare equal too — equality must terminate on the cycle rather than
	// recurse forever.
	intType := &StructType{Name: "Int"}

	build := func() *StructType {
		pair := &StructType{Name: "Pair"}
		pair.Properties = []StructField{
			{Name: "a", Type: Unqualified(intType)},
			{Name: "b", Type: Unqualified(pair)},
		}
		return pair
	}

	a, b := build(), build()
	assert.True(t, Equals(a, a), "a struct must compare equal to itself")
	assert.True(t, Equals(a, b), "two structurally identical self-referential structs must compare equal")
	assert.True(t, Equals(b, a), "I3: equality is symmetric")
}

func TestEqualsSelfReferentialStructDiverges(t *testing.T) {
	pair := &StructType{Name: "Pair"}
	pair.Properties = []StructField{{Name: "b", Type: Unqualified(pair)}}

	other := &StructType{Name: "Pair"}
	other.Properties = []StructField{{Name: "b", Type: Unqualified(&StructType{Name: "Other"})}}

	assert.False(t, Equals(pair, other), "cycles must not mask a genuine structural mismatch")
}

func TestEqualsSymmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b Type
	}{
		{"builtins", &TypeAlias{Name: "Int", Underlying: &StructType{Name: "Int"}}, &TypeAlias{Name: "Int", Underlying: &StructType{Name: "Int"}}},
		{"functions", &FunctionType{Params: []FunctionParam{{Type: Unqualified(&StructType{Name: "Int"})}}, Codomain: Unqualified(&StructType{Name: "Bool"})},
			&FunctionType{Params: []FunctionParam{{Type: Unqualified(&StructType{Name: "Int"})}}, Codomain: Unqualified(&StructType{Name: "Bool"})}},
		{"mismatch", &StructType{Name: "Int"}, &StructType{Name: "Bool"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, Equals(c.a, c.b), Equals(c.b, c.a))
		})
	}
}

func TestQualifiedEquals(t *testing.T) {
	intType := &StructType{Name: "Int"}
	a := NewQualified(intType, QualSet(Cst))
	b := NewQualified(intType, QualSet(Cst))
	c := NewQualified(intType, QualSet(Mut))

	assert.True(t, QualifiedEquals(a, b))
	assert.False(t, QualifiedEquals(a, c), "differing qualifier sets must not compare equal even over the same underlying type")
}

func TestErrorTypeIdentity(t *testing.T) {
	assert.True(t, IsErrorType(ErrorType))
	assert.False(t, IsErrorType(&StructType{Name: "Int"}))
}
