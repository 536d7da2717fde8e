package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// I5: specializing a non-generic type against an empty mapping is the
// identity (up to structural equality).
func TestSpecializeIdentityOnNonGeneric(t *testing.T) {
	intType := &StructType{Name: "Int"}
	st := &StructType{Name: "Box", Properties: []StructField{{Name: "value", Type: Unqualified(intType)}}}

	got := Specialize(st, Mapping{})
	assert.True(t, Equals(st, got))
}

func TestSpecializeSubstitutesPlaceholder(t *testing.T) {
	ph := TypePlaceholder{Name: "T"}
	box := &StructType{
		Name:         "Box",
		Placeholders: []TypePlaceholder{ph},
		Properties:   []StructField{{Name: "value", Type: Unqualified(ph)}},
	}
	intType := &StructType{Name: "Int"}

	got, ok := Specialize(box, Mapping{"T": intType}).(*StructType)
	require.True(t, ok)
	require.Len(t, got.Properties, 1)
	assert.True(t, Equals(got.Properties[0].Type.Type, intType))
}

func TestSpecializeSelfReferentialStructTerminates(t *testing.T) {
	ph := TypePlaceholder{Name: "T"}
	node := &StructType{Name: "Node", Placeholders: []TypePlaceholder{ph}}
	node.Properties = []StructField{
		{Name: "value", Type: Unqualified(ph)},
		{Name: "next", Type: Unqualified(node)},
	}
	intType := &StructType{Name: "Int"}

	got, ok := Specialize(node, Mapping{"T": intType}).(*StructType)
	require.True(t, ok)
	require.Len(t, got.Properties, 2)
	assert.True(t, Equals(got.Properties[0].Type.Type, intType))
}

func TestSpecializeAgainstBindsPlaceholder(t *testing.T) {
	ph := TypePlaceholder{Name: "T"}
	intType := &StructType{Name: "Int"}

	res := SpecializeAgainst(intType, ph, nil)
	require.True(t, res.OK)
	assert.True(t, Equals(res.Mapping["T"], intType))
}

func TestSpecializeAgainstFunctionShapes(t *testing.T) {
	ph := TypePlaceholder{Name: "T"}
	intType := &StructType{Name: "Int"}
	boolType := &StructType{Name: "Bool"}

	pattern := &FunctionType{
		Params:   []FunctionParam{{Type: Unqualified(ph)}},
		Codomain: Unqualified(boolType),
	}
	concrete := &FunctionType{
		Params:   []FunctionParam{{Type: Unqualified(intType)}},
		Codomain: Unqualified(boolType),
	}

	res := SpecializeAgainst(concrete, pattern, nil)
	require.True(t, res.OK)
	assert.True(t, Equals(res.Mapping["T"], intType))
}

func TestSpecializeAgainstFunctionArityMismatchFails(t *testing.T) {
	pattern := &FunctionType{Params: []FunctionParam{{Type: Unqualified(&StructType{Name: "Int"})}}}
	concrete := &FunctionType{}
	res := SpecializeAgainst(concrete, pattern, nil)
	assert.False(t, res.OK)
}

func TestSpecializeAgainstStructNameMismatchFails(t *testing.T) {
	pattern := &StructType{Name: "Box", Properties: []StructField{{Name: "value", Type: Unqualified(TypePlaceholder{Name: "T"})}}}
	concrete := &StructType{Name: "Other", Properties: []StructField{{Name: "value", Type: Unqualified(&StructType{Name: "Int"})}}}
	res := SpecializeAgainst(concrete, pattern, nil)
	assert.False(t, res.OK, "different struct names must not match the same pattern")
}
