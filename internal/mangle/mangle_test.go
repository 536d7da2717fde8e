package mangle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anzen-lang/anzen/internal/mangle"
	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

func qualifiedInt() *types.QualifiedType {
	return types.Unqualified(&types.TypeAlias{Name: "Int", Underlying: &types.StructType{Name: "Int"}})
}

func qualifiedBool() *types.QualifiedType {
	return types.Unqualified(&types.TypeAlias{Name: "Bool", Underlying: &types.StructType{Name: "Bool"}})
}

// I6: distinct scope path, name, or type must always mangle to distinct
// strings.
func TestMangleInjectiveOverName(t *testing.T) {
	root := scope.New("mod", nil)
	a := mangle.Symbol(root, "foo", qualifiedInt())
	b := mangle.Symbol(root, "bar", qualifiedInt())
	assert.NotEqual(t, a, b)
}

func TestMangleInjectiveOverType(t *testing.T) {
	root := scope.New("mod", nil)
	a := mangle.Symbol(root, "foo", qualifiedInt())
	b := mangle.Symbol(root, "foo", qualifiedBool())
	assert.NotEqual(t, a, b)
}

func TestMangleInjectiveOverScopePath(t *testing.T) {
	root := scope.New("mod", nil)
	nested := scope.New("Inner", root)
	a := mangle.Symbol(root, "foo", qualifiedInt())
	b := mangle.Symbol(nested, "foo", qualifiedInt())
	assert.NotEqual(t, a, b)
}

func TestMangleInjectiveOverQualifiers(t *testing.T) {
	root := scope.New("mod", nil)
	cst := types.NewQualified(&types.TypeAlias{Name: "Int", Underlying: &types.StructType{Name: "Int"}}, types.QualSet(types.Cst))
	mut := types.NewQualified(&types.TypeAlias{Name: "Int", Underlying: &types.StructType{Name: "Int"}}, types.QualSet(types.Mut))
	a := mangle.Symbol(root, "foo", cst)
	b := mangle.Symbol(root, "foo", mut)
	assert.NotEqual(t, a, b)
}

func TestMangleDeterministic(t *testing.T) {
	root := scope.New("mod", nil)
	a := mangle.Symbol(root, "foo", qualifiedInt())
	b := mangle.Symbol(root, "foo", qualifiedInt())
	assert.Equal(t, a, b)
}

func TestMangleScopePathOrder(t *testing.T) {
	root := scope.New("", nil)
	outer := scope.New("Outer", root)
	inner := scope.New("Inner", outer)
	path := mangle.ScopePath(inner)
	assert.Equal(t, []string{"Outer", "Inner"}, path)
}

func TestMangleStructsWithAmbiguousBoundariesDontCollide(t *testing.T) {
	// A symbol "b" declared in scope "a" must not mangle to the same bytes
	// as a symbol "ab" declared one level up, both of struct type X:
	// length-prefixing each component is what prevents "a"+"b" from
	// concatenating into the same string as "ab".
	root := scope.New("", nil)
	a := scope.New("a", root)
	qt := types.Unqualified(&types.StructType{Name: "X"})
	viaNestedAB := mangle.Symbol(a, "b", qt)
	viaFlatAB := mangle.Symbol(root, "ab", qt)
	assert.NotEqual(t, viaNestedAB, viaFlatAB)
}
