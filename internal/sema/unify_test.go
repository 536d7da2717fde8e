package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anzen-lang/anzen/internal/types"
)

func TestUnifyVariableBindsToConcrete(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	intType := &types.StructType{Name: "Int"}
	s := newSubstitution()

	assert.True(t, unify(v, intType, s))
	assert.Same(t, intType, s.walk(v))
}

func TestUnifySameVariableIsNoOp(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	s := newSubstitution()
	assert.True(t, unify(v, v, s))
}

func TestUnifyOccursCheckRejectsCycle(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	s := newSubstitution()
	fn := &types.FunctionType{Codomain: types.Unqualified(v)}
	assert.False(t, unify(v, fn, s), "binding v to a function type that contains v must fail the occurs check")
}

func TestUnifyStructsByNameAndMembers(t *testing.T) {
	s := newSubstitution()
	a := &types.StructType{Name: "Point", Properties: []types.StructField{
		{Name: "x", Type: types.Unqualified(&types.StructType{Name: "Int"})},
	}}
	b := &types.StructType{Name: "Point", Properties: []types.StructField{
		{Name: "x", Type: types.Unqualified(&types.StructType{Name: "Int"})},
	}}
	assert.True(t, unify(a, b, s))

	c := &types.StructType{Name: "Point", Properties: []types.StructField{
		{Name: "x", Type: types.Unqualified(&types.StructType{Name: "Bool"})},
	}}
	assert.False(t, unify(a, c, s))
}

func TestUnifyFunctionsMismatchedArity(t *testing.T) {
	s := newSubstitution()
	a := &types.FunctionType{
		Params:   []types.FunctionParam{{Type: types.Unqualified(&types.StructType{Name: "Int"})}},
		Codomain: types.Unqualified(&types.StructType{Name: "Bool"}),
	}
	b := &types.FunctionType{Codomain: types.Unqualified(&types.StructType{Name: "Bool"})}
	assert.False(t, unify(a, b, s))
}

func TestUnifyErrorTypeAbsorbs(t *testing.T) {
	s := newSubstitution()
	assert.True(t, unify(types.ErrorType, &types.StructType{Name: "Anything"}, s))
	assert.True(t, unify(&types.StructType{Name: "Anything"}, types.ErrorType, s))
}

func TestUnifyAliasAgainstFunctionUsesConstructor(t *testing.T) {
	s := newSubstitution()
	intType := types.Unqualified(&types.StructType{Name: "Int"})
	point := &types.StructType{Name: "Point", Properties: []types.StructField{{Name: "x", Type: intType}}}
	alias := types.NewAlias("Point", point)

	ctorCall := &types.FunctionType{
		Params:   []types.FunctionParam{{Label: "x", Type: intType}},
		Codomain: types.Unqualified(alias),
	}
	assert.True(t, unify(alias, ctorCall, s), "an alias must unify against its synthesized memberwise constructor")
}

func TestOccursInWalksThroughAliasesAndFunctions(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	s := newSubstitution()

	alias := types.NewAlias("Box", v)
	assert.True(t, occursIn(v, alias, s))

	fn := &types.FunctionType{Codomain: types.Unqualified(v)}
	assert.True(t, occursIn(v, fn, s))

	assert.False(t, occursIn(v, &types.StructType{Name: "Unrelated"}, s))
}

func TestSubstitutionCloneIsIndependent(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	s := newSubstitution()
	clone := s.clone()

	a := assert.New(t)
	a.True(clone.bind(v, &types.StructType{Name: "Int"}))
	_, boundInOriginal := s.bindings[v]
	a.False(boundInOriginal, "mutating a clone must not affect the original substitution")
}
