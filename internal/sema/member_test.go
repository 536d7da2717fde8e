package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzen-lang/anzen/internal/types"
)

func pointType() *types.StructType {
	intType := types.Unqualified(&types.StructType{Name: "Int"})
	return &types.StructType{
		Name: "Point",
		Properties: []types.StructField{
			{Name: "x", Type: intType},
			{Name: "y", Type: intType},
		},
		Methods: map[string][]*types.FunctionType{
			"dist": {
				{Params: nil, Codomain: intType},
				{Params: []types.FunctionParam{{Label: "to", Type: types.Unqualified(&types.StructType{Name: "Point"})}}, Codomain: intType},
			},
		},
		MethodOrder: []string{"dist"},
	}
}

func TestFindMemberProperty(t *testing.T) {
	p := pointType()
	found := findMember(p, "x")
	require.Len(t, found, 1)
	assert.Equal(t, "Int", found[0].String())
}

func TestFindMemberOverloadedMethod(t *testing.T) {
	p := pointType()
	found := findMember(p, "dist")
	assert.Len(t, found, 2)
}

func TestFindMemberMissing(t *testing.T) {
	p := pointType()
	assert.Nil(t, findMember(p, "z"))
}

func TestFindMemberThroughAliasAndMetatype(t *testing.T) {
	p := pointType()
	alias := types.NewAlias("Point", p)

	found := findMember(alias, "x")
	require.Len(t, found, 1)

	foundViaMeta := findMember(types.Metatype{Of: alias}, "x")
	require.Len(t, foundViaMeta, 1)
	assert.Equal(t, found[0].String(), foundViaMeta[0].String())
}

func TestFindMemberOnTypeVariableDefers(t *testing.T) {
	ctx := types.NewContext()
	v := ctx.Fresh()
	assert.Nil(t, findMember(v, "anything"), "a member lookup on an unresolved variable must defer, not fail")
}

func TestFindMemberUnionRequiresAllCasesAgree(t *testing.T) {
	intType := types.Unqualified(&types.StructType{Name: "Int"})
	common := &types.StructType{Name: "Some", Properties: []types.StructField{{Name: "tag", Type: intType}}}
	other := &types.StructType{Name: "None", Properties: []types.StructField{{Name: "tag", Type: intType}}}
	u := &types.UnionType{Name: "Option", Members: []types.Type{common, other}}

	found := findMember(u, "tag")
	require.Len(t, found, 1)
	assert.Equal(t, "Int", found[0].String())

	mismatched := &types.StructType{Name: "None", Properties: []types.StructField{{Name: "tag", Type: types.Unqualified(&types.StructType{Name: "Bool"})}}}
	u2 := &types.UnionType{Name: "Option", Members: []types.Type{common, mismatched}}
	assert.Nil(t, findMember(u2, "tag"), "disagreeing case shapes must not expose a union-level member")
}

func TestConstructorTypeSynthesizesMemberwise(t *testing.T) {
	p := pointType()
	alias := types.NewAlias("Point", p)

	ctor := constructorType(alias)
	require.NotNil(t, ctor)
	require.Len(t, ctor.Params, 2)
	assert.Equal(t, "x", ctor.Params[0].Label)
	assert.Equal(t, "y", ctor.Params[1].Label)
	assert.Same(t, alias, ctor.Codomain.Type)
}

func TestConstructorTypeUsesExplicitNew(t *testing.T) {
	intType := types.Unqualified(&types.StructType{Name: "Int"})
	explicit := &types.FunctionType{Params: []types.FunctionParam{{Label: "n", Type: intType}}, Codomain: intType}
	st := &types.StructType{
		Name:    "Counter",
		Methods: map[string][]*types.FunctionType{"__new__": {explicit}},
	}
	alias := types.NewAlias("Counter", st)

	ctor := constructorType(alias)
	require.NotNil(t, ctor)
	assert.Same(t, explicit, ctor)
}

func TestConstructorTypeNilForNonStruct(t *testing.T) {
	alias := types.NewAlias("Flag", &types.UnionType{Name: "Flag"})
	assert.Nil(t, constructorType(alias))
}
