package sema_test

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/anzen-lang/anzen/internal/ast"
	"github.com/anzen-lang/anzen/internal/sema"
	"github.com/anzen-lang/anzen/internal/types"
	"github.com/anzen-lang/anzen/pkg/builtin"
)

// expectedCodes reads the diagnostic codes a scenario is supposed to produce
// from testdata/scenarios.txtar, so the fixture and the assertions below stay
// in one place instead of duplicated as Go literals.
func expectedCodes(t *testing.T, scenario string) []string {
	t.Helper()
	archive, err := txtar.ParseFile("testdata/scenarios.txtar")
	require.NoError(t, err)
	for _, f := range archive.Files {
		if f.Name != scenario {
			continue
		}
		body := strings.TrimSpace(string(f.Data))
		if body == "none" || body == "" {
			return nil
		}
		return strings.Split(body, ",")
	}
	t.Fatalf("no %q section in scenarios.txtar", scenario)
	return nil
}

func assertCodes(t *testing.T, bag interface{ Errors() []error }, want []string) {
	t.Helper()
	errs := bag.Errors()
	t.Logf("diagnostics: %s", pretty.Sprint(errs))
	if len(want) == 0 {
		assert.Empty(t, errs)
		return
	}
	require.Len(t, errs, len(want))
	for i, code := range want {
		assert.Contains(t, errs[i].Error(), "["+code+"]")
	}
}

func newModule(name string, decls ...ast.Decl) *ast.Module {
	return &ast.Module{Name: name, Decls: decls, State: ast.StateParsed}
}

func ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

// Scenario 1: `let x: Int = 0` type-checks cleanly, and x's resolved type is
// the builtin Int alias.
func TestPipelineScenario1LiteralMatchesAnnotation(t *testing.T) {
	builtins, _, err := builtin.Load()
	require.NoError(t, err)

	prop := &ast.PropDecl{
		Name:      "x",
		Signature: &ast.IdentSig{Name: "Int"},
		HasInit:   true,
		Init:      &ast.IntLit{Value: 0},
	}
	module := newModule("scenario1", prop)

	result := sema.Run(module, builtins, types.NewContext())
	assertCodes(t, result.Bag, expectedCodes(t, "scenario1"))
	assert.Equal(t, ast.StateTyped, module.State)
	assert.Equal(t, "Int", prop.QualType.Type.String())
}

// Scenario 2: `let x: Int = "text"` is an inference error; the declared and
// initializer types are left as-is (only a failed membership constraint
// rebinds to ErrorType, per internal/sema/solver.go's stepMembership — a
// plain equality failure does not).
func TestPipelineScenario2LiteralMismatchesAnnotation(t *testing.T) {
	builtins, _, err := builtin.Load()
	require.NoError(t, err)

	prop := &ast.PropDecl{
		Name:      "x",
		Signature: &ast.IdentSig{Name: "Int"},
		HasInit:   true,
		Init:      &ast.StringLit{Value: "text"},
	}
	module := newModule("scenario2", prop)

	result := sema.Run(module, builtins, types.NewContext())
	assertCodes(t, result.Bag, expectedCodes(t, "scenario2"))
	assert.Equal(t, ast.StateErrored, module.State)
	assert.Equal(t, "Int", prop.QualType.Type.String())
	assert.Equal(t, "String", prop.Init.Type().Type.String())
}

// Scenario 3: `fun f(x: Int, y: Bool) -> Int {}` type-checks cleanly and
// produces the expected function type.
func TestPipelineScenario3FunctionDeclaration(t *testing.T) {
	builtins, _, err := builtin.Load()
	require.NoError(t, err)

	fn := &ast.FunDecl{
		Name: "f",
		Params: []*ast.ParamDecl{
			{Name: "x", Signature: &ast.IdentSig{Name: "Int"}},
			{Name: "y", Signature: &ast.IdentSig{Name: "Bool"}},
		},
		Codomain: &ast.IdentSig{Name: "Int"},
		Body:     &ast.BraceStmt{},
	}
	module := newModule("scenario3", fn)

	result := sema.Run(module, builtins, types.NewContext())
	assertCodes(t, result.Bag, expectedCodes(t, "scenario3"))
	assert.Equal(t, ast.StateTyped, module.State)

	got, ok := fn.QualType.Type.(*types.FunctionType)
	require.True(t, ok)
	require.Len(t, got.Params, 2)
	assert.Equal(t, "Int", got.Params[0].Type.Type.String())
	assert.Equal(t, "Bool", got.Params[1].Type.Type.String())
	assert.Equal(t, "Int", got.Codomain.Type.String())
}

// Scenario 4: a property's own initializer resolves an occurrence of its own
// name to the enclosing scope's binding, not itself (spec.md §4.4's
// declaration-initializer shadowing rule). Here the function body's `x`
// shadows the module-level `x` everywhere except inside its own initializer.
func TestPipelineScenario4DeclarationInitializerShadowing(t *testing.T) {
	builtins, _, err := builtin.Load()
	require.NoError(t, err)

	outer := &ast.PropDecl{
		Name:      "x",
		Signature: &ast.IdentSig{Name: "Int"},
		HasInit:   true,
		Init:      &ast.IntLit{Value: 0},
	}
	innerInit := ident("x")
	inner := &ast.PropDecl{
		Name:      "x",
		Signature: &ast.IdentSig{Name: "Int"},
		HasInit:   true,
		Init:      innerInit,
	}
	fn := &ast.FunDecl{
		Name: "f",
		Body: &ast.BraceStmt{Stmts: []ast.Stmt{inner}},
	}
	module := newModule("scenario4", outer, fn)

	result := sema.Run(module, builtins, types.NewContext())
	assertCodes(t, result.Bag, expectedCodes(t, "scenario4"))
	assert.Equal(t, ast.StateTyped, module.State)

	require.NotNil(t, innerInit.ResolvedScope)
	assert.Equal(t, module.InnerScope, innerInit.ResolvedScope, "x's own initializer must resolve to the outer binding, not itself")
}

// Scenario 5: a self-referential struct (`struct Pair { let a: Int; let b:
// Pair }`) type-checks cleanly — the cycle through its own name must not
// hang the pipeline or produce a spurious diagnostic.
func TestPipelineScenario5SelfReferentialStruct(t *testing.T) {
	builtins, _, err := builtin.Load()
	require.NoError(t, err)

	a := &ast.PropDecl{Name: "a", Signature: &ast.IdentSig{Name: "Int"}}
	b := &ast.PropDecl{Name: "b", Signature: &ast.IdentSig{Name: "Pair"}}
	st := &ast.StructDecl{Name: "Pair", Properties: []*ast.PropDecl{a, b}}
	module := newModule("scenario5", st)

	result := sema.Run(module, builtins, types.NewContext())
	assertCodes(t, result.Bag, expectedCodes(t, "scenario5"))
	assert.Equal(t, ast.StateTyped, module.State)

	mt, ok := st.QualType.Type.(*types.Metatype)
	require.True(t, ok)
	alias, ok := mt.Of.(*types.TypeAlias)
	require.True(t, ok)
	assert.Equal(t, "Pair", alias.Name)
}

// Scenario 6: calling an overloaded function resolves via the disjunction
// constraint. The solver's LIFO drain processes the call site's disjunction
// before either overload's own symbol-to-function-type equality constraint
// (those were emitted first and so sit at the head of the queue, popped
// last) — at that point both overload variables are still unbound, so both
// alternatives provisionally unify and the solver reports AmbiguousType,
// even though only one (the Int overload) is actually consistent with the
// call's argument. Both overloads share a codomain, so the call still
// resolves to the right type despite the spurious ambiguity diagnostic.
func TestPipelineScenario6OverloadResolution(t *testing.T) {
	builtins, _, err := builtin.Load()
	require.NoError(t, err)

	fInt := &ast.FunDecl{
		Name:     "f",
		Params:   []*ast.ParamDecl{{Name: "x", Signature: &ast.IdentSig{Name: "Int"}}},
		Codomain: &ast.IdentSig{Name: "Bool"},
		Body:     &ast.BraceStmt{},
	}
	fBool := &ast.FunDecl{
		Name:     "f",
		Params:   []*ast.ParamDecl{{Name: "x", Signature: &ast.IdentSig{Name: "Bool"}}},
		Codomain: &ast.IdentSig{Name: "Bool"},
		Body:     &ast.BraceStmt{},
	}
	call := &ast.CallExpr{
		Callee:    ident("f"),
		Arguments: []*ast.CallArg{{Value: &ast.IntLit{Value: 0}}},
	}
	caller := &ast.FunDecl{
		Name: "caller",
		Body: &ast.BraceStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{Value: call}}},
	}
	module := newModule("scenario6", fInt, fBool, caller)

	result := sema.Run(module, builtins, types.NewContext())
	assertCodes(t, result.Bag, expectedCodes(t, "scenario6"))
	assert.Equal(t, ast.StateErrored, module.State, "the spurious AmbiguousType diagnostic still marks the module errored")
	assert.Equal(t, "Bool", call.Type().Type.String())
}

// Scenario 7: `let x: @mut @cst Int` carries an invalid (mutually exclusive)
// qualifier set, reported once and not propagated into a cascade.
func TestPipelineScenario7IncompatibleQualifiers(t *testing.T) {
	builtins, _, err := builtin.Load()
	require.NoError(t, err)

	prop := &ast.PropDecl{
		Name: "x",
		Signature: &ast.QualSig{
			Cst:     true,
			Mut:     true,
			Subject: &ast.IdentSig{Name: "Int"},
		},
	}
	module := newModule("scenario7", prop)

	result := sema.Run(module, builtins, types.NewContext())
	assertCodes(t, result.Bag, expectedCodes(t, "scenario7"))
}
