// Package builtin is a reference implementation of the "pre-populated root
// scope" the core's contract describes (spec.md §6, SPEC_FULL.md §6): the
// core itself never imports this package, it only ever receives the
// resulting *scope.Scope from whoever embeds it (a driver, a test, a CLI).
//
// The builtin kind set is loaded from builtins.yaml rather than hard-coded,
// so the fixture can grow (or be swapped for a different one entirely,
// e.g. in a test) without touching Go source.
package builtin

import (
	_ "embed"

	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/anzen-lang/anzen/internal/scope"
	"github.com/anzen-lang/anzen/internal/types"
)

//go:embed builtins.yaml
var fixture []byte

// manifest mirrors builtins.yaml's shape.
type manifest struct {
	Kinds []struct {
		Name string `yaml:"name"`
	} `yaml:"kinds"`
}

// Load parses builtins.yaml and builds the root scope: one symbol per
// builtin kind, each a Metatype wrapping a TypeAlias around an empty
// StructType (SPEC_FULL.md §6: "each a StructType wrapped in a
// TypeAlias"). It also returns the types.Builtins contract struct so
// callers that need direct identity comparison (rather than a scope
// lookup) don't have to re-walk the scope themselves.
func Load() (*scope.Scope, *types.Builtins, error) {
	var m manifest
	if err := yaml.Unmarshal(fixture, &m); err != nil {
		return nil, nil, fmt.Errorf("builtin: parsing builtins.yaml: %w", err)
	}

	root := scope.New("", nil)
	aliases := make(map[string]*types.TypeAlias, len(m.Kinds))

	for _, k := range m.Kinds {
		underlying := &types.StructType{Name: k.Name}
		alias := types.NewAlias(k.Name, underlying)
		aliases[k.Name] = alias

		sym := &scope.Symbol{
			Name: k.Name,
			Type: types.Unqualified(&types.Metatype{Of: alias}),
		}
		root.Add(sym)
	}

	b := &types.Builtins{}
	assign := func(name string, dst *types.Type) {
		if alias, ok := aliases[name]; ok {
			*dst = alias
		}
	}
	assign("Int", &b.Int)
	assign("Bool", &b.Bool)
	assign("Float", &b.Float)
	assign("String", &b.String)
	assign("Nothing", &b.Nothing)
	assign("Anything", &b.Anything)

	return root, b, nil
}
