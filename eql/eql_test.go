package eql

import (
	"testing"

	"github.com/rotisserie/eris"

	"github.com/aether-engine/aether/assert"
	"github.com/aether-engine/aether/types"
)

func testResolver() (Resolver, map[string]*types.ComponentType) {
	known := map[string]*types.ComponentType{}
	for _, name := range []string{"position", "velocity", "sprite", "frozen"} {
		name := name
		known[name] = types.NewComponentType(name, func() types.Component {
			return &types.BaseComponent{}
		})
	}
	return func(name string) (*types.ComponentType, error) {
		ct, ok := known[name]
		if !ok {
			return nil, eris.Errorf("no component named %q", name)
		}
		return ct, nil
	}, known
}

func TestParseFullExpression(t *testing.T) {
	resolve, known := testResolver()

	spec, err := Parse("match(position, velocity) & one(sprite) & not(frozen)", resolve)
	assert.NilError(t, err)
	assert.False(t, spec.IsAll())
	assert.ElementsMatch(t,
		[]*types.ComponentType{known["position"], known["velocity"]},
		spec.MatchTypes())
	assert.ElementsMatch(t,
		[]*types.ComponentType{known["sprite"]},
		spec.OneTypes())
	assert.ElementsMatch(t,
		[]*types.ComponentType{known["frozen"]},
		spec.NotTypes())
}

func TestParseMergesRepeatedGroups(t *testing.T) {
	resolve, _ := testResolver()

	spec, err := Parse("match(position) & match(velocity)", resolve)
	assert.NilError(t, err)
	assert.Len(t, spec.MatchTypes(), 2)
}

func TestParseAll(t *testing.T) {
	resolve, _ := testResolver()

	spec, err := Parse("all()", resolve)
	assert.NilError(t, err)
	assert.True(t, spec.IsAll())

	// all() wins over other groups, like the explicit flag.
	spec, err = Parse("match(position) & all()", resolve)
	assert.NilError(t, err)
	assert.True(t, spec.IsAll())
}

func TestParseErrors(t *testing.T) {
	resolve, _ := testResolver()

	_, err := Parse("all(position)", resolve)
	assert.ErrorContains(t, err, "takes no parameters")

	_, err = Parse("match()", resolve)
	assert.ErrorContains(t, err, "at least one component")

	_, err = Parse("match(ghost)", resolve)
	assert.ErrorContains(t, err, "ghost")

	_, err = Parse("match(position) |", resolve)
	assert.Assert(t, err != nil)
}
