package aether

import (
	"testing"

	"github.com/aether-engine/aether/assert"
	"github.com/aether-engine/aether/filter"
	"github.com/aether-engine/aether/types"
)

// hookComponent reports its lifecycle transitions to test-supplied closures.
type hookComponent struct {
	onSetup    func(args ...any)
	onTeardown func()
}

func (c *hookComponent) Setup(args ...any) {
	if c.onSetup != nil {
		c.onSetup(args...)
	}
}

func (c *hookComponent) Teardown() {
	if c.onTeardown != nil {
		c.onTeardown()
	}
}

func TestAddComponentRejectsDuplicates(t *testing.T) {
	r := New()
	compA := newTagType("a")
	e := r.CreateEntity()

	c, err := e.AddComponent(compA)
	assert.NilError(t, err)
	assert.Assert(t, c != nil)
	assert.True(t, e.HasComponent(compA))

	got, ok := e.GetComponent(compA)
	assert.Assert(t, ok)
	assert.Assert(t, got == c)

	_, err = e.AddComponent(compA)
	assert.ErrorIs(t, err, ErrDuplicateComponent)
	assert.Equal(t, 1, e.ComponentCount())
}

func TestRemoveComponentRejectsMissing(t *testing.T) {
	r := New()
	compA := newTagType("a")
	never := newTagType("never-attached")
	e := r.CreateEntity()

	// Absent on this entity, registered or not.
	err := e.RemoveComponent(never)
	assert.ErrorIs(t, err, ErrComponentNotFound)

	_, err = e.AddComponent(compA)
	assert.NilError(t, err)
	assert.NilError(t, e.RemoveComponent(compA))
	err = e.RemoveComponent(compA)
	assert.ErrorIs(t, err, ErrComponentNotFound)
	assert.False(t, e.HasComponent(compA))
}

func TestAddComponentAutoRegistersType(t *testing.T) {
	r := New()
	compA := newTagType("a")

	_, registered := r.ComponentID(compA)
	assert.False(t, registered)

	e := r.CreateEntity()
	_, err := e.AddComponent(compA)
	assert.NilError(t, err)

	_, registered = r.ComponentID(compA)
	assert.True(t, registered)

	ct, ok := r.ComponentTypeByName("a")
	assert.Assert(t, ok)
	assert.Assert(t, ct == compA)
}

func TestSetupRunsAfterQueryVisibility(t *testing.T) {
	r := New()

	var visibleAtSetup bool
	var setupArgs []any
	var search *Search
	var e *Entity

	ct := types.NewComponentType("watched", func() types.Component {
		return &hookComponent{
			onSetup: func(args ...any) {
				setupArgs = args
				visibleAtSetup = search.Contains(e)
			},
		}
	})
	search = r.CreateQuery(filter.Match(ct))

	e = r.CreateEntity()
	_, err := e.AddComponent(ct, "x", 7)
	assert.NilError(t, err)

	// The attach was already reflected in the query when Setup ran.
	assert.True(t, visibleAtSetup)
	assert.DeepEqual(t, []any{"x", 7}, setupArgs)
}

func TestTeardownRunsAfterQueryReevaluation(t *testing.T) {
	r := New()

	var visibleAtTeardown bool
	var search *Search
	var e *Entity

	ct := types.NewComponentType("watched", func() types.Component {
		return &hookComponent{
			onTeardown: func() {
				visibleAtTeardown = search.Contains(e)
			},
		}
	})
	search = r.CreateQuery(filter.Match(ct))

	e = r.CreateEntity()
	_, err := e.AddComponent(ct)
	assert.NilError(t, err)
	assert.True(t, search.Contains(e))

	assert.NilError(t, e.RemoveComponent(ct))
	assert.False(t, visibleAtTeardown)
}

func TestComponentNamesFollowIDOrder(t *testing.T) {
	r := New()
	compB := newTagType("b")
	compA := newTagType("a")
	e := r.CreateEntity()

	// b attaches first, so it registers first and gets the lower id.
	_, err := e.AddComponent(compB)
	assert.NilError(t, err)
	_, err = e.AddComponent(compA)
	assert.NilError(t, err)

	assert.DeepEqual(t, []string{"b", "a"}, e.ComponentNames())
}
