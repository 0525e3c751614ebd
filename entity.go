package aether

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/aether-engine/aether/types"
)

// Entity is a unique identity owning at most one component instance per
// component type. Entities are created and destroyed only through their
// registry.
type Entity struct {
	id         types.EntityID
	name       string
	registry   *Registry
	components map[types.ComponentID]types.Component
}

// ID returns the entity's id.
func (e *Entity) ID() types.EntityID { return e.id }

// Name returns the display name, or "" for anonymous entities.
func (e *Entity) Name() string { return e.name }

// AddComponent constructs an instance of ct, attaches it, re-evaluates every
// live query, and only then runs the instance's Setup hook with args. The
// attach is visible to queries before Setup runs, so a hook must not treat
// query membership as proof of full initialization.
func (e *Entity) AddComponent(ct *types.ComponentType, args ...any) (types.Component, error) {
	id := e.registry.RegisterComponent(ct)
	if _, ok := e.components[id]; ok {
		return nil, eris.Wrapf(ErrDuplicateComponent, "add %q to entity %d", ct.Name(), e.id)
	}
	c := ct.New()
	e.components[id] = c
	e.registry.updateQueries(e)
	c.Setup(args...)
	e.registry.logger.Debug().
		Uint64("entity_id", uint64(e.id)).
		Str("component", ct.Name()).
		Msg("component added")
	return c, nil
}

// HasComponent reports whether e holds an instance of ct.
func (e *Entity) HasComponent(ct *types.ComponentType) bool {
	id, ok := e.registry.componentIDs[ct]
	if !ok {
		return false
	}
	_, ok = e.components[id]
	return ok
}

// GetComponent returns e's instance of ct, if any.
func (e *Entity) GetComponent(ct *types.ComponentType) (types.Component, bool) {
	id, ok := e.registry.componentIDs[ct]
	if !ok {
		return nil, false
	}
	c, ok := e.components[id]
	return c, ok
}

// RemoveComponent detaches e's instance of ct, re-evaluates every live query,
// then runs the instance's Teardown hook.
func (e *Entity) RemoveComponent(ct *types.ComponentType) error {
	id, ok := e.registry.componentIDs[ct]
	var c types.Component
	if ok {
		c, ok = e.components[id]
	}
	if !ok {
		return eris.Wrapf(ErrComponentNotFound, "remove %q from entity %d", ct.Name(), e.id)
	}
	delete(e.components, id)
	e.registry.updateQueries(e)
	c.Teardown()
	e.registry.logger.Debug().
		Uint64("entity_id", uint64(e.id)).
		Str("component", ct.Name()).
		Msg("component removed")
	return nil
}

// ComponentCount returns the number of attached components.
func (e *Entity) ComponentCount() int { return len(e.components) }

// ComponentNames returns the names of the attached component types in
// ascending component-id order.
func (e *Entity) ComponentNames() []string {
	ids := make([]types.ComponentID, 0, len(e.components))
	for id := range e.components {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, e.registry.componentTypes[id].Name())
	}
	return names
}
