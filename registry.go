// Package aether is an entity-component-system registry: entities own
// component instances, systems declare the entity subsets they operate on as
// boolean predicates over component types, and the registry keeps every
// declared predicate's result set current as the population mutates.
package aether

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/aether-engine/aether/types"
)

// DefaultRunlevel is the runlevel targeted by the registry's convenience
// system methods.
const DefaultRunlevel = 0

// Registry is the top-level container. It owns every entity, the query cache
// and all runlevels, and mediates every registration, creation and removal.
// All operations are synchronous and run to completion; the registry is not
// safe for concurrent use.
type Registry struct {
	instanceID string
	logger     zerolog.Logger

	nextEntity    types.EntityID
	nextComponent types.ComponentID
	nextSystem    types.SystemID

	componentIDs   map[*types.ComponentType]types.ComponentID
	componentTypes map[types.ComponentID]*types.ComponentType
	componentNames map[string]*types.ComponentType
	systemIDs      map[*SystemType]types.SystemID
	systemTypes    map[types.SystemID]*SystemType

	entities []*Entity // creation order
	byID     map[types.EntityID]*Entity
	byName   map[string]*Entity

	queries   map[string]*query // canonical id -> shared query
	runlevels map[int]*Runlevel
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		instanceID:     uuid.NewString(),
		logger:         zerolog.Nop(),
		componentIDs:   make(map[*types.ComponentType]types.ComponentID),
		componentTypes: make(map[types.ComponentID]*types.ComponentType),
		componentNames: make(map[string]*types.ComponentType),
		systemIDs:      make(map[*SystemType]types.SystemID),
		systemTypes:    make(map[types.SystemID]*SystemType),
		byID:           make(map[types.EntityID]*Entity),
		byName:         make(map[string]*Entity),
		queries:        make(map[string]*query),
		runlevels:      make(map[int]*Runlevel),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With().Str("registry", r.instanceID).Logger()
	r.logger.Debug().Msg("registry created")
	return r
}

// InstanceID returns the id used to correlate this registry's log output.
func (r *Registry) InstanceID() string { return r.instanceID }

// RegisterComponent assigns ct a fresh id if it does not have one yet. It is
// idempotent and is invoked implicitly by every operation that references a
// component type.
func (r *Registry) RegisterComponent(ct *types.ComponentType) types.ComponentID {
	if id, ok := r.componentIDs[ct]; ok {
		return id
	}
	r.nextComponent++
	id := r.nextComponent
	r.componentIDs[ct] = id
	r.componentTypes[id] = ct
	r.componentNames[ct.Name()] = ct
	r.logger.Debug().
		Str("component", ct.Name()).
		Uint32("component_id", uint32(id)).
		Msg("component type registered")
	return id
}

// ComponentID reports the id assigned to ct, if any.
func (r *Registry) ComponentID(ct *types.ComponentType) (types.ComponentID, bool) {
	id, ok := r.componentIDs[ct]
	return id, ok
}

// ComponentTypeByName resolves a registered component type by its display
// name. Useful as an eql resolver.
func (r *Registry) ComponentTypeByName(name string) (*types.ComponentType, bool) {
	ct, ok := r.componentNames[name]
	return ct, ok
}

// RegisterSystem assigns st a fresh id if it does not have one yet.
// Idempotent, invoked implicitly by AddSystem.
func (r *Registry) RegisterSystem(st *SystemType) types.SystemID {
	if id, ok := r.systemIDs[st]; ok {
		return id
	}
	r.nextSystem++
	id := r.nextSystem
	r.systemIDs[st] = id
	r.systemTypes[id] = st
	r.logger.Debug().
		Str("system", st.Name()).
		Uint32("system_id", uint32(id)).
		Msg("system type registered")
	return id
}

// SystemID reports the id assigned to st, if any.
func (r *Registry) SystemID(st *SystemType) (types.SystemID, bool) {
	id, ok := r.systemIDs[st]
	return id, ok
}

// CreateEntity allocates a new anonymous entity.
func (r *Registry) CreateEntity() *Entity {
	e, _ := r.createEntity("")
	return e
}

// CreateNamedEntity allocates a new entity carrying a unique, non-empty
// display name.
func (r *Registry) CreateNamedEntity(name string) (*Entity, error) {
	if name == "" {
		return nil, eris.Wrap(ErrInvalidName, "create entity")
	}
	return r.createEntity(name)
}

func (r *Registry) createEntity(name string) (*Entity, error) {
	if name != "" {
		if _, taken := r.byName[name]; taken {
			return nil, eris.Wrapf(ErrDuplicateName, "create entity %q", name)
		}
	}
	r.nextEntity++
	e := &Entity{
		id:         r.nextEntity,
		name:       name,
		registry:   r,
		components: make(map[types.ComponentID]types.Component),
	}
	r.entities = append(r.entities, e)
	r.byID[e.id] = e
	if name != "" {
		r.byName[name] = e
	}
	// A fresh entity holds no components, but predicates that are satisfied
	// by an empty component set (all-entities, pure Without) must see it.
	r.updateQueries(e)
	r.logger.Debug().
		Uint64("entity_id", uint64(e.id)).
		Str("entity_name", name).
		Msg("entity created")
	return e, nil
}

// GetEntity looks an entity up by id.
func (r *Registry) GetEntity(id types.EntityID) (*Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// GetEntityByName looks an entity up by display name.
func (r *Registry) GetEntityByName(name string) (*Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// RemoveEntity destroys an entity: it is dropped from the id and name
// indexes, the ordered entity list, and every cached query's result set.
// Queries take the unconditional drop path rather than re-evaluating the
// predicate because the entity is mid-teardown. Component Teardown hooks run
// last, in ascending component-id order, after the entity is no longer
// reachable through any index or query.
func (r *Registry) RemoveEntity(id types.EntityID) error {
	e, ok := r.byID[id]
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "remove entity %d", id)
	}
	delete(r.byID, id)
	if e.name != "" {
		delete(r.byName, e.name)
	}
	for i, cand := range r.entities {
		if cand == e {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			break
		}
	}
	for _, q := range r.queries {
		q.drop(e)
	}
	cids := make([]types.ComponentID, 0, len(e.components))
	for cid := range e.components {
		cids = append(cids, cid)
	}
	sort.Slice(cids, func(i, j int) bool { return cids[i] < cids[j] })
	for _, cid := range cids {
		c := e.components[cid]
		delete(e.components, cid)
		c.Teardown()
	}
	r.logger.Debug().
		Uint64("entity_id", uint64(id)).
		Str("entity_name", e.name).
		Msg("entity removed")
	return nil
}

// Entities returns a snapshot of every live entity in creation order.
func (r *Registry) Entities() []*Entity {
	out := make([]*Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// EntityCount returns the number of live entities.
func (r *Registry) EntityCount() int { return len(r.entities) }

// Runlevel returns the runlevel with the given id, creating it on first use.
func (r *Registry) Runlevel(id int) *Runlevel {
	rl, ok := r.runlevels[id]
	if !ok {
		rl = newRunlevel(r, id)
		r.runlevels[id] = rl
	}
	return rl
}

// AddSystem adds a system to the default runlevel.
func (r *Registry) AddSystem(st *SystemType, args ...any) (System, error) {
	return r.Runlevel(DefaultRunlevel).AddSystem(st, args...)
}

// HasSystem reports whether the default runlevel holds an instance of st.
func (r *Registry) HasSystem(st *SystemType) bool {
	return r.Runlevel(DefaultRunlevel).HasSystem(st)
}

// GetSystem returns the default runlevel's instance of st, if any.
func (r *Registry) GetSystem(st *SystemType) (System, bool) {
	return r.Runlevel(DefaultRunlevel).GetSystem(st)
}

// RemoveSystem removes st's instance from the default runlevel.
func (r *Registry) RemoveSystem(st *SystemType) error {
	return r.Runlevel(DefaultRunlevel).RemoveSystem(st)
}

// Execute runs the default runlevel once.
func (r *Registry) Execute(args ...any) error {
	return r.Runlevel(DefaultRunlevel).Execute(args...)
}
