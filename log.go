package aether

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/aether-engine/aether/types"
)

func (r *Registry) componentsToEvent(event *zerolog.Event) *zerolog.Event {
	ids := make([]types.ComponentID, 0, len(r.componentTypes))
	for id := range r.componentTypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	event.Int("total_components", len(ids))
	arr := zerolog.Arr()
	for _, id := range ids {
		arr = arr.Dict(zerolog.Dict().
			Int("component_id", int(id)).
			Str("component_name", r.componentTypes[id].Name()))
	}
	return event.Array("components", arr)
}

func (r *Registry) systemsToEvent(event *zerolog.Event) *zerolog.Event {
	ids := make([]types.SystemID, 0, len(r.systemTypes))
	for id := range r.systemTypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	event.Int("total_systems", len(ids))
	arr := zerolog.Arr()
	for _, id := range ids {
		arr = arr.Str(r.systemTypes[id].Name())
	}
	return event.Array("systems", arr)
}

// LogComponents logs every registered component type at the given level.
func (r *Registry) LogComponents(level zerolog.Level) {
	r.componentsToEvent(r.logger.WithLevel(level)).Send()
}

// LogSystems logs every registered system type at the given level.
func (r *Registry) LogSystems(level zerolog.Level) {
	r.systemsToEvent(r.logger.WithLevel(level)).Send()
}

// LogEntity logs an entity's id, name and attached component types.
func (r *Registry) LogEntity(level zerolog.Level, id types.EntityID) error {
	e, ok := r.byID[id]
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "log entity %d", id)
	}
	arr := zerolog.Arr()
	for _, name := range e.ComponentNames() {
		arr = arr.Str(name)
	}
	r.logger.WithLevel(level).
		Uint64("entity_id", uint64(e.id)).
		Str("entity_name", e.name).
		Array("components", arr).
		Send()
	return nil
}

// LogWorld logs every registered component and system type in one event.
func (r *Registry) LogWorld(level zerolog.Level) {
	event := r.logger.WithLevel(level)
	event = r.componentsToEvent(event)
	event = r.systemsToEvent(event)
	event.Send()
}

// CreateSystemLogger returns a sub-logger tagged with the system name.
func (r *Registry) CreateSystemLogger(systemName string) zerolog.Logger {
	return r.logger.With().Str("system", systemName).Logger()
}
