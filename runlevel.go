package aether

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/aether-engine/aether/filter"
	"github.com/aether-engine/aether/types"
)

// Runlevel is an ordered, independently executable group of system instances,
// at most one per system type. The registry imposes no ordering between
// runlevels; a driver invokes them in whatever order it chooses.
type Runlevel struct {
	id       int
	registry *Registry
	order    []*systemEntry // add order
	index    map[types.SystemID]*systemEntry
	logger   zerolog.Logger
}

type systemEntry struct {
	typ      *SystemType
	typeID   types.SystemID
	instance System
	searches map[string]*Search
}

func newRunlevel(r *Registry, id int) *Runlevel {
	return &Runlevel{
		id:       id,
		registry: r,
		index:    make(map[types.SystemID]*systemEntry),
		logger:   r.logger.With().Int("runlevel", id).Logger(),
	}
}

// ID returns the runlevel's id.
func (rl *Runlevel) ID() int { return rl.id }

// AddSystem constructs an instance of st, interns its declared queries
// (sharing cached queries with every other system whose specs canonicalize
// identically), binds the handles under their declared names, and finally
// runs the instance's Setup hook with args.
func (rl *Runlevel) AddSystem(st *SystemType, args ...any) (System, error) {
	id := rl.registry.RegisterSystem(st)
	if _, ok := rl.index[id]; ok {
		return nil, eris.Wrapf(ErrDuplicateSystem, "add %q to runlevel %d", st.Name(), rl.id)
	}
	sys := st.newFn(rl.registry)
	searches := make(map[string]*Search, len(st.queries))
	for _, name := range sortedQueryNames(st.queries) {
		searches[name] = rl.registry.CreateQuery(st.queries[name])
	}
	sys.bind(searches)
	entry := &systemEntry{typ: st, typeID: id, instance: sys, searches: searches}
	rl.order = append(rl.order, entry)
	rl.index[id] = entry
	sys.Setup(args...)
	rl.logger.Debug().Str("system", st.Name()).Msg("system added")
	return sys, nil
}

// HasSystem reports whether the runlevel holds an instance of st.
func (rl *Runlevel) HasSystem(st *SystemType) bool {
	_, ok := rl.GetSystem(st)
	return ok
}

// GetSystem returns the runlevel's instance of st, if any.
func (rl *Runlevel) GetSystem(st *SystemType) (System, bool) {
	id, ok := rl.registry.SystemID(st)
	if !ok {
		return nil, false
	}
	entry, ok := rl.index[id]
	if !ok {
		return nil, false
	}
	return entry.instance, true
}

// RemoveSystem runs the instance's Teardown hook, then releases every query
// handle it was bound to.
func (rl *Runlevel) RemoveSystem(st *SystemType) error {
	id, ok := rl.registry.SystemID(st)
	var entry *systemEntry
	if ok {
		entry, ok = rl.index[id]
	}
	if !ok {
		return eris.Wrapf(ErrSystemNotFound, "remove %q from runlevel %d", st.Name(), rl.id)
	}
	entry.instance.Teardown()
	for _, name := range sortedSearchNames(entry.searches) {
		rl.registry.RemoveQuery(entry.searches[name])
	}
	delete(rl.index, id)
	for i, cand := range rl.order {
		if cand == entry {
			rl.order = append(rl.order[:i], rl.order[i+1:]...)
			break
		}
	}
	rl.logger.Debug().Str("system", st.Name()).Msg("system removed")
	return nil
}

// Reset removes every system in the runlevel through the RemoveSystem path,
// including teardown and query release.
func (rl *Runlevel) Reset() error {
	for len(rl.order) > 0 {
		if err := rl.RemoveSystem(rl.order[0].typ); err != nil {
			return err
		}
	}
	return nil
}

// SystemNames returns the names of the runlevel's systems in add order.
func (rl *Runlevel) SystemNames() []string {
	names := make([]string, 0, len(rl.order))
	for _, entry := range rl.order {
		names = append(names, entry.typ.Name())
	}
	return names
}

// Execute invokes each system's Execute in add order, forwarding args. A
// Halt result skips the remaining systems for this invocation only; an error
// aborts the invocation and propagates wrapped with the system name. A system
// may add or remove systems mid-invocation; a system removed by an earlier
// system is skipped, since its teardown already ran and its query handles are
// already released.
func (rl *Runlevel) Execute(args ...any) error {
	entries := append([]*systemEntry(nil), rl.order...)
	for _, entry := range entries {
		if rl.index[entry.typeID] != entry {
			continue
		}
		res, err := entry.instance.Execute(args...)
		if err != nil {
			return eris.Wrapf(err, "system %q generated an error", entry.typ.Name())
		}
		if res == types.Halt {
			rl.logger.Debug().Str("system", entry.typ.Name()).Msg("runlevel halted")
			return nil
		}
	}
	return nil
}

func sortedQueryNames(specs map[string]filter.Spec) []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedSearchNames(searches map[string]*Search) []string {
	names := make([]string, 0, len(searches))
	for name := range searches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
