package aether

import (
	"github.com/rotisserie/eris"

	"github.com/aether-engine/aether/filter"
	"github.com/aether-engine/aether/types"
)

// System is the behavior contract for a runlevel-owned system instance.
// Implementations embed BaseSystem, which supplies the query-binding plumbing
// and default lifecycle hooks.
type System interface {
	// Setup runs once, after the instance's declared queries have been
	// interned and bound.
	Setup(args ...any)
	// Teardown runs once, before the instance's query handles are released.
	Teardown()
	// Execute runs one invocation's worth of work. Returning Halt skips the
	// systems after this one for the current runlevel invocation only. An
	// error aborts the invocation and propagates to the driver.
	Execute(args ...any) (types.Result, error)

	// Query returns the handle bound under the given declared query name.
	Query(name string) *Search

	bind(queries map[string]*Search)
}

// BaseSystem carries the query handles interned for a system instance when it
// joined a runlevel. Embed it in every System implementation.
type BaseSystem struct {
	queries map[string]*Search
}

func (s *BaseSystem) bind(queries map[string]*Search) { s.queries = queries }

// Query returns the handle bound under name, or nil if the system type never
// declared it.
func (s *BaseSystem) Query(name string) *Search { return s.queries[name] }

func (s *BaseSystem) Setup(...any) {}

func (s *BaseSystem) Teardown() {}

// Execute flags system types that never provided their own implementation.
func (s *BaseSystem) Execute(...any) (types.Result, error) {
	return types.Continue, eris.Wrap(ErrNotImplemented, "embedded BaseSystem")
}

// SystemType describes a kind of system: a display name, a constructor, and
// the static mapping from local query names to match specifications. The
// specifications are interned through the registry's query cache whenever an
// instance joins a runlevel, so equivalent declarations across system types
// share one query.
type SystemType struct {
	name    string
	newFn   func(*Registry) System
	queries map[string]filter.Spec
}

// NewSystemType declares a system type. queries may be nil for systems that
// operate on no entity subset.
func NewSystemType(name string, queries map[string]filter.Spec, newFn func(*Registry) System) *SystemType {
	return &SystemType{name: name, newFn: newFn, queries: queries}
}

func (st *SystemType) Name() string { return st.name }
