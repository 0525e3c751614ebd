package aether

import (
	"testing"

	"github.com/rotisserie/eris"

	"github.com/aether-engine/aether/assert"
	"github.com/aether-engine/aether/filter"
	"github.com/aether-engine/aether/types"
)

// scriptedSystem records its lifecycle and returns a scripted Execute result.
type scriptedSystem struct {
	BaseSystem
	name   string
	log    *[]string
	result types.Result
	err    error
}

func (s *scriptedSystem) Setup(...any) {
	if s.log != nil {
		*s.log = append(*s.log, s.name+":setup")
	}
}

func (s *scriptedSystem) Teardown() {
	if s.log != nil {
		*s.log = append(*s.log, s.name+":teardown")
	}
}

func (s *scriptedSystem) Execute(...any) (types.Result, error) {
	if s.log != nil {
		*s.log = append(*s.log, s.name)
	}
	return s.result, s.err
}

func newScriptedType(name string, log *[]string, result types.Result, err error) *SystemType {
	return NewSystemType(name, nil, func(*Registry) System {
		return &scriptedSystem{name: name, log: log, result: result, err: err}
	})
}

func TestSystemsExecuteInAddOrder(t *testing.T) {
	r := New()
	var log []string
	rl := r.Runlevel(1)

	for _, name := range []string{"first", "second", "third"} {
		_, err := rl.AddSystem(newScriptedType(name, &log, types.Continue, nil))
		assert.NilError(t, err)
	}
	log = nil

	assert.NilError(t, rl.Execute())
	assert.DeepEqual(t, []string{"first", "second", "third"}, log)

	log = nil
	assert.NilError(t, rl.Execute())
	assert.DeepEqual(t, []string{"first", "second", "third"}, log)
}

func TestHaltSkipsRemainingSystemsForOneInvocation(t *testing.T) {
	r := New()
	var log []string
	rl := r.Runlevel(1)

	_, err := rl.AddSystem(newScriptedType("a", &log, types.Continue, nil))
	assert.NilError(t, err)
	_, err = rl.AddSystem(newScriptedType("b", &log, types.Halt, nil))
	assert.NilError(t, err)
	_, err = rl.AddSystem(newScriptedType("c", &log, types.Continue, nil))
	assert.NilError(t, err)
	log = nil

	assert.NilError(t, rl.Execute())
	assert.DeepEqual(t, []string{"a", "b"}, log)

	// Only that one invocation is affected.
	log = nil
	assert.NilError(t, rl.Execute())
	assert.DeepEqual(t, []string{"a", "b"}, log)
}

func TestExecuteErrorAbortsAndPropagates(t *testing.T) {
	r := New()
	var log []string
	rl := r.Runlevel(1)

	_, err := rl.AddSystem(newScriptedType("ok", &log, types.Continue, nil))
	assert.NilError(t, err)
	_, err = rl.AddSystem(newScriptedType("broken", &log, types.Continue,
		errTestBoom))
	assert.NilError(t, err)
	_, err = rl.AddSystem(newScriptedType("unreached", &log, types.Continue, nil))
	assert.NilError(t, err)
	log = nil

	err = rl.Execute()
	assert.ErrorIs(t, err, errTestBoom)
	assert.ErrorContains(t, err, "boom")
	assert.DeepEqual(t, []string{"ok", "broken"}, log)
}

var errTestBoom = eris.New("boom")

func TestDuplicateSystemPerRunlevel(t *testing.T) {
	r := New()
	st := newScriptedType("solo", nil, types.Continue, nil)

	_, err := r.Runlevel(1).AddSystem(st)
	assert.NilError(t, err)
	_, err = r.Runlevel(1).AddSystem(st)
	assert.ErrorIs(t, err, ErrDuplicateSystem)

	// A different runlevel may hold its own instance.
	_, err = r.Runlevel(2).AddSystem(st)
	assert.NilError(t, err)
}

func TestRemoveSystemReleasesQueries(t *testing.T) {
	r := New()
	compA := newTagType("a")
	var log []string

	st := NewSystemType("watcher",
		map[string]filter.Spec{"targets": filter.Match(compA)},
		func(*Registry) System {
			return &scriptedSystem{name: "watcher", log: &log}
		})

	rl := r.Runlevel(1)
	sys, err := rl.AddSystem(st)
	assert.NilError(t, err)
	assert.Equal(t, 1, r.QueryCacheSize())
	assert.Assert(t, sys.Query("targets") != nil)
	assert.Assert(t, sys.Query("undeclared") == nil)

	err = rl.RemoveSystem(st)
	assert.NilError(t, err)
	assert.DeepEqual(t, []string{"watcher:setup", "watcher:teardown"}, log)
	assert.Equal(t, 0, r.QueryCacheSize())
	assert.False(t, rl.HasSystem(st))

	err = rl.RemoveSystem(st)
	assert.ErrorIs(t, err, ErrSystemNotFound)
}

func TestEquivalentDeclarationsShareQueriesAcrossSystems(t *testing.T) {
	r := New()
	compA := newTagType("a")
	compB := newTagType("b")

	newWatcher := func(name string, spec filter.Spec) *SystemType {
		return NewSystemType(name,
			map[string]filter.Spec{"targets": spec},
			func(*Registry) System { return &scriptedSystem{name: name} })
	}
	st1 := newWatcher("one", filter.Match(compA, compB))
	st2 := newWatcher("two", filter.Match(compB, compA))

	rl := r.Runlevel(1)
	sys1, err := rl.AddSystem(st1)
	assert.NilError(t, err)
	sys2, err := rl.AddSystem(st2)
	assert.NilError(t, err)

	assert.Equal(t, 1, r.QueryCacheSize())
	assert.Equal(t, sys1.Query("targets").ID(), sys2.Query("targets").ID())

	// The query survives until its last dependent system is gone.
	assert.NilError(t, rl.RemoveSystem(st1))
	assert.Equal(t, 1, r.QueryCacheSize())
	assert.NilError(t, rl.RemoveSystem(st2))
	assert.Equal(t, 0, r.QueryCacheSize())
}

// removerSystem evicts another system type from its runlevel when run.
type removerSystem struct {
	BaseSystem
	rl     *Runlevel
	target *SystemType
}

func (s *removerSystem) Execute(...any) (types.Result, error) {
	return types.Continue, s.rl.RemoveSystem(s.target)
}

// querySystem touches its bound query before recording that it ran.
type querySystem struct {
	BaseSystem
	log *[]string
}

func (s *querySystem) Execute(...any) (types.Result, error) {
	s.Query("targets").Count()
	*s.log = append(*s.log, "victim")
	return types.Continue, nil
}

func TestSystemRemovedMidInvocationIsSkipped(t *testing.T) {
	r := New()
	compA := newTagType("a")
	var log []string
	rl := r.Runlevel(1)

	victim := NewSystemType("victim",
		map[string]filter.Spec{"targets": filter.Match(compA)},
		func(*Registry) System { return &querySystem{log: &log} })
	remover := NewSystemType("remover", nil, func(*Registry) System {
		return &removerSystem{rl: rl, target: victim}
	})

	_, err := rl.AddSystem(remover)
	assert.NilError(t, err)
	_, err = rl.AddSystem(victim)
	assert.NilError(t, err)
	assert.Equal(t, 1, r.QueryCacheSize())

	// The victim's teardown released its query handles before its slot in
	// the invocation came up, so it must be skipped, not run.
	assert.NilError(t, rl.Execute())
	assert.DeepEqual(t, []string(nil), log)
	assert.Equal(t, 0, r.QueryCacheSize())
	assert.False(t, rl.HasSystem(victim))

	// Later invocations run whatever remains.
	assert.NilError(t, rl.Execute())
}

func TestResetRemovesEverySystem(t *testing.T) {
	r := New()
	var log []string
	rl := r.Runlevel(1)

	_, err := rl.AddSystem(newScriptedType("a", &log, types.Continue, nil))
	assert.NilError(t, err)
	_, err = rl.AddSystem(newScriptedType("b", &log, types.Continue, nil))
	assert.NilError(t, err)
	log = nil

	assert.NilError(t, rl.Reset())
	assert.DeepEqual(t, []string{"a:teardown", "b:teardown"}, log)
	assert.DeepEqual(t, []string{}, rl.SystemNames())

	log = nil
	assert.NilError(t, rl.Execute())
	assert.DeepEqual(t, []string(nil), log)
}

func TestBaseSystemExecuteIsNotImplemented(t *testing.T) {
	r := New()
	st := NewSystemType("stub", nil, func(*Registry) System {
		return &struct{ BaseSystem }{}
	})

	rl := r.Runlevel(1)
	_, err := rl.AddSystem(st)
	assert.NilError(t, err)

	err = rl.Execute()
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestRegistryForwardsToDefaultRunlevel(t *testing.T) {
	r := New()
	var log []string
	st := newScriptedType("fwd", &log, types.Continue, nil)

	sys, err := r.AddSystem(st)
	assert.NilError(t, err)
	assert.True(t, r.HasSystem(st))
	assert.True(t, r.Runlevel(DefaultRunlevel).HasSystem(st))

	got, ok := r.GetSystem(st)
	assert.Assert(t, ok)
	assert.Assert(t, got == sys)

	log = nil
	assert.NilError(t, r.Execute())
	assert.DeepEqual(t, []string{"fwd"}, log)

	assert.NilError(t, r.RemoveSystem(st))
	assert.False(t, r.HasSystem(st))
}

func TestSystemSetupReceivesArgs(t *testing.T) {
	r := New()
	var got []any
	st := NewSystemType("configured", nil, func(*Registry) System {
		return &argSystem{got: &got}
	})

	_, err := r.AddSystem(st, 80, 24)
	assert.NilError(t, err)
	assert.DeepEqual(t, []any{80, 24}, got)
}

type argSystem struct {
	BaseSystem
	got *[]any
}

func (s *argSystem) Setup(args ...any) { *s.got = args }

func (s *argSystem) Execute(...any) (types.Result, error) {
	return types.Continue, nil
}
