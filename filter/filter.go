// Package filter builds match specifications over component types. A
// specification is the triple used by the query engine: components that must
// all be present (Match), components of which at least one must be present
// (One), and components that must all be absent (Without).
package filter

import "github.com/aether-engine/aether/types"

// Spec is a match specification. The zero value matches every entity, as does
// the explicit All spec. Specs are values; the chainable methods return
// merged copies and never mutate their receiver.
type Spec struct {
	match []*types.ComponentType
	one   []*types.ComponentType
	not   []*types.ComponentType
	all   bool
}

// Match requires every listed component to be present.
func Match(cts ...*types.ComponentType) Spec {
	return Spec{match: cts}
}

// One requires at least one of the listed components to be present. An empty
// One list is vacuously satisfied.
func One(cts ...*types.ComponentType) Spec {
	return Spec{one: cts}
}

// Without requires every listed component to be absent.
func Without(cts ...*types.ComponentType) Spec {
	return Spec{not: cts}
}

// All explicitly requests every live entity.
func All() Spec {
	return Spec{all: true}
}

// Match returns a copy of s that additionally requires cts to be present.
func (s Spec) Match(cts ...*types.ComponentType) Spec {
	s.match = append(s.match[:len(s.match):len(s.match)], cts...)
	return s
}

// One returns a copy of s that additionally accepts any of cts.
func (s Spec) One(cts ...*types.ComponentType) Spec {
	s.one = append(s.one[:len(s.one):len(s.one)], cts...)
	return s
}

// Without returns a copy of s that additionally requires cts to be absent.
func (s Spec) Without(cts ...*types.ComponentType) Spec {
	s.not = append(s.not[:len(s.not):len(s.not)], cts...)
	return s
}

// MatchTypes returns the AND list.
func (s Spec) MatchTypes() []*types.ComponentType { return s.match }

// OneTypes returns the OR list.
func (s Spec) OneTypes() []*types.ComponentType { return s.one }

// NotTypes returns the NOT list.
func (s Spec) NotTypes() []*types.ComponentType { return s.not }

// IsAll reports whether the spec explicitly requests every entity.
func (s Spec) IsAll() bool { return s.all }
