package aether

// Search is a handle to a cached query: the canonical id plus a live view of
// the matching entities. Handles whose specs canonicalize identically share
// one underlying query, so a membership change seen through one handle is
// seen through all of them. A handle is invalid after RemoveQuery.
type Search struct {
	registry *Registry
	q        *query
}

// ID returns the canonical query id.
func (s *Search) ID() string { return s.q.id }

// Count returns the number of currently matching entities.
func (s *Search) Count() int { return len(s.q.members) }

// Contains reports whether e currently matches.
func (s *Search) Contains(e *Entity) bool {
	_, ok := s.q.index[e.id]
	return ok
}

// Each calls fn for every matching entity. Return false to stop early. The
// iteration runs over a snapshot, so fn may mutate components (and thereby
// query membership) freely.
func (s *Search) Each(fn func(*Entity) bool) {
	for _, e := range s.Entities() {
		if !fn(e) {
			return
		}
	}
}

// First returns an arbitrary matching entity.
func (s *Search) First() (*Entity, bool) {
	if len(s.q.members) == 0 {
		return nil, false
	}
	return s.q.members[0], true
}

// Entities returns a snapshot of the current result set. The caller owns the
// slice; mutating it does not affect the query.
func (s *Search) Entities() []*Entity {
	out := make([]*Entity, len(s.q.members))
	copy(out, s.q.members)
	return out
}
