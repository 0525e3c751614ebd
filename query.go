package aether

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/aether-engine/aether/filter"
	"github.com/aether-engine/aether/types"
)

// allQueryID is the canonical id of the empty predicate, which matches every
// live entity. It is cached and reference-counted like any other query.
const allQueryID = "all"

// presence pairs a component id with the presence the predicate expects:
// true for AND constraints, false for NOT constraints.
type presence struct {
	component types.ComponentID
	want      bool
}

// query is a cached, incrementally maintained predicate over the entity
// population. AND and NOT constraints are merged into one sorted pair list;
// OR is kept separate. One query is shared by every search whose spec
// canonicalizes to the same id, governed by a reference count.
type query struct {
	id      string
	pairs   []presence
	anyOf   []types.ComponentID
	refs    int
	members []*Entity
	index   map[types.EntityID]int
}

// test re-evaluates e's membership against the predicate and reconciles the
// result set. Safe to invoke redundantly: repeated matches or misses never
// duplicate an insertion or remove twice.
func (q *query) test(e *Entity) {
	match := len(q.anyOf) == 0
	for _, cid := range q.anyOf {
		if _, ok := e.components[cid]; ok {
			match = true
			break
		}
	}
	if match {
		for _, p := range q.pairs {
			if _, ok := e.components[p.component]; ok != p.want {
				match = false
				break
			}
		}
	}
	_, present := q.index[e.id]
	switch {
	case match && !present:
		q.index[e.id] = len(q.members)
		q.members = append(q.members, e)
	case !match && present:
		q.drop(e)
	}
}

// drop removes e from the result set regardless of the predicate. Used when
// the entity is being destroyed and its component data can no longer be
// evaluated safely.
func (q *query) drop(e *Entity) {
	i, ok := q.index[e.id]
	if !ok {
		return
	}
	last := len(q.members) - 1
	q.members[i] = q.members[last]
	q.index[q.members[i].id] = i
	q.members = q.members[:last]
	delete(q.index, e.id)
}

// canonicalID derives the deterministic cache key for spec, auto-registering
// every referenced component type. Each of the three id sets is sorted
// ascending and deduplicated, then rendered as tagged tokens (req:, any:,
// not:) concatenated AND then OR then NOT. Identical sets produce the same
// id regardless of input order; distinct sets never collide. The returned
// pair list and OR list feed the query constructor.
func (r *Registry) canonicalID(spec filter.Spec) (string, []presence, []types.ComponentID) {
	match := r.registerAll(spec.MatchTypes())
	one := r.registerAll(spec.OneTypes())
	not := r.registerAll(spec.NotTypes())

	var b strings.Builder
	writeTokens := func(tag string, ids []types.ComponentID) {
		for _, id := range ids {
			if b.Len() > 0 {
				b.WriteByte('/')
			}
			b.WriteString(tag)
			b.WriteString(strconv.FormatUint(uint64(id), 10))
		}
	}
	writeTokens("req:", match)
	writeTokens("any:", one)
	writeTokens("not:", not)

	if spec.IsAll() || b.Len() == 0 {
		return allQueryID, nil, nil
	}

	pairs := make([]presence, 0, len(match)+len(not))
	for _, id := range match {
		pairs = append(pairs, presence{component: id, want: true})
	}
	for _, id := range not {
		pairs = append(pairs, presence{component: id, want: false})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].component < pairs[j].component })
	return b.String(), pairs, one
}

// registerAll registers every listed component type and returns their ids
// sorted ascending with duplicates collapsed.
func (r *Registry) registerAll(cts []*types.ComponentType) []types.ComponentID {
	ids := make([]types.ComponentID, 0, len(cts))
	for _, ct := range cts {
		ids = append(ids, r.RegisterComponent(ct))
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// CreateQuery canonicalizes spec and returns a handle to the shared cached
// query. On a cache miss the new query is evaluated once against every live
// entity; on a hit the existing query's reference count is incremented.
// Handles built from equivalent specs observe the same result set.
func (r *Registry) CreateQuery(spec filter.Spec) *Search {
	id, pairs, anyOf := r.canonicalID(spec)
	q, ok := r.queries[id]
	if !ok {
		q = &query{
			id:    id,
			pairs: pairs,
			anyOf: anyOf,
			index: make(map[types.EntityID]int),
		}
		for _, e := range r.entities {
			q.test(e)
		}
		r.queries[id] = q
		r.logger.Debug().
			Str("query", id).
			Int("matches", len(q.members)).
			Msg("query cached")
	}
	q.refs++
	return &Search{registry: r, q: q}
}

// RemoveQuery releases one reference to the query behind s and invalidates
// the handle. When the last reference is gone the query is evicted from the
// cache; a later CreateQuery with an equivalent spec rebuilds it from a full
// scan. Releasing an already-released handle is a no-op.
func (r *Registry) RemoveQuery(s *Search) {
	if s == nil || s.q == nil {
		return
	}
	q := s.q
	s.q = nil
	q.refs--
	if q.refs > 0 {
		return
	}
	delete(r.queries, q.id)
	r.logger.Debug().Str("query", q.id).Msg("query evicted")
}

// updateQueries re-tests e against every cached query. Invoked on every
// component attach and detach, and on entity creation.
func (r *Registry) updateQueries(e *Entity) {
	for _, q := range r.queries {
		q.test(e)
	}
}

// QueryCacheSize returns the number of distinct live queries.
func (r *Registry) QueryCacheSize() int { return len(r.queries) }
