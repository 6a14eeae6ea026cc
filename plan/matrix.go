package plan

import (
	"sort"

	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/scope"
)

// chainStep names one edge of one Transform selected to realize part of a
// matrix entry's conversion.
type chainStep struct {
	transform Transform
	edge      TransformEdge
}

type matrixKey struct {
	scope scope.Scope
	src   feed.Type
	dst   feed.Type
}

type matrixEntry struct {
	cost  float64
	chain []chainStep
}

// matrix is the (scope, src, dst) -> (cost, chain) mapping spec §3 calls
// TransformMatrix. It honors invariant 2 (downward-... actually upward:
// "if (s,a,b) has cost c, then for every s' >= s up to best_source_scope,
// (s',a,b) exists with cost <= c") by construction: every write that
// lowers a cost at scope s is immediately propagated to every scope above
// s, so the matrix never needs an invariant-restoring pass after the
// fact.
type matrix struct {
	entries map[matrixKey]matrixEntry
}

// lookup returns the cheapest known chain realizing src->dst at exactly
// scope s, if any.
func (m *matrix) lookup(s scope.Scope, src, dst feed.Type) (matrixEntry, bool) {
	e, ok := m.entries[matrixKey{s, src, dst}]
	return e, ok
}

// buildMatrix implements spec §4.2: initialization from each transform
// edge (skipping edges out of scope, bumping under-scoped edges up to
// lowestScope, and backfilling the cheapest entry upward through every
// scope up to bestScope), followed by relaxation closure (propagate
// cheaper lower-scope entries upward, and combine any two chained entries
// that beat the current one) until a full pass makes no improvement.
//
// Backfill note (spec §9 open question): this implementation derives
// backfill from scope monotonicity directly — "overwrite (s', src, dst)
// with (cost, chain) unless a strictly cheaper entry already exists
// there" — rather than the original source's comparison against the
// un-bumped outer scope.
func buildMatrix(sources []Source, sinks []Sink, transforms []Transform, bestScope, lowestScope scope.Scope) *matrix {
	universeSet := map[feed.Type]struct{}{}
	for _, s := range sources {
		universeSet[s.FeedType()] = struct{}{}
	}
	for _, s := range sinks {
		universeSet[s.FeedType()] = struct{}{}
	}
	for _, tr := range transforms {
		for _, e := range tr.Edges() {
			universeSet[e.Src] = struct{}{}
			universeSet[e.Dst] = struct{}{}
		}
	}
	universe := make([]feed.Type, 0, len(universeSet))
	for t := range universeSet {
		universe = append(universe, t)
	}
	// Deterministic order: tie-breaking ("first-seen chain kept") and
	// test reproducibility both depend on stable iteration.
	sort.Slice(universe, func(i, j int) bool { return universe[i] < universe[j] })

	m := &matrix{entries: make(map[matrixKey]matrixEntry)}

	// Initialization + backfill.
	for _, tr := range transforms {
		for _, e := range tr.Edges() {
			if e.MinScope > bestScope {
				continue
			}
			effScope := scope.Max(e.MinScope, lowestScope)
			key := matrixKey{effScope, e.Src, e.Dst}
			cur, ok := m.entries[key]
			if ok && cur.cost <= e.Cost {
				continue
			}
			entry := matrixEntry{cost: e.Cost, chain: []chainStep{{transform: tr, edge: e}}}
			m.entries[key] = entry
			for s := effScope + 1; s <= bestScope; s++ {
				k2 := matrixKey{s, e.Src, e.Dst}
				if existing, ok2 := m.entries[k2]; ok2 && existing.cost < entry.cost {
					break
				}
				m.entries[k2] = entry
			}
		}
	}

	// Closure relaxation.
	for {
		progress := false
		for _, src := range universe {
			for _, dst := range universe {
				if src == dst {
					continue
				}
				var current *matrixEntry
				for s := lowestScope; s <= bestScope; s++ {
					key := matrixKey{s, src, dst}
					if newCur, ok := m.entries[key]; ok {
						if current == nil || current.cost >= newCur.cost {
							cp := newCur
							current = &cp
						} else {
							progress = true
							m.entries[key] = *current
						}
					} else if current != nil {
						progress = true
						m.entries[key] = *current
					}
					for _, h := range universe {
						if h == src || h == dst {
							continue
						}
						first, ok1 := m.entries[matrixKey{s, src, h}]
						second, ok2 := m.entries[matrixKey{s, h, dst}]
						if !ok1 || !ok2 {
							continue
						}
						newCost := first.cost + second.cost
						if current == nil || newCost < current.cost {
							progress = true
							combined := matrixEntry{
								cost:  newCost,
								chain: append(append([]chainStep{}, first.chain...), second.chain...),
							}
							m.entries[matrixKey{s, src, dst}] = combined
							current = &combined
						}
					}
				}
			}
		}
		if !progress {
			break
		}
	}

	return m
}
