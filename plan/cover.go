package plan

import "sort"

// reachableKeys implements the "reachable sinks" half of spec §4.4: a
// sink at (scope, type) is reachable iff some enumerated pipe has
// pipe.scope >= scope and contains type. It returns only the set of
// reachable keys; callers determine which concrete Sink values those
// keys correspond to (plan.go does, preserving caller-supplied order).
func reachableKeys(sinkMap map[sinkKey][]Sink, pipes []pipeCand) map[sinkKey]bool {
	reachable := make(map[sinkKey]bool, len(sinkMap))
	for key := range sinkMap {
		for _, p := range pipes {
			if p.scope >= key.scope && p.contains(key.typ) {
				reachable[key] = true
				break
			}
		}
	}
	return reachable
}

// singlePipeCover returns the cheapest pipe that, alone, covers every key
// in reachable, if one exists (spec §4.4 "single-pipe cover").
func singlePipeCover(pipes []pipeCand, reachable map[sinkKey]bool) (pipeCand, bool) {
	var best *pipeCand
	for _, p := range pipes {
		coversAll := true
		for key := range reachable {
			if !(p.scope >= key.scope && p.contains(key.typ)) {
				coversAll = false
				break
			}
		}
		if coversAll && (best == nil || p.cost < best.cost) {
			pc := p
			best = &pc
		}
	}
	if best == nil {
		return pipeCand{}, false
	}
	return *best, true
}

// multiPipeCover implements the "multi-pipe cover" half of spec §4.4 as
// branch-and-bound with memoization over the uncovered-key bitmask,
// resolving the spec §9 open question about the original's order-
// dependent combination search: the DP state is the set of keys still to
// cover, so the optimum for a given remaining set is computed once no
// matter which earlier choice produced it.
//
// Supports up to 64 distinct reachable (scope, type) keys, comfortably
// above the "tens of sink keys" spec §4.4 expects in practice.
func multiPipeCover(pipes []pipeCand, reachable map[sinkKey]bool) []pipeCand {
	keys := make([]sinkKey, 0, len(reachable))
	for key := range reachable {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].scope != keys[j].scope {
			return keys[i].scope < keys[j].scope
		}
		return keys[i].typ < keys[j].typ
	})
	if len(keys) > 64 {
		errAssertf("multiPipeCover: %d reachable keys exceeds the 64-key bitmask capacity", len(keys))
	}

	type coverage struct {
		pipe pipeCand
		mask uint64
	}
	var options []coverage
	for _, p := range pipes {
		var mask uint64
		for i, key := range keys {
			if p.scope >= key.scope && p.contains(key.typ) {
				mask |= 1 << uint(i)
			}
		}
		if mask != 0 {
			options = append(options, coverage{pipe: p, mask: mask})
		}
	}

	full := uint64(0)
	if len(keys) > 0 {
		full = uint64(1)<<uint(len(keys)) - 1
	}

	type solution struct {
		cost  float64
		pipes []pipeCand
		ok    bool
	}
	memo := make(map[uint64]solution)

	var solve func(remaining uint64) solution
	solve = func(remaining uint64) solution {
		if remaining == 0 {
			return solution{ok: true}
		}
		if sol, ok := memo[remaining]; ok {
			return sol
		}
		// Branch on the lowest uncovered key; every option considered
		// must cover it or it cannot possibly help.
		var lowest uint64
		for lowest = 0; remaining&(1<<lowest) == 0; lowest++ {
		}

		best := solution{}
		for _, opt := range options {
			if opt.mask&(1<<lowest) == 0 {
				continue
			}
			sub := solve(remaining &^ opt.mask)
			if !sub.ok {
				continue
			}
			total := opt.pipe.cost + sub.cost
			if !best.ok || total < best.cost {
				best = solution{
					ok:    true,
					cost:  total,
					pipes: append([]pipeCand{opt.pipe}, sub.pipes...),
				}
			}
		}
		memo[remaining] = best
		return best
	}

	sol := solve(full)
	if !sol.ok {
		// Every reachable key is, by definition, covered by some pipe;
		// the search must therefore succeed (spec §4.4).
		errAssertf("multiPipeCover: no cover found for %d reachable sink keys", len(keys))
	}
	return sol.pipes
}
