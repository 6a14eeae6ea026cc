package plan

import "github.com/pkgaudit/pkgaudit/scope"

// pruneResult is the output of the entry-stage scope pruning (spec §4.1).
type pruneResult struct {
	outOfScope      []Sink
	good            []Sink
	sources         []Source
	bestSourceScope scope.Scope
	lowestSinkScope scope.Scope
}

// pruneScope implements spec §4.1.
//
//  1. best_source_scope = max(scope of every source). If there are no
//     sources, every sink is out of scope.
//  2. Partition sinks into out-of-scope (scope > best_source_scope) and
//     good.
//  3. lowest_sink_scope = min(scope of every good sink).
//  4. Drop sources whose scope is below lowest_sink_scope: a source that
//     narrow cannot drive anything, but a source below the *highest*
//     sink scope may still participate in a multi-pipe cover.
func pruneScope(sinks []Sink, sources []Source) pruneResult {
	if len(sources) == 0 {
		return pruneResult{outOfScope: append([]Sink(nil), sinks...)}
	}

	best := sources[0].Scope()
	for _, src := range sources[1:] {
		best = scope.Max(best, src.Scope())
	}

	var outOfScope, good []Sink
	lowest := scope.Repository + 1 // sentinel "no good sink seen yet"
	for _, sink := range sinks {
		if sink.Scope() > best {
			outOfScope = append(outOfScope, sink)
			continue
		}
		good = append(good, sink)
		lowest = scope.Min(lowest, sink.Scope())
	}

	if len(good) == 0 {
		return pruneResult{outOfScope: outOfScope, bestSourceScope: best}
	}

	var usable []Source
	for _, src := range sources {
		if src.Scope() >= lowest {
			usable = append(usable, src)
		}
	}

	return pruneResult{
		outOfScope:      outOfScope,
		good:            good,
		sources:         usable,
		bestSourceScope: best,
		lowestSinkScope: lowest,
	}
}
