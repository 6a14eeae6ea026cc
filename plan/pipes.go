package plan

import (
	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/scope"
)

// sinkKey identifies a (scope, feed type) pair sinks are grouped by.
type sinkKey struct {
	scope scope.Scope
	typ   feed.Type
}

// pipeCand is one candidate pipe built during enumeration: an ordered,
// non-repeating sequence of feed types starting at some source, with its
// accumulated cost and effective scope (the scope of its source).
type pipeCand struct {
	cost  float64
	scope scope.Scope
	types []feed.Type
}

// contains reports whether t already appears in the pipe.
func (p pipeCand) contains(t feed.Type) bool {
	for _, existing := range p.types {
		if existing == t {
			return true
		}
	}
	return false
}

// last returns the pipe's current feed type (its most recently reached
// type).
func (p pipeCand) last() feed.Type {
	return p.types[len(p.types)-1]
}

// buildSourceMap picks the cheapest source for each (scope, feed type).
func buildSourceMap(sources []Source) map[sinkKey]Source {
	out := make(map[sinkKey]Source, len(sources))
	for _, src := range sources {
		key := sinkKey{src.Scope(), src.FeedType()}
		if cur, ok := out[key]; !ok || cur.Cost() > src.Cost() {
			out[key] = src
		}
	}
	return out
}

// buildSinkMap groups sinks by (scope, feed type).
func buildSinkMap(sinks []Sink) map[sinkKey][]Sink {
	out := make(map[sinkKey][]Sink, len(sinks))
	for _, sk := range sinks {
		key := sinkKey{sk.Scope(), sk.FeedType()}
		out[key] = append(out[key], sk)
	}
	return out
}

// enumeratePipes implements spec §4.3: a BFS-style worklist starting with
// one pipe per distinct source, extended through every matrix-realizable
// conversion to a not-yet-visited sink type whose scope the pipe can
// satisfy. Every popped pipe is retained, whether or not it terminates at
// a sink type, because prefixes remain useful as covers.
func enumeratePipes(sourceMap map[sinkKey]Source, sinkMap map[sinkKey][]Sink, m *matrix) []pipeCand {
	var pipes []pipeCand
	var queue []pipeCand
	for _, src := range sourceMap {
		queue = append(queue, pipeCand{cost: src.Cost(), scope: src.Scope(), types: []feed.Type{src.FeedType()}})
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		pipes = append(pipes, p)

		for key := range sinkMap {
			if p.contains(key.typ) || key.scope > p.scope {
				continue
			}
			entry, ok := m.lookup(p.scope, p.last(), key.typ)
			if !ok {
				continue
			}
			extended := pipeCand{
				cost:  p.cost + entry.cost,
				scope: p.scope,
				types: append(append([]feed.Type{}, p.types...), key.typ),
			}
			queue = append(queue, extended)
		}
	}

	return pipes
}
