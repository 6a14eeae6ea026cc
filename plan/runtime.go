package plan

import "fmt"

// instantiatePipes implements spec §4.5: for each chosen pipe, obtain its
// source's Iterator as the running tail, splice in every sink whose
// FeedType/Scope match the pipe's current position, walk the transform
// chain to the next feed type, and repeat. Sinks are consumed from a
// shared pool across pipes in the order the pipes are given — invariant
// 4 ("no sink is bound to more than one pipe") falls out of a sink being
// removed from the pool the first time it is spliced in.
func instantiatePipes(chosen []pipeCand, sourceMap map[sinkKey]Source, sinks []Sink, reporter Reporter, m *matrix) ([]Iterator, error) {
	remaining := append([]Sink{}, sinks...)
	actual := make([]Iterator, 0, len(chosen))

	for _, p := range chosen {
		currentType := p.types[0]
		src, ok := sourceMap[sinkKey{p.scope, currentType}]
		if !ok {
			errAssertf("no source for (%v, %v)", p.scope, currentType)
		}
		var tail Iterator = src.Feed()

		typesLeft := p.types[1:]
		for step := 0; ; step++ {
			var todo []Sink
			for _, sk := range remaining {
				if sk.FeedType() != currentType || sk.Scope() > p.scope {
					todo = append(todo, sk)
					continue
				}
				newTail, err := sk.Feed(tail, reporter)
				if err != nil {
					return nil, fmt.Errorf("plan: sink %v at (%v, %v): %w", sk, sk.Scope(), sk.FeedType(), err)
				}
				if newTail == nil {
					errAssertf("sink %v returned a nil tail", sk)
				}
				tail = newTail
			}
			remaining = todo

			if step >= len(typesLeft) {
				break
			}
			nextType := typesLeft[step]
			entry, ok := m.lookup(p.scope, currentType, nextType)
			if !ok {
				errAssertf("matrix entry for %v: %v -> %v missing at runtime", p.scope, currentType, nextType)
			}
			for _, link := range entry.chain {
				if link.edge.Src != currentType {
					errAssertf("chain step source %v does not match running type %v", link.edge.Src, currentType)
				}
				if p.scope < link.edge.MinScope {
					errAssertf("transform min scope %v exceeds pipe scope %v", link.edge.MinScope, p.scope)
				}
				newTail, err := link.transform.Apply(link.edge, tail)
				if err != nil {
					return nil, fmt.Errorf("plan: transform %v -> %v: %w", link.edge.Src, link.edge.Dst, err)
				}
				tail = newTail
				currentType = link.edge.Dst
			}
		}

		actual = append(actual, tail)
	}

	if len(remaining) > 0 {
		errAssertf("%d sinks left unbound after instantiation", len(remaining))
	}

	return actual, nil
}
