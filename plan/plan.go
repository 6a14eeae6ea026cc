package plan

// Options tunes one Plug pass.
type Options struct {
	// Debug, if non-nil, receives trace lines from every planning
	// stage (mirrors the original's optional debug callback).
	Debug func(format string, args ...any)

	// RunID identifies this pass for log correlation; Plug never
	// generates one itself, callers are expected to stamp it (e.g. with
	// a UUID) before logging or reporting.
	RunID string

	// Strict turns the "no sources" / "no sinks" / "no reachable
	// sinks" outcomes into errors instead of an Outcome with an empty
	// Running/Pipes. Off by default: an empty Running set is a
	// legitimate, reportable outcome (spec §7), not a failure.
	Strict bool
}

// Outcome is the four-way partition spec §4/§7 describes: every input
// sink ends up in exactly one of OutOfScope, Unreachable, or Running.
// Pipes holds one Iterator per chosen pipe, ready for the caller to
// drain (Plug never drains them itself).
type Outcome struct {
	OutOfScope  []Sink
	Unreachable []Sink
	Running     []Sink
	Pipes       []Iterator
}

// Plug plans and instantiates a pipeline. sinks are check instances,
// transforms are transform instances, sources are source instances.
//
// The plan:
//   - Build a matrix with the cheapest sequence of transforms for every
//     (scope, source type, dest type).
//   - Use the matrix to enumerate every pipe: a sequence starting at a
//     source and reaching zero or more sink types.
//   - Report sinks we cannot drive (out of scope, or unreachable) and
//     set them aside.
//   - Prefer the cheapest single pipe that drives every remaining sink,
//     for readability; fall back to the cheapest combination of pipes.
//   - Instantiate the chosen pipe(s): bind sources, splice in sinks and
//     transforms, and return the resulting lazy tails.
func Plug(sinks []Sink, transforms []Transform, sources []Source, reporter Reporter, opts Options) (Outcome, error) {
	debug := opts.Debug
	if debug == nil {
		debug = func(string, ...any) {}
	} else if opts.RunID != "" {
		inner := opts.Debug
		debug = func(format string, args ...any) {
			inner("run=%s "+format, append([]any{opts.RunID}, args...)...)
		}
	}

	if len(sources) == 0 {
		if opts.Strict {
			return Outcome{}, ErrNoSources
		}
		return Outcome{OutOfScope: append([]Sink{}, sinks...)}, nil
	}
	if len(sinks) == 0 {
		if opts.Strict {
			return Outcome{}, ErrNoSinks
		}
		return Outcome{}, nil
	}

	pr := pruneScope(sinks, sources)
	if len(pr.good) == 0 {
		return strictOrNil(opts, Outcome{OutOfScope: pr.outOfScope}, ErrNoReachableSinks)
	}
	if len(pr.sources) == 0 {
		return strictOrNil(opts, Outcome{OutOfScope: pr.outOfScope, Unreachable: pr.good}, ErrNoReachableSinks)
	}

	debug("best_source_scope=%v lowest_sink_scope=%v", pr.bestSourceScope, pr.lowestSinkScope)

	m := buildMatrix(pr.sources, pr.good, transforms, pr.bestSourceScope, pr.lowestSinkScope)
	sourceMap := buildSourceMap(pr.sources)
	sinkMap := buildSinkMap(pr.good)
	pipes := enumeratePipes(sourceMap, sinkMap, m)
	debug("enumerated %d pipes", len(pipes))

	reachable := reachableKeys(sinkMap, pipes)
	if len(reachable) == 0 {
		return strictOrNil(opts, Outcome{OutOfScope: pr.outOfScope, Unreachable: append([]Sink{}, pr.good...)}, ErrNoReachableSinks)
	}

	// Partition pr.good into running/unreachable preserving the order
	// the caller supplied sinks in, rather than map iteration order.
	running := make([]Sink, 0, len(pr.good))
	var unreachable []Sink
	for _, sk := range pr.good {
		key := sinkKey{sk.Scope(), sk.FeedType()}
		if reachable[key] {
			running = append(running, sk)
		} else {
			unreachable = append(unreachable, sk)
		}
	}

	var chosen []pipeCand
	if single, ok := singlePipeCover(pipes, reachable); ok {
		debug("single pipe covers everything, cost=%v", single.cost)
		chosen = []pipeCand{single}
	} else {
		chosen = multiPipeCover(pipes, reachable)
		debug("multi-pipe cover with %d pipes", len(chosen))
	}

	actualPipes, err := instantiatePipes(chosen, sourceMap, running, reporter, m)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		OutOfScope:  pr.outOfScope,
		Unreachable: unreachable,
		Running:     running,
		Pipes:       actualPipes,
	}, nil
}

func strictOrNil(opts Options, out Outcome, err error) (Outcome, error) {
	if opts.Strict {
		return out, err
	}
	return out, nil
}
