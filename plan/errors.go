package plan

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by Plug. They represent legitimate "nothing to
// run" outcomes, not bugs; Plug only returns them when Options.Strict
// asks for an error instead of an empty Outcome.Running.
var (
	// ErrNoSources indicates no sources were supplied at all.
	ErrNoSources = errors.New("plan: no sources provided")

	// ErrNoSinks indicates no sinks were supplied at all.
	ErrNoSinks = errors.New("plan: no sinks provided")

	// ErrNoReachableSinks indicates every sink was either out of scope
	// or unreachable through the available transforms.
	ErrNoReachableSinks = errors.New("plan: no sinks reachable from any source")
)

// errAssertf panics with a message identifying an invariant violation:
// a sink left unbound, a transform chain referencing an unknown edge, a
// nil tail from a sink, or a reachable sink the cover search failed to
// cover. These are planner bugs, never runtime errors (spec §7).
func errAssertf(format string, args ...any) {
	panic(fmt.Sprintf("plan: invariant violated: "+format, args...))
}
