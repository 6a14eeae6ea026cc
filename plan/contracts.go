// Package plan implements the planner (Plug) and runtime described by the
// package-tree auditing framework: it selects sources, composes
// transforms, and binds sinks into one or more concrete pipelines that
// together drive every satisfiable sink at minimum aggregate cost.
//
// The planner only ever sees its collaborators through the narrow
// contracts declared in this file (Source, Transform, Sink, Reporter,
// Feeder, Iterator). Concrete checks, repository access, and reporter
// output formatting live outside this package.
package plan

import (
	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/scope"
)

// Iterator is a one-shot, pull-based sequence of elements. A call to Next
// either returns the next element (ok=true), or signals end of iteration
// (ok=false, err=nil), or reports a failure (err!=nil). Once Next returns
// ok=false, every subsequent call must keep returning ok=false: iterators
// are not restartable.
type Iterator interface {
	Next() (element any, ok bool, err error)
	Close() error
}

// Source is the origin of a lazy, finite sequence of elements of a single
// FeedType at a fixed Scope. Cost is a non-negative figure the planner
// uses to prefer cheaper sources when more than one produces the same
// (Scope, FeedType).
type Source interface {
	FeedType() feed.Type
	Scope() scope.Scope
	Cost() float64
	Feed() Iterator
}

// TransformEdge is one (Src, Dst, MinScope, Cost) conversion a Transform
// is able to perform. A Transform legally realizes this edge only inside
// a pipe whose effective scope is >= MinScope.
type TransformEdge struct {
	Src      feed.Type
	Dst      feed.Type
	MinScope scope.Scope
	Cost     float64
}

// Transform maps a lazy sequence of one FeedType to another. A single
// Transform may advertise several edges; Apply is invoked once per edge
// actually used by an instantiated pipe.
type Transform interface {
	// Edges lists every conversion this Transform is able to perform.
	Edges() []TransformEdge
	// Apply maps tail (elements of edge.Src) to a new Iterator of
	// edge.Dst elements. edge is always one of the values Edges()
	// returned.
	Apply(edge TransformEdge, tail Iterator) (Iterator, error)
}

// Result is an opaque check result delivered to a Reporter. Implementors
// supply both a short human-readable line and a structured XML block.
type Result interface {
	ToStr() string
	ToXML() string
}

// Grouped is implemented by Results that carry category/package/version
// attributes, used by grouping reporters (e.g. a fancy reporter that
// headers output by "cat/pkg"). A Result need not implement Grouped.
type Grouped interface {
	Category() string
	Package() string
	Version() string
}

// Reporter receives check results for one pass, bracketed by Start and
// Finish. The planner never calls Start or Finish itself (spec: "the
// planner does not call start/finish"); that bracketing is the caller's
// responsibility around draining the pipes Plug returns.
type Reporter interface {
	Start() error
	AddReport(result Result) error
	Finish() error
}

// Sink (a.k.a. check) consumes elements of FeedType at Scope. Feed must
// return a non-nil Iterator that, as it is drained, delivers each element
// to reporter via AddReport and yields the element downstream unchanged.
type Sink interface {
	FeedType() feed.Type
	Scope() scope.Scope
	Feed(tail Iterator, reporter Reporter) (Iterator, error)
}

// Feeder is an opaque, per-pass collaborator that sinks may use for
// profile evaluation and cross-sink memoization. The planner never
// constructs or touches a Feeder; it is wired into sinks by their own
// constructors (dependency injection), not threaded through Plug.
type Feeder interface {
	// Profile evaluates pkg (an opaque, domain-specific package handle)
	// and returns its profile data.
	Profile(pkg any) (any, error)
	// QueryCache is a mapping sinks may use to memoize atom lookups for
	// the lifetime of one pass. Callers sharing a Feeder across sinks
	// share this cache.
	QueryCache() map[string]any
}
