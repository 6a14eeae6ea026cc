package plan

import (
	"fmt"
	"testing"

	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/scope"
	"github.com/stretchr/testify/require"
)

// sliceIterator is the simplest possible Iterator: it replays a fixed
// slice of elements once.
type sliceIterator struct {
	items []any
	idx   int
}

func newSliceIterator(items ...any) *sliceIterator { return &sliceIterator{items: items} }

func (s *sliceIterator) Next() (any, bool, error) {
	if s.idx >= len(s.items) {
		return nil, false, nil
	}
	v := s.items[s.idx]
	s.idx++
	return v, true, nil
}

func (s *sliceIterator) Close() error { return nil }

// fakeSource is a Source that replays a fixed element slice.
type fakeSource struct {
	typ   feed.Type
	sc    scope.Scope
	cost  float64
	items []any
}

func (s *fakeSource) FeedType() feed.Type { return s.typ }
func (s *fakeSource) Scope() scope.Scope  { return s.sc }
func (s *fakeSource) Cost() float64       { return s.cost }
func (s *fakeSource) Feed() Iterator      { return newSliceIterator(s.items...) }

// mapStep is the element-level mapping function a fakeTransform applies
// for one edge. Returning keep=false drops the element.
type mapStep func(edge TransformEdge, v any) (out any, keep bool, err error)

// fakeTransform advertises a fixed edge set and applies mapStep per
// element, identity by default.
type fakeTransform struct {
	name  string
	edges []TransformEdge
	step  mapStep
	calls int
}

func (t *fakeTransform) Edges() []TransformEdge { return t.edges }

func (t *fakeTransform) Apply(edge TransformEdge, tail Iterator) (Iterator, error) {
	t.calls++
	step := t.step
	if step == nil {
		step = func(_ TransformEdge, v any) (any, bool, error) { return v, true, nil }
	}
	return &mappingIterator{edge: edge, tail: tail, step: step}, nil
}

func (t *fakeTransform) String() string { return t.name }

type mappingIterator struct {
	edge TransformEdge
	tail Iterator
	step mapStep
}

func (m *mappingIterator) Next() (any, bool, error) {
	for {
		v, ok, err := m.tail.Next()
		if err != nil || !ok {
			return nil, ok, err
		}
		out, keep, err := m.step(m.edge, v)
		if err != nil {
			return nil, false, err
		}
		if !keep {
			continue
		}
		return out, true, nil
	}
}

func (m *mappingIterator) Close() error { return m.tail.Close() }

// fakeResult is a trivial Result used by recordingSink.
type fakeResult struct {
	sinkName string
	value    any
}

func (r fakeResult) ToStr() string { return fmt.Sprintf("%s: %v", r.sinkName, r.value) }
func (r fakeResult) ToXML() string { return fmt.Sprintf("<r sink=%q>%v</r>", r.sinkName, r.value) }

// recordingSink tees every element it sees into *Seen, in the order it
// observed them, and reports one fakeResult per element.
type recordingSink struct {
	name string
	typ  feed.Type
	sc   scope.Scope
	Seen *[]any
}

func newRecordingSink(name string, typ feed.Type, sc scope.Scope) *recordingSink {
	return &recordingSink{name: name, typ: typ, sc: sc, Seen: &[]any{}}
}

func (s *recordingSink) FeedType() feed.Type { return s.typ }
func (s *recordingSink) Scope() scope.Scope  { return s.sc }

func (s *recordingSink) Feed(tail Iterator, reporter Reporter) (Iterator, error) {
	return &teeIterator{tail: tail, sink: s, reporter: reporter}, nil
}

func (s *recordingSink) String() string { return s.name }

type teeIterator struct {
	tail     Iterator
	sink     *recordingSink
	reporter Reporter
}

func (t *teeIterator) Next() (any, bool, error) {
	v, ok, err := t.tail.Next()
	if err != nil || !ok {
		return v, ok, err
	}
	*t.sink.Seen = append(*t.sink.Seen, v)
	if t.reporter != nil {
		if err := t.reporter.AddReport(fakeResult{sinkName: t.sink.name, value: v}); err != nil {
			return nil, false, err
		}
	}
	return v, true, nil
}

func (t *teeIterator) Close() error { return t.tail.Close() }

// fakeReporter records every call it receives and the order they arrived in.
type fakeReporter struct {
	started, finished bool
	reports           []Result
}

func (r *fakeReporter) Start() error {
	r.started = true
	return nil
}

func (r *fakeReporter) AddReport(res Result) error {
	r.reports = append(r.reports, res)
	return nil
}

func (r *fakeReporter) Finish() error {
	r.finished = true
	return nil
}

// drainAll fully drains it and returns every element yielded.
func drainAll(t *testing.T, it Iterator) []any {
	t.Helper()
	var out []any
	for {
		v, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, v)
	}
	require.NoError(t, it.Close())
	return out
}
