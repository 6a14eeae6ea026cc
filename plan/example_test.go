package plan_test

import (
	"fmt"

	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/plan"
	"github.com/pkgaudit/pkgaudit/scope"
)

const (
	versionFeed feed.Type = "cat/pkg-ver"
	packageFeed feed.Type = "cat/pkg"
)

// sliceSource is a minimal plan.Source over an in-memory slice.
type sliceSource struct {
	typ   feed.Type
	sc    scope.Scope
	items []any
}

func (s *sliceSource) FeedType() feed.Type { return s.typ }
func (s *sliceSource) Scope() scope.Scope  { return s.sc }
func (s *sliceSource) Cost() float64       { return 1 }
func (s *sliceSource) Feed() plan.Iterator { return &sliceIterator{items: s.items} }

type sliceIterator struct {
	items []any
	idx   int
}

func (it *sliceIterator) Next() (any, bool, error) {
	if it.idx >= len(it.items) {
		return nil, false, nil
	}
	v := it.items[it.idx]
	it.idx++
	return v, true, nil
}

func (it *sliceIterator) Close() error { return nil }

// printSink reports a one-line result for every element it sees;
// printReporter prints those results.
type printSink struct {
	typ feed.Type
	sc  scope.Scope
}

func (s *printSink) FeedType() feed.Type { return s.typ }
func (s *printSink) Scope() scope.Scope  { return s.sc }

func (s *printSink) Feed(tail plan.Iterator, reporter plan.Reporter) (plan.Iterator, error) {
	return &printTee{tail: tail, reporter: reporter}, nil
}

type printTee struct {
	tail     plan.Iterator
	reporter plan.Reporter
}

func (t *printTee) Next() (any, bool, error) {
	v, ok, err := t.tail.Next()
	if err != nil || !ok {
		return v, ok, err
	}
	if err := t.reporter.AddReport(printResult{v}); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (t *printTee) Close() error { return t.tail.Close() }

type printResult struct{ v any }

func (r printResult) ToStr() string { return fmt.Sprintf("checked %v", r.v) }
func (r printResult) ToXML() string { return fmt.Sprintf("<checked>%v</checked>", r.v) }

type printReporter struct{}

func (printReporter) Start() error { return nil }
func (printReporter) AddReport(r plan.Result) error {
	fmt.Println(r.ToStr())
	return nil
}
func (printReporter) Finish() error { return nil }

// ExamplePlug wires one source directly to one sink at the same scope and
// feed type, with no transform needed, and drains the single resulting
// pipe to completion.
func ExamplePlug() {
	src := &sliceSource{typ: versionFeed, sc: scope.Version, items: []any{"pkg-1.0", "pkg-1.1"}}
	sink := &printSink{typ: versionFeed, sc: scope.Version}
	reporter := printReporter{}

	out, err := plan.Plug([]plan.Sink{sink}, nil, []plan.Source{src}, reporter, plan.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	reporter.Start()
	for _, p := range out.Pipes {
		for {
			_, ok, err := p.Next()
			if err != nil {
				fmt.Println("error:", err)
				return
			}
			if !ok {
				break
			}
		}
		p.Close()
	}
	reporter.Finish()

	// Output:
	// checked pkg-1.0
	// checked pkg-1.1
}

// ExamplePlug_outOfScope shows a sink whose scope no source can satisfy:
// it is reported back in OutOfScope and never appears in Running or Pipes.
func ExamplePlug_outOfScope() {
	src := &sliceSource{typ: packageFeed, sc: scope.Package, items: []any{"pkg"}}
	sink := &printSink{typ: packageFeed, sc: scope.Repository}

	out, err := plan.Plug([]plan.Sink{sink}, nil, []plan.Source{src}, printReporter{}, plan.Options{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("out of scope:", len(out.OutOfScope))
	fmt.Println("running:", len(out.Running))
	fmt.Println("pipes:", len(out.Pipes))

	// Output:
	// out of scope: 1
	// running: 0
	// pipes: 0
}
