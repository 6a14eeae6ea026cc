package plan

import (
	"testing"

	"github.com/pkgaudit/pkgaudit/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSourceMapPicksCheapest(t *testing.T) {
	cheap := &fakeSource{typ: typeA, sc: scope.Package, cost: 1}
	pricey := &fakeSource{typ: typeA, sc: scope.Package, cost: 5}

	m := buildSourceMap([]Source{pricey, cheap})
	got := m[sinkKey{scope.Package, typeA}]
	assert.Same(t, cheap, got.(*fakeSource))
}

func TestEnumeratePipesIncludesUnterminatedPrefixes(t *testing.T) {
	src := &fakeSource{typ: typeA, sc: scope.Package, cost: 1}
	sourceMap := buildSourceMap([]Source{src})
	sinkMap := map[sinkKey][]Sink{}
	m := &matrix{entries: map[matrixKey]matrixEntry{}}

	pipes := enumeratePipes(sourceMap, sinkMap, m)
	require.Len(t, pipes, 1)
	assert.Equal(t, typeA, pipes[0].types[0])
}

func TestEnumeratePipesExtendsThroughMatrix(t *testing.T) {
	src := &fakeSource{typ: typeA, sc: scope.Package, cost: 1}
	sourceMap := buildSourceMap([]Source{src})
	sink := newRecordingSink("sink", typeB, scope.Package)
	sinkMap := buildSinkMap([]Sink{sink})

	tr := &fakeTransform{edges: []TransformEdge{{Src: typeA, Dst: typeB, MinScope: scope.Version, Cost: 2}}}
	m := buildMatrix([]Source{src}, []Sink{sink}, []Transform{tr}, scope.Package, scope.Package)

	pipes := enumeratePipes(sourceMap, sinkMap, m)

	found := false
	for _, p := range pipes {
		if len(p.types) == 2 && p.types[0] == typeA && p.types[1] == typeB {
			found = true
			assert.Equal(t, 3.0, p.cost)
		}
	}
	assert.True(t, found, "expected an extended pipe A->B")
}

func TestEnumeratePipesNeverRevisitsAType(t *testing.T) {
	src := &fakeSource{typ: typeA, sc: scope.Package, cost: 1}
	sourceMap := buildSourceMap([]Source{src})
	sinkB := newRecordingSink("b", typeB, scope.Package)
	sinkMap := buildSinkMap([]Sink{sinkB})

	loop := &fakeTransform{edges: []TransformEdge{
		{Src: typeA, Dst: typeB, MinScope: scope.Version, Cost: 1},
		{Src: typeB, Dst: typeA, MinScope: scope.Version, Cost: 1},
	}}
	m := buildMatrix([]Source{src}, []Sink{sinkB}, []Transform{loop}, scope.Package, scope.Package)

	pipes := enumeratePipes(sourceMap, sinkMap, m)
	for _, p := range pipes {
		seen := map[string]bool{}
		for _, typ := range p.types {
			key := string(typ)
			require.False(t, seen[key], "pipe revisited type %v: %v", typ, p.types)
			seen[key] = true
		}
	}
}
