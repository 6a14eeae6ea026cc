package config

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/scope"
)

var pipelineParser = participle.MustBuild[pipelineFile](
	participle.Lexer(pipelineLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// DeclaredSource, DeclaredTransform, and DeclaredSink are the resolved
// form of one pipeline-file declaration: scope names already translated
// to scope.Scope, ready for a caller to match against its
// registry of concrete Source/Transform/Sink implementations by feed
// type and construct the actual pipeline.
type DeclaredSource struct {
	FeedType feed.Type
	Scope    scope.Scope
	Cost     float64
}

type DeclaredTransform struct {
	From, To feed.Type
	MinScope scope.Scope
	Cost     float64
}

type DeclaredSink struct {
	FeedType feed.Type
	Scope    scope.Scope
}

// Pipeline is a fully-resolved pipeline-wiring declaration.
type Pipeline struct {
	Sources    []DeclaredSource
	Transforms []DeclaredTransform
	Sinks      []DeclaredSink
}

// ParsePipelineFile reads and resolves the pipeline-wiring DSL file at path.
func ParsePipelineFile(path string) (*Pipeline, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading pipeline file %s: %w", path, err)
	}
	return ParsePipeline(path, string(src))
}

// ParsePipeline parses and resolves raw pipeline-wiring DSL source. name
// is used only for error messages.
func ParsePipeline(name, src string) (*Pipeline, error) {
	ast, err := pipelineParser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("config: parsing pipeline: %w", err)
	}

	p := &Pipeline{}
	for _, decl := range ast.Decls {
		switch {
		case decl.Source != nil:
			sc, err := parseScope(decl.Source.Scope)
			if err != nil {
				return nil, fmt.Errorf("config: source %s: %w", decl.Source.FeedType, err)
			}
			p.Sources = append(p.Sources, DeclaredSource{
				FeedType: feed.Type(decl.Source.FeedType),
				Scope:    sc,
				Cost:     decl.Source.Cost,
			})
		case decl.Transform != nil:
			sc, err := parseScope(decl.Transform.MinScope)
			if err != nil {
				return nil, fmt.Errorf("config: transform %s->%s: %w", decl.Transform.From, decl.Transform.To, err)
			}
			p.Transforms = append(p.Transforms, DeclaredTransform{
				From:     feed.Type(decl.Transform.From),
				To:       feed.Type(decl.Transform.To),
				MinScope: sc,
				Cost:     decl.Transform.Cost,
			})
		case decl.Sink != nil:
			sc, err := parseScope(decl.Sink.Scope)
			if err != nil {
				return nil, fmt.Errorf("config: sink %s: %w", decl.Sink.FeedType, err)
			}
			p.Sinks = append(p.Sinks, DeclaredSink{
				FeedType: feed.Type(decl.Sink.FeedType),
				Scope:    sc,
			})
		}
	}
	return p, nil
}

func parseScope(name string) (scope.Scope, error) {
	switch name {
	case "version":
		return scope.Version, nil
	case "package":
		return scope.Package, nil
	case "category":
		return scope.Category, nil
	case "repository":
		return scope.Repository, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScope, name)
	}
}
