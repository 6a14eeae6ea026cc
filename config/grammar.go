package config

// pipelineFile is the participle grammar for the declarative
// pipeline-wiring file: a "pipeline { ... }" block naming the sources,
// transforms, and sinks one Plug pass should wire together, along with
// their costs and scopes.
//
// Example:
//
//	pipeline {
//	    source cat/pkg-ver version cost 1
//	    transform cat/pkg-ver -> cat/pkg min package cost 2
//	    sink cat/pkg package
//	}
type pipelineFile struct {
	Decls []*pipelineDecl `"pipeline" "{" @@* "}"`
}

type pipelineDecl struct {
	Source    *sourceDecl    `(  @@`
	Transform *transformDecl ` | @@`
	Sink      *sinkDecl      ` | @@ )`
}

type sourceDecl struct {
	FeedType string  `"source" @Ident`
	Scope    string  `@Ident`
	Cost     float64 `"cost" @Number`
}

type transformDecl struct {
	From     string  `"transform" @Ident "->"`
	To       string  `@Ident`
	MinScope string  `"min" @Ident`
	Cost     float64 `"cost" @Number`
}

type sinkDecl struct {
	FeedType string `"sink" @Ident`
	Scope    string `@Ident`
}
