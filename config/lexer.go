package config

import "github.com/alecthomas/participle/v2/lexer"

// pipelineLexer tokenizes the declarative pipeline-wiring file: a small
// whitespace/comment-insensitive grammar naming sources, transforms, and
// sinks to wire into one plan.Plug pass.
var pipelineLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"Arrow", `->`, nil},
		{"Number", `[0-9]+(\.[0-9]+)?`, nil},
		{"Ident", `[a-zA-Z][a-zA-Z0-9_/.-]*`, nil},
		{"Punct", `[{}]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
