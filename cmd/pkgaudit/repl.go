package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pkgaudit/pkgaudit/feed"
	"github.com/pkgaudit/pkgaudit/plan"
)

// runExplainREPL lets an operator type a feed type name and see which
// sinks of that type ended up running, unreachable, or out of scope for
// the pass just completed.
func runExplainREPL(cacheDir string, outcome plan.Outcome) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "pkgaudit> ",
		HistoryFile:       filepath.Join(cacheDir, "history"),
		HistorySearchFold: true,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		// Not a TTY (e.g. piped stdin) — nothing to explain interactively.
		return nil
	}
	defer rl.Close()

	fmt.Println(`type a feed type (e.g. "cat/pkg") to see its sinks, "exit" to quit`)
	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		default:
			explain(outcome, feed.Type(line))
		}
	}
}

func explain(outcome plan.Outcome, typ feed.Type) {
	found := false
	for _, s := range outcome.Running {
		if s.FeedType() == typ {
			fmt.Printf("running: %v (scope=%v)\n", s, s.Scope())
			found = true
		}
	}
	for _, s := range outcome.Unreachable {
		if s.FeedType() == typ {
			fmt.Printf("unreachable: %v (scope=%v)\n", s, s.Scope())
			found = true
		}
	}
	for _, s := range outcome.OutOfScope {
		if s.FeedType() == typ {
			fmt.Printf("out of scope: %v (scope=%v)\n", s, s.Scope())
			found = true
		}
	}
	if !found {
		fmt.Println("no sink declared for that feed type")
	}
}
