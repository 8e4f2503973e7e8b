package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// questionCmd submits a free-text financial question.
type questionCmd struct{}

func (*questionCmd) Name() string     { return "question" }
func (*questionCmd) Synopsis() string { return "Ask a free-text financial question." }

func (*questionCmd) Usage() string {
	return `question <text...>:
  Ask a free-text financial question, e.g. "What is a bond?".
`
}

func (*questionCmd) SetFlags(_ *flag.FlagSet) {}

func (c *questionCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newCLIApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	question := strings.Join(f.Args(), " ")
	return app.render(app.service.AskQuestion(ctx, question))
}
