package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// summaryCmd fetches a stock summary for a ticker.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "Fetch an AI-generated summary for a stock ticker." }

func (*summaryCmd) Usage() string {
	return `summary <ticker>:
  Fetch an AI-generated summary for a stock ticker (e.g. AAPL).
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newCLIApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	ticker := strings.Join(f.Args(), " ")
	return app.render(app.service.FetchSummary(ctx, ticker))
}
