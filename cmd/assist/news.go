package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// newsCmd fetches summarized news and filings for a ticker.
type newsCmd struct{}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "Fetch summarized news and filings for a ticker." }

func (*newsCmd) Usage() string {
	return `news <ticker>:
  Fetch summarized news and filings for a stock ticker.
`
}

func (*newsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *newsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newCLIApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	ticker := strings.Join(f.Args(), " ")
	return app.render(app.service.FetchNews(ctx, ticker))
}
