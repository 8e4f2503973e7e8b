package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
)

// portfolioCmd uploads a portfolio CSV file for analysis.
type portfolioCmd struct {
	file string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "Upload a portfolio CSV file for analysis." }

func (*portfolioCmd) Usage() string {
	return `portfolio -file <path>:
  Upload a portfolio CSV file (Stock,Shares,Price) for analysis.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "path to the portfolio CSV file")
}

func (c *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := newCLIApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	// Same client-side filter the browser file picker applies; content
	// validation is the backend's job.
	if c.file != "" && !strings.EqualFold(filepath.Ext(c.file), ".csv") {
		fmt.Fprintln(os.Stderr, "Error: portfolio file must have a .csv extension")
		return subcommands.ExitUsageError
	}

	return app.render(app.service.AnalyzePortfolioFile(ctx, c.file))
}
