// Command assist is the terminal front-end for the Intellivest assistant.
// It issues the backend's three request types (plus news) and renders the
// resulting text, keeping all interaction state in the assistant service.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var (
	flagConfig = flag.String("config", "", "path to TOML config file (default: $ASSIST_CONFIG)")
	flagPlain  = flag.Bool("plain", false, "print results as plain text without markdown rendering")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&summaryCmd{}, "assistant")
	commander.Register(&questionCmd{}, "assistant")
	commander.Register(&portfolioCmd{}, "assistant")
	commander.Register(&newsCmd{}, "assistant")
	commander.Register(&versionCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
