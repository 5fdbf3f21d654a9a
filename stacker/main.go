// Command stacker tracks a personal stack of precious metals.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stacker/cmd"
	"github.com/google/subcommands"
)

func main() {
	// Answers shell completion requests and exits, when COMP_LINE is set.
	cmd.Completion().Complete("stacker")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)
	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		found = found || sc.Name() == name
	})
	return found
}
