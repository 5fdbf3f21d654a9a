package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	metal string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the entries of the stack" }
func (*listCmd) Usage() string {
	return `stacker list [-metal <metal>]

  Lists the entries of the stack, newest first.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.metal, "metal", "", "Only list entries of this metal")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	_, s, err := loadStack(ctx, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	holdings := s.Holdings()
	if c.metal != "" {
		m, err := stacker.ParseMetal(c.metal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		holdings = stacker.HoldingsOf(holdings, m)
	}
	printMarkdown(renderer.HoldingsMarkdown(holdings))
	return subcommands.ExitSuccess
}
