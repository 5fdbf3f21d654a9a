package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/quote"
	"github.com/etnz/stacker/renderer"
	"github.com/google/subcommands"
)

type priceCmd struct{}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "display metal spot prices" }
func (*priceCmd) Usage() string {
	return `stacker price [metal...]

  Displays the spot price of the metals, all of them by default.
`
}

func (*priceCmd) SetFlags(f *flag.FlagSet) {}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	metals := stacker.Metals
	if f.NArg() > 0 {
		metals = nil
		for _, arg := range f.Args() {
			m, err := stacker.ParseMetal(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitUsageError
			}
			metals = append(metals, m)
		}
	}

	q, err := newQuoter(ctx, newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	quotes, err := quote.FetchAll(ctx, q, metals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching prices: %v\n", err)
	}
	if len(quotes) == 0 {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.QuotesMarkdown(quotes))
	return subcommands.ExitSuccess
}
