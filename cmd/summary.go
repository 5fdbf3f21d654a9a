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

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	by       string
	spot     float64
	goldSpot float64
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the value and performance of the stack" }
func (*summaryCmd) Usage() string {
	return `stacker summary [-by category|type] [-spot <price>] [-gold-spot <price>]

  Displays the weight, value, change since the last summary, performance per
  metal and distribution of the stack. Spot prices are fetched unless given.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "category", "Distribution grouping: category or type")
	f.Float64Var(&c.spot, "spot", 0, "Silver spot price per troy ounce, fetched when 0")
	f.Float64Var(&c.goldSpot, "gold-spot", 0, "Gold spot price per troy ounce, fetched when 0")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, ok := stacker.KeyFuncOf(c.by)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid grouping %q, want category or type\n", c.by)
		return subcommands.ExitUsageError
	}
	if c.spot < 0 || c.goldSpot < 0 {
		fmt.Fprintln(os.Stderr, "Error: spot prices must be positive")
		return subcommands.ExitUsageError
	}

	log := newLogger()
	st, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	doc, s, err := loadStack(ctx, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	quotes := c.givenQuotes()
	if !quotes.Cover(s.Metals()) {
		q, err := newQuoter(ctx, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		q = withGiven(quotes, q)
		if quotes, err = quote.FetchAll(ctx, q, s.Metals()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	sum := stacker.NewSummary(*userFlag, doc, quotes, key, now())
	if err := saveStack(ctx, st, doc, s, quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(sum))
	return subcommands.ExitSuccess
}

// givenQuotes returns the quotes set by flags.
func (c *summaryCmd) givenQuotes() stacker.Quotes {
	quotes := stacker.Quotes{}
	if c.spot > 0 {
		quotes[stacker.Silver] = stacker.Quote{Price: c.spot, Currency: stacker.DefaultCurrency, LastUpdated: now()}
	}
	if c.goldSpot > 0 {
		quotes[stacker.Gold] = stacker.Quote{Price: c.goldSpot, Currency: stacker.DefaultCurrency, LastUpdated: now()}
	}
	return quotes
}

// given serves the quotes set by flags, and asks the others upstream.
type given struct {
	quotes   quote.Fixed
	upstream quote.Quoter
}

func withGiven(quotes stacker.Quotes, upstream quote.Quoter) quote.Quoter {
	return &given{quotes: quote.Fixed(quotes), upstream: upstream}
}

func (g *given) Quote(ctx context.Context, metal stacker.Metal) (stacker.Quote, error) {
	if q, err := g.quotes.Quote(ctx, metal); err == nil {
		return q, nil
	}
	return g.upstream.Quote(ctx, metal)
}
