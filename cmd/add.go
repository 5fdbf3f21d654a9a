package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/date"
	"github.com/etnz/stacker/gemini"
	"github.com/etnz/stacker/quote"
	"github.com/etnz/stacker/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	name     string
	qty      float64
	oz       float64
	purity   float64
	category string
	metal    string
	price    float64
	date     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add an entry to the stack" }
func (*addCmd) Usage() string {
	return `stacker add <description>
stacker add -name <name> -qty <n> -oz <oz> [-purity <p>] [-category <c>] [-metal <m>] [-price <paid>] [-date <date>]

  Adds an entry to the stack. A free text description like "10 American Silver
  Eagles" is read by Gemini, otherwise the entry is described by flags.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the item, e.g. 'American Silver Eagle'")
	f.Float64Var(&c.qty, "qty", 1, "Number of units")
	f.Float64Var(&c.oz, "oz", 0, "Weight of a unit in troy ounces")
	f.Float64Var(&c.purity, "purity", 0.999, "Fine metal fraction, e.g. 0.9999")
	f.StringVar(&c.category, "category", "coin", "Category: coin, bar, round or junk")
	f.StringVar(&c.metal, "metal", "", "Metal: silver or gold. Overrides the metal read from the description")
	f.Float64Var(&c.price, "price", 0, "Total price paid, 0 when unknown")
	f.StringVar(&c.date, "date", "", "Purchase date (YYYY-MM-DD)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	purchase := stacker.Purchase{Price: c.price}
	if c.date != "" {
		on, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		purchase.On = on
	}
	if c.price < 0 {
		fmt.Fprintln(os.Stderr, "Error: -price must not be negative")
		return subcommands.ExitUsageError
	}

	entry, err := c.entry(ctx, strings.Join(f.Args(), " "))
	if errors.Is(err, errNoEntry) {
		fmt.Fprintln(os.Stderr, "Error: describe the entry, or use -name and -oz")
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading the entry: %v\n", err)
		return subcommands.ExitFailure
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
	h := stacker.NewHolding(entry.ParsedItem, entry.Metal, purchase, now())
	s.Add(h)

	var quotes stacker.Quotes
	if q, err := newQuoter(ctx, log); err != nil {
		log.WithError(err).Warn("stack value not updated")
	} else if quotes, err = quote.FetchAll(ctx, q, s.Metals()); err != nil {
		log.WithError(err).Warn("stack value not updated")
	}
	if err := saveStack(ctx, st, doc, s, quotes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingsMarkdown([]stacker.Holding{h}))
	return subcommands.ExitSuccess
}

var errNoEntry = errors.New("no entry")

// entry reads the entry from the description, or from the flags when there
// is none.
func (c *addCmd) entry(ctx context.Context, description string) (gemini.Entry, error) {
	var e gemini.Entry
	if description != "" {
		gen, err := gemini.NewGenerator(ctx)
		if err != nil {
			return e, err
		}
		if e, err = gemini.NewParser(gen, cfg.Model).ParseEntry(ctx, description); err != nil {
			return e, err
		}
	} else {
		if c.name == "" || c.oz <= 0 {
			return e, errNoEntry
		}
		e.ParsedItem = stacker.ParsedItem{
			Name:      c.name,
			OzPerUnit: c.oz,
			Quantity:  c.qty,
			Purity:    c.purity,
			Category:  c.category,
		}
	}
	if c.metal != "" {
		m, err := stacker.ParseMetal(c.metal)
		if err != nil {
			return e, err
		}
		e.Metal = m
	}
	return e, nil
}
