package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/quote"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the stack and spot prices as JSON" }
func (*exportCmd) Usage() string {
	return `stacker export [-o <file>]

  Writes the stack, its total weight and the spot prices to a JSON file,
  stacker_pro_portfolio_<user>.json by default. Use -o - for stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, - for stdout")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := newLogger()
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

	var quotes stacker.Quotes
	if q, err := newQuoter(ctx, log); err != nil {
		log.WithError(err).Warn("export without prices")
	} else if quotes, err = quote.FetchAll(ctx, q, stacker.Metals); err != nil {
		log.WithError(err).Warn("export with missing prices")
	}

	e := stacker.NewExport(*userFlag, s, quotes, now())
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding export: %v\n", err)
		return subcommands.ExitFailure
	}
	data = append(data, '\n')

	if c.output == "-" {
		os.Stdout.Write(data)
		return subcommands.ExitSuccess
	}
	filename := c.output
	if filename == "" {
		filename = e.Filename()
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %d entries to %s\n", s.Len(), filename)
	return subcommands.ExitSuccess
}
