package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/renderer"
	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove an entry from the stack" }
func (*removeCmd) Usage() string {
	return `stacker remove <id>

  Removes an entry from the stack. The id can be shortened to any unambiguous
  prefix, like the 8 characters shown by 'stacker list'.
`
}

func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: remove requires exactly one id")
		return subcommands.ExitUsageError
	}

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
	h, err := findHolding(s, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.Remove(h.ID)

	// The stack value is left as is, it is refreshed by the next valuation.
	if err := saveStack(ctx, st, doc, s, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %s %s\n", renderer.ShortID(h.ID), h.Name)
	return subcommands.ExitSuccess
}

// findHolding returns the holding whose id starts with prefix.
func findHolding(s *stacker.Stack, prefix string) (stacker.Holding, error) {
	if h, ok := s.Get(prefix); ok {
		return h, nil
	}
	var found []stacker.Holding
	for _, h := range s.Holdings() {
		if prefix != "" && strings.HasPrefix(h.ID, prefix) {
			found = append(found, h)
		}
	}
	switch len(found) {
	case 0:
		return stacker.Holding{}, fmt.Errorf("no entry %q in the stack", prefix)
	case 1:
		return found[0], nil
	default:
		return stacker.Holding{}, fmt.Errorf("%q matches %d entries, use a longer id", prefix, len(found))
	}
}
