// Package cmd implements the CLI application to manage a stack of precious metals.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/config"
	"github.com/etnz/stacker/gemini"
	"github.com/etnz/stacker/quote"
	"github.com/etnz/stacker/store"
	"github.com/sirupsen/logrus"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cfg = config.Load()

var (
	userFlag  = flag.String("user", cfg.User, "User owning the stack (STACKER_USER)")
	storeFlag = flag.String("store", cfg.Store, "Storage backend: file, sqlite or redis (STACKER_STORE)")
	dataFlag  = flag.String("data", cfg.Data, "Folder of the file store, or sqlite database (STACKER_DATA)")
	verbose   = flag.Bool("v", false, "verbose logs")
)

// now is the clock of the commands.
var now = time.Now

// settings returns the configuration overridden by the global flags.
func settings() *config.Config {
	c := *cfg
	c.User, c.Store, c.Data = *userFlag, *storeFlag, *dataFlag
	if *verbose {
		c.LogLevel = "debug"
	}
	return &c
}

func newLogger() *logrus.Logger {
	log := config.NewLogger(settings().LogLevel)
	logrus.SetLevel(log.GetLevel())
	return log
}

// openStore opens the configured store.
func openStore() (store.Store, error) {
	return store.Open(settings())
}

// newQuoter returns the configured price collaborator: the JSON price API when
// one is set, Gemini otherwise. Quotes are cached and rate limited.
func newQuoter(ctx context.Context, log logrus.FieldLogger) (quote.Quoter, error) {
	c := settings()
	var upstream quote.Quoter
	if c.QuoteURL != "" {
		upstream = &quote.HTTP{URL: c.QuoteURL, Path: c.QuotePath, Currency: stacker.DefaultCurrency}
	} else {
		gen, err := gemini.NewGenerator(ctx)
		if err != nil {
			return nil, fmt.Errorf("cannot create Gemini client: %w", err)
		}
		q := gemini.NewQuoter(gen, c.Model)
		q.Log = log
		upstream = q
	}
	cached := quote.NewCache(upstream, c.QuoteTTL, c.QuoteInterval)
	cached.Log = log
	return cached, nil
}

// loadStack loads the stack of the current user.
func loadStack(ctx context.Context, st store.Store) (stacker.Document, *stacker.Stack, error) {
	doc, err := st.Load(ctx, *userFlag)
	if err != nil {
		return doc, nil, fmt.Errorf("cannot load the stack of %q: %w", *userFlag, err)
	}
	return doc, stacker.NewStack(doc.Stack...), nil
}

// saveStack saves s for the current user. The stack value is updated when
// every metal of s is quoted, the previous value is kept otherwise.
func saveStack(ctx context.Context, st store.Store, prev stacker.Document, s *stacker.Stack, quotes stacker.Quotes) error {
	doc := stacker.NewDocument(s, prev.Previous(), now())
	if quotes.Cover(s.Metals()) {
		doc = stacker.NewDocument(s, stacker.MarketValue(s.Holdings(), quotes), now())
	}
	if err := st.Save(ctx, *userFlag, doc); err != nil {
		return fmt.Errorf("cannot save the stack of %q: %w", *userFlag, err)
	}
	return nil
}
