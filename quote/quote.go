// Package quote provides spot price sources for the metals of a stack, and a
// cache that keeps serving the last known price when the source fails.
package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/etnz/stacker"
	"golang.org/x/sync/errgroup"
)

// ErrNoQuote is returned when no price is available for a metal. Callers
// must not recompute values without a quote.
var ErrNoQuote = errors.New("no quote available")

// Quoter returns the current spot price of a metal.
type Quoter interface {
	Quote(ctx context.Context, metal stacker.Metal) (stacker.Quote, error)
}

// FetchAll fetches the quotes of metals concurrently.
//
// The returned quotes hold every successful fetch, even when an error is
// returned for another metal. A failing metal does not cancel the others.
func FetchAll(ctx context.Context, q Quoter, metals []stacker.Metal) (stacker.Quotes, error) {
	var (
		mu     sync.Mutex
		quotes = make(stacker.Quotes, len(metals))
	)
	var g errgroup.Group
	for _, m := range metals {
		g.Go(func() error {
			v, err := q.Quote(ctx, m)
			if err != nil {
				return fmt.Errorf("cannot quote %s: %w", m, err)
			}
			mu.Lock()
			quotes[m] = v
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return quotes, err
}

// Fixed is a Quoter serving a fixed set of quotes, typically prices given
// on the command line.
type Fixed stacker.Quotes

// Quote returns the fixed quote for metal, or ErrNoQuote.
func (f Fixed) Quote(_ context.Context, metal stacker.Metal) (stacker.Quote, error) {
	q, ok := f[metal]
	if !ok {
		return stacker.Quote{}, fmt.Errorf("%s: %w", metal, ErrNoQuote)
	}
	return q, nil
}
