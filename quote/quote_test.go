package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/etnz/stacker"
)

var now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestHTTP_Quote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/price/XAG":
			fmt.Fprint(w, `{"name":"Silver","price":32.45,"symbol":"XAG"}`)
		case "/price/XAU":
			fmt.Fprint(w, `{"data":[{"last":"2 650,10"}]}`)
		case "/empty/XAG":
			fmt.Fprint(w, `{"price":0}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		url     string
		path    string
		metal   stacker.Metal
		want    float64
		wantErr bool
	}{
		{name: "default path", url: srv.URL + "/price/%s", metal: stacker.Silver, want: 32.45},
		{name: "string with comma", url: srv.URL + "/price/%s", path: "$.data[0].last", metal: stacker.Gold, want: 2650.10},
		{name: "zero price", url: srv.URL + "/empty/%s", metal: stacker.Silver, wantErr: true},
		{name: "not found", url: srv.URL + "/missing/%s", metal: stacker.Silver, wantErr: true},
		{name: "bad path", url: srv.URL + "/price/%s", path: "$.nothing", metal: stacker.Silver, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HTTP{URL: tt.url, Path: tt.path, Client: srv.Client(), Now: func() time.Time { return now }}
			got, err := h.Quote(context.Background(), tt.metal)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Quote() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Quote() unexpected error: %v", err)
			}
			if got.Price != tt.want {
				t.Errorf("Quote() price = %v, want %v", got.Price, tt.want)
			}
			if got.Currency != "USD" || !got.LastUpdated.Equal(now) || len(got.Sources) != 1 {
				t.Errorf("Quote() = %+v, want USD quote at %v with one source", got, now)
			}
		})
	}
}

// stubQuoter counts calls and fails on demand.
type stubQuoter struct {
	mu    sync.Mutex
	price float64
	err   error
	calls int
}

func (s *stubQuoter) Quote(_ context.Context, metal stacker.Metal) (stacker.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return stacker.Quote{}, s.err
	}
	return stacker.Quote{Price: s.price, Currency: "USD", LastUpdated: now}, nil
}

func TestCache_ServesFresh(t *testing.T) {
	up := &stubQuoter{price: 30}
	c := NewCache(up, time.Hour, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		q, err := c.Quote(ctx, stacker.Silver)
		if err != nil || q.Price != 30 {
			t.Fatalf("Quote() = %v, %v, want 30", q, err)
		}
	}
	if up.calls != 1 {
		t.Errorf("upstream calls = %d, want 1", up.calls)
	}
}

func TestCache_FallbackToLastGood(t *testing.T) {
	up := &stubQuoter{price: 30}
	c := NewCache(up, time.Hour, 0)
	ctx := context.Background()

	if _, err := c.Quote(ctx, stacker.Silver); err != nil {
		t.Fatalf("Quote() unexpected error: %v", err)
	}
	c.Flush()
	up.err = errors.New("upstream down")
	up.price = 99

	q, err := c.Quote(ctx, stacker.Silver)
	if err != nil {
		t.Fatalf("Quote() unexpected error: %v", err)
	}
	if q.Price != 30 {
		t.Errorf("Quote() price = %v, want last good 30", q.Price)
	}

	// no last good quote for gold.
	if _, err := c.Quote(ctx, stacker.Gold); !errors.Is(err, ErrNoQuote) {
		t.Errorf("Quote(gold) error = %v, want %v", err, ErrNoQuote)
	}
}

func TestCache_RateLimited(t *testing.T) {
	up := &stubQuoter{price: 30}
	c := NewCache(up, time.Hour, time.Hour)
	ctx := context.Background()

	// the burst allows one call per metal.
	for _, m := range stacker.Metals {
		if _, err := c.Quote(ctx, m); err != nil {
			t.Fatalf("Quote(%s) unexpected error: %v", m, err)
		}
	}
	c.Flush()
	q, err := c.Quote(ctx, stacker.Silver)
	if err != nil || q.Price != 30 {
		t.Errorf("Quote() = %v, %v, want last good 30", q, err)
	}
	if up.calls != len(stacker.Metals) {
		t.Errorf("upstream calls = %d, want %d", up.calls, len(stacker.Metals))
	}
}

func TestFetchAll(t *testing.T) {
	ctx := context.Background()
	fixed := Fixed{stacker.Silver: {Price: 30, Currency: "USD"}}

	got, err := FetchAll(ctx, fixed, []stacker.Metal{stacker.Silver})
	if err != nil {
		t.Fatalf("FetchAll() unexpected error: %v", err)
	}
	if got[stacker.Silver].Price != 30 {
		t.Errorf("FetchAll() = %v, want silver at 30", got)
	}

	got, err = FetchAll(ctx, fixed, stacker.Metals)
	if !errors.Is(err, ErrNoQuote) {
		t.Errorf("FetchAll() error = %v, want %v", err, ErrNoQuote)
	}
	if _, ok := got[stacker.Silver]; !ok {
		t.Errorf("FetchAll() = %v, want the silver quote kept", got)
	}
}

// slowQuoter fails gold at once and answers silver after a delay, unless
// the context is done first.
type slowQuoter struct{ delay time.Duration }

func (s slowQuoter) Quote(ctx context.Context, metal stacker.Metal) (stacker.Quote, error) {
	if metal == stacker.Gold {
		return stacker.Quote{}, errors.New("gold upstream down")
	}
	select {
	case <-time.After(s.delay):
		return stacker.Quote{Price: 30, Currency: "USD", LastUpdated: now}, nil
	case <-ctx.Done():
		return stacker.Quote{}, ctx.Err()
	}
}

func TestFetchAll_FailureDoesNotCancelOthers(t *testing.T) {
	got, err := FetchAll(context.Background(), slowQuoter{delay: 50 * time.Millisecond}, stacker.Metals)
	if err == nil {
		t.Fatal("FetchAll() error = nil, want the gold failure")
	}
	if got[stacker.Silver].Price != 30 {
		t.Errorf("FetchAll() = %v, want silver at 30 despite the gold failure", got)
	}
	if _, ok := got[stacker.Gold]; ok {
		t.Errorf("FetchAll() = %v, want no gold quote", got)
	}
}
