package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stacker"
)

// DefaultPath is the JSONPath of the price in a quote response.
const DefaultPath = "$.price"

// HTTP is a Quoter reading a JSON price API.
//
// URL is a template where %s is replaced by the metal symbol (XAG, XAU), e.g.
// "https://api.gold-api.com/price/%s". Path is a JSONPath expression
// selecting the price in the response, DefaultPath when empty.
type HTTP struct {
	URL      string
	Path     string
	Currency string
	Client   *http.Client
	Now      func() time.Time
}

// Quote fetches the price of metal.
func (h *HTTP) Quote(ctx context.Context, metal stacker.Metal) (stacker.Quote, error) {
	addr := h.URL
	if strings.Contains(addr, "%s") {
		addr = fmt.Sprintf(addr, metal.Symbol())
	}
	var jobj any
	if err := jwget(ctx, h.client(), addr, &jobj); err != nil {
		return stacker.Quote{}, fmt.Errorf("error retrieving %s price: %w", metal, err)
	}

	path := h.Path
	if path == "" {
		path = DefaultPath
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return stacker.Quote{}, fmt.Errorf("error reading %s price at %q: %w", metal, path, err)
	}
	price, err := readPrice(jval)
	if err != nil {
		return stacker.Quote{}, fmt.Errorf("error reading %s price at %q: %w", metal, path, err)
	}

	currency := h.Currency
	if currency == "" {
		currency = stacker.DefaultCurrency
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	title := addr
	if u, err := url.Parse(addr); err == nil && u.Host != "" {
		title = u.Host
	}
	return stacker.Quote{
		Price:       price,
		Currency:    currency,
		LastUpdated: now(),
		Sources:     []stacker.Source{{Title: title, URI: addr}},
	}, nil
}

func (h *HTTP) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

// readPrice reads a positive price out of a JSONPath result.
func readPrice(jval any) (float64, error) {
	// jsonpath returns either a single value or a list of matches, keep the
	// first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return 0, fmt.Errorf("no match")
		}
		jval = jlist[0]
	}
	var val float64
	switch v := jval.(type) {
	case float64:
		val = v
	case string:
		// some APIs return decimals with a comma, or thousands separated
		// with a space.
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", v, err)
		}
		val = f
	default:
		return 0, fmt.Errorf("price is neither a number nor a string: %v", jval)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid price %v", val)
	}
	return val, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
