package stacker

import (
	"time"
)

// Source is a web page a quote was grounded on.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Quote is a spot price of a metal at a point in time. It is an immutable
// snapshot, the engine never averages quotes.
type Quote struct {
	Price       float64   `json:"price"` // per troy ounce
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"lastUpdated"`
	Sources     []Source  `json:"sources"`
}

// Spot returns the quote price as money.
func (q Quote) Spot() Money {
	c := q.Currency
	if c == "" {
		c = DefaultCurrency
	}
	return M(toNumberOrZero(q.Price), c)
}

// Quotes holds the latest quote of each metal.
type Quotes map[Metal]Quote

// MarshalJSON writes a key for every supported metal, null when there is no
// quote for it.
func (q Quotes) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, m := range Metals {
		if v, ok := q[m]; ok {
			w.Append(string(m), v)
		} else {
			w.Append(string(m), nil)
		}
	}
	return w.MarshalJSON()
}

// Cover reports whether there is a quote for each of metals.
func (q Quotes) Cover(metals []Metal) bool {
	for _, m := range metals {
		if _, ok := q[m.orSilver()]; !ok {
			return false
		}
	}
	return true
}
