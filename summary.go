package stacker

import (
	"time"
)

// Summary is an at-a-glance overview of a user's stack, as shown on the
// dashboard.
type Summary struct {
	User     string
	On       time.Time
	Holdings []Holding
	Quotes   Quotes

	// TotalOunces is the nominal weight of the stack.
	TotalOunces Ounces
	// WeightByMetal breaks TotalOunces down per metal.
	WeightByMetal []Share
	// Distribution breaks TotalOunces down per the requested key.
	Distribution []Share

	// Value is the nominal weight valued at the quotes.
	Value Money
	// Change since the previous session, valid when HasChange.
	Change    Money
	HasChange bool

	// Performance per metal, purity applied, for the metals with a quote.
	Performance map[Metal]Metrics
}

// NewSummary computes the summary of doc valued at quotes. The previous
// session value comes from doc.
func NewSummary(user string, doc Document, quotes Quotes, by KeyFunc, now time.Time) *Summary {
	if by == nil {
		by = ByCategory
	}
	s := NewStack(doc.Stack...)
	sum := &Summary{
		User:          user,
		On:            now,
		Holdings:      s.Holdings(),
		Quotes:        quotes,
		TotalOunces:   s.TotalOunces(),
		WeightByMetal: Distribution(doc.Stack, ByMetal),
		Distribution:  Distribution(doc.Stack, by),
		Value:         MarketValue(doc.Stack, quotes),
		Performance:   AggregateByMetal(doc.Stack, quotes),
	}
	sum.Change, sum.HasChange = ValueChange(doc.Previous(), sum.Value)
	return sum
}

// MetalsWithPerformance returns the metals of Performance in display order.
func (s *Summary) MetalsWithPerformance() []Metal {
	var res []Metal
	for _, m := range Metals {
		if _, ok := s.Performance[m]; ok {
			res = append(res, m)
		}
	}
	return res
}

// MarshalJSON writes the summary for the API.
func (s *Summary) MarshalJSON() ([]byte, error) {
	stack := s.Holdings
	if stack == nil {
		stack = []Holding{}
	}
	perf := s.Performance
	if perf == nil {
		perf = map[Metal]Metrics{}
	}
	var w jsonObjectWriter
	w.Append("user", s.User)
	w.Append("on", s.On.UTC().Format(time.RFC3339))
	w.Append("stack", stack)
	w.Append("currentSpotPrices", s.Quotes)
	w.Append("totalOunces", s.TotalOunces)
	w.Append("weightByType", s.WeightByMetal)
	w.Append("distribution", s.Distribution)
	w.Append("value", s.Value)
	if s.HasChange {
		w.Append("valueChange", s.Change)
	} else {
		w.Append("valueChange", nil)
	}
	w.Append("performance", perf)
	return w.MarshalJSON()
}
