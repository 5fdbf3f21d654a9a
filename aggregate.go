package stacker

import (
	"github.com/shopspring/decimal"
)

// Metrics is the performance of a set of holdings valued at a spot price.
//
// Metrics are never stored, they are recomputed whenever the holdings or the
// spot price change.
type Metrics struct {
	TotalCostBasis     Money
	TotalOunces        Ounces // fine weight, purity applied.
	CurrentValue       Money
	UnrealizedGainLoss Money
	PortfolioDCA       Money // average cost per fine ounce.
	PercentageReturn   Percent
}

var hundred = decimal.NewFromInt(100)

// Aggregate computes the metrics of holdings valued at the spot price per
// troy ounce.
//
// The cost basis is the sum of purchase prices (assumed in the spot
// currency), the weight is the sum of fine weights. DCA and return are 0 when
// their denominator is 0: a stack without cost basis reports a 0% return.
//
// Sums are exact, so the result does not depend on the order of holdings.
func Aggregate(holdings []Holding, spot Money) Metrics {
	cost, oz := decimal.Zero, decimal.Zero
	for _, h := range holdings {
		cost = cost.Add(newDecimal(toNumberOrZero(h.PurchasePrice)))
		oz = oz.Add(fineWeight(h))
	}

	m := Metrics{
		TotalCostBasis: M(cost, spot.cur),
		TotalOunces:    Ounces{value: oz},
	}
	m.CurrentValue = spot.Mul(m.TotalOunces)
	m.UnrealizedGainLoss = m.CurrentValue.Sub(m.TotalCostBasis)
	m.PortfolioDCA = M(0, spot.cur)
	if oz.IsPositive() {
		m.PortfolioDCA = m.TotalCostBasis.DivOunces(m.TotalOunces)
	}
	if cost.IsPositive() {
		m.PercentageReturn = Percent(m.UnrealizedGainLoss.ratio(m.TotalCostBasis).Mul(hundred).InexactFloat64())
	}
	return m
}

// AggregateByMetal aggregates the holdings of each metal at that metal's
// quote. Metals without a quote are left out.
func AggregateByMetal(holdings []Holding, quotes Quotes) map[Metal]Metrics {
	byMetal := make(map[Metal][]Holding)
	for _, h := range holdings {
		m := h.Metal.orSilver()
		byMetal[m] = append(byMetal[m], h)
	}
	res := make(map[Metal]Metrics, len(byMetal))
	for metal, hs := range byMetal {
		q, ok := quotes[metal]
		if !ok {
			continue
		}
		res[metal] = Aggregate(hs, q.Spot())
	}
	return res
}

// HoldingsOf returns the holdings made of metal, a missing metal is silver.
func HoldingsOf(holdings []Holding, metal Metal) []Holding {
	var res []Holding
	for _, h := range holdings {
		if h.Metal.orSilver() == metal.orSilver() {
			res = append(res, h)
		}
	}
	return res
}

// MarketValue values each holding's nominal weight at its metal quote.
// Holdings whose metal has no quote count for 0.
//
// This is the stack value persisted as the "last value" of a session. It
// differs from Metrics.CurrentValue that applies purity.
func MarketValue(holdings []Holding, quotes Quotes) Money {
	total := decimal.Zero
	currency := DefaultCurrency
	for _, h := range holdings {
		q, ok := quotes[h.Metal.orSilver()]
		if !ok {
			continue
		}
		if q.Currency != "" {
			currency = q.Currency
		}
		total = total.Add(NominalWeight(h).value.Mul(newDecimal(toNumberOrZero(q.Price))))
	}
	return M(total, currency)
}

// ValueChange returns the change of the stack value since the previous
// session. previous is zero when unknown.
//
// There is no change to report (ok is false) when either value is zero.
func ValueChange(previous, current Money) (change Money, ok bool) {
	if previous.IsZero() || current.IsZero() {
		return Money{}, false
	}
	return current.Sub(previous), true
}

// MarshalJSON writes the metrics as a flat object of plain numbers.
func (m Metrics) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("currency", m.CurrentValue.cur)
	w.Append("totalCostBasis", m.TotalCostBasis)
	w.Append("totalOunces", m.TotalOunces)
	w.Append("currentValue", m.CurrentValue)
	w.Append("unrealizedGainLoss", m.UnrealizedGainLoss)
	w.Append("portfolioDCA", m.PortfolioDCA)
	w.Append("percentageReturn", m.PercentageReturn)
	return w.MarshalJSON()
}
