package stacker

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// KeyFunc selects the group of a holding in a distribution.
type KeyFunc func(Holding) string

// ByCategory groups holdings by their category label, e.g. "Coin".
func ByCategory(h Holding) string { return capitalize(strings.TrimSpace(h.Category)) }

// ByMetal groups holdings by their metal label, e.g. "Silver".
func ByMetal(h Holding) string { return h.Metal.Label() }

// KeyFuncOf returns the KeyFunc for a distribution name: "category", or
// "type" (also "metal").
func KeyFuncOf(name string) (KeyFunc, bool) {
	switch strings.ToLower(name) {
	case "", "category":
		return ByCategory, true
	case "type", "metal":
		return ByMetal, true
	}
	return nil, false
}

// GroupWeightBy sums the nominal weight (TotalOz) of holdings per group.
func GroupWeightBy(holdings []Holding, key KeyFunc) map[string]float64 {
	sums := groupWeightBy(holdings, key)
	res := make(map[string]float64, len(sums))
	for k, v := range sums {
		res[k] = v.InexactFloat64()
	}
	return res
}

func groupWeightBy(holdings []Holding, key KeyFunc) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, h := range holdings {
		k := key(h)
		sums[k] = sums[k].Add(NominalWeight(h).value)
	}
	return sums
}

// Share is the weight of one group in a distribution.
type Share struct {
	Key     string  `json:"name"`
	Ounces  float64 `json:"value"`
	Percent Percent `json:"percent"`
}

// Distribution returns the share of each group in the nominal weight of the
// holdings, heaviest first.
//
// Percent is the group weight divided by the total weight, and is left
// undefined (NaN) when the total is 0. It is up to the presentation to
// decide how to display it.
func Distribution(holdings []Holding, key KeyFunc) []Share {
	sums := groupWeightBy(holdings, key)
	total := decimal.Zero
	for _, v := range sums {
		total = total.Add(v)
	}
	t := total.InexactFloat64()

	shares := make([]Share, 0, len(sums))
	for k, v := range sums {
		oz := v.InexactFloat64()
		shares = append(shares, Share{Key: k, Ounces: oz, Percent: Percent(oz / t * 100)})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Ounces != shares[j].Ounces {
			return shares[i].Ounces > shares[j].Ounces
		}
		return shares[i].Key < shares[j].Key
	})
	return shares
}
