package stacker

import "github.com/shopspring/decimal"

// FineWeight returns the actual metal weight (ASW) of a holding:
// quantity × ounces per unit × purity.
//
// Malformed numbers count as 0 and a nil Purity counts as 1. Purity is not
// clamped to [0, 1] and negative values are propagated, validation belongs
// to the code creating holdings.
func FineWeight(h Holding) Ounces {
	return Ounces{value: fineWeight(h)}
}

func fineWeight(h Holding) decimal.Decimal {
	q := newDecimal(toNumberOrZero(h.Quantity))
	oz := newDecimal(toNumberOrZero(h.OzPerUnit))
	return q.Mul(oz).Mul(newDecimal(h.purity()))
}

// NominalWeight returns the declared weight of a holding, purity is not
// applied. This is the weight used for stack totals and distributions.
func NominalWeight(h Holding) Ounces {
	return Ounces{value: newDecimal(toNumberOrZero(h.TotalOz))}
}
