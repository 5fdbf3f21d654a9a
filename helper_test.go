package stacker

import (
	"math"
	"time"
)

var now = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// approx reports whether a and b are within 1e-6.
func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// coin is a pure one ounce coin bought for price.
func coin(id string, qty, price float64) Holding {
	return Holding{ID: id, Name: "American Silver Eagle", Metal: Silver, Category: "Coin",
		Quantity: qty, OzPerUnit: 1, Purity: Fine(1), TotalOz: qty, PurchasePrice: price}
}
