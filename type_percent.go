package stacker

import (
	"encoding/json"
	"fmt"
	"math"
)

// Percent is a ratio expressed in percent (5 means 5%).
//
// Percent may be NaN when it results from an unguarded division by zero.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	if p.IsNaN() || q.IsNaN() {
		return p.IsNaN() && q.IsNaN()
	}
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// IsNaN reports whether p is undefined.
func (p Percent) IsNaN() bool { return math.IsNaN(float64(p)) }

func (p Percent) String() string {
	if p.IsNaN() {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	if p.IsNaN() {
		return "-"
	}
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}

// MarshalJSON writes NaN as null, JSON has no representation for it.
func (p Percent) MarshalJSON() ([]byte, error) {
	if p.IsNaN() || math.IsInf(float64(p), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}
