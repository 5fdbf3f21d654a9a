package stacker

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// kilogramsPerOunce is the troy ounce to kilogram factor used for display.
const kilogramsPerOunce = 0.0311

// newDecimal is a convenient factory for decimal.Decimal.
// Non finite floats follow toNumberOrZero and become 0.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return newDecimal(float64(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Ounces is a weight in troy ounces.
type Ounces struct {
	value decimal.Decimal
}

// Oz returns a weight in troy ounces.
func Oz[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Ounces {
	return Ounces{value: newDecimal(value)}
}

func (o Ounces) Equal(p Ounces) bool { return o.value.Equal(p.value) }
func (o Ounces) Add(p Ounces) Ounces { return Ounces{value: o.value.Add(p.value)} }
func (o Ounces) Mul(p Ounces) Ounces { return Ounces{value: o.value.Mul(p.value)} }
func (o Ounces) IsPositive() bool    { return o.value.IsPositive() }
func (o Ounces) IsZero() bool        { return o.value.IsZero() }
func (o Ounces) Float64() float64    { return o.value.InexactFloat64() }
func (o Ounces) String() string      { return o.value.String() }

// Kilograms converts the weight for display.
func (o Ounces) Kilograms() float64 { return o.Float64() * kilogramsPerOunce }

// MarshalJSON writes the weight as a plain JSON number.
func (o Ounces) MarshalJSON() ([]byte, error) {
	return json.Marshal(json.Number(o.value.String()))
}
