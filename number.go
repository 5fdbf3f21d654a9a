package stacker

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// toNumberOrZero is the single coercion policy of the package: anything that
// does not read as a finite number counts as 0.
//
// The policy is lenient on purpose, a single bad field in a holding must not
// prevent the valuation of the whole stack. It accepts numbers, numeric
// strings (surrounding spaces allowed, empty string is 0), booleans (true is
// 1) and nil.
func toNumberOrZero(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case json.Number:
		f, _ = strconv.ParseFloat(x.String(), 64)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return 0
		}
	case bool:
		if x {
			return 1
		}
		return 0
	case decimal.Decimal:
		f = x.InexactFloat64()
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// lenientNumber decodes any JSON value into a float64 following toNumberOrZero.
type lenientNumber float64

func (n *lenientNumber) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		*n = 0
		return nil
	}
	*n = lenientNumber(toNumberOrZero(v))
	return nil
}
