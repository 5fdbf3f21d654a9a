package stacker

import (
	"encoding/json"
	"time"

	"github.com/etnz/stacker/date"
	"github.com/google/uuid"
)

// ParsedItem is the structured description of an entry as produced by the
// parsing collaborator. It is trusted as is.
type ParsedItem struct {
	Name      string  `json:"name"`
	OzPerUnit float64 `json:"ozPerUnit"`
	Quantity  float64 `json:"quantity"`
	Purity    float64 `json:"purity"`
	Category  string  `json:"category"`
}

// Holding is one entry of a stack.
//
// A Holding is never mutated after creation, use NewHolding to create one so
// that TotalOz is consistent with Quantity and OzPerUnit.
type Holding struct {
	ID        string
	Name      string
	Metal     Metal
	Category  string
	Quantity  float64
	OzPerUnit float64 // nominal weight of a single unit, in troy ounces.
	// Purity is the fine metal fraction, nil means 1.
	Purity *float64
	// TotalOz is the nominal weight Quantity*OzPerUnit, purity is not applied.
	TotalOz       float64
	PurchasePrice float64 // total paid for the entry, 0 when unknown.
	PurchaseDate  date.Date
	AddedAt       int64 // unix milliseconds
}

// Fine returns a purity value for a Holding.
func Fine(purity float64) *float64 { return &purity }

// Purchase describes how a holding was acquired. The zero value is a free
// tracking entry.
type Purchase struct {
	Price float64
	On    date.Date
}

// NewHolding creates a holding from a parsed item, with a fresh id.
func NewHolding(item ParsedItem, metal Metal, purchase Purchase, now time.Time) Holding {
	return Holding{
		ID:            uuid.NewString(),
		Name:          item.Name,
		Metal:         metal.orSilver(),
		Category:      item.Category,
		Quantity:      item.Quantity,
		OzPerUnit:     item.OzPerUnit,
		Purity:        Fine(item.Purity),
		TotalOz:       item.Quantity * item.OzPerUnit,
		PurchasePrice: purchase.Price,
		PurchaseDate:  purchase.On,
		AddedAt:       now.UnixMilli(),
	}
}

// purity returns the purity to apply, absent means pure.
func (h Holding) purity() float64 {
	if h.Purity == nil {
		return 1
	}
	return toNumberOrZero(*h.Purity)
}

// MarshalJSON writes the holding with stable field order. The metal is
// written under "type", the key used by persisted stacks.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", h.ID)
	w.Append("name", h.Name)
	w.Append("type", h.Metal.orSilver())
	w.Append("category", h.Category)
	w.Append("quantity", toNumberOrZero(h.Quantity))
	w.Append("ozPerUnit", toNumberOrZero(h.OzPerUnit))
	w.Append("totalOz", toNumberOrZero(h.TotalOz))
	var purity *float64
	if h.Purity != nil {
		purity = Fine(toNumberOrZero(*h.Purity))
	}
	w.Optional("purity", purity)
	w.Optional("purchasePrice", toNumberOrZero(h.PurchasePrice))
	w.Optional("purchaseDate", h.PurchaseDate.String())
	w.Append("addedAt", h.AddedAt)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a holding from any of the persisted shapes.
//
// Numbers are read leniently (see toNumberOrZero), "weight" is accepted as
// an alias for "ozPerUnit", a missing metal is silver, and TotalOz is always
// recomputed from Quantity and OzPerUnit. Only a missing purity means 1, a
// null purity reads as 0.
func (h *Holding) UnmarshalJSON(data []byte) error {
	type jholding struct {
		ID            string         `json:"id"`
		Name          string         `json:"name"`
		Type          string         `json:"type"`
		MetalType     string         `json:"metalType"`
		Category      string         `json:"category"`
		Quantity      lenientNumber  `json:"quantity"`
		OzPerUnit     *lenientNumber `json:"ozPerUnit"`
		Weight        lenientNumber  `json:"weight"`
		Purity        json.RawMessage `json:"purity"`
		PurchasePrice lenientNumber  `json:"purchasePrice"`
		PurchaseDate  json.RawMessage `json:"purchaseDate"`
		AddedAt       lenientNumber  `json:"addedAt"`
	}
	var j jholding
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	metalName := j.Type
	if metalName == "" {
		metalName = j.MetalType
	}
	metal, err := ParseMetal(metalName)
	if err != nil {
		// older stacks used "type" for the category (coin, bar, junk).
		metal = Silver
		if j.Category == "" {
			j.Category = metalName
		}
	}

	oz := float64(j.Weight)
	if j.OzPerUnit != nil {
		oz = float64(*j.OzPerUnit)
	}

	*h = Holding{
		ID:            j.ID,
		Name:          j.Name,
		Metal:         metal,
		Category:      j.Category,
		Quantity:      float64(j.Quantity),
		OzPerUnit:     oz,
		TotalOz:       float64(j.Quantity) * oz,
		PurchasePrice: float64(j.PurchasePrice),
		PurchaseDate:  lenientDate(j.PurchaseDate),
		AddedAt:       int64(j.AddedAt),
	}
	if len(j.Purity) > 0 {
		var p lenientNumber
		_ = p.UnmarshalJSON(j.Purity)
		h.Purity = Fine(float64(p))
	}
	return nil
}

// lenientDate reads a purchase date, anything unreadable is no date.
func lenientDate(data json.RawMessage) date.Date {
	var d date.Date
	if len(data) == 0 || d.UnmarshalJSON(data) != nil {
		return date.Date{}
	}
	return d
}
