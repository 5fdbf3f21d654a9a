package stacker

import (
	"testing"
)

func TestGroupWeightBy(t *testing.T) {
	holdings := []Holding{
		{Category: "Coin", TotalOz: 5},
		{Category: "Bar", TotalOz: 5},
	}
	got := GroupWeightBy(holdings, ByCategory)
	if len(got) != 2 || got["Coin"] != 5 || got["Bar"] != 5 {
		t.Errorf("GroupWeightBy() = %v, want map[Bar:5 Coin:5]", got)
	}

	shares := Distribution(holdings, ByCategory)
	if len(shares) != 2 {
		t.Fatalf("Distribution() = %v, want 2 shares", shares)
	}
	for _, s := range shares {
		if !s.Percent.Equal(50) {
			t.Errorf("share %q = %v, want 50%%", s.Key, s.Percent)
		}
	}
}

func TestGroupWeightBy_UsesNominalWeight(t *testing.T) {
	junk := NewHolding(ParsedItem{Quantity: 10, OzPerUnit: 1, Purity: 0.9, Category: "Junk"}, Silver, Purchase{}, now)
	if got := GroupWeightBy([]Holding{junk}, ByCategory)["Junk"]; got != 10 {
		t.Errorf("GroupWeightBy() = %v, want the nominal 10 oz", got)
	}
}

func TestDistribution_Labels(t *testing.T) {
	holdings := []Holding{
		{Category: "coin", Metal: Silver, TotalOz: 2},
		{Category: "Coin", Metal: Gold, TotalOz: 1},
		{Category: "bar", Metal: "", TotalOz: 10},
	}

	byCategory := Distribution(holdings, ByCategory)
	want := []Share{{"Bar", 10, 10.0 / 13 * 100}, {"Coin", 3, 3.0 / 13 * 100}}
	if len(byCategory) != len(want) {
		t.Fatalf("Distribution(ByCategory) = %v, want %v", byCategory, want)
	}
	for i := range want {
		if byCategory[i].Key != want[i].Key || byCategory[i].Ounces != want[i].Ounces || !byCategory[i].Percent.Equal(want[i].Percent) {
			t.Errorf("Distribution(ByCategory)[%d] = %v, want %v", i, byCategory[i], want[i])
		}
	}

	byMetal := Distribution(holdings, ByMetal)
	if len(byMetal) != 2 || byMetal[0].Key != "Silver" || byMetal[0].Ounces != 12 || byMetal[1].Key != "Gold" {
		t.Errorf("Distribution(ByMetal) = %v, want Silver 12 then Gold 1", byMetal)
	}
}

func TestDistribution_Ties(t *testing.T) {
	holdings := []Holding{{Category: "Round", TotalOz: 1}, {Category: "Bar", TotalOz: 1}}
	got := Distribution(holdings, ByCategory)
	if got[0].Key != "Bar" || got[1].Key != "Round" {
		t.Errorf("Distribution() = %v, want ties sorted by name", got)
	}
}

func TestDistribution_ZeroTotal(t *testing.T) {
	if got := Distribution(nil, ByCategory); len(got) != 0 {
		t.Errorf("Distribution(nil) = %v, want no share", got)
	}

	// the division by a zero total is not guarded.
	got := Distribution([]Holding{{Category: "Coin", TotalOz: 0}}, ByCategory)
	if len(got) != 1 || !got[0].Percent.IsNaN() {
		t.Errorf("Distribution() = %v, want a single NaN share", got)
	}
	b, err := got[0].Percent.MarshalJSON()
	if err != nil || string(b) != "null" {
		t.Errorf("NaN Percent.MarshalJSON() = %s, %v, want null", b, err)
	}
	if s := got[0].Percent.String(); s != "-" {
		t.Errorf("NaN Percent.String() = %q, want %q", s, "-")
	}
}

func TestKeyFuncOf(t *testing.T) {
	for _, name := range []string{"", "category", "Category", "type", "metal"} {
		if _, ok := KeyFuncOf(name); !ok {
			t.Errorf("KeyFuncOf(%q) not found", name)
		}
	}
	if _, ok := KeyFuncOf("purity"); ok {
		t.Errorf("KeyFuncOf(%q) found, want unknown", "purity")
	}
}
