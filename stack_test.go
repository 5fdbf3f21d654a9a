package stacker

import (
	"testing"
)

func TestStack_AddRemove(t *testing.T) {
	var s Stack
	s.Add(coin("a", 1, 0))
	s.Add(coin("b", 2, 0))
	s.Add(coin("c", 3, 0))

	ids := func() string {
		var r string
		for _, h := range s.Holdings() {
			r += h.ID
		}
		return r
	}
	if got := ids(); got != "cba" {
		t.Errorf("Holdings() = %q, want newest first %q", got, "cba")
	}

	if !s.Remove("b") {
		t.Errorf("Remove(b) = false, want true")
	}
	if s.Remove("b") {
		t.Errorf("Remove(b) twice = true, want false")
	}
	if got := ids(); got != "ca" {
		t.Errorf("Holdings() = %q, want %q", got, "ca")
	}
	if _, ok := s.Get("a"); !ok {
		t.Errorf("Get(a) not found")
	}
	if got := s.TotalOunces(); !got.Equal(Oz(4)) {
		t.Errorf("TotalOunces() = %v, want 4", got)
	}
}

func TestStack_HoldingsIsACopy(t *testing.T) {
	s := NewStack(coin("a", 1, 0))
	hs := s.Holdings()
	hs[0].ID = "changed"
	if h, _ := s.Get("a"); h.ID != "a" {
		t.Errorf("Holdings() exposes the stack internals")
	}
}

func TestStack_Metals(t *testing.T) {
	var empty Stack
	if got := empty.Metals(); len(got) != 1 || got[0] != Silver {
		t.Errorf("empty Metals() = %v, want [silver]", got)
	}

	s := NewStack(Holding{ID: "g", Metal: Gold}, Holding{ID: "s"})
	if got := s.Metals(); len(got) != 2 || got[0] != Silver || got[1] != Gold {
		t.Errorf("Metals() = %v, want [silver gold]", got)
	}

	gold := NewStack(Holding{ID: "g", Metal: Gold})
	if got := gold.Metals(); len(got) != 1 || got[0] != Gold {
		t.Errorf("Metals() = %v, want [gold]", got)
	}
}
