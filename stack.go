package stacker

import "slices"

// Stack is the ordered collection of a user's holdings, newest first.
//
// The zero value is an empty stack. A Stack is not safe for concurrent
// mutation.
type Stack struct {
	holdings []Holding
}

// NewStack returns a stack of holdings, in the given order.
func NewStack(holdings ...Holding) *Stack {
	return &Stack{holdings: slices.Clone(holdings)}
}

// Add puts h on top of the stack.
func (s *Stack) Add(h Holding) {
	s.holdings = append([]Holding{h}, s.holdings...)
}

// Remove removes the holding with that id, it reports whether one was found.
func (s *Stack) Remove(id string) bool {
	n := len(s.holdings)
	s.holdings = slices.DeleteFunc(slices.Clone(s.holdings), func(h Holding) bool { return h.ID == id })
	return len(s.holdings) != n
}

// Get returns the holding with that id.
func (s *Stack) Get(id string) (Holding, bool) {
	i := slices.IndexFunc(s.holdings, func(h Holding) bool { return h.ID == id })
	if i < 0 {
		return Holding{}, false
	}
	return s.holdings[i], true
}

// Len returns the number of holdings.
func (s *Stack) Len() int { return len(s.holdings) }

// Holdings returns a copy of the holdings, newest first.
func (s *Stack) Holdings() []Holding { return slices.Clone(s.holdings) }

// Metals returns the distinct metals of the stack in display order. An empty
// stack still needs a silver quote to display something.
func (s *Stack) Metals() []Metal {
	var res []Metal
	for _, m := range Metals {
		if slices.ContainsFunc(s.holdings, func(h Holding) bool { return h.Metal.orSilver() == m }) {
			res = append(res, m)
		}
	}
	if len(res) == 0 {
		res = append(res, Silver)
	}
	return res
}

// TotalOunces returns the nominal weight of the stack.
func (s *Stack) TotalOunces() Ounces {
	total := Oz(0)
	for _, h := range s.holdings {
		total = total.Add(NominalWeight(h))
	}
	return total
}
