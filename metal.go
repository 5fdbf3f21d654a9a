package stacker

import (
	"fmt"
	"strings"
)

// Metal is the kind of precious metal a holding is made of.
type Metal string

const (
	Silver Metal = "silver"
	Gold   Metal = "gold"
)

// Metals lists the supported metals, in display order.
var Metals = []Metal{Silver, Gold}

// ParseMetal reads a metal name, case insensitive. The empty string is silver,
// stacks created before gold support have no metal at all.
func ParseMetal(s string) (Metal, error) {
	switch Metal(strings.ToLower(strings.TrimSpace(s))) {
	case "", Silver:
		return Silver, nil
	case Gold:
		return Gold, nil
	default:
		return "", fmt.Errorf("unknown metal %q, want one of %v", s, Metals)
	}
}

// Symbol returns the ISO 4217 code of the metal (XAG, XAU).
func (m Metal) Symbol() string {
	if m == Gold {
		return "XAU"
	}
	return "XAG"
}

// Label returns the display name of the metal, e.g. "Silver".
func (m Metal) Label() string { return capitalize(string(m.orSilver())) }

func (m Metal) orSilver() Metal {
	if m == "" {
		return Silver
	}
	return m
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
