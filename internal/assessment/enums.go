package assessment

import (
	"fmt"
	"strings"
)

// Tier is one of four ordered severity classifications.
type Tier string

const (
	TierGreen  Tier = "GREEN"
	TierYellow Tier = "YELLOW"
	TierOrange Tier = "ORANGE"
	TierRed    Tier = "RED"
)

// Tiers lists every tier from least to most severe.
var Tiers = []Tier{TierGreen, TierYellow, TierOrange, TierRed}

func (t Tier) Valid() bool {
	switch t {
	case TierGreen, TierYellow, TierOrange, TierRed:
		return true
	}
	return false
}

// order returns a sort key (higher = more severe).
func (t Tier) order() int {
	switch t {
	case TierGreen:
		return 0
	case TierYellow:
		return 1
	case TierOrange:
		return 2
	case TierRed:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether t is as severe as other or more so.
// Invalid tiers never compare.
func (t Tier) AtLeast(other Tier) bool {
	if !t.Valid() || !other.Valid() {
		return false
	}
	return t.order() >= other.order()
}

// ParseTier converts a case-insensitive tier name.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid tier: %q", s)
	}
	return t, nil
}
