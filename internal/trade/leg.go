// Package trade implements the interactive multi-leg order construction
// engine: leg accumulation, order classification, strike selection,
// pricing, and assembly of the brokerage order payload.
package trade

import (
	"strings"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// Kind is the instrument kind of a leg.
type Kind string

const (
	KindEquity Kind = "equity"
	KindOption Kind = "option"
)

// Equity and option legs use disjoint side vocabularies.
var (
	equitySides = []string{"buy", "buy_to_cover", "sell", "sell_short"}
	optionSides = []string{"buy_to_open", "buy_to_close", "sell_to_open", "sell_to_close"}
)

// AllowedSides returns the side vocabulary for the given instrument kind.
func AllowedSides(kind Kind) []string {
	if kind == KindEquity {
		return equitySides
	}
	return optionSides
}

// ValidSide reports whether side belongs to the vocabulary for kind.
func ValidSide(kind Kind, side string) bool {
	for _, s := range AllowedSides(kind) {
		if s == side {
			return true
		}
	}
	return false
}

// IsBuySide reports whether a side adds exposure at the quoted ask.
// Covers buy, buy_to_open, buy_to_close, and buy_to_cover.
func IsBuySide(side string) bool {
	return strings.HasPrefix(side, "buy")
}

// Leg is one buy/sell instruction for one instrument within an order.
// Option legs carry the resolved chain entry; equity legs trade the
// order's underlying symbol.
type Leg struct {
	Kind     Kind
	Side     string
	Quantity int
	Entry    *tradier.ChainEntry
}
