package trade

import (
	"math"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// Class is the overall order classification derived from the sequence of
// leg kinds.
type Class string

const (
	ClassEquity   Class = "equity"
	ClassOption   Class = "option"
	ClassMultileg Class = "multileg"
	ClassCombo    Class = "combo"
)

// Builder accumulates the legs of one in-progress order. It is passed
// explicitly through each interactive step; there is no ambient session
// state. Legs are append-only.
type Builder struct {
	Symbol string

	legs  []Leg
	class Class
}

// NewBuilder starts an empty order for the given underlying symbol.
func NewBuilder(symbol string) *Builder {
	return &Builder{Symbol: symbol}
}

// AddLeg validates and appends a leg, then advances the order class.
func (b *Builder) AddLeg(leg Leg) error {
	if !ValidSide(leg.Kind, leg.Side) {
		return ErrInvalidSide
	}
	if leg.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if leg.Kind == KindOption && leg.Entry == nil {
		return ErrMissingEntry
	}

	b.legs = append(b.legs, leg)
	b.class = transition(b.class, leg.Kind)
	return nil
}

// transition advances the classification for one added leg. Transitions
// are one-directional: combo is terminal, and equity/option only ever
// upgrade to multileg or combo.
func transition(current Class, kind Kind) Class {
	switch {
	case current == "":
		return Class(kind)
	case current == ClassCombo:
		return ClassCombo
	case current == ClassEquity:
		return ClassCombo
	case current == ClassOption && kind == KindEquity:
		return ClassCombo
	case current == ClassOption && kind == KindOption:
		return ClassMultileg
	case current == ClassMultileg && kind == KindEquity:
		return ClassCombo
	default:
		return current
	}
}

// Legs returns the accumulated legs in insertion order.
func (b *Builder) Legs() []Leg {
	return b.legs
}

// Class returns the current order classification.
func (b *Builder) Class() Class {
	return b.class
}

// HasOptionLegs reports whether any leg is an option.
func (b *Builder) HasOptionLegs() bool {
	for _, leg := range b.legs {
		if leg.Kind == KindOption {
			return true
		}
	}
	return false
}

// Build assembles the flat order-submission payload. Sides, quantities,
// and option symbols are all parallel to the leg sequence; equity legs
// leave their option symbol slot blank. The payload is handed unchanged
// to both preview and live submission.
func (b *Builder) Build(orderType, duration string, price, stop *float64, tag string) tradier.OrderRequest {
	req := tradier.OrderRequest{
		Symbol:   b.Symbol,
		Class:    string(b.class),
		Type:     orderType,
		Duration: duration,
		Price:    price,
		Stop:     stop,
		Tag:      tag,
	}
	for _, leg := range b.legs {
		req.Sides = append(req.Sides, leg.Side)
		req.Quantities = append(req.Quantities, leg.Quantity)
		symbol := ""
		if leg.Kind == KindOption {
			symbol = leg.Entry.Symbol
		}
		req.OptionSymbols = append(req.OptionSymbols, symbol)
	}
	return req
}

// NetGreeks holds the aggregated greeks of an order's option legs.
type NetGreeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
}

// NetGreeks sums each greek across option legs, positive for buy sides
// and negative for sell sides, rounded to six decimal places. Returns
// nil when the order has no option legs with greeks.
func (b *Builder) NetGreeks() *NetGreeks {
	var net NetGreeks
	found := false
	for _, leg := range b.legs {
		if leg.Kind != KindOption || leg.Entry == nil || leg.Entry.Greeks == nil {
			continue
		}
		found = true
		sign := 1.0
		if !IsBuySide(leg.Side) {
			sign = -1.0
		}
		net.Delta += sign * leg.Entry.Greeks.Delta
		net.Gamma += sign * leg.Entry.Greeks.Gamma
		net.Theta += sign * leg.Entry.Greeks.Theta
		net.Vega += sign * leg.Entry.Greeks.Vega
	}
	if !found {
		return nil
	}

	net.Delta = round6(net.Delta)
	net.Gamma = round6(net.Gamma)
	net.Theta = round6(net.Theta)
	net.Vega = round6(net.Vega)
	return &net
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
