package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

func optionLeg(side string, qty int, symbol string, greeks *tradier.Greeks) Leg {
	return Leg{
		Kind:     KindOption,
		Side:     side,
		Quantity: qty,
		Entry: &tradier.ChainEntry{
			Symbol:     symbol,
			OptionType: "call",
			Greeks:     greeks,
		},
	}
}

func equityLeg(side string, qty int) Leg {
	return Leg{Kind: KindEquity, Side: side, Quantity: qty}
}

func TestBuilderClassTransitions(t *testing.T) {
	tests := []struct {
		name string
		legs []Leg
		want Class
	}{
		{"single equity", []Leg{equityLeg("buy", 10)}, ClassEquity},
		{"single option", []Leg{optionLeg("buy_to_open", 1, "C1", nil)}, ClassOption},
		{"two options", []Leg{
			optionLeg("buy_to_open", 1, "C1", nil),
			optionLeg("sell_to_open", 1, "C2", nil),
		}, ClassMultileg},
		{"equity then equity", []Leg{
			equityLeg("buy", 10),
			equityLeg("sell_short", 10),
		}, ClassCombo},
		{"equity then option", []Leg{
			equityLeg("buy", 100),
			optionLeg("sell_to_open", 1, "C1", nil),
		}, ClassCombo},
		{"option then equity", []Leg{
			optionLeg("buy_to_open", 1, "C1", nil),
			equityLeg("buy", 100),
		}, ClassCombo},
		{"multileg then equity", []Leg{
			optionLeg("buy_to_open", 1, "C1", nil),
			optionLeg("sell_to_open", 1, "C2", nil),
			equityLeg("buy", 100),
		}, ClassCombo},
		{"combo stays combo", []Leg{
			equityLeg("buy", 100),
			optionLeg("sell_to_open", 1, "C1", nil),
			optionLeg("buy_to_open", 1, "C2", nil),
		}, ClassCombo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("AAPL")
			for _, leg := range tt.legs {
				require.NoError(t, b.AddLeg(leg))
			}
			assert.Equal(t, tt.want, b.Class())
		})
	}
}

func TestBuilderRejectsInvalidLegs(t *testing.T) {
	b := NewBuilder("AAPL")

	// Option sides are not valid on equity legs and vice versa.
	err := b.AddLeg(Leg{Kind: KindEquity, Side: "buy_to_open", Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidSide)

	err = b.AddLeg(optionLeg("buy", 1, "C1", nil))
	assert.ErrorIs(t, err, ErrInvalidSide)

	err = b.AddLeg(equityLeg("buy", 0))
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	err = b.AddLeg(Leg{Kind: KindOption, Side: "buy_to_open", Quantity: 1})
	assert.ErrorIs(t, err, ErrMissingEntry)

	assert.Empty(t, b.Legs())
	assert.Equal(t, Class(""), b.Class())
}

func TestBuilderBuildSingleLeg(t *testing.T) {
	b := NewBuilder("AAPL")
	require.NoError(t, b.AddLeg(equityLeg("buy", 100)))

	price := 189.50
	req := b.Build("limit", "day", &price, nil, "my-tag")

	assert.Equal(t, "AAPL", req.Symbol)
	assert.Equal(t, "equity", req.Class)
	assert.Equal(t, "limit", req.Type)
	assert.Equal(t, "day", req.Duration)
	assert.Equal(t, []string{"buy"}, req.Sides)
	assert.Equal(t, []int{100}, req.Quantities)
	assert.Equal(t, []string{""}, req.OptionSymbols)
	assert.Equal(t, "my-tag", req.Tag)
	require.NotNil(t, req.Price)
	assert.Equal(t, 189.50, *req.Price)
}

func TestBuilderBuildMultileg(t *testing.T) {
	b := NewBuilder("AAPL")
	require.NoError(t, b.AddLeg(optionLeg("sell_to_open", 1, "AAPL260918C00190000", nil)))
	require.NoError(t, b.AddLeg(optionLeg("buy_to_open", 1, "AAPL260918C00195000", nil)))

	req := b.Build("credit", "gtc", nil, nil, "spread")

	assert.Equal(t, "multileg", req.Class)
	assert.Equal(t, []string{"sell_to_open", "buy_to_open"}, req.Sides)
	assert.Equal(t, []int{1, 1}, req.Quantities)
	assert.Equal(t, []string{"AAPL260918C00190000", "AAPL260918C00195000"}, req.OptionSymbols)
}

func TestBuilderBuildComboKeepsOptionSymbolsAligned(t *testing.T) {
	b := NewBuilder("AAPL")
	require.NoError(t, b.AddLeg(equityLeg("buy", 100)))
	require.NoError(t, b.AddLeg(optionLeg("buy_to_open", 1, "AAPL260918C00105000", nil)))

	req := b.Build("market", "day", nil, nil, "")

	assert.Equal(t, "combo", req.Class)
	assert.Equal(t, []string{"buy", "buy_to_open"}, req.Sides)
	// The option symbol sits at its own leg's index, not compacted to
	// the front of the list.
	assert.Equal(t, []string{"", "AAPL260918C00105000"}, req.OptionSymbols)
}

func TestNetGreeks(t *testing.T) {
	b := NewBuilder("AAPL")
	require.NoError(t, b.AddLeg(optionLeg("buy_to_open", 1, "C1", &tradier.Greeks{
		Delta: 0.5012345678, Gamma: 0.04, Theta: -0.08, Vega: 0.12,
	})))
	require.NoError(t, b.AddLeg(optionLeg("sell_to_open", 1, "C2", &tradier.Greeks{
		Delta: 0.30, Gamma: 0.03, Theta: -0.05, Vega: 0.10,
	})))

	greeks := b.NetGreeks()
	require.NotNil(t, greeks)
	assert.InDelta(t, 0.201235, greeks.Delta, 1e-9) // rounded to 6 places
	assert.InDelta(t, 0.01, greeks.Gamma, 1e-9)
	assert.InDelta(t, -0.03, greeks.Theta, 1e-9)
	assert.InDelta(t, 0.02, greeks.Vega, 1e-9)
}

func TestNetGreeksNilWithoutOptionGreeks(t *testing.T) {
	b := NewBuilder("AAPL")
	require.NoError(t, b.AddLeg(equityLeg("buy", 100)))
	require.NoError(t, b.AddLeg(optionLeg("buy_to_open", 1, "C1", nil)))

	assert.Nil(t, b.NetGreeks())
}
