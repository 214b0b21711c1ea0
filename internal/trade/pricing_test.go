package trade

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// quoteMap serves canned quotes keyed by symbol.
type quoteMap map[string]*tradier.Quote

func (m quoteMap) GetQuote(_ context.Context, symbol string, _ bool) (*tradier.Quote, error) {
	q, ok := m[symbol]
	if !ok {
		return nil, fmt.Errorf("no quote for %s", symbol)
	}
	return q, nil
}

func TestMidRoundsToCents(t *testing.T) {
	assert.Equal(t, 1.06, Mid(1.00, 1.11))
	assert.Equal(t, 1.05, Mid(1.00, 1.10))
	assert.Equal(t, -0.50, Mid(-0.40, -0.60))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Credit", Label(-0.40))
	assert.Equal(t, "Debit", Label(0.40))
	assert.Equal(t, "Debit", Label(0))
}

func TestPriceSingle(t *testing.T) {
	q := &tradier.Quote{Bid: 1.00, Ask: 1.10}

	pq := PriceSingle(q, false)
	assert.Equal(t, 1.00, pq.Bid)
	assert.Equal(t, 1.10, pq.Ask)
	assert.Nil(t, pq.Mid)

	pq = PriceSingle(q, true)
	require.NotNil(t, pq.Mid)
	assert.Equal(t, 1.05, *pq.Mid)
}

func TestPriceLegsDebitSpread(t *testing.T) {
	quotes := quoteMap{
		"LONG":  {Bid: 1.00, Ask: 1.10},
		"SHORT": {Bid: 0.40, Ask: 0.50},
	}
	legs := []Leg{
		optionLeg("buy_to_open", 1, "LONG", nil),
		optionLeg("sell_to_open", 1, "SHORT", nil),
	}

	pq, err := PriceLegs(context.Background(), quotes, legs)
	require.NoError(t, err)

	assert.InDelta(t, 0.50, pq.Bid, 1e-9)
	assert.InDelta(t, 0.70, pq.Ask, 1e-9)
	require.NotNil(t, pq.Mid)
	assert.InDelta(t, 0.60, *pq.Mid, 1e-9)
}

func TestPriceLegsCreditSpreadSwapsBidAsk(t *testing.T) {
	quotes := quoteMap{
		"SHORT": {Bid: 1.00, Ask: 1.10},
		"LONG":  {Bid: 0.50, Ask: 0.60},
	}
	legs := []Leg{
		optionLeg("sell_to_open", 1, "SHORT", nil),
		optionLeg("buy_to_open", 1, "LONG", nil),
	}

	pq, err := PriceLegs(context.Background(), quotes, legs)
	require.NoError(t, err)

	// Raw sums are bid=-0.60, ask=-0.40; the swap keeps the ask the
	// algebraically larger magnitude of the credit.
	assert.InDelta(t, -0.40, pq.Bid, 1e-9)
	assert.InDelta(t, -0.60, pq.Ask, 1e-9)
	require.NotNil(t, pq.Mid)
	assert.InDelta(t, -0.50, *pq.Mid, 1e-9)
	assert.Equal(t, "Credit", Label(pq.Bid))
}

func TestPriceLegsIgnoresEquityLegs(t *testing.T) {
	quotes := quoteMap{
		"OPT": {Bid: 2.00, Ask: 2.20},
	}
	legs := []Leg{
		equityLeg("buy", 100),
		optionLeg("buy_to_open", 1, "OPT", nil),
	}

	pq, err := PriceLegs(context.Background(), quotes, legs)
	require.NoError(t, err)
	assert.InDelta(t, 2.00, pq.Bid, 1e-9)
	assert.InDelta(t, 2.20, pq.Ask, 1e-9)
}

func TestPriceLegsPropagatesQuoteError(t *testing.T) {
	legs := []Leg{optionLeg("buy_to_open", 1, "MISSING", nil)}

	_, err := PriceLegs(context.Background(), quoteMap{}, legs)
	assert.Error(t, err)
}
