package trade

import (
	"context"
	"math"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// QuoteGetter fetches the latest quote for a symbol. *tradier.Client
// satisfies it.
type QuoteGetter interface {
	GetQuote(ctx context.Context, symbol string, includeGreeks bool) (*tradier.Quote, error)
}

// PricingQuote is an ephemeral bid/mid/ask snapshot for the order under
// construction. Negative values mean the combined legs pay a credit.
// It is recomputed from fresh quotes on every refresh; never updated in
// place.
type PricingQuote struct {
	Bid float64
	Ask float64
	Mid *float64
}

// Label returns the debit/credit tag for one signed price.
func Label(v float64) string {
	if v < 0 {
		return "Credit"
	}
	return "Debit"
}

// Mid is the midpoint price rounded to cents.
func Mid(bid, ask float64) float64 {
	return math.Round((bid+ask)/2*100) / 100
}

// PriceSingle prices a single-instrument order straight from its quote.
func PriceSingle(q *tradier.Quote, includeMid bool) PricingQuote {
	pq := PricingQuote{Bid: q.Bid, Ask: q.Ask}
	if includeMid {
		mid := Mid(q.Bid, q.Ask)
		pq.Mid = &mid
	}
	return pq
}

// PriceLegs nets fresh quotes across the option legs: buy sides add
// bid/ask, sell sides subtract the opposite side. If the summed bid
// comes out negative the bid and ask are swapped so the ask is always
// the algebraically larger value; the mid is computed from the already
// normalized pair. Quotes are fetched sequentially so the snapshot is
// consistent.
func PriceLegs(ctx context.Context, quotes QuoteGetter, legs []Leg) (PricingQuote, error) {
	var bid, ask float64

	for _, leg := range legs {
		if leg.Kind != KindOption {
			continue
		}
		q, err := quotes.GetQuote(ctx, leg.Entry.Symbol, false)
		if err != nil {
			return PricingQuote{}, err
		}
		if IsBuySide(leg.Side) {
			bid += q.Bid
			ask += q.Ask
		} else {
			bid -= q.Ask
			ask -= q.Bid
		}
	}

	if bid < 0 {
		bid, ask = ask, bid
	}

	mid := Mid(bid, ask)
	return PricingQuote{Bid: bid, Ask: ask, Mid: &mid}, nil
}
