// Package analytics derives simple trading analytics from market data:
// expected price moves and momentum/trend indicators.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// ErrNotEquity is returned when an expected move is requested for an
// option symbol; the estimate only makes sense for an underlying.
var ErrNotEquity = errors.New("analytics: expected move requires an equity symbol")

// MarketData is the slice of the brokerage API the estimator needs.
type MarketData interface {
	GetQuote(ctx context.Context, symbol string, includeGreeks bool) (*tradier.Quote, error)
	GetOptionExpirations(ctx context.Context, symbol string, includeAllRoots bool) ([]time.Time, error)
	GetOptionChains(ctx context.Context, symbol string, expiration time.Time, includeGreeks bool) ([]tradier.ChainEntry, error)
}

// Move is a one-standard-deviation expected price move.
type Move struct {
	Symbol    string  `json:"symbol"`
	Last      float64 `json:"last"`
	DTE       int     `json:"dte"`
	Percent   float64 `json:"percent"` // fraction, e.g. 0.086 for ±8.6%
	Dollars   float64 `json:"dollars"`
	RangeLow  float64 `json:"range_low"`
	RangeHigh float64 `json:"range_high"`
}

// Estimator computes expected moves from at-the-money implied
// volatility.
type Estimator struct {
	Data MarketData

	// Now is the clock used for DTE math; defaults to time.Now.
	Now func() time.Time
}

// ExpectedMove estimates the 1-sigma move for a symbol. With no
// expiration it uses the nearest expiration's IV scaled to a single day;
// with an expiration it scales to the calendar days remaining.
//
// The ATM contract is the call whose strike is closest to the last
// price; its implied volatility is scaled by sqrt(DTE/365).
func (e *Estimator) ExpectedMove(ctx context.Context, symbol string, expiration *time.Time) (*Move, error) {
	quote, err := e.Data.GetQuote(ctx, symbol, false)
	if err != nil {
		return nil, err
	}
	if quote.IsOption() {
		return nil, ErrNotEquity
	}

	dte := 1
	var exp time.Time
	if expiration == nil {
		expirations, err := e.Data.GetOptionExpirations(ctx, symbol, false)
		if err != nil {
			return nil, err
		}
		exp = expirations[0]
	} else {
		exp = *expiration
		dte = e.daysUntil(exp)
		if dte < 0 {
			return nil, fmt.Errorf("analytics: expiration %s is in the past", exp.Format(tradier.DateFormat))
		}
	}

	entries, err := e.Data.GetOptionChains(ctx, symbol, exp, true)
	if err != nil {
		return nil, err
	}

	atm := atmCall(entries, quote.Last)
	if atm == nil || atm.Greeks == nil {
		return nil, fmt.Errorf("analytics: no ATM call with greeks for %s %s", symbol, exp.Format(tradier.DateFormat))
	}

	percent := atm.Greeks.SmvVol * math.Sqrt(float64(dte)/365)
	dollars := percent * quote.Last

	return &Move{
		Symbol:    quote.Symbol,
		Last:      quote.Last,
		DTE:       dte,
		Percent:   percent,
		Dollars:   dollars,
		RangeLow:  quote.Last - dollars,
		RangeHigh: quote.Last + dollars,
	}, nil
}

func (e *Estimator) daysUntil(exp time.Time) int {
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, exp.Location())
	return int(math.Round(exp.Sub(today).Hours() / 24))
}

// atmCall returns the call entry whose strike is closest to price.
func atmCall(entries []tradier.ChainEntry, price float64) *tradier.ChainEntry {
	var atm *tradier.ChainEntry
	var best float64
	for i := range entries {
		entry := &entries[i]
		if entry.OptionType != "call" {
			continue
		}
		diff := math.Abs(entry.Strike - price)
		if atm == nil || diff < best {
			atm = entry
			best = diff
		}
	}
	return atm
}
