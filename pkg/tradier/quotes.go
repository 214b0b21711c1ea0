package tradier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

type quotesEnvelope struct {
	Quotes struct {
		Quote json.RawMessage `json:"quote"`
	} `json:"quotes"`
}

// GetQuote fetches the latest quote for a stock or option symbol.
// When includeGreeks is set, option quotes carry their greeks.
// Returns ErrNotFound if the symbol yields no quote.
func (c *Client) GetQuote(ctx context.Context, symbol string, includeGreeks bool) (*Quote, error) {
	query := url.Values{"symbols": {strings.ToUpper(symbol)}}
	if includeGreeks {
		query.Set("greeks", "true")
	}

	var env quotesEnvelope
	if err := c.get(ctx, "/markets/quotes", query, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}

	quotes, err := listOrSingle[Quote](env.Quotes.Quote)
	if err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("no quote for %s: %w", symbol, ErrNotFound)
	}

	return &quotes[0], nil
}

type lookupEnvelope struct {
	Securities struct {
		Security json.RawMessage `json:"security"`
	} `json:"securities"`
}

// Security is one result of a symbol lookup.
type Security struct {
	Symbol      string `json:"symbol"`
	Exchange    string `json:"exchange"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Lookup searches for securities matching the given partial symbol.
func (c *Client) Lookup(ctx context.Context, q string) ([]Security, error) {
	var env lookupEnvelope
	if err := c.get(ctx, "/markets/lookup", url.Values{"q": {q}}, &env); err != nil {
		return nil, fmt.Errorf("failed to look up symbol: %w", err)
	}

	securities, err := listOrSingle[Security](env.Securities.Security)
	if err != nil {
		return nil, fmt.Errorf("failed to decode lookup results: %w", err)
	}
	return securities, nil
}
