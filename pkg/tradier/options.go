package tradier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DateFormat is the wire format for expiration dates.
const DateFormat = "2006-01-02"

type expirationsEnvelope struct {
	Expirations struct {
		Date json.RawMessage `json:"date"`
	} `json:"expirations"`
}

// GetOptionExpirations fetches the available option expiration dates for
// a symbol, in ascending order. Returns ErrNotFound when the symbol has
// no listed options.
func (c *Client) GetOptionExpirations(ctx context.Context, symbol string, includeAllRoots bool) ([]time.Time, error) {
	query := url.Values{"symbol": {strings.ToUpper(symbol)}}
	if includeAllRoots {
		query.Set("includeAllRoots", "true")
	}

	var env expirationsEnvelope
	if err := c.get(ctx, "/markets/options/expirations", query, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch expirations: %w", err)
	}

	dates, err := listOrSingle[string](env.Expirations.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to decode expirations: %w", err)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("no expirations for %s: %w", symbol, ErrNotFound)
	}

	expirations := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse(DateFormat, d)
		if err != nil {
			return nil, fmt.Errorf("invalid expiration date %q: %w", d, err)
		}
		expirations = append(expirations, t)
	}

	return expirations, nil
}

type strikesEnvelope struct {
	Strikes struct {
		Strike json.RawMessage `json:"strike"`
	} `json:"strikes"`
}

// GetOptionStrikes fetches the strike prices listed for a symbol and
// expiration. Returns ErrNotFound when the expiration has no strikes.
func (c *Client) GetOptionStrikes(ctx context.Context, symbol string, expiration time.Time) ([]float64, error) {
	query := url.Values{
		"symbol":     {strings.ToUpper(symbol)},
		"expiration": {expiration.Format(DateFormat)},
	}

	var env strikesEnvelope
	if err := c.get(ctx, "/markets/options/strikes", query, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch strikes: %w", err)
	}

	strikes, err := listOrSingle[float64](env.Strikes.Strike)
	if err != nil {
		return nil, fmt.Errorf("failed to decode strikes: %w", err)
	}
	if len(strikes) == 0 {
		return nil, fmt.Errorf("no strikes for %s %s: %w", symbol, expiration.Format(DateFormat), ErrNotFound)
	}

	return strikes, nil
}

type chainsEnvelope struct {
	Options struct {
		Option json.RawMessage `json:"option"`
	} `json:"options"`
}

// GetOptionChains fetches the full option chain for a symbol and
// expiration. Returns ErrNotFound when the expiration has no chain.
func (c *Client) GetOptionChains(ctx context.Context, symbol string, expiration time.Time, includeGreeks bool) ([]ChainEntry, error) {
	query := url.Values{
		"symbol":     {strings.ToUpper(symbol)},
		"expiration": {expiration.Format(DateFormat)},
	}
	if includeGreeks {
		query.Set("greeks", "true")
	}

	var env chainsEnvelope
	if err := c.get(ctx, "/markets/options/chains", query, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch option chain: %w", err)
	}

	entries, err := listOrSingle[ChainEntry](env.Options.Option)
	if err != nil {
		return nil, fmt.Errorf("failed to decode option chain: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no chain for %s %s: %w", symbol, expiration.Format(DateFormat), ErrNotFound)
	}

	return entries, nil
}
