package tradier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type historyEnvelope struct {
	History struct {
		Day json.RawMessage `json:"day"`
	} `json:"history"`
}

// GetHistoricalQuotes fetches price history bars for a symbol starting
// at the given date. Interval is daily, weekly, or monthly.
func (c *Client) GetHistoricalQuotes(ctx context.Context, symbol, interval string, start time.Time) ([]HistoricalDay, error) {
	query := url.Values{
		"symbol":   {strings.ToUpper(symbol)},
		"interval": {interval},
		"start":    {start.Format(DateFormat)},
	}

	var env historyEnvelope
	if err := c.get(ctx, "/markets/history", query, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	days, err := listOrSingle[HistoricalDay](env.History.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no history for %s: %w", symbol, ErrNotFound)
	}

	return days, nil
}
