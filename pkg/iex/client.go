// Package iex provides a minimal IEX Cloud client for the research
// endpoints the CLI uses.
package iex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// BaseURL is the IEX Cloud stable API endpoint.
const BaseURL = "https://cloud.iexapis.com/stable"

// ErrPaymentRequired is returned when an endpoint requires a paid IEX
// subscription.
var ErrPaymentRequired = errors.New("iex: premium endpoint")

// Client handles HTTP requests to IEX Cloud.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a new IEX client with the given API token.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: BaseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.BaseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// PriceTarget holds analyst price-target consensus for a stock.
type PriceTarget struct {
	Symbol             string  `json:"symbol"`
	UpdatedDate        string  `json:"updatedDate"`
	PriceTargetAverage float64 `json:"priceTargetAverage"`
	PriceTargetHigh    float64 `json:"priceTargetHigh"`
	PriceTargetLow     float64 `json:"priceTargetLow"`
	NumberOfAnalysts   int     `json:"numberOfAnalysts"`
}

// GetPriceTarget fetches the analyst price targets for a symbol.
func (c *Client) GetPriceTarget(ctx context.Context, symbol string) (*PriceTarget, error) {
	var target PriceTarget
	path := fmt.Sprintf("/stock/%s/price-target", strings.ToUpper(symbol))
	if err := c.get(ctx, path, &target); err != nil {
		return nil, err
	}
	return &target, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	u := c.BaseURL + path + "?" + url.Values{"token": {c.Token}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusPaymentRequired {
		return ErrPaymentRequired
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("iex: API error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
