package tradier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// OrderRequest is the flat order-submission payload. The same payload is
// used for preview and live submission; preview just adds a flag.
type OrderRequest struct {
	Symbol        string
	Class         string // equity, option, multileg, combo
	Type          string // market, limit, stop, stop_limit, debit, credit, even
	Duration      string // day, gtc, pre, post
	Price         *float64
	Stop          *float64
	Sides      []string
	Quantities []int

	// OptionSymbols is parallel to Sides; equity legs hold an empty
	// string at their index.
	OptionSymbols []string
	Tag           string
}

// Values flattens the request into the form parameters Tradier expects.
// Single-leg orders use bare side/quantity keys; multi-leg orders use
// indexed keys. This is the API contract, not a convenience.
func (r OrderRequest) Values() url.Values {
	params := url.Values{}
	params.Set("symbol", r.Symbol)
	params.Set("class", r.Class)
	params.Set("type", r.Type)
	params.Set("duration", r.Duration)
	if r.Price != nil {
		params.Set("price", strconv.FormatFloat(*r.Price, 'f', 2, 64))
	}
	if r.Stop != nil {
		params.Set("stop", strconv.FormatFloat(*r.Stop, 'f', 2, 64))
	}
	if r.Tag != "" {
		params.Set("tag", r.Tag)
	}

	if len(r.Sides) == 1 {
		params.Set("side", r.Sides[0])
		params.Set("quantity", strconv.Itoa(r.Quantities[0]))
		if len(r.OptionSymbols) == 1 && r.OptionSymbols[0] != "" {
			params.Set("option_symbol", r.OptionSymbols[0])
		}
		return params
	}

	for i, side := range r.Sides {
		params.Set(fmt.Sprintf("side[%d]", i), side)
		params.Set(fmt.Sprintf("quantity[%d]", i), strconv.Itoa(r.Quantities[i]))
		if i < len(r.OptionSymbols) && r.OptionSymbols[i] != "" {
			params.Set(fmt.Sprintf("option_symbol[%d]", i), r.OptionSymbols[i])
		}
	}

	return params
}

type previewEnvelope struct {
	Order OrderPreview `json:"order"`
}

// PreviewOrder asks the brokerage to cost the order without submitting
// it. Rejections (e.g. insufficient buying power) come back as *APIError.
func (c *Client) PreviewOrder(ctx context.Context, req OrderRequest) (*OrderPreview, error) {
	accountID, err := c.requireAccount()
	if err != nil {
		return nil, err
	}

	params := req.Values()
	params.Set("preview", "true")

	var env previewEnvelope
	path := fmt.Sprintf("/accounts/%s/orders", accountID)
	if err := c.submit(ctx, http.MethodPost, path, params, &env); err != nil {
		return nil, err
	}

	return &env.Order, nil
}

type confirmationEnvelope struct {
	Order OrderConfirmation `json:"order"`
}

// CreateOrder submits the order for live execution.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderConfirmation, error) {
	accountID, err := c.requireAccount()
	if err != nil {
		return nil, err
	}

	var env confirmationEnvelope
	path := fmt.Sprintf("/accounts/%s/orders", accountID)
	if err := c.submit(ctx, http.MethodPost, path, req.Values(), &env); err != nil {
		return nil, err
	}

	return &env.Order, nil
}

type orderEnvelope struct {
	Order json.RawMessage `json:"order"`
}

// GetOrder fetches the status of a previously submitted order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	accountID, err := c.requireAccount()
	if err != nil {
		return nil, err
	}

	var env orderEnvelope
	path := fmt.Sprintf("/accounts/%s/orders/%s", accountID, orderID)
	if err := c.get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	orders, err := listOrSingle[Order](env.Order)
	if err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("no order %s: %w", orderID, ErrNotFound)
	}

	return &orders[0], nil
}

// ModifyParams holds the mutable attributes of a resting order. Nil
// fields are left unchanged.
type ModifyParams struct {
	Type     string
	Duration string
	Price    *float64
	Stop     *float64
}

// IsEmpty reports whether no modification was requested.
func (p ModifyParams) IsEmpty() bool {
	return p.Type == "" && p.Duration == "" && p.Price == nil && p.Stop == nil
}

// ModifyOrder changes the type, duration, or prices of a resting order.
func (c *Client) ModifyOrder(ctx context.Context, orderID string, mod ModifyParams) (*OrderConfirmation, error) {
	accountID, err := c.requireAccount()
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	if mod.Type != "" {
		params.Set("type", mod.Type)
	}
	if mod.Duration != "" {
		params.Set("duration", mod.Duration)
	}
	if mod.Price != nil {
		params.Set("price", strconv.FormatFloat(*mod.Price, 'f', 2, 64))
	}
	if mod.Stop != nil {
		params.Set("stop", strconv.FormatFloat(*mod.Stop, 'f', 2, 64))
	}

	var env confirmationEnvelope
	path := fmt.Sprintf("/accounts/%s/orders/%s", accountID, orderID)
	if err := c.submit(ctx, http.MethodPut, path, params, &env); err != nil {
		return nil, err
	}

	return &env.Order, nil
}
