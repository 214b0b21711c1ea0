package tradier

import (
	"bytes"
	"encoding/json"
)

// Quote is a point-in-time market snapshot for an equity or option
// symbol. It is never mutated; refreshing means fetching a new one.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Description      string  `json:"description"`
	Type             string  `json:"type"` // stock, etf, index, option
	Last             float64 `json:"last"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"change_percentage"`
	Volume           int64   `json:"volume"`
	AverageVolume    int64   `json:"average_volume"`
	Open             float64 `json:"open"`
	High             float64 `json:"high"`
	Low              float64 `json:"low"`
	Close            float64 `json:"close"`
	PrevClose        float64 `json:"prevclose"`
	Week52High       float64 `json:"week_52_high"`
	Week52Low        float64 `json:"week_52_low"`
	Bid              float64 `json:"bid"`
	Ask              float64 `json:"ask"`

	// Option-only fields.
	Underlying     string  `json:"underlying,omitempty"`
	Strike         float64 `json:"strike,omitempty"`
	OpenInterest   int64   `json:"open_interest,omitempty"`
	ExpirationDate string  `json:"expiration_date,omitempty"`
	OptionType     string  `json:"option_type,omitempty"`
	Greeks         *Greeks `json:"greeks,omitempty"`
}

// IsOption reports whether the quote is for an option contract.
func (q *Quote) IsOption() bool {
	return q.Type == "option"
}

// Greeks holds the option sensitivity measures returned when greeks are
// requested. SmvVol is the implied volatility.
type Greeks struct {
	Delta  float64 `json:"delta"`
	Gamma  float64 `json:"gamma"`
	Theta  float64 `json:"theta"`
	Vega   float64 `json:"vega"`
	Rho    float64 `json:"rho"`
	Phi    float64 `json:"phi"`
	SmvVol float64 `json:"smv_vol"`
}

// ChainEntry is one contract in an option chain, keyed by
// (expiration, strike, option type).
type ChainEntry struct {
	Symbol         string  `json:"symbol"`
	Description    string  `json:"description"`
	Underlying     string  `json:"underlying"`
	Strike         float64 `json:"strike"`
	ExpirationDate string  `json:"expiration_date"`
	OptionType     string  `json:"option_type"` // call | put
	Bid            float64 `json:"bid"`
	Ask            float64 `json:"ask"`
	Volume         int64   `json:"volume"`
	OpenInterest   int64   `json:"open_interest"`
	Greeks         *Greeks `json:"greeks,omitempty"`
}

// HistoricalDay is one bar of daily price history.
type HistoricalDay struct {
	Date   string  `json:"date" csv:"date"`
	Open   float64 `json:"open" csv:"open"`
	High   float64 `json:"high" csv:"high"`
	Low    float64 `json:"low" csv:"low"`
	Close  float64 `json:"close" csv:"close"`
	Volume int64   `json:"volume" csv:"volume"`
}

// MarginBalances holds the margin account buying power figures.
type MarginBalances struct {
	StockBuyingPower  float64 `json:"stock_buying_power"`
	OptionBuyingPower float64 `json:"option_buying_power"`
}

// Balances summarizes the account balances.
type Balances struct {
	TotalEquity float64         `json:"total_equity"`
	TotalCash   float64         `json:"total_cash"`
	Margin      *MarginBalances `json:"margin,omitempty"`
}

// Position is one open position in the account.
type Position struct {
	ID           int64   `json:"id"`
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	CostBasis    float64 `json:"cost_basis"`
	DateAcquired string  `json:"date_acquired"`
}

// OrderPreview is the brokerage's dry-run costing of an order.
type OrderPreview struct {
	Status       string   `json:"status"`
	Commission   float64  `json:"commission"`
	Cost         float64  `json:"cost"`
	Fees         float64  `json:"fees"`
	OrderCost    float64  `json:"order_cost"`
	MarginChange *float64 `json:"margin_change,omitempty"`
}

// OrderConfirmation is returned when an order is accepted.
type OrderConfirmation struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	PartnerID string `json:"partner_id"`
}

// Order is the status of a previously submitted order. Multi-leg orders
// carry their legs as nested orders.
type Order struct {
	ID           int64   `json:"id"`
	Type         string  `json:"type"`
	Symbol       string  `json:"symbol"`
	Side         string  `json:"side"`
	Quantity     float64 `json:"quantity"`
	Status       string  `json:"status"`
	Duration     string  `json:"duration"`
	Price        float64 `json:"price"`
	StopPrice    float64 `json:"stop_price"`
	AvgFillPrice float64 `json:"avg_fill_price"`
	ExecQuantity float64 `json:"exec_quantity"`
	CreateDate   string  `json:"create_date"`
	Class        string  `json:"class"`
	Strategy     string  `json:"strategy"`
	OptionSymbol string  `json:"option_symbol"`
	Legs         []Order `json:"leg,omitempty"`
}

// listOrSingle decodes a Tradier payload field that may be a single
// object, an array of objects, or null. Several endpoints collapse
// one-element lists to a bare object.
func listOrSingle[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`"null"`)) {
		return nil, nil
	}

	if raw[0] == '[' {
		var many []T
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, err
		}
		return many, nil
	}

	var one T
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []T{one}, nil
}
