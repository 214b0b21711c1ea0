package tradier

import (
	"context"
	"encoding/json"
	"fmt"
)

type balancesEnvelope struct {
	Balances Balances `json:"balances"`
}

// GetBalances fetches the account balances and buying power.
func (c *Client) GetBalances(ctx context.Context) (*Balances, error) {
	accountID, err := c.requireAccount()
	if err != nil {
		return nil, err
	}

	var env balancesEnvelope
	path := fmt.Sprintf("/accounts/%s/balances", accountID)
	if err := c.get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch balances: %w", err)
	}

	return &env.Balances, nil
}

type positionsEnvelope struct {
	Positions json.RawMessage `json:"positions"`
}

type positionsList struct {
	Position json.RawMessage `json:"position"`
}

// GetPositions fetches the open positions in the account. An account
// with no positions returns an empty slice, not an error.
func (c *Client) GetPositions(ctx context.Context) ([]Position, error) {
	accountID, err := c.requireAccount()
	if err != nil {
		return nil, err
	}

	var env positionsEnvelope
	path := fmt.Sprintf("/accounts/%s/positions", accountID)
	if err := c.get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("failed to fetch positions: %w", err)
	}

	// "positions" is the string "null" for empty accounts.
	lists, err := listOrSingle[positionsList](env.Positions)
	if err != nil || len(lists) == 0 {
		return nil, nil
	}

	positions, err := listOrSingle[Position](lists[0].Position)
	if err != nil {
		return nil, fmt.Errorf("failed to decode positions: %w", err)
	}

	return positions, nil
}
