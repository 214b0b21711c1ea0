package tradier

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBalances(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/ACC123/balances", r.URL.Path)
		_, _ = w.Write([]byte(`{"balances":{
			"total_equity":50000,"total_cash":20000,
			"margin":{"stock_buying_power":40000,"option_buying_power":20000}
		}}`))
	}).WithAccount("ACC123")

	balances, err := client.GetBalances(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 50000.0, balances.TotalEquity)
	require.NotNil(t, balances.Margin)
	assert.Equal(t, 40000.0, balances.Margin.StockBuyingPower)
}

func TestGetPositions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions":{"position":[
			{"id":1,"symbol":"AAPL","quantity":100,"cost_basis":18950.0,"date_acquired":"2026-01-05"},
			{"id":2,"symbol":"AAPL260918C00190000","quantity":2,"cost_basis":1020.0,"date_acquired":"2026-08-01"}
		]}}`))
	}).WithAccount("ACC123")

	positions, err := client.GetPositions(t.Context())
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "AAPL", positions[0].Symbol)
	assert.Equal(t, 100.0, positions[0].Quantity)
}

func TestGetPositionsSingleCollapsed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"positions":{"position":
			{"id":1,"symbol":"AAPL","quantity":100,"cost_basis":18950.0}
		}}`))
	}).WithAccount("ACC123")

	positions, err := client.GetPositions(t.Context())
	require.NoError(t, err)
	require.Len(t, positions, 1)
}

func TestGetPositionsEmptyAccount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Empty accounts return the string "null", not JSON null.
		_, _ = w.Write([]byte(`{"positions":"null"}`))
	}).WithAccount("ACC123")

	positions, err := client.GetPositions(t.Context())
	require.NoError(t, err)
	assert.Empty(t, positions)
}
