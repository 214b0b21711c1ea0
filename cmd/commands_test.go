package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// testClientFactory serves canned API responses by path.
func testClientFactory(t *testing.T, responses map[string]string) func() (*tradier.Client, error) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := responses[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return func() (*tradier.Client, error) {
		return tradier.NewClient("test-token", false).WithBaseURL(srv.URL).WithAccount("ACC123"), nil
	}
}

func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExpirationsCommand(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/markets/options/expirations": `{"expirations":{"date":["2026-09-18","2026-10-16"]}}`,
	})
	cmd := newExpirationsCmd(expirationsOptions{newClient: newClient})

	out, err := executeCommand(t, cmd, "AAPL")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-09-18")
	assert.Contains(t, out, "2026-10-16")
	assert.Contains(t, out, "DTE")
}

func TestChainCommand(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/markets/quotes": `{"quotes":{"quote":{"symbol":"AAPL","description":"Apple Inc","type":"stock","last":102}}}`,
		"/markets/options/chains": `{"options":{"option":[
			{"symbol":"C100","option_type":"call","strike":100,"bid":3.1,"ask":3.3,"greeks":{"delta":0.55,"smv_vol":0.28}},
			{"symbol":"P100","option_type":"put","strike":100,"bid":1.1,"ask":1.3,"greeks":{"delta":-0.45,"smv_vol":0.30}},
			{"symbol":"C105","option_type":"call","strike":105,"bid":1.2,"ask":1.4,"greeks":{"delta":0.35,"smv_vol":0.27}},
			{"symbol":"P105","option_type":"put","strike":105,"bid":3.9,"ask":4.1,"greeks":{"delta":-0.65,"smv_vol":0.31}}
		]}}`,
	})
	cmd := newChainCmd(chainOptions{newClient: newClient})

	out, err := executeCommand(t, cmd, "AAPL", "2026-09-18")
	require.NoError(t, err)
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "$105.00")
	assert.Contains(t, out, "Call Bid")
	assert.Contains(t, out, "Put Bid")
}

func TestChainCommandDefaultsToNearestExpiration(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/markets/quotes":              `{"quotes":{"quote":{"symbol":"AAPL","description":"Apple Inc","type":"stock","last":102}}}`,
		"/markets/options/expirations": `{"expirations":{"date":["2026-09-18","2026-10-16"]}}`,
		"/markets/options/chains": `{"options":{"option":[
			{"symbol":"C100","option_type":"call","strike":100,"bid":3.1,"ask":3.3},
			{"symbol":"C105","option_type":"call","strike":105,"bid":1.2,"ask":1.4}
		]}}`,
	})
	cmd := newChainCmd(chainOptions{newClient: newClient})

	out, err := executeCommand(t, cmd, "AAPL")
	require.NoError(t, err)
	assert.Contains(t, out, "Sep 18, 2026")
}

func TestChainCommandRejectsBothFilters(t *testing.T) {
	cmd := newChainCmd(chainOptions{newClient: nil})

	_, err := executeCommand(t, cmd, "AAPL", "2026-09-18", "--calls", "--puts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestChainCommandRejectsBadDate(t *testing.T) {
	cmd := newChainCmd(chainOptions{newClient: nil})

	_, err := executeCommand(t, cmd, "AAPL", "tomorrow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid expiration")
}

func TestPositionsCommandEmpty(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/accounts/ACC123/positions": `{"positions":"null"}`,
	})
	cmd := newPositionsCmd(positionsOptions{newClient: newClient})

	out, err := executeCommand(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No open positions.")
}

func TestPositionsCommand(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/accounts/ACC123/positions": `{"positions":{"position":
			{"id":1,"symbol":"AAPL","quantity":100,"cost_basis":18950.0,"date_acquired":"2026-01-05"}
		}}`,
		"/markets/quotes":           `{"quotes":{"quote":{"symbol":"AAPL","type":"stock","last":195.0}}}`,
		"/accounts/ACC123/balances": `{"balances":{"total_equity":25000.0,"total_cash":5000.0}}`,
	})
	cmd := newPositionsCmd(positionsOptions{newClient: newClient})

	out, err := executeCommand(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Account balance: $25,000.00")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "$18,950.00")
	assert.Contains(t, out, "$19,500.00")
	assert.Contains(t, out, "+$550.00 (+2.90%)")
}

func TestPositionsCommandGroupsOptionsByUnderlying(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/accounts/ACC123/positions": `{"positions":{"position":[
			{"id":1,"symbol":"AAPL260918C00100000","quantity":1,"cost_basis":300.0,"date_acquired":"2026-08-01"},
			{"id":2,"symbol":"AAPL260918C00105000","quantity":1,"cost_basis":150.0,"date_acquired":"2026-08-01"}
		]}}`,
		"/markets/quotes":           `{"quotes":{"quote":{"symbol":"AAPL260918C00100000","type":"option","underlying":"AAPL","bid":2.4,"ask":2.6}}}`,
		"/accounts/ACC123/balances": `{"balances":{"total_equity":25000.0}}`,
	})
	cmd := newPositionsCmd(positionsOptions{newClient: newClient})

	out, err := executeCommand(t, cmd)
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	// both contracts roll up into one row valued at mid x 100 x qty each
	assert.Contains(t, out, "$450.00")
	assert.Contains(t, out, "$500.00")
}

func TestTradeStatusCommand(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/accounts/ACC123/orders/99": `{"order":{
			"id":99,"class":"multileg","status":"open","symbol":"AAPL",
			"type":"credit","duration":"day","price":0.45,
			"leg":[
				{"id":100,"side":"sell_to_open","quantity":1,"status":"open","option_symbol":"AAPL260918C00100000"},
				{"id":101,"side":"buy_to_open","quantity":1,"status":"open","option_symbol":"AAPL260918C00105000"}
			]
		}}`,
	})
	cmd := newTradeStatusCmd(tradeOptions{newClient: newClient})

	out, err := executeCommand(t, cmd, "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Order 99 (open)")
	assert.Contains(t, out, "sell_to_open")
	assert.Contains(t, out, "AAPL260918C00105000")
}

func TestTradeModifyCommandRequiresChanges(t *testing.T) {
	cmd := newTradeModifyCmd(tradeOptions{newClient: nil})

	_, err := executeCommand(t, cmd, "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to modify")
}

func TestTradeModifyCommand(t *testing.T) {
	newClient := testClientFactory(t, map[string]string{
		"/accounts/ACC123/orders/99": `{"order":{"id":99,"status":"ok"}}`,
	})
	cmd := newTradeModifyCmd(tradeOptions{newClient: newClient})

	out, err := executeCommand(t, cmd, "99", "--price", "1.30")
	require.NoError(t, err)
	assert.Contains(t, out, "Order 99 modified (ok)")
}

func TestExpectedMoveCommandRejectsBadDate(t *testing.T) {
	cmd := newExpectedMoveCmd(expectedMoveOptions{newClient: nil})

	_, err := executeCommand(t, cmd, "SPY", "next friday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid expiration")
}
